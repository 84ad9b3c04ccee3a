package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStorage implements Storage using SQLite.
type SQLiteStorage struct {
	*sqlStore
}

// NewSQLiteStorage opens or creates a SQLite database at dbPath and initializes the schema.
// Parent directories are created if they do not exist.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSQLiteSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStorage{sqlStore: &sqlStore{db: db}}, nil
}

func initSQLiteSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS company_finance (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		ticker TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		sector TEXT NOT NULL,
		price REAL NOT NULL DEFAULT 0,
		market_cap TEXT NOT NULL,
		pe_ratio REAL NOT NULL DEFAULT 0,
		eps REAL NOT NULL DEFAULT 0,
		fifty_two_week_high REAL NOT NULL DEFAULT 0,
		fifty_two_week_low REAL NOT NULL DEFAULT 0,
		last_updated TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS news_articles (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		ticker TEXT NOT NULL,
		title TEXT NOT NULL,
		link TEXT NOT NULL UNIQUE,
		source TEXT NOT NULL,
		published_date TEXT NOT NULL,
		summary TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_news_articles_ticker ON news_articles(ticker);
	`
	_, err := db.Exec(schema)
	return err
}
