package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// PostgresStorage implements Storage using PostgreSQL.
type PostgresStorage struct {
	*sqlStore
}

// NewPostgresStorage connects to the database at dsn, verifies the connection, and initializes the schema.
func NewPostgresStorage(ctx context.Context, dsn string) (*PostgresStorage, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := initPostgresSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &PostgresStorage{sqlStore: &sqlStore{db: db, numbered: true}}, nil
}

func initPostgresSchema(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS company_finance (
			id SERIAL PRIMARY KEY,
			ticker VARCHAR(16) NOT NULL UNIQUE,
			name TEXT NOT NULL,
			sector TEXT NOT NULL,
			price DOUBLE PRECISION NOT NULL DEFAULT 0,
			market_cap TEXT NOT NULL,
			pe_ratio DOUBLE PRECISION NOT NULL DEFAULT 0,
			eps DOUBLE PRECISION NOT NULL DEFAULT 0,
			fifty_two_week_high DOUBLE PRECISION NOT NULL DEFAULT 0,
			fifty_two_week_low DOUBLE PRECISION NOT NULL DEFAULT 0,
			last_updated TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS news_articles (
			id BIGSERIAL PRIMARY KEY,
			ticker VARCHAR(16) NOT NULL,
			title TEXT NOT NULL,
			link TEXT NOT NULL UNIQUE,
			source TEXT NOT NULL,
			published_date TEXT NOT NULL,
			summary TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_news_articles_ticker ON news_articles(ticker)`,
	}
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
