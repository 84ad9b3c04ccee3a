package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hyperjump/finsight/internal/models"
)

// sqlStore implements Storage over database/sql. Queries are written with '?' placeholders
// and rebound for drivers that use numbered parameters.
type sqlStore struct {
	db       *sql.DB
	numbered bool
}

func (s *sqlStore) q(query string) string {
	if !s.numbered {
		return query
	}
	return rebind(query)
}

// rebind converts '?' placeholders to $1, $2, ...
func rebind(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

const upsertSnapshotSQL = `
	INSERT INTO company_finance
		(ticker, name, sector, price, market_cap, pe_ratio, eps, fifty_two_week_high, fifty_two_week_low, last_updated)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (ticker) DO UPDATE SET
		name = excluded.name,
		sector = excluded.sector,
		price = excluded.price,
		market_cap = excluded.market_cap,
		pe_ratio = excluded.pe_ratio,
		eps = excluded.eps,
		fifty_two_week_high = excluded.fifty_two_week_high,
		fifty_two_week_low = excluded.fifty_two_week_low,
		last_updated = excluded.last_updated`

// UpsertSnapshot writes the snapshot in a single statement keyed on the ticker's unique index.
func (s *sqlStore) UpsertSnapshot(ctx context.Context, snap *models.FinanceSnapshot) error {
	if snap.LastUpdated.IsZero() {
		snap.LastUpdated = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, s.q(upsertSnapshotSQL),
		snap.Ticker, snap.Name, snap.Sector, snap.Price, snap.MarketCap, snap.PERatio, snap.EPS,
		snap.FiftyTwoWeekHigh, snap.FiftyTwoWeekLow, snap.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert snapshot %s: %w", snap.Ticker, err)
	}
	return nil
}

// GetSnapshot returns the stored snapshot for ticker.
func (s *sqlStore) GetSnapshot(ctx context.Context, ticker string) (*models.FinanceSnapshot, error) {
	var snap models.FinanceSnapshot
	err := s.db.QueryRowContext(ctx, s.q(
		`SELECT ticker, name, sector, price, market_cap, pe_ratio, eps, fifty_two_week_high, fifty_two_week_low, last_updated
		 FROM company_finance WHERE ticker = ?`), ticker,
	).Scan(&snap.Ticker, &snap.Name, &snap.Sector, &snap.Price, &snap.MarketCap, &snap.PERatio, &snap.EPS,
		&snap.FiftyTwoWeekHigh, &snap.FiftyTwoWeekLow, &snap.LastUpdated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("snapshot %s: %w", ticker, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

const insertArticleSQL = `
	INSERT INTO news_articles (ticker, title, link, source, published_date, summary, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (link) DO NOTHING
	RETURNING id`

// InsertArticleIfAbsent relies on the unique index on link: the conflict clause makes the
// existence check and the insert one statement, so concurrent ingests of a link store it once.
func (s *sqlStore) InsertArticleIfAbsent(ctx context.Context, a *models.NewsArticle) (bool, error) {
	createdAt := time.Now().UTC()
	var id int64
	err := s.db.QueryRowContext(ctx, s.q(insertArticleSQL),
		a.Ticker, a.Title, a.Link, a.Source, a.PublishedDate, a.Summary, createdAt,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to insert article %s: %w", a.Link, err)
	}
	a.ID = id
	a.CreatedAt = createdAt
	return true, nil
}

// ListArticles returns up to limit stored articles for ticker, newest first.
func (s *sqlStore) ListArticles(ctx context.Context, ticker string, limit int) ([]models.NewsArticle, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, s.q(
		`SELECT id, ticker, title, link, source, published_date, summary, created_at
		 FROM news_articles WHERE ticker = ? ORDER BY id DESC LIMIT ?`), ticker, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []models.NewsArticle
	for rows.Next() {
		var a models.NewsArticle
		if err := rows.Scan(&a.ID, &a.Ticker, &a.Title, &a.Link, &a.Source, &a.PublishedDate, &a.Summary, &a.CreatedAt); err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

// CountArticles returns the number of stored articles for ticker.
func (s *sqlStore) CountArticles(ctx context.Context, ticker string) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, s.q(`SELECT COUNT(*) FROM news_articles WHERE ticker = ?`), ticker).Scan(&n)
	return n, err
}

// Close closes the database.
func (s *sqlStore) Close() error {
	return s.db.Close()
}
