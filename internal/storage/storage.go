// Package storage defines the persistence interface for finance snapshots and news articles.
package storage

import (
	"context"
	"errors"

	"github.com/hyperjump/finsight/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// SnapshotStore persists one finance snapshot per ticker.
type SnapshotStore interface {
	// UpsertSnapshot inserts the snapshot or overwrites every field of the existing row for its ticker.
	UpsertSnapshot(ctx context.Context, s *models.FinanceSnapshot) error
	GetSnapshot(ctx context.Context, ticker string) (*models.FinanceSnapshot, error)
}

// ArticleStore persists news articles keyed by link.
type ArticleStore interface {
	// InsertArticleIfAbsent stores a unless an article with the same link exists.
	// It reports whether a row was inserted; on insert, a.ID and a.CreatedAt are set.
	InsertArticleIfAbsent(ctx context.Context, a *models.NewsArticle) (bool, error)
	ListArticles(ctx context.Context, ticker string, limit int) ([]models.NewsArticle, error)
	CountArticles(ctx context.Context, ticker string) (int64, error)
}

// Storage combines snapshot and article persistence.
type Storage interface {
	SnapshotStore
	ArticleStore
	Close() error
}
