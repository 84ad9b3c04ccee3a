package news

import (
	"context"
	"fmt"
	"strings"

	"github.com/hyperjump/finsight/internal/models"
	"github.com/hyperjump/finsight/internal/storage"
	"go.uber.org/zap"
)

// Deduplicator stores candidate articles and keeps only the ones not seen before.
type Deduplicator struct {
	store  storage.ArticleStore
	logger *zap.Logger
}

// NewDeduplicator creates a deduplicator backed by store.
func NewDeduplicator(store storage.ArticleStore, logger *zap.Logger) *Deduplicator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Deduplicator{store: store, logger: logger}
}

// Filter inserts each candidate unless its link is already stored and returns the inserted
// articles in input order. ticker, when set, overrides the candidates' tickers.
func (d *Deduplicator) Filter(ctx context.Context, ticker string, candidates []models.NewsArticle) ([]models.NewsArticle, error) {
	var fresh []models.NewsArticle
	for _, c := range candidates {
		c.Link = strings.TrimSpace(c.Link)
		if c.Link == "" {
			continue
		}
		if ticker != "" {
			c.Ticker = ticker
		}
		c.Ticker = models.NormalizeTicker(c.Ticker)

		inserted, err := d.store.InsertArticleIfAbsent(ctx, &c)
		if err != nil {
			return nil, fmt.Errorf("failed to store article %q: %w", c.Link, err)
		}
		if inserted {
			fresh = append(fresh, c)
		}
	}
	d.logger.Debug("articles deduplicated",
		zap.String("ticker", models.NormalizeTicker(ticker)),
		zap.Int("candidates", len(candidates)),
		zap.Int("new", len(fresh)))
	return fresh, nil
}
