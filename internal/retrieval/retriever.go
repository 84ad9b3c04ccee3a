// Package retrieval finds the stored news most relevant to a ticker's financial outlook.
package retrieval

import (
	"context"
	"fmt"

	"github.com/hyperjump/finsight/internal/embedding"
	"github.com/hyperjump/finsight/internal/models"
	"github.com/hyperjump/finsight/internal/vector"
	"go.uber.org/zap"
)

const (
	// DefaultLimit is the number of articles returned when the caller asks for none.
	DefaultLimit = 3

	queryCacheSize = 256
)

// Query returns the semantic query text used for ticker.
func Query(ticker string) string {
	return fmt.Sprintf("News about %s financial status and outlook", ticker)
}

// Retriever runs ticker-filtered similarity searches over indexed articles.
type Retriever struct {
	embedder     embedding.Embedder
	collection   vector.Collection
	defaultLimit int
	logger       *zap.Logger
}

// Option configures a Retriever.
type Option func(*Retriever)

// WithDefaultLimit sets the limit used when Retrieve is called with limit <= 0.
func WithDefaultLimit(n int) Option {
	return func(r *Retriever) {
		if n > 0 {
			r.defaultLimit = n
		}
	}
}

// WithLogger sets a logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Retriever) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRetriever creates a retriever. Query embeddings are cached unless embedder already caches.
func NewRetriever(embedder embedding.Embedder, collection vector.Collection, opts ...Option) *Retriever {
	if _, ok := embedder.(*embedding.CachedEmbedder); !ok {
		embedder = embedding.NewCachedEmbedder(embedder, queryCacheSize)
	}
	r := &Retriever{
		embedder:     embedder,
		collection:   collection,
		defaultLimit: DefaultLimit,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Retrieve returns up to limit articles for ticker, most relevant first.
func (r *Retriever) Retrieve(ctx context.Context, ticker string, limit int) ([]models.NewsArticle, error) {
	ticker = models.NormalizeTicker(ticker)
	if limit <= 0 {
		limit = r.defaultLimit
	}
	if err := r.collection.EnsureCollection(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure collection: %w", err)
	}
	q, err := r.embedder.Embed(ctx, Query(ticker))
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	hits, err := r.collection.Search(ctx, vector.SearchRequest{
		Vector: q,
		Limit:  limit,
		Filter: vector.Filter{Must: map[string]string{vector.KeyTicker: ticker}},
	})
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	articles := make([]models.NewsArticle, 0, len(hits))
	for _, h := range hits {
		a := vector.ArticleFromPayload(h.Payload)
		if a.Ticker != ticker {
			r.logger.Warn("discarding hit for other ticker",
				zap.String("want", ticker), zap.String("got", a.Ticker), zap.String("id", h.ID))
			continue
		}
		articles = append(articles, a)
	}
	r.logger.Debug("articles retrieved", zap.String("ticker", ticker), zap.Int("count", len(articles)))
	return articles, nil
}
