// Package indexer embeds news articles and upserts them into a vector collection.
package indexer

import (
	"context"
	"fmt"

	"github.com/hyperjump/finsight/internal/embedding"
	"github.com/hyperjump/finsight/internal/models"
	"github.com/hyperjump/finsight/internal/pointid"
	"github.com/hyperjump/finsight/internal/vector"
	"go.uber.org/zap"
)

// Indexer writes article embeddings to a vector collection.
type Indexer struct {
	embedder   embedding.Embedder
	collection vector.Collection
	logger     *zap.Logger // optional; when set, logs debug events
}

// IndexerOption configures an Indexer.
type IndexerOption func(*Indexer)

// WithLogger sets a logger for debug output.
func WithLogger(l *zap.Logger) IndexerOption {
	return func(idx *Indexer) { idx.logger = l }
}

// NewIndexer creates an indexer with the given dependencies.
func NewIndexer(embedder embedding.Embedder, collection vector.Collection, opts ...IndexerOption) *Indexer {
	idx := &Indexer{
		embedder:   embedder,
		collection: collection,
	}
	for _, opt := range opts {
		opt(idx)
	}
	return idx
}

// IndexArticles embeds each article's "title - summary" text and upserts all points in one call.
// Point IDs derive from the link, so re-indexing an article replaces its point. Returns the
// number of points written; empty input writes nothing.
func (idx *Indexer) IndexArticles(ctx context.Context, articles []models.NewsArticle) (int, error) {
	if len(articles) == 0 {
		return 0, nil
	}
	if err := idx.collection.EnsureCollection(ctx); err != nil {
		return 0, fmt.Errorf("failed to ensure collection: %w", err)
	}

	texts := make([]string, len(articles))
	for i, a := range articles {
		texts[i] = a.EmbeddingText()
	}
	embeddings, err := idx.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("failed to generate embeddings: %w", err)
	}
	if len(embeddings) != len(articles) {
		return 0, fmt.Errorf("embedder returned %d vectors for %d articles", len(embeddings), len(articles))
	}

	dim := idx.collection.Dimensions()
	points := make([]vector.Point, len(articles))
	for i, a := range articles {
		if len(embeddings[i]) != dim {
			return 0, fmt.Errorf("%w: article %q got %d, collection has %d",
				embedding.ErrDimensionMismatch, a.Link, len(embeddings[i]), dim)
		}
		points[i] = vector.Point{
			ID:      pointid.ForLink(a.Link),
			Vector:  embeddings[i],
			Payload: vector.PayloadFromArticle(a),
		}
	}
	if err := idx.collection.Upsert(ctx, points); err != nil {
		return 0, fmt.Errorf("failed to index vectors: %w", err)
	}
	if idx.logger != nil {
		idx.logger.Debug("indexer articles indexed", zap.Int("points", len(points)))
	}
	return len(points), nil
}
