// Package vector provides named vector collections with payload filtering.
package vector

import (
	"context"
	"errors"

	"github.com/hyperjump/finsight/internal/models"
)

// ErrCollectionNotFound is returned when a collection is used before it exists.
var ErrCollectionNotFound = errors.New("collection not found")

// Point is a vector with an ID and a flat string payload.
type Point struct {
	ID      string
	Vector  []float32
	Payload map[string]string
}

// Filter restricts a search to points whose payload matches every Must entry exactly.
type Filter struct {
	Must map[string]string
}

// Matches reports whether payload satisfies f.
func (f Filter) Matches(payload map[string]string) bool {
	for k, v := range f.Must {
		if payload[k] != v {
			return false
		}
	}
	return true
}

// SearchRequest describes a filtered similarity search.
type SearchRequest struct {
	Vector []float32
	Limit  int
	Filter Filter
}

// ScoredPoint is a single search hit. Score is cosine similarity.
type ScoredPoint struct {
	ID      string
	Score   float64
	Payload map[string]string
}

// Collection is a named vector collection using cosine distance.
type Collection interface {
	// EnsureCollection creates the collection if it does not exist. An existing collection is left untouched.
	EnsureCollection(ctx context.Context) error
	// Upsert inserts points or replaces existing points with the same ID.
	Upsert(ctx context.Context, points []Point) error
	// Search returns up to req.Limit points matching req.Filter, most similar first.
	Search(ctx context.Context, req SearchRequest) ([]ScoredPoint, error)
	Count(ctx context.Context) (int, error)
	Dimensions() int
	Close() error
}

// Payload keys for news articles.
const (
	KeyTicker        = "ticker"
	KeyTitle         = "title"
	KeyLink          = "link"
	KeySource        = "source"
	KeyPublishedDate = "published_date"
	KeySummary       = "summary"
)

// PayloadFromArticle returns the payload stored alongside an article's embedding.
func PayloadFromArticle(a models.NewsArticle) map[string]string {
	return map[string]string{
		KeyTicker:        a.Ticker,
		KeyTitle:         a.Title,
		KeyLink:          a.Link,
		KeySource:        a.Source,
		KeyPublishedDate: a.PublishedDate,
		KeySummary:       a.Summary,
	}
}

// ArticleFromPayload rebuilds an article from a stored payload.
func ArticleFromPayload(p map[string]string) models.NewsArticle {
	return models.NewsArticle{
		Ticker:        p[KeyTicker],
		Title:         p[KeyTitle],
		Link:          p[KeyLink],
		Source:        p[KeySource],
		PublishedDate: p[KeyPublishedDate],
		Summary:       p[KeySummary],
	}
}
