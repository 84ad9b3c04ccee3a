package models

import "time"

// NewsArticle is a single news item about a ticker. Link is globally unique.
type NewsArticle struct {
	ID            int64     `json:"id,omitempty" db:"id"`
	Ticker        string    `json:"ticker" db:"ticker"`
	Title         string    `json:"title" db:"title"`
	Link          string    `json:"link" db:"link"`
	Source        string    `json:"source" db:"source"`
	PublishedDate string    `json:"published_date" db:"published_date"`
	Summary       string    `json:"summary" db:"summary"`
	CreatedAt     time.Time `json:"created_at,omitempty" db:"created_at"`
}

// EmbeddingText is the text embedded for an article.
func (a NewsArticle) EmbeddingText() string {
	return a.Title + " - " + a.Summary
}
