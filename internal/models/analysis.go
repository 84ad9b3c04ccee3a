package models

import (
	"fmt"
	"strings"
	"time"
)

// AnalysisRequest is the input for an analysis run.
type AnalysisRequest struct {
	Ticker string `json:"ticker" validate:"required,max=12,ticker"`
}

// Normalize trims and uppercases the ticker.
func (r *AnalysisRequest) Normalize() {
	r.Ticker = NormalizeTicker(r.Ticker)
}

// Validate normalizes the request and returns an error if the ticker is empty.
func (r *AnalysisRequest) Validate() error {
	r.Normalize()
	if r.Ticker == "" {
		return fmt.Errorf("ticker cannot be empty")
	}
	return nil
}

// NormalizeTicker returns the canonical (trimmed, uppercase) form of a ticker symbol.
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

// Analysis is the result of one pipeline run.
type Analysis struct {
	Ticker   string           `json:"ticker"`
	Snapshot *FinanceSnapshot `json:"snapshot"`
	// Articles newly stored during this run.
	Articles []NewsArticle `json:"articles"`
	// NewsSource names the source that supplied Articles; empty when no source had news.
	NewsSource string `json:"news_source,omitempty"`
	// Context holds the articles retrieved for the prompt, most similar first.
	Context  []NewsArticle `json:"context"`
	Text     string        `json:"analysis"`
	Stage    string        `json:"stage"`
	Duration time.Duration `json:"duration_ns"`
}
