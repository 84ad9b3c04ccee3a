// Package models defines core data structures for company snapshots, news articles, and analyses.
package models

import "time"

// Placeholder for a missing text value in a FinanceSnapshot.
const NotAvailable = "N/A"

// FinanceSnapshot is the latest known financial state of one company.
// There is at most one snapshot per ticker; a re-fetch overwrites it.
type FinanceSnapshot struct {
	Ticker           string    `json:"ticker" db:"ticker"`
	Name             string    `json:"name" db:"name"`
	Sector           string    `json:"sector" db:"sector"`
	Price            float64   `json:"price" db:"price"`
	MarketCap        string    `json:"market_cap" db:"market_cap"`
	PERatio          float64   `json:"pe_ratio" db:"pe_ratio"`
	EPS              float64   `json:"eps" db:"eps"`
	FiftyTwoWeekHigh float64   `json:"fifty_two_week_high" db:"fifty_two_week_high"`
	FiftyTwoWeekLow  float64   `json:"fifty_two_week_low" db:"fifty_two_week_low"`
	LastUpdated      time.Time `json:"last_updated" db:"last_updated"`
}
