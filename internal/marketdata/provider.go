// Package marketdata fetches company quotes and fundamentals from market data providers.
package marketdata

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when the provider has no data for a symbol.
var ErrNotFound = errors.New("symbol not found")

// Quote is a provider-neutral view of a company's current financials. Nil pointers and empty
// strings mark values the provider did not supply.
type Quote struct {
	Symbol           string
	Name             string
	Sector           string
	Price            *float64
	MarketCap        *decimal.Decimal
	PERatio          *float64
	EPS              *float64
	FiftyTwoWeekHigh *float64
	FiftyTwoWeekLow  *float64
}

// HasData reports whether q carries a name or a price.
func (q *Quote) HasData() bool {
	return q != nil && (q.Name != "" || q.Price != nil)
}

// Provider returns quotes for ticker symbols.
type Provider interface {
	Name() string
	Quote(ctx context.Context, ticker string) (*Quote, error)
}

// FormatMarketCap renders a market capitalization as a whole number without exponent.
func FormatMarketCap(d decimal.Decimal) string {
	return d.Round(0).String()
}

func floatPtr(v float64) *float64 {
	return &v
}
