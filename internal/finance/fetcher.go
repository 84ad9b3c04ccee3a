// Package finance retrieves and persists the current financial snapshot of a company.
package finance

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/hyperjump/finsight/internal/marketdata"
	"github.com/hyperjump/finsight/internal/models"
	"github.com/hyperjump/finsight/internal/storage"
	"github.com/hyperjump/finsight/pkg/utils"
	"go.uber.org/zap"
)

var errNoData = errors.New("provider returned no data")

// Fetcher pulls a quote from a market data provider and stores it as the ticker's snapshot.
type Fetcher struct {
	provider marketdata.Provider
	store    storage.SnapshotStore
	logger   *zap.Logger
	now      func() time.Time
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithLogger sets a logger.
func WithLogger(l *zap.Logger) FetcherOption {
	return func(f *Fetcher) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithClock overrides the time source used for LastUpdated.
func WithClock(now func() time.Time) FetcherOption {
	return func(f *Fetcher) { f.now = now }
}

// NewFetcher creates a fetcher.
func NewFetcher(provider marketdata.Provider, store storage.SnapshotStore, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		provider: provider,
		store:    store,
		logger:   zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch returns the stored snapshot for ticker after refreshing it from the provider.
// All failures are *FetchError; nothing is stored when one is returned.
func (f *Fetcher) Fetch(ctx context.Context, ticker string) (*models.FinanceSnapshot, error) {
	ticker = models.NormalizeTicker(ticker)
	if ticker == "" {
		return nil, &FetchError{Ticker: ticker, Err: errors.New("empty ticker")}
	}

	q, err := f.provider.Quote(ctx, ticker)
	if err != nil {
		f.logger.Warn("quote failed",
			zap.String("ticker", ticker),
			zap.String("provider", f.provider.Name()),
			zap.Error(err))
		return nil, &FetchError{Ticker: ticker, Err: err}
	}
	if !q.HasData() {
		return nil, &FetchError{Ticker: ticker, Err: errNoData}
	}

	snap := Snapshot(ticker, q, f.now().UTC())
	if err := f.store.UpsertSnapshot(ctx, snap); err != nil {
		return nil, &FetchError{Ticker: ticker, Err: err}
	}
	f.logger.Debug("snapshot stored",
		zap.String("ticker", ticker),
		zap.String("name", snap.Name),
		zap.Float64("price", snap.Price))
	return snap, nil
}

// Snapshot maps a quote onto a snapshot, filling "N/A" for missing text and 0 for missing numbers.
func Snapshot(ticker string, q *marketdata.Quote, at time.Time) *models.FinanceSnapshot {
	s := &models.FinanceSnapshot{
		Ticker:      strings.ToUpper(ticker),
		Name:        utils.OrDefault(q.Name, models.NotAvailable),
		Sector:      utils.OrDefault(q.Sector, models.NotAvailable),
		MarketCap:   models.NotAvailable,
		LastUpdated: at,
	}
	if q.MarketCap != nil {
		s.MarketCap = marketdata.FormatMarketCap(*q.MarketCap)
	}
	s.Price = valueOrZero(q.Price)
	s.PERatio = valueOrZero(q.PERatio)
	s.EPS = valueOrZero(q.EPS)
	s.FiftyTwoWeekHigh = valueOrZero(q.FiftyTwoWeekHigh)
	s.FiftyTwoWeekLow = valueOrZero(q.FiftyTwoWeekLow)
	return s
}

func valueOrZero(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
