package news

import (
	"context"
	"net/http"

	"github.com/hyperjump/finsight/internal/config"
	"github.com/hyperjump/finsight/internal/models"
	"go.uber.org/zap"
)

// Attempt records what one source returned during a chain fetch.
type Attempt struct {
	Source   string
	Articles int
	Err      error
}

// ChainResult is the outcome of a chain fetch.
type ChainResult struct {
	Articles []models.NewsArticle
	// Source is the name of the source that produced Articles, empty when none did.
	Source   string
	Attempts []Attempt
}

// Empty reports whether no source produced articles.
func (r ChainResult) Empty() bool {
	return len(r.Articles) == 0
}

// Chain queries sources in order and stops at the first one that yields articles.
type Chain struct {
	sources []Source
	logger  *zap.Logger
}

// NewChain creates a chain over sources in priority order.
func NewChain(sources ...Source) *Chain {
	return &Chain{sources: sources, logger: zap.NewNop()}
}

// WithLogger sets the chain's logger and returns the chain.
func (c *Chain) WithLogger(l *zap.Logger) *Chain {
	if l != nil {
		c.logger = l
	}
	return c
}

// Fetch returns the first non-empty source result. An all-empty chain is not an error.
func (c *Chain) Fetch(ctx context.Context, ticker string) ChainResult {
	ticker = models.NormalizeTicker(ticker)
	var res ChainResult
	for _, src := range c.sources {
		if ctx.Err() != nil {
			res.Attempts = append(res.Attempts, Attempt{Source: src.Name(), Err: &SourceError{Source: src.Name(), Ticker: ticker, Err: ctx.Err()}})
			break
		}
		r := src.Fetch(ctx, ticker)
		res.Attempts = append(res.Attempts, Attempt{Source: src.Name(), Articles: len(r.Articles), Err: r.Err})
		if r.Err != nil {
			c.logger.Warn("news source failed", zap.String("source", src.Name()), zap.String("ticker", ticker), zap.Error(r.Err))
		}
		if !r.Empty() {
			res.Articles = r.Articles
			res.Source = src.Name()
			return res
		}
		c.logger.Debug("news source empty, trying next", zap.String("source", src.Name()), zap.String("ticker", ticker))
	}
	return res
}

// DefaultChain builds the Finviz then feed chain from cfg.
func DefaultChain(cfg config.NewsConfig, httpClient *http.Client, logger *zap.Logger) (*Chain, error) {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	opts := []Option{
		WithHTTPClient(httpClient),
		WithUserAgent(cfg.UserAgent),
		WithLimit(cfg.Limit),
		WithLogger(logger),
	}
	finviz, err := NewFinvizSource(cfg.FinvizURL, opts...)
	if err != nil {
		return nil, err
	}
	feed, err := NewFeedSource(cfg.FeedURL, opts...)
	if err != nil {
		return nil, err
	}
	return NewChain(finviz, feed).WithLogger(logger), nil
}
