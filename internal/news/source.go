// Package news collects recent news articles about a ticker from an ordered chain of sources
// and filters out articles that are already stored.
package news

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/hyperjump/finsight/internal/models"
	"go.uber.org/zap"
)

// DefaultLimit is the maximum number of articles a source returns.
const DefaultLimit = 5

// Source fetches articles for a ticker. Failures are reported in Result.Err, never as a panic
// or a separate error return.
type Source interface {
	Name() string
	Fetch(ctx context.Context, ticker string) Result
}

// Result is the outcome of one source fetch.
type Result struct {
	Articles []models.NewsArticle
	Err      error
}

// Empty reports whether the result holds no articles.
func (r Result) Empty() bool {
	return len(r.Articles) == 0
}

// SourceError describes a recovered failure of a news source.
type SourceError struct {
	Source string
	Ticker string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("news source %s failed for %s: %v", e.Source, e.Ticker, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

func failed(source, ticker string, err error) Result {
	return Result{Err: &SourceError{Source: source, Ticker: ticker, Err: err}}
}

// httpSource holds settings shared by HTTP-backed sources.
type httpSource struct {
	client    *http.Client
	userAgent string
	limit     int
	logger    *zap.Logger
}

func defaultHTTPSource() httpSource {
	return httpSource{
		client: &http.Client{Timeout: 15 * time.Second},
		limit:  DefaultLimit,
		logger: zap.NewNop(),
	}
}

// Option configures an HTTP-backed source.
type Option func(*httpSource)

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *httpSource) {
		if c != nil {
			s.client = c
		}
	}
}

// WithUserAgent sets the User-Agent header sent with requests.
func WithUserAgent(ua string) Option {
	return func(s *httpSource) { s.userAgent = ua }
}

// WithLimit sets the maximum number of articles returned.
func WithLimit(n int) Option {
	return func(s *httpSource) {
		if n > 0 {
			s.limit = n
		}
	}
}

// WithLogger sets a logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *httpSource) {
		if l != nil {
			s.logger = l
		}
	}
}
