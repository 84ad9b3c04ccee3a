package marketdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	// DefaultEODHDBaseURL is the base URL for the EODHD API.
	DefaultEODHDBaseURL = "https://eodhd.com/api"

	// DefaultTimeout is the default HTTP timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultRateLimit is the default rate limit (requests per second).
	DefaultRateLimit = 10
)

// APIError is a non-200 response from the EODHD API.
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("EODHD API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// EODHDClient is an EODHD API client implementing Provider.
type EODHDClient struct {
	baseURL    string
	apiKey     string
	exchange   string
	httpClient *http.Client
	logger     *zap.Logger
	limiter    *rate.Limiter
}

// EODHDOption configures the EODHDClient.
type EODHDOption func(*EODHDClient)

// WithBaseURL sets a custom base URL.
func WithBaseURL(baseURL string) EODHDOption {
	return func(c *EODHDClient) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) EODHDOption {
	return func(c *EODHDClient) {
		c.httpClient = httpClient
	}
}

// WithLogger sets a logger.
func WithLogger(logger *zap.Logger) EODHDOption {
	return func(c *EODHDClient) {
		c.logger = logger
	}
}

// WithRateLimit sets the request rate limit in requests per second.
func WithRateLimit(requestsPerSecond int) EODHDOption {
	return func(c *EODHDClient) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithExchange sets the exchange code appended to bare tickers (default "US").
func WithExchange(exchange string) EODHDOption {
	return func(c *EODHDClient) {
		c.exchange = exchange
	}
}

// NewEODHDClient creates a new EODHD API client.
func NewEODHDClient(apiKey string, opts ...EODHDOption) *EODHDClient {
	c := &EODHDClient{
		baseURL:  DefaultEODHDBaseURL,
		apiKey:   apiKey,
		exchange: "US",
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger:  zap.NewNop(),
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns "eodhd".
func (c *EODHDClient) Name() string {
	return "eodhd"
}

// Symbol returns the EODHD symbol for ticker, appending the default exchange to bare tickers.
// Share-class suffixes such as ".B" are not treated as exchanges.
func (c *EODHDClient) Symbol(ticker string) string {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if i := strings.LastIndex(ticker, "."); i > 0 {
		suffix := ticker[i+1:]
		if len(suffix) >= 2 && len(suffix) <= 4 && isLetters(suffix) {
			return ticker
		}
	}
	return ticker + "." + c.exchange
}

func isLetters(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// get performs a GET request to the API and decodes the JSON body into result.
func (c *EODHDClient) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("api_token", c.apiKey)
	params.Set("fmt", "json")

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug("EODHD API request", zap.String("url", c.baseURL+path))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
			Endpoint:   path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

type fundamentalsResponse struct {
	General *struct {
		Code   string `json:"Code"`
		Name   string `json:"Name"`
		Sector string `json:"Sector"`
	} `json:"General"`
	Highlights *struct {
		MarketCapitalization bigNumber `json:"MarketCapitalization"`
		PERatio              number    `json:"PERatio"`
		EarningsShare        number    `json:"EarningsShare"`
	} `json:"Highlights"`
	Valuation *struct {
		TrailingPE number `json:"TrailingPE"`
	} `json:"Valuation"`
	Technicals *struct {
		FiftyTwoWeekHigh number `json:"52WeekHigh"`
		FiftyTwoWeekLow  number `json:"52WeekLow"`
	} `json:"Technicals"`
}

type realTimeResponse struct {
	Code          string `json:"code"`
	Close         number `json:"close"`
	PreviousClose number `json:"previousClose"`
}

// Quote combines the fundamentals and real-time endpoints. A failing real-time request leaves
// the price unset rather than failing the quote.
func (c *EODHDClient) Quote(ctx context.Context, ticker string) (*Quote, error) {
	symbol := c.Symbol(ticker)

	var f fundamentalsResponse
	if err := c.get(ctx, "/fundamentals/"+url.PathEscape(symbol), nil, &f); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%s: %w", symbol, ErrNotFound)
		}
		return nil, err
	}
	if f.General == nil || f.General.Name == "" {
		return nil, fmt.Errorf("%s: %w", symbol, ErrNotFound)
	}

	q := &Quote{
		Symbol: symbol,
		Name:   f.General.Name,
		Sector: f.General.Sector,
	}
	if h := f.Highlights; h != nil {
		q.MarketCap = h.MarketCapitalization.ptr()
		q.PERatio = h.PERatio.positive()
		q.EPS = h.EarningsShare.ptr()
	}
	if q.PERatio == nil && f.Valuation != nil {
		q.PERatio = f.Valuation.TrailingPE.positive()
	}
	if t := f.Technicals; t != nil {
		q.FiftyTwoWeekHigh = t.FiftyTwoWeekHigh.positive()
		q.FiftyTwoWeekLow = t.FiftyTwoWeekLow.positive()
	}

	var rt realTimeResponse
	if err := c.get(ctx, "/real-time/"+url.PathEscape(symbol), nil, &rt); err != nil {
		c.logger.Warn("real-time price unavailable", zap.String("symbol", symbol), zap.Error(err))
	} else if p := rt.Close.positive(); p != nil {
		q.Price = p
	} else {
		q.Price = rt.PreviousClose.positive()
	}
	return q, nil
}
