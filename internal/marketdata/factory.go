package marketdata

import (
	"fmt"
	"net/http"

	"github.com/hyperjump/finsight/internal/config"
	"go.uber.org/zap"
)

// NewProvider creates the provider selected by cfg.Provider.
func NewProvider(cfg config.MarketConfig, logger *zap.Logger) (Provider, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch cfg.Provider {
	case "eodhd", "":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("eodhd api key is required")
		}
		opts := []EODHDOption{
			WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
			WithLogger(logger),
		}
		if cfg.BaseURL != "" {
			opts = append(opts, WithBaseURL(cfg.BaseURL))
		}
		if cfg.RateLimit > 0 {
			opts = append(opts, WithRateLimit(cfg.RateLimit))
		}
		if cfg.Exchange != "" {
			opts = append(opts, WithExchange(cfg.Exchange))
		}
		return NewEODHDClient(cfg.APIKey, opts...), nil
	case "alpaca":
		return NewAlpacaProvider(cfg.APIKey, cfg.APISecret, cfg.BaseURL, cfg.DataURL, logger)
	default:
		return nil, fmt.Errorf("unknown market data provider: %s (supported: eodhd, alpaca)", cfg.Provider)
	}
}
