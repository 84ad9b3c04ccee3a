package marketdata

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	alpacadata "github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"go.uber.org/zap"
)

type alpacaAssets interface {
	GetAsset(symbol string) (*alpaca.Asset, error)
}

type alpacaBars interface {
	GetLatestTrade(symbol string, req alpacadata.GetLatestTradeRequest) (*alpacadata.Trade, error)
	GetBars(symbol string, req alpacadata.GetBarsRequest) ([]alpacadata.Bar, error)
}

// AlpacaProvider builds quotes from the Alpaca trading and market data APIs. Alpaca has no
// fundamentals, so sector, market cap, P/E and EPS are always absent.
type AlpacaProvider struct {
	assets alpacaAssets
	data   alpacaBars
	logger *zap.Logger
	now    func() time.Time
}

// NewAlpacaProvider creates a provider. baseURL is the trading API endpoint (paper or live);
// dataURL overrides the market data endpoint when set.
func NewAlpacaProvider(apiKey, apiSecret, baseURL, dataURL string, logger *zap.Logger) (*AlpacaProvider, error) {
	if apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("alpaca api key and secret are required")
	}
	if baseURL == "" {
		baseURL = "https://paper-api.alpaca.markets"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AlpacaProvider{
		assets: alpaca.NewClient(alpaca.ClientOpts{
			APIKey:    apiKey,
			APISecret: apiSecret,
			BaseURL:   baseURL,
		}),
		data: alpacadata.NewClient(alpacadata.ClientOpts{
			APIKey:    apiKey,
			APISecret: apiSecret,
			BaseURL:   dataURL,
		}),
		logger: logger,
		now:    time.Now,
	}, nil
}

// Name returns "alpaca".
func (p *AlpacaProvider) Name() string {
	return "alpaca"
}

// Quote returns the asset name, last trade price, and the high/low of the past year of daily bars.
func (p *AlpacaProvider) Quote(ctx context.Context, ticker string) (*Quote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	asset, err := p.assets.GetAsset(ticker)
	if err != nil {
		var apiErr *alpaca.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%s: %w", ticker, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get asset %s: %w", ticker, err)
	}
	q := &Quote{Symbol: ticker, Name: asset.Name}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if trade, err := p.data.GetLatestTrade(ticker, alpacadata.GetLatestTradeRequest{}); err != nil {
		p.logger.Warn("latest trade unavailable", zap.String("symbol", ticker), zap.Error(err))
	} else if trade != nil && trade.Price > 0 {
		q.Price = floatPtr(trade.Price)
	}

	end := p.now()
	bars, err := p.data.GetBars(ticker, alpacadata.GetBarsRequest{
		TimeFrame: alpacadata.OneDay,
		Start:     end.AddDate(-1, 0, 0),
		End:       end,
	})
	if err != nil {
		p.logger.Warn("daily bars unavailable", zap.String("symbol", ticker), zap.Error(err))
		return q, nil
	}
	if len(bars) > 0 {
		high, low := bars[0].High, bars[0].Low
		for _, b := range bars[1:] {
			if b.High > high {
				high = b.High
			}
			if b.Low < low {
				low = b.Low
			}
		}
		q.FiftyTwoWeekHigh = floatPtr(high)
		q.FiftyTwoWeekLow = floatPtr(low)
	}
	return q, nil
}
