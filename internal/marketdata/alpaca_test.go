package marketdata

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	alpacadata "github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"go.uber.org/zap"
)

type fakeAssets struct {
	asset *alpaca.Asset
	err   error
}

func (f *fakeAssets) GetAsset(symbol string) (*alpaca.Asset, error) {
	return f.asset, f.err
}

type fakeBars struct {
	trade    *alpacadata.Trade
	tradeErr error
	bars     []alpacadata.Bar
	barsErr  error
	req      alpacadata.GetBarsRequest
}

func (f *fakeBars) GetLatestTrade(symbol string, req alpacadata.GetLatestTradeRequest) (*alpacadata.Trade, error) {
	return f.trade, f.tradeErr
}

func (f *fakeBars) GetBars(symbol string, req alpacadata.GetBarsRequest) ([]alpacadata.Bar, error) {
	f.req = req
	return f.bars, f.barsErr
}

func TestAlpacaProvider_Quote(t *testing.T) {
	now := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	data := &fakeBars{
		trade: &alpacadata.Trade{Price: 135.4},
		bars: []alpacadata.Bar{
			{High: 120, Low: 100},
			{High: 152.89, Low: 110},
			{High: 130, Low: 86.62},
		},
	}
	p := &AlpacaProvider{
		assets: &fakeAssets{asset: &alpaca.Asset{Symbol: "NVDA", Name: "NVIDIA Corporation Common Stock"}},
		data:   data,
		logger: zap.NewNop(),
		now:    func() time.Time { return now },
	}
	q, err := p.Quote(context.Background(), "NVDA")
	if err != nil {
		t.Fatal(err)
	}
	if q.Name != "NVIDIA Corporation Common Stock" {
		t.Errorf("name = %q", q.Name)
	}
	if q.Price == nil || *q.Price != 135.4 {
		t.Errorf("price = %v", q.Price)
	}
	if *q.FiftyTwoWeekHigh != 152.89 || *q.FiftyTwoWeekLow != 86.62 {
		t.Errorf("52w = %v/%v", *q.FiftyTwoWeekHigh, *q.FiftyTwoWeekLow)
	}
	if q.Sector != "" || q.MarketCap != nil || q.PERatio != nil || q.EPS != nil {
		t.Errorf("fundamentals should be absent: %+v", q)
	}
	if !data.req.Start.Equal(now.AddDate(-1, 0, 0)) || !data.req.End.Equal(now) {
		t.Errorf("bars range = %v..%v", data.req.Start, data.req.End)
	}
}

func TestAlpacaProvider_AssetError(t *testing.T) {
	p := &AlpacaProvider{
		assets: &fakeAssets{err: errors.New("forbidden")},
		data:   &fakeBars{},
		logger: zap.NewNop(),
		now:    time.Now,
	}
	if _, err := p.Quote(context.Background(), "NVDA"); err == nil {
		t.Error("expected asset error")
	}
}

func TestAlpacaProvider_DataErrorsKeepName(t *testing.T) {
	p := &AlpacaProvider{
		assets: &fakeAssets{asset: &alpaca.Asset{Name: "NVIDIA"}},
		data:   &fakeBars{tradeErr: errors.New("no trade"), barsErr: errors.New("no bars")},
		logger: zap.NewNop(),
		now:    time.Now,
	}
	q, err := p.Quote(context.Background(), "NVDA")
	if err != nil {
		t.Fatal(err)
	}
	if q.Name != "NVIDIA" || q.Price != nil || q.FiftyTwoWeekHigh != nil {
		t.Errorf("quote = %+v", q)
	}
}

func TestNewAlpacaProvider_RequiresCredentials(t *testing.T) {
	if _, err := NewAlpacaProvider("", "", "", "", nil); err == nil {
		t.Error("expected error without credentials")
	}
}
