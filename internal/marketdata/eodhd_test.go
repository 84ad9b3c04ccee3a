package marketdata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newEODHDServer(t *testing.T, fundamentals, realtime string, realtimeStatus int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api_token") != "demo" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasPrefix(r.URL.Path, "/fundamentals/NVDA.US"):
			_, _ = w.Write([]byte(fundamentals))
		case strings.HasPrefix(r.URL.Path, "/real-time/NVDA.US"):
			w.WriteHeader(realtimeStatus)
			_, _ = w.Write([]byte(realtime))
		default:
			http.Error(w, "Ticker Not Found.", http.StatusNotFound)
		}
	}))
}

const nvdaFundamentals = `{
	"General": {"Code": "NVDA", "Name": "NVIDIA Corporation", "Sector": "Technology"},
	"Highlights": {"MarketCapitalization": 3012345678901, "PERatio": 55.3, "EarningsShare": 2.53},
	"Valuation": {"TrailingPE": 54.1},
	"Technicals": {"52WeekHigh": 152.89, "52WeekLow": 86.62}
}`

func TestEODHDClient_Quote(t *testing.T) {
	srv := newEODHDServer(t, nvdaFundamentals, `{"code":"NVDA.US","close":135.4,"previousClose":134.0}`, http.StatusOK)
	defer srv.Close()

	c := NewEODHDClient("demo", WithBaseURL(srv.URL))
	q, err := c.Quote(context.Background(), "NVDA")
	if err != nil {
		t.Fatal(err)
	}
	if q.Name != "NVIDIA Corporation" || q.Sector != "Technology" {
		t.Errorf("name/sector = %q/%q", q.Name, q.Sector)
	}
	if q.Price == nil || *q.Price != 135.4 {
		t.Errorf("price = %v", q.Price)
	}
	if q.MarketCap == nil || FormatMarketCap(*q.MarketCap) != "3012345678901" {
		t.Errorf("market cap = %v", q.MarketCap)
	}
	if q.PERatio == nil || *q.PERatio != 55.3 || q.EPS == nil || *q.EPS != 2.53 {
		t.Errorf("pe/eps = %v/%v", q.PERatio, q.EPS)
	}
	if q.FiftyTwoWeekHigh == nil || *q.FiftyTwoWeekHigh != 152.89 || q.FiftyTwoWeekLow == nil || *q.FiftyTwoWeekLow != 86.62 {
		t.Errorf("52w = %v/%v", q.FiftyTwoWeekHigh, q.FiftyTwoWeekLow)
	}
}

func TestEODHDClient_QuoteMissingFields(t *testing.T) {
	fundamentals := `{"General": {"Name": "Tiny Co"}, "Highlights": {"MarketCapitalization": null, "PERatio": "NA", "EarningsShare": null}}`
	srv := newEODHDServer(t, fundamentals, `{"code":"NVDA.US","close":"NA","previousClose":"NA"}`, http.StatusOK)
	defer srv.Close()

	c := NewEODHDClient("demo", WithBaseURL(srv.URL))
	q, err := c.Quote(context.Background(), "nvda")
	if err != nil {
		t.Fatal(err)
	}
	if q.Sector != "" || q.Price != nil || q.MarketCap != nil || q.PERatio != nil || q.EPS != nil ||
		q.FiftyTwoWeekHigh != nil || q.FiftyTwoWeekLow != nil {
		t.Errorf("missing fields should stay unset: %+v", q)
	}
	if !q.HasData() {
		t.Error("a quote with a name has data")
	}
}

func TestEODHDClient_QuoteFallsBackToTrailingPE(t *testing.T) {
	fundamentals := `{"General": {"Name": "NVIDIA"}, "Highlights": {"PERatio": 0}, "Valuation": {"TrailingPE": 54.1}}`
	srv := newEODHDServer(t, fundamentals, `{}`, http.StatusOK)
	defer srv.Close()

	q, err := NewEODHDClient("demo", WithBaseURL(srv.URL)).Quote(context.Background(), "NVDA")
	if err != nil {
		t.Fatal(err)
	}
	if q.PERatio == nil || *q.PERatio != 54.1 {
		t.Errorf("pe = %v, want trailing 54.1", q.PERatio)
	}
}

func TestEODHDClient_RealTimeFailureKeepsQuote(t *testing.T) {
	srv := newEODHDServer(t, nvdaFundamentals, `error`, http.StatusInternalServerError)
	defer srv.Close()

	q, err := NewEODHDClient("demo", WithBaseURL(srv.URL)).Quote(context.Background(), "NVDA")
	if err != nil {
		t.Fatal(err)
	}
	if q.Price != nil {
		t.Errorf("price should be unset, got %v", *q.Price)
	}
}

func TestEODHDClient_NotFound(t *testing.T) {
	srv := newEODHDServer(t, nvdaFundamentals, `{}`, http.StatusOK)
	defer srv.Close()

	_, err := NewEODHDClient("demo", WithBaseURL(srv.URL)).Quote(context.Background(), "ZZZZ")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestEODHDClient_APIError(t *testing.T) {
	srv := newEODHDServer(t, nvdaFundamentals, `{}`, http.StatusOK)
	defer srv.Close()

	_, err := NewEODHDClient("wrong", WithBaseURL(srv.URL)).Quote(context.Background(), "NVDA")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 APIError, got %v", err)
	}
}

func TestEODHDClient_Symbol(t *testing.T) {
	c := NewEODHDClient("demo")
	tests := []struct {
		in, want string
	}{
		{"NVDA", "NVDA.US"},
		{" aapl ", "AAPL.US"},
		{"BRK.B", "BRK.B.US"},
		{"BHP.AU", "BHP.AU"},
		{"VOD.LSE", "VOD.LSE"},
	}
	for _, tt := range tests {
		if got := c.Symbol(tt.in); got != tt.want {
			t.Errorf("Symbol(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if got := NewEODHDClient("demo", WithExchange("AU")).Symbol("BHP"); got != "BHP.AU" {
		t.Errorf("custom exchange: got %q", got)
	}
}
