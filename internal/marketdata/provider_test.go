package marketdata

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/hyperjump/finsight/internal/config"
	"github.com/shopspring/decimal"
)

func TestNumber_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in    string
		valid bool
		want  float64
	}{
		{`12.5`, true, 12.5},
		{`"12.5"`, true, 12.5},
		{`null`, false, 0},
		{`"NA"`, false, 0},
		{`""`, false, 0},
		{`"abc"`, false, 0},
	}
	for _, tt := range tests {
		var n number
		if err := json.Unmarshal([]byte(tt.in), &n); err != nil {
			t.Fatalf("Unmarshal(%s): %v", tt.in, err)
		}
		if n.Valid != tt.valid || n.Value != tt.want {
			t.Errorf("Unmarshal(%s) = %+v", tt.in, n)
		}
	}
}

func TestFormatMarketCap(t *testing.T) {
	d, _ := decimal.NewFromString("3.012345678901e12")
	if got := FormatMarketCap(d); got != "3012345678901" {
		t.Errorf("FormatMarketCap = %s", got)
	}
	if got := FormatMarketCap(decimal.NewFromFloat(1234.6)); got != "1235" {
		t.Errorf("FormatMarketCap rounding = %s", got)
	}
}

func TestQuote_HasData(t *testing.T) {
	var nilQuote *Quote
	if nilQuote.HasData() {
		t.Error("nil quote has no data")
	}
	if (&Quote{Symbol: "X"}).HasData() {
		t.Error("quote without name or price has no data")
	}
	if !(&Quote{Price: floatPtr(1)}).HasData() {
		t.Error("quote with price has data")
	}
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(config.MarketConfig{Provider: "eodhd", APIKey: "demo", RateLimit: 5, Timeout: time.Second}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if p.Name() != "eodhd" {
		t.Errorf("Name = %s", p.Name())
	}
	if _, err := NewProvider(config.MarketConfig{Provider: "eodhd"}, nil); err == nil {
		t.Error("eodhd without key should fail")
	}
	if _, err := NewProvider(config.MarketConfig{Provider: "yahoo"}, nil); err == nil {
		t.Error("unknown provider should fail")
	}
}
