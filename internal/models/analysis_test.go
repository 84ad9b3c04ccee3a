package models

import "testing"

func TestAnalysisRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ticker  string
		want    string
		wantErr bool
	}{
		{"empty ticker", "", "", true},
		{"blank ticker", "   ", "", true},
		{"lowercase is uppercased", "nvda", "NVDA", false},
		{"surrounding space trimmed", "  aapl ", "AAPL", false},
		{"dotted ticker kept", "brk.b", "BRK.B", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &AnalysisRequest{Ticker: tt.ticker}
			err := req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if req.Ticker != tt.want {
				t.Errorf("Ticker = %q, want %q", req.Ticker, tt.want)
			}
		})
	}
}

func TestNewsArticle_EmbeddingText(t *testing.T) {
	a := NewsArticle{Title: "Nvidia beats estimates", Summary: "Revenue up 80%"}
	if got := a.EmbeddingText(); got != "Nvidia beats estimates - Revenue up 80%" {
		t.Errorf("EmbeddingText() = %q", got)
	}
}
