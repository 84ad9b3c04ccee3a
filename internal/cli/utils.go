// Package cli provides CLI output helpers for finsight.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/hyperjump/finsight/internal/models"
	"github.com/hyperjump/finsight/pkg/utils"
)

// OutputFormat is the format for analysis output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// ParseOutputFormat validates a --output flag value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case OutputText, "":
		return OutputText, nil
	case OutputJSON:
		return OutputJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q (use text or json)", s)
	}
}

// WriteAnalysis writes an analysis to w in the given format.
func WriteAnalysis(w io.Writer, a *models.Analysis, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(a)
	default:
		writeAnalysisText(w, a)
		return nil
	}
}

func writeSnapshot(w io.Writer, s *models.FinanceSnapshot) {
	fmt.Fprintf(w, "\n%s (%s) | %s\n", s.Name, s.Ticker, s.Sector)
	fmt.Fprintln(w, "─────────────────────────────────────────────────────────")
	fmt.Fprintf(w, "Price: %s | Market Cap: %s | P/E: %s | EPS: %s\n",
		num(s.Price), s.MarketCap, num(s.PERatio), num(s.EPS))
	fmt.Fprintf(w, "52 Week: %s - %s\n", num(s.FiftyTwoWeekLow), num(s.FiftyTwoWeekHigh))
}

func writeAnalysisText(w io.Writer, a *models.Analysis) {
	if a.Snapshot != nil {
		writeSnapshot(w, a.Snapshot)
	}
	if len(a.Articles) > 0 {
		fmt.Fprintf(w, "\n--- %d new articles (%s) ---\n", len(a.Articles), a.NewsSource)
		for _, art := range a.Articles {
			fmt.Fprintf(w, "• %s [%s]\n  %s\n", utils.Truncate(art.Title, 100), art.PublishedDate, art.Link)
		}
	} else {
		fmt.Fprintln(w, "\n--- no new articles ---")
	}
	if len(a.Context) > 0 {
		fmt.Fprintf(w, "\n--- context (%d retrieved) ---\n", len(a.Context))
		for _, art := range a.Context {
			fmt.Fprintf(w, "• %s\n", utils.Truncate(art.Title, 100))
		}
	}
	fmt.Fprintf(w, "\n%s\n\n", a.Text)
	fmt.Fprintf(w, "(completed in %dms)\n", a.Duration.Milliseconds())
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// TickerStatus is what storage holds for one ticker.
type TickerStatus struct {
	Ticker   string                  `json:"ticker"`
	Snapshot *models.FinanceSnapshot `json:"snapshot,omitempty"`
	Articles int64                   `json:"articles"`
	Latest   []models.NewsArticle    `json:"latest"`
}

// WriteStatus writes a ticker status to w in the given format.
func WriteStatus(w io.Writer, st *TickerStatus, format OutputFormat) error {
	if format == OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(st)
	}
	if st.Snapshot != nil {
		writeSnapshot(w, st.Snapshot)
		fmt.Fprintf(w, "Last updated: %s\n", st.Snapshot.LastUpdated.UTC().Format(time.RFC3339))
	} else {
		fmt.Fprintf(w, "\n%s: no snapshot stored\n", st.Ticker)
	}
	fmt.Fprintf(w, "\nstored articles: %d\n", st.Articles)
	for _, art := range st.Latest {
		fmt.Fprintf(w, "• %s [%s]\n", utils.Truncate(art.Title, 100), art.Source)
	}
	return nil
}
