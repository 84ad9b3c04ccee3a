package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hyperjump/finsight/internal/llm"
	"github.com/hyperjump/finsight/internal/models"
)

func nvda() *models.FinanceSnapshot {
	return &models.FinanceSnapshot{
		Ticker: "NVDA", Name: "NVIDIA Corporation", Price: 135.4, MarketCap: "3012345678901",
		PERatio: 55.3, EPS: 2.53, FiftyTwoWeekHigh: 152.89, FiftyTwoWeekLow: 0,
	}
}

func TestFormatNews(t *testing.T) {
	got := FormatNews([]models.NewsArticle{
		{Title: "A", PublishedDate: "Jan-02-26", Summary: "first"},
		{Title: "B", PublishedDate: "", Summary: "second"},
	})
	want := "- A (Jan-02-26): first\n- B (): second"
	if got != want {
		t.Errorf("FormatNews = %q, want %q", got, want)
	}
	if FormatNews(nil) != "" {
		t.Error("no news should format as empty string")
	}
}

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt(nvda(), "- A (today): a")
	for _, want := range []string{
		"Company: NVIDIA Corporation (NVDA)",
		"- Price: 135.4\n",
		"- Market Cap: 3012345678901\n",
		"- PE Ratio: 55.3\n",
		"- EPS: 2.53\n",
		"- 52 Week High: 152.89\n",
		"- 52 Week Low: 0\n",
		"Recent News:\n- A (today): a\n",
		"(Buy, Hold, or Sell)",
	} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q:\n%s", want, p)
		}
	}
}

func TestBuildPrompt_EmptyNews(t *testing.T) {
	p := BuildPrompt(nvda(), "")
	if !strings.Contains(p, "Recent News:\n\n\nTask:") {
		t.Errorf("news section should be empty:\n%s", p)
	}
}

func TestCompose(t *testing.T) {
	chat := llm.NewMockChat()
	news := []models.NewsArticle{{Title: "A", PublishedDate: "today", Summary: "a"}}
	text, err := NewComposer(chat, nil).Compose(context.Background(), "NVDA", nvda(), news)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(text, "Hold") || !strings.Contains(text, "1 news items") {
		t.Errorf("text = %q", text)
	}
	calls := chat.Calls()
	if len(calls) != 1 {
		t.Fatalf("expected one completion, got %d", len(calls))
	}
	msgs := calls[0]
	if len(msgs) != 2 || msgs[0].Role != llm.RoleSystem || msgs[0].Content != SystemPrompt || msgs[1].Role != llm.RoleUser {
		t.Errorf("messages = %+v", msgs)
	}
}

func TestCompose_ProviderError(t *testing.T) {
	boom := errors.New("rate limited")
	chat := &llm.MockChat{Err: boom}
	_, err := NewComposer(chat, nil).Compose(context.Background(), "NVDA", nvda(), nil)
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped provider error, got %v", err)
	}
	if len(chat.Calls()) != 1 {
		t.Errorf("no retry expected, got %d calls", len(chat.Calls()))
	}
}
