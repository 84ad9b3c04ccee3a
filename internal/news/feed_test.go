package news

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const googleNewsRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>NVDA - Google News</title>
<item>
  <title>Nvidia stock rallies</title>
  <link>https://news.example.com/1</link>
  <pubDate>Fri, 02 Jan 2026 14:00:00 GMT</pubDate>
  <description>&lt;a href="https://news.example.com/1"&gt;Nvidia stock rallies&lt;/a&gt;&amp;nbsp;&amp;nbsp;&lt;font color="#6f6f6f"&gt;Reuters&lt;/font&gt;</description>
</item>
<item>
  <title>Nvidia suppliers expand</title>
  <link>https://news.example.com/2</link>
  <pubDate>Fri, 02 Jan 2026 13:00:00 GMT</pubDate>
</item>
<item>
  <title>No link</title>
</item>
<item><title>Three</title><link>https://news.example.com/3</link></item>
<item><title>Four</title><link>https://news.example.com/4</link></item>
<item><title>Five</title><link>https://news.example.com/5</link></item>
<item><title>Six</title><link>https://news.example.com/6</link></item>
</channel></rss>`

func feedServer(t *testing.T, status int, body string) (*httptest.Server, *string) {
	t.Helper()
	var query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/rss+xml")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &query
}

func TestFeedSource_Fetch(t *testing.T) {
	srv, query := feedServer(t, http.StatusOK, googleNewsRSS)
	s, err := NewFeedSource(srv.URL + "/rss/search?q=%s")
	if err != nil {
		t.Fatal(err)
	}
	res := s.Fetch(context.Background(), "NVDA")
	if res.Err != nil {
		t.Fatal(res.Err)
	}
	if *query != "NVDA" {
		t.Errorf("query = %q", *query)
	}
	if len(res.Articles) != DefaultLimit {
		t.Fatalf("got %d articles, want %d", len(res.Articles), DefaultLimit)
	}
	first := res.Articles[0]
	if first.Source != "Google News" || first.Ticker != "NVDA" || first.Link != "https://news.example.com/1" {
		t.Errorf("first = %+v", first)
	}
	if first.PublishedDate != "Fri, 02 Jan 2026 14:00:00 GMT" {
		t.Errorf("published = %q", first.PublishedDate)
	}
	if strings.Contains(first.Summary, "<") || !strings.Contains(first.Summary, "Reuters") {
		t.Errorf("summary should be plain text, got %q", first.Summary)
	}
	if second := res.Articles[1]; second.Summary != "Nvidia suppliers expand" {
		t.Errorf("summary should fall back to title, got %q", second.Summary)
	}
	if res.Articles[2].Title != "Three" {
		t.Errorf("item without link should be skipped, got %q", res.Articles[2].Title)
	}
}

func TestFeedSource_HTTPError(t *testing.T) {
	srv, _ := feedServer(t, http.StatusServiceUnavailable, "down")
	s, _ := NewFeedSource(srv.URL + "/rss?q=%s")
	res := s.Fetch(context.Background(), "NVDA")
	var se *SourceError
	if !res.Empty() || !errors.As(res.Err, &se) || se.Source != "Google News" {
		t.Errorf("expected recovered SourceError, got %+v", res)
	}
}

func TestFeedSource_Malformed(t *testing.T) {
	srv, _ := feedServer(t, http.StatusOK, "this is not xml")
	s, _ := NewFeedSource(srv.URL + "/rss?q=%s")
	if res := s.Fetch(context.Background(), "NVDA"); res.Err == nil || !res.Empty() {
		t.Errorf("expected parse error, got %+v", res)
	}
}

func TestNewFeedSource_RequiresPlaceholder(t *testing.T) {
	if _, err := NewFeedSource("https://news.google.com/rss/search"); err == nil {
		t.Errorf("expected error for template without %%s")
	}
}
