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

const finvizPage = `<html><body>
<table id="news-table">
<tr><td width="130">Jan-02-26 09:30AM</td><td><a href="https://example.com/a1">NVIDIA   beats
 estimates</a><span>(Reuters)</span></td></tr>
<tr><td>10:15AM</td><td><a href="/news/a2">Chip demand surges</a></td></tr>
<tr><td>10:20AM</td><td>No link in this row</td></tr>
<tr><td>11:00AM</td><td><a href="">Empty href</a></td></tr>
<tr><td>12:00PM</td><td><a href="https://example.com/a3">Third</a></td></tr>
<tr><td>01:00PM</td><td><a href="https://example.com/a4">Fourth</a></td></tr>
<tr><td>02:00PM</td><td><a href="https://example.com/a5">Fifth</a></td></tr>
<tr><td>03:00PM</td><td><a href="https://example.com/a6">Sixth</a></td></tr>
</table>
<table><tr><td><a href="https://example.com/other">Not news</a></td></tr></table>
</body></html>`

func finvizServer(t *testing.T, status int, body string) (*httptest.Server, *http.Request) {
	t.Helper()
	var got http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = *r
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

func TestFinvizSource_Fetch(t *testing.T) {
	srv, req := finvizServer(t, http.StatusOK, finvizPage)
	s, err := NewFinvizSource(srv.URL, WithUserAgent("test-agent"))
	if err != nil {
		t.Fatal(err)
	}
	res := s.Fetch(context.Background(), "NVDA")
	if res.Err != nil {
		t.Fatal(res.Err)
	}
	if req.URL.Path != "/quote.ashx" || req.URL.Query().Get("t") != "NVDA" {
		t.Errorf("requested %s", req.URL)
	}
	if ua := req.Header.Get("User-Agent"); ua != "test-agent" {
		t.Errorf("User-Agent = %q", ua)
	}
	if len(res.Articles) != DefaultLimit {
		t.Fatalf("got %d articles, want %d", len(res.Articles), DefaultLimit)
	}
	first := res.Articles[0]
	if first.Title != "NVIDIA beats estimates" || first.Summary != first.Title {
		t.Errorf("title/summary = %q/%q", first.Title, first.Summary)
	}
	if first.Link != "https://example.com/a1" || first.PublishedDate != "Jan-02-26 09:30AM" {
		t.Errorf("link/date = %q/%q", first.Link, first.PublishedDate)
	}
	if first.Source != "Finviz" || first.Ticker != "NVDA" {
		t.Errorf("source/ticker = %q/%q", first.Source, first.Ticker)
	}
	if res.Articles[1].Link != srv.URL+"/news/a2" || res.Articles[1].PublishedDate != "10:15AM" {
		t.Errorf("relative link = %q", res.Articles[1].Link)
	}
	if last := res.Articles[4]; last.Title != "Fifth" {
		t.Errorf("last title = %q", last.Title)
	}
}

func TestFinvizSource_LimitOption(t *testing.T) {
	srv, _ := finvizServer(t, http.StatusOK, finvizPage)
	s, _ := NewFinvizSource(srv.URL, WithLimit(2))
	if res := s.Fetch(context.Background(), "NVDA"); len(res.Articles) != 2 {
		t.Errorf("got %d articles, want 2", len(res.Articles))
	}
}

func TestFinvizSource_NoTable(t *testing.T) {
	srv, _ := finvizServer(t, http.StatusOK, "<html><body><p>nothing</p></body></html>")
	s, _ := NewFinvizSource(srv.URL)
	res := s.Fetch(context.Background(), "ZZZZ")
	if !res.Empty() || res.Err != nil {
		t.Errorf("expected empty result without error, got %+v", res)
	}
}

func TestFinvizSource_HTTPError(t *testing.T) {
	srv, _ := finvizServer(t, http.StatusForbidden, "blocked")
	s, _ := NewFinvizSource(srv.URL)
	res := s.Fetch(context.Background(), "NVDA")
	if !res.Empty() {
		t.Errorf("expected no articles, got %d", len(res.Articles))
	}
	var se *SourceError
	if !errors.As(res.Err, &se) || se.Source != "Finviz" || se.Ticker != "NVDA" {
		t.Fatalf("expected SourceError, got %v", res.Err)
	}
	if !strings.Contains(se.Error(), "403") {
		t.Errorf("error = %q", se.Error())
	}
}

func TestFinvizSource_TransportError(t *testing.T) {
	srv, _ := finvizServer(t, http.StatusOK, finvizPage)
	url := srv.URL
	srv.Close()
	s, _ := NewFinvizSource(url)
	if res := s.Fetch(context.Background(), "NVDA"); res.Err == nil || !res.Empty() {
		t.Errorf("expected recovered transport error, got %+v", res)
	}
}
