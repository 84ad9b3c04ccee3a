package news

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/hyperjump/finsight/internal/models"
	"github.com/hyperjump/finsight/pkg/utils"
	"go.uber.org/zap"
)

// FinvizName is the Source value of articles scraped from Finviz.
const FinvizName = "Finviz"

// FinvizSource scrapes the news table of a Finviz quote page.
type FinvizSource struct {
	httpSource
	baseURL *url.URL
}

// NewFinvizSource creates a source for the Finviz site at baseURL.
func NewFinvizSource(baseURL string, opts ...Option) (*FinvizSource, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid finviz url: %w", err)
	}
	s := &FinvizSource{httpSource: defaultHTTPSource(), baseURL: u}
	for _, opt := range opts {
		opt(&s.httpSource)
	}
	return s, nil
}

// Name returns "Finviz".
func (s *FinvizSource) Name() string {
	return FinvizName
}

// Fetch downloads the quote page for ticker and returns up to the configured number of articles.
// The title doubles as the summary; the date cell is kept as printed.
func (s *FinvizSource) Fetch(ctx context.Context, ticker string) Result {
	pageURL := s.baseURL.JoinPath("quote.ashx")
	pageURL.RawQuery = url.Values{"t": {ticker}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL.String(), nil)
	if err != nil {
		return failed(FinvizName, ticker, err)
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return failed(FinvizName, ticker, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return failed(FinvizName, ticker, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return failed(FinvizName, ticker, fmt.Errorf("parse page: %w", err))
	}

	var articles []models.NewsArticle
	doc.Find("#news-table tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		a := row.Find("a").First()
		href, ok := a.Attr("href")
		href = strings.TrimSpace(href)
		if !ok || href == "" {
			return true
		}
		title := utils.CollapseSpace(a.Text())
		articles = append(articles, models.NewsArticle{
			Ticker:        ticker,
			Title:         title,
			Link:          s.resolve(href),
			Source:        FinvizName,
			PublishedDate: strings.TrimSpace(row.Find("td").First().Text()),
			Summary:       title,
		})
		return len(articles) < s.limit
	})
	s.logger.Debug("finviz news scraped", zap.String("ticker", ticker), zap.Int("articles", len(articles)))
	return Result{Articles: articles}
}

// resolve turns site-relative links into absolute ones.
func (s *FinvizSource) resolve(href string) string {
	ref, err := url.Parse(href)
	if err != nil || ref.IsAbs() {
		return href
	}
	return s.baseURL.ResolveReference(ref).String()
}
