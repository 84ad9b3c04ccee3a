package news

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/hyperjump/finsight/internal/models"
	"github.com/hyperjump/finsight/pkg/utils"
	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"
)

// FeedName is the Source value of articles read from the news feed.
const FeedName = "Google News"

// FeedSource reads an RSS search feed. The URL template holds one %s for the ticker.
type FeedSource struct {
	httpSource
	urlTemplate string
	converter   *md.Converter
}

// NewFeedSource creates a feed source for urlTemplate.
func NewFeedSource(urlTemplate string, opts ...Option) (*FeedSource, error) {
	if !strings.Contains(urlTemplate, "%s") {
		return nil, fmt.Errorf("feed url %q has no %%s placeholder", urlTemplate)
	}
	s := &FeedSource{
		httpSource:  defaultHTTPSource(),
		urlTemplate: urlTemplate,
		converter:   md.NewConverter("", true, nil),
	}
	for _, opt := range opts {
		opt(&s.httpSource)
	}
	return s, nil
}

// Name returns "Google News".
func (s *FeedSource) Name() string {
	return FeedName
}

// Fetch parses the feed for ticker and returns up to the configured number of items.
func (s *FeedSource) Fetch(ctx context.Context, ticker string) Result {
	parser := gofeed.NewParser()
	parser.Client = s.client
	if s.userAgent != "" {
		parser.UserAgent = s.userAgent
	}
	feedURL := fmt.Sprintf(s.urlTemplate, url.QueryEscape(ticker))
	feed, err := parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return failed(FeedName, ticker, err)
	}

	articles := make([]models.NewsArticle, 0, s.limit)
	for _, item := range feed.Items {
		if len(articles) == s.limit {
			break
		}
		if item == nil || strings.TrimSpace(item.Link) == "" {
			continue
		}
		title := utils.CollapseSpace(item.Title)
		articles = append(articles, models.NewsArticle{
			Ticker:        ticker,
			Title:         title,
			Link:          strings.TrimSpace(item.Link),
			Source:        FeedName,
			PublishedDate: item.Published,
			Summary:       utils.OrDefault(s.plainText(item.Description), title),
		})
	}
	s.logger.Debug("feed news read", zap.String("ticker", ticker), zap.Int("articles", len(articles)))
	return Result{Articles: articles}
}

func (s *FeedSource) plainText(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}
	text, err := s.converter.ConvertString(html)
	if err != nil {
		return utils.CollapseSpace(html)
	}
	return utils.CollapseSpace(text)
}
