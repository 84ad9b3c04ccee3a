// Package analysis turns a finance snapshot and retrieved news into an LLM investment analysis.
package analysis

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hyperjump/finsight/internal/models"
)

// SystemPrompt is the persona sent with every analysis request.
const SystemPrompt = "You are a helpful financial assistant."

const promptTemplate = `You are a financial analyst. Analyze the following company based on the provided financial data and recent news.

Company: %s (%s)

Financial Data:
- Price: %s
- Market Cap: %s
- PE Ratio: %s
- EPS: %s
- 52 Week High: %s
- 52 Week Low: %s

Recent News:
%s

Task:
Provide a comprehensive investment analysis. Discuss the financial health based on the metrics and how the recent news might impact the stock. Conclude with a recommendation (Buy, Hold, or Sell) and the reasoning.
`

// FormatNews renders one "- {title} ({published_date}): {summary}" line per article.
func FormatNews(articles []models.NewsArticle) string {
	lines := make([]string, len(articles))
	for i, a := range articles {
		lines[i] = fmt.Sprintf("- %s (%s): %s", a.Title, a.PublishedDate, a.Summary)
	}
	return strings.Join(lines, "\n")
}

// BuildPrompt returns the user prompt for snap with news already formatted by FormatNews.
func BuildPrompt(snap *models.FinanceSnapshot, news string) string {
	return fmt.Sprintf(promptTemplate,
		snap.Name, snap.Ticker,
		formatFloat(snap.Price),
		snap.MarketCap,
		formatFloat(snap.PERatio),
		formatFloat(snap.EPS),
		formatFloat(snap.FiftyTwoWeekHigh),
		formatFloat(snap.FiftyTwoWeekLow),
		news,
	)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
