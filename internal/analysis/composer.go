package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/hyperjump/finsight/internal/llm"
	"github.com/hyperjump/finsight/internal/models"
	"go.uber.org/zap"
)

// Composer asks a chat model for an analysis of one company.
type Composer struct {
	chat   llm.ChatModel
	logger *zap.Logger
}

// NewComposer creates a composer using chat.
func NewComposer(chat llm.ChatModel, logger *zap.Logger) *Composer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Composer{chat: chat, logger: logger}
}

// Messages returns the system and user messages for one analysis request.
func Messages(snap *models.FinanceSnapshot, news []models.NewsArticle) []llm.Message {
	return []llm.Message{
		{Role: llm.RoleSystem, Content: SystemPrompt},
		{Role: llm.RoleUser, Content: BuildPrompt(snap, FormatNews(news))},
	}
}

// Compose sends a single completion request and returns the model's text unchanged.
func (c *Composer) Compose(ctx context.Context, ticker string, snap *models.FinanceSnapshot, news []models.NewsArticle) (string, error) {
	if snap == nil {
		snap = &models.FinanceSnapshot{Ticker: ticker, Name: models.NotAvailable, MarketCap: models.NotAvailable}
	}
	start := time.Now()
	text, err := c.chat.Complete(ctx, Messages(snap, news))
	if err != nil {
		return "", fmt.Errorf("analysis for %s failed: %w", ticker, err)
	}
	c.logger.Debug("analysis composed",
		zap.String("ticker", ticker),
		zap.String("model", c.chat.Model()),
		zap.Int("news", len(news)),
		zap.Duration("took", time.Since(start)))
	return text, nil
}
