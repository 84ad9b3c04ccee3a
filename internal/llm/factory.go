package llm

import (
	"context"
	"fmt"

	"github.com/hyperjump/finsight/internal/config"
)

// NewChatModel creates the chat model selected by cfg.Provider.
func NewChatModel(ctx context.Context, cfg config.ChatConfig) (ChatModel, error) {
	switch cfg.Provider {
	case "openai", "":
		return NewOpenAIChat(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.MaxTokens, cfg.Temperature, cfg.Timeout)
	case "gemini":
		return NewGeminiChat(ctx, cfg.APIKey, cfg.Model, cfg.MaxTokens, cfg.Temperature, cfg.Timeout)
	case "claude":
		return NewClaudeChat(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.MaxTokens, cfg.Temperature, cfg.Timeout)
	case "mock":
		return NewMockChat(), nil
	default:
		return nil, fmt.Errorf("unknown chat provider: %s (supported: openai, gemini, claude, mock)", cfg.Provider)
	}
}
