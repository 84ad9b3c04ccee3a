package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// ClaudeChat calls the Anthropic Messages API. System messages become the system block.
type ClaudeChat struct {
	client      anthropic.Client
	model       string
	maxTokens   int
	temperature float32
	timeout     time.Duration
}

// NewClaudeChat creates a Claude chat client for model. baseURL overrides the API endpoint when set.
func NewClaudeChat(apiKey, baseURL, model string, maxTokens int, temperature float32, timeout time.Duration) (*ClaudeChat, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic api key is required")
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &ClaudeChat{
		client:      anthropic.NewClient(opts...),
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		timeout:     timeout,
	}, nil
}

// Complete sends the conversation and concatenates the text blocks of the reply.
func (c *ClaudeChat) Complete(ctx context.Context, messages []Message) (string, error) {
	system, turns, err := splitSystem(messages)
	if err != nil {
		return "", err
	}
	ctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	msgs := make([]anthropic.MessageParam, 0, len(turns))
	for _, m := range turns {
		block := anthropic.NewTextBlock(m.Content)
		if m.Role == RoleAssistant {
			msgs = append(msgs, anthropic.NewAssistantMessage(block))
		} else {
			msgs = append(msgs, anthropic.NewUserMessage(block))
		}
	}
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: int64(c.maxTokens),
		Messages:  msgs,
	}
	if c.temperature > 0 {
		params.Temperature = anthropic.Float(float64(c.temperature))
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("claude messages request failed: %w", err)
	}
	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return "", ErrEmptyResponse
	}
	return text.String(), nil
}

// Model returns the model name.
func (c *ClaudeChat) Model() string {
	return c.model
}
