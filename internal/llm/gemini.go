package llm

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"
)

// GeminiChat calls the Gemini GenerateContent API. System messages become the system instruction.
type GeminiChat struct {
	client      *genai.Client
	model       string
	maxTokens   int
	temperature float32
	timeout     time.Duration
}

// NewGeminiChat creates a Gemini chat client for model.
func NewGeminiChat(ctx context.Context, apiKey, model string, maxTokens int, temperature float32, timeout time.Duration) (*GeminiChat, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiChat{client: client, model: model, maxTokens: maxTokens, temperature: temperature, timeout: timeout}, nil
}

func toGeminiContents(turns []Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(turns))
	for _, m := range turns {
		role := genai.Role(genai.RoleUser)
		if m.Role == RoleAssistant {
			role = genai.Role(genai.RoleModel)
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}
	return contents
}

// Complete sends the conversation and returns the generated text.
func (c *GeminiChat) Complete(ctx context.Context, messages []Message) (string, error) {
	system, turns, err := splitSystem(messages)
	if err != nil {
		return "", err
	}
	ctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(c.temperature),
		MaxOutputTokens: int32(c.maxTokens),
	}
	if system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}
	resp, err := c.client.Models.GenerateContent(ctx, c.model, toGeminiContents(turns), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate content failed: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// Model returns the model name.
func (c *GeminiChat) Model() string {
	return c.model
}
