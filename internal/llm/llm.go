// Package llm provides chat completion clients behind a provider-neutral interface.
package llm

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ErrEmptyResponse is returned when a provider answers without any text.
var ErrEmptyResponse = errors.New("empty response from chat model")

// Message is one turn of a chat conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatModel completes a conversation with a single reply.
type ChatModel interface {
	Complete(ctx context.Context, messages []Message) (string, error)
	Model() string
}

// splitSystem separates system messages (joined by blank lines) from the conversation turns.
func splitSystem(messages []Message) (string, []Message, error) {
	if len(messages) == 0 {
		return "", nil, errors.New("messages cannot be empty")
	}
	var system []string
	turns := make([]Message, 0, len(messages))
	for _, m := range messages {
		if m.Role == RoleSystem {
			system = append(system, m.Content)
			continue
		}
		turns = append(turns, m)
	}
	if len(turns) == 0 {
		return "", nil, errors.New("at least one non-system message is required")
	}
	return strings.Join(system, "\n\n"), turns, nil
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
