package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MockChat is a deterministic chat model for tests and offline runs. It records every
// conversation it receives and answers with a short summary of the last user message.
type MockChat struct {
	mu    sync.Mutex
	calls [][]Message
	// Reply, when set, is returned instead of the generated summary.
	Reply string
	// Err, when set, is returned from every call.
	Err error
}

// NewMockChat returns a MockChat.
func NewMockChat() *MockChat {
	return &MockChat{}
}

// Complete records messages and returns a canned analysis.
func (m *MockChat) Complete(ctx context.Context, messages []Message) (string, error) {
	m.mu.Lock()
	cp := make([]Message, len(messages))
	copy(cp, messages)
	m.calls = append(m.calls, cp)
	m.mu.Unlock()

	if m.Err != nil {
		return "", m.Err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if m.Reply != "" {
		return m.Reply, nil
	}
	var prompt string
	for _, msg := range messages {
		if msg.Role == RoleUser {
			prompt = msg.Content
		}
	}
	return fmt.Sprintf("## Summary\n\nOffline analysis based on %d news items.\n\n**Recommendation: Hold**", countNewsItems(prompt)), nil
}

// countNewsItems counts the bullet lines between "Recent News:" and "Task:".
func countNewsItems(prompt string) int {
	i := strings.Index(prompt, "Recent News:")
	if i < 0 {
		return 0
	}
	section := prompt[i:]
	if j := strings.Index(section, "Task:"); j >= 0 {
		section = section[:j]
	}
	n := 0
	for _, line := range strings.Split(section, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "- ") {
			n++
		}
	}
	return n
}

// Calls returns the conversations received so far.
func (m *MockChat) Calls() [][]Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]Message, len(m.calls))
	copy(out, m.calls)
	return out
}

// Model returns "mock".
func (m *MockChat) Model() string {
	return "mock"
}
