package llmtesting

import (
	"context"
	"sync"

	"github.com/alex-galey/cloudpilot/internal/llm"
)

// MockClient implements llm.Client for tests without a real model. Replies
// are consumed in order; the last one repeats once the script runs out.
type MockClient struct {
	mu      sync.Mutex
	replies []string
	err     error
	calls   []MockCall
}

// MockCall records one Generate invocation for assertions.
type MockCall struct {
	System  string
	History []llm.Message
}

// NewMockClient creates a mock that plays back the given replies.
func NewMockClient(replies ...string) *MockClient {
	return &MockClient{replies: replies}
}

// NewFailingClient creates a mock whose Generate always fails.
func NewFailingClient(err error) *MockClient {
	return &MockClient{err: err}
}

func (m *MockClient) Generate(ctx context.Context, system string, history []llm.Message) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	recorded := make([]llm.Message, len(history))
	copy(recorded, history)
	m.calls = append(m.calls, MockCall{System: system, History: recorded})

	if m.err != nil {
		return "", m.err
	}
	if len(m.replies) == 0 {
		return "", llm.ErrEmptyResponse
	}

	reply := m.replies[0]
	if len(m.replies) > 1 {
		m.replies = m.replies[1:]
	}
	return reply, nil
}

// Enqueue appends replies to the script.
func (m *MockClient) Enqueue(replies ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies = append(m.replies, replies...)
}

// Calls returns a copy of the recorded invocations.
func (m *MockClient) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns how many times Generate ran.
func (m *MockClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
