// Package llm abstracts the text-generation service behind a small client
// interface. The service returns one text blob per call; no directive schema
// is enforced upstream, so callers must parse defensively.
package llm

import (
	"context"
	"errors"
)

// Role identifies who produced a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of conversation context sent to the service.
type Message struct {
	Role    Role
	Content string
}

// ErrEmptyResponse is returned when the service answered without usable
// text.
var ErrEmptyResponse = errors.New("text-generation service returned an empty response")

// Client generates one assistant response from a system instruction and the
// recent conversation history. Implementations must honor ctx cancellation
// and deadlines.
type Client interface {
	Generate(ctx context.Context, system string, history []Message) (string, error)
}
