package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SessionContext identifies one conversation session. All per-session state
// (pending plan, history, defaults) is keyed by SessionID; nothing about a
// session may live in process-wide variables.
type SessionContext struct {
	SessionID string
	StartedAt time.Time
	Metadata  map[string]string
}

func NewSessionContext() *SessionContext {
	return &SessionContext{
		SessionID: uuid.NewString(),
		StartedAt: time.Now(),
	}
}

func (sc *SessionContext) GetMetadata(key string) (string, bool) {
	value, exists := sc.Metadata[key]
	return value, exists
}

func (sc *SessionContext) SetMetadata(key, value string) {
	if sc.Metadata == nil {
		sc.Metadata = make(map[string]string)
	}
	sc.Metadata[key] = value
}

type contextKey string

const SessionContextKey contextKey = "session"

func WithSessionContext(ctx context.Context, session *SessionContext) context.Context {
	return context.WithValue(ctx, SessionContextKey, session)
}

func GetSessionContext(ctx context.Context) (*SessionContext, bool) {
	session, ok := ctx.Value(SessionContextKey).(*SessionContext)
	return session, ok
}

// SessionIDFromContext returns the session id, or "" when no session is set.
func SessionIDFromContext(ctx context.Context) string {
	if session, ok := GetSessionContext(ctx); ok {
		return session.SessionID
	}
	return ""
}
