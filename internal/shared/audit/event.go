package audit

import (
	"context"
	"log/slog"
	"time"
)

// Event records one dispatched provisioning action. Every dispatch produces
// exactly one event, whether it succeeded or not.
type Event struct {
	Timestamp    time.Time
	SessionID    string
	Tool         string
	Parameters   map[string]interface{}
	Result       string
	ResourceID   string
	ErrorMessage string
	Duration     time.Duration
}

type EventSink interface {
	Record(ctx context.Context, event Event) error
	Close() error
}

type NoOpSink struct{}

func NewNoOpSink() *NoOpSink {
	return &NoOpSink{}
}

func (s *NoOpSink) Record(ctx context.Context, event Event) error {
	return nil
}

func (s *NoOpSink) Close() error {
	return nil
}

// SlogSink writes audit events to the structured logger.
type SlogSink struct {
	logger *slog.Logger
}

func NewSlogSink(logger *slog.Logger) *SlogSink {
	return &SlogSink{logger: logger.With("component", "audit")}
}

func (s *SlogSink) Record(ctx context.Context, event Event) error {
	s.logger.Info("Provisioning action dispatched",
		"session_id", event.SessionID,
		"tool", event.Tool,
		"result", event.Result,
		"resource_id", event.ResourceID,
		"error", event.ErrorMessage,
		"duration", event.Duration)
	return nil
}

func (s *SlogSink) Close() error {
	return nil
}
