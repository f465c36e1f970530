package llm

import (
	"context"
	"time"

	"github.com/alex-galey/cloudpilot/internal/shared/metrics"
)

// InstrumentedClient records call counts and latency for the wrapped client.
type InstrumentedClient struct {
	inner     Client
	collector metrics.Collector
	provider  string
}

func NewInstrumentedClient(inner Client, collector metrics.Collector, provider string) *InstrumentedClient {
	return &InstrumentedClient{inner: inner, collector: collector, provider: provider}
}

func (c *InstrumentedClient) Generate(ctx context.Context, system string, history []Message) (string, error) {
	start := time.Now()
	text, err := c.inner.Generate(ctx, system, history)
	c.collector.RecordModelCall(ctx, c.provider, time.Since(start), err == nil)
	return text, err
}
