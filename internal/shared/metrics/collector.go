package metrics

import (
	"context"
	"sync"
	"time"
)

type Collector interface {
	RecordToolExecution(ctx context.Context, toolName string, duration time.Duration, success bool)
	RecordModelCall(ctx context.Context, provider string, duration time.Duration, success bool)
	RecordSessionActivity(ctx context.Context, sessionID string)
	Close() error
}

type NoOpCollector struct{}

func NewNoOpCollector() *NoOpCollector {
	return &NoOpCollector{}
}

func (c *NoOpCollector) RecordToolExecution(ctx context.Context, toolName string, duration time.Duration, success bool) {
}

func (c *NoOpCollector) RecordModelCall(ctx context.Context, provider string, duration time.Duration, success bool) {
}

func (c *NoOpCollector) RecordSessionActivity(ctx context.Context, sessionID string) {
}

func (c *NoOpCollector) Close() error {
	return nil
}

// CallStats aggregates one counter family.
type CallStats struct {
	Count         int64         `json:"count"`
	Failures      int64         `json:"failures"`
	TotalDuration time.Duration `json:"total_duration_ns"`
}

// InMemoryCollector keeps per-tool and per-provider counters for the
// metrics resource. Counters reset on restart.
type InMemoryCollector struct {
	mu       sync.Mutex
	tools    map[string]*CallStats
	models   map[string]*CallStats
	sessions map[string]time.Time
}

func NewInMemoryCollector() *InMemoryCollector {
	return &InMemoryCollector{
		tools:    make(map[string]*CallStats),
		models:   make(map[string]*CallStats),
		sessions: make(map[string]time.Time),
	}
}

func (c *InMemoryCollector) RecordToolExecution(ctx context.Context, toolName string, duration time.Duration, success bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bump(c.tools, toolName, duration, success)
}

func (c *InMemoryCollector) RecordModelCall(ctx context.Context, provider string, duration time.Duration, success bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bump(c.models, provider, duration, success)
}

func (c *InMemoryCollector) RecordSessionActivity(ctx context.Context, sessionID string) {
	if sessionID == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessions[sessionID] = time.Now()
}

func (c *InMemoryCollector) bump(table map[string]*CallStats, key string, duration time.Duration, success bool) {
	stats, ok := table[key]
	if !ok {
		stats = &CallStats{}
		table[key] = stats
	}
	stats.Count++
	stats.TotalDuration += duration
	if !success {
		stats.Failures++
	}
}

// Snapshot is a point-in-time copy of all counters.
type Snapshot struct {
	Tools          map[string]CallStats `json:"tools"`
	Models         map[string]CallStats `json:"models"`
	ActiveSessions int                  `json:"active_sessions"`
}

func (c *InMemoryCollector) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		Tools:          make(map[string]CallStats, len(c.tools)),
		Models:         make(map[string]CallStats, len(c.models)),
		ActiveSessions: len(c.sessions),
	}
	for name, stats := range c.tools {
		snap.Tools[name] = *stats
	}
	for name, stats := range c.models {
		snap.Models[name] = *stats
	}
	return snap
}

func (c *InMemoryCollector) Close() error {
	return nil
}
