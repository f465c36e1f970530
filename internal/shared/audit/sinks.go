package audit

import (
	"context"
	"errors"

	"github.com/alex-galey/cloudpilot/internal/shared/metrics"
)

// FanOutSink forwards each event to every underlying sink.
type FanOutSink struct {
	sinks []EventSink
}

func NewFanOutSink(sinks ...EventSink) *FanOutSink {
	return &FanOutSink{sinks: sinks}
}

func (s *FanOutSink) Record(ctx context.Context, event Event) error {
	var errs []error
	for _, sink := range s.sinks {
		if err := sink.Record(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *FanOutSink) Close() error {
	var errs []error
	for _, sink := range s.sinks {
		if err := sink.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// MetricsSink feeds dispatch events into the metrics collector.
type MetricsSink struct {
	collector metrics.Collector
}

func NewMetricsSink(collector metrics.Collector) *MetricsSink {
	return &MetricsSink{collector: collector}
}

func (s *MetricsSink) Record(ctx context.Context, event Event) error {
	s.collector.RecordToolExecution(ctx, event.Tool, event.Duration, event.Result == "success")
	s.collector.RecordSessionActivity(ctx, event.SessionID)
	return nil
}

func (s *MetricsSink) Close() error {
	return s.collector.Close()
}
