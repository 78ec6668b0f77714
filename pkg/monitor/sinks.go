package monitor

import (
	"context"
	"sync"
)

// MetricsSink accepts per-batch ExtractMetrics. Implementations are
// append-only with at-most-once semantics per call.
type MetricsSink interface {
	Add(ctx context.Context, m ExtractMetrics) error
}

// ErrorSink accepts per-request or per-batch ErrorLog entries.
type ErrorSink interface {
	Add(ctx context.Context, e ErrorLog) error
}

// InMemoryMetricsSink is a MetricsSink backed by a guarded slice, useful for
// tests and for processes that don't need durable metrics.
type InMemoryMetricsSink struct {
	mu      sync.Mutex
	records []ExtractMetrics
}

// NewInMemoryMetricsSink returns an empty InMemoryMetricsSink.
func NewInMemoryMetricsSink() *InMemoryMetricsSink {
	return &InMemoryMetricsSink{}
}

func (s *InMemoryMetricsSink) Add(_ context.Context, m ExtractMetrics) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, m)
	return nil
}

// All returns a copy of every recorded metric, in insertion order.
func (s *InMemoryMetricsSink) All() []ExtractMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ExtractMetrics, len(s.records))
	copy(out, s.records)
	return out
}

// InMemoryErrorSink is an ErrorSink backed by a guarded slice.
type InMemoryErrorSink struct {
	mu      sync.Mutex
	records []ErrorLog
}

// NewInMemoryErrorSink returns an empty InMemoryErrorSink.
func NewInMemoryErrorSink() *InMemoryErrorSink {
	return &InMemoryErrorSink{}
}

func (s *InMemoryErrorSink) Add(_ context.Context, e ErrorLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, e)
	return nil
}

// All returns a copy of every recorded error log, in insertion order.
func (s *InMemoryErrorSink) All() []ErrorLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ErrorLog, len(s.records))
	copy(out, s.records)
	return out
}
