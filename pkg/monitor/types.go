// Package monitor defines the append-only notify-sink interfaces the core
// emits into (MetricsSink, ErrorSink), an in-memory reference
// implementation of each, and a decorator that computes per-batch
// distribution statistics around an extract operation.
package monitor

import "time"

// ErrorLog is one record of a per-request or per-batch failure, keyed by
// lineage and stage.
type ErrorLog struct {
	ProjectID        string
	JobID            string
	TaskID           string
	DataType         string
	StageType        string
	ErrorType        string
	ErrorCode        int
	ErrorDescription string
	DtError          time.Time
}

// ExtractMetrics is one per-batch telemetry record produced by the
// MonitorDecorator around ExtractStage.
type ExtractMetrics struct {
	ProjectID string
	JobID     string
	TaskID    string
	StageType string

	Requests  int
	DtStarted time.Time
	DtEnded   time.Time
	Duration  time.Duration

	LatencyMin    float64
	LatencyAvg    float64
	LatencyMedian float64
	LatencyMax    float64
	LatencyStd    float64

	ThroughputMin    float64
	ThroughputAvg    float64
	ThroughputMedian float64
	ThroughputMax    float64
	ThroughputStd    float64

	// Speedup is sum(latency) / duration: how much wall-clock time was
	// saved by dispatching requests concurrently rather than serially.
	Speedup float64
	Size    int64
}
