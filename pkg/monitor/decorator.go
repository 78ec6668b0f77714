package monitor

import (
	"context"
	"time"

	"github.com/appvocai/acquire/pkg/acqrequest"
	"github.com/appvocai/acquire/pkg/acqresponse"
	"github.com/appvocai/acquire/pkg/control"
)

// Extractor is the operation MonitorDecorator wraps: dispatch one request
// batch and return the response batch. ExtractStage implements this.
type Extractor interface {
	Extract(ctx context.Context, batch acqrequest.Batch) (acqresponse.Batch, error)
}

// Decorator wraps an Extractor, computing latency/throughput distribution
// statistics and speedup for each batch and forwarding the result to a
// MetricsSink. A failed extract is passed through without emitting metrics,
// since ExtractStage failures are fatal to the Task and surfaced directly.
type Decorator struct {
	next      Extractor
	sink      MetricsSink
	identity  Identity
	stageType string
}

// Identity carries the lineage fields stamped onto every ExtractMetrics
// record.
type Identity struct {
	ProjectID string
	JobID     string
	TaskID    string
}

// NewDecorator wraps next, reporting metrics to sink under the given
// lineage and stage type.
func NewDecorator(next Extractor, sink MetricsSink, identity Identity, stageType string) *Decorator {
	return &Decorator{next: next, sink: sink, identity: identity, stageType: stageType}
}

func (d *Decorator) Extract(ctx context.Context, batch acqrequest.Batch) (acqresponse.Batch, error) {
	started := time.Now()
	out, err := d.next.Extract(ctx, batch)
	if err != nil {
		return out, err
	}
	ended := time.Now()

	valid := out.Valid()
	latencies := make([]float64, len(valid))
	throughputs := make([]float64, len(valid))
	var size int64
	var latencySum float64
	for i, r := range valid {
		l := r.Latency().Seconds()
		latencies[i] = l
		if l > 0 {
			throughputs[i] = 1 / l
		}
		latencySum += l
		size += r.Headers.Size
	}

	latencyStats := control.ComputeStats(latencies)
	throughputStats := control.ComputeStats(throughputs)

	duration := ended.Sub(started)
	var speedup float64
	if duration > 0 {
		speedup = latencySum / duration.Seconds()
	}

	metrics := ExtractMetrics{
		ProjectID: d.identity.ProjectID,
		JobID:     d.identity.JobID,
		TaskID:    d.identity.TaskID,
		StageType: d.stageType,

		Requests:  batch.RequestCount,
		DtStarted: started,
		DtEnded:   ended,
		Duration:  duration,

		LatencyMin:    latencyStats.Min,
		LatencyAvg:    latencyStats.Average,
		LatencyMedian: latencyStats.Median,
		LatencyMax:    latencyStats.Max,
		LatencyStd:    latencyStats.Std,

		ThroughputMin:    throughputStats.Min,
		ThroughputAvg:    throughputStats.Average,
		ThroughputMedian: throughputStats.Median,
		ThroughputMax:    throughputStats.Max,
		ThroughputStd:    throughputStats.Std,

		Speedup: speedup,
		Size:    size,
	}

	if d.sink != nil {
		_ = d.sink.Add(ctx, metrics)
	}

	return out, nil
}
