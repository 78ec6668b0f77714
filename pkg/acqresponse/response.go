// Package acqresponse models parsed HTTP responses and the batch result
// AsyncSession.get returns to ExtractStage.
package acqresponse

import (
	"context"
	"time"

	"github.com/appvocai/acquire/pkg/control"
)

// Headers is the subset of response metadata the dispatcher extracts from
// every successful exchange.
type Headers struct {
	Server           string
	ServerDatetime   string
	Connection       string
	Status           int
	Size             int64
	ResponseDatetime time.Time
}

// Response is one request's outcome: parsed headers, the decoded JSON
// body (an object or an array of objects, left as any so Extract/Transform
// can type-assert per endpoint), and retry/latency telemetry.
type Response struct {
	Headers Headers
	Content any
	DtSent  time.Time
	DtRecv  time.Time
	Retries int
}

// Latency is DtRecv - DtSent when both are set, else 0.
func (r Response) Latency() time.Duration {
	if r.DtSent.IsZero() || r.DtRecv.IsZero() {
		return 0
	}
	return r.DtRecv.Sub(r.DtSent)
}

// Batch is the dispatcher's return value for one AsyncSession.get call: the
// collected responses (nil entries mark requests that were dropped after
// exhausting retries, per Open Question (b)), the SessionControl emitted by
// the controller for the next batch, and the batch's context.
type Batch struct {
	ResponseCount  int
	Responses      []*Response
	SessionControl control.SessionControl
	Context        context.Context
}

// Valid returns the non-nil responses in the batch, filtering out requests
// dropped after exhausting retries.
func (b Batch) Valid() []*Response {
	out := make([]*Response, 0, len(b.Responses))
	for _, r := range b.Responses {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}
