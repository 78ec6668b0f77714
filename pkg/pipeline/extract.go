package pipeline

import (
	"context"

	"github.com/appvocai/acquire/pkg/acqrequest"
	"github.com/appvocai/acquire/pkg/acqresponse"
)

// Dispatcher is the session ExtractStage drives: AsyncSession.Get.
type Dispatcher interface {
	Get(ctx context.Context, batch acqrequest.Batch) (acqresponse.Batch, error)
}

// ExtractStage runs the dispatcher over one request batch. It implements
// monitor.Extractor so it can be wrapped by monitor.Decorator to compute
// per-batch telemetry.
type ExtractStage struct {
	dispatcher Dispatcher
}

// NewExtractStage constructs an ExtractStage over dispatcher.
func NewExtractStage(dispatcher Dispatcher) *ExtractStage {
	return &ExtractStage{dispatcher: dispatcher}
}

// Extract dispatches batch and returns the resulting AsyncResponse. Fatal
// dispatcher failures (a session that could not be rebuilt) propagate
// unchanged to the Task.
func (s *ExtractStage) Extract(ctx context.Context, batch acqrequest.Batch) (acqresponse.Batch, error) {
	return s.dispatcher.Get(ctx, batch)
}
