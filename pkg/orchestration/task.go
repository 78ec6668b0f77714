package orchestration

import (
	"context"
	"fmt"

	"github.com/appvocai/acquire/pkg/acqrequest"
	"github.com/appvocai/acquire/pkg/acqresponse"
	"github.com/appvocai/acquire/pkg/pipeline"
)

// TaskStatus is a Task's lifecycle status.
type TaskStatus string

const (
	TaskStatusCreated    TaskStatus = "CREATED"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
	TaskStatusFailed     TaskStatus = "FAILED"
)

// Extractor is the stage Task drives first: dispatch a request batch and
// return the response batch. Satisfied by *pipeline.ExtractStage directly,
// or by *monitor.Decorator wrapping one.
type Extractor interface {
	Extract(ctx context.Context, batch acqrequest.Batch) (acqresponse.Batch, error)
}

// Task is a single iteration of the ETL triple over one request batch.
type Task struct {
	TaskID string
	Status TaskStatus

	extract   Extractor
	transform *pipeline.TransformStage
	load      *pipeline.LoadStage
	batch     acqrequest.Batch
}

// NewTask constructs a Task in the CREATED state over batch, wiring the
// three stages it will run in order.
func NewTask(taskID string, extract Extractor, transform *pipeline.TransformStage, load *pipeline.LoadStage, batch acqrequest.Batch) *Task {
	return &Task{
		TaskID:    taskID,
		Status:    TaskStatusCreated,
		extract:   extract,
		transform: transform,
		load:      load,
		batch:     batch,
	}
}

// Execute runs Extract, Transform, and Load in order. A fatal error from
// any stage transitions the task to FAILED and propagates to the caller
// (the owning Job).
func (t *Task) Execute(ctx context.Context) (pipeline.LoadResult, error) {
	t.Status = TaskStatusInProgress

	responses, err := t.extract.Extract(ctx, t.batch)
	if err != nil {
		t.Status = TaskStatusFailed
		return pipeline.LoadResult{}, fmt.Errorf("orchestration: task %s: extract: %w", t.TaskID, err)
	}

	transformed, err := t.transform.Run(ctx, responses)
	if err != nil {
		t.Status = TaskStatusFailed
		return pipeline.LoadResult{}, fmt.Errorf("orchestration: task %s: transform: %w", t.TaskID, err)
	}

	loaded, err := t.load.Run(ctx, transformed)
	if err != nil {
		t.Status = TaskStatusFailed
		return pipeline.LoadResult{}, fmt.Errorf("orchestration: task %s: load: %w", t.TaskID, err)
	}

	t.Status = TaskStatusCompleted
	return loaded, nil
}
