package pipeline

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appvocai/acquire/pkg/acqresponse"
	"github.com/appvocai/acquire/pkg/identity"
	"github.com/appvocai/acquire/pkg/monitor"
)

func testOperation(t *testing.T) (*identity.Generator, identity.OperationPassport) {
	t.Helper()
	gen := identity.NewGenerator(identity.NewCounter(filepath.Join(t.TempDir(), "counter.json")), "test")
	project, err := identity.NewProjectPassport(gen, "6018")
	require.NoError(t, err)
	job, err := identity.NewJobPassport(gen, project, "appdata")
	require.NoError(t, err)
	task, err := identity.NewTaskPassport(gen, job)
	require.NoError(t, err)
	op, err := identity.NewOperationPassport(gen, task, "transform")
	require.NoError(t, err)
	return gen, op
}

func TestTransformStage_MapsAppDataResults(t *testing.T) {
	gen, op := testOperation(t)
	stage := NewTransformStage(DataTypeAppData, "", gen, op, monitor.NewInMemoryErrorSink(), Identity{})

	content := map[string]any{
		"resultCount": 1,
		"results": []any{
			map[string]any{"trackId": float64(123), "trackName": "Example App"},
		},
	}
	now := time.Now()
	batch := acqresponse.Batch{Responses: []*acqresponse.Response{
		{Content: content, DtSent: now, DtRecv: now},
	}}

	result, err := stage.Run(context.Background(), batch)
	require.NoError(t, err)
	require.Len(t, result.AppData, 1)
	assert.Equal(t, int64(123), result.AppData[0].TrackID)
	assert.Equal(t, "Example App", result.AppData[0].TrackName)
	assert.Equal(t, 0, result.ErrorCount)
}

func TestTransformStage_MapsAppReviews(t *testing.T) {
	gen, op := testOperation(t)
	stage := NewTransformStage(DataTypeAppReview, "app-1", gen, op, monitor.NewInMemoryErrorSink(), Identity{})

	content := map[string]any{
		"userReviewList": []any{
			map[string]any{"id": "r1", "title": "Great", "body": "Loved it", "rating": "5", "date": "2026-01-01"},
		},
	}
	batch := acqresponse.Batch{Responses: []*acqresponse.Response{{Content: content}}}

	result, err := stage.Run(context.Background(), batch)
	require.NoError(t, err)
	require.Len(t, result.AppReviews, 1)
	assert.Equal(t, "r1", result.AppReviews[0].ReviewID)
	assert.Equal(t, "app-1", result.AppReviews[0].AppID)
}

func TestTransformStage_AllInvalidReturnsError(t *testing.T) {
	gen, op := testOperation(t)
	errSink := monitor.NewInMemoryErrorSink()
	stage := NewTransformStage(DataTypeAppData, "", gen, op, errSink, Identity{})

	batch := acqresponse.Batch{Responses: []*acqresponse.Response{
		{Content: make(chan int)}, // unmarshalable: forces a validation error
	}}

	_, err := stage.Run(context.Background(), batch)
	assert.Error(t, err)
	assert.Len(t, errSink.All(), 1)
}

func TestTransformStage_PartialFailureIsNonFatal(t *testing.T) {
	gen, op := testOperation(t)
	errSink := monitor.NewInMemoryErrorSink()
	stage := NewTransformStage(DataTypeAppData, "", gen, op, errSink, Identity{})

	good := map[string]any{"results": []any{map[string]any{"trackId": float64(1)}}}
	batch := acqresponse.Batch{Responses: []*acqresponse.Response{
		{Content: good},
		{Content: make(chan int)},
	}}

	result, err := stage.Run(context.Background(), batch)
	require.NoError(t, err)
	assert.Len(t, result.AppData, 1)
	assert.Equal(t, 1, result.ErrorCount)
	assert.Len(t, errSink.All(), 1)
}
