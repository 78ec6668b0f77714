package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appvocai/acquire/pkg/acqrequest"
	"github.com/appvocai/acquire/pkg/acqresponse"
)

type fakeDispatcher struct {
	batch acqresponse.Batch
	err   error
}

func (f fakeDispatcher) Get(context.Context, acqrequest.Batch) (acqresponse.Batch, error) {
	return f.batch, f.err
}

func TestExtractStage_DelegatesToDispatcher(t *testing.T) {
	want := acqresponse.Batch{ResponseCount: 2}
	stage := NewExtractStage(fakeDispatcher{batch: want})

	got, err := stage.Extract(context.Background(), acqrequest.Batch{RequestCount: 2})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestExtractStage_PropagatesFatalError(t *testing.T) {
	stage := NewExtractStage(fakeDispatcher{err: assertError{}})
	_, err := stage.Extract(context.Background(), acqrequest.Batch{})
	assert.Error(t, err)
}

type assertError struct{}

func (assertError) Error() string { return "session creation failed" }
