package orchestration

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJob(t *testing.T) *Job {
	t.Helper()
	project := NewProject("proj-1", "6018", "appdata", 0)
	return NewJob("job-1", project, "test job", 0, 3)
}

// TestJob_IllegalTransitionsFail covers property 6: attempting any
// transition from a non-permitted predecessor fails.
func TestJob_IllegalTransitionsFail(t *testing.T) {
	j := testJob(t)

	assert.ErrorIs(t, j.UpdateProgress(1), ErrInvalidTransition) // not running yet
	assert.ErrorIs(t, j.Complete(), ErrInvalidTransition)        // not running yet
	assert.ErrorIs(t, j.Fail(), ErrInvalidTransition)            // not running yet
	assert.ErrorIs(t, j.Retry(), ErrInvalidTransition)           // not failed/canceled yet

	require.NoError(t, j.Start())
	assert.ErrorIs(t, j.Start(), ErrInvalidTransition) // already running
}

func TestJob_HappyPathLifecycle(t *testing.T) {
	j := testJob(t)

	require.NoError(t, j.Start())
	assert.Equal(t, JobStatusRunning, j.Status)
	assert.Equal(t, ProjectStatusActive, j.Project.Status)

	require.NoError(t, j.UpdateProgress(5))
	assert.Equal(t, 5, j.LastPage)
	assert.Equal(t, 5, j.Project.LastPageProcessed)

	require.NoError(t, j.Complete())
	assert.Equal(t, JobStatusCompleted, j.Status)
	assert.Equal(t, ProjectStatusIdle, j.Project.Status)
	assert.Greater(t, j.ExecutionTime, time.Duration(0))
}

// TestJob_RetryFailsOnceMaxRetriesReached covers scenario E6: after three
// fail->retry cycles, a fourth fail followed by retry raises a fatal error
// and status remains FAILED.
func TestJob_RetryFailsOnceMaxRetriesReached(t *testing.T) {
	j := testJob(t)
	require.NoError(t, j.Start())

	for i := 0; i < 3; i++ {
		require.NoError(t, j.Fail())
		require.NoError(t, j.Retry())
		assert.Equal(t, i+1, j.RetryCount)
		assert.Equal(t, JobStatusRunning, j.Status)
	}

	require.NoError(t, j.Fail())
	err := j.Retry()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMaxRetriesExceeded))
	assert.Equal(t, JobStatusFailed, j.Status)
}

func TestJob_FailRewindsTaskCursor(t *testing.T) {
	j := testJob(t)
	j.AddTask(&Task{TaskID: "t1"})
	j.AddTask(&Task{TaskID: "t2"})
	require.NoError(t, j.Start())

	_, ok := j.Next()
	require.True(t, ok)

	require.NoError(t, j.Fail())
	require.NoError(t, j.Retry())

	first, ok := j.Next()
	require.True(t, ok)
	assert.Equal(t, "t1", first.TaskID)
}
