package orchestration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProject_UpdateProgressTracksMax(t *testing.T) {
	p := NewProject("proj-1", "6018", "appdata", 0)

	p.UpdateProgress(3)
	assert.Equal(t, 3, p.LastPageProcessed)
	assert.Equal(t, 3, p.MaxPageProcessed)

	p.UpdateProgress(1)
	assert.Equal(t, 1, p.LastPageProcessed)
	assert.Equal(t, 3, p.MaxPageProcessed) // unchanged: last <= max invariant

	p.UpdateProgress(7)
	assert.Equal(t, 7, p.MaxPageProcessed)
}

func TestProject_JobLifecycleTogglesStatus(t *testing.T) {
	p := NewProject("proj-1", "6018", "appdata", 0)
	assert.Equal(t, ProjectStatusIdle, p.Status)

	p.JobStarted()
	assert.Equal(t, ProjectStatusActive, p.Status)
	assert.Equal(t, 1, p.JobCount)

	p.JobCompleted()
	assert.Equal(t, ProjectStatusIdle, p.Status)
	assert.False(t, p.DtLastJobExecuted.IsZero())
}
