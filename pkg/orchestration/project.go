// Package orchestration implements the thin Project/Job/Task lifecycle on
// top of pkg/pipeline's ETL stages: a Task runs Extract/Transform/Load over
// one request batch, a Job iterates batches from a generator creating one
// Task per batch, and a Project holds cross-job progress.
package orchestration

import "time"

// ProjectStatus is a Project's lifecycle status.
type ProjectStatus string

const (
	ProjectStatusIdle   ProjectStatus = "IDLE"
	ProjectStatusActive ProjectStatus = "ACTIVE"
)

// Project holds cross-job progress for one category/data-type pair.
// Invariant: LastPageProcessed <= MaxPageProcessed.
type Project struct {
	ProjectID          string
	Category           string
	DataType           string
	Frequency          time.Duration
	MaxPageProcessed   int
	LastPageProcessed  int
	DtLastJobExecuted  time.Time
	DtNextScheduledJob time.Time
	JobCount           int
	Status             ProjectStatus
}

// NewProject constructs a Project in the IDLE state with no progress.
func NewProject(projectID, category, dataType string, frequency time.Duration) *Project {
	return &Project{
		ProjectID: projectID,
		Category:  category,
		DataType:  dataType,
		Frequency: frequency,
		Status:    ProjectStatusIdle,
	}
}

// JobStarted increments the job count and marks the project ACTIVE. Called
// when a Job transitions to RUNNING.
func (p *Project) JobStarted() {
	p.JobCount++
	p.Status = ProjectStatusActive
}

// UpdateProgress records page as the last page processed, raising
// MaxPageProcessed if page exceeds it.
func (p *Project) UpdateProgress(page int) {
	p.LastPageProcessed = page
	if page > p.MaxPageProcessed {
		p.MaxPageProcessed = page
	}
}

// JobCompleted records the completion time and returns the project to IDLE.
func (p *Project) JobCompleted() {
	p.DtLastJobExecuted = time.Now().UTC()
	p.Status = ProjectStatusIdle
}
