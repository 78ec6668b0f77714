package orchestration

import (
	"errors"
	"fmt"
	"time"
)

// JobStatus is a Job's lifecycle status.
type JobStatus string

const (
	JobStatusCreated   JobStatus = "CREATED"
	JobStatusScheduled JobStatus = "SCHEDULED"
	JobStatusRunning   JobStatus = "RUNNING"
	JobStatusCompleted JobStatus = "COMPLETED"
	JobStatusFailed    JobStatus = "FAILED"
	JobStatusCanceled  JobStatus = "CANCELED"
)

// ErrInvalidTransition marks an attempted Job state transition from a
// status that does not permit it.
var ErrInvalidTransition = errors.New("orchestration: invalid job transition")

// ErrMaxRetriesExceeded marks a retry attempted once RetryCount has reached
// MaxRetries.
var ErrMaxRetriesExceeded = errors.New("orchestration: max retries exceeded")

// Job is a single scraping run: CREATED -> (SCHEDULED ->) RUNNING ->
// COMPLETED | FAILED | CANCELED; FAILED/CANCELED -> RUNNING via Retry, up
// to MaxRetries.
type Job struct {
	JobID              string
	Project            *Project
	Description        string
	DtCreated          time.Time
	DtScheduled        time.Time
	DtStarted          time.Time
	DtUpdated          time.Time
	DtCompleted        time.Time
	ExecutionTime      time.Duration
	StartPage          int
	LastPage           int
	Status             JobStatus
	CancellationReason string
	RetryCount         int
	MaxRetries         int

	tasks   []*Task
	taskIdx int
}

// NewJob constructs a Job in the CREATED state for project, starting at
// startPage, with MaxRetries defaulting to 3 when maxRetries <= 0.
func NewJob(jobID string, project *Project, description string, startPage int, maxRetries int) *Job {
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return &Job{
		JobID:       jobID,
		Project:     project,
		Description: description,
		DtCreated:   time.Now().UTC(),
		StartPage:   startPage,
		LastPage:    startPage,
		Status:      JobStatusCreated,
		MaxRetries:  maxRetries,
	}
}

// AddTask appends task to the job's ordered task list.
func (j *Job) AddTask(t *Task) {
	j.tasks = append(j.tasks, t)
	j.DtUpdated = time.Now().UTC()
}

// Next returns the next unexecuted Task, or (nil, false) once all tasks
// have been consumed.
func (j *Job) Next() (*Task, bool) {
	if j.taskIdx >= len(j.tasks) {
		return nil, false
	}
	t := j.tasks[j.taskIdx]
	j.taskIdx++
	return t, true
}

// Schedule transitions CREATED|SCHEDULED -> SCHEDULED for a future time.
func (j *Job) Schedule(scheduled time.Time) error {
	if scheduled.Before(time.Now().UTC()) {
		return fmt.Errorf("%w: job %s: scheduled time is in the past", ErrInvalidTransition, j.JobID)
	}
	if !j.canTransitionFrom(JobStatusCreated, JobStatusScheduled) {
		return fmt.Errorf("%w: job %s: cannot schedule from %s", ErrInvalidTransition, j.JobID, j.Status)
	}
	j.Status = JobStatusScheduled
	j.DtScheduled = scheduled.UTC()
	j.DtUpdated = time.Now().UTC()
	return nil
}

// Start transitions CREATED|SCHEDULED -> RUNNING and notifies the Project.
func (j *Job) Start() error {
	if !j.canTransitionFrom(JobStatusCreated, JobStatusScheduled) {
		return fmt.Errorf("%w: job %s: cannot start from %s", ErrInvalidTransition, j.JobID, j.Status)
	}
	j.Status = JobStatusRunning
	j.DtStarted = time.Now().UTC()
	j.DtUpdated = j.DtStarted
	j.Project.JobStarted()
	return nil
}

// UpdateProgress records page as the last page processed. Requires RUNNING.
func (j *Job) UpdateProgress(page int) error {
	if j.Status != JobStatusRunning {
		return fmt.Errorf("%w: job %s: update_progress requires RUNNING, got %s", ErrInvalidTransition, j.JobID, j.Status)
	}
	j.LastPage = page
	j.Project.UpdateProgress(page)
	j.DtUpdated = time.Now().UTC()
	return nil
}

// Cancel transitions the job to CANCELED, recording an optional reason.
func (j *Job) Cancel(reason string) {
	j.Status = JobStatusCanceled
	j.DtUpdated = time.Now().UTC()
	j.CancellationReason = reason
}

// Fail transitions RUNNING -> FAILED, rewinding the task cursor so a
// subsequent Retry re-executes from the first task.
func (j *Job) Fail() error {
	if j.Status != JobStatusRunning {
		return fmt.Errorf("%w: job %s: fail requires RUNNING, got %s", ErrInvalidTransition, j.JobID, j.Status)
	}
	j.Status = JobStatusFailed
	j.DtUpdated = time.Now().UTC()
	j.taskIdx = 0
	return nil
}

// Complete transitions RUNNING -> COMPLETED, recording execution time and
// notifying the Project.
func (j *Job) Complete() error {
	if j.Status != JobStatusRunning {
		return fmt.Errorf("%w: job %s: complete requires RUNNING, got %s", ErrInvalidTransition, j.JobID, j.Status)
	}
	j.DtCompleted = time.Now().UTC()
	j.Status = JobStatusCompleted
	j.DtUpdated = j.DtCompleted
	j.Project.JobCompleted()
	if !j.DtStarted.IsZero() {
		j.ExecutionTime = j.DtCompleted.Sub(j.DtStarted)
	}
	return nil
}

// Retry transitions FAILED|CANCELED -> RUNNING, rewinding the task cursor
// and incrementing RetryCount. Fails once RetryCount has reached
// MaxRetries.
func (j *Job) Retry() error {
	if j.Status != JobStatusFailed && j.Status != JobStatusCanceled {
		return fmt.Errorf("%w: job %s: retry requires FAILED or CANCELED, got %s", ErrInvalidTransition, j.JobID, j.Status)
	}
	if j.RetryCount >= j.MaxRetries {
		return fmt.Errorf("%w: job %s: retry_count %d has reached max_retries %d", ErrMaxRetriesExceeded, j.JobID, j.RetryCount, j.MaxRetries)
	}
	j.RetryCount++
	j.taskIdx = 0
	j.Status = JobStatusRunning
	j.DtStarted = time.Now().UTC()
	j.DtUpdated = j.DtStarted
	return nil
}

func (j *Job) canTransitionFrom(permitted ...JobStatus) bool {
	for _, s := range permitted {
		if j.Status == s {
			return true
		}
	}
	return false
}
