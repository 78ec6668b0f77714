// Package controller implements the adaptive four-stage rate/concurrency
// state machine (Baseline -> RateExplore -> ConcurrencyExplore -> Exploit ->
// Baseline) that AsyncSession consults after every dispatched batch.
package controller

import (
	"sync"
	"time"

	"github.com/appvocai/acquire/pkg/control"
)

// Stage is one of the four adapter states. AdaptRequests runs the stage's
// begin/execute/end sequence for a single controller call and, when its
// response-time window has elapsed, transitions the Controller to the next
// stage.
type Stage interface {
	Name() string
	AdaptRequests(c *Controller)
}

// Controller is the adapter context: it owns the session history, the most
// recently emitted SessionControl, the immutable baseline snapshot taken at
// the end of the Baseline stage, and a reference to the current Stage.
type Controller struct {
	mu             sync.Mutex
	history        *control.History
	sessionControl control.SessionControl
	baseline       control.Stats
	stage          Stage
}

// New constructs a Controller beginning in initial (ordinarily a *Baseline).
func New(initial Stage) *Controller {
	return &Controller{stage: initial}
}

// AdaptRequests records history and delegates to the current stage.
func (c *Controller) AdaptRequests(history *control.History) {
	c.mu.Lock()
	c.history = history
	stage := c.stage
	c.mu.Unlock()

	stage.AdaptRequests(c)
}

// SessionControl returns the most recently emitted SessionControl.
func (c *Controller) SessionControl() control.SessionControl {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionControl
}

func (c *Controller) setSessionControl(sc control.SessionControl) {
	c.mu.Lock()
	c.sessionControl = sc
	c.mu.Unlock()
}

// BaselineStats returns the latency snapshot captured at the end of the most
// recent Baseline stage. Immutable for the remainder of the cycle per Open
// Question (c): RateExplore, ConcurrencyExplore, and Exploit all read this
// same snapshot rather than recomputing their own baseline on entry.
func (c *Controller) BaselineStats() control.Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.baseline
}

func (c *Controller) setBaselineStats(s control.Stats) {
	c.mu.Lock()
	c.baseline = s
	c.mu.Unlock()
}

// LatencyStats delegates to the session history for a window of samples, or
// the entire history when window is nil.
func (c *Controller) LatencyStats(window *time.Duration) control.Stats {
	c.mu.Lock()
	h := c.history
	c.mu.Unlock()
	if h == nil {
		return control.Stats{}
	}
	return h.GetLatencyStats(window)
}

// Stage returns the currently active stage.
func (c *Controller) Stage() Stage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stage
}

func (c *Controller) transitionTo(next Stage) {
	c.mu.Lock()
	c.stage = next
	c.mu.Unlock()
}
