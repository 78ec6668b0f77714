// Package clock provides a small elapsed-time primitive used by the
// controller to time stages and stabilization windows.
package clock

import "time"

// Clock tracks elapsed wall-clock time from an explicit start point.
// It is not safe for concurrent use; each controller stage owns its own
// Clock instance on the controller-serial critical path.
type Clock struct {
	startedAt time.Time
	active    bool
}

// New returns a Clock in the reset (inactive) state.
func New() *Clock {
	return &Clock{}
}

// Start marks the clock as started at the current time. Calling Start again
// restarts the clock.
func (c *Clock) Start() {
	c.startedAt = time.Now()
	c.active = true
}

// Reset returns the clock to its inactive, unstarted state.
func (c *Clock) Reset() {
	c.startedAt = time.Time{}
	c.active = false
}

// Elapsed returns the duration since Start. Panics if the clock was never
// started, mirroring the source's RuntimeError on an unstarted clock.
func (c *Clock) Elapsed() time.Duration {
	if !c.active {
		panic("clock: Elapsed called before Start")
	}
	return time.Since(c.startedAt)
}

// HasElapsed reports whether at least d has passed since Start.
func (c *Clock) HasElapsed(d time.Duration) bool {
	return c.Elapsed() >= d
}

// IsActive reports whether the clock has been started and not reset.
func (c *Clock) IsActive() bool {
	return c.active
}
