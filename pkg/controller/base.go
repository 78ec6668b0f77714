package controller

import (
	"github.com/appvocai/acquire/pkg/clock"
	"github.com/appvocai/acquire/pkg/control"
)

// base holds the fields common to every stage: its configuration, the stage
// clock that bounds its duration, and the rate/concurrency control values it
// adapts. Concrete stages embed base and override construction of rate and
// concurrency where a stage needs non-default additive/multiplicative
// factors or inherited initial values.
type base struct {
	config      StageConfig
	stageClock  *clock.Clock
	rate        *control.Value
	concurrency *control.Value
}

func newBase(cfg StageConfig) base {
	return base{
		config:     cfg,
		stageClock: clock.New(),
		rate: control.New(control.Options{
			Initial:     cfg.Rate.Base,
			Min:         cfg.Rate.Min,
			Max:         cfg.Rate.Max,
			Temperature: cfg.Temperature,
		}),
		concurrency: control.New(control.Options{
			Initial:     cfg.Concurrency.Base,
			Min:         cfg.Concurrency.Min,
			Max:         cfg.Concurrency.Max,
			Temperature: cfg.Temperature,
		}),
	}
}

// ensureStarted starts the stage clock on first entry; re-entrant calls
// within the same stage period are no-ops.
func (b *base) ensureStarted() {
	if !b.stageClock.IsActive() {
		b.stageClock.Start()
	}
}

// elapsed reports whether the stage's configured response time has passed.
func (b *base) elapsed() bool {
	return b.stageClock.HasElapsed(b.config.ResponseTime)
}

// endIfElapsed resets the stage clock and transitions the controller to
// next once the stage's response time has elapsed.
func (b *base) endIfElapsed(c *Controller, next Stage) {
	if b.elapsed() {
		b.stageClock.Reset()
		if next != nil {
			c.transitionTo(next)
		}
	}
}

// exploreExploit adds the stabilize/adapt step-clock cadence shared by
// RateExplore, ConcurrencyExplore, and Exploit.
type exploreExploit struct {
	base
	stepClock *clock.Clock
}

func newExploreExploit(cfg StageConfig) exploreExploit {
	return exploreExploit{base: newBase(cfg), stepClock: clock.New()}
}

// inStabilizationPeriod reports whether the stage is within its
// step_response_time window since the last adapt step. A step clock that
// has never run (stage just entered, or just adapted) is treated as "not in
// stabilization" so the first call always adapts.
func (e *exploreExploit) inStabilizationPeriod() bool {
	exit := !e.stepClock.IsActive() || e.stepClock.HasElapsed(e.config.StepResponseTime)
	return !exit
}

// systemStable compares the controller's current windowed latency stats
// against the immutable baseline snapshot. Strict <= comparisons per the
// stability tie-break rule; a missing or zero-average baseline is treated as
// stable so exploration can still proceed.
func (e *exploreExploit) systemStable(c *Controller) bool {
	baseline := c.BaselineStats()
	if baseline.Count == 0 || baseline.Average == 0 {
		return true
	}
	current := c.LatencyStats(&e.config.WindowSize)
	aveThreshold := baseline.Average * e.config.Threshold
	cvThreshold := baseline.CV * e.config.Threshold
	return current.Average <= aveThreshold && current.CV <= cvThreshold
}
