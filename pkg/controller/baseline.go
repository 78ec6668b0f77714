package controller

import "github.com/appvocai/acquire/pkg/control"

// Baseline is the adapter's first stage. It holds concurrency fixed and
// perturbs rate with noise alone, establishing the latency snapshot that
// RateExplore, ConcurrencyExplore, and Exploit treat as their immutable
// baseline reference for the rest of the cycle.
type Baseline struct {
	base
	next Stage
}

// NewBaseline constructs a Baseline stage from cfg. SetNext must be called
// before the stage's response time elapses the first time.
func NewBaseline(cfg StageConfig) *Baseline {
	return &Baseline{base: newBase(cfg)}
}

func (s *Baseline) Name() string { return "baseline" }

// SetNext wires the stage this Baseline hands off to.
func (s *Baseline) SetNext(next Stage) { s.next = next }

func (s *Baseline) AdaptRequests(c *Controller) {
	s.ensureStarted()

	s.rate.AddNoise()
	c.setSessionControl(control.NewSessionControl(s.rate.Current(), s.concurrency.Current()))

	if s.elapsed() {
		c.setBaselineStats(c.LatencyStats(&s.config.WindowSize))
	}
	s.endIfElapsed(c, s.next)
}
