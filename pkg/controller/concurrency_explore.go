package controller

import "github.com/appvocai/acquire/pkg/control"

// ConcurrencyExplore mirrors RateExplore's step/stabilize cadence but
// operates on concurrency: outside the stabilization window it nudges
// concurrency up or down based on system stability; inside it, rate (not
// concurrency) receives noise, since rate is inherited from RateExplore's
// final value and is held rather than adapted for the rest of the cycle.
type ConcurrencyExplore struct {
	exploreExploit
	next Stage
}

// NewConcurrencyExplore constructs a ConcurrencyExplore stage. Its
// concurrency control value uses cfg.StepIncrease/StepDecrease as the
// additive/multiplicative factors. Its rate control value is re-seeded from
// the controller's current SessionControl on first entry, inheriting
// RateExplore's final rate.
func NewConcurrencyExplore(cfg StageConfig) *ConcurrencyExplore {
	s := &ConcurrencyExplore{exploreExploit: newExploreExploit(cfg)}
	s.concurrency = control.New(control.Options{
		Initial:        cfg.Concurrency.Base,
		Min:            cfg.Concurrency.Min,
		Max:            cfg.Concurrency.Max,
		Additive:       cfg.StepIncrease,
		Multiplicative: cfg.StepDecrease,
	})
	return s
}

func (s *ConcurrencyExplore) Name() string { return "concurrency_explore" }

// SetNext wires the stage this ConcurrencyExplore hands off to.
func (s *ConcurrencyExplore) SetNext(next Stage) { s.next = next }

func (s *ConcurrencyExplore) AdaptRequests(c *Controller) {
	if !s.stageClock.IsActive() {
		sc := c.SessionControl()
		s.rate = control.New(control.Options{
			Initial:     sc.Rate,
			Min:         s.config.Rate.Min,
			Max:         s.config.Rate.Max,
			Temperature: s.config.Temperature,
		})
	}
	s.ensureStarted()

	if s.inStabilizationPeriod() {
		s.rate.AddNoise()
	} else {
		if s.systemStable(c) {
			s.concurrency.Increase()
		} else {
			s.concurrency.Decrease()
		}
		s.stepClock.Start()
	}

	c.setSessionControl(control.NewSessionControl(s.rate.Current(), s.concurrency.Current()))
	s.endIfElapsed(c, s.next)
}
