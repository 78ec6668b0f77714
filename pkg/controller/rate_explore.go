package controller

import "github.com/appvocai/acquire/pkg/control"

// RateExplore alternates step (adapt) and stabilize phases: outside the
// stabilization window it nudges rate up or down based on system stability
// against the Baseline snapshot; inside it, rate is only noised.
// Concurrency is held fixed at its base value throughout.
type RateExplore struct {
	exploreExploit
	next Stage
}

// NewRateExplore constructs a RateExplore stage. Its rate control value uses
// cfg.StepIncrease/StepDecrease as additive/multiplicative factors, per the
// source's stage-specific session-control override.
func NewRateExplore(cfg StageConfig) *RateExplore {
	s := &RateExplore{exploreExploit: newExploreExploit(cfg)}
	s.rate = control.New(control.Options{
		Initial:        cfg.Rate.Base,
		Min:            cfg.Rate.Min,
		Max:            cfg.Rate.Max,
		Additive:       cfg.StepIncrease,
		Multiplicative: cfg.StepDecrease,
		Temperature:    cfg.Temperature,
	})
	return s
}

func (s *RateExplore) Name() string { return "rate_explore" }

// SetNext wires the stage this RateExplore hands off to.
func (s *RateExplore) SetNext(next Stage) { s.next = next }

func (s *RateExplore) AdaptRequests(c *Controller) {
	s.ensureStarted()

	if s.inStabilizationPeriod() {
		s.rate.AddNoise()
	} else {
		if s.systemStable(c) {
			s.rate.Increase()
		} else {
			s.rate.Decrease()
		}
		s.stepClock.Start()
	}

	c.setSessionControl(control.NewSessionControl(s.rate.Current(), s.concurrency.Current()))
	s.endIfElapsed(c, s.next)
}
