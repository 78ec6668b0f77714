package controller

import "github.com/appvocai/acquire/pkg/control"

// Exploit applies a closed-form rate adjustment each call, using the
// immutable Baseline snapshot from BaselineStats: rate is scaled down when
// current latency or its coefficient of variation has risen relative to
// baseline, and scaled up when they have fallen. Concurrency is held at the
// value inherited from ConcurrencyExplore.
type Exploit struct {
	exploreExploit
	next Stage
}

// NewExploit constructs an Exploit stage. Rate and concurrency are re-seeded
// from the controller's current SessionControl on first entry, inheriting
// ConcurrencyExplore's final values.
func NewExploit(cfg StageConfig) *Exploit {
	return &Exploit{exploreExploit: newExploreExploit(cfg)}
}

func (s *Exploit) Name() string { return "exploit" }

// SetNext wires the stage this Exploit hands off to (ordinarily Baseline,
// restarting the cycle).
func (s *Exploit) SetNext(next Stage) { s.next = next }

func (s *Exploit) AdaptRequests(c *Controller) {
	if !s.stageClock.IsActive() {
		sc := c.SessionControl()
		s.rate = control.New(control.Options{Initial: sc.Rate, Min: s.config.Rate.Min, Max: s.config.Rate.Max})
		s.concurrency = control.New(control.Options{Initial: sc.Concurrency, Min: s.config.Concurrency.Min, Max: s.config.Concurrency.Max})
	}
	s.ensureStarted()

	baseline := c.BaselineStats()
	current := c.LatencyStats(&s.config.WindowSize)

	newRate := s.rate.Current()
	if baseline.Average != 0 && baseline.CV != 0 {
		latencyRatio := current.Average / baseline.Average
		cvRatio := current.CV / baseline.CV
		newRate = s.rate.Current() *
			(1 - s.config.K*(latencyRatio-1)) *
			(1 - s.config.M*(cvRatio-1))
	}
	// Open Question (a): k/m are unbounded in the source formula; clip the
	// result to the configured rate range rather than letting it escape.
	s.rate.SetClipped(newRate)

	c.setSessionControl(control.NewSessionControl(s.rate.Current(), s.concurrency.Current()))
	s.endIfElapsed(c, s.next)
}
