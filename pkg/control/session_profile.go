package control

import "time"

// Profile is per-batch telemetry for a single AsyncSession.get call: the
// send/recv timestamps bracketing the batch, the request/response counts,
// and the per-response latencies observed within it.
type Profile struct {
	DtSend    time.Time
	DtRecv    time.Time
	Requests  int
	Responses int
	Latencies []time.Duration
}

// NewProfile returns a profile with Requests pre-set to requestCount, ready
// for Send/Recv bracketing around a dispatch.
func NewProfile(requestCount int) *Profile {
	return &Profile{Requests: requestCount}
}

// Send stamps the batch start time.
func (p *Profile) Send() { p.DtSend = time.Now() }

// Recv stamps the batch end time.
func (p *Profile) Recv() { p.DtRecv = time.Now() }

// AddLatency records one response's latency and increments Responses.
func (p *Profile) AddLatency(d time.Duration) {
	p.Latencies = append(p.Latencies, d)
	p.Responses++
}

// Duration is DtRecv - DtSend. Zero if Recv was never called.
func (p *Profile) Duration() time.Duration {
	if p.DtRecv.IsZero() || p.DtSend.IsZero() {
		return 0
	}
	return p.DtRecv.Sub(p.DtSend)
}

// Throughput is Responses/Duration in responses per second. Zero when
// Duration is zero, so a not-yet-closed profile never divides by zero.
func (p *Profile) Throughput() float64 {
	d := p.Duration()
	if d <= 0 {
		return 0
	}
	return float64(p.Responses) / d.Seconds()
}

func (p *Profile) latenciesSeconds() []float64 {
	out := make([]float64, len(p.Latencies))
	for i, l := range p.Latencies {
		out[i] = l.Seconds()
	}
	return out
}
