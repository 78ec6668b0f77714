package control

// SessionControl is the triple the controller emits after each dispatch:
// the request rate (requests/sec), the concurrency width for the next
// batch, and the inter-batch delay the dispatcher sleeps before returning.
type SessionControl struct {
	Rate        float64
	Concurrency float64
	Delay       float64 // seconds
}

// NewSessionControl computes Delay = max(0, concurrency/rate) from rate and
// concurrency. rate must be > 0; a non-positive rate yields a zero delay
// rather than dividing by zero, since a controller bug should never be able
// to stall the dispatcher indefinitely.
func NewSessionControl(rate, concurrency float64) SessionControl {
	var delay float64
	if rate > 0 {
		delay = concurrency / rate
	}
	if delay < 0 {
		delay = 0
	}
	return SessionControl{Rate: rate, Concurrency: concurrency, Delay: delay}
}
