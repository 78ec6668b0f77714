package session

import "time"

// Config is the asession.* configuration surface the dispatcher recognizes.
type Config struct {
	Timeout             time.Duration
	SessionRequestLimit int
	Retries             int
	InitialConcurrency  int
	TrustEnv            bool
	RaiseForStatus      bool
	ProxyURL            string
}

// Identity carries the lineage fields stamped onto every ErrorLog the
// dispatcher emits.
type Identity struct {
	ProjectID string
	JobID     string
	TaskID    string
	DataType  string
}
