package identity

import (
	"fmt"
	"time"
)

// Format builds an identity string of the form
// <classname>-<data_type>-<YYYYMMDD>-<env>-<seq>.
func Format(className, dataType string, date time.Time, env string, seq int) string {
	return fmt.Sprintf("%s-%s-%s-%s-%d", className, dataType, date.UTC().Format("20060102"), env, seq)
}

// Generator mints identity strings from a shared daily Counter, stamping
// each with the environment the process is running in.
type Generator struct {
	counter *Counter
	env     string
}

// NewGenerator returns a Generator drawing sequence numbers from counter.
func NewGenerator(counter *Counter, env string) *Generator {
	return &Generator{counter: counter, env: env}
}

// Next mints a new identity string for className/dataType, consuming one
// sequence number from the underlying Counter.
func (g *Generator) Next(className, dataType string) (string, error) {
	seq, err := g.counter.Next()
	if err != nil {
		return "", fmt.Errorf("identity: generate id: %w", err)
	}
	return Format(className, dataType, time.Now().UTC(), g.env, seq), nil
}
