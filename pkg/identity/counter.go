// Package identity generates lineage-stamped identity strings for the
// Passport chain (Project -> Job -> Task -> Operation -> Artifact), backed
// by a small persistent counter file keyed by UTC date.
package identity

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"
)

// Counter is a file-backed, daily-resetting monotone sequence. It replaces
// the source's shelve-backed index generator with an atomic
// read-modify-write against a small JSON file; the day boundary is UTC.
type Counter struct {
	mu   sync.Mutex
	path string
}

// NewCounter returns a Counter persisting its state at path. The file is
// created lazily on first Next call.
func NewCounter(path string) *Counter {
	return &Counter{path: path}
}

type counterState struct {
	Date string `json:"date"`
	Seq  int    `json:"seq"`
}

// Next returns the next sequence number for the current UTC date, resetting
// to 1 when the date has changed since the last call.
func (c *Counter) Next() (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	today := time.Now().UTC().Format("20060102")
	state, err := c.read()
	if err != nil {
		return 0, err
	}

	if state.Date == today {
		state.Seq++
	} else {
		state = counterState{Date: today, Seq: 1}
	}

	if err := c.write(state); err != nil {
		return 0, err
	}
	return state.Seq, nil
}

func (c *Counter) read() (counterState, error) {
	data, err := os.ReadFile(c.path)
	if errors.Is(err, os.ErrNotExist) {
		return counterState{}, nil
	}
	if err != nil {
		return counterState{}, fmt.Errorf("identity: read counter file: %w", err)
	}
	var s counterState
	if err := json.Unmarshal(data, &s); err != nil {
		return counterState{}, fmt.Errorf("identity: decode counter file: %w", err)
	}
	return s, nil
}

func (c *Counter) write(s counterState) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("identity: encode counter file: %w", err)
	}
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("identity: write counter file: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("identity: rename counter file: %w", err)
	}
	return nil
}
