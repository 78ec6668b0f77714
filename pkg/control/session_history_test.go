package control

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeProfile(t *testing.T, recvAgo time.Duration, latencies ...time.Duration) *Profile {
	t.Helper()
	p := NewProfile(len(latencies))
	now := time.Now()
	p.DtSend = now.Add(-recvAgo - 50*time.Millisecond)
	p.DtRecv = now.Add(-recvAgo)
	for _, l := range latencies {
		p.AddLatency(l)
	}
	return p
}

func TestHistory_EvictsOldest(t *testing.T) {
	h := NewHistory(2)
	h.Append(makeProfile(t, time.Minute, 10*time.Millisecond))
	h.Append(makeProfile(t, time.Second, 20*time.Millisecond))
	h.Append(makeProfile(t, 0, 30*time.Millisecond))

	require.Equal(t, 2, h.Len())
	stats := h.GetLatencyStats(nil)
	// Oldest (10ms) profile was evicted; only 20ms/30ms remain.
	assert.Equal(t, 2, stats.Count)
}

func TestHistory_WindowFiltersOldProfiles(t *testing.T) {
	h := NewHistory(10)
	h.Append(makeProfile(t, time.Hour, 999*time.Millisecond))
	h.Append(makeProfile(t, 0, 10*time.Millisecond))

	window := 5 * time.Second
	stats := h.GetLatencyStats(&window)
	assert.Equal(t, 1, stats.Count)
	assert.InDelta(t, 0.01, stats.Average, 0.001)
}

func TestHistory_EmptyWindowYieldsZeroCount(t *testing.T) {
	h := NewHistory(4)
	h.Append(makeProfile(t, time.Hour, 10*time.Millisecond))

	window := time.Second
	stats := h.GetLatencyStats(&window)
	assert.Equal(t, 0, stats.Count)
	assert.Equal(t, 0.0, stats.Average)
}

func TestHistory_ThroughputStats(t *testing.T) {
	h := NewHistory(4)
	h.Append(makeProfile(t, 0, 10*time.Millisecond, 10*time.Millisecond))
	stats := h.GetThroughputStats(nil)
	assert.Equal(t, 1, stats.Count)
}
