package acqresponse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestResponse_LatencyClock verifies property 7: latency equals the
// elapsed time between DtSent and DtRecv, and is zero before both are set.
func TestResponse_LatencyClock(t *testing.T) {
	var r Response
	assert.Equal(t, time.Duration(0), r.Latency())

	r.DtSent = time.Now()
	assert.Equal(t, time.Duration(0), r.Latency())

	r.DtRecv = r.DtSent.Add(42 * time.Millisecond)
	assert.Equal(t, 42*time.Millisecond, r.Latency())
}

func TestBatch_ValidFiltersNilResponses(t *testing.T) {
	b := Batch{Responses: []*Response{{}, nil, {}}}
	assert.Len(t, b.Valid(), 2)
}
