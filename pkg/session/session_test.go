package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appvocai/acquire/pkg/acqrequest"
	"github.com/appvocai/acquire/pkg/control"
	"github.com/appvocai/acquire/pkg/controller"
	"github.com/appvocai/acquire/pkg/header"
	"github.com/appvocai/acquire/pkg/monitor"
)

func testController() *controller.Controller {
	cfg := controller.StageConfig{
		Rate:             controller.Range{Base: 50, Min: 10, Max: 500},
		Concurrency:      controller.Range{Base: 5, Min: 1, Max: 50},
		ResponseTime:     time.Hour,
		StepResponseTime: time.Hour,
		StepIncrease:     5,
		StepDecrease:     0.9,
		Threshold:        1.5,
		WindowSize:       time.Minute,
	}
	return controller.NewCycle(cfg, cfg, cfg, cfg).Controller
}

// TestGet_BasicDispatch verifies a successful batch returns one response
// per request with valid latency.
func TestGet_BasicDispatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"resultCount":1,"results":[{}]}`))
	}))
	defer srv.Close()

	s, err := New(Config{Timeout: 5 * time.Second, SessionRequestLimit: 1000, Retries: 3, InitialConcurrency: 2, RaiseForStatus: true},
		testController(), control.NewHistory(10), header.NewPool(nil), monitor.NewInMemoryErrorSink(), Identity{})
	require.NoError(t, err)

	batch := acqrequest.Batch{
		Context:      context.Background(),
		RequestCount: 3,
		Requests: []acqrequest.Request{
			acqrequest.NewRequest("1", srv.URL, nil, 0, 10, nil),
			acqrequest.NewRequest("2", srv.URL, nil, 1, 10, nil),
			acqrequest.NewRequest("3", srv.URL, nil, 2, 10, nil),
		},
	}

	out, err := s.Get(context.Background(), batch)
	require.NoError(t, err)
	assert.Equal(t, 3, out.ResponseCount)
	assert.Len(t, out.Valid(), 3)
	for _, r := range out.Valid() {
		assert.True(t, r.DtRecv.After(r.DtSent) || r.DtRecv.Equal(r.DtSent))
	}
}

// TestMakeRequest_RetryBound verifies property 8: at most `retries`
// attempts are made against a server that always fails.
func TestMakeRequest_RetryBound(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	errSink := monitor.NewInMemoryErrorSink()
	s, err := New(Config{Timeout: 5 * time.Second, SessionRequestLimit: 1000, Retries: 3, InitialConcurrency: 1, RaiseForStatus: true},
		testController(), control.NewHistory(10), header.NewPool(nil), errSink, Identity{})
	require.NoError(t, err)

	req := acqrequest.NewRequest("1", srv.URL, nil, 0, 10, nil)
	resp := s.makeRequest(context.Background(), req)

	assert.Nil(t, resp)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	require.Len(t, errSink.All(), 1)
	assert.Equal(t, 429, errSink.All()[0].ErrorCode)
}

// TestMakeRequest_404NeverRetries verifies a 404 is logged and returned nil
// without consuming further retry attempts.
func TestMakeRequest_404NeverRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	errSink := monitor.NewInMemoryErrorSink()
	s, err := New(Config{Timeout: 5 * time.Second, SessionRequestLimit: 1000, Retries: 3, InitialConcurrency: 1, RaiseForStatus: true},
		testController(), control.NewHistory(10), header.NewPool(nil), errSink, Identity{})
	require.NoError(t, err)

	resp := s.makeRequest(context.Background(), acqrequest.NewRequest("1", srv.URL, nil, 0, 10, nil))
	assert.Nil(t, resp)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	require.Len(t, errSink.All(), 1)
	assert.Equal(t, "not_found", errSink.All()[0].ErrorType)
	assert.Equal(t, 404, errSink.All()[0].ErrorCode)
}

// TestGet_SessionResetTriggersOnRequestCountThreshold covers scenario E4.
func TestGet_SessionResetTriggersOnRequestCountThreshold(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	s, err := New(Config{Timeout: 5 * time.Second, SessionRequestLimit: 100, Retries: 1, InitialConcurrency: 10},
		testController(), control.NewHistory(10), header.NewPool(nil), monitor.NewInMemoryErrorSink(), Identity{})
	require.NoError(t, err)
	s.requestCount = 95

	reqs := make([]acqrequest.Request, 10)
	for i := range reqs {
		reqs[i] = acqrequest.NewRequest("x", srv.URL, nil, i, 10, nil)
	}
	originalClient := s.client

	_, err = s.Get(context.Background(), acqrequest.Batch{Context: context.Background(), RequestCount: 10, Requests: reqs})
	require.NoError(t, err)

	assert.NotSame(t, originalClient, s.client)
	assert.Equal(t, 0, s.requestCount)
}
