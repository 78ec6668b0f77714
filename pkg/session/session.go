// Package session implements AsyncSession, the bounded-concurrency HTTP
// dispatcher that executes one request batch per call, feeds the
// controller, and owns the underlying connection pool.
package session

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/appvocai/acquire/pkg/acqrequest"
	"github.com/appvocai/acquire/pkg/acqresponse"
	"github.com/appvocai/acquire/pkg/control"
	"github.com/appvocai/acquire/pkg/controller"
	"github.com/appvocai/acquire/pkg/header"
	"github.com/appvocai/acquire/pkg/monitor"
	"github.com/appvocai/acquire/pkg/taxonomy"
)

// AsyncSession dispatches request batches under a semaphore sized to the
// controller's current concurrency, retrying each request with exponential
// backoff and resetting its underlying client once the request-count
// threshold is crossed.
type AsyncSession struct {
	mu     sync.Mutex
	cfg    Config
	client *http.Client

	headers    *header.Pool
	controller *controller.Controller
	history    *control.History
	errorSink  monitor.ErrorSink
	identity   Identity

	requestCount int
	concurrency  int
}

// New constructs an AsyncSession. Fails only if the initial underlying HTTP
// client cannot be created (e.g. an invalid proxy URL).
func New(cfg Config, ctrl *controller.Controller, history *control.History, pool *header.Pool, errorSink monitor.ErrorSink, identity Identity) (*AsyncSession, error) {
	client, err := newHTTPClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", taxonomy.ErrSessionCreationFailed, err)
	}
	concurrency := cfg.InitialConcurrency
	if concurrency < 1 {
		concurrency = 1
	}
	return &AsyncSession{
		cfg:         cfg,
		client:      client,
		headers:     pool,
		controller:  ctrl,
		history:     history,
		errorSink:   errorSink,
		identity:    identity,
		concurrency: concurrency,
	}, nil
}

// Get executes batch as a bounded-concurrency fan-out: steps 1-9 of the
// dispatcher contract. It returns an error only for batch-fatal conditions
// (context cancellation during the inter-batch delay, or a failed session
// reset); individual request failures are absorbed into nil response
// entries.
func (s *AsyncSession) Get(ctx context.Context, batch acqrequest.Batch) (acqresponse.Batch, error) {
	s.mu.Lock()
	concurrency := s.concurrency
	s.mu.Unlock()
	if concurrency < 1 {
		concurrency = 1
	}

	profile := control.NewProfile(batch.RequestCount)
	responses := make([]*acqresponse.Response, len(batch.Requests))
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	profile.Send()
	for i, req := range batch.Requests {
		wg.Add(1)
		go func(i int, req acqrequest.Request) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			responses[i] = s.makeRequest(ctx, req)
		}(i, req)
	}
	wg.Wait()
	profile.Recv()

	for _, r := range responses {
		if r != nil {
			profile.AddLatency(r.Latency())
		}
	}

	s.history.Append(profile)
	s.controller.AdaptRequests(s.history)
	sc := s.controller.SessionControl()

	delay := time.Duration(sc.Delay * float64(time.Second))
	if err := sleepCtx(ctx, delay); err != nil {
		return acqresponse.Batch{}, err
	}

	s.mu.Lock()
	newConcurrency := int(sc.Concurrency)
	if newConcurrency < 1 {
		newConcurrency = 1
	}
	s.concurrency = newConcurrency
	s.requestCount += len(batch.Requests)
	needsReset := s.requestCount > s.cfg.SessionRequestLimit
	s.mu.Unlock()

	if needsReset {
		if err := s.resetSession(ctx); err != nil {
			return acqresponse.Batch{}, err
		}
	}

	return acqresponse.Batch{
		ResponseCount:  len(responses),
		Responses:      responses,
		SessionControl: sc,
		Context:        ctx,
	}, nil
}

// makeRequest issues req with retry, returning nil once retries are
// exhausted or the error category forbids retrying (404, internal
// invariant violations). Every terminal failure is logged to the error
// sink before returning nil; a context cancelled during a backoff wait
// returns nil without logging.
func (s *AsyncSession) makeRequest(ctx context.Context, req acqrequest.Request) *acqresponse.Response {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Second
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0

	maxAttempts := s.cfg.Retries
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		resp, status, err := s.doRequest(ctx, req, attempt)
		if err == nil {
			return resp
		}

		cat := taxonomy.Classify(err, status)
		isLastAttempt := attempt == maxAttempts-1

		if cat == taxonomy.CategoryNotFound || !cat.Retryable() || isLastAttempt {
			s.logError(ctx, cat, status, err)
			return nil
		}
		if sleepErr := sleepCtx(ctx, b.NextBackOff()); sleepErr != nil {
			return nil
		}
	}
	return nil
}

func (s *AsyncSession) logError(ctx context.Context, cat taxonomy.Category, status int, err error) {
	if s.errorSink == nil {
		return
	}
	_ = s.errorSink.Add(ctx, monitor.ErrorLog{
		ProjectID:        s.identity.ProjectID,
		JobID:            s.identity.JobID,
		TaskID:           s.identity.TaskID,
		DataType:         s.identity.DataType,
		StageType:        "extract",
		ErrorType:        cat.String(),
		ErrorCode:        status,
		ErrorDescription: err.Error(),
		DtError:          time.Now(),
	})
}

// resetSession rebuilds the underlying HTTP client with backoff retry. If
// every attempt fails, it returns a fatal, wrapped
// taxonomy.ErrSessionCreationFailed for the caller to surface to the Task.
func (s *AsyncSession) resetSession(ctx context.Context) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Second
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0

	var lastErr error
	for attempt := 0; attempt <= s.cfg.Retries; attempt++ {
		client, err := newHTTPClient(s.cfg)
		if err == nil {
			s.mu.Lock()
			s.client = client
			s.requestCount = 0
			s.mu.Unlock()
			return nil
		}
		lastErr = err
		if attempt == s.cfg.Retries {
			break
		}
		if sleepErr := sleepCtx(ctx, b.NextBackOff()); sleepErr != nil {
			return sleepErr
		}
	}
	return fmt.Errorf("%w: %v", taxonomy.ErrSessionCreationFailed, lastErr)
}
