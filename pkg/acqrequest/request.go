// Package acqrequest models outbound HTTP requests and the lazy batched
// generator that produces them for a job.
package acqrequest

import (
	"context"
	"net/http"
	"time"
)

// Request is a single outbound HTTP GET, addressed by page via
// StartIndex/EndIndex rather than an explicit offset parameter, so callers
// can compute storefront query params uniformly across endpoints.
type Request struct {
	ID         string
	Headers    http.Header
	BaseURL    string
	Params     map[string]string
	StartIndex int
	EndIndex   int
	Method     string
	Sent       time.Time
}

// NewRequest constructs a Request for page within a fixed-size window,
// satisfying StartIndex = page*limit, EndIndex = (page+1)*limit.
func NewRequest(id, baseURL string, params map[string]string, page, limit int, headers http.Header) Request {
	return Request{
		ID:         id,
		Headers:    headers,
		BaseURL:    baseURL,
		Params:     params,
		StartIndex: page * limit,
		EndIndex:   (page + 1) * limit,
		Method:     http.MethodGet,
	}
}

// Batch is a group of Requests dispatched concurrently under one semaphore
// width.
type Batch struct {
	RequestCount int
	Requests     []Request
	Context      context.Context
}
