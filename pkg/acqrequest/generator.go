package acqrequest

import (
	"context"
	"fmt"

	"github.com/appvocai/acquire/pkg/header"
)

// Generator is a lazy, finite sequence of request Batches over consecutive
// pages. It is restartable: a new Generator built with the same StartPage
// reproduces the same sequence, since all state is derived from Emitted and
// the constructor inputs.
type Generator struct {
	ctx         context.Context
	baseURL     string
	params      map[string]string
	maxRequests int
	batchSize   int
	limit       int
	startPage   int
	pool        *header.Pool

	emitted  int
	bookmark int // next page to be emitted; externally readable for resume
}

// Config configures a Generator.
type Config struct {
	Context     context.Context
	BaseURL     string
	Params      map[string]string
	MaxRequests int
	BatchSize   int
	StartPage   int
	Limit       int
	Headers     *header.Pool
}

// New constructs a Generator positioned at cfg.StartPage with zero requests
// emitted.
func New(cfg Config) *Generator {
	return &Generator{
		ctx:         cfg.Context,
		baseURL:     cfg.BaseURL,
		params:      cfg.Params,
		maxRequests: cfg.MaxRequests,
		batchSize:   cfg.BatchSize,
		limit:       cfg.Limit,
		startPage:   cfg.StartPage,
		pool:        cfg.Headers,
		bookmark:    cfg.StartPage,
	}
}

// Bookmark returns the next page to be emitted, for resume/checkpointing.
func (g *Generator) Bookmark() int { return g.bookmark }

// Emitted returns the total number of requests emitted so far.
func (g *Generator) Emitted() int { return g.emitted }

// Done reports whether the generator has emitted MaxRequests requests.
func (g *Generator) Done() bool { return g.emitted >= g.maxRequests }

// Next yields the next Batch of at most min(BatchSize, MaxRequests-Emitted)
// Requests with consecutive page values starting at the generator's
// cursor, or ok=false once the generator is exhausted.
func (g *Generator) Next() (batch Batch, ok bool) {
	if g.Done() {
		return Batch{}, false
	}

	remaining := g.maxRequests - g.emitted
	size := g.batchSize
	if remaining < size {
		size = remaining
	}

	requests := make([]Request, 0, size)
	for i := 0; i < size; i++ {
		page := g.bookmark + i
		id := fmt.Sprintf("req-%d", page)
		requests = append(requests, NewRequest(id, g.baseURL, g.params, page, g.limit, g.pool.Next()))
	}

	g.bookmark += size
	g.emitted += size

	return Batch{RequestCount: len(requests), Requests: requests, Context: g.ctx}, true
}
