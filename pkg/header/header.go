// Package header provides the rotating browser-header pool that feeds each
// outbound request, plus the fixed storefront header block required on the
// review endpoint.
package header

import (
	"net/http"
	"sync"
)

// Pool is a thread-safe round-robin rotation over a fixed set of browser
// header profiles, used so successive requests don't present an identical
// fingerprint to the storefront.
type Pool struct {
	mu      sync.Mutex
	entries []http.Header
	next    int
}

// defaultProfiles are representative desktop-browser header sets. Each
// carries only User-Agent and Accept-Language; the static storefront header
// block is added separately by Storefront.
var defaultProfiles = []http.Header{
	{
		"User-Agent":      {"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15"},
		"Accept-Language": {"en-US,en;q=0.9"},
	},
	{
		"User-Agent":      {"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"},
		"Accept-Language": {"en-US,en;q=0.9"},
	},
	{
		"User-Agent":      {"Mozilla/5.0 (X11; Linux x86_64; rv:125.0) Gecko/20100101 Firefox/125.0"},
		"Accept-Language": {"en-US,en;q=0.8"},
	},
}

// NewPool returns a Pool rotating over profiles. A nil or empty profiles
// slice falls back to defaultProfiles.
func NewPool(profiles []http.Header) *Pool {
	if len(profiles) == 0 {
		profiles = defaultProfiles
	}
	return &Pool{entries: profiles}
}

// Next returns a cloned copy of the next header profile in rotation. Cloned
// so callers may freely add endpoint-specific headers without mutating the
// pool's shared state.
func (p *Pool) Next() http.Header {
	p.mu.Lock()
	h := p.entries[p.next]
	p.next = (p.next + 1) % len(p.entries)
	p.mu.Unlock()
	return h.Clone()
}

// Storefront returns the static header block required on the userReviewsRow
// endpoint, merged with a rotated browser profile.
func Storefront(pool *Pool) http.Header {
	h := pool.Next()
	h.Set("Accept", "*/*")
	h.Set("X-Apple-Store-Front", "143441-1,29")
	h.Set("X-Apple-Tz", "0")
	h.Set("Connection", "keep-alive")
	return h
}
