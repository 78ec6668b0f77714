package header

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPool_RotatesThroughAllEntries(t *testing.T) {
	p := NewPool(nil)
	first := p.Next().Get("User-Agent")
	var sawRepeat bool
	for i := 0; i < len(defaultProfiles)-1; i++ {
		if p.Next().Get("User-Agent") == first {
			sawRepeat = true
		}
	}
	assert.False(t, sawRepeat, "rotation should not repeat before cycling through all profiles")

	// One full cycle later, it wraps back to the first entry.
	assert.Equal(t, first, p.Next().Get("User-Agent"))
}

func TestPool_NextReturnsIndependentClones(t *testing.T) {
	p := NewPool(nil)
	h := p.Next()
	h.Set("User-Agent", "mutated")
	h2 := p.Next()
	assert.NotEqual(t, "mutated", h2.Get("User-Agent"))
}

func TestStorefront_SetsRequiredHeaders(t *testing.T) {
	p := NewPool(nil)
	h := Storefront(p)
	assert.Equal(t, "*/*", h.Get("Accept"))
	assert.NotEmpty(t, h.Get("X-Apple-Store-Front"))
	assert.NotEmpty(t, h.Get("User-Agent"))
}
