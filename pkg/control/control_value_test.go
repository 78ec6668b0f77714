package control

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestValue_Clipping verifies property 1: for any sequence of
// increase/decrease/noise calls, the value stays within [min, max].
func TestValue_Clipping(t *testing.T) {
	v := New(Options{
		Initial:        50,
		Min:            10,
		Max:            60,
		Additive:       100, // deliberately large to force clamping upward
		Multiplicative: 0.01,
		Temperature:    5,
	})

	for i := 0; i < 200; i++ {
		switch i % 3 {
		case 0:
			v.Increase()
		case 1:
			v.Decrease()
		case 2:
			v.AddNoise()
		}
		assert.GreaterOrEqual(t, v.Current(), 10.0)
		assert.LessOrEqual(t, v.Current(), 60.0)
	}
}

func TestValue_Reset(t *testing.T) {
	v := New(Options{Initial: 42, Min: 0, Max: 100, Additive: 5})
	v.Increase()
	assert.NotEqual(t, 42.0, v.Current())
	assert.Equal(t, 42.0, v.Reset())
}

func TestValue_NoTemperatureIsDeterministic(t *testing.T) {
	v := New(Options{Initial: 10, Min: 0, Max: 100, Additive: 5})
	assert.Equal(t, 15.0, v.Increase())
	assert.Equal(t, 20.0, v.Increase())
}

func TestValue_DefaultMultiplicativeIsOne(t *testing.T) {
	v := New(Options{Initial: 10, Min: 0, Max: 100})
	assert.Equal(t, 10.0, v.Decrease())
}
