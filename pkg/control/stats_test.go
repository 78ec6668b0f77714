package control

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeStats_Empty(t *testing.T) {
	s := ComputeStats(nil)
	assert.Equal(t, Stats{}, s)
}

func TestComputeStats_ZeroAverageYieldsZeroCV(t *testing.T) {
	s := ComputeStats([]float64{0, 0, 0})
	assert.Equal(t, 0.0, s.Average)
	assert.Equal(t, 0.0, s.CV)
}

func TestComputeStats_Basic(t *testing.T) {
	s := ComputeStats([]float64{1, 2, 3, 4, 5})
	assert.Equal(t, 5, s.Count)
	assert.Equal(t, 3.0, s.Average)
	assert.Equal(t, 3.0, s.Median)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 5.0, s.Max)
	assert.InDelta(t, 1.4142, s.Std, 0.001)
	assert.Greater(t, s.CV, 0.0)
}

func TestComputeStats_EvenMedian(t *testing.T) {
	s := ComputeStats([]float64{1, 2, 3, 4})
	assert.Equal(t, 2.5, s.Median)
}
