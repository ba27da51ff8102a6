package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean([]int{}))
	assert.InDelta(t, 2.5, Mean([]int{1, 2, 3, 4}), 1e-12)
	assert.InDelta(t, 1.5, Mean([]float64{1, 2}), 1e-12)
}

func TestStdDev(t *testing.T) {
	assert.Equal(t, 0.0, StdDev([]float64{}))
	assert.Equal(t, 0.0, StdDev([]float64{42}))
	// sample standard deviation of 2,4,4,4,5,5,7,9 is sqrt(32/7)
	assert.InDelta(t, 2.138089935, StdDev([]int{2, 4, 4, 4, 5, 5, 7, 9}), 1e-9)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 3.14, Round2(3.14159))
	assert.Equal(t, 2.0, Round2(1.999))
}
