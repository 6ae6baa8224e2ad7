package numerics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPearsonCorrelationPerfect(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	y := make([]float64, len(x))
	neg := make([]float64, len(x))
	for i, v := range x {
		y[i] = v
		neg[i] = -v
	}

	r, n := PearsonCorrelation(x, y)
	assert.Equal(t, len(x), n)
	assert.InDelta(t, 1.0, r, 1e-4)

	r, _ = PearsonCorrelation(x, neg)
	assert.InDelta(t, -1.0, r, 1e-4)
}

func TestPearsonCorrelationSymmetry(t *testing.T) {
	x := []float64{0.3, -1.2, 2.4, 0.8, -0.5, 1.1}
	y := []float64{1.0, 0.2, -0.7, 1.9, 0.4, -1.3}

	rxy, _ := PearsonCorrelation(x, y)
	ryx, _ := PearsonCorrelation(y, x)
	assert.InDelta(t, rxy, ryx, 1e-12)
}

func TestPearsonCorrelationConstantSeries(t *testing.T) {
	x := []float64{5, 5, 5, 5, 5}
	y := []float64{1, 2, 3, 4, 5}

	r, n := PearsonCorrelation(x, y)
	assert.Equal(t, 5, n)
	// Zero variance must yield exactly 0, never NaN.
	assert.Equal(t, 0.0, r)
	assert.False(t, math.IsNaN(r))
}

func TestPearsonCorrelationFiltersNonFinite(t *testing.T) {
	x := []float64{1, math.NaN(), 3, 4, math.Inf(1), 6}
	y := []float64{1, 2, 3, math.NaN(), 5, 6}

	r, n := PearsonCorrelation(x, y)
	// Valid pairs: indices 0, 2, 5.
	assert.Equal(t, 3, n)
	assert.InDelta(t, 1.0, r, 1e-4)
}

func TestPearsonCorrelationTooFewPairs(t *testing.T) {
	r, n := PearsonCorrelation([]float64{1}, []float64{2})
	assert.Equal(t, 1, n)
	assert.Equal(t, 0.0, r)

	r, n = PearsonCorrelation(nil, nil)
	assert.Equal(t, 0, n)
	assert.Equal(t, 0.0, r)
}

func TestPearsonCorrelationLengthMismatch(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6}
	y := []float64{2, 4, 6}

	r, n := PearsonCorrelation(x, y)
	assert.Equal(t, 3, n)
	assert.InDelta(t, 1.0, r, 1e-4)
}
