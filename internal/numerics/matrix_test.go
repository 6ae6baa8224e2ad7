package numerics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvertMatrixIdentity(t *testing.T) {
	m := [][]float64{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
	inv := InvertMatrix(m)
	require.NotNil(t, inv)
	for i := range m {
		for j := range m[i] {
			assert.InDelta(t, m[i][j], inv[i][j], 1e-12)
		}
	}
}

func TestInvertMatrix2x2(t *testing.T) {
	m := [][]float64{
		{1, 2},
		{3, 4},
	}
	inv := InvertMatrix(m)
	require.NotNil(t, inv)

	want := [][]float64{
		{-2, 1},
		{1.5, -0.5},
	}
	for i := range want {
		for j := range want[i] {
			assert.InDelta(t, want[i][j], inv[i][j], 1e-12)
		}
	}
}

func TestInvertMatrixSingular(t *testing.T) {
	// Second row is a multiple of the first.
	m := [][]float64{
		{1, 2},
		{2, 4},
	}
	assert.Nil(t, InvertMatrix(m))
}

func TestInvertMatrixDegenerateShapes(t *testing.T) {
	assert.Nil(t, InvertMatrix(nil))
	assert.Nil(t, InvertMatrix([][]float64{{1, 2}}))
}

func TestInvertMatrixPivoting(t *testing.T) {
	// Leading zero forces a row swap.
	m := [][]float64{
		{0, 1},
		{1, 0},
	}
	inv := InvertMatrix(m)
	require.NotNil(t, inv)
	assert.InDelta(t, 0.0, inv[0][0], 1e-12)
	assert.InDelta(t, 1.0, inv[0][1], 1e-12)
	assert.InDelta(t, 1.0, inv[1][0], 1e-12)
	assert.InDelta(t, 0.0, inv[1][1], 1e-12)
}
