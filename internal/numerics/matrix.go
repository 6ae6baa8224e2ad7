package numerics

import (
	"math"
)

// singularityEps is the pivot floor below which Gauss-Jordan elimination
// declares the matrix singular.
const singularityEps = 1e-12

// InvertMatrix inverts a square matrix via Gauss-Jordan elimination on an
// augmented identity, with partial pivoting (the row with the largest
// absolute pivot is swapped in). It returns nil when the matrix is singular;
// callers must treat nil as "no signal", not a crash.
func InvertMatrix(m [][]float64) [][]float64 {
	n := len(m)
	if n == 0 {
		return nil
	}
	for _, row := range m {
		if len(row) != n {
			return nil
		}
	}

	// Augment [m | I].
	aug := make([][]float64, n)
	for i := 0; i < n; i++ {
		aug[i] = make([]float64, 2*n)
		copy(aug[i], m[i])
		aug[i][n+i] = 1
	}

	for col := 0; col < n; col++ {
		// Partial pivoting: find the row with the largest absolute pivot.
		pivotRow := col
		for r := col + 1; r < n; r++ {
			if math.Abs(aug[r][col]) > math.Abs(aug[pivotRow][col]) {
				pivotRow = r
			}
		}
		if math.Abs(aug[pivotRow][col]) < singularityEps {
			return nil
		}
		aug[col], aug[pivotRow] = aug[pivotRow], aug[col]

		pivot := aug[col][col]
		for c := 0; c < 2*n; c++ {
			aug[col][c] /= pivot
		}

		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			factor := aug[r][col]
			if factor == 0 {
				continue
			}
			for c := 0; c < 2*n; c++ {
				aug[r][c] -= factor * aug[col][c]
			}
		}
	}

	inv := make([][]float64, n)
	for i := 0; i < n; i++ {
		inv[i] = make([]float64, n)
		copy(inv[i], aug[i][n:])
	}
	return inv
}
