package numerics

import (
	"math"
)

// LinearRegression fits y = b0 + b1*x1 + ... + bk*xk by the normal equations
// (XᵀX)⁻¹Xᵀy, with an implicit intercept column. x holds one row per
// observation. It returns the coefficients (intercept first) and R², clamped
// to [0, 1]. A singular XᵀX yields zero coefficients and R² = 0.
func LinearRegression(x [][]float64, y []float64) ([]float64, float64) {
	n := len(x)
	if n == 0 || n != len(y) {
		return nil, 0
	}
	k := len(x[0])
	p := k + 1

	zero := func() ([]float64, float64) {
		return make([]float64, p), 0
	}
	if n < p {
		return zero()
	}

	// Design matrix with intercept column.
	design := make([][]float64, n)
	for i := 0; i < n; i++ {
		if len(x[i]) != k {
			return zero()
		}
		row := make([]float64, p)
		row[0] = 1
		copy(row[1:], x[i])
		design[i] = row
	}

	// XᵀX and Xᵀy.
	xtx := make([][]float64, p)
	xty := make([]float64, p)
	for a := 0; a < p; a++ {
		xtx[a] = make([]float64, p)
		for b := 0; b < p; b++ {
			var s float64
			for i := 0; i < n; i++ {
				s += design[i][a] * design[i][b]
			}
			xtx[a][b] = s
		}
		var s float64
		for i := 0; i < n; i++ {
			s += design[i][a] * y[i]
		}
		xty[a] = s
	}

	inv := InvertMatrix(xtx)
	if inv == nil {
		return zero()
	}

	coef := make([]float64, p)
	for a := 0; a < p; a++ {
		var s float64
		for b := 0; b < p; b++ {
			s += inv[a][b] * xty[b]
		}
		coef[a] = s
	}

	// R² against the mean model.
	var meanY float64
	for _, v := range y {
		meanY += v
	}
	meanY /= float64(n)

	var ssRes, ssTot float64
	for i := 0; i < n; i++ {
		var pred float64
		for a := 0; a < p; a++ {
			pred += coef[a] * design[i][a]
		}
		d := y[i] - pred
		ssRes += d * d
		t := y[i] - meanY
		ssTot += t * t
	}

	if ssTot < zeroVarianceEps {
		return coef, 0
	}
	r2 := 1 - ssRes/ssTot
	if r2 < 0 || math.IsNaN(r2) {
		r2 = 0
	} else if r2 > 1 {
		r2 = 1
	}
	return coef, r2
}

// Predict applies regression coefficients (intercept first) to one
// observation row.
func Predict(coef []float64, row []float64) float64 {
	if len(coef) == 0 {
		return 0
	}
	pred := coef[0]
	for i, v := range row {
		if i+1 >= len(coef) {
			break
		}
		pred += coef[i+1] * v
	}
	return pred
}
