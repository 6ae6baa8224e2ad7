// Package numerics holds the numerical routines the validation gates are
// built on. The degeneracy thresholds here (zeroVarianceEps, singularityEps)
// decide whether borderline indicator sets are treated as solvable or
// singular and must not change.
package numerics

import (
	"math"
)

// zeroVarianceEps is the denominator floor below which a series is treated as
// having zero variance.
const zeroVarianceEps = 1e-15

// PearsonCorrelation computes the Pearson correlation over the pairs where
// both values are finite. It returns the correlation and the number of valid
// pairs used. Fewer than 2 valid pairs, or a zero-variance series, yields a
// correlation of exactly 0 (never NaN). The result is in [-1, 1] by
// construction of the formula.
func PearsonCorrelation(x, y []float64) (float64, int) {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}

	var (
		count             int
		sumX, sumY, sumXY float64
		sumX2, sumY2      float64
	)
	for i := 0; i < n; i++ {
		if !isFinite(x[i]) || !isFinite(y[i]) {
			continue
		}
		count++
		sumX += x[i]
		sumY += y[i]
		sumXY += x[i] * y[i]
		sumX2 += x[i] * x[i]
		sumY2 += y[i] * y[i]
	}

	if count < 2 {
		return 0, count
	}

	fn := float64(count)
	numerator := fn*sumXY - sumX*sumY
	denominator := math.Sqrt((fn*sumX2 - sumX*sumX) * (fn*sumY2 - sumY*sumY))
	if denominator < zeroVarianceEps || math.IsNaN(denominator) {
		return 0, count
	}

	return numerator / denominator, count
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
