package app

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"sigval/domain/validation"
	"sigval/internal/gates"
)

// ReturnProfile summarizes the distribution of the signal-weighted return
// series the DSR gate's small-sample corrections depend on. It returns nil
// when the history is too short for the moment estimators — the profile is a
// diagnostic, never a gate.
func ReturnProfile(returns []float64) *validation.ReturnProfile {
	moments, err := gates.CalculateReturnStatistics(returns)
	if err != nil {
		return nil
	}

	p := &validation.ReturnProfile{
		Mean:     moments.Mean,
		StdDev:   moments.StdDev,
		Skewness: moments.Skewness,
		Kurtosis: moments.Kurtosis,
		N:        moments.N,
	}
	p.IsNormal, p.NormalityP = dagostinoK2(returns, moments)
	return p
}

// dagostinoK2 runs D'Agostino's K² normality test on the series, combining
// the skewness and kurtosis transforms into a chi-squared statistic with two
// degrees of freedom.
func dagostinoK2(data []float64, moments gates.ReturnStatistics) (isNormal bool, pValue float64) {
	n := float64(moments.N)
	if moments.StdDev == 0 || math.IsNaN(moments.StdDev) {
		return false, 1.0
	}

	g1 := moments.Skewness
	g2 := moments.Kurtosis // total kurtosis

	// Skewness transform to Z1 (D'Agostino).
	y := g1 * math.Sqrt((n+1)*(n+3)/(6*(n-2)))
	beta2 := (3 * (n*n + 27*n - 70) * (n + 1) * (n + 3)) / ((n - 2) * (n + 5) * (n + 7) * (n + 9))
	w2 := -1 + math.Sqrt(2*(beta2-1))
	if w2 <= 0 {
		return false, 1.0
	}
	delta := 1 / math.Sqrt(math.Log(math.Sqrt(w2)))
	alpha := math.Sqrt(2 / (w2 - 1))
	ay := y / alpha
	z1 := delta * math.Log(ay+math.Sqrt(ay*ay+1))

	// Kurtosis transform to Z2 (Anscombe–Glynn).
	e := 3 * (n - 1) / (n + 1)
	v := 24 * n * (n - 2) * (n - 3) / ((n + 1) * (n + 1) * (n + 3) * (n + 5))
	if v <= 0 {
		return false, 1.0
	}
	x := (g2 - e) / math.Sqrt(v)

	sqrtBeta1 := 6 * (n*n - 5*n + 2) / ((n + 7) * (n + 9)) * math.Sqrt(6*(n+3)*(n+5)/(n*(n-2)*(n-3)))
	a := 6 + 8/sqrtBeta1*(2/sqrtBeta1+math.Sqrt(1+4/(sqrtBeta1*sqrtBeta1)))
	if a <= 4 {
		return false, 1.0
	}

	term := 1 - 2/(9*a)
	den := 1 + x*math.Sqrt(2/(a-4))
	if den <= 0 {
		return false, 0.0
	}
	z2 := (term - math.Pow((1-2/a)/den, 1.0/3.0)) / math.Sqrt(2/(9*a))

	k2 := z1*z1 + z2*z2
	chi2 := distuv.ChiSquared{K: 2}
	pValue = 1 - chi2.CDF(k2)
	return pValue > 0.05, pValue
}
