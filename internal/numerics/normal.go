package numerics

import (
	"math"
)

// NormalCDF evaluates the standard normal CDF via the Abramowitz & Stegun
// 26.2.17 rational approximation (|error| <= 7.5e-8).
func NormalCDF(z float64) float64 {
	if math.IsNaN(z) {
		return math.NaN()
	}

	abs := math.Abs(z)
	k := 1.0 / (1.0 + 0.2316419*abs)
	poly := k * (0.319381530 + k*(-0.356563782+k*(1.781477937+k*(-1.821255978+k*1.330274429))))
	pdf := math.Exp(-abs*abs/2) / math.Sqrt(2*math.Pi)
	upper := pdf * poly

	if z >= 0 {
		return 1 - upper
	}
	return upper
}

// Acklam inverse-normal coefficients. The approximation branches into three
// regimes for numerical stability in the tails.
var (
	invNormA = [6]float64{
		-3.969683028665376e+01, 2.209460984245205e+02,
		-2.759285104469687e+02, 1.383577518672690e+02,
		-3.066479806614716e+01, 2.506628277459239e+00,
	}
	invNormB = [5]float64{
		-5.447609879822406e+01, 1.615858368580409e+02,
		-1.556989798598866e+02, 6.680131188771972e+01,
		-1.328068155288572e+01,
	}
	invNormC = [6]float64{
		-7.784894002430293e-03, -3.223964580411365e-01,
		-2.400758277161838e+00, -2.549732539343734e+00,
		4.374664141464968e+00, 2.938163982698783e+00,
	}
	invNormD = [4]float64{
		7.784695709041462e-03, 3.224671290700398e-01,
		2.445134137142996e+00, 3.754408661907416e+00,
	}
)

const (
	invNormPLow  = 0.02425
	invNormPHigh = 1 - invNormPLow
)

// InverseNormalCDF evaluates the standard normal quantile function on (0, 1)
// via Acklam's rational approximation. p <= 0 maps to -Inf and p >= 1 to +Inf.
func InverseNormalCDF(p float64) float64 {
	switch {
	case math.IsNaN(p):
		return math.NaN()
	case p <= 0:
		return math.Inf(-1)
	case p >= 1:
		return math.Inf(1)
	}

	a, b, c, d := invNormA, invNormB, invNormC, invNormD

	switch {
	case p < invNormPLow:
		// Lower tail.
		q := math.Sqrt(-2 * math.Log(p))
		return (((((c[0]*q+c[1])*q+c[2])*q+c[3])*q+c[4])*q + c[5]) /
			((((d[0]*q+d[1])*q+d[2])*q+d[3])*q + 1)
	case p > invNormPHigh:
		// Upper tail, by symmetry.
		q := math.Sqrt(-2 * math.Log(1-p))
		return -(((((c[0]*q+c[1])*q+c[2])*q+c[3])*q+c[4])*q + c[5]) /
			((((d[0]*q+d[1])*q+d[2])*q+d[3])*q + 1)
	default:
		// Central region.
		q := p - 0.5
		r := q * q
		return (((((a[0]*r+a[1])*r+a[2])*r+a[3])*r+a[4])*r + a[5]) * q /
			(((((b[0]*r+b[1])*r+b[2])*r+b[3])*r+b[4])*r + 1)
	}
}
