package gates

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"sigval/domain/validation"
	"sigval/internal/errors"
	"sigval/internal/numerics"
)

// eulerGamma is the Euler–Mascheroni constant used in the expected maximum
// Sharpe under the null.
const eulerGamma = 0.5772156649

// minMomentObservations is the smallest sample for which the bias-corrected
// moment estimators are considered usable.
const minMomentObservations = 30

// ExpectedMaxSharpe returns the Sharpe ratio expected from chance alone after
// nTrials independent attempts (the extreme-value benchmark the observed
// Sharpe must beat). It is 0 for nTrials <= 1 and strictly increasing above.
func ExpectedMaxSharpe(nTrials int) float64 {
	if nTrials <= 1 {
		return 0
	}
	s := math.Sqrt(2 * math.Log(float64(nTrials)))
	return s - (eulerGamma+math.Log(math.Pi/2))/s
}

// ReturnStatistics holds bias-corrected sample moments of a return series.
type ReturnStatistics struct {
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"std_dev"`
	Skewness float64 `json:"skewness"`
	Kurtosis float64 `json:"kurtosis"` // total kurtosis (normal = 3)
	N        int     `json:"n"`
}

// CalculateReturnStatistics computes the bias-corrected sample skewness and
// kurtosis (Fisher's formulas). It fails with INSUFFICIENT_DATA below 30
// observations; callers must catch or pre-check.
func CalculateReturnStatistics(returns []float64) (ReturnStatistics, error) {
	n := len(returns)
	if n < minMomentObservations {
		return ReturnStatistics{}, errors.InsufficientData(
			fmt.Sprintf("return statistics require at least %d observations, got %d", minMomentObservations, n))
	}

	mean, _ := stats.Mean(returns)
	sd, _ := stats.StandardDeviationSample(returns)

	// Central population moments.
	var m2, m3, m4 float64
	for _, v := range returns {
		d := v - mean
		d2 := d * d
		m2 += d2
		m3 += d2 * d
		m4 += d2 * d2
	}
	fn := float64(n)
	m2 /= fn
	m3 /= fn
	m4 /= fn

	rs := ReturnStatistics{Mean: mean, StdDev: sd, Kurtosis: 3, N: n}
	if m2 < 1e-15 {
		// Degenerate (constant) series: no shape information, treat as normal.
		return rs, nil
	}

	// Fisher's bias-corrected estimators.
	g1 := m3 / math.Pow(m2, 1.5)
	rs.Skewness = g1 * math.Sqrt(fn*(fn-1)) / (fn - 2)

	g2 := m4/(m2*m2) - 3
	excess := ((fn+1)*g2 + 6) * (fn - 1) / ((fn - 2) * (fn - 3))
	rs.Kurtosis = excess + 3
	return rs, nil
}

// loStdError is the Lo (2002) standard error of a Sharpe ratio adjusted for
// skewness and kurtosis, floored at 0 before the square root.
func loStdError(sr, skew, kurt float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	v := 1 + 0.5*sr*sr - skew*sr + (kurt-3)/4*sr*sr
	if v < 0 {
		v = 0
	}
	return math.Sqrt(v / float64(n))
}

// DSRStats is the full deflated Sharpe ratio computation.
type DSRStats struct {
	Sharpe            float64          `json:"sharpe"`
	ExpectedMaxSharpe float64          `json:"expected_max_sharpe"`
	StdError          float64          `json:"std_error"`
	ZStat             float64          `json:"z_stat"`
	PValue            float64          `json:"p_value"`
	Probability       float64          `json:"probability"`
	Interpretation    string           `json:"interpretation"`
	Moments           ReturnStatistics `json:"moments"`
}

// CalculateDSR tests whether the annualized Sharpe of the given per-period
// returns is significant after correcting for nTrials attempts and for a
// non-normal return distribution. significanceLevel is the probability-of-
// skill cutoff used for the interpretation label (0.95 by default thresholds).
func CalculateDSR(returns []float64, nTrials int, significanceLevel float64) (DSRStats, error) {
	moments, err := CalculateReturnStatistics(returns)
	if err != nil {
		return DSRStats{}, err
	}

	d := DSRStats{
		ExpectedMaxSharpe: ExpectedMaxSharpe(nTrials),
		Moments:           moments,
	}
	d.Sharpe = annualizedSharpe(returns)
	d.StdError = loStdError(d.Sharpe, moments.Skewness, moments.Kurtosis, moments.N)

	if d.StdError > 0 {
		d.ZStat = (d.Sharpe - d.ExpectedMaxSharpe) / d.StdError
	}
	// StdError == 0 leaves ZStat at 0: probability 0.5, neither evidence for
	// nor against skill.
	d.PValue = 1 - numerics.NormalCDF(d.ZStat)
	d.Probability = 1 - d.PValue
	if d.Probability >= significanceLevel {
		d.Interpretation = "significant"
	} else {
		d.Interpretation = "not significant"
	}
	return d, nil
}

// MinimumRequiredSharpe answers "what annualized Sharpe would this candidate
// need" for the given trial count, sample size and return shape. It solves
// sr = benchmark + z * SE(sr) by fixed-point iteration (20 iterations or
// convergence to 1e-6).
func MinimumRequiredSharpe(nTrials, nObservations int, skewness, kurtosis, significanceLevel float64) float64 {
	benchmark := ExpectedMaxSharpe(nTrials)
	z := numerics.InverseNormalCDF(significanceLevel)

	sr := benchmark
	for i := 0; i < 20; i++ {
		next := benchmark + z*loStdError(sr, skewness, kurtosis, nObservations)
		if math.Abs(next-sr) < 1e-6 {
			return next
		}
		sr = next
	}
	return sr
}

// RunDSRGate runs the deflated Sharpe ratio gate over signal-weighted
// returns. It errors (INSUFFICIENT_DATA) below 30 observations.
func RunDSRGate(signals, returns []float64, nTrials int, th validation.Thresholds) (validation.DSRResult, error) {
	weighted := SignalWeightedReturns(signals, returns)
	d, err := CalculateDSR(weighted, nTrials, th.DSRProbability)
	if err != nil {
		return validation.DSRResult{}, err
	}

	res := validation.DSRResult{
		Outcome: validation.Outcome{
			N: d.Moments.N,
		},
		Sharpe:            d.Sharpe,
		ExpectedMaxSharpe: d.ExpectedMaxSharpe,
		StdError:          d.StdError,
		ZStat:             d.ZStat,
		PValue:            d.PValue,
		Probability:       d.Probability,
		Interpretation:    d.Interpretation,
		Skewness:          d.Moments.Skewness,
		Kurtosis:          d.Moments.Kurtosis,
	}
	if d.Probability >= th.DSRProbability {
		res.Passed = true
		res.Status = validation.StatusPass
	} else {
		res.Status = validation.StatusFail
		res.Reason = fmt.Sprintf("probability of skill %.4f below required %.2f (Sharpe %.2f vs expected max %.2f from %d trials)",
			d.Probability, th.DSRProbability, d.Sharpe, d.ExpectedMaxSharpe, nTrials)
	}
	return res, nil
}
