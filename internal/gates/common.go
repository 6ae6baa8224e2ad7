// Package gates implements the five statistical acceptance gates: deflated
// Sharpe ratio, probability of backtest overfitting, information coefficient,
// walk-forward efficiency, and orthogonality. Each gate is a pure function of
// its inputs and a resolved threshold set; gates never mutate shared state.
package gates

import (
	"math"

	"github.com/montanaflynn/stats"
)

// PeriodsPerYear is the annualization factor for per-period (daily) series.
const PeriodsPerYear = 252

// SignalWeightedReturns converts a signal/return pair into the per-period
// strategy return sign(signal) * return, truncated to the shortest common
// length.
func SignalWeightedReturns(signals, returns []float64) []float64 {
	n := len(signals)
	if len(returns) < n {
		n = len(returns)
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		switch {
		case signals[i] > 0:
			out[i] = returns[i]
		case signals[i] < 0:
			out[i] = -returns[i]
		default:
			out[i] = 0
		}
	}
	return out
}

// ShiftForward derives a forward-return series from a return series: each
// period gets the next period's return, with a zero-padded tail.
func ShiftForward(returns []float64) []float64 {
	out := make([]float64, len(returns))
	if len(returns) > 1 {
		copy(out, returns[1:])
	}
	return out
}

// annualizedSharpe is mean/std * sqrt(252) over the given per-period returns,
// 0 when the series is too short or has no variance.
func annualizedSharpe(returns []float64) float64 {
	if len(returns) < 2 {
		return 0
	}
	mean, err := stats.Mean(returns)
	if err != nil {
		return 0
	}
	sd, err := stats.StandardDeviationSample(returns)
	if err != nil || sd < 1e-15 || math.IsNaN(sd) {
		return 0
	}
	return mean / sd * math.Sqrt(PeriodsPerYear)
}
