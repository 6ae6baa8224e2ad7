package gates

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sigval/domain/validation"
	"sigval/internal/errors"
)

// steadyReturns builds a deterministic return series with a positive drift and
// a bounded oscillation around it.
func steadyReturns(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 0.01 + 0.005*math.Sin(1.7*float64(i))
	}
	return out
}

func TestExpectedMaxSharpe(t *testing.T) {
	assert.Equal(t, 0.0, ExpectedMaxSharpe(0))
	assert.Equal(t, 0.0, ExpectedMaxSharpe(1))

	// Strictly increasing in the number of trials.
	prev := 0.0
	for n := 2; n <= 200; n++ {
		cur := ExpectedMaxSharpe(n)
		assert.Greater(t, cur, prev, "nTrials=%d", n)
		prev = cur
	}

	// Spot check: sqrt(2 ln 100) minus the Euler correction.
	assert.InDelta(t, 2.67, ExpectedMaxSharpe(100), 0.05)
}

func TestCalculateReturnStatisticsInsufficientData(t *testing.T) {
	_, err := CalculateReturnStatistics(steadyReturns(29))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeInsufficientData))
}

func TestCalculateReturnStatisticsConstantSeries(t *testing.T) {
	constant := make([]float64, 50)
	for i := range constant {
		constant[i] = 0.01
	}

	rs, err := CalculateReturnStatistics(constant)
	require.NoError(t, err)
	assert.Equal(t, 0.0, rs.Skewness)
	assert.Equal(t, 3.0, rs.Kurtosis)
	assert.InDelta(t, 0.01, rs.Mean, 1e-12)
}

func TestCalculateReturnStatisticsSkewSign(t *testing.T) {
	// Mostly small values with a fat right tail.
	series := make([]float64, 60)
	for i := range series {
		series[i] = 0.001
	}
	series[10] = 0.5
	series[40] = 0.6

	rs, err := CalculateReturnStatistics(series)
	require.NoError(t, err)
	assert.Greater(t, rs.Skewness, 0.0)
	assert.Greater(t, rs.Kurtosis, 3.0)
}

func TestCalculateDSRProbabilityBounds(t *testing.T) {
	returns := steadyReturns(252)
	for _, trials := range []int{1, 10, 100, 1000} {
		d, err := CalculateDSR(returns, trials, 0.95)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, d.Probability, 0.0)
		assert.LessOrEqual(t, d.Probability, 1.0)
		assert.InDelta(t, 1.0, d.PValue+d.Probability, 1e-12)
	}
}

func TestCalculateDSRDegenerateSeries(t *testing.T) {
	constant := make([]float64, 50)
	for i := range constant {
		constant[i] = 0.01
	}

	d, err := CalculateDSR(constant, 1, 0.95)
	require.NoError(t, err)
	// No variance means no Sharpe, no standard error and a neutral 0.5.
	assert.Equal(t, 0.0, d.Sharpe)
	assert.Equal(t, 0.0, d.ZStat)
	assert.InDelta(t, 0.5, d.Probability, 1e-12)
	assert.Equal(t, "not significant", d.Interpretation)
}

func TestRunDSRGatePerfectAlignment(t *testing.T) {
	// Signals equal to returns capture every move: the gate must pass with
	// probability of skill near 1 for a single trial.
	returns := steadyReturns(252)
	signals := make([]float64, len(returns))
	copy(signals, returns)

	res, err := RunDSRGate(signals, returns, 1, validation.DefaultThresholds())
	require.NoError(t, err)

	assert.True(t, res.Passed)
	assert.Equal(t, validation.StatusPass, res.Status)
	assert.GreaterOrEqual(t, res.Probability, 0.99)
	assert.Equal(t, "significant", res.Interpretation)
	assert.Equal(t, 0.0, res.ExpectedMaxSharpe)
	assert.Greater(t, res.Sharpe, 0.0)
	assert.Equal(t, 252, res.N)
}

func TestRunDSRGateLosingStrategy(t *testing.T) {
	// Long signals against a steadily negative return stream.
	returns := steadyReturns(252)
	for i := range returns {
		returns[i] = -returns[i]
	}
	signals := make([]float64, len(returns))
	for i := range signals {
		signals[i] = 1
	}

	res, err := RunDSRGate(signals, returns, 1, validation.DefaultThresholds())
	require.NoError(t, err)

	assert.False(t, res.Passed)
	assert.Equal(t, validation.StatusFail, res.Status)
	assert.Less(t, res.Probability, 0.05)
	assert.Contains(t, res.Reason, "probability of skill")
}

func TestRunDSRGateInsufficientData(t *testing.T) {
	returns := steadyReturns(20)
	_, err := RunDSRGate(returns, returns, 1, validation.DefaultThresholds())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeInsufficientData))
}

func TestMinimumRequiredSharpe(t *testing.T) {
	// One trial over a year of daily data still needs a positive hurdle.
	single := MinimumRequiredSharpe(1, 252, 0, 3, 0.95)
	assert.Greater(t, single, 0.0)
	assert.Less(t, single, 0.5)

	// The hurdle grows with the number of trials.
	prev := single
	for _, trials := range []int{10, 100, 1000} {
		cur := MinimumRequiredSharpe(trials, 252, 0, 3, 0.95)
		assert.Greater(t, cur, prev, "nTrials=%d", trials)
		prev = cur
	}
}
