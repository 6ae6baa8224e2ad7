package gates

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sigval/domain/validation"
)

func TestRunWalkForwardFoldGeometry(t *testing.T) {
	// 90 observations, 5 periods, 4 training blocks: 9 blocks of 10.
	st := RunWalkForward(steadyReturns(90), DefaultWalkForwardConfig())
	require.Len(t, st.Periods, 5)

	first := st.Periods[0]
	assert.Equal(t, 0, first.TrainStart)
	assert.Equal(t, 40, first.TrainEnd)
	assert.Equal(t, 40, first.TestStart)
	assert.Equal(t, 50, first.TestEnd)

	// Last fold absorbs the tail.
	last := st.Periods[4]
	assert.Equal(t, 40, last.TrainStart)
	assert.Equal(t, 80, last.TestStart)
	assert.Equal(t, 90, last.TestEnd)
}

func TestRunWalkForwardStableStrategy(t *testing.T) {
	st := RunWalkForward(steadyReturns(450), DefaultWalkForwardConfig())

	assert.Greater(t, st.MeanIS, 0.0)
	assert.Greater(t, st.MeanOOS, 0.0)
	// In-sample and out-of-sample behave alike, so efficiency sits near 1.
	assert.InDelta(t, 1.0, st.Efficiency, 0.3)
	assert.Equal(t, 1.0, st.Consistency)
	assert.InDelta(t, st.MeanIS-st.MeanOOS, st.Degradation, 1e-12)
}

func TestRunWalkForwardLosingStrategy(t *testing.T) {
	returns := steadyReturns(450)
	for i := range returns {
		returns[i] = -returns[i]
	}
	st := RunWalkForward(returns, DefaultWalkForwardConfig())

	// Negative in-sample mean: efficiency is pinned to 0 rather than flipping
	// sign.
	assert.Equal(t, 0.0, st.Efficiency)
	assert.Equal(t, 0.0, st.Consistency)
}

func TestRunWalkForwardTooShort(t *testing.T) {
	st := RunWalkForward(steadyReturns(5), DefaultWalkForwardConfig())
	assert.Empty(t, st.Periods)
	assert.Equal(t, 0.0, st.Efficiency)
}

func TestRunWalkForwardGateSkipsShortHistory(t *testing.T) {
	returns := steadyReturns(200) // below the 250 minimum
	res := RunWalkForwardGate(returns, returns, validation.DefaultThresholds())

	assert.True(t, res.Passed)
	assert.Equal(t, validation.StatusInconclusive, res.Status)
	assert.True(t, strings.Contains(res.Reason, "Skipped"), "reason: %s", res.Reason)
}

func TestRunWalkForwardGatePass(t *testing.T) {
	returns := steadyReturns(450)
	res := RunWalkForwardGate(returns, returns, validation.DefaultThresholds())

	assert.True(t, res.Passed)
	assert.Equal(t, validation.StatusPass, res.Status)
	assert.GreaterOrEqual(t, res.Efficiency, 0.5)
	assert.Equal(t, 5, res.Periods)
}

func TestRunWalkForwardGateFail(t *testing.T) {
	returns := steadyReturns(450)
	signals := make([]float64, len(returns))
	for i := range signals {
		signals[i] = -1
	}
	res := RunWalkForwardGate(signals, returns, validation.DefaultThresholds())

	assert.False(t, res.Passed)
	assert.Equal(t, validation.StatusFail, res.Status)
	assert.Contains(t, res.Reason, "walk-forward efficiency")
}
