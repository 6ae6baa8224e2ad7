package gates

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sigval/domain/validation"
	"sigval/internal/errors"
)

func oscillatingSignal(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(0.25 * float64(i))
	}
	return out
}

func TestRollingIC(t *testing.T) {
	signals := oscillatingSignal(60)
	forward := make([]float64, len(signals))
	copy(forward, signals)

	ics := RollingIC(signals, forward, 20)
	require.Len(t, ics, 41) // 60 - 20 + 1 windows, stride 1
	for _, ic := range ics {
		assert.InDelta(t, 1.0, ic, 1e-6)
	}
}

func TestRollingICTooShort(t *testing.T) {
	assert.Nil(t, RollingIC(oscillatingSignal(10), oscillatingSignal(10), 20))
	assert.Nil(t, RollingIC(oscillatingSignal(60), oscillatingSignal(60), 1))
}

func TestSummarizeIC(t *testing.T) {
	st := summarizeIC([]float64{0.5, -0.5, 0.5, -0.5})
	assert.InDelta(t, 0.0, st.Mean, 1e-12)
	assert.Greater(t, st.Std, 0.5)
	assert.Equal(t, 0.5, st.HitRate)
	assert.Equal(t, 4, st.Windows)

	empty := summarizeIC(nil)
	assert.Equal(t, 0, empty.Windows)
	assert.Equal(t, 0.0, empty.Mean)
}

func TestRunICGatePredictiveSignal(t *testing.T) {
	signals := oscillatingSignal(120)
	forward := make([]float64, len(signals))
	copy(forward, signals)

	res, err := RunICGate(signals, forward, validation.DefaultThresholds())
	require.NoError(t, err)

	assert.True(t, res.Passed)
	assert.Equal(t, validation.StatusPass, res.Status)
	assert.InDelta(t, 1.0, res.Mean, 1e-6)
	assert.InDelta(t, 0.0, res.Std, 1e-6)
	assert.Equal(t, 1.0, res.HitRate)
	assert.Equal(t, DefaultICWindow, res.Window)
}

func TestRunICGateInvertedSignal(t *testing.T) {
	signals := oscillatingSignal(120)
	forward := make([]float64, len(signals))
	for i := range signals {
		forward[i] = -signals[i]
	}

	res, err := RunICGate(signals, forward, validation.DefaultThresholds())
	require.NoError(t, err)

	assert.False(t, res.Passed)
	assert.Equal(t, validation.StatusFail, res.Status)
	assert.Less(t, res.Mean, 0.0)
	assert.Contains(t, res.Reason, "IC mean")
}

func TestRunICGateInsufficientData(t *testing.T) {
	signals := oscillatingSignal(15)
	_, err := RunICGate(signals, signals, validation.DefaultThresholds())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeInsufficientData))
}
