package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReturnProfileShortHistory(t *testing.T) {
	assert.Nil(t, ReturnProfile(trendingReturns(20)))
	assert.Nil(t, ReturnProfile(nil))
}

func TestReturnProfileFields(t *testing.T) {
	p := ReturnProfile(trendingReturns(100))
	require.NotNil(t, p)

	assert.Equal(t, 100, p.N)
	assert.InDelta(t, 0.01, p.Mean, 0.001)
	assert.Greater(t, p.StdDev, 0.0)
	assert.GreaterOrEqual(t, p.NormalityP, 0.0)
	assert.LessOrEqual(t, p.NormalityP, 1.0)
}

func TestReturnProfileRejectsHeavilySkewedSeries(t *testing.T) {
	// Near-constant series with two large outliers: unambiguously non-normal.
	series := make([]float64, 60)
	for i := range series {
		series[i] = 0.001
	}
	series[10] = 0.5
	series[40] = 0.6

	p := ReturnProfile(series)
	require.NotNil(t, p)
	assert.False(t, p.IsNormal)
	assert.Less(t, p.NormalityP, 0.05)
	assert.Greater(t, p.Skewness, 0.0)
}
