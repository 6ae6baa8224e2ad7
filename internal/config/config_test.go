package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sigval/domain/validation"
	"sigval/internal/errors"
)

func TestLoadDefaults(t *testing.T) {
	th, err := Load()
	require.NoError(t, err)
	assert.Equal(t, validation.DefaultThresholds(), th)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv(EnvMaxVIF, "7.5")
	t.Setenv(EnvDSRProbability, "0.99")
	t.Setenv(EnvMinObservations, "50")

	th, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7.5, th.MaxVIF)
	assert.Equal(t, 0.99, th.DSRProbability)
	assert.Equal(t, 50, th.MinObservations)

	// Untouched fields keep their defaults.
	assert.Equal(t, 0.5, th.PBOMax)
}

func TestLoadUnparseableValueKeepsDefault(t *testing.T) {
	t.Setenv(EnvPBOMax, "not-a-number")

	th, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 0.5, th.PBOMax)
}

func TestLoadRejectsOutOfRangeValue(t *testing.T) {
	t.Setenv(EnvDSRProbability, "1.5")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeConfigInvalid))
}
