package config

import (
	"os"
	"strconv"

	"sigval/domain/validation"
	"sigval/internal/errors"

	"github.com/joho/godotenv"
)

// Env variable names for threshold overrides.
const (
	EnvDSRProbability     = "SIGVAL_DSR_PROBABILITY"
	EnvPBOMax             = "SIGVAL_PBO_MAX"
	EnvICMeanMin          = "SIGVAL_IC_MEAN_MIN"
	EnvICStdMax           = "SIGVAL_IC_STD_MAX"
	EnvWFEfficiencyMin    = "SIGVAL_WF_EFFICIENCY_MIN"
	EnvMaxCorrelation     = "SIGVAL_MAX_CORRELATION"
	EnvCorrelationWarning = "SIGVAL_CORRELATION_WARNING"
	EnvMaxVIF             = "SIGVAL_MAX_VIF"
	EnvMinObservations    = "SIGVAL_MIN_OBSERVATIONS"
)

// Load reads threshold configuration from the environment, starting from the
// defaults. A .env file in the working directory is honored when present.
func Load() (validation.Thresholds, error) {
	// Missing .env is not an error; env vars may be set directly.
	_ = godotenv.Load()

	t := validation.DefaultThresholds()
	t.DSRProbability = getEnvFloatOrDefault(EnvDSRProbability, t.DSRProbability)
	t.PBOMax = getEnvFloatOrDefault(EnvPBOMax, t.PBOMax)
	t.ICMeanMin = getEnvFloatOrDefault(EnvICMeanMin, t.ICMeanMin)
	t.ICStdMax = getEnvFloatOrDefault(EnvICStdMax, t.ICStdMax)
	t.WFEfficiencyMin = getEnvFloatOrDefault(EnvWFEfficiencyMin, t.WFEfficiencyMin)
	t.MaxCorrelation = getEnvFloatOrDefault(EnvMaxCorrelation, t.MaxCorrelation)
	t.CorrelationWarning = getEnvFloatOrDefault(EnvCorrelationWarning, t.CorrelationWarning)
	t.MaxVIF = getEnvFloatOrDefault(EnvMaxVIF, t.MaxVIF)
	t.MinObservations = getEnvIntOrDefault(EnvMinObservations, t.MinObservations)

	if err := t.Validate(); err != nil {
		return validation.Thresholds{}, errors.Wrap(errors.ConfigInvalid(err.Error()), "threshold configuration invalid")
	}
	return t, nil
}

// Helper functions for environment variable parsing
func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
