package validation

import (
	"fmt"
)

// ============================================================================
// PIPELINE INPUT
// ============================================================================

// Input carries one candidate indicator through the validation pipeline.
// Signals and Returns are per-period series; the caller is responsible for
// aligning them, gates independently truncate to the shortest common length.
type Input struct {
	IndicatorID string `json:"indicator_id"`

	// Signals are the candidate's per-period scores.
	Signals []float64 `json:"signals"`

	// Returns are the realized per-period returns over the same history.
	Returns []float64 `json:"returns"`

	// ForwardReturns optionally overrides the forward-return series used by the
	// IC gate. When nil the pipeline derives it from Returns shifted by one
	// period with a zero-padded tail.
	ForwardReturns []float64 `json:"forward_returns,omitempty"`

	// NTrials is the number of configurations searched before this candidate
	// was selected. Drives the multiple-testing penalty. Must be >= 1.
	NTrials int `json:"n_trials"`

	// ExistingIndicators maps already-deployed indicator IDs to their
	// historical value series, for the orthogonality gate.
	ExistingIndicators map[string][]float64 `json:"existing_indicators,omitempty"`

	// Overrides replaces individual thresholds for this call only.
	Overrides *Overrides `json:"overrides,omitempty"`
}

// NewInput creates a pipeline input and checks its invariants.
func NewInput(indicatorID string, signals, returns []float64, nTrials int) (*Input, error) {
	in := &Input{
		IndicatorID: indicatorID,
		Signals:     signals,
		Returns:     returns,
		NTrials:     nTrials,
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return in, nil
}

// Validate checks the input invariants that must hold before any gate runs.
func (in *Input) Validate() error {
	if in.IndicatorID == "" {
		return fmt.Errorf("indicator ID must be set")
	}
	if len(in.Signals) == 0 {
		return fmt.Errorf("signals must be non-empty")
	}
	if len(in.Returns) == 0 {
		return fmt.Errorf("returns must be non-empty")
	}
	if in.NTrials < 1 {
		return fmt.Errorf("nTrials must be >= 1, got %d", in.NTrials)
	}
	if in.Overrides != nil {
		if err := in.Overrides.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ============================================================================
// THRESHOLD CONFIGURATION
// ============================================================================

// Thresholds is the full pass/fail configuration for one pipeline run.
// Values are resolved once before the gates run: explicit override, else
// default. The struct is passed by value and never mutated by gates.
type Thresholds struct {
	// DSRProbability is the minimum probability of skill (0.95 default).
	DSRProbability float64 `json:"dsr_probability"`

	// PBOMax is the maximum acceptable probability of backtest overfitting.
	PBOMax float64 `json:"pbo_max"`

	// ICMeanMin / ICStdMax bound the rolling information coefficient.
	ICMeanMin float64 `json:"ic_mean_min"`
	ICStdMax  float64 `json:"ic_std_max"`

	// WFEfficiencyMin is the minimum out-of-sample / in-sample performance
	// ratio for the walk-forward gate.
	WFEfficiencyMin float64 `json:"wf_efficiency_min"`

	// MaxCorrelation rejects, CorrelationWarning flags, pairwise overlap with
	// an existing indicator.
	MaxCorrelation     float64 `json:"max_correlation"`
	CorrelationWarning float64 `json:"correlation_warning"`

	// MaxVIF is the maximum acceptable variance inflation factor.
	MaxVIF float64 `json:"max_vif"`

	// MinObservations is the minimum sample size for correlation and VIF
	// checks to be meaningful.
	MinObservations int `json:"min_observations"`
}

// DefaultThresholds returns the standard acceptance configuration.
func DefaultThresholds() Thresholds {
	return Thresholds{
		DSRProbability:     0.95,
		PBOMax:             0.5,
		ICMeanMin:          0.02,
		ICStdMax:           0.03,
		WFEfficiencyMin:    0.5,
		MaxCorrelation:     0.7,
		CorrelationWarning: 0.5,
		MaxVIF:             5.0,
		MinObservations:    30,
	}
}

// Validate checks threshold ranges.
func (t Thresholds) Validate() error {
	unit := []struct {
		name  string
		value float64
	}{
		{"dsr_probability", t.DSRProbability},
		{"pbo_max", t.PBOMax},
		{"wf_efficiency_min", t.WFEfficiencyMin},
		{"max_correlation", t.MaxCorrelation},
		{"correlation_warning", t.CorrelationWarning},
	}
	for _, f := range unit {
		if f.value < 0 || f.value > 1 {
			return fmt.Errorf("%s must be in [0, 1], got %v", f.name, f.value)
		}
	}
	if t.ICStdMax < 0 {
		return fmt.Errorf("ic_std_max must be >= 0, got %v", t.ICStdMax)
	}
	if t.MaxVIF <= 1 {
		return fmt.Errorf("max_vif must be > 1, got %v", t.MaxVIF)
	}
	if t.MinObservations < 2 {
		return fmt.Errorf("min_observations must be >= 2, got %d", t.MinObservations)
	}
	return nil
}

// Merge resolves per-call overrides against the receiver and returns the
// resulting configuration. Nil override fields keep the receiver's value.
func (t Thresholds) Merge(o *Overrides) Thresholds {
	if o == nil {
		return t
	}
	if o.DSRProbability != nil {
		t.DSRProbability = *o.DSRProbability
	}
	if o.PBOMax != nil {
		t.PBOMax = *o.PBOMax
	}
	if o.ICMeanMin != nil {
		t.ICMeanMin = *o.ICMeanMin
	}
	if o.ICStdMax != nil {
		t.ICStdMax = *o.ICStdMax
	}
	if o.WFEfficiencyMin != nil {
		t.WFEfficiencyMin = *o.WFEfficiencyMin
	}
	if o.MaxCorrelation != nil {
		t.MaxCorrelation = *o.MaxCorrelation
	}
	if o.CorrelationWarning != nil {
		t.CorrelationWarning = *o.CorrelationWarning
	}
	if o.MaxVIF != nil {
		t.MaxVIF = *o.MaxVIF
	}
	if o.MinObservations != nil {
		t.MinObservations = *o.MinObservations
	}
	return t
}

// Overrides carries optional per-call threshold replacements.
type Overrides struct {
	DSRProbability     *float64 `json:"dsr_probability,omitempty"`
	PBOMax             *float64 `json:"pbo_max,omitempty"`
	ICMeanMin          *float64 `json:"ic_mean_min,omitempty"`
	ICStdMax           *float64 `json:"ic_std_max,omitempty"`
	WFEfficiencyMin    *float64 `json:"wf_efficiency_min,omitempty"`
	MaxCorrelation     *float64 `json:"max_correlation,omitempty"`
	CorrelationWarning *float64 `json:"correlation_warning,omitempty"`
	MaxVIF             *float64 `json:"max_vif,omitempty"`
	MinObservations    *int     `json:"min_observations,omitempty"`
}

// Validate checks that every set override is in range, by merging into the
// defaults and validating the result.
func (o *Overrides) Validate() error {
	return DefaultThresholds().Merge(o).Validate()
}

// Candidate is one entry in a batch validation request. All candidates in a
// batch share a single returns series and existing-indicator map.
type Candidate struct {
	IndicatorID string     `json:"indicator_id"`
	Signals     []float64  `json:"signals"`
	NTrials     int        `json:"n_trials"`
	Overrides   *Overrides `json:"overrides,omitempty"`
}
