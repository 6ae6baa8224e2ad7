package validation

import (
	"sigval/domain/core"
)

// ============================================================================
// GATE RESULTS (one variant per gate, sealed)
// ============================================================================

// GateStatus is the tri-state outcome of a gate. Passed keeps the historical
// boolean collapse: a StatusInconclusive gate (skipped for short history)
// still reports Passed = true.
type GateStatus string

const (
	StatusPass         GateStatus = "pass"
	StatusFail         GateStatus = "fail"
	StatusInconclusive GateStatus = "inconclusive"
)

// GateResult is the sealed union of the five gate outcomes. The orchestrator
// and the reporting engine switch over the concrete variants.
type GateResult interface {
	// GateName returns the stable identifier of the gate.
	GateName() string
	// GatePassed reports the boolean collapse of the gate outcome.
	GatePassed() bool
	// GateStatus reports the tri-state outcome.
	GateStatus() GateStatus
	// FailureReason is empty unless the gate failed or was skipped.
	FailureReason() string

	sealedGate()
}

// Outcome is the part every gate result shares. Reason is populated only on
// failure or on an insufficient-data skip.
type Outcome struct {
	Passed bool       `json:"passed"`
	Status GateStatus `json:"status"`
	N      int        `json:"n"`
	Reason string     `json:"reason,omitempty"`
}

func (o Outcome) GatePassed() bool       { return o.Passed }
func (o Outcome) GateStatus() GateStatus { return o.Status }
func (o Outcome) FailureReason() string  { return o.Reason }

// DSRResult is the deflated Sharpe ratio gate outcome.
type DSRResult struct {
	Outcome
	Sharpe            float64 `json:"sharpe"`
	ExpectedMaxSharpe float64 `json:"expected_max_sharpe"`
	StdError          float64 `json:"std_error"`
	ZStat             float64 `json:"z_stat"`
	PValue            float64 `json:"p_value"`
	Probability       float64 `json:"probability"`
	Interpretation    string  `json:"interpretation"`
	Skewness          float64 `json:"skewness"`
	Kurtosis          float64 `json:"kurtosis"`
}

func (DSRResult) GateName() string { return "deflated_sharpe" }
func (DSRResult) sealedGate()      {}

// PBOResult is the probability-of-backtest-overfitting gate outcome.
type PBOResult struct {
	Outcome
	PBO           float64 `json:"pbo"`
	Splits        int     `json:"splits"`
	Combinations  int     `json:"combinations"`
	MeanISSharpe  float64 `json:"mean_is_sharpe"`
	MeanOOSSharpe float64 `json:"mean_oos_sharpe"`
}

func (PBOResult) GateName() string { return "pbo" }
func (PBOResult) sealedGate()      {}

// ICResult is the information-coefficient gate outcome.
type ICResult struct {
	Outcome
	Mean    float64 `json:"mean"`
	Std     float64 `json:"std"`
	ICIR    float64 `json:"icir"`
	HitRate float64 `json:"hit_rate"`
	Window  int     `json:"window"`
	Windows int     `json:"windows"`
}

func (ICResult) GateName() string { return "information_coefficient" }
func (ICResult) sealedGate()      {}

// WalkForwardResult is the walk-forward efficiency gate outcome.
type WalkForwardResult struct {
	Outcome
	Efficiency  float64 `json:"efficiency"`
	Consistency float64 `json:"consistency"`
	Degradation float64 `json:"degradation"`
	Periods     int     `json:"periods"`
	MeanIS      float64 `json:"mean_is"`
	MeanOOS     float64 `json:"mean_oos"`
}

func (WalkForwardResult) GateName() string { return "walk_forward" }
func (WalkForwardResult) sealedGate()      {}

// IndicatorCorrelation is the pairwise overlap of the candidate with one
// existing indicator.
type IndicatorCorrelation struct {
	Indicator    string  `json:"indicator"`
	Correlation  float64 `json:"correlation"`
	N            int     `json:"n"`
	IsAcceptable bool    `json:"is_acceptable"`
	IsWarning    bool    `json:"is_warning"`
}

// OrthogonalityResult is the redundancy gate outcome.
type OrthogonalityResult struct {
	Outcome
	Correlations           []IndicatorCorrelation `json:"correlations,omitempty"`
	MostCorrelatedWith     string                 `json:"most_correlated_with,omitempty"`
	MaxAbsCorrelation      float64                `json:"max_abs_correlation"`
	CorrelationsAcceptable bool                   `json:"correlations_acceptable"`
	VIF                    float64                `json:"vif"`
	VIFAcceptable          bool                   `json:"vif_acceptable"`
	IsOrthogonal           bool                   `json:"is_orthogonal"`
}

func (OrthogonalityResult) GateName() string { return "orthogonality" }
func (OrthogonalityResult) sealedGate()      {}

// ============================================================================
// AGGREGATED RESULT
// ============================================================================

// TrialInfo records the multiple-testing context of the run.
type TrialInfo struct {
	Attempted int `json:"attempted"`
	// Selected is fixed at 1: one candidate is validated per run.
	Selected int `json:"selected"`
	// MultipleTestingPenalty is the Sharpe expected from chance alone given
	// Attempted independent trials.
	MultipleTestingPenalty float64 `json:"multiple_testing_penalty"`
}

// ReturnProfile is a diagnostic summary of the signal-weighted return
// distribution the DSR gate's small-sample assumptions depend on.
type ReturnProfile struct {
	Mean       float64 `json:"mean"`
	StdDev     float64 `json:"std_dev"`
	Skewness   float64 `json:"skewness"`
	Kurtosis   float64 `json:"kurtosis"`
	IsNormal   bool    `json:"is_normal"`
	NormalityP float64 `json:"normality_p"`
	N          int     `json:"n"`
}

// TotalGates is the number of independent acceptance gates.
const TotalGates = 5

// Result is the aggregated outcome of one validation pipeline run.
type Result struct {
	RunID       core.RunID     `json:"run_id"`
	IndicatorID string         `json:"indicator_id"`
	Timestamp   core.Timestamp `json:"timestamp"`

	DSR           DSRResult           `json:"dsr"`
	PBO           PBOResult           `json:"pbo"`
	IC            ICResult            `json:"ic"`
	WalkForward   WalkForwardResult   `json:"walk_forward"`
	Orthogonality OrthogonalityResult `json:"orthogonality"`

	Trials  TrialInfo      `json:"trials"`
	Profile *ReturnProfile `json:"profile,omitempty"`

	OverallPassed bool    `json:"overall_passed"`
	GatesPassed   int     `json:"gates_passed"`
	TotalGates    int     `json:"total_gates"`
	PassRate      float64 `json:"pass_rate"`

	Summary         string   `json:"summary"`
	Recommendations []string `json:"recommendations"`
}

// Gates returns the five gate results in canonical order for exhaustive
// iteration.
func (r *Result) Gates() []GateResult {
	return []GateResult{r.DSR, r.PBO, r.IC, r.WalkForward, r.Orthogonality}
}

// Aggregate recomputes the pass tally from the five gate results.
func (r *Result) Aggregate() {
	passed := 0
	for _, g := range r.Gates() {
		if g.GatePassed() {
			passed++
		}
	}
	r.GatesPassed = passed
	r.TotalGates = TotalGates
	r.PassRate = float64(passed) / float64(TotalGates)
	r.OverallPassed = passed == TotalGates
}

// ============================================================================
// EVALUATION VERDICT
// ============================================================================

// Decision is the ternary deploy/retry/retire verdict.
type Decision string

const (
	DecisionDeploy Decision = "deploy"
	DecisionRetry  Decision = "retry"
	DecisionRetire Decision = "retire"
)

// Confidence labels how firmly the decision is held.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Evaluation is the reporting engine's final judgment on a validation result.
type Evaluation struct {
	Decision   Decision   `json:"decision"`
	Confidence Confidence `json:"confidence"`
	Rationale  string     `json:"rationale"`
}
