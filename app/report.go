package app

import (
	"fmt"
	"strings"

	"sigval/domain/validation"
)

// Critical-failure cutoffs: beyond these a candidate is retired outright
// rather than sent back for more data.
const (
	criticalDSRProbability = 0.5
	criticalPBO            = 0.7
	criticalWFEfficiency   = 0.3
	severeVIF              = 10.0
)

// GenerateSummary renders a one-line human-readable account of the run.
func GenerateSummary(r *validation.Result) string {
	if r.OverallPassed {
		return fmt.Sprintf("All validation gates passed (%d/%d); indicator %s is a candidate for deployment",
			r.GatesPassed, r.TotalGates, r.IndicatorID)
	}

	var failed []string
	for _, g := range r.Gates() {
		if !g.GatePassed() {
			failed = append(failed, g.GateName())
		}
	}
	return fmt.Sprintf("%d/%d validation gates passed; failed: %s",
		r.GatesPassed, r.TotalGates, strings.Join(failed, ", "))
}

// GenerateRecommendations derives gate-specific, severity-tiered guidance for
// the failing gates. An all-pass run yields a single deployment note.
func GenerateRecommendations(r *validation.Result) []string {
	if r.OverallPassed {
		return []string{"All gates passed; proceed to paper trading and monitor live IC against the backtest"}
	}

	var recs []string

	if !r.DSR.Passed {
		if r.DSR.Probability < criticalDSRProbability {
			recs = append(recs, fmt.Sprintf(
				"DSR: probability of skill %.2f — the observed Sharpe is likely due to chance given %d trials; redesign the signal rather than re-tuning it",
				r.DSR.Probability, r.Trials.Attempted))
		} else {
			recs = append(recs, fmt.Sprintf(
				"DSR: probability of skill %.2f is marginal; collect more history before deploying",
				r.DSR.Probability))
		}
	}

	if !r.PBO.Passed {
		if r.PBO.PBO > criticalPBO {
			recs = append(recs, fmt.Sprintf(
				"PBO: %.2f indicates heavy overfitting to the backtest period; widen the search space or simplify the configuration",
				r.PBO.PBO))
		} else {
			recs = append(recs, fmt.Sprintf(
				"PBO: %.2f is above tolerance; re-run selection with fewer candidate configurations",
				r.PBO.PBO))
		}
	}

	if !r.IC.Passed {
		if r.IC.Mean < 0 {
			recs = append(recs, fmt.Sprintf(
				"IC: mean %.4f is negative — the signal is inverted or carries no forward information; check the sign convention first",
				r.IC.Mean))
		} else if r.IC.Std > 0 && r.IC.Mean >= 0 {
			recs = append(recs, fmt.Sprintf(
				"IC: unstable (mean %.4f, std %.4f); consider smoothing the signal or lengthening its lookback",
				r.IC.Mean, r.IC.Std))
		}
	}

	if !r.WalkForward.Passed {
		if r.WalkForward.Efficiency < criticalWFEfficiency {
			recs = append(recs, fmt.Sprintf(
				"Walk-forward: efficiency %.2f shows severe out-of-sample degradation; the edge does not survive outside the training window",
				r.WalkForward.Efficiency))
		} else {
			recs = append(recs, fmt.Sprintf(
				"Walk-forward: efficiency %.2f is below target; retrain on rolling windows before promoting",
				r.WalkForward.Efficiency))
		}
	}

	if !r.Orthogonality.Passed {
		if r.Orthogonality.VIF > severeVIF {
			recs = append(recs, fmt.Sprintf(
				"Orthogonality: VIF %.1f indicates severe multicollinearity with the deployed set; orthogonalize against it or retire the candidate",
				r.Orthogonality.VIF))
		} else if r.Orthogonality.MostCorrelatedWith != "" {
			recs = append(recs, fmt.Sprintf(
				"Orthogonality: highly correlated with %s (%.2f); residualize the candidate against it and re-validate",
				r.Orthogonality.MostCorrelatedWith, r.Orthogonality.MaxAbsCorrelation))
		} else {
			recs = append(recs, "Orthogonality: redundancy check failed; review overlap with the deployed indicator set")
		}
	}

	return recs
}

// Evaluate converts a validation result into the ternary
// deploy/retry/retire verdict with a confidence label.
func Evaluate(r *validation.Result) validation.Evaluation {
	if r.OverallPassed {
		conf := validation.ConfidenceMedium
		if r.PassRate >= 0.8 {
			conf = validation.ConfidenceHigh
		}
		return validation.Evaluation{
			Decision:   validation.DecisionDeploy,
			Confidence: conf,
			Rationale:  "all gates passed",
		}
	}

	// Critical failures retire the candidate outright. Skipped gates
	// (inconclusive) never count as critical.
	var critical []string
	if r.DSR.Status == validation.StatusFail && r.DSR.Probability < criticalDSRProbability {
		critical = append(critical, fmt.Sprintf("DSR probability %.2f", r.DSR.Probability))
	}
	if r.PBO.Status == validation.StatusFail && r.PBO.PBO > criticalPBO {
		critical = append(critical, fmt.Sprintf("PBO %.2f", r.PBO.PBO))
	}
	if r.IC.Status == validation.StatusFail && r.IC.Mean < 0 {
		critical = append(critical, fmt.Sprintf("IC mean %.4f", r.IC.Mean))
	}
	if r.WalkForward.Status == validation.StatusFail && r.WalkForward.Efficiency < criticalWFEfficiency {
		critical = append(critical, fmt.Sprintf("walk-forward efficiency %.2f", r.WalkForward.Efficiency))
	}
	if len(critical) > 0 {
		return validation.Evaluation{
			Decision:   validation.DecisionRetire,
			Confidence: validation.ConfidenceHigh,
			Rationale:  "critical failure: " + strings.Join(critical, ", "),
		}
	}

	if r.PassRate >= 0.6 {
		return validation.Evaluation{
			Decision:   validation.DecisionRetry,
			Confidence: validation.ConfidenceMedium,
			Rationale:  fmt.Sprintf("%d/%d gates passed with only borderline failures; adjust and re-validate", r.GatesPassed, r.TotalGates),
		}
	}
	return validation.Evaluation{
		Decision:   validation.DecisionRetry,
		Confidence: validation.ConfidenceLow,
		Rationale:  fmt.Sprintf("%d/%d gates passed; substantial rework needed before re-validation", r.GatesPassed, r.TotalGates),
	}
}
