package gates

import (
	"fmt"
	"strings"

	"github.com/montanaflynn/stats"

	"sigval/domain/validation"
	"sigval/internal/errors"
	"sigval/internal/numerics"
)

// DefaultICWindow is the rolling window (periods) for the time-series
// information coefficient.
const DefaultICWindow = 20

// RollingIC computes the Pearson correlation between signal and forward
// returns over every rolling window (stride 1). Both series are truncated to
// the shortest common length first.
func RollingIC(signals, forward []float64, window int) []float64 {
	n := len(signals)
	if len(forward) < n {
		n = len(forward)
	}
	if window < 2 || n < window {
		return nil
	}

	out := make([]float64, 0, n-window+1)
	for i := 0; i+window <= n; i++ {
		ic, _ := numerics.PearsonCorrelation(signals[i:i+window], forward[i:i+window])
		out = append(out, ic)
	}
	return out
}

// ICStats summarizes the stability of a rolling IC series.
type ICStats struct {
	Mean    float64 `json:"mean"`
	Std     float64 `json:"std"`
	ICIR    float64 `json:"icir"` // information ratio, mean/std
	HitRate float64 `json:"hit_rate"`
	Windows int     `json:"windows"`
}

// summarizeIC aggregates a rolling IC series.
func summarizeIC(ics []float64) ICStats {
	st := ICStats{Windows: len(ics)}
	if len(ics) == 0 {
		return st
	}
	st.Mean, _ = stats.Mean(ics)
	if len(ics) > 1 {
		st.Std, _ = stats.StandardDeviationSample(ics)
	}
	if st.Std > 0 {
		st.ICIR = st.Mean / st.Std
	}
	positive := 0
	for _, ic := range ics {
		if ic > 0 {
			positive++
		}
	}
	st.HitRate = float64(positive) / float64(len(ics))
	return st
}

// RunICGate runs the information coefficient gate between the signal and the
// forward-return series. Unlike PBO and walk-forward, insufficient history is
// a loud INSUFFICIENT_DATA error here, not a lenient skip.
func RunICGate(signals, forward []float64, th validation.Thresholds) (validation.ICResult, error) {
	n := len(signals)
	if len(forward) < n {
		n = len(forward)
	}
	window := DefaultICWindow
	if n < window+1 {
		return validation.ICResult{}, errors.InsufficientData(
			fmt.Sprintf("IC gate requires at least %d observations for a %d-period rolling window, got %d", window+1, window, n))
	}

	ics := RollingIC(signals, forward, window)
	st := summarizeIC(ics)

	res := validation.ICResult{
		Outcome: validation.Outcome{N: n},
		Mean:    st.Mean,
		Std:     st.Std,
		ICIR:    st.ICIR,
		HitRate: st.HitRate,
		Window:  window,
		Windows: st.Windows,
	}

	var reasons []string
	if st.Mean < th.ICMeanMin {
		reasons = append(reasons, fmt.Sprintf("IC mean %.4f below threshold %.2f", st.Mean, th.ICMeanMin))
	}
	if st.Std > th.ICStdMax {
		reasons = append(reasons, fmt.Sprintf("IC std %.4f above threshold %.2f", st.Std, th.ICStdMax))
	}

	if len(reasons) == 0 {
		res.Passed = true
		res.Status = validation.StatusPass
	} else {
		res.Status = validation.StatusFail
		res.Reason = strings.Join(reasons, "; ")
	}
	return res, nil
}
