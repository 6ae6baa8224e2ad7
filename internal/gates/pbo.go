package gates

import (
	"fmt"

	"sigval/domain/validation"
)

// PBOConfig parameterizes the combinatorial-split overfitting estimate.
type PBOConfig struct {
	// Splits is the number of contiguous blocks the return series is cut
	// into. Must be even; combinations take half the blocks in-sample.
	Splits int
	// MinObservationsPerSplit is the smallest block size worth testing.
	MinObservationsPerSplit int
}

// DefaultPBOConfig returns the standard split parameterization: 8 blocks,
// C(8,4) = 70 symmetric combinations.
func DefaultPBOConfig() PBOConfig {
	return PBOConfig{Splits: 8, MinObservationsPerSplit: 20}
}

// MinObservations is the shortest series the configuration can evaluate.
func (c PBOConfig) MinObservations() int {
	return c.Splits * c.MinObservationsPerSplit
}

// PBOStats is the result of a combinatorial-split PBO computation.
type PBOStats struct {
	// PBO estimates the probability that a candidate selected in-sample
	// underperforms out-of-sample.
	PBO           float64 `json:"pbo"`
	Combinations  int     `json:"combinations"`
	OverfitCount  int     `json:"overfit_count"`
	MeanISSharpe  float64 `json:"mean_is_sharpe"`
	MeanOOSSharpe float64 `json:"mean_oos_sharpe"`
}

// ComputePBO estimates the probability of backtest overfitting for a single
// candidate's per-period returns. The series is cut into cfg.Splits
// contiguous blocks; for every symmetric combination of half the blocks the
// in-sample and out-of-sample annualized Sharpe ratios are compared. A
// combination counts as overfit when the candidate "won" selection in-sample
// (positive IS Sharpe) but lost money out-of-sample (OOS Sharpe <= 0). With
// no positive in-sample combination at all the estimate degrades to the
// uninformative 0.5.
func ComputePBO(returns []float64, cfg PBOConfig) PBOStats {
	blocks := splitBlocks(returns, cfg.Splits)
	combos := combinations(cfg.Splits, cfg.Splits/2)

	var (
		st         PBOStats
		selections int
		sumIS      float64
		sumOOS     float64
	)
	st.Combinations = len(combos)

	inSet := make([]bool, cfg.Splits)
	for _, combo := range combos {
		for i := range inSet {
			inSet[i] = false
		}
		for _, b := range combo {
			inSet[b] = true
		}

		var is, oos []float64
		for b, rows := range blocks {
			if inSet[b] {
				is = append(is, rows...)
			} else {
				oos = append(oos, rows...)
			}
		}

		isSharpe := annualizedSharpe(is)
		oosSharpe := annualizedSharpe(oos)
		sumIS += isSharpe
		sumOOS += oosSharpe

		if isSharpe > 0 {
			selections++
			if oosSharpe <= 0 {
				st.OverfitCount++
			}
		}
	}

	if st.Combinations > 0 {
		st.MeanISSharpe = sumIS / float64(st.Combinations)
		st.MeanOOSSharpe = sumOOS / float64(st.Combinations)
	}
	if selections > 0 {
		st.PBO = float64(st.OverfitCount) / float64(selections)
	} else {
		st.PBO = 0.5
	}
	return st
}

// RunPBOGate runs the overfitting gate on signal-weighted returns. Short
// histories are skipped leniently: the gate reports Passed = true with an
// inconclusive status rather than blocking an early-stage candidate.
func RunPBOGate(signals, returns []float64, th validation.Thresholds) validation.PBOResult {
	weighted := SignalWeightedReturns(signals, returns)
	cfg := DefaultPBOConfig()

	res := validation.PBOResult{
		Outcome: validation.Outcome{N: len(weighted)},
		Splits:  cfg.Splits,
	}
	if len(weighted) < cfg.MinObservations() {
		res.Passed = true
		res.Status = validation.StatusInconclusive
		res.Reason = fmt.Sprintf("Skipped: %d observations below the %d required for %d combinatorial splits",
			len(weighted), cfg.MinObservations(), cfg.Splits)
		return res
	}

	st := ComputePBO(weighted, cfg)
	res.PBO = st.PBO
	res.Combinations = st.Combinations
	res.MeanISSharpe = st.MeanISSharpe
	res.MeanOOSSharpe = st.MeanOOSSharpe

	if st.PBO < th.PBOMax {
		res.Passed = true
		res.Status = validation.StatusPass
	} else {
		res.Status = validation.StatusFail
		res.Reason = fmt.Sprintf("PBO %.3f at or above threshold %.2f across %d splits", st.PBO, th.PBOMax, cfg.Splits)
	}
	return res
}

// splitBlocks cuts a series into n contiguous blocks; the last block absorbs
// the remainder.
func splitBlocks(series []float64, n int) [][]float64 {
	blocks := make([][]float64, n)
	size := len(series) / n
	for i := 0; i < n; i++ {
		start := i * size
		end := start + size
		if i == n-1 {
			end = len(series)
		}
		blocks[i] = series[start:end]
	}
	return blocks
}

// combinations enumerates all k-subsets of {0..n-1} in lexicographic order.
func combinations(n, k int) [][]int {
	if k < 0 || k > n {
		return nil
	}
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	var out [][]int
	for {
		combo := make([]int, k)
		copy(combo, idx)
		out = append(out, combo)

		// Advance to the next combination.
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return out
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}
