package gates

import (
	"fmt"

	"sigval/domain/validation"
)

// WalkForwardConfig parameterizes the rolling train/test simulation.
type WalkForwardConfig struct {
	// Periods is the number of test folds.
	Periods int
	// MinObservationsPerPeriod is the smallest fold worth simulating.
	MinObservationsPerPeriod int
	// TrainBlocks is the training window length in test-block units.
	TrainBlocks int
}

// DefaultWalkForwardConfig returns the standard fold parameterization:
// 5 rolling folds with a 4:1 train/test window.
func DefaultWalkForwardConfig() WalkForwardConfig {
	return WalkForwardConfig{Periods: 5, MinObservationsPerPeriod: 50, TrainBlocks: 4}
}

// MinObservations is the shortest series the configuration can evaluate.
func (c WalkForwardConfig) MinObservations() int {
	return c.Periods * c.MinObservationsPerPeriod
}

// WalkForwardPeriod is one train/test fold.
type WalkForwardPeriod struct {
	TrainStart int     `json:"train_start"`
	TrainEnd   int     `json:"train_end"` // exclusive
	TestStart  int     `json:"test_start"`
	TestEnd    int     `json:"test_end"` // exclusive
	ISSharpe   float64 `json:"is_sharpe"`
	OOSSharpe  float64 `json:"oos_sharpe"`
}

// WalkForwardStats summarizes a rolling train/test simulation.
type WalkForwardStats struct {
	// Efficiency is mean out-of-sample performance over mean in-sample
	// performance; 0 when the in-sample mean is not positive.
	Efficiency float64 `json:"efficiency"`
	// Consistency is the share of folds with positive out-of-sample Sharpe.
	Consistency float64 `json:"consistency"`
	// Degradation is mean in-sample minus mean out-of-sample Sharpe.
	Degradation float64             `json:"degradation"`
	MeanIS      float64             `json:"mean_is"`
	MeanOOS     float64             `json:"mean_oos"`
	Periods     []WalkForwardPeriod `json:"periods"`
}

// RunWalkForward simulates repeated train/test splits over per-period
// returns. The series is cut into cfg.Periods+cfg.TrainBlocks equal blocks;
// fold i trains on blocks [i, i+TrainBlocks) and tests on the next block.
// Performance in both windows is the annualized Sharpe ratio, so efficiency
// compares like with like.
func RunWalkForward(returns []float64, cfg WalkForwardConfig) WalkForwardStats {
	totalBlocks := cfg.Periods + cfg.TrainBlocks
	block := len(returns) / totalBlocks

	var st WalkForwardStats
	if block < 1 {
		return st
	}

	var sumIS, sumOOS float64
	positive := 0
	for i := 0; i < cfg.Periods; i++ {
		trainStart := i * block
		trainEnd := trainStart + cfg.TrainBlocks*block
		testStart := trainEnd
		testEnd := testStart + block
		if i == cfg.Periods-1 {
			testEnd = len(returns)
		}

		p := WalkForwardPeriod{
			TrainStart: trainStart,
			TrainEnd:   trainEnd,
			TestStart:  testStart,
			TestEnd:    testEnd,
			ISSharpe:   annualizedSharpe(returns[trainStart:trainEnd]),
			OOSSharpe:  annualizedSharpe(returns[testStart:testEnd]),
		}
		st.Periods = append(st.Periods, p)
		sumIS += p.ISSharpe
		sumOOS += p.OOSSharpe
		if p.OOSSharpe > 0 {
			positive++
		}
	}

	n := float64(len(st.Periods))
	st.MeanIS = sumIS / n
	st.MeanOOS = sumOOS / n
	st.Consistency = float64(positive) / n
	st.Degradation = st.MeanIS - st.MeanOOS
	if st.MeanIS > 0 {
		st.Efficiency = st.MeanOOS / st.MeanIS
	}
	return st
}

// RunWalkForwardGate runs the walk-forward efficiency gate on signal-weighted
// returns. Short histories are skipped leniently, like the PBO gate.
func RunWalkForwardGate(signals, returns []float64, th validation.Thresholds) validation.WalkForwardResult {
	weighted := SignalWeightedReturns(signals, returns)
	cfg := DefaultWalkForwardConfig()

	res := validation.WalkForwardResult{
		Outcome: validation.Outcome{N: len(weighted)},
		Periods: cfg.Periods,
	}
	if len(weighted) < cfg.MinObservations() {
		res.Passed = true
		res.Status = validation.StatusInconclusive
		res.Reason = fmt.Sprintf("Skipped: %d observations below the %d required for %d walk-forward periods",
			len(weighted), cfg.MinObservations(), cfg.Periods)
		return res
	}

	st := RunWalkForward(weighted, cfg)
	res.Efficiency = st.Efficiency
	res.Consistency = st.Consistency
	res.Degradation = st.Degradation
	res.MeanIS = st.MeanIS
	res.MeanOOS = st.MeanOOS

	if st.Efficiency >= th.WFEfficiencyMin {
		res.Passed = true
		res.Status = validation.StatusPass
	} else {
		res.Status = validation.StatusFail
		res.Reason = fmt.Sprintf("walk-forward efficiency %.3f below threshold %.2f (IS %.2f vs OOS %.2f)",
			st.Efficiency, th.WFEfficiencyMin, st.MeanIS, st.MeanOOS)
	}
	return res
}
