// Package app wires the five acceptance gates into the validation pipeline
// and derives the reporting layer's summaries and verdicts.
package app

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"sigval/domain/core"
	"sigval/domain/validation"
	"sigval/internal"
	"sigval/internal/errors"
	"sigval/internal/gates"
	"sigval/ports"
)

var _ ports.IndicatorValidator = (*Pipeline)(nil)

// Pipeline runs all five statistical acceptance gates over a candidate
// indicator and aggregates the outcome. It is safe for concurrent use; the
// threshold configuration is resolved per call and never mutated.
type Pipeline struct {
	thresholds validation.Thresholds
	log        *internal.Logger
}

// NewPipeline creates a pipeline with the given base thresholds.
func NewPipeline(th validation.Thresholds) (*Pipeline, error) {
	if err := th.Validate(); err != nil {
		return nil, errors.Wrap(errors.InvalidInput(err.Error()), "invalid pipeline thresholds")
	}
	return &Pipeline{thresholds: th, log: internal.NewDefaultLogger()}, nil
}

// NewDefaultPipeline creates a pipeline with the standard thresholds.
func NewDefaultPipeline() *Pipeline {
	p, _ := NewPipeline(validation.DefaultThresholds())
	return p
}

// Run executes the full validation pipeline for one candidate. The five
// gates are independent and evaluated concurrently; their results are joined
// before aggregation. Input validation failures and insufficient-data errors
// from the DSR and IC gates are fatal for the call; a rejected candidate
// (OverallPassed = false) is the expected, non-error outcome.
func (p *Pipeline) Run(ctx context.Context, input *validation.Input) (*validation.Result, error) {
	if input == nil {
		return nil, errors.InvalidInput("input must not be nil")
	}
	if err := input.Validate(); err != nil {
		return nil, errors.Wrap(errors.InvalidInput(err.Error()), "validation input rejected")
	}

	th := p.thresholds.Merge(input.Overrides)
	if err := th.Validate(); err != nil {
		return nil, errors.Wrap(errors.InvalidInput(err.Error()), "threshold overrides rejected")
	}

	forward := input.ForwardReturns
	if forward == nil {
		forward = gates.ShiftForward(input.Returns)
	}

	result := &validation.Result{
		RunID:       core.NewRunID(),
		IndicatorID: input.IndicatorID,
		Timestamp:   core.Now(),
		Trials: validation.TrialInfo{
			Attempted:              input.NTrials,
			Selected:               1,
			MultipleTestingPenalty: gates.ExpectedMaxSharpe(input.NTrials),
		},
	}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		dsr, err := gates.RunDSRGate(input.Signals, input.Returns, input.NTrials, th)
		if err != nil {
			return errors.Wrapf(err, "DSR gate failed for %s", input.IndicatorID)
		}
		result.DSR = dsr
		return nil
	})
	g.Go(func() error {
		result.PBO = gates.RunPBOGate(input.Signals, input.Returns, th)
		return nil
	})
	g.Go(func() error {
		ic, err := gates.RunICGate(input.Signals, forward, th)
		if err != nil {
			return errors.Wrapf(err, "IC gate failed for %s", input.IndicatorID)
		}
		result.IC = ic
		return nil
	})
	g.Go(func() error {
		result.WalkForward = gates.RunWalkForwardGate(input.Signals, input.Returns, th)
		return nil
	})
	g.Go(func() error {
		result.Orthogonality = gates.RunOrthogonalityGate(input.Signals, input.ExistingIndicators, th)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result.Aggregate()
	result.Profile = ReturnProfile(gates.SignalWeightedReturns(input.Signals, input.Returns))
	result.Summary = GenerateSummary(result)
	result.Recommendations = GenerateRecommendations(result)

	p.log.Debug("validated %s: %d/%d gates passed (overall=%v)",
		input.IndicatorID, result.GatesPassed, result.TotalGates, result.OverallPassed)
	return result, nil
}

// IsIndicatorValid is the boolean convenience wrapper around Run.
func (p *Pipeline) IsIndicatorValid(ctx context.Context, input *validation.Input) (bool, error) {
	result, err := p.Run(ctx, input)
	if err != nil {
		return false, err
	}
	return result.OverallPassed, nil
}

// ValidateAndRank runs the pipeline over a batch of candidates sharing one
// returns series and one existing-indicator map, concurrently per candidate,
// and returns all results sorted best-first: pass rate descending, ties
// broken by DSR probability of skill descending.
func (p *Pipeline) ValidateAndRank(ctx context.Context, candidates []validation.Candidate, returns []float64, existing map[string][]float64) ([]*validation.Result, error) {
	results := make([]*validation.Result, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	for i, cand := range candidates {
		i, cand := i, cand
		g.Go(func() error {
			input := &validation.Input{
				IndicatorID:        cand.IndicatorID,
				Signals:            cand.Signals,
				Returns:            returns,
				NTrials:            cand.NTrials,
				ExistingIndicators: existing,
				Overrides:          cand.Overrides,
			}
			res, err := p.Run(gctx, input)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].PassRate != results[j].PassRate {
			return results[i].PassRate > results[j].PassRate
		}
		return results[i].DSR.Probability > results[j].DSR.Probability
	})
	return results, nil
}
