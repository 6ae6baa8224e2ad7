package ports

import (
	"context"

	"sigval/domain/validation"
)

// IndicatorValidator is the single logical call boundary of the validation
// core: one candidate in, an aggregated gate result out. Implementations
// perform no side effects; persistence and any action on the verdict belong
// to the caller.
type IndicatorValidator interface {
	// Run executes all acceptance gates for one candidate.
	Run(ctx context.Context, input *validation.Input) (*validation.Result, error)

	// IsIndicatorValid is the boolean convenience wrapper around Run.
	IsIndicatorValid(ctx context.Context, input *validation.Input) (bool, error)

	// ValidateAndRank validates a batch of candidates sharing one returns
	// series and existing-indicator map, returning results sorted best-first.
	ValidateAndRank(ctx context.Context, candidates []validation.Candidate, returns []float64, existing map[string][]float64) ([]*validation.Result, error)
}
