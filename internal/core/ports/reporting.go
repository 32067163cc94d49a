package ports

import (
	"context"

	"github.com/driftline/driftline/internal/core/domain"
)

// RunReport is everything a reconciliation run wants displayed: the plan
// (conflicts grouped into imports and prunes), scan/state warnings, and,
// once execution has happened, the per-resource outcome.
type RunReport struct {
	Conflicts []domain.Conflict
	Ambiguous []domain.AmbiguousMatch
	Warnings  []string
	Result    *domain.OperationResult
}

type Reporter interface {
	Report(ctx context.Context, report RunReport) error
}

// Prompter resolves operator intent when the run is interactive.
type Prompter interface {
	Choose(ctx context.Context, conflicts []domain.Conflict) (domain.ResolutionChoice, error)
}
