package ports

import (
	"context"

	"github.com/driftline/driftline/internal/core/domain"
)

// StateResult is what a state read produced. Entries is nil (not empty) when
// no state exists; ParseError is set when a file was found but could not be
// parsed, a distinct reportable condition that is never silently treated as
// empty state.
type StateResult struct {
	Path       string
	Found      bool
	Entries    []domain.StateEntry
	ParseError error
}

// StateReader locates and parses the persisted infrastructure state.
// "No state" is not an error: callers treat it as zero managed resources.
type StateReader interface {
	Type() string
	Read(ctx context.Context, workDir string) (StateResult, error)
}
