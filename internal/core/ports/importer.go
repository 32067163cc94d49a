package ports

import (
	"context"

	"github.com/driftline/driftline/internal/core/domain"
)

// ImportRunner is the external provisioning tool's mutating surface. Both
// operations write the single shared state artifact; callers must never issue
// two of these concurrently.
type ImportRunner interface {
	// Import adopts an existing cloud resource into state without
	// recreating it. importID is kind-specific (a fully-qualified resource
	// path for most kinds, the bare name for globally-unique ones).
	Import(ctx context.Context, stateAddress, importID string) error
	// StateRemove prunes an entry from state without touching the cloud.
	StateRemove(ctx context.Context, stateAddress string) error
}

// DeleteFunc is the caller-supplied deletion policy for delete_all. It
// abstracts "delete from cloud" vs "remove from state only", which have very
// different blast radius.
type DeleteFunc func(ctx context.Context, conflict domain.Conflict) error
