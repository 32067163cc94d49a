package ports

import (
	"context"

	"github.com/driftline/driftline/internal/core/domain"
)

// ScanRequest identifies the cloud project and naming pattern for one scan.
type ScanRequest struct {
	ProjectID string
	Region    string
	Naming    domain.NamingContext
}

// ScanError is one kind's query failure. It degrades that kind to zero
// resources and never fails the scan as a whole.
type ScanError struct {
	Kind    domain.ResourceKind
	Message string
}

// ScanResult is the uniform output of a platform scan: every resource whose
// name matches the project pattern, plus per-kind errors.
type ScanResult struct {
	Resources []domain.CloudResource
	Errors    []ScanError
}

// PlatformScanner queries a cloud account for resources of each tracked kind.
// Implementations run one independent query per kind, concurrently; a single
// kind's failure must not cancel the others.
type PlatformScanner interface {
	Type() string
	Scan(ctx context.Context, req ScanRequest) (ScanResult, error)
}
