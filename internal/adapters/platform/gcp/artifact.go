package gcp

import (
	"context"

	artifactregistry "google.golang.org/api/artifactregistry/v1"

	"github.com/driftline/driftline/internal/core/domain"
	"github.com/driftline/driftline/internal/core/ports"
	"github.com/driftline/driftline/internal/errors"
)

func (p *Provider) listRepositories(ctx context.Context, req ports.ScanRequest) ([]domain.CloudResource, error) {
	if req.Region == "" {
		return nil, errors.New(errors.CodeConfigValidation, "region is required to list artifact repositories")
	}
	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	var out []domain.CloudResource
	parent := regionalParent(req.ProjectID, req.Region)
	err := p.artifact.Projects.Locations.Repositories.List(parent).
		Pages(ctx, func(page *artifactregistry.ListRepositoriesResponse) error {
			for _, r := range page.Repositories {
				out = append(out, domain.CloudResource{
					Kind:        domain.KindRepository,
					Name:        lastSegment(r.Name),
					Location:    req.Region,
					ExternalRef: r.Name,
					CreatedAt:   parseTimestamp(r.CreateTime),
				})
			}
			return nil
		})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodePlatformAPIError, "list artifact repositories")
	}
	return out, nil
}
