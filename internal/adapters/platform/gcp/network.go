package gcp

import (
	"context"

	vpcaccess "google.golang.org/api/vpcaccess/v1"

	"github.com/driftline/driftline/internal/core/domain"
	"github.com/driftline/driftline/internal/core/ports"
	"github.com/driftline/driftline/internal/errors"
)

func (p *Provider) listConnectors(ctx context.Context, req ports.ScanRequest) ([]domain.CloudResource, error) {
	if req.Region == "" {
		return nil, errors.New(errors.CodeConfigValidation, "region is required to list vpc connectors")
	}
	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	var out []domain.CloudResource
	parent := regionalParent(req.ProjectID, req.Region)
	err := p.vpcaccess.Projects.Locations.Connectors.List(parent).
		Pages(ctx, func(page *vpcaccess.ListConnectorsResponse) error {
			for _, c := range page.Connectors {
				out = append(out, domain.CloudResource{
					Kind:        domain.KindConnector,
					Name:        lastSegment(c.Name),
					Location:    req.Region,
					ExternalRef: c.Name,
				})
			}
			return nil
		})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodePlatformAPIError, "list vpc connectors")
	}
	return out, nil
}
