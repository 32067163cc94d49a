package gcp

import (
	"context"

	cloudfunctions "google.golang.org/api/cloudfunctions/v2"
	run "google.golang.org/api/run/v2"

	"github.com/driftline/driftline/internal/core/domain"
	"github.com/driftline/driftline/internal/core/ports"
	"github.com/driftline/driftline/internal/errors"
)

func (p *Provider) listRunServices(ctx context.Context, req ports.ScanRequest) ([]domain.CloudResource, error) {
	if req.Region == "" {
		return nil, errors.New(errors.CodeConfigValidation, "region is required to list cloud run services")
	}
	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	var out []domain.CloudResource
	parent := regionalParent(req.ProjectID, req.Region)
	err := p.run.Projects.Locations.Services.List(parent).
		Pages(ctx, func(page *run.GoogleCloudRunV2ListServicesResponse) error {
			for _, s := range page.Services {
				out = append(out, domain.CloudResource{
					Kind:        domain.KindContainer,
					Name:        lastSegment(s.Name),
					Location:    req.Region,
					ExternalRef: s.Name,
					CreatedAt:   parseTimestamp(s.CreateTime),
				})
			}
			return nil
		})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodePlatformAPIError, "list cloud run services")
	}
	return out, nil
}

func (p *Provider) listFunctions(ctx context.Context, req ports.ScanRequest) ([]domain.CloudResource, error) {
	if req.Region == "" {
		return nil, errors.New(errors.CodeConfigValidation, "region is required to list cloud functions")
	}
	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	var out []domain.CloudResource
	parent := regionalParent(req.ProjectID, req.Region)
	err := p.functions.Projects.Locations.Functions.List(parent).
		Pages(ctx, func(page *cloudfunctions.ListFunctionsResponse) error {
			for _, f := range page.Functions {
				out = append(out, domain.CloudResource{
					Kind:        domain.KindFunction,
					Name:        lastSegment(f.Name),
					Location:    req.Region,
					ExternalRef: f.Name,
					CreatedAt:   parseTimestamp(f.UpdateTime),
				})
			}
			return nil
		})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodePlatformAPIError, "list cloud functions")
	}
	return out, nil
}
