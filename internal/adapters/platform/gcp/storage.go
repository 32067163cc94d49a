package gcp

import (
	"context"

	storage "google.golang.org/api/storage/v1"

	"github.com/driftline/driftline/internal/core/domain"
	"github.com/driftline/driftline/internal/core/ports"
	"github.com/driftline/driftline/internal/errors"
)

func (p *Provider) listBuckets(ctx context.Context, req ports.ScanRequest) ([]domain.CloudResource, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	var out []domain.CloudResource
	err := p.storage.Buckets.List(req.ProjectID).Pages(ctx, func(page *storage.Buckets) error {
		for _, b := range page.Items {
			out = append(out, domain.CloudResource{
				Kind:        domain.KindBucket,
				Name:        b.Name,
				Location:    b.Location,
				ExternalRef: b.Name,
				CreatedAt:   parseTimestamp(b.TimeCreated),
			})
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodePlatformAPIError, "list buckets")
	}
	return out, nil
}
