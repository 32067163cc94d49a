package gcp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/driftline/driftline/internal/core/domain"
	"github.com/driftline/driftline/internal/core/ports"
	"github.com/driftline/driftline/internal/errors"
	"github.com/driftline/driftline/internal/log"
)

func testProvider(listers map[domain.ResourceKind]listerFunc) *Provider {
	return &Provider{
		listers:     listers,
		limiter:     rate.NewLimiter(rate.Inf, 1),
		scanTimeout: time.Second,
		logger:      log.NewNop(),
	}
}

func fixed(resources ...domain.CloudResource) listerFunc {
	return func(context.Context, ports.ScanRequest) ([]domain.CloudResource, error) {
		return resources, nil
	}
}

func failing(err error) listerFunc {
	return func(context.Context, ports.ScanRequest) ([]domain.CloudResource, error) {
		return nil, err
	}
}

func scanReq() ports.ScanRequest {
	return ports.ScanRequest{
		ProjectID: "acme-prod",
		Region:    "us-central1",
		Naming:    domain.NamingContext{Project: "acme"},
	}
}

func TestScanFiltersByProjectNaming(t *testing.T) {
	p := testProvider(map[domain.ResourceKind]listerFunc{
		domain.KindBucket: fixed(
			domain.CloudResource{Kind: domain.KindBucket, Name: "acme-uploads"},
			domain.CloudResource{Kind: domain.KindBucket, Name: "unrelated-bucket"},
		),
	})

	result, err := p.Scan(context.Background(), scanReq())
	require.NoError(t, err)
	require.Len(t, result.Resources, 1)
	assert.Equal(t, "acme-uploads", result.Resources[0].Name)
}

func TestScanDegradesPerKind(t *testing.T) {
	p := testProvider(map[domain.ResourceKind]listerFunc{
		domain.KindBucket: fixed(
			domain.CloudResource{Kind: domain.KindBucket, Name: "acme-uploads"},
		),
		domain.KindFunction: failing(errors.New(errors.CodePlatformAPIError, "permission denied")),
	})

	result, err := p.Scan(context.Background(), scanReq())
	require.NoError(t, err, "one failing kind must not fail the scan")
	require.Len(t, result.Resources, 1)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, domain.KindFunction, result.Errors[0].Kind)
	assert.Contains(t, result.Errors[0].Message, "permission denied")
}

func TestScanOutputIsSorted(t *testing.T) {
	p := testProvider(map[domain.ResourceKind]listerFunc{
		domain.KindNetwork: fixed(
			domain.CloudResource{Kind: domain.KindNetwork, Name: "acme-net-b"},
			domain.CloudResource{Kind: domain.KindNetwork, Name: "acme-net-a"},
		),
		domain.KindBucket: fixed(
			domain.CloudResource{Kind: domain.KindBucket, Name: "acme-uploads"},
		),
	})

	result, err := p.Scan(context.Background(), scanReq())
	require.NoError(t, err)
	require.Len(t, result.Resources, 3)

	names := []string{result.Resources[0].Name, result.Resources[1].Name, result.Resources[2].Name}
	assert.Equal(t, []string{"acme-uploads", "acme-net-a", "acme-net-b"}, names)
}

func TestScanRequiresProjectID(t *testing.T) {
	p := testProvider(nil)

	req := scanReq()
	req.ProjectID = ""
	_, err := p.Scan(context.Background(), req)
	assert.True(t, errors.Is(err, errors.CodeConfigValidation))
}

func TestLastSegment(t *testing.T) {
	assert.Equal(t, "acme-api", lastSegment("projects/acme-prod/locations/us-central1/services/acme-api"))
	assert.Equal(t, "plain", lastSegment("plain"))
}

func TestParseTimestampToleratesEmptyAndGarbage(t *testing.T) {
	assert.True(t, parseTimestamp("").IsZero())
	assert.True(t, parseTimestamp("not-a-time").IsZero())
	assert.Equal(t, 2024, parseTimestamp("2024-05-01T10:00:00Z").Year())
}
