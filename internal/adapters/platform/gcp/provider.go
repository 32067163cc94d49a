package gcp

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
	artifactregistry "google.golang.org/api/artifactregistry/v1"
	cloudfunctions "google.golang.org/api/cloudfunctions/v2"
	compute "google.golang.org/api/compute/v1"
	"google.golang.org/api/option"
	run "google.golang.org/api/run/v2"
	storage "google.golang.org/api/storage/v1"
	vpcaccess "google.golang.org/api/vpcaccess/v1"

	"github.com/driftline/driftline/internal/core/domain"
	"github.com/driftline/driftline/internal/core/ports"
	"github.com/driftline/driftline/internal/errors"
)

const ProviderTypeGCP = "gcp"

const (
	defaultScanTimeout = 30 * time.Second
	defaultRateRPS     = 10
	minRateRPS         = 1
	maxRateRPS         = 100
)

// listerFunc enumerates one resource kind. Implementations return every
// resource of that kind in the project; name filtering happens in Scan.
type listerFunc func(ctx context.Context, req ports.ScanRequest) ([]domain.CloudResource, error)

// Options tune the provider. Zero values fall back to defaults.
type Options struct {
	ScanTimeout     time.Duration
	RateRPS         int
	CredentialsFile string
}

// Provider lists GCP resources through the discovery-based API clients.
// Listers for different kinds run concurrently; a failing kind is recorded
// as a scan error and does not abort the other kinds.
type Provider struct {
	compute   *compute.Service
	storage   *storage.Service
	run       *run.Service
	functions *cloudfunctions.Service
	artifact  *artifactregistry.Service
	vpcaccess *vpcaccess.Service

	listers     map[domain.ResourceKind]listerFunc
	limiter     *rate.Limiter
	scanTimeout time.Duration
	logger      ports.Logger
}

func NewProvider(ctx context.Context, opts Options, logger ports.Logger) (*Provider, error) {
	if logger == nil {
		return nil, errors.New(errors.CodeConfigValidation, "logger cannot be nil for GCP provider")
	}

	var clientOpts []option.ClientOption
	if opts.CredentialsFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(opts.CredentialsFile))
	}

	computeSvc, err := compute.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodePlatformAuthError, "create compute client")
	}
	storageSvc, err := storage.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodePlatformAuthError, "create storage client")
	}
	runSvc, err := run.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodePlatformAuthError, "create cloud run client")
	}
	functionsSvc, err := cloudfunctions.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodePlatformAuthError, "create cloud functions client")
	}
	artifactSvc, err := artifactregistry.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodePlatformAuthError, "create artifact registry client")
	}
	vpcaccessSvc, err := vpcaccess.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodePlatformAuthError, "create vpc access client")
	}

	p := &Provider{
		compute:     computeSvc,
		storage:     storageSvc,
		run:         runSvc,
		functions:   functionsSvc,
		artifact:    artifactSvc,
		vpcaccess:   vpcaccessSvc,
		limiter:     newLimiter(opts.RateRPS, logger),
		scanTimeout: opts.ScanTimeout,
		logger:      logger,
	}
	if p.scanTimeout <= 0 {
		p.scanTimeout = defaultScanTimeout
	}
	p.listers = map[domain.ResourceKind]listerFunc{
		domain.KindNetwork:        p.listNetworks,
		domain.KindGlobalAddress:  p.listGlobalAddresses,
		domain.KindURLMap:         p.listURLMaps,
		domain.KindBackendService: p.listBackendServices,
		domain.KindBackendBucket:  p.listBackendBuckets,
		domain.KindForwardingRule: p.listForwardingRules,
		domain.KindHTTPProxy:      p.listHTTPProxies,
		domain.KindHTTPSProxy:     p.listHTTPSProxies,
		domain.KindCertificate:    p.listCertificates,
		domain.KindEndpointGroup:  p.listEndpointGroups,
		domain.KindBucket:         p.listBuckets,
		domain.KindContainer:      p.listRunServices,
		domain.KindFunction:       p.listFunctions,
		domain.KindRepository:     p.listRepositories,
		domain.KindConnector:      p.listConnectors,
	}
	return p, nil
}

func newLimiter(rps int, logger ports.Logger) *rate.Limiter {
	value := defaultRateRPS
	if rps >= minRateRPS && rps <= maxRateRPS {
		value = rps
	} else if rps != 0 {
		logger.Warnf(context.Background(), "invalid GCP API rate %d RPS, using default %d (valid range %d-%d)",
			rps, defaultRateRPS, minRateRPS, maxRateRPS)
	}
	return rate.NewLimiter(rate.Limit(value), value)
}

func (p *Provider) Type() string { return ProviderTypeGCP }

// Scan enumerates every supported kind concurrently and keeps only the
// resources whose names belong to the project's naming scheme. Kinds that
// fail to list are reported as scan errors; the rest of the scan proceeds.
func (p *Provider) Scan(ctx context.Context, req ports.ScanRequest) (ports.ScanResult, error) {
	if req.ProjectID == "" {
		return ports.ScanResult{}, errors.New(errors.CodeConfigValidation, "project id is required for GCP scan")
	}

	var (
		mu        sync.Mutex
		resources []domain.CloudResource
		scanErrs  []ports.ScanError
	)

	g, gctx := errgroup.WithContext(ctx)
	for kind, list := range p.listers {
		kind, list := kind, list
		g.Go(func() error {
			kindCtx, cancel := context.WithTimeout(gctx, p.scanTimeout)
			defer cancel()

			found, err := list(kindCtx, req)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				p.logger.Warnf(gctx, "listing %s failed: %v", kind, err)
				scanErrs = append(scanErrs, ports.ScanError{
					Kind:    kind,
					Message: err.Error(),
				})
				return nil
			}
			for _, res := range found {
				if req.Naming.MatchesProject(res.Name) {
					resources = append(resources, res)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return ports.ScanResult{}, err
	}

	sort.Slice(resources, func(i, j int) bool {
		if resources[i].Kind != resources[j].Kind {
			return resources[i].Kind < resources[j].Kind
		}
		return resources[i].Name < resources[j].Name
	})
	sort.Slice(scanErrs, func(i, j int) bool { return scanErrs[i].Kind < scanErrs[j].Kind })

	p.logger.Debugf(ctx, "GCP scan found %d matching resources across %d kinds (%d kind errors)",
		len(resources), len(p.listers), len(scanErrs))
	return ports.ScanResult{Resources: resources, Errors: scanErrs}, nil
}

func (p *Provider) wait(ctx context.Context) error {
	if err := p.limiter.Wait(ctx); err != nil {
		return errors.Wrap(err, errors.CodePlatformAPIError, "rate limiter wait")
	}
	return nil
}

func regionalParent(projectID, region string) string {
	return fmt.Sprintf("projects/%s/locations/%s", projectID, region)
}

// parseTimestamp tolerates the empty strings some APIs return for
// resources still being provisioned.
func parseTimestamp(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

// lastSegment trims full resource paths like
// projects/p/locations/r/services/name down to the bare name.
func lastSegment(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[i+1:]
		}
	}
	return path
}
