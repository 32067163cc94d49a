package aws

import (
	"context"
	"sort"
	"sync"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/driftline/driftline/internal/core/domain"
	"github.com/driftline/driftline/internal/core/ports"
	"github.com/driftline/driftline/internal/errors"
)

const ProviderTypeAWS = "aws"

const (
	defaultScanTimeout = 30 * time.Second
	defaultRateRPS     = 20
	minRateRPS         = 1
	maxRateRPS         = 100
)

type listerFunc func(ctx context.Context, req ports.ScanRequest) ([]domain.CloudResource, error)

// Options tune the provider. Zero values fall back to defaults.
type Options struct {
	Region      string
	Profile     string
	ScanTimeout time.Duration
	RateRPS     int
}

// Provider lists AWS resources kind by kind. Listers run concurrently and
// a failing kind degrades to a scan error rather than aborting the scan.
type Provider struct {
	s3     *s3.Client
	ec2    *ec2.Client
	lambda *lambda.Client
	ecs    *ecs.Client
	ecr    *ecr.Client
	sts    *sts.Client

	listers     map[domain.ResourceKind]listerFunc
	limiter     *rate.Limiter
	scanTimeout time.Duration
	logger      ports.Logger
}

func NewProvider(ctx context.Context, opts Options, logger ports.Logger) (*Provider, error) {
	if logger == nil {
		return nil, errors.New(errors.CodeConfigValidation, "logger cannot be nil for AWS provider")
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}
	if opts.Profile != "" {
		loadOpts = append(loadOpts, awsconfig.WithSharedConfigProfile(opts.Profile))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodePlatformAuthError, "load AWS configuration")
	}

	p := &Provider{
		s3:          s3.NewFromConfig(cfg),
		ec2:         ec2.NewFromConfig(cfg),
		lambda:      lambda.NewFromConfig(cfg),
		ecs:         ecs.NewFromConfig(cfg),
		ecr:         ecr.NewFromConfig(cfg),
		sts:         sts.NewFromConfig(cfg),
		limiter:     newLimiter(opts.RateRPS, logger),
		scanTimeout: opts.ScanTimeout,
		logger:      logger,
	}
	if p.scanTimeout <= 0 {
		p.scanTimeout = defaultScanTimeout
	}
	p.listers = map[domain.ResourceKind]listerFunc{
		domain.KindBucket:     p.listBuckets,
		domain.KindNetwork:    p.listVPCs,
		domain.KindFunction:   p.listFunctions,
		domain.KindContainer:  p.listServices,
		domain.KindRepository: p.listRepositories,
	}
	return p, nil
}

func newLimiter(rps int, logger ports.Logger) *rate.Limiter {
	value := defaultRateRPS
	if rps >= minRateRPS && rps <= maxRateRPS {
		value = rps
	} else if rps != 0 {
		logger.Warnf(context.Background(), "invalid AWS API rate %d RPS, using default %d (valid range %d-%d)",
			rps, defaultRateRPS, minRateRPS, maxRateRPS)
	}
	return rate.NewLimiter(rate.Limit(value), value)
}

func (p *Provider) Type() string { return ProviderTypeAWS }

// AccountID resolves the caller's account through STS. Account-prefixed
// resource names depend on it.
func (p *Provider) AccountID(ctx context.Context) (string, error) {
	if err := p.wait(ctx); err != nil {
		return "", err
	}
	out, err := p.sts.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", classifyAWSError(ctx, "sts get-caller-identity", err)
	}
	return awssdk.ToString(out.Account), nil
}

// Scan enumerates every supported kind concurrently and keeps only the
// resources whose names belong to the project's naming scheme.
func (p *Provider) Scan(ctx context.Context, req ports.ScanRequest) (ports.ScanResult, error) {
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

	p.logger.Debugf(ctx, "AWS scan found %d matching resources across %d kinds (%d kind errors)",
		len(resources), len(p.listers), len(scanErrs))
	return ports.ScanResult{Resources: resources, Errors: scanErrs}, nil
}

func (p *Provider) wait(ctx context.Context) error {
	if err := p.limiter.Wait(ctx); err != nil {
		return errors.Wrap(err, errors.CodePlatformAPIError, "rate limiter wait")
	}
	return nil
}
