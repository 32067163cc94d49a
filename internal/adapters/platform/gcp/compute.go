package gcp

import (
	"context"

	compute "google.golang.org/api/compute/v1"

	"github.com/driftline/driftline/internal/core/domain"
	"github.com/driftline/driftline/internal/core/ports"
	"github.com/driftline/driftline/internal/errors"
)

func (p *Provider) listNetworks(ctx context.Context, req ports.ScanRequest) ([]domain.CloudResource, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	var out []domain.CloudResource
	err := p.compute.Networks.List(req.ProjectID).Pages(ctx, func(page *compute.NetworkList) error {
		for _, n := range page.Items {
			out = append(out, domain.CloudResource{
				Kind:        domain.KindNetwork,
				Name:        n.Name,
				Location:    "global",
				ExternalRef: n.SelfLink,
				CreatedAt:   parseTimestamp(n.CreationTimestamp),
			})
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodePlatformAPIError, "list networks")
	}
	return out, nil
}

func (p *Provider) listGlobalAddresses(ctx context.Context, req ports.ScanRequest) ([]domain.CloudResource, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	var out []domain.CloudResource
	err := p.compute.GlobalAddresses.List(req.ProjectID).Pages(ctx, func(page *compute.AddressList) error {
		for _, a := range page.Items {
			out = append(out, domain.CloudResource{
				Kind:        domain.KindGlobalAddress,
				Name:        a.Name,
				Location:    "global",
				ExternalRef: a.Address,
				CreatedAt:   parseTimestamp(a.CreationTimestamp),
			})
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodePlatformAPIError, "list global addresses")
	}
	return out, nil
}

func (p *Provider) listURLMaps(ctx context.Context, req ports.ScanRequest) ([]domain.CloudResource, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	var out []domain.CloudResource
	err := p.compute.UrlMaps.List(req.ProjectID).Pages(ctx, func(page *compute.UrlMapList) error {
		for _, m := range page.Items {
			out = append(out, domain.CloudResource{
				Kind:        domain.KindURLMap,
				Name:        m.Name,
				Location:    "global",
				ExternalRef: m.SelfLink,
				CreatedAt:   parseTimestamp(m.CreationTimestamp),
			})
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodePlatformAPIError, "list url maps")
	}
	return out, nil
}

func (p *Provider) listBackendServices(ctx context.Context, req ports.ScanRequest) ([]domain.CloudResource, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	var out []domain.CloudResource
	err := p.compute.BackendServices.List(req.ProjectID).Pages(ctx, func(page *compute.BackendServiceList) error {
		for _, b := range page.Items {
			out = append(out, domain.CloudResource{
				Kind:        domain.KindBackendService,
				Name:        b.Name,
				Location:    "global",
				ExternalRef: b.SelfLink,
				CreatedAt:   parseTimestamp(b.CreationTimestamp),
			})
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodePlatformAPIError, "list backend services")
	}
	return out, nil
}

func (p *Provider) listBackendBuckets(ctx context.Context, req ports.ScanRequest) ([]domain.CloudResource, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	var out []domain.CloudResource
	err := p.compute.BackendBuckets.List(req.ProjectID).Pages(ctx, func(page *compute.BackendBucketList) error {
		for _, b := range page.Items {
			out = append(out, domain.CloudResource{
				Kind:        domain.KindBackendBucket,
				Name:        b.Name,
				Location:    "global",
				ExternalRef: b.SelfLink,
				CreatedAt:   parseTimestamp(b.CreationTimestamp),
			})
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodePlatformAPIError, "list backend buckets")
	}
	return out, nil
}

func (p *Provider) listForwardingRules(ctx context.Context, req ports.ScanRequest) ([]domain.CloudResource, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	var out []domain.CloudResource
	err := p.compute.GlobalForwardingRules.List(req.ProjectID).Pages(ctx, func(page *compute.ForwardingRuleList) error {
		for _, r := range page.Items {
			out = append(out, domain.CloudResource{
				Kind:        domain.KindForwardingRule,
				Name:        r.Name,
				Location:    "global",
				ExternalRef: r.IPAddress,
				CreatedAt:   parseTimestamp(r.CreationTimestamp),
			})
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodePlatformAPIError, "list forwarding rules")
	}
	return out, nil
}

func (p *Provider) listHTTPProxies(ctx context.Context, req ports.ScanRequest) ([]domain.CloudResource, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	var out []domain.CloudResource
	err := p.compute.TargetHttpProxies.List(req.ProjectID).Pages(ctx, func(page *compute.TargetHttpProxyList) error {
		for _, t := range page.Items {
			out = append(out, domain.CloudResource{
				Kind:        domain.KindHTTPProxy,
				Name:        t.Name,
				Location:    "global",
				ExternalRef: t.SelfLink,
				CreatedAt:   parseTimestamp(t.CreationTimestamp),
			})
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodePlatformAPIError, "list http proxies")
	}
	return out, nil
}

func (p *Provider) listHTTPSProxies(ctx context.Context, req ports.ScanRequest) ([]domain.CloudResource, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	var out []domain.CloudResource
	err := p.compute.TargetHttpsProxies.List(req.ProjectID).Pages(ctx, func(page *compute.TargetHttpsProxyList) error {
		for _, t := range page.Items {
			out = append(out, domain.CloudResource{
				Kind:        domain.KindHTTPSProxy,
				Name:        t.Name,
				Location:    "global",
				ExternalRef: t.SelfLink,
				CreatedAt:   parseTimestamp(t.CreationTimestamp),
			})
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodePlatformAPIError, "list https proxies")
	}
	return out, nil
}

func (p *Provider) listCertificates(ctx context.Context, req ports.ScanRequest) ([]domain.CloudResource, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	var out []domain.CloudResource
	err := p.compute.SslCertificates.List(req.ProjectID).Pages(ctx, func(page *compute.SslCertificateList) error {
		for _, c := range page.Items {
			out = append(out, domain.CloudResource{
				Kind:        domain.KindCertificate,
				Name:        c.Name,
				Location:    "global",
				ExternalRef: c.SelfLink,
				CreatedAt:   parseTimestamp(c.CreationTimestamp),
			})
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodePlatformAPIError, "list ssl certificates")
	}
	return out, nil
}

func (p *Provider) listEndpointGroups(ctx context.Context, req ports.ScanRequest) ([]domain.CloudResource, error) {
	if req.Region == "" {
		return nil, errors.New(errors.CodeConfigValidation, "region is required to list network endpoint groups")
	}
	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	var out []domain.CloudResource
	err := p.compute.RegionNetworkEndpointGroups.List(req.ProjectID, req.Region).
		Pages(ctx, func(page *compute.NetworkEndpointGroupList) error {
			for _, g := range page.Items {
				out = append(out, domain.CloudResource{
					Kind:        domain.KindEndpointGroup,
					Name:        g.Name,
					Location:    req.Region,
					ExternalRef: g.SelfLink,
					CreatedAt:   parseTimestamp(g.CreationTimestamp),
				})
			}
			return nil
		})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodePlatformAPIError, "list network endpoint groups")
	}
	return out, nil
}
