package aws

import (
	"context"
	"strings"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/driftline/driftline/internal/core/domain"
	"github.com/driftline/driftline/internal/core/ports"
)

func (p *Provider) listBuckets(ctx context.Context, req ports.ScanRequest) ([]domain.CloudResource, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	out, err := p.s3.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, classifyAWSError(ctx, "s3 list-buckets", err)
	}
	resources := make([]domain.CloudResource, 0, len(out.Buckets))
	for _, b := range out.Buckets {
		name := awssdk.ToString(b.Name)
		resources = append(resources, domain.CloudResource{
			Kind:        domain.KindBucket,
			Name:        name,
			Location:    req.Region,
			ExternalRef: name,
			CreatedAt:   awssdk.ToTime(b.CreationDate),
		})
	}
	return resources, nil
}

func (p *Provider) listVPCs(ctx context.Context, req ports.ScanRequest) ([]domain.CloudResource, error) {
	var resources []domain.CloudResource
	paginator := ec2.NewDescribeVpcsPaginator(p.ec2, &ec2.DescribeVpcsInput{})
	for paginator.HasMorePages() {
		if err := p.wait(ctx); err != nil {
			return nil, err
		}
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, classifyAWSError(ctx, "ec2 describe-vpcs", err)
		}
		for _, vpc := range page.Vpcs {
			name := ""
			for _, tag := range vpc.Tags {
				if awssdk.ToString(tag.Key) == "Name" {
					name = awssdk.ToString(tag.Value)
					break
				}
			}
			// Unnamed VPCs (like the account default) cannot belong to a
			// name-prefixed project.
			if name == "" {
				continue
			}
			resources = append(resources, domain.CloudResource{
				Kind:        domain.KindNetwork,
				Name:        name,
				Location:    req.Region,
				ExternalRef: awssdk.ToString(vpc.VpcId),
			})
		}
	}
	return resources, nil
}

func (p *Provider) listFunctions(ctx context.Context, req ports.ScanRequest) ([]domain.CloudResource, error) {
	var resources []domain.CloudResource
	paginator := lambda.NewListFunctionsPaginator(p.lambda, &lambda.ListFunctionsInput{})
	for paginator.HasMorePages() {
		if err := p.wait(ctx); err != nil {
			return nil, err
		}
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, classifyAWSError(ctx, "lambda list-functions", err)
		}
		for _, fn := range page.Functions {
			resources = append(resources, domain.CloudResource{
				Kind:        domain.KindFunction,
				Name:        awssdk.ToString(fn.FunctionName),
				Location:    req.Region,
				ExternalRef: awssdk.ToString(fn.FunctionArn),
				CreatedAt:   parseLambdaTimestamp(awssdk.ToString(fn.LastModified)),
			})
		}
	}
	return resources, nil
}

// parseLambdaTimestamp handles lambda's ISO8601 variant with a numeric
// timezone offset and no colon, e.g. 2024-05-01T10:00:00.000+0000.
func parseLambdaTimestamp(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{"2006-01-02T15:04:05.000-0700", time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}

func (p *Provider) listServices(ctx context.Context, req ports.ScanRequest) ([]domain.CloudResource, error) {
	var clusterArns []string
	clusters := ecs.NewListClustersPaginator(p.ecs, &ecs.ListClustersInput{})
	for clusters.HasMorePages() {
		if err := p.wait(ctx); err != nil {
			return nil, err
		}
		page, err := clusters.NextPage(ctx)
		if err != nil {
			return nil, classifyAWSError(ctx, "ecs list-clusters", err)
		}
		clusterArns = append(clusterArns, page.ClusterArns...)
	}

	var resources []domain.CloudResource
	for _, clusterArn := range clusterArns {
		clusterName := arnSuffix(clusterArn)
		services := ecs.NewListServicesPaginator(p.ecs, &ecs.ListServicesInput{
			Cluster: awssdk.String(clusterArn),
		})
		for services.HasMorePages() {
			if err := p.wait(ctx); err != nil {
				return nil, err
			}
			page, err := services.NextPage(ctx)
			if err != nil {
				return nil, classifyAWSError(ctx, "ecs list-services", err)
			}
			for _, serviceArn := range page.ServiceArns {
				name := arnSuffix(serviceArn)
				resources = append(resources, domain.CloudResource{
					Kind:     domain.KindContainer,
					Name:     name,
					Location: req.Region,
					// cluster/service is the import identifier shape.
					ExternalRef: clusterName + "/" + name,
				})
			}
		}
	}
	return resources, nil
}

func arnSuffix(arn string) string {
	if idx := strings.LastIndex(arn, "/"); idx >= 0 {
		return arn[idx+1:]
	}
	return arn
}

func (p *Provider) listRepositories(ctx context.Context, req ports.ScanRequest) ([]domain.CloudResource, error) {
	var resources []domain.CloudResource
	paginator := ecr.NewDescribeRepositoriesPaginator(p.ecr, &ecr.DescribeRepositoriesInput{})
	for paginator.HasMorePages() {
		if err := p.wait(ctx); err != nil {
			return nil, err
		}
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, classifyAWSError(ctx, "ecr describe-repositories", err)
		}
		for _, repo := range page.Repositories {
			resources = append(resources, domain.CloudResource{
				Kind:        domain.KindRepository,
				Name:        awssdk.ToString(repo.RepositoryName),
				Location:    req.Region,
				ExternalRef: awssdk.ToString(repo.RepositoryName),
				CreatedAt:   awssdk.ToTime(repo.CreatedAt),
			})
		}
	}
	return resources, nil
}
