package service

import (
	"fmt"

	"github.com/driftline/driftline/internal/core/domain"
	"github.com/driftline/driftline/internal/errors"
)

// ProjectContext is what the import-ID formatters need to build
// fully-qualified resource paths.
type ProjectContext struct {
	ProjectID string
	Region    string
}

// ImportMapping is static per-kind configuration: how a resource of that kind
// is addressed in state, how its import ID is formatted, and where it sits in
// the dependency order. Immutable data, not runtime state.
type ImportMapping struct {
	TargetType   string
	ImportID     func(res domain.CloudResource, proj ProjectContext) string
	StateAddress func(res domain.CloudResource) string
	// Priority sequences imports so resources referenced by others land in
	// state first. Lower runs earlier.
	Priority int
}

// Import priorities, dependency order: networks before everything that
// attaches to them, LB building blocks before the frontend that references
// them.
const (
	priorityNetwork        = 10
	priorityStorage        = 20
	priorityConnector      = 30
	priorityCompute        = 40
	priorityEndpointGroup  = 50
	priorityBackend        = 60
	priorityURLMap         = 70
	priorityCertificate    = 80
	priorityProxy          = 90
	priorityAddress        = 100
	priorityForwardingRule = 110
)

// MappingsFor returns the import-mapping table for a platform provider type.
func MappingsFor(providerType string) (map[domain.ResourceKind]ImportMapping, error) {
	switch providerType {
	case "gcp":
		return gcpMappings, nil
	case "aws":
		return awsMappings, nil
	default:
		return nil, errors.New(errors.CodeNotImplemented,
			fmt.Sprintf("no import mappings for provider type %q", providerType))
	}
}

func addressFor(targetType string) func(domain.CloudResource) string {
	return func(res domain.CloudResource) string {
		return targetType + "." + domain.SafeName(res.Name)
	}
}

// bareName covers globally-unique kinds whose import ID is just the name.
func bareName(res domain.CloudResource, _ ProjectContext) string {
	return res.Name
}

func gcpGlobal(collection string) func(domain.CloudResource, ProjectContext) string {
	return func(res domain.CloudResource, proj ProjectContext) string {
		return fmt.Sprintf("projects/%s/global/%s/%s", proj.ProjectID, collection, res.Name)
	}
}

func gcpRegional(collection string) func(domain.CloudResource, ProjectContext) string {
	return func(res domain.CloudResource, proj ProjectContext) string {
		region := res.Location
		if region == "" {
			region = proj.Region
		}
		return fmt.Sprintf("projects/%s/locations/%s/%s/%s", proj.ProjectID, region, collection, res.Name)
	}
}

var gcpMappings = map[domain.ResourceKind]ImportMapping{
	domain.KindNetwork: {
		TargetType:   "google_compute_network",
		ImportID:     gcpGlobal("networks"),
		StateAddress: addressFor("google_compute_network"),
		Priority:     priorityNetwork,
	},
	domain.KindBucket: {
		TargetType:   "google_storage_bucket",
		ImportID:     bareName,
		StateAddress: addressFor("google_storage_bucket"),
		Priority:     priorityStorage,
	},
	domain.KindRepository: {
		TargetType:   "google_artifact_registry_repository",
		ImportID:     gcpRegional("repositories"),
		StateAddress: addressFor("google_artifact_registry_repository"),
		Priority:     priorityStorage,
	},
	domain.KindConnector: {
		TargetType:   "google_vpc_access_connector",
		ImportID:     gcpRegional("connectors"),
		StateAddress: addressFor("google_vpc_access_connector"),
		Priority:     priorityConnector,
	},
	domain.KindFunction: {
		TargetType:   "google_cloudfunctions2_function",
		ImportID:     gcpRegional("functions"),
		StateAddress: addressFor("google_cloudfunctions2_function"),
		Priority:     priorityCompute,
	},
	domain.KindContainer: {
		TargetType:   "google_cloud_run_v2_service",
		ImportID:     gcpRegional("services"),
		StateAddress: addressFor("google_cloud_run_v2_service"),
		Priority:     priorityCompute,
	},
	domain.KindEndpointGroup: {
		TargetType: "google_compute_region_network_endpoint_group",
		ImportID: func(res domain.CloudResource, proj ProjectContext) string {
			region := res.Location
			if region == "" {
				region = proj.Region
			}
			return fmt.Sprintf("projects/%s/regions/%s/networkEndpointGroups/%s", proj.ProjectID, region, res.Name)
		},
		StateAddress: addressFor("google_compute_region_network_endpoint_group"),
		Priority:     priorityEndpointGroup,
	},
	domain.KindBackendService: {
		TargetType:   "google_compute_backend_service",
		ImportID:     gcpGlobal("backendServices"),
		StateAddress: addressFor("google_compute_backend_service"),
		Priority:     priorityBackend,
	},
	domain.KindBackendBucket: {
		TargetType:   "google_compute_backend_bucket",
		ImportID:     gcpGlobal("backendBuckets"),
		StateAddress: addressFor("google_compute_backend_bucket"),
		Priority:     priorityBackend,
	},
	domain.KindURLMap: {
		TargetType:   "google_compute_url_map",
		ImportID:     gcpGlobal("urlMaps"),
		StateAddress: addressFor("google_compute_url_map"),
		Priority:     priorityURLMap,
	},
	domain.KindCertificate: {
		TargetType:   "google_compute_managed_ssl_certificate",
		ImportID:     gcpGlobal("sslCertificates"),
		StateAddress: addressFor("google_compute_managed_ssl_certificate"),
		Priority:     priorityCertificate,
	},
	domain.KindHTTPProxy: {
		TargetType:   "google_compute_target_http_proxy",
		ImportID:     gcpGlobal("targetHttpProxies"),
		StateAddress: addressFor("google_compute_target_http_proxy"),
		Priority:     priorityProxy,
	},
	domain.KindHTTPSProxy: {
		TargetType:   "google_compute_target_https_proxy",
		ImportID:     gcpGlobal("targetHttpsProxies"),
		StateAddress: addressFor("google_compute_target_https_proxy"),
		Priority:     priorityProxy,
	},
	domain.KindGlobalAddress: {
		TargetType:   "google_compute_global_address",
		ImportID:     gcpGlobal("addresses"),
		StateAddress: addressFor("google_compute_global_address"),
		Priority:     priorityAddress,
	},
	domain.KindForwardingRule: {
		TargetType:   "google_compute_global_forwarding_rule",
		ImportID:     gcpGlobal("forwardingRules"),
		StateAddress: addressFor("google_compute_global_forwarding_rule"),
		Priority:     priorityForwardingRule,
	},
}

// externalRef prefers the provider-assigned ID over the name; AWS imports
// mostly key on IDs.
func externalRef(res domain.CloudResource, _ ProjectContext) string {
	if res.ExternalRef != "" {
		return res.ExternalRef
	}
	return res.Name
}

var awsMappings = map[domain.ResourceKind]ImportMapping{
	domain.KindNetwork: {
		TargetType:   "aws_vpc",
		ImportID:     externalRef,
		StateAddress: addressFor("aws_vpc"),
		Priority:     priorityNetwork,
	},
	domain.KindBucket: {
		TargetType:   "aws_s3_bucket",
		ImportID:     bareName,
		StateAddress: addressFor("aws_s3_bucket"),
		Priority:     priorityStorage,
	},
	domain.KindRepository: {
		TargetType:   "aws_ecr_repository",
		ImportID:     bareName,
		StateAddress: addressFor("aws_ecr_repository"),
		Priority:     priorityStorage,
	},
	domain.KindFunction: {
		TargetType:   "aws_lambda_function",
		ImportID:     bareName,
		StateAddress: addressFor("aws_lambda_function"),
		Priority:     priorityCompute,
	},
	domain.KindContainer: {
		TargetType:   "aws_ecs_service",
		ImportID:     externalRef,
		StateAddress: addressFor("aws_ecs_service"),
		Priority:     priorityCompute,
	},
}
