package tfstate

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/driftline/driftline/internal/core/domain"
	"github.com/driftline/driftline/internal/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type (
	// State mirrors the raw terraform.tfstate schema, version 4.
	State struct {
		Version          int        `json:"version"`
		TerraformVersion string     `json:"terraform_version"`
		Serial           int        `json:"serial"`
		Lineage          string     `json:"lineage"`
		Resources        []Resource `json:"resources"`
	}

	Resource struct {
		Module    string     `json:"module,omitempty"`
		Mode      string     `json:"mode"`
		Type      string     `json:"type"`
		Name      string     `json:"name"`
		Provider  string     `json:"provider"`
		Instances []Instance `json:"instances"`
	}

	Instance struct {
		SchemaVersion int            `json:"schema_version"`
		Attributes    map[string]any `json:"attributes"`
		Dependencies  []string       `json:"dependencies"`
	}
)

func parseState(raw []byte) (*State, error) {
	var state State
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, errors.Wrap(err, errors.CodeStateParseError, "invalid JSON in state file")
	}
	if state.Version < 3 {
		return nil, errors.New(errors.CodeStateParseError,
			fmt.Sprintf("unsupported state version %d", state.Version))
	}
	return &state, nil
}

// entriesFromState flattens every resource instance into a StateEntry. The
// resource mode is carried along so the classifier can tell data lookups
// from managed resources without re-parsing the address.
func entriesFromState(state *State) []domain.StateEntry {
	entries := make([]domain.StateEntry, 0, len(state.Resources))
	for i := range state.Resources {
		res := &state.Resources[i]
		kind := KindForType(res.Type)
		address := buildResourceAddress(res)
		if len(res.Instances) == 0 {
			entries = append(entries, domain.StateEntry{
				Address: address,
				Kind:    kind,
				Name:    res.Name,
				Mode:    res.Mode,
			})
			continue
		}
		for _, inst := range res.Instances {
			entries = append(entries, domain.StateEntry{
				Address:    address,
				Kind:       kind,
				Name:       res.Name,
				Mode:       res.Mode,
				Attributes: inst.Attributes,
			})
		}
	}
	return entries
}

func buildResourceAddress(r *Resource) string {
	address := r.Type + "." + r.Name
	if r.Mode == "data" {
		address = "data." + address
	}
	if r.Module != "" {
		address = r.Module + "." + address
	}
	return address
}

// tfTypeKinds maps provisioning-tool resource types back to engine kinds.
// Unlisted types map to the empty kind; their entries still participate in
// orphan detection by name.
var tfTypeKinds = map[string]domain.ResourceKind{
	"google_cloudfunctions2_function":              domain.KindFunction,
	"google_cloud_run_v2_service":                  domain.KindContainer,
	"google_cloud_run_service":                     domain.KindContainer,
	"google_storage_bucket":                        domain.KindBucket,
	"google_compute_network":                       domain.KindNetwork,
	"google_vpc_access_connector":                  domain.KindConnector,
	"google_artifact_registry_repository":          domain.KindRepository,
	"google_compute_global_address":                domain.KindGlobalAddress,
	"google_compute_url_map":                       domain.KindURLMap,
	"google_compute_backend_service":               domain.KindBackendService,
	"google_compute_backend_bucket":                domain.KindBackendBucket,
	"google_compute_global_forwarding_rule":        domain.KindForwardingRule,
	"google_compute_target_http_proxy":             domain.KindHTTPProxy,
	"google_compute_target_https_proxy":            domain.KindHTTPSProxy,
	"google_compute_region_network_endpoint_group": domain.KindEndpointGroup,
	"google_compute_managed_ssl_certificate":       domain.KindCertificate,

	"aws_s3_bucket":       domain.KindBucket,
	"aws_vpc":             domain.KindNetwork,
	"aws_lambda_function": domain.KindFunction,
	"aws_ecs_service":     domain.KindContainer,
	"aws_ecr_repository":  domain.KindRepository,
}

func KindForType(tfType string) domain.ResourceKind {
	return tfTypeKinds[tfType]
}
