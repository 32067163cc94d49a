package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/driftline/driftline/internal/core/domain"
	"github.com/driftline/driftline/internal/errors"
)

// projectFile is the HCL form of the declared-resource config:
//
//	resource "bucket" "uploads" {
//	  name = "${project.name}-uploads"
//	}
//
// The block labels give the kind and the default name; the optional name
// attribute may interpolate project variables.
type projectFile struct {
	Resources []resourceBlock `hcl:"resource,block"`
}

type resourceBlock struct {
	Kind    string `hcl:"kind,label"`
	Label   string `hcl:"name,label"`
	Name    string `hcl:"name,optional"`
	Network string `hcl:"network,optional"`
}

// LoadProjectHCL parses an HCL project file into declared resources,
// evaluating name expressions against the project context.
func LoadProjectHCL(path string, projectName string) ([]domain.DeclaredResource, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeConfigReadError,
			fmt.Sprintf("failed to read project file %s", path))
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, path)
	if diags.HasErrors() {
		return nil, errors.Wrap(diags, errors.CodeConfigParseError,
			fmt.Sprintf("failed to parse project file %s", path))
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"project": cty.ObjectVal(map[string]cty.Value{
				"name": cty.StringVal(projectName),
			}),
		},
	}

	var parsed projectFile
	if diags := gohcl.DecodeBody(file.Body, evalCtx, &parsed); diags.HasErrors() {
		return nil, errors.Wrap(diags, errors.CodeConfigParseError,
			fmt.Sprintf("failed to decode project file %s", path))
	}

	out := make([]domain.DeclaredResource, 0, len(parsed.Resources))
	for _, block := range parsed.Resources {
		kind, ok := domain.ParseKind(block.Kind)
		if !ok {
			return nil, errors.New(errors.CodeConfigParseError,
				fmt.Sprintf("unknown resource kind %q in %s", block.Kind, path))
		}
		name := block.Name
		if name == "" {
			name = block.Label
		}
		out = append(out, domain.DeclaredResource{
			Kind:    kind,
			Name:    name,
			Network: block.Network,
		})
	}
	return out, nil
}
