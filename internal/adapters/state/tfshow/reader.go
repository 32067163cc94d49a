// Package tfshow reads live state through the provisioning tool itself
// (`terraform show -json`) instead of the state file on disk. Useful when
// the state lives in a remote backend and no local terraform.tfstate exists.
package tfshow

import (
	"context"

	tfjson "github.com/hashicorp/terraform-json"

	"github.com/driftline/driftline/internal/adapters/state/tfstate"
	"github.com/driftline/driftline/internal/core/domain"
	"github.com/driftline/driftline/internal/core/ports"
	"github.com/driftline/driftline/internal/errors"
)

const ReaderTypeShow = "show"

// Shower is the slice of the terraform runner this reader needs.
type Shower interface {
	Show(ctx context.Context) (*tfjson.State, error)
}

type Reader struct {
	shower Shower
	logger ports.Logger
}

func NewReader(shower Shower, logger ports.Logger) (*Reader, error) {
	if shower == nil {
		return nil, errors.New(errors.CodeConfigValidation, "tfshow reader requires a terraform runner")
	}
	return &Reader{
		shower: shower,
		logger: logger.WithFields(map[string]any{"component": "state_reader", "mode": ReaderTypeShow}),
	}, nil
}

func (r *Reader) Type() string { return ReaderTypeShow }

func (r *Reader) Read(ctx context.Context, workDir string) (ports.StateResult, error) {
	if ctx.Err() != nil {
		return ports.StateResult{}, ctx.Err()
	}

	state, err := r.shower.Show(ctx)
	if err != nil {
		return ports.StateResult{Found: true, Path: workDir, ParseError: errors.Wrap(
			err, errors.CodeStateParseError, "terraform show failed")}, nil
	}
	if state == nil || state.Values == nil || state.Values.RootModule == nil {
		// An initialized backend with no state yet.
		return ports.StateResult{Found: false}, nil
	}

	entries := collectModule(state.Values.RootModule, nil)
	r.logger.Debugf(ctx, "Pulled %d state entries via terraform show", len(entries))
	return ports.StateResult{Found: true, Path: workDir, Entries: entries}, nil
}

func collectModule(mod *tfjson.StateModule, entries []domain.StateEntry) []domain.StateEntry {
	for _, res := range mod.Resources {
		entries = append(entries, domain.StateEntry{
			Address:    res.Address,
			Kind:       tfstate.KindForType(res.Type),
			Name:       res.Name,
			Mode:       string(res.Mode),
			Attributes: res.AttributeValues,
		})
	}
	for _, child := range mod.ChildModules {
		entries = collectModule(child, entries)
	}
	return entries
}
