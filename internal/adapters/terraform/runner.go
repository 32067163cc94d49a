package terraform

import (
	"context"
	"fmt"
	"io"

	"github.com/hashicorp/terraform-exec/tfexec"
	tfjson "github.com/hashicorp/terraform-json"

	"github.com/driftline/driftline/internal/core/ports"
	"github.com/driftline/driftline/internal/errors"
)

// Runner drives a terraform binary against a single working directory.
// Import and StateRemove mutate the state file, so callers must not run
// them concurrently.
type Runner struct {
	tf     *tfexec.Terraform
	logger ports.Logger
}

// Options configure how the terraform binary is located.
type Options struct {
	// BinaryPath is an explicit terraform binary. When empty, $PATH is
	// consulted and a pinned release installed as a last resort.
	BinaryPath string
	// Version pins the release installed when no binary is found.
	Version string
	// Stdout and Stderr receive terraform's own output. Nil discards it.
	Stdout io.Writer
	Stderr io.Writer
}

// NewRunner locates a terraform binary and binds it to workDir.
func NewRunner(ctx context.Context, workDir string, opts Options, logger ports.Logger) (*Runner, error) {
	binPath, err := resolveBinary(ctx, opts.BinaryPath, opts.Version)
	if err != nil {
		return nil, err
	}

	tf, err := tfexec.NewTerraform(workDir, binPath)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeTerraformMissing,
			fmt.Sprintf("initialize terraform in %s", workDir))
	}
	if opts.Stdout != nil {
		tf.SetStdout(opts.Stdout)
	}
	if opts.Stderr != nil {
		tf.SetStderr(opts.Stderr)
	}

	logger.Debugf(ctx, "using terraform binary at %s", binPath)
	return &Runner{tf: tf, logger: logger}, nil
}

// Import brings an existing cloud resource under the state address.
func (r *Runner) Import(ctx context.Context, stateAddress, importID string) error {
	r.logger.Debugf(ctx, "terraform import %s %s", stateAddress, importID)
	if err := r.tf.Import(ctx, stateAddress, importID); err != nil {
		return errors.Wrap(err, errors.CodeImportError,
			fmt.Sprintf("import %s as %s", importID, stateAddress))
	}
	return nil
}

// StateRemove drops an address from the state file without touching the
// underlying resource.
func (r *Runner) StateRemove(ctx context.Context, stateAddress string) error {
	r.logger.Debugf(ctx, "terraform state rm %s", stateAddress)
	if err := r.tf.StateRm(ctx, stateAddress); err != nil {
		return errors.Wrap(err, errors.CodeStatePruneError,
			fmt.Sprintf("remove %s from state", stateAddress))
	}
	return nil
}

// Show returns the current state as terraform reports it.
func (r *Runner) Show(ctx context.Context) (*tfjson.State, error) {
	state, err := r.tf.Show(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeStateReadError, "terraform show")
	}
	return state, nil
}
