package terraform

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/hashicorp/go-version"
	"github.com/hashicorp/hc-install/product"
	"github.com/hashicorp/hc-install/releases"

	"github.com/driftline/driftline/internal/errors"
)

const defaultVersion = "1.9.8"

// resolveBinary finds the terraform binary: the explicit config path wins,
// then whatever is on $PATH, then a pinned release installed into the
// user cache.
func resolveBinary(ctx context.Context, explicitPath, pinnedVersion string) (string, error) {
	if explicitPath != "" {
		if info, err := os.Stat(explicitPath); err != nil || info.IsDir() {
			return "", errors.New(errors.CodeTerraformMissing,
				fmt.Sprintf("configured terraform binary %s does not exist", explicitPath))
		}
		return explicitPath, nil
	}

	if path, err := exec.LookPath(product.Terraform.BinaryName()); err == nil {
		return path, nil
	}

	if pinnedVersion == "" {
		pinnedVersion = defaultVersion
	}
	v, err := version.NewVersion(pinnedVersion)
	if err != nil {
		return "", errors.Wrap(err, errors.CodeConfigValidation,
			fmt.Sprintf("invalid terraform version %q", pinnedVersion))
	}

	return installVersion(ctx, v)
}

func installVersion(ctx context.Context, v *version.Version) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, errors.CodeTerraformMissing, "cannot determine user home for terraform install")
	}
	installDir := filepath.Join(home, ".driftline", "terraform", v.String())

	binaryPath := filepath.Join(installDir, product.Terraform.BinaryName())
	if info, err := os.Stat(binaryPath); err == nil && !info.IsDir() {
		return binaryPath, nil
	}

	if err := os.MkdirAll(installDir, 0o755); err != nil {
		return "", errors.Wrap(err, errors.CodeTerraformMissing,
			fmt.Sprintf("create install directory %s", installDir))
	}

	installer := &releases.ExactVersion{
		Product:    product.Terraform,
		Version:    v,
		InstallDir: installDir,
	}

	path, err := installer.Install(ctx)
	if err != nil {
		return "", errors.Wrap(err, errors.CodeTerraformMissing,
			fmt.Sprintf("install terraform %s", v.String()))
	}
	return path, nil
}
