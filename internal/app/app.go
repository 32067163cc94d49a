package app

import (
	"context"

	"github.com/driftline/driftline/internal/config"
	"github.com/driftline/driftline/internal/core/domain"
	"github.com/driftline/driftline/internal/core/ports"
	"github.com/driftline/driftline/internal/core/service"
	"github.com/driftline/driftline/internal/errors"
	"github.com/driftline/driftline/internal/validate"
)

// Application bundles the wired engine with everything the CLI layer needs.
type Application struct {
	Engine *service.ReconciliationEngine
	Logger ports.Logger
	Config *config.Config
}

// Reconcile executes one full reconciliation run.
func (a *Application) Reconcile(ctx context.Context, opts service.ReconcileOptions) (domain.OperationResult, error) {
	a.Logger.Infof(ctx, "Starting reconciliation run...")

	result, err := a.Engine.Run(ctx, opts)
	if err != nil {
		a.Logger.Errorf(ctx, err, "Reconciliation run failed")
		return result, err
	}

	a.Logger.Infof(ctx, "Reconciliation run completed")
	return result, nil
}

// DeclaredResources collects the resources the naming validator checks:
// the config's resources list plus, when configured, the declarations in
// the project HCL file.
func (a *Application) DeclaredResources() ([]domain.DeclaredResource, error) {
	declared := a.Config.Declared()
	if a.Config.Project.HCLFile == "" {
		return declared, nil
	}

	fromHCL, err := config.LoadProjectHCL(a.Config.Project.HCLFile, a.Config.Project.Name)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeConfigParseError, "loading project HCL declarations")
	}
	return append(declared, fromHCL...), nil
}

// ValidateNaming checks every declared resource name against the provider
// naming rules without touching the cloud.
func (a *Application) ValidateNaming() (validate.Result, error) {
	declared, err := a.DeclaredResources()
	if err != nil {
		return validate.Result{}, err
	}
	return validate.Validate(declared), nil
}
