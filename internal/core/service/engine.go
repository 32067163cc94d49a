package service

import (
	"context"
	"fmt"

	"github.com/driftline/driftline/internal/core/domain"
	"github.com/driftline/driftline/internal/core/ports"
	"github.com/driftline/driftline/internal/errors"
)

// ReconcileOptions tunes one reconciliation run.
type ReconcileOptions struct {
	// DryRun computes and displays the plan without executing anything.
	DryRun bool
	// NonInteractive skips the prompt and applies the default resolution
	// (import_all).
	NonInteractive bool
	// Choice overrides the prompt entirely when Action is non-empty.
	Choice domain.ResolutionChoice
	// WorkDir is where the state file and terraform working directory live.
	WorkDir string
}

// ReconciliationEngine drives one run through its phases: scan, classify,
// choose a plan, execute, report. A run ends early after classification when
// there are zero conflicts. Ground truth is re-derived on every run; nothing
// from a previous run is reused.
type ReconciliationEngine struct {
	scanner     ports.PlatformScanner
	stateReader ports.StateReader
	classifier  *Classifier
	planner     *Planner
	executor    *Executor
	reporter    ports.Reporter
	prompter    ports.Prompter
	logger      ports.Logger
	proj        ProjectContext
	naming      domain.NamingContext
}

func NewReconciliationEngine(
	scanner ports.PlatformScanner,
	stateReader ports.StateReader,
	classifier *Classifier,
	planner *Planner,
	executor *Executor,
	reporter ports.Reporter,
	prompter ports.Prompter,
	logger ports.Logger,
	proj ProjectContext,
	naming domain.NamingContext,
) (*ReconciliationEngine, error) {
	if scanner == nil {
		return nil, errors.New(errors.CodeConfigValidation, "platform scanner cannot be nil")
	}
	if stateReader == nil {
		return nil, errors.New(errors.CodeConfigValidation, "state reader cannot be nil")
	}
	if reporter == nil {
		return nil, errors.New(errors.CodeConfigValidation, "reporter cannot be nil")
	}

	return &ReconciliationEngine{
		scanner:     scanner,
		stateReader: stateReader,
		classifier:  classifier,
		planner:     planner,
		executor:    executor,
		reporter:    reporter,
		prompter:    prompter,
		logger:      logger,
		proj:        proj,
		naming:      naming,
	}, nil
}

func (e *ReconciliationEngine) Run(ctx context.Context, opts ReconcileOptions) (domain.OperationResult, error) {
	e.logger.Infof(ctx, "Starting reconciliation for project %q (provider %s)", e.naming.Project, e.scanner.Type())

	scan, err := e.scanner.Scan(ctx, ports.ScanRequest{
		ProjectID: e.proj.ProjectID,
		Region:    e.proj.Region,
		Naming:    e.naming,
	})
	if err != nil {
		return domain.OperationResult{}, errors.Wrap(err, errors.CodePlatformAPIError, "cloud scan failed")
	}
	e.logger.Debugf(ctx, "Phase %s: %d resources, %d kind errors", domain.PhaseScanned, len(scan.Resources), len(scan.Errors))

	stateRes, err := e.stateReader.Read(ctx, opts.WorkDir)
	if err != nil {
		return domain.OperationResult{}, errors.Wrap(err, errors.CodeStateReadError, "state read failed")
	}

	warnings := e.collectWarnings(ctx, scan, stateRes)

	classification := e.classifier.Classify(scan, stateRes)
	e.logger.Debugf(ctx, "Phase %s: %d conflicts, %d ambiguous matches",
		domain.PhaseClassified, len(classification.Conflicts), len(classification.Ambiguous))

	if len(classification.Conflicts) == 0 {
		e.logger.Infof(ctx, "State and cloud account are in sync, nothing to reconcile")
		reportErr := e.reporter.Report(ctx, ports.RunReport{
			Ambiguous: classification.Ambiguous,
			Warnings:  warnings,
		})
		return domain.OperationResult{Mutated: false, Note: "no conflicts detected"}, reportErr
	}

	if err := e.reporter.Report(ctx, ports.RunReport{
		Conflicts: classification.Conflicts,
		Ambiguous: classification.Ambiguous,
		Warnings:  warnings,
	}); err != nil {
		return domain.OperationResult{}, errors.Wrap(err, errors.CodeInternal, "failed to display reconciliation plan")
	}

	if opts.DryRun {
		e.logger.Infof(ctx, "Dry run: %d conflicts detected, no changes applied", len(classification.Conflicts))
		return domain.OperationResult{Mutated: false, Note: "dry run"}, nil
	}

	choice, err := e.resolveChoice(ctx, opts, classification.Conflicts)
	if err != nil {
		return domain.OperationResult{}, err
	}

	plan, err := e.planner.Plan(classification.Conflicts, choice)
	if err != nil {
		return domain.OperationResult{}, err
	}
	e.logger.Debugf(ctx, "Phase %s: action %s", domain.PhasePlanChosen, plan.Action)

	e.logger.Debugf(ctx, "Phase %s", domain.PhaseExecuting)
	result := e.executor.Execute(ctx, plan, classification.Conflicts, e.proj)

	if err := e.reporter.Report(ctx, ports.RunReport{Result: &result}); err != nil {
		e.logger.Errorf(ctx, err, "Failed to report execution result")
	}
	e.logger.Infof(ctx, "Phase %s: %d succeeded, %d failed",
		domain.PhaseReported, len(result.Succeeded), len(result.Failed))

	return result, nil
}

func (e *ReconciliationEngine) resolveChoice(
	ctx context.Context,
	opts ReconcileOptions,
	conflicts []domain.Conflict,
) (domain.ResolutionChoice, error) {
	if opts.Choice.Action != "" {
		return opts.Choice, nil
	}
	if opts.NonInteractive {
		return domain.ResolutionChoice{Action: domain.ActionImportAll}, nil
	}
	if e.prompter == nil {
		return domain.ResolutionChoice{}, errors.New(errors.CodeInvalidChoice,
			"interactive run requested but no prompter configured")
	}
	return e.prompter.Choose(ctx, conflicts)
}

func (e *ReconciliationEngine) collectWarnings(ctx context.Context, scan ports.ScanResult, state ports.StateResult) []string {
	var warnings []string
	for _, scanErr := range scan.Errors {
		warnings = append(warnings,
			fmt.Sprintf("scan degraded: %s resources unavailable: %s", scanErr.Kind, scanErr.Message))
	}
	if state.ParseError != nil {
		// A malformed state file is reported but the run continues against
		// empty state.
		warnings = append(warnings,
			fmt.Sprintf("state file %s is malformed and was treated as empty: %v", state.Path, state.ParseError))
	} else if !state.Found {
		e.logger.Debugf(ctx, "No state file found, treating as zero managed resources")
	}
	return warnings
}
