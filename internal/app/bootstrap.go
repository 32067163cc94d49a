package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	awsplatform "github.com/driftline/driftline/internal/adapters/platform/aws"
	gcpplatform "github.com/driftline/driftline/internal/adapters/platform/gcp"
	"github.com/driftline/driftline/internal/adapters/state/tfshow"
	"github.com/driftline/driftline/internal/adapters/state/tfstate"
	terraformexec "github.com/driftline/driftline/internal/adapters/terraform"
	"github.com/driftline/driftline/internal/config"
	"github.com/driftline/driftline/internal/core/domain"
	"github.com/driftline/driftline/internal/core/ports"
	"github.com/driftline/driftline/internal/core/service"
	"github.com/driftline/driftline/internal/errors"
	"github.com/driftline/driftline/internal/log"
	"github.com/driftline/driftline/internal/prompt"
	jsonreporter "github.com/driftline/driftline/internal/reporting/json"
	textreporter "github.com/driftline/driftline/internal/reporting/text"
)

// LoadConfig unmarshals and validates configuration and sets up the logger.
// Commands that never touch the cloud (like validate) stop here instead of
// paying for the full bootstrap.
func LoadConfig(ctx context.Context, v *viper.Viper) (*config.Config, ports.Logger, error) {
	cfg := config.DefaultConfig()
	err := v.Unmarshal(cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		config.KindDecodeHook(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)))
	if err != nil {
		return nil, nil, errors.Wrap(err, errors.CodeConfigParseError, "failed to unmarshal configuration")
	}

	logCfg := log.Config{Level: cfg.Settings.LogLevel, Format: cfg.Settings.LogFormat}
	logger, err := log.NewLogger(logCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: failed to initialize logger: %v\n", err)
		return nil, nil, errors.Wrap(err, errors.CodeInternal, "logger initialization failed")
	}
	if v.ConfigFileUsed() != "" {
		logger.Debugf(ctx, "Using configuration file: %s", v.ConfigFileUsed())
	} else {
		logger.Debugf(ctx, "No configuration file found, using defaults/env/flags")
	}

	if err := validateConfig(ctx, cfg, logger); err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// BuildApplicationFromViper wires the whole application from configuration:
// logger, platform scanner, state reader, terraform runner, reporters and
// the reconciliation engine.
func BuildApplicationFromViper(ctx context.Context, v *viper.Viper) (*Application, error) {
	cfg, logger, err := LoadConfig(ctx, v)
	if err != nil {
		return nil, err
	}

	registry := service.NewComponentRegistry()

	scanner, naming, proj, err := buildScanner(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := registry.RegisterScanner(scanner); err != nil {
		return nil, err
	}

	workDir := cfg.Terraform.WorkDir
	if workDir == "" {
		workDir = "."
	}
	runner, err := terraformexec.NewRunner(ctx, workDir, terraformexec.Options{
		BinaryPath: cfg.Terraform.Path,
		Version:    cfg.Terraform.Version,
		Stderr:     os.Stderr,
	}, logger.WithFields(map[string]any{"component": "terraform"}))
	if err != nil {
		return nil, err
	}

	if err := registerStateReaders(registry, cfg, runner, logger); err != nil {
		return nil, err
	}
	stateReader, err := registry.GetStateReader(stateMode(cfg))
	if err != nil {
		return nil, err
	}

	if err := registerReporters(registry, logger); err != nil {
		return nil, err
	}
	reporter, err := registry.GetReporter(cfg.Settings.Reporter)
	if err != nil {
		return nil, err
	}

	mappings, err := service.MappingsFor(cfg.Provider)
	if err != nil {
		return nil, err
	}

	engine, err := service.NewReconciliationEngine(
		scanner,
		stateReader,
		service.NewClassifier(cfg.MatchStrategies()),
		service.NewPlanner(),
		service.NewExecutor(runner, statePruneOnly(runner), mappings,
			logger.WithFields(map[string]any{"component": "executor"}), cfg.Settings.OpTimeout),
		reporter,
		prompt.New(),
		logger.WithFields(map[string]any{"component": "engine"}),
		proj,
		naming,
	)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to initialize reconciliation engine")
	}

	logger.Debugf(ctx, "Application bootstrap complete")
	return &Application{Engine: engine, Logger: logger, Config: cfg}, nil
}

func validateConfig(ctx context.Context, cfg *config.Config, logger ports.Logger) error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	err := validate.StructCtx(ctx, cfg)
	if err == nil {
		logger.Debugf(ctx, "Configuration validated successfully")
		return nil
	}

	var details strings.Builder
	details.WriteString("Configuration validation failed:")
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range validationErrors {
			details.WriteString(fmt.Sprintf("\n - Field '%s': failed on '%s' validation (value: '%v')",
				fe.Namespace(), fe.Tag(), fe.Value()))
		}
	} else {
		details.WriteString(" " + err.Error())
	}
	wrapped := errors.NewUserFacing(errors.CodeConfigValidation, details.String(),
		"Check your configuration file or flags.")
	logger.Errorf(ctx, wrapped, "Configuration validation failed")
	return wrapped
}

func buildScanner(ctx context.Context, cfg *config.Config, logger ports.Logger) (
	ports.PlatformScanner, domain.NamingContext, service.ProjectContext, error,
) {
	naming := domain.NamingContext{Project: cfg.Project.Name}

	switch cfg.Provider {
	case gcpplatform.ProviderTypeGCP:
		if cfg.GCP == nil {
			return nil, naming, service.ProjectContext{}, errors.NewUserFacing(
				errors.CodeConfigValidation, "provider is gcp but the gcp section is missing", "")
		}
		provLog := logger.WithFields(map[string]any{"provider": gcpplatform.ProviderTypeGCP})
		scanner, err := gcpplatform.NewProvider(ctx, gcpplatform.Options{
			ScanTimeout:     cfg.Settings.ScanTimeout,
			RateRPS:         cfg.Settings.APIRateRPS,
			CredentialsFile: cfg.GCP.CredentialsFile,
		}, provLog)
		if err != nil {
			return nil, naming, service.ProjectContext{}, err
		}
		proj := service.ProjectContext{ProjectID: cfg.GCP.ProjectID, Region: cfg.GCP.Region}
		provLog.Infof(ctx, "Using GCP platform (project %s, region %s)", proj.ProjectID, proj.Region)
		return scanner, naming, proj, nil

	case awsplatform.ProviderTypeAWS:
		if cfg.AWS == nil {
			return nil, naming, service.ProjectContext{}, errors.NewUserFacing(
				errors.CodeConfigValidation, "provider is aws but the aws section is missing", "")
		}
		provLog := logger.WithFields(map[string]any{"provider": awsplatform.ProviderTypeAWS})
		scanner, err := awsplatform.NewProvider(ctx, awsplatform.Options{
			Region:      cfg.AWS.Region,
			Profile:     cfg.AWS.Profile,
			ScanTimeout: cfg.Settings.ScanTimeout,
			RateRPS:     cfg.Settings.APIRateRPS,
		}, provLog)
		if err != nil {
			return nil, naming, service.ProjectContext{}, err
		}
		// Account-prefixed names need the caller's account resolved up front.
		accountID, err := scanner.AccountID(ctx)
		if err != nil {
			return nil, naming, service.ProjectContext{}, err
		}
		naming.AccountID = accountID
		proj := service.ProjectContext{ProjectID: cfg.Project.Name, Region: cfg.AWS.Region}
		provLog.Infof(ctx, "Using AWS platform (account %s, region %s)", accountID, proj.Region)
		return scanner, naming, proj, nil

	default:
		return nil, naming, service.ProjectContext{}, errors.NewUserFacing(
			errors.CodeConfigValidation,
			fmt.Sprintf("unsupported provider: %s", cfg.Provider), "Supported: gcp, aws")
	}
}

func stateMode(cfg *config.Config) string {
	if cfg.State.Mode == "" {
		return tfstate.ReaderTypeFile
	}
	return cfg.State.Mode
}

func registerStateReaders(registry *service.ComponentRegistry, cfg *config.Config,
	runner *terraformexec.Runner, logger ports.Logger) error {
	fileReader := tfstate.NewReader(tfstate.Config{Path: cfg.State.Path}, logger)
	if err := registry.RegisterStateReader(fileReader); err != nil {
		return err
	}

	showReader, err := tfshow.NewReader(runner, logger)
	if err != nil {
		return err
	}
	return registry.RegisterStateReader(showReader)
}

func registerReporters(registry *service.ComponentRegistry, logger ports.Logger) error {
	text, err := textreporter.NewReporter(textreporter.Config{}, logger)
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to initialize text reporter")
	}
	if err := registry.RegisterReporter(textreporter.ReporterTypeText, text); err != nil {
		return err
	}

	jsonRep, err := jsonreporter.NewReporter(logger)
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to initialize JSON reporter")
	}
	return registry.RegisterReporter(jsonreporter.ReporterTypeJSON, jsonRep)
}

// statePruneOnly is the delete policy the CLI ships with: orphaned entries
// are pruned from state, but actual cloud resources are never deleted here.
// Destroying infrastructure stays with the provisioning tool.
func statePruneOnly(runner ports.ImportRunner) ports.DeleteFunc {
	return func(ctx context.Context, conflict domain.Conflict) error {
		if conflict.Type == domain.ConflictOrphaned {
			return runner.StateRemove(ctx, conflict.StateAddress)
		}
		return errors.NewUserFacing(errors.CodeNotImplemented,
			fmt.Sprintf("refusing to delete cloud resource %s %q", conflict.Resource.Kind, conflict.Resource.Name),
			"Delete it with your provisioning tool, or choose import_all instead.")
	}
}
