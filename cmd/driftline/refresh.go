package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/driftline/driftline/internal/app"
	"github.com/driftline/driftline/internal/core/domain"
	"github.com/driftline/driftline/internal/core/service"
	apperrors "github.com/driftline/driftline/internal/errors"
)

var (
	refreshDryRun bool
	refreshYes    bool
	refreshAction string
	refreshPrefix string
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Scan the cloud account, diff it against state, and reconcile.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		application, err := app.BuildApplicationFromViper(ctx, viper.GetViper())
		if err != nil {
			return err
		}

		opts := service.ReconcileOptions{
			DryRun:         refreshDryRun,
			NonInteractive: refreshYes,
			WorkDir:        application.Config.Terraform.WorkDir,
		}
		if refreshAction != "" {
			opts.Choice = domain.ResolutionChoice{
				Action:    domain.ResolutionAction(refreshAction),
				NewPrefix: refreshPrefix,
			}
		}

		result, err := application.Reconcile(ctx, opts)
		if err != nil {
			return err
		}
		if !result.Success() {
			return apperrors.New(apperrors.CodeImportError,
				fmt.Sprintf("%d of %d operations failed", len(result.Failed),
					len(result.Failed)+len(result.Succeeded)))
		}
		return nil
	},
}

func init() {
	refreshCmd.Flags().BoolVar(&refreshDryRun, "dry-run", false, "Show the reconciliation plan without applying it")
	refreshCmd.Flags().BoolVarP(&refreshYes, "yes", "y", false, "Skip the prompt and apply the default resolution (import_all)")
	refreshCmd.Flags().StringVar(&refreshAction, "action", "", "Pre-select a resolution (import_all, delete_all, change_prefix, cancel)")
	refreshCmd.Flags().StringVar(&refreshPrefix, "prefix", "", "New project prefix for --action change_prefix")

	rootCmd.AddCommand(refreshCmd)
}
