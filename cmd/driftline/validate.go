package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/driftline/driftline/internal/app"
	apperrors "github.com/driftline/driftline/internal/errors"
	"github.com/driftline/driftline/internal/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check declared resource names against provider naming rules.",
	Long: `Validate inspects the resources declared in configuration (and the
project HCL file, when configured) without contacting the cloud: name length,
character set, reserved words, duplicates, and cross-service collisions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, logger, err := app.LoadConfig(ctx, viper.GetViper())
		if err != nil {
			return err
		}

		application := &app.Application{Config: cfg, Logger: logger}
		result, err := application.ValidateNaming()
		if err != nil {
			return err
		}

		printIssues(result)
		if !result.Valid {
			return apperrors.New(apperrors.CodeNamingViolation,
				fmt.Sprintf("%d naming violation(s) found", len(result.Errors)))
		}
		return nil
	},
}

func printIssues(result validate.Result) {
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()

	for _, issue := range result.Errors {
		fmt.Fprintf(os.Stdout, "%s %s %q: %s (%s)\n",
			red("error:"), issue.Kind, issue.Name, issue.Message, issue.Code)
	}
	for _, issue := range result.Warnings {
		fmt.Fprintf(os.Stdout, "%s %s %q: %s (%s)\n",
			yellow("warning:"), issue.Kind, issue.Name, issue.Message, issue.Code)
	}
	if result.Valid {
		fmt.Fprintln(os.Stdout, green("All declared resource names are valid."))
	}
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
