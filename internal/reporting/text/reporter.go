package text

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/driftline/driftline/internal/core/domain"
	"github.com/driftline/driftline/internal/core/ports"
)

const ReporterTypeText = "text"

type Config struct {
	NoColor bool `mapstructure:"no_color"`
}

type Reporter struct {
	config Config
	writer io.Writer
	logger ports.Logger
}

func NewReporter(cfg Config, logger ports.Logger) (*Reporter, error) {
	if cfg.NoColor || !isTerminal(os.Stdout) {
		color.NoColor = true
	}

	return &Reporter{
		config: cfg,
		writer: os.Stdout,
		logger: logger,
	}, nil
}

func isTerminal(f *os.File) bool {
	stat, _ := f.Stat()
	return (stat.Mode() & os.ModeCharDevice) != 0
}

func (r *Reporter) Type() string { return ReporterTypeText }

func (r *Reporter) Report(ctx context.Context, report ports.RunReport) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	if len(report.Warnings) > 0 {
		for _, w := range report.Warnings {
			fmt.Fprintf(r.writer, "%s %s\n", yellow("warning:"), w)
		}
		fmt.Fprintln(r.writer)
	}

	if len(report.Conflicts) == 0 {
		fmt.Fprintln(r.writer, green("State and cloud resources are in sync. Nothing to reconcile."))
		return r.printResult(report.Result, red, green)
	}

	imports, prunes := splitConflicts(report.Conflicts)

	fmt.Fprintln(r.writer, "Reconciliation Plan")
	fmt.Fprintln(r.writer, "===================")

	tw := tabwriter.NewWriter(r.writer, 0, 8, 2, ' ', 0)

	if len(imports) > 0 {
		fmt.Fprintf(tw, "\n%s resources exist in the cloud but not in state:\n", cyan(len(imports)))
		fmt.Fprintln(tw, "Kind\tName\tLocation\tExpected Address")
		fmt.Fprintln(tw, "----\t----\t--------\t----------------")
		for _, c := range imports {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
				c.Resource.Kind, c.Resource.Name, c.Resource.Location, c.ExpectedName)
		}
	}
	if len(prunes) > 0 {
		fmt.Fprintf(tw, "\n%s state entries no longer have a cloud resource:\n", yellow(len(prunes)))
		fmt.Fprintln(tw, "Kind\tState Address\tLast Known Name")
		fmt.Fprintln(tw, "----\t-------------\t---------------")
		for _, c := range prunes {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Resource.Kind, c.StateAddress, c.Resource.Name)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(report.Ambiguous) > 0 {
		fmt.Fprintf(r.writer, "\n%s matched by a relaxed strategy (verify before trusting):\n",
			yellow(len(report.Ambiguous)))
		for _, a := range report.Ambiguous {
			fmt.Fprintf(r.writer, "  %s %s -> %s (strategy: %s)\n",
				a.Resource.Kind, a.Resource.Name, a.StateAddress, a.Strategy)
		}
	}

	return r.printResult(report.Result, red, green)
}

func (r *Reporter) printResult(result *domain.OperationResult, red, green func(a ...interface{}) string) error {
	if result == nil {
		return nil
	}

	fmt.Fprintln(r.writer, "\nExecution Summary")
	fmt.Fprintln(r.writer, "-----------------")
	if result.Note != "" {
		fmt.Fprintln(r.writer, result.Note)
	}
	for _, name := range result.Succeeded {
		fmt.Fprintf(r.writer, "%s %s\n", green("[OK]"), name)
	}
	for _, f := range result.Failed {
		fmt.Fprintf(r.writer, "%s %s: %v\n", red("[FAILED]"), f.Name, f.Error)
	}
	fmt.Fprintf(r.writer, "Succeeded: %s  Failed: %s\n",
		green(len(result.Succeeded)), red(len(result.Failed)))
	return nil
}

func splitConflicts(conflicts []domain.Conflict) (imports, prunes []domain.Conflict) {
	for _, c := range conflicts {
		if c.Type == domain.ConflictExistsNotInState {
			imports = append(imports, c)
		} else {
			prunes = append(prunes, c)
		}
	}
	return imports, prunes
}
