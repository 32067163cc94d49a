package json

import (
	"context"
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"

	"github.com/driftline/driftline/internal/core/domain"
	"github.com/driftline/driftline/internal/core/ports"
)

const ReporterTypeJSON = "json"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Reporter struct {
	writer io.Writer
	logger ports.Logger
}

func NewReporter(logger ports.Logger) (*Reporter, error) {
	return &Reporter{
		writer: os.Stdout,
		logger: logger,
	}, nil
}

func (r *Reporter) Type() string { return ReporterTypeJSON }

type jsonReport struct {
	Summary   jsonSummary     `json:"summary"`
	Conflicts []jsonConflict  `json:"conflicts"`
	Ambiguous []jsonAmbiguous `json:"ambiguous_matches,omitempty"`
	Warnings  []string        `json:"warnings,omitempty"`
	Result    *jsonResult     `json:"result,omitempty"`
}

type jsonSummary struct {
	TotalConflicts   int `json:"total_conflicts"`
	ExistsNotInState int `json:"exists_not_in_state"`
	Orphaned         int `json:"orphaned_from_previous"`
}

type jsonConflict struct {
	Type            domain.ConflictType `json:"type"`
	Kind            domain.ResourceKind `json:"kind"`
	Name            string              `json:"name"`
	Location        string              `json:"location,omitempty"`
	StateAddress    string              `json:"state_address,omitempty"`
	ExpectedAddress string              `json:"expected_address,omitempty"`
}

type jsonAmbiguous struct {
	Kind         domain.ResourceKind  `json:"kind"`
	Name         string               `json:"name"`
	StateAddress string               `json:"state_address"`
	Strategy     domain.MatchStrategy `json:"strategy"`
}

type jsonResult struct {
	Mutated   bool          `json:"mutated"`
	Note      string        `json:"note,omitempty"`
	Succeeded []string      `json:"succeeded"`
	Failed    []jsonFailure `json:"failed"`
}

type jsonFailure struct {
	Name  string `json:"name"`
	Error string `json:"error"`
}

func (r *Reporter) Report(ctx context.Context, report ports.RunReport) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	out := jsonReport{
		Summary:   jsonSummary{TotalConflicts: len(report.Conflicts)},
		Conflicts: make([]jsonConflict, 0, len(report.Conflicts)),
		Warnings:  report.Warnings,
	}

	for _, c := range report.Conflicts {
		switch c.Type {
		case domain.ConflictExistsNotInState:
			out.Summary.ExistsNotInState++
		case domain.ConflictOrphaned:
			out.Summary.Orphaned++
		}
		out.Conflicts = append(out.Conflicts, jsonConflict{
			Type:            c.Type,
			Kind:            c.Resource.Kind,
			Name:            c.Resource.Name,
			Location:        c.Resource.Location,
			StateAddress:    c.StateAddress,
			ExpectedAddress: c.ExpectedName,
		})
	}

	for _, a := range report.Ambiguous {
		out.Ambiguous = append(out.Ambiguous, jsonAmbiguous{
			Kind:         a.Resource.Kind,
			Name:         a.Resource.Name,
			StateAddress: a.StateAddress,
			Strategy:     a.Strategy,
		})
	}

	if report.Result != nil {
		res := &jsonResult{
			Mutated:   report.Result.Mutated,
			Note:      report.Result.Note,
			Succeeded: report.Result.Succeeded,
			Failed:    make([]jsonFailure, 0, len(report.Result.Failed)),
		}
		if res.Succeeded == nil {
			res.Succeeded = []string{}
		}
		for _, f := range report.Result.Failed {
			res.Failed = append(res.Failed, jsonFailure{Name: f.Name, Error: f.Error})
		}
		out.Result = res
	}

	encoder := json.NewEncoder(r.writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(out); err != nil {
		r.logger.Errorf(ctx, err, "Failed to encode JSON report")
		return fmt.Errorf("encode JSON report: %w", err)
	}
	return nil
}
