package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/driftline/driftline/internal/core/domain"
	"github.com/driftline/driftline/internal/core/ports"
)

const defaultOpTimeout = 60 * time.Second

// Executor applies a resolution plan resource-by-resource. Mutating actions
// run strictly sequentially: the state file is a single mutable artifact and
// concurrent writers would corrupt it. A resource's failure never aborts the
// remaining resources, and nothing is rolled back.
type Executor struct {
	runner    ports.ImportRunner
	deleteFn  ports.DeleteFunc
	mappings  map[domain.ResourceKind]ImportMapping
	logger    ports.Logger
	opTimeout time.Duration
}

func NewExecutor(
	runner ports.ImportRunner,
	deleteFn ports.DeleteFunc,
	mappings map[domain.ResourceKind]ImportMapping,
	logger ports.Logger,
	opTimeout time.Duration,
) *Executor {
	if opTimeout <= 0 {
		opTimeout = defaultOpTimeout
	}
	return &Executor{
		runner:    runner,
		deleteFn:  deleteFn,
		mappings:  mappings,
		logger:    logger,
		opTimeout: opTimeout,
	}
}

func (e *Executor) Execute(
	ctx context.Context,
	plan domain.ResolutionChoice,
	conflicts []domain.Conflict,
	proj ProjectContext,
) domain.OperationResult {
	switch plan.Action {
	case domain.ActionImportAll:
		return e.importAll(ctx, conflicts, proj)
	case domain.ActionDeleteAll:
		return e.deleteAll(ctx, conflicts)
	case domain.ActionChangePrefix:
		return domain.OperationResult{
			Mutated: false,
			Note: fmt.Sprintf("update the project prefix to %q in the config and re-run reconciliation",
				plan.NewPrefix),
		}
	case domain.ActionListDetails, domain.ActionCancel:
		return domain.OperationResult{Mutated: false, Note: "no changes applied"}
	default:
		return domain.OperationResult{
			Failed: []domain.OperationFailure{{
				Name:  string(plan.Action),
				Error: "unknown resolution action",
			}},
		}
	}
}

func (e *Executor) importAll(ctx context.Context, conflicts []domain.Conflict, proj ProjectContext) domain.OperationResult {
	result := domain.OperationResult{Mutated: true}

	importable := make([]domain.Conflict, 0, len(conflicts))
	for _, c := range conflicts {
		if c.Type == domain.ConflictExistsNotInState {
			importable = append(importable, c)
		}
	}
	e.sortByPriority(importable)

	for _, c := range importable {
		if ctx.Err() != nil {
			result.Failed = append(result.Failed, domain.OperationFailure{
				Name:  c.Resource.Name,
				Error: ctx.Err().Error(),
			})
			continue
		}

		mapping, ok := e.mappings[c.Resource.Kind]
		if !ok {
			result.Failed = append(result.Failed, domain.OperationFailure{
				Name:  c.Resource.Name,
				Error: fmt.Sprintf("no import mapping for kind %s", c.Resource.Kind),
			})
			continue
		}

		address := mapping.StateAddress(c.Resource)
		importID := mapping.ImportID(c.Resource, proj)

		e.logger.Infof(ctx, "Importing %s %s as %s", c.Resource.Kind, c.Resource.Name, address)
		opCtx, cancel := context.WithTimeout(ctx, e.opTimeout)
		err := e.runner.Import(opCtx, address, importID)
		cancel()

		if err != nil {
			e.logger.Errorf(ctx, err, "Import failed for %s", c.Resource.Name)
			result.Failed = append(result.Failed, domain.OperationFailure{
				Name:  c.Resource.Name,
				Error: err.Error(),
			})
			continue
		}
		result.Succeeded = append(result.Succeeded, c.Resource.Name)
	}

	return result
}

func (e *Executor) deleteAll(ctx context.Context, conflicts []domain.Conflict) domain.OperationResult {
	result := domain.OperationResult{Mutated: true}

	for _, c := range conflicts {
		if ctx.Err() != nil {
			result.Failed = append(result.Failed, domain.OperationFailure{
				Name:  c.Resource.Name,
				Error: ctx.Err().Error(),
			})
			continue
		}

		e.logger.Infof(ctx, "Deleting %s %s", c.Resource.Kind, c.Resource.Name)
		opCtx, cancel := context.WithTimeout(ctx, e.opTimeout)
		err := e.deleteFn(opCtx, c)
		cancel()

		if err != nil {
			e.logger.Errorf(ctx, err, "Delete failed for %s", c.Resource.Name)
			result.Failed = append(result.Failed, domain.OperationFailure{
				Name:  c.Resource.Name,
				Error: err.Error(),
			})
			continue
		}
		result.Succeeded = append(result.Succeeded, c.Resource.Name)
	}

	return result
}

// sortByPriority orders imports so dependencies land in state before their
// consumers. Ties break by name for a stable plan.
func (e *Executor) sortByPriority(conflicts []domain.Conflict) {
	sort.SliceStable(conflicts, func(i, j int) bool {
		pi := e.priorityOf(conflicts[i].Resource.Kind)
		pj := e.priorityOf(conflicts[j].Resource.Kind)
		if pi != pj {
			return pi < pj
		}
		return conflicts[i].Resource.Name < conflicts[j].Resource.Name
	})
}

func (e *Executor) priorityOf(kind domain.ResourceKind) int {
	if m, ok := e.mappings[kind]; ok {
		return m.Priority
	}
	// Unmapped kinds sort last; their import will fail with a clear error.
	return 1 << 20
}
