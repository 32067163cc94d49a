package domain

// OperationFailure is one resource the executor could not import or delete.
type OperationFailure struct {
	Name  string
	Error string
}

// OperationResult is produced once per executor invocation. There is no
// rollback: names in Succeeded stay applied even when Failed is non-empty.
type OperationResult struct {
	Succeeded []string
	Failed    []OperationFailure
	// Mutated is false for the read-only actions (list_details, cancel,
	// change_prefix) and for dry runs.
	Mutated bool
	// Note carries operator guidance for non-mutating outcomes.
	Note string
}

func (r OperationResult) Success() bool {
	return len(r.Failed) == 0
}

// RunPhase tracks a reconciliation run through its state machine. Terminal
// phases are PhaseReported, or PhaseClassified when zero conflicts were found.
type RunPhase string

const (
	PhaseScanned    RunPhase = "Scanned"
	PhaseClassified RunPhase = "Classified"
	PhasePlanChosen RunPhase = "PlanChosen"
	PhaseExecuting  RunPhase = "Executing"
	PhaseReported   RunPhase = "Reported"
)
