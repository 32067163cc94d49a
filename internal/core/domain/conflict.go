package domain

type ConflictType string

const (
	// ConflictExistsNotInState marks a cloud resource matching the project
	// naming pattern that no state entry accounts for.
	ConflictExistsNotInState ConflictType = "exists_not_in_state"
	// ConflictOrphaned marks a managed state entry whose resource is no
	// longer present in the cloud account.
	ConflictOrphaned ConflictType = "orphaned_from_previous"
)

// MatchStrategy identifies one of the name-matching fallbacks the classifier
// may apply, cheapest first by default.
type MatchStrategy string

const (
	MatchExact      MatchStrategy = "exact"
	MatchStateName  MatchStrategy = "state-name"
	MatchNormalized MatchStrategy = "normalized"
)

// DefaultMatchStrategies is the default fallback order. The order is config
// data, not a constant of the algorithm.
func DefaultMatchStrategies() []MatchStrategy {
	return []MatchStrategy{MatchExact, MatchStateName, MatchNormalized}
}

// Conflict is one discrepancy between the cloud account and the state file.
// Exactly one Conflict exists per discrepant resource per run.
type Conflict struct {
	Resource     CloudResource
	InState      bool
	StateAddress string
	ExpectedName string
	Type         ConflictType
}

// AmbiguousMatch records a cloud resource that was matched to a state entry
// only by a fallback strategy. These are reported, never silently accepted.
type AmbiguousMatch struct {
	Resource     CloudResource
	StateAddress string
	Strategy     MatchStrategy
}

type ResolutionAction string

const (
	ActionImportAll    ResolutionAction = "import_all"
	ActionDeleteAll    ResolutionAction = "delete_all"
	ActionChangePrefix ResolutionAction = "change_prefix"
	ActionListDetails  ResolutionAction = "list_details"
	ActionCancel       ResolutionAction = "cancel"
)

// ResolutionChoice is the operator's resolution for a reconciliation run,
// chosen once per run.
type ResolutionChoice struct {
	Action    ResolutionAction
	NewPrefix string
}
