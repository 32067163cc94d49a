package service

import (
	"sort"
	"strings"

	"github.com/driftline/driftline/internal/core/domain"
	"github.com/driftline/driftline/internal/core/ports"
)

// Classification is the classifier's full output: the conflict set plus any
// matches that only succeeded through a fallback strategy.
type Classification struct {
	Conflicts []domain.Conflict
	Ambiguous []domain.AmbiguousMatch
}

// Classifier compares scanned cloud resources against state entries. It is
// pure computation: deterministic, side-effect free, and safe to call
// repeatedly on the same inputs.
type Classifier struct {
	strategies []domain.MatchStrategy
}

func NewClassifier(strategies []domain.MatchStrategy) *Classifier {
	if len(strategies) == 0 {
		strategies = domain.DefaultMatchStrategies()
	}
	return &Classifier{strategies: strategies}
}

func (c *Classifier) Classify(scan ports.ScanResult, state ports.StateResult) Classification {
	var out Classification
	matchedEntries := make(map[int]bool, len(state.Entries))

	for _, res := range scan.Resources {
		idx, strategy := c.matchEntry(res, state.Entries)
		if idx < 0 {
			out.Conflicts = append(out.Conflicts, domain.Conflict{
				Resource:     res,
				InState:      false,
				ExpectedName: domain.SafeName(res.Name),
				Type:         domain.ConflictExistsNotInState,
			})
			continue
		}
		matchedEntries[idx] = true
		if strategy != c.strategies[0] {
			out.Ambiguous = append(out.Ambiguous, domain.AmbiguousMatch{
				Resource:     res,
				StateAddress: state.Entries[idx].Address,
				Strategy:     strategy,
			})
		}
	}

	for i, entry := range state.Entries {
		if matchedEntries[i] {
			continue
		}
		if !isManagedEntry(entry) {
			continue
		}
		name := entry.RecoveredName()
		if name == "" {
			continue
		}
		out.Conflicts = append(out.Conflicts, domain.Conflict{
			Resource: domain.CloudResource{
				Kind: entry.Kind,
				Name: name,
			},
			InState:      true,
			StateAddress: entry.Address,
			ExpectedName: name,
			Type:         domain.ConflictOrphaned,
		})
	}

	sortConflicts(out.Conflicts)
	return out
}

// matchEntry tries each configured strategy in order against every entry and
// returns the first hit. Entries of a different known kind never match: a
// bucket and a network sharing a name is not a match.
func (c *Classifier) matchEntry(res domain.CloudResource, entries []domain.StateEntry) (int, domain.MatchStrategy) {
	for _, strategy := range c.strategies {
		for i, entry := range entries {
			if entry.Kind != "" && entry.Kind != res.Kind {
				continue
			}
			if matchesBy(strategy, res, entry) {
				return i, strategy
			}
		}
	}
	return -1, ""
}

func matchesBy(strategy domain.MatchStrategy, res domain.CloudResource, entry domain.StateEntry) bool {
	switch strategy {
	case domain.MatchExact:
		// Strictly the attributes-derived name. Entries whose attributes
		// carry no name are left to the state-name fallback, so label-only
		// matches always surface as ambiguous.
		name := entry.AttributeName()
		return name != "" && res.Name == name
	case domain.MatchStateName:
		return res.Name == entry.Name
	case domain.MatchNormalized:
		return domain.SafeName(res.Name) == entry.Name
	default:
		return false
	}
}

// isManagedEntry distinguishes managed resources from data lookups and bare
// labels. Managed addresses are "type.name", optionally under a module path;
// data lookups are excluded even when module-nested.
func isManagedEntry(entry domain.StateEntry) bool {
	return strings.Contains(entry.Address, ".") && !entry.IsDataSource()
}

// sortConflicts fixes the output order so classification is independent of
// input ordering: missing-from-state first, then by kind, then by name.
func sortConflicts(conflicts []domain.Conflict) {
	sort.SliceStable(conflicts, func(i, j int) bool {
		if conflicts[i].Type != conflicts[j].Type {
			return conflicts[i].Type == domain.ConflictExistsNotInState
		}
		if conflicts[i].Resource.Kind != conflicts[j].Resource.Kind {
			return conflicts[i].Resource.Kind < conflicts[j].Resource.Kind
		}
		return conflicts[i].Resource.Name < conflicts[j].Resource.Name
	})
}
