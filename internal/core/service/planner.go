package service

import (
	"fmt"
	"regexp"

	"github.com/driftline/driftline/internal/core/domain"
	"github.com/driftline/driftline/internal/errors"
)

// prefixPattern is the same character rule resource names follow: lowercase
// letter first, then lowercase letters, digits and hyphens, no trailing hyphen.
var prefixPattern = regexp.MustCompile(`^[a-z]([-a-z0-9]*[a-z0-9])?$`)

// Planner resolves operator intent into an executable plan. It mutates
// nothing, so a rejected choice can be retried without consequence.
type Planner struct{}

func NewPlanner() *Planner {
	return &Planner{}
}

func (p *Planner) Plan(conflicts []domain.Conflict, choice domain.ResolutionChoice) (domain.ResolutionChoice, error) {
	switch choice.Action {
	case domain.ActionImportAll, domain.ActionDeleteAll, domain.ActionListDetails, domain.ActionCancel:
		return choice, nil
	case domain.ActionChangePrefix:
		if choice.NewPrefix == "" {
			return domain.ResolutionChoice{}, errors.NewUserFacing(errors.CodeInvalidPrefix,
				"change_prefix requires a new prefix", "Provide a prefix, e.g. --prefix my-project-v2.")
		}
		if !prefixPattern.MatchString(choice.NewPrefix) {
			return domain.ResolutionChoice{}, errors.NewUserFacing(errors.CodeInvalidPrefix,
				fmt.Sprintf("prefix %q is not a valid resource name prefix", choice.NewPrefix),
				"Use lowercase letters, digits and hyphens, starting with a letter.")
		}
		return choice, nil
	default:
		return domain.ResolutionChoice{}, errors.New(errors.CodeInvalidChoice,
			fmt.Sprintf("unknown resolution action %q", choice.Action))
	}
}
