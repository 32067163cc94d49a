package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftline/driftline/internal/core/domain"
	"github.com/driftline/driftline/internal/errors"
)

func TestPlanPassesThroughSimpleActions(t *testing.T) {
	p := NewPlanner()

	for _, action := range []domain.ResolutionAction{
		domain.ActionImportAll, domain.ActionDeleteAll,
		domain.ActionListDetails, domain.ActionCancel,
	} {
		plan, err := p.Plan(nil, domain.ResolutionChoice{Action: action})
		require.NoError(t, err)
		assert.Equal(t, action, plan.Action)
	}
}

func TestPlanValidatesPrefix(t *testing.T) {
	p := NewPlanner()

	tests := []struct {
		prefix string
		ok     bool
	}{
		{"acme-v2", true},
		{"a", true},
		{"acme2", true},
		{"", false},
		{"Acme", false},
		{"2acme", false},
		{"acme-", false},
		{"acme_v2", false},
	}

	for _, tc := range tests {
		_, err := p.Plan(nil, domain.ResolutionChoice{
			Action:    domain.ActionChangePrefix,
			NewPrefix: tc.prefix,
		})
		if tc.ok {
			assert.NoError(t, err, "prefix %q", tc.prefix)
		} else {
			assert.True(t, errors.Is(err, errors.CodeInvalidPrefix), "prefix %q", tc.prefix)
		}
	}
}

func TestPlanRejectsUnknownAction(t *testing.T) {
	p := NewPlanner()

	_, err := p.Plan(nil, domain.ResolutionChoice{Action: "nuke_everything"})
	assert.True(t, errors.Is(err, errors.CodeInvalidChoice))
}
