package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshFlagWiring(t *testing.T) {
	flags := refreshCmd.Flags()

	yes := flags.Lookup("yes")
	require.NotNil(t, yes)
	// import_all does not prune orphaned entries; the help must not claim
	// otherwise.
	assert.Contains(t, yes.Usage, "import_all")
	assert.NotContains(t, yes.Usage, "prune")

	// change_prefix is usable non-interactively: the prefix the planner
	// suggests passing has a real flag behind it.
	require.NotNil(t, flags.Lookup("prefix"))
	require.NotNil(t, flags.Lookup("action"))
	require.NotNil(t, flags.Lookup("dry-run"))
}
