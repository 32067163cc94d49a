package prompt

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftline/driftline/internal/core/domain"
)

func choose(t *testing.T, input string) (domain.ResolutionChoice, error) {
	t.Helper()
	var out bytes.Buffer
	p := NewWithStreams(strings.NewReader(input), &out)
	return p.Choose(context.Background(), nil)
}

func TestChooseByNumber(t *testing.T) {
	choice, err := choose(t, "1\n")
	require.NoError(t, err)
	assert.Equal(t, domain.ActionImportAll, choice.Action)
}

func TestChooseByName(t *testing.T) {
	choice, err := choose(t, "delete_all\n")
	require.NoError(t, err)
	assert.Equal(t, domain.ActionDeleteAll, choice.Action)
}

func TestChooseChangePrefixAsksForPrefix(t *testing.T) {
	choice, err := choose(t, "change_prefix\nacme-v2\n")
	require.NoError(t, err)
	assert.Equal(t, domain.ActionChangePrefix, choice.Action)
	assert.Equal(t, "acme-v2", choice.NewPrefix)
}

func TestChooseRetriesOnGarbage(t *testing.T) {
	choice, err := choose(t, "wat\n5\n")
	require.NoError(t, err)
	assert.Equal(t, domain.ActionCancel, choice.Action)
}

func TestChooseClosedInputFails(t *testing.T) {
	_, err := choose(t, "")
	assert.Error(t, err)
}

func TestChooseIsCaseInsensitive(t *testing.T) {
	choice, err := choose(t, "IMPORT_ALL\n")
	require.NoError(t, err)
	assert.Equal(t, domain.ActionImportAll, choice.Action)
}
