package tfshow

import (
	"context"
	"testing"

	tfjson "github.com/hashicorp/terraform-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftline/driftline/internal/core/domain"
	"github.com/driftline/driftline/internal/log"
)

type fakeShower struct {
	state *tfjson.State
	err   error
}

func (f *fakeShower) Show(context.Context) (*tfjson.State, error) {
	return f.state, f.err
}

func TestReadEmptyBackendIsNotFound(t *testing.T) {
	reader, err := NewReader(&fakeShower{state: &tfjson.State{}}, log.NewNop())
	require.NoError(t, err)

	result, err := reader.Read(context.Background(), ".")
	require.NoError(t, err)
	assert.False(t, result.Found)
}

func TestReadShowFailureIsAParseError(t *testing.T) {
	reader, err := NewReader(&fakeShower{err: assert.AnError}, log.NewNop())
	require.NoError(t, err)

	result, err := reader.Read(context.Background(), ".")
	require.NoError(t, err, "show failures degrade like malformed files")
	assert.True(t, result.Found)
	assert.Error(t, result.ParseError)
}

func TestReadWalksChildModules(t *testing.T) {
	state := &tfjson.State{
		Values: &tfjson.StateValues{
			RootModule: &tfjson.StateModule{
				Resources: []*tfjson.StateResource{
					{
						Address:         "google_storage_bucket.uploads",
						Type:            "google_storage_bucket",
						Name:            "uploads",
						AttributeValues: map[string]any{"name": "acme-uploads"},
					},
				},
				ChildModules: []*tfjson.StateModule{
					{
						Resources: []*tfjson.StateResource{
							{
								Address: "module.lb.google_compute_url_map.lb",
								Type:    "google_compute_url_map",
								Name:    "lb",
							},
						},
					},
				},
			},
		},
	}

	reader, err := NewReader(&fakeShower{state: state}, log.NewNop())
	require.NoError(t, err)

	result, err := reader.Read(context.Background(), ".")
	require.NoError(t, err)
	require.Len(t, result.Entries, 2)
	assert.Equal(t, domain.KindBucket, result.Entries[0].Kind)
	assert.Equal(t, "acme-uploads", result.Entries[0].RecoveredName())
	assert.Equal(t, "module.lb.google_compute_url_map.lb", result.Entries[1].Address)
}

func TestNewReaderRequiresRunner(t *testing.T) {
	_, err := NewReader(nil, log.NewNop())
	assert.Error(t, err)
}
