package service

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftline/driftline/internal/core/domain"
	"github.com/driftline/driftline/internal/core/ports"
)

func cloudRes(kind domain.ResourceKind, name string) domain.CloudResource {
	return domain.CloudResource{Kind: kind, Name: name}
}

func stateEntry(address string, kind domain.ResourceKind, label string, attrs map[string]any) domain.StateEntry {
	return domain.StateEntry{Address: address, Kind: kind, Name: label, Attributes: attrs}
}

func TestClassifyEmptyStateAllResourcesConflict(t *testing.T) {
	c := NewClassifier(nil)

	scan := ports.ScanResult{Resources: []domain.CloudResource{
		cloudRes(domain.KindBucket, "acme-uploads"),
		cloudRes(domain.KindNetwork, "acme-net"),
	}}
	out := c.Classify(scan, ports.StateResult{Found: false})

	require.Len(t, out.Conflicts, 2)
	for _, conflict := range out.Conflicts {
		assert.Equal(t, domain.ConflictExistsNotInState, conflict.Type)
		assert.False(t, conflict.InState)
	}
	assert.Empty(t, out.Ambiguous)
}

func TestClassifyOrphanedEntry(t *testing.T) {
	c := NewClassifier(nil)

	state := ports.StateResult{Found: true, Entries: []domain.StateEntry{
		stateEntry("google_storage_bucket.old", domain.KindBucket, "old",
			map[string]any{"name": "acme-old-bucket"}),
	}}
	out := c.Classify(ports.ScanResult{}, state)

	require.Len(t, out.Conflicts, 1)
	conflict := out.Conflicts[0]
	assert.Equal(t, domain.ConflictOrphaned, conflict.Type)
	assert.True(t, conflict.InState)
	assert.Equal(t, "google_storage_bucket.old", conflict.StateAddress)
	assert.Equal(t, "acme-old-bucket", conflict.Resource.Name)
}

func TestClassifyMatchedResourceIsNotAConflict(t *testing.T) {
	c := NewClassifier(nil)

	scan := ports.ScanResult{Resources: []domain.CloudResource{
		cloudRes(domain.KindBucket, "acme-uploads"),
	}}
	state := ports.StateResult{Found: true, Entries: []domain.StateEntry{
		stateEntry("google_storage_bucket.uploads", domain.KindBucket, "uploads",
			map[string]any{"name": "acme-uploads"}),
	}}

	out := c.Classify(scan, state)
	assert.Empty(t, out.Conflicts)
	assert.Empty(t, out.Ambiguous)
}

func TestClassifyFallbackStrategiesAreFlaggedAmbiguous(t *testing.T) {
	c := NewClassifier(nil)

	tests := []struct {
		name     string
		resource domain.CloudResource
		entry    domain.StateEntry
		strategy domain.MatchStrategy
	}{
		{
			name:     "state label match",
			resource: cloudRes(domain.KindBucket, "acme-uploads"),
			entry:    stateEntry("google_storage_bucket.acme-uploads", domain.KindBucket, "acme-uploads", nil),
			strategy: domain.MatchStateName,
		},
		{
			name:     "normalized match",
			resource: cloudRes(domain.KindBucket, "acme.uploads"),
			entry:    stateEntry("google_storage_bucket.acme-uploads", domain.KindBucket, "acme-uploads", nil),
			strategy: domain.MatchNormalized,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := c.Classify(
				ports.ScanResult{Resources: []domain.CloudResource{tc.resource}},
				ports.StateResult{Found: true, Entries: []domain.StateEntry{tc.entry}},
			)
			assert.Empty(t, out.Conflicts)
			require.Len(t, out.Ambiguous, 1)
			assert.Equal(t, tc.strategy, out.Ambiguous[0].Strategy)
			assert.Equal(t, tc.entry.Address, out.Ambiguous[0].StateAddress)
		})
	}
}

func TestClassifyKindMismatchNeverMatches(t *testing.T) {
	c := NewClassifier(nil)

	scan := ports.ScanResult{Resources: []domain.CloudResource{
		cloudRes(domain.KindBucket, "acme-shared"),
	}}
	state := ports.StateResult{Found: true, Entries: []domain.StateEntry{
		stateEntry("google_compute_network.shared", domain.KindNetwork, "shared",
			map[string]any{"name": "acme-shared"}),
	}}

	out := c.Classify(scan, state)
	// The bucket is unmanaged and the network entry is orphaned: a name
	// collision across kinds is two conflicts, not a match.
	require.Len(t, out.Conflicts, 2)
	assert.Equal(t, domain.ConflictExistsNotInState, out.Conflicts[0].Type)
	assert.Equal(t, domain.ConflictOrphaned, out.Conflicts[1].Type)
}

func TestClassifySkipsDataLookupsAndUnnamedEntries(t *testing.T) {
	c := NewClassifier(nil)

	state := ports.StateResult{Found: true, Entries: []domain.StateEntry{
		stateEntry("data.google_project.current", domain.KindNetwork, "current",
			map[string]any{"name": "acme-project"}),
		stateEntry("google_compute_network.ghost", domain.KindNetwork, "", nil),
	}}

	out := c.Classify(ports.ScanResult{}, state)
	assert.Empty(t, out.Conflicts)
}

func TestClassifySkipsModuleNestedDataLookups(t *testing.T) {
	c := NewClassifier(nil)

	state := ports.StateResult{Found: true, Entries: []domain.StateEntry{
		// A data lookup inside a module keeps its module path prefix, so
		// the address does not start with "data.".
		stateEntry("module.app.data.google_compute_network.shared", domain.KindNetwork, "shared",
			map[string]any{"name": "acme-shared"}),
		// A managed resource whose label happens to be "data" still
		// participates in orphan detection.
		stateEntry("google_storage_bucket.data", domain.KindBucket, "data",
			map[string]any{"name": "acme-data"}),
	}}

	out := c.Classify(ports.ScanResult{}, state)
	require.Len(t, out.Conflicts, 1)
	assert.Equal(t, domain.ConflictOrphaned, out.Conflicts[0].Type)
	assert.Equal(t, "google_storage_bucket.data", out.Conflicts[0].StateAddress)
}

func TestClassifyExactStrategyRequiresAttributeName(t *testing.T) {
	// With only the exact strategy configured, a label-only entry is not a
	// match: the cloud resource is unmanaged and the entry is orphaned.
	c := NewClassifier([]domain.MatchStrategy{domain.MatchExact})

	scan := ports.ScanResult{Resources: []domain.CloudResource{
		cloudRes(domain.KindBucket, "acme-uploads"),
	}}
	state := ports.StateResult{Found: true, Entries: []domain.StateEntry{
		stateEntry("google_storage_bucket.acme-uploads", domain.KindBucket, "acme-uploads", nil),
	}}

	out := c.Classify(scan, state)
	require.Len(t, out.Conflicts, 2)
	assert.Equal(t, domain.ConflictExistsNotInState, out.Conflicts[0].Type)
	assert.Equal(t, domain.ConflictOrphaned, out.Conflicts[1].Type)
	assert.Empty(t, out.Ambiguous)
}

func TestClassifyIdempotentAndOrderIndependent(t *testing.T) {
	c := NewClassifier(nil)

	resources := []domain.CloudResource{
		cloudRes(domain.KindForwardingRule, "acme-https"),
		cloudRes(domain.KindBucket, "acme-uploads"),
		cloudRes(domain.KindNetwork, "acme-net"),
	}
	entries := []domain.StateEntry{
		stateEntry("google_compute_url_map.lb", domain.KindURLMap, "lb",
			map[string]any{"name": "acme-lb"}),
	}

	first := c.Classify(
		ports.ScanResult{Resources: resources},
		ports.StateResult{Found: true, Entries: entries},
	)
	second := c.Classify(
		ports.ScanResult{Resources: resources},
		ports.StateResult{Found: true, Entries: entries},
	)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("classification is not idempotent (-first +second):\n%s", diff)
	}

	reversed := []domain.CloudResource{resources[2], resources[1], resources[0]}
	shuffled := c.Classify(
		ports.ScanResult{Resources: reversed},
		ports.StateResult{Found: true, Entries: entries},
	)
	if diff := cmp.Diff(first.Conflicts, shuffled.Conflicts); diff != "" {
		t.Fatalf("conflict order depends on input order (-first +shuffled):\n%s", diff)
	}
}

func TestClassifyMalformedStateTreatedAsEmpty(t *testing.T) {
	c := NewClassifier(nil)

	scan := ports.ScanResult{Resources: []domain.CloudResource{
		cloudRes(domain.KindBucket, "acme-uploads"),
	}}
	state := ports.StateResult{Found: true, ParseError: assert.AnError}

	out := c.Classify(scan, state)
	require.Len(t, out.Conflicts, 1)
	assert.Equal(t, domain.ConflictExistsNotInState, out.Conflicts[0].Type)
}
