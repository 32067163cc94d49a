package tfstate

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftline/driftline/internal/core/domain"
	"github.com/driftline/driftline/internal/log"
)

const sampleState = `{
  "version": 4,
  "terraform_version": "1.9.8",
  "serial": 7,
  "lineage": "1f2e3d4c",
  "resources": [
    {
      "mode": "managed",
      "type": "google_storage_bucket",
      "name": "uploads",
      "provider": "provider[\"registry.terraform.io/hashicorp/google\"]",
      "instances": [
        {"schema_version": 0, "attributes": {"name": "acme-uploads", "location": "US"}}
      ]
    },
    {
      "mode": "data",
      "type": "google_compute_network",
      "name": "shared",
      "provider": "provider[\"registry.terraform.io/hashicorp/google\"]",
      "instances": [
        {"schema_version": 0, "attributes": {"name": "acme-shared"}}
      ]
    }
  ]
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadAbsentStateIsNotAnError(t *testing.T) {
	reader := NewReader(Config{}, log.NewNop())

	result, err := reader.Read(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.False(t, result.Found)
	assert.Nil(t, result.Entries)
	assert.NoError(t, result.ParseError)
}

func TestReadEmptyStateIsFoundWithZeroEntries(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, stateFileName, "")
	reader := NewReader(Config{}, log.NewNop())

	result, err := reader.Read(context.Background(), dir)
	require.NoError(t, err)
	assert.True(t, result.Found)
	assert.NotNil(t, result.Entries)
	assert.Empty(t, result.Entries)
	assert.NoError(t, result.ParseError)
}

func TestReadMalformedStateReportsParseError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, stateFileName, `{"version": 4, "resources": [`)
	reader := NewReader(Config{}, log.NewNop())

	result, err := reader.Read(context.Background(), dir)
	require.NoError(t, err, "a malformed file must not abort the run")
	assert.True(t, result.Found)
	assert.Error(t, result.ParseError)
	assert.Nil(t, result.Entries)
}

func TestReadParsesEntries(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, stateFileName, sampleState)
	reader := NewReader(Config{}, log.NewNop())

	result, err := reader.Read(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, result.Entries, 2)

	bucket := result.Entries[0]
	assert.Equal(t, "google_storage_bucket.uploads", bucket.Address)
	assert.Equal(t, domain.KindBucket, bucket.Kind)
	assert.Equal(t, "acme-uploads", bucket.RecoveredName())
	assert.False(t, bucket.IsDataSource())

	data := result.Entries[1]
	assert.Equal(t, "data.google_compute_network.shared", data.Address)
	assert.Equal(t, "data", data.Mode)
	assert.True(t, data.IsDataSource())
}

func TestReadPathOverrideSkipsDiscovery(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "custom.tfstate", sampleState)
	reader := NewReader(Config{Path: path}, log.NewNop())

	result, err := reader.Read(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.True(t, result.Found)
	assert.Equal(t, path, result.Path)
}

func TestReadRereadsOnEveryCall(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, stateFileName, sampleState)
	reader := NewReader(Config{}, log.NewNop())

	first, err := reader.Read(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, first.Entries, 2)

	writeFile(t, dir, stateFileName, `{"version": 4, "resources": []}`)
	second, err := reader.Read(context.Background(), dir)
	require.NoError(t, err)
	assert.Empty(t, second.Entries)
}

func TestLocateWalksUpToAncestors(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, stateFileName, sampleState)
	nested := filepath.Join(root, "envs", "prod")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	assert.Equal(t, filepath.Join(root, stateFileName), Locate(nested))
	assert.Equal(t, "", Locate(t.TempDir()))
}

func TestParseStateRejectsOldVersions(t *testing.T) {
	_, err := parseState([]byte(`{"version": 2, "resources": []}`))
	assert.Error(t, err)
}
