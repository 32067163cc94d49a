package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftline/driftline/internal/core/domain"
	"github.com/driftline/driftline/internal/errors"
)

func writeHCL(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "project.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadProjectHCL(t *testing.T) {
	path := writeHCL(t, `
resource "bucket" "uploads" {
  name = "${project.name}-uploads"
}

resource "function" "resize" {
  network = "${project.name}-net"
}

resource "network" "net" {
  name = "acme-net"
}
`)

	declared, err := LoadProjectHCL(path, "acme")
	require.NoError(t, err)
	require.Len(t, declared, 3)

	assert.Equal(t, domain.DeclaredResource{Kind: domain.KindBucket, Name: "acme-uploads"}, declared[0])
	// No name attribute: the block label is the name.
	assert.Equal(t, domain.DeclaredResource{Kind: domain.KindFunction, Name: "resize", Network: "acme-net"}, declared[1])
	assert.Equal(t, domain.DeclaredResource{Kind: domain.KindNetwork, Name: "acme-net"}, declared[2])
}

func TestLoadProjectHCLUnknownKind(t *testing.T) {
	path := writeHCL(t, `
resource "spaceship" "enterprise" {}
`)

	_, err := LoadProjectHCL(path, "acme")
	assert.True(t, errors.Is(err, errors.CodeConfigParseError))
}

func TestLoadProjectHCLMissingFile(t *testing.T) {
	_, err := LoadProjectHCL(filepath.Join(t.TempDir(), "absent.hcl"), "acme")
	assert.True(t, errors.Is(err, errors.CodeConfigReadError))
}

func TestLoadProjectHCLBadSyntax(t *testing.T) {
	path := writeHCL(t, `resource "bucket" {`)

	_, err := LoadProjectHCL(path, "acme")
	assert.True(t, errors.Is(err, errors.CodeConfigParseError))
}
