package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftline/driftline/internal/core/domain"
)

func declared(kind domain.ResourceKind, name string) domain.DeclaredResource {
	return domain.DeclaredResource{Kind: kind, Name: name}
}

func inNetwork(kind domain.ResourceKind, name, network string) domain.DeclaredResource {
	return domain.DeclaredResource{Kind: kind, Name: name, Network: network}
}

func codesOf(issues []Issue) []IssueCode {
	codes := make([]IssueCode, 0, len(issues))
	for _, issue := range issues {
		codes = append(codes, issue.Code)
	}
	return codes
}

func TestValidateCleanSet(t *testing.T) {
	result := Validate([]domain.DeclaredResource{
		declared(domain.KindBucket, "acme-uploads"),
		declared(domain.KindNetwork, "acme-net"),
		inNetwork(domain.KindFunction, "acme-resize", "acme-net"),
	})

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestValidateBucketLengthBounds(t *testing.T) {
	tooShort := Validate([]domain.DeclaredResource{declared(domain.KindBucket, "ab")})
	require.Len(t, tooShort.Errors, 1)
	assert.Equal(t, CodeLengthExceeded, tooShort.Errors[0].Code)

	tooLong := Validate([]domain.DeclaredResource{
		declared(domain.KindBucket, strings.Repeat("a", 64)),
	})
	require.Len(t, tooLong.Errors, 1)
	assert.Equal(t, CodeLengthExceeded, tooLong.Errors[0].Code)

	atBounds := Validate([]domain.DeclaredResource{
		declared(domain.KindBucket, "a-b"),
		declared(domain.KindBucket, strings.Repeat("b", 63)),
	})
	assert.True(t, atBounds.Valid)
}

func TestValidateCharacterPatterns(t *testing.T) {
	tests := []struct {
		kind domain.ResourceKind
		name string
		ok   bool
	}{
		{domain.KindBucket, "acme.uploads_v2", true}, // buckets allow dots and underscores
		{domain.KindBucket, "Acme-Uploads", false},
		{domain.KindBucket, "-acme", false},
		{domain.KindNetwork, "acme-net", true},
		{domain.KindNetwork, "acme_net", false}, // compute-style forbids underscores
		{domain.KindNetwork, "9acme", false},
		{domain.KindNetwork, "acme-", false},
	}
	for _, tc := range tests {
		result := Validate([]domain.DeclaredResource{declared(tc.kind, tc.name)})
		if tc.ok {
			assert.True(t, result.Valid, "%s %q should pass", tc.kind, tc.name)
		} else {
			require.False(t, result.Valid, "%s %q should fail", tc.kind, tc.name)
			assert.Contains(t, codesOf(result.Errors), CodeInvalidCharacters)
		}
	}
}

func TestValidateReservedNames(t *testing.T) {
	for _, name := range []string{"default", "internal", "metadata"} {
		result := Validate([]domain.DeclaredResource{declared(domain.KindNetwork, name)})
		require.False(t, result.Valid, "name %q", name)
		assert.Equal(t, CodeReservedName, result.Errors[0].Code)
	}
}

func TestValidateReservedBucketPrefix(t *testing.T) {
	result := Validate([]domain.DeclaredResource{declared(domain.KindBucket, "goog-acme-data")})
	require.False(t, result.Valid)
	assert.Contains(t, codesOf(result.Errors), CodeReservedPrefix)

	embedded := Validate([]domain.DeclaredResource{declared(domain.KindBucket, "acme-google-data")})
	require.False(t, embedded.Valid)
	assert.Contains(t, codesOf(embedded.Errors), CodeReservedPrefix)
}

func TestValidateShortUnscopedBucketWarns(t *testing.T) {
	result := Validate([]domain.DeclaredResource{declared(domain.KindBucket, "uploads")})
	assert.True(t, result.Valid, "short names warn, they do not block")
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, CodeShortName, result.Warnings[0].Code)

	scoped := Validate([]domain.DeclaredResource{declared(domain.KindBucket, "a-b")})
	assert.Empty(t, scoped.Warnings, "hyphenated names are considered scoped")
}

func TestValidateDuplicatesWithinScope(t *testing.T) {
	result := Validate([]domain.DeclaredResource{
		inNetwork(domain.KindFunction, "acme-api", "acme-net"),
		inNetwork(domain.KindFunction, "acme-api", "acme-net"),
	})
	require.False(t, result.Valid)
	assert.Contains(t, codesOf(result.Errors), CodeDuplicateName)
}

func TestValidateSameNameDifferentNetworksIsFine(t *testing.T) {
	result := Validate([]domain.DeclaredResource{
		inNetwork(domain.KindFunction, "acme-api", "net-a"),
		inNetwork(domain.KindFunction, "acme-api", "net-b"),
	})
	assert.True(t, result.Valid)
}

func TestValidateGlobalKindsShareOneScope(t *testing.T) {
	result := Validate([]domain.DeclaredResource{
		inNetwork(domain.KindBucket, "acme-data", "net-a"),
		inNetwork(domain.KindBucket, "acme-data", "net-b"),
	})
	require.False(t, result.Valid, "buckets are globally scoped regardless of network")
	assert.Contains(t, codesOf(result.Errors), CodeDuplicateName)
}

func TestValidateFunctionContainerCollision(t *testing.T) {
	result := Validate([]domain.DeclaredResource{
		inNetwork(domain.KindFunction, "acme-worker", "acme-net"),
		inNetwork(domain.KindContainer, "acme-worker", "acme-net"),
	})
	require.False(t, result.Valid)
	assert.Contains(t, codesOf(result.Errors), CodeServiceCollision)

	separate := Validate([]domain.DeclaredResource{
		inNetwork(domain.KindFunction, "acme-worker", "net-a"),
		inNetwork(domain.KindContainer, "acme-worker", "net-b"),
	})
	assert.True(t, separate.Valid, "different networks do not collide")
}
