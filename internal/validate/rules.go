package validate

import (
	"regexp"

	"github.com/driftline/driftline/internal/core/domain"
)

type IssueCode string

const (
	CodeLengthExceeded    IssueCode = "length_exceeded"
	CodeInvalidCharacters IssueCode = "invalid_characters"
	CodeReservedName      IssueCode = "reserved_name"
	CodeReservedPrefix    IssueCode = "reserved_prefix"
	CodeDuplicateName     IssueCode = "duplicate_name"
	CodeServiceCollision  IssueCode = "service_name_collision"
	CodeShortName         IssueCode = "short_name"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// kindRule is the syntactic rule for one resource kind: length bounds plus
// allowed-character pattern.
type kindRule struct {
	MinLength int
	MaxLength int
	Pattern   *regexp.Regexp
	// PatternHint is shown to the operator when the pattern fails.
	PatternHint string
}

var (
	// Buckets allow a relaxed charset including dots and underscores, and
	// must begin and end with a letter or digit.
	bucketPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*[a-z0-9]$`)
	// Compute-style names must start with a lowercase letter and cannot end
	// with a hyphen.
	computePattern = regexp.MustCompile(`^[a-z]([-a-z0-9]*[a-z0-9])?$`)
)

var computeStyleRule = kindRule{
	MinLength:   1,
	MaxLength:   63,
	Pattern:     computePattern,
	PatternHint: "lowercase letters, digits and hyphens, starting with a letter",
}

var kindRules = map[domain.ResourceKind]kindRule{
	domain.KindBucket: {
		MinLength:   3,
		MaxLength:   63,
		Pattern:     bucketPattern,
		PatternHint: "lowercase letters, digits, dots, underscores and hyphens",
	},
}

// ruleFor falls back to the compute-style rule for every kind without an
// explicit entry.
func ruleFor(kind domain.ResourceKind) kindRule {
	if r, ok := kindRules[kind]; ok {
		return r
	}
	return computeStyleRule
}

// reservedNames is rejected case-insensitively for every kind.
var reservedNames = map[string]struct{}{
	"default":  {},
	"goog":     {},
	"google":   {},
	"admin":    {},
	"internal": {},
	"metadata": {},
}

// reservedBucketPrefixes may not start a bucket name; bucket names are
// globally unique and these prefixes are claimed by the platform.
var reservedBucketPrefixes = []string{"goog"}

// shortBucketNameLimit: bucket names below this length without any scoping
// segment are likely to collide globally; flagged as a warning only.
const shortBucketNameLimit = 8

// globalScopeKinds share one project-wide naming scope. Everything else is
// scoped per network.
var globalScopeKinds = map[domain.ResourceKind]struct{}{
	domain.KindBucket:     {},
	domain.KindTopic:      {},
	domain.KindSecret:     {},
	domain.KindRepository: {},
	domain.KindNetwork:    {},
}

func isGlobalScope(kind domain.ResourceKind) bool {
	_, ok := globalScopeKinds[kind]
	return ok
}

// computeServiceKinds map onto the same underlying compute-service
// identifier: a function and a container with the same name collide even
// though they are different declared kinds.
var computeServiceKinds = map[domain.ResourceKind]struct{}{
	domain.KindFunction:  {},
	domain.KindContainer: {},
}

func isComputeService(kind domain.ResourceKind) bool {
	_, ok := computeServiceKinds[kind]
	return ok
}
