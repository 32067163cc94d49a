// Package validate checks a proposed resource set from the declarative
// config against per-kind naming rules and cross-kind collisions. It runs
// before deployment and makes no cloud calls.
package validate

import (
	"fmt"
	"strings"

	"github.com/driftline/driftline/internal/core/domain"
)

// Issue is one detected naming problem. Errors block deployment; warnings
// are informational.
type Issue struct {
	Kind     domain.ResourceKind
	Name     string
	Code     IssueCode
	Severity Severity
	Message  string
}

type Result struct {
	Valid    bool
	Errors   []Issue
	Warnings []Issue
}

// Validate checks every declared resource. Overall Valid is true iff zero
// errors were found.
func Validate(resources []domain.DeclaredResource) Result {
	var result Result

	for _, res := range resources {
		issues := validateName(res)
		for _, issue := range issues {
			result.add(issue)
		}
	}

	for _, issue := range detectDuplicates(resources) {
		result.add(issue)
	}
	for _, issue := range detectServiceCollisions(resources) {
		result.add(issue)
	}

	result.Valid = len(result.Errors) == 0
	return result
}

func (r *Result) add(issue Issue) {
	if issue.Severity == SeverityWarning {
		r.Warnings = append(r.Warnings, issue)
		return
	}
	r.Errors = append(r.Errors, issue)
}

// validateName applies, in order: length bounds, character pattern, reserved
// names, then kind-specific extras.
func validateName(res domain.DeclaredResource) []Issue {
	rule := ruleFor(res.Kind)
	var issues []Issue

	if len(res.Name) < rule.MinLength || len(res.Name) > rule.MaxLength {
		issues = append(issues, Issue{
			Kind: res.Kind, Name: res.Name,
			Code: CodeLengthExceeded, Severity: SeverityError,
			Message: fmt.Sprintf("%s name %q must be between %d and %d characters",
				res.Kind, res.Name, rule.MinLength, rule.MaxLength),
		})
		return issues
	}

	if !rule.Pattern.MatchString(res.Name) {
		issues = append(issues, Issue{
			Kind: res.Kind, Name: res.Name,
			Code: CodeInvalidCharacters, Severity: SeverityError,
			Message: fmt.Sprintf("%s name %q is invalid: use %s", res.Kind, res.Name, rule.PatternHint),
		})
		return issues
	}

	if _, reserved := reservedNames[strings.ToLower(res.Name)]; reserved {
		issues = append(issues, Issue{
			Kind: res.Kind, Name: res.Name,
			Code: CodeReservedName, Severity: SeverityError,
			Message: fmt.Sprintf("%q is a reserved name", res.Name),
		})
		return issues
	}

	if res.Kind == domain.KindBucket {
		issues = append(issues, validateBucketExtras(res)...)
	}

	return issues
}

func validateBucketExtras(res domain.DeclaredResource) []Issue {
	var issues []Issue

	lower := strings.ToLower(res.Name)
	for _, prefix := range reservedBucketPrefixes {
		if strings.HasPrefix(lower, prefix) {
			issues = append(issues, Issue{
				Kind: res.Kind, Name: res.Name,
				Code: CodeReservedPrefix, Severity: SeverityError,
				Message: fmt.Sprintf("bucket name %q may not start with reserved prefix %q", res.Name, prefix),
			})
		}
	}
	if strings.Contains(lower, "google") {
		issues = append(issues, Issue{
			Kind: res.Kind, Name: res.Name,
			Code: CodeReservedPrefix, Severity: SeverityError,
			Message: fmt.Sprintf("bucket name %q may not contain %q", res.Name, "google"),
		})
	}

	if len(res.Name) < shortBucketNameLimit && !strings.Contains(res.Name, "-") {
		issues = append(issues, Issue{
			Kind: res.Kind, Name: res.Name,
			Code: CodeShortName, Severity: SeverityWarning,
			Message: fmt.Sprintf("bucket name %q is short and unscoped; it is likely already taken globally", res.Name),
		})
	}

	return issues
}

// scopeKey builds the naming scope a resource competes in: project-wide for
// global kinds, per-network for everything else.
func scopeKey(res domain.DeclaredResource) string {
	if isGlobalScope(res.Kind) {
		return "global"
	}
	network := res.Network
	if network == "" {
		network = "default"
	}
	return "network:" + network
}

func detectDuplicates(resources []domain.DeclaredResource) []Issue {
	var issues []Issue
	seen := make(map[string]int)

	for _, res := range resources {
		key := scopeKey(res) + "|" + string(res.Kind) + "|" + res.Name
		seen[key]++
		if seen[key] == 2 {
			issues = append(issues, Issue{
				Kind: res.Kind, Name: res.Name,
				Code: CodeDuplicateName, Severity: SeverityError,
				Message: fmt.Sprintf("duplicate %s name %q within the same scope", res.Kind, res.Name),
			})
		}
	}

	return issues
}

// detectServiceCollisions finds a function and a container sharing one name
// in the same network: both map to the same compute-service identifier.
func detectServiceCollisions(resources []domain.DeclaredResource) []Issue {
	var issues []Issue
	kindsByService := make(map[string]map[domain.ResourceKind]struct{})

	for _, res := range resources {
		if !isComputeService(res.Kind) {
			continue
		}
		key := scopeKey(res) + "|" + res.Name
		if kindsByService[key] == nil {
			kindsByService[key] = make(map[domain.ResourceKind]struct{})
		}
		kindsByService[key][res.Kind] = struct{}{}
	}

	for _, res := range resources {
		if res.Kind != domain.KindContainer {
			continue
		}
		key := scopeKey(res) + "|" + res.Name
		if _, alsoFunction := kindsByService[key][domain.KindFunction]; alsoFunction {
			issues = append(issues, Issue{
				Kind: res.Kind, Name: res.Name,
				Code: CodeServiceCollision, Severity: SeverityError,
				Message: fmt.Sprintf("a function and a container are both named %q in the same network; they resolve to the same compute service", res.Name),
			})
		}
	}

	return issues
}
