package domain

import (
	"strings"
	"unicode"
)

// NamingContext carries the identifiers a scan needs to recognize project
// resources by name.
type NamingContext struct {
	Project string
	// AccountID prefixes globally-unique names ({accountId}-{project}-{suffix});
	// empty when the provider has no account-scoped pattern.
	AccountID string
}

// MatchesProject reports whether a cloud resource name follows the project
// naming pattern. Names that don't match are excluded from scanning entirely;
// they are never classified as conflicts.
func (n NamingContext) MatchesProject(name string) bool {
	if n.Project == "" || name == "" {
		return false
	}
	if strings.HasPrefix(name, n.Project+"-") {
		return true
	}
	if n.AccountID != "" && strings.HasPrefix(name, n.AccountID+"-"+n.Project+"-") {
		return true
	}
	return false
}

// Suffix strips the project naming prefix from name. Callers must have
// checked MatchesProject first; unmatched names are returned unchanged.
func (n NamingContext) Suffix(name string) string {
	if n.AccountID != "" {
		if rest, ok := strings.CutPrefix(name, n.AccountID+"-"+n.Project+"-"); ok {
			return rest
		}
	}
	if rest, ok := strings.CutPrefix(name, n.Project+"-"); ok {
		return rest
	}
	return name
}

// SafeName normalizes a cloud name into the form used for state addresses
// and fallback matching: every non-alphanumeric rune becomes a hyphen.
func SafeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune('-')
		}
	}
	return b.String()
}
