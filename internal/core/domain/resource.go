package domain

import (
	"strings"
	"time"
)

// CloudResource is a resource observed in the cloud account during a scan.
// Produced fresh on every scan and never persisted by this engine.
type CloudResource struct {
	Kind ResourceKind
	Name string
	// Location is the region/zone where that applies, empty for global kinds.
	Location string
	// ExternalRef is the provider-assigned identifier when it differs from
	// the name (e.g. a VPC ID); import formatters prefer it when present.
	ExternalRef string
	CreatedAt   time.Time
}

// StateEntry is one managed-resource record recovered from the persisted
// state file. Read-only to this engine.
type StateEntry struct {
	// Address is the state file's unique path to the resource,
	// e.g. "google_storage_bucket.uploads".
	Address string
	Kind    ResourceKind
	Name    string
	// Mode is the state's resource mode ("managed" or "data") when the
	// reader knows it; empty when only the address is available.
	Mode string
	// Attributes is opaque; it is consulted only to recover a
	// human-readable name.
	Attributes map[string]any
}

// AttributeName returns the name recorded in the entry's attributes, or ""
// when the attributes carry none.
func (e StateEntry) AttributeName() string {
	if n, ok := e.Attributes["name"].(string); ok && n != "" {
		return n
	}
	if b, ok := e.Attributes["bucket"].(string); ok && b != "" {
		return b
	}
	return ""
}

// RecoveredName returns the best human-readable name for the entry: the name
// attribute when present, otherwise the state's own resource label.
func (e StateEntry) RecoveredName() string {
	if n := e.AttributeName(); n != "" {
		return n
	}
	return e.Name
}

// IsDataSource reports whether the entry is a data lookup rather than a
// managed resource. The state's mode is authoritative when present;
// otherwise the address is parsed, skipping module path segments, so
// "module.app.data.google_compute_network.shared" counts while a managed
// resource labeled "data" does not.
func (e StateEntry) IsDataSource() bool {
	if e.Mode != "" {
		return e.Mode == "data"
	}
	segments := strings.Split(e.Address, ".")
	i := 0
	for i+1 < len(segments) && segments[i] == "module" {
		i += 2
	}
	// The "data" marker always precedes a type and a name.
	return i+2 < len(segments) && segments[i] == "data"
}

// DeclaredResource is a resource named in the project's declarative config,
// validated before any cloud call.
type DeclaredResource struct {
	Kind ResourceKind
	Name string
	// Network scopes network-bound kinds; empty means the project default.
	Network string
}
