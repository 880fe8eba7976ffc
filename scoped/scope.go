package scoped

import (
	"github.com/cespare/xxhash/v2"
)

// Scope identifies a logical namespace within a database: either the default
// (unscoped) namespace or a named scope with a cached 32-bit id.
//
// Scope is an immutable value type. The zero value is the default scope.
// Two Scopes compare equal with == when they name the same namespace; the
// cached id is derived from the name and never disagrees with it.
type Scope struct {
	name string
	id   uint32
}

// DefaultScope returns the default (unscoped) scope.
func DefaultScope() Scope {
	return Scope{}
}

// Named returns a scope for the given name with its id computed and cached,
// so later operations avoid rehashing. Returns ErrEmptyScope for "".
func Named(name string) (Scope, error) {
	if name == "" {
		return Scope{}, ErrEmptyScope
	}
	return Scope{name: name, id: ScopeID(name)}, nil
}

// FromName converts a possibly-empty name into a Scope: "" maps to the
// default scope, anything else to the named scope.
func FromName(name string) Scope {
	if name == "" {
		return Scope{}
	}
	s, _ := Named(name)
	return s
}

// ScopeID returns the 32-bit id derived from a scope name: the low 32 bits
// of the name's XXH64 digest (fixed seed 0). The derivation is deterministic
// and byte-stable, so any process computes the same id without consulting
// the registry.
func ScopeID(name string) uint32 {
	return uint32(xxhash.Sum64String(name))
}

// IsDefault reports whether this is the default scope.
func (s Scope) IsDefault() bool {
	return s.name == ""
}

// Name returns the scope name. ok is false for the default scope.
func (s Scope) Name() (name string, ok bool) {
	return s.name, s.name != ""
}

// ID returns the cached scope id. ok is false for the default scope.
func (s Scope) ID() (id uint32, ok bool) {
	if s.name == "" {
		return 0, false
	}
	return s.id, true
}

// String returns the scope name, or "<default>" for the default scope.
func (s Scope) String() string {
	if s.name == "" {
		return "<default>"
	}
	return s.name
}
