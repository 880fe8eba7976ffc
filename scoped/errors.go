package scoped

import "errors"

var (
	// ErrEmptyScope indicates Named was called with an empty scope name.
	// Use the default scope for unscoped data instead.
	ErrEmptyScope = errors.New(`scoped: empty scope name ("") is not allowed for named scopes`)

	// ErrInvalidInput indicates malformed caller input: a missing database
	// name, a missing registry, or a scope-id collision between two names.
	ErrInvalidInput = errors.New("scoped: invalid input")

	// ErrEncoding indicates a key, value or range bound failed to encode or
	// decode through its codec, or a stored composite key is malformed.
	ErrEncoding = errors.New("scoped: encoding")
)
