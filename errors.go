package jsonmend

import "errors"

// Errors returned while resolving pointers and applying operations.
// Failures are wrapped with the offending pointer, and Patch.Apply
// additionally wraps them with the failing operation's index and
// kind; match with errors.Is.
var (
	ErrNoSuchPath        = errors.New("no such path")
	ErrInvalidArrayIndex = errors.New("invalid array index")
	ErrTypeMismatch      = errors.New("type mismatch")
	ErrTestFailed        = errors.New("test failed")
	ErrInvalidOperation  = errors.New("invalid operation")

	// ErrDecode is returned for a malformed wire-format patch.
	ErrDecode = errors.New("invalid patch")

	// ErrTooDeep is returned by Diff when document nesting exceeds
	// the configured depth guard. See Options.WithMaxDepth.
	ErrTooDeep = errors.New("document nesting too deep")
)
