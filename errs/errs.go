// Package errs holds the error taxonomy shared by the flwdir packages.
//
// Every failure returned by the library wraps one of these sentinels so callers
// can match with errors.Is. None are retryable: the computation is deterministic
// and repeating a call on the same input reproduces the same error.
package errs

import "errors"

var (
	// ErrInvalidInput covers empty or all-nodata grids, malformed transforms,
	// conflicting flags and out-of-range arguments.
	ErrInvalidInput = errors.New("flwdir: invalid input")

	// ErrInternalInconsistency is returned when a flow network contains a cycle.
	// It cannot occur for directions derived from a filled grid.
	ErrInternalInconsistency = errors.New("flwdir: internal inconsistency")

	// ErrUnsupported is returned for direction conventions that are not recognised.
	ErrUnsupported = errors.New("flwdir: unsupported")
)
