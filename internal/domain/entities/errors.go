package entities

import "errors"

// Error taxonomy shared by every package that validates caller input. Callers
// match on these with errors.Is; the wrapping message carries the detail (which
// row, which column, which axis).
//
// Go Learning Note — Sentinel Errors:
// A sentinel is a package-level error value that callers compare against.
// Wrapping it with fmt.Errorf("...: %w", ErrX) keeps the sentinel reachable
// through errors.Is while adding context, so one error value can serve both
// humans (the message) and code (the identity).
var (
	ErrEmptyInput    = errors.New("empty input")
	ErrInvalidBounds = errors.New("invalid bounds")
	ErrInvalidSize   = errors.New("invalid size")
	ErrSchema        = errors.New("schema error")
)
