package catch

import "errors"

// ErrInvalidOutcome is propagated when a handler returns the zero Outcome,
// i.e. one built without [Suppress], [Substitute] or [Propagate]. The
// dispatcher does not silently coerce such results.
var ErrInvalidOutcome = errors.New("catch: handler returned an invalid outcome")

type outcomeKind int

const (
	outcomeInvalid outcomeKind = iota
	outcomeSuppress
	outcomeSubstitute
	outcomePropagate
)

// Outcome is the normalized decision a [Handler] makes about a captured
// failure. Exactly one of three tags is active: suppress the failure,
// substitute a replacement value, or propagate an error. Build one via
// [Suppress], [Substitute] or [Propagate]; the zero Outcome is invalid and
// is normalized to Propagate([ErrInvalidOutcome]) during dispatch.
type Outcome[T any] struct {
	kind  outcomeKind
	value T
	err   error
}

// Suppress resolves the failure silently: single-shot calls report absence
// instead of a result, sequences omit the failed position and continue.
func Suppress[T any]() Outcome[T] {
	return Outcome[T]{kind: outcomeSuppress}
}

// Substitute resolves the failure by standing in v for the missing result
// or element. Subsequent elements of a sequence are unaffected.
func Substitute[T any](v T) Outcome[T] {
	return Outcome[T]{kind: outcomeSubstitute, value: v}
}

// Propagate resolves the failure by raising err to the wrapper's caller.
// Passing the failure's own error re-raises it; passing a different error
// replaces it. The original is not chained unless err wraps it explicitly.
// Propagate panics if err is nil.
func Propagate[T any](err error) Outcome[T] {
	if err == nil {
		panic("catch: Propagate requires a non-nil error")
	}
	return Outcome[T]{kind: outcomePropagate, err: err}
}
