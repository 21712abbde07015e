package catch

import "fmt"

// Failure describes one captured failure: the error raised by a unit of
// work, the arguments the failing call received, and, for sequences, the
// 0-based position of the element being produced when the failure occurred.
//
// A Failure is built exactly once per failure episode, is immutable, and is
// only valid for the duration of the handler invocation that consumes it.
// Handlers must not retain it.
type Failure struct {
	err   error
	args  []any
	index int
}

// NewFailure builds a Failure for a single-shot call. It panics if err is
// nil: a failure without an error is not a failure.
func NewFailure(err error, args []any) Failure {
	if err == nil {
		panic("catch: NewFailure requires a non-nil error")
	}
	return Failure{err: err, args: args, index: -1}
}

func newIndexedFailure(err error, args []any, index int) Failure {
	f := NewFailure(err, args)
	f.index = index
	return f
}

// Err returns the captured error. It is never nil.
func (f Failure) Err() error { return f.err }

// Args returns the arguments the failing call received, or the producer's
// construction arguments for sequence failures. The slice is held by
// reference and must not be mutated.
func (f Failure) Args() []any { return f.args }

// Position returns the 0-based index of the element being produced when
// the failure occurred. The second return value is false for single-shot
// failures, which have no position.
func (f Failure) Position() (int, bool) {
	if f.index < 0 {
		return 0, false
	}
	return f.index, true
}

func (f Failure) String() string {
	if pos, ok := f.Position(); ok {
		return fmt.Sprintf("failure at position %d: %v", pos, f.err)
	}
	return fmt.Sprintf("failure: %v", f.err)
}
