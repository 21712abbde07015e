package catch

import (
	"errors"
	"fmt"
)

// HandledError marks an error that has already been routed through a
// catcher's handler and propagated. Wrappers mark every propagated outcome
// this way, so nested catchers can tell a fresh failure from one that a
// handler has already seen; by default they pass handled errors through
// without dispatching again (see [WithRehandle]).
//
// Use [errors.Is]/[errors.As] against the propagated error as usual;
// HandledError unwraps to it.
type HandledError struct {
	// Failure is the episode that produced this error.
	Failure Failure

	// Err is the error the handler chose to propagate.
	Err error
}

func (e *HandledError) Error() string {
	if pos, ok := e.Failure.Position(); ok {
		return fmt.Sprintf("handled failure at position %d: %v", pos, e.Err)
	}
	return fmt.Sprintf("handled failure: %v", e.Err)
}

func (e *HandledError) Unwrap() error {
	return e.Err
}

// IsHandled reports whether err (or any error in its chain) has already
// been handled by a catcher.
func IsHandled(err error) bool {
	if err == nil {
		return false
	}
	var he *HandledError
	return errors.As(err, &he)
}

// CauseOf unwraps the first [*HandledError] in err's chain and returns the
// error its handler propagated. If err is not a handled error, it is
// returned as-is. Returns nil if err is nil.
func CauseOf(err error) error {
	if err == nil {
		return nil
	}

	var he *HandledError
	if errors.As(err, &he) {
		return he.Err
	}

	return err
}

// AllHandled recursively collects every [*HandledError] from err's chain,
// including errors wrapped via [errors.Join]. Returns nil if none are found.
func AllHandled(err error) []*HandledError {
	if err == nil {
		return nil
	}

	var out []*HandledError
	collectHandled(err, &out)
	return out
}

func collectHandled(err error, out *[]*HandledError) {
	switch e := err.(type) {
	case *HandledError:
		*out = append(*out, e)
		collectHandled(e.Err, out)

	case interface{ Unwrap() []error }:
		for _, sub := range e.Unwrap() {
			collectHandled(sub, out)
		}

	case interface{ Unwrap() error }:
		collectHandled(e.Unwrap(), out)
	}
}
