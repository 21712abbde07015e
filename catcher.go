package catch

import (
	"context"
	"errors"
)

// Catcher owns one [Handler] and applies it uniformly across the four
// supported unit-of-work shapes: synchronous calls ([Catcher.Call]),
// context-aware calls ([Catcher.CallCtx]), lazy sequences ([Catcher.Seq])
// and context-aware sequences ([Catcher.Stream]).
//
// The handler reference is supplied at construction and never mutated.
// A Catcher holds no other state, so it may be reused across any number
// of calls and sequences.
type Catcher[T any] struct {
	handler Handler[T]
	cfg     config[T]
}

// New creates a Catcher around handler. It panics if handler is nil.
func New[T any](handler Handler[T], opts ...Option[T]) *Catcher[T] {
	if handler == nil {
		panic("catch: New requires a non-nil handler")
	}

	cfg := defaultConfig[T]()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Catcher[T]{handler: handler, cfg: cfg}
}

// Call runs fn and intercepts its failure, if any. The variadic args are
// not passed to fn, which is a closure over its own inputs; they are
// recorded so the handler sees the originating call's arguments in the
// [Failure].
//
// On success Call returns (result, true, nil) with the result unchanged.
// On a captured failure the handler's outcome decides:
//
//   - Suppress: (zero, false, nil). The ok flag widens the return contract
//     to "result or absence"; callers must check it.
//   - Substitute(v): (v, true, nil).
//   - Propagate(e): (zero, false, e), with e marked via [*HandledError].
func (c *Catcher[T]) Call(fn func() (T, error), args ...any) (T, bool, error) {
	if fn == nil {
		panic("catch: Call requires a non-nil function")
	}
	return c.CallCtx(context.Background(), func(context.Context) (T, error) {
		return fn()
	}, args...)
}

// CallCtx runs fn with ctx and intercepts its failure, if any. fn may
// block; outcome application is identical to [Catcher.Call].
//
// Cancellation is not a captured failure: an error matching
// [context.Canceled] or [context.DeadlineExceeded] is returned unchanged
// and the handler is never invoked. A cancellation that interrupts the
// handler itself follows the handler's own semantics; the wrapper does not
// synthesize an outcome for it.
func (c *Catcher[T]) CallCtx(ctx context.Context, fn func(context.Context) (T, error), args ...any) (T, bool, error) {
	if fn == nil {
		panic("catch: CallCtx requires a non-nil function")
	}

	v, err := c.exec(ctx, fn)
	if err == nil {
		if c.cfg.onSuccess != nil {
			c.cfg.onSuccess(v, args)
		}
		c.finalize(args)
		return v, true, nil
	}

	var zero T
	if isCancellation(err) {
		c.finalize(args)
		return zero, false, err
	}

	v, ok, err := c.apply(ctx, NewFailure(err, args))
	c.finalize(args)
	return v, ok, err
}

// exec runs fn, converting a panic to a *PanicError failure when
// [WithPanicAsFailure] is set.
func (c *Catcher[T]) exec(ctx context.Context, fn func(context.Context) (T, error)) (v T, err error) {
	if c.cfg.panicAsFailure {
		defer func() {
			if r := recover(); r != nil {
				err = newPanicError(r)
			}
		}()
	}
	return fn(ctx)
}

// dispatch invokes the handler exactly once for f and normalizes its
// response. A handler panic becomes Propagate(*PanicError); the zero
// Outcome becomes Propagate(ErrInvalidOutcome). No retries happen at this
// layer.
func (c *Catcher[T]) dispatch(ctx context.Context, f Failure) (out Outcome[T]) {
	defer func() {
		if r := recover(); r != nil {
			out = Propagate[T](newPanicError(r))
			c.logDecision(f, out)
		}
	}()

	out = c.handler.Handle(ctx, f)
	if out.kind == outcomeInvalid {
		out = Propagate[T](ErrInvalidOutcome)
	}
	c.logDecision(f, out)
	return out
}

// apply resolves a captured failure into the widened (value, ok, err)
// return contract. Failures already marked handled skip dispatch unless
// [WithRehandle] is set.
func (c *Catcher[T]) apply(ctx context.Context, f Failure) (T, bool, error) {
	var zero T

	if !c.cfg.rehandle && IsHandled(f.Err()) {
		return zero, false, f.Err()
	}

	out := c.dispatch(ctx, f)
	switch out.kind {
	case outcomeSuppress:
		return zero, false, nil
	case outcomeSubstitute:
		return out.value, true, nil
	default:
		return zero, false, &HandledError{Failure: f, Err: out.err}
	}
}

func (c *Catcher[T]) finalize(args []any) {
	if c.cfg.onFinalize != nil {
		c.cfg.onFinalize(args)
	}
}

func (c *Catcher[T]) logDecision(f Failure, out Outcome[T]) {
	if c.cfg.logger == nil {
		return
	}

	entry := c.cfg.logger.WithField("error", f.Err())
	if pos, ok := f.Position(); ok {
		entry = entry.WithField("position", pos)
	}

	switch out.kind {
	case outcomeSuppress:
		entry.Debug("failure suppressed")
	case outcomeSubstitute:
		entry.Debug("failure substituted")
	case outcomePropagate:
		entry.WithField("propagated", out.err).Debug("failure propagated")
	}
}

// isCancellation reports whether err is a cancellation signal rather than
// a captured failure. Cancellation never reaches the dispatcher.
func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
