// Package catch intercepts failures raised by arbitrary units of work and
// routes them through a caller-supplied handler, so failure policy lives
// in one place instead of try-style boilerplate at every call site.
//
// The package guarantees mechanism, not policy: it captures the failure,
// builds a [Failure] describing the episode, invokes the [Handler] exactly
// once, and applies the handler's [Outcome]. What the handler decides,
// whether to suppress, substitute a replacement value, or propagate an
// error, is entirely the caller's business. There is no retry engine
// beyond the explicit [Catcher.Retry] helper, no circuit breaking, and no
// logging unless a logger is supplied.
//
// # Shapes
//
// A [Catcher] applies one handler uniformly across four unit-of-work
// shapes, preserving each shape's evaluation semantics:
//
//   - [Catcher.Call]: a synchronous call, run eagerly on the caller's
//     goroutine.
//   - [Catcher.CallCtx]: a context-aware call that may block.
//   - [Catcher.Seq]: a lazy pull sequence ([Seq]); failures are captured
//     per element, and the sequence stays lazy.
//   - [Catcher.Stream]: a context-aware pull sequence ([Stream]);
//     iteration is single-flight and order-preserving, with no pull-ahead.
//
// The shape is fixed when the wrapper is built, so the hot path never
// branches on it. [Wrap] classifies a dynamically-typed unit of work once
// at wrap time and fails with [ErrUnsupportedShape] rather than surprising
// at call time.
//
// # Outcomes
//
// A handler resolves every captured failure into exactly one of three
// outcomes. For single-shot calls:
//
//	c := catch.New(catch.HandlerFunc[float64](func(_ context.Context, f catch.Failure) catch.Outcome[float64] {
//	    if errors.Is(f.Err(), ErrDivisionByZero) {
//	        return catch.Substitute(0.0)
//	    }
//	    return catch.Propagate[float64](f.Err())
//	}))
//	v, ok, err := c.Call(func() (float64, error) { return divide(10, 0) }, 10, 0)
//
// Suppress makes Call report absence (ok == false) instead of a result. For
// sequences, Suppress omits the failed position and iteration continues,
// Substitute yields the replacement at that position, and Propagate
// terminates the sequence.
//
// # Errors
//
// Propagated errors are marked with [*HandledError], so stacked catchers
// do not re-dispatch one underlying failure (see [WithRehandle] to opt
// out). A panicking handler produces a [*PanicError] that supersedes the
// original failure. Cancellation ([context.Canceled],
// [context.DeadlineExceeded]) always passes through untouched and never
// reaches a handler.
//
// # Hooks and logging
//
// [WithOnSuccess] and [WithOnFinalize] observe episodes without taking
// part in resolution. [WithLogger] logs each handling decision at debug
// level through a logrus logger.
//
// # Pipelines
//
// [ToTryChan], [FromTryChan] and [GuardMap] bridge streams to rill's
// channel-of-Try convention, so guarded sequences can take part in rill
// pipelines and rill stages can run under a catcher's policy.
package catch
