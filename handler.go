package catch

import "context"

// Handler decides how a captured failure is resolved. It receives the
// [Failure] describing the episode and returns exactly one [Outcome].
//
// Handlers may block and may respect ctx; a handler that ignores ctx is
// simply synchronous. A handler that panics is a handler failure: the
// panic is captured as a [*PanicError] and propagated in place of the
// original error, without re-entering dispatch.
//
// The handler reference held by a [Catcher] is read-only after
// construction and is reused across episodes and across the elements of a
// sequence. It does not need to be safe for concurrent use unless the
// caller invokes the same wrapper from multiple goroutines.
type Handler[T any] interface {
	Handle(ctx context.Context, f Failure) Outcome[T]
}

// HandlerFunc adapts a plain function to the [Handler] interface.
type HandlerFunc[T any] func(ctx context.Context, f Failure) Outcome[T]

// Handle calls fn(ctx, f).
func (fn HandlerFunc[T]) Handle(ctx context.Context, f Failure) Outcome[T] {
	return fn(ctx, f)
}

// SuppressAll returns a handler that suppresses every failure.
func SuppressAll[T any]() Handler[T] {
	return HandlerFunc[T](func(context.Context, Failure) Outcome[T] {
		return Suppress[T]()
	})
}

// Fallback returns a handler that substitutes v for every failure.
func Fallback[T any](v T) Handler[T] {
	return HandlerFunc[T](func(context.Context, Failure) Outcome[T] {
		return Substitute(v)
	})
}

// Reraise returns a handler that propagates every failure unchanged.
// Useful when only the hooks or the handled-error marking are wanted.
func Reraise[T any]() Handler[T] {
	return HandlerFunc[T](func(_ context.Context, f Failure) Outcome[T] {
		return Propagate[T](f.Err())
	})
}
