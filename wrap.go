package catch

import (
	"context"
	"errors"
	"fmt"
	"iter"
)

// ErrUnsupportedShape is returned by [Wrap] when the unit of work is not
// one of the supported shapes. It is a wrap-time error: classification
// never fails at call time.
var ErrUnsupportedShape = errors.New("catch: unsupported unit-of-work shape")

// Wrap classifies work into one of the supported unit-of-work shapes once,
// at wrap time, and returns its guarded counterpart with the matching call
// signature:
//
//	func() (T, error)                → func() (T, bool, error)
//	func(context.Context) (T, error) → func(context.Context) (T, bool, error)
//	iter.Seq2[T, error]              → *Seq[T]
//	*Seq[T]                          → *Seq[T]
//	*Stream[T]                       → *Stream[T]
//
// The hot path of the returned unit carries no shape branching. Anything
// else fails immediately with [ErrUnsupportedShape].
//
// Wrap is for callers that only know the shape dynamically. When the shape
// is known statically, use [New] and the typed [Catcher] methods directly;
// they need no classification at all.
func Wrap[T any](work any, handler Handler[T], opts ...Option[T]) (any, error) {
	c := New(handler, opts...)

	switch w := work.(type) {
	case func() (T, error):
		return func() (T, bool, error) {
			return c.Call(w)
		}, nil

	case func(context.Context) (T, error):
		return func(ctx context.Context) (T, bool, error) {
			return c.CallCtx(ctx, w)
		}, nil

	case iter.Seq2[T, error]:
		return c.Seq(FromSeq2(w)), nil

	case func(func(T, error) bool):
		// The unnamed form of iter.Seq2[T, error].
		return c.Seq(FromSeq2(iter.Seq2[T, error](w))), nil

	case *Seq[T]:
		return c.Seq(w), nil

	case *Stream[T]:
		return c.Stream(w), nil
	}

	return nil, fmt.Errorf("%w: %T", ErrUnsupportedShape, work)
}
