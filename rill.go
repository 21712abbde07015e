package catch

import (
	"context"
	"io"

	"github.com/destel/rill"
)

// ToTryChan exposes a [Stream] as a channel of rill Try containers, the
// convention rill pipelines consume, without rill needing any awareness of
// the stream's internals. Elements become Try values; a terminal pull
// error becomes a final Try carrying that error. The channel is
// unbuffered, so the stream is pulled no faster than the pipeline
// consumes it.
//
// The feeding goroutine exits when the stream ends or ctx is cancelled.
func ToTryChan[T any](ctx context.Context, s *Stream[T]) <-chan rill.Try[T] {
	if s == nil {
		panic("catch: ToTryChan requires a non-nil stream")
	}

	out := make(chan rill.Try[T])
	go func() {
		defer close(out)
		for {
			v, err := s.Next(ctx)
			if err == io.EOF {
				return
			}
			if err != nil {
				select {
				case out <- rill.Try[T]{Error: err}:
				case <-ctx.Done():
				}
				return
			}
			select {
			case out <- rill.Try[T]{Value: v}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// FromTryChan adapts a rill stream into a [Stream]. A Try carrying an
// error surfaces as a failing pull, so a guarded view via [Catcher.Stream]
// can suppress or substitute individual elements of a rill pipeline.
func FromTryChan[T any](in <-chan rill.Try[T], args ...any) *Stream[T] {
	return NewStream(func(ctx context.Context) (T, error) {
		var zero T
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case t, ok := <-in:
			if !ok {
				return zero, io.EOF
			}
			if t.Error != nil {
				return zero, t.Error
			}
			return t.Value, nil
		}
	}, args...)
}

// GuardMap applies fn to every element of a rill stream under the
// catcher's policy. Failures raised by fn are captured and dispatched:
// suppressed elements are dropped from the output, substituted values
// take the failed element's place, and a propagated error terminates the
// output rill-style, forwarded as the final Try while the rest of the
// input is drained in the background to avoid leaking upstream
// goroutines.
//
// Errors already present in the input stream are forwarded downstream
// untouched, per rill convention. Emission order follows input order; the
// [Failure] position is the 0-based index among the input's value
// elements, and its arguments hold the failing input value.
func GuardMap[A, B any](c *Catcher[B], in <-chan rill.Try[A], fn func(A) (B, error)) <-chan rill.Try[B] {
	if c == nil {
		panic("catch: GuardMap requires a non-nil catcher")
	}
	if fn == nil {
		panic("catch: GuardMap requires a non-nil function")
	}

	out := make(chan rill.Try[B])
	go func() {
		defer close(out)
		var idx int
		for t := range in {
			if t.Error != nil {
				out <- rill.Try[B]{Error: t.Error}
				continue
			}

			i := idx
			idx++
			args := []any{t.Value}

			v, err := c.exec(context.Background(), func(context.Context) (B, error) {
				return fn(t.Value)
			})
			if err == nil {
				if c.cfg.onSuccess != nil {
					c.cfg.onSuccess(v, args)
				}
				c.finalize(args)
				out <- rill.Try[B]{Value: v}
				continue
			}

			sub, ok, perr := c.apply(context.Background(), newIndexedFailure(err, args, i))
			c.finalize(args)
			if perr != nil {
				out <- rill.Try[B]{Error: perr}
				rill.DrainNB(in)
				return
			}
			if ok {
				out <- rill.Try[B]{Value: sub}
			}
			// Suppressed results are filtered out of the pipeline.
		}
	}()
	return out
}
