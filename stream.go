package catch

import (
	"context"
	"io"
	"sync"
)

// Stream is a lazy, pull-based sequence whose pulls may block. Next
// returns io.EOF when the stream is exhausted. Streams add no buffering:
// the consumer drives iteration one pull at a time and the wrapper never
// pulls ahead of what has been consumed.
//
// Streams are single-consumer; Next and the terminal methods must not be
// called concurrently.
type Stream[T any] struct {
	next func(ctx context.Context) (T, error)
	args []any

	mu  sync.Mutex
	err error
}

// NewStream creates a Stream from a pull function. next returns one
// element per call and io.EOF at exhaustion; it should honor ctx. args
// record the producer's construction arguments; they surface in the
// [Failure] of any element-level capture.
func NewStream[T any](next func(ctx context.Context) (T, error), args ...any) *Stream[T] {
	if next == nil {
		panic("catch: NewStream requires a non-nil pull function")
	}
	return &Stream[T]{next: next, args: args}
}

// StreamFromSlice creates a Stream over items.
func StreamFromSlice[T any](items []T) *Stream[T] {
	var idx int
	return NewStream(func(ctx context.Context) (T, error) {
		var zero T
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		default:
		}
		if idx >= len(items) {
			return zero, io.EOF
		}
		v := items[idx]
		idx++
		return v, nil
	})
}

// FromChan creates a Stream from a channel. The stream ends when the
// channel is closed.
func FromChan[T any](ch <-chan T, args ...any) *Stream[T] {
	return NewStream(func(ctx context.Context) (T, error) {
		var zero T
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case v, ok := <-ch:
			if !ok {
				return zero, io.EOF
			}
			return v, nil
		}
	}, args...)
}

// Next returns the next element in the stream, blocking until the
// underlying pull completes or ctx is cancelled. Returns io.EOF at
// exhaustion.
func (s *Stream[T]) Next(ctx context.Context) (T, error) {
	v, err := s.next(ctx)
	if err != nil && err != io.EOF {
		s.setError(err)
	}
	return v, err
}

// Err returns the first non-EOF error observed by this stream, or nil.
func (s *Stream[T]) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Stream[T]) setError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err == nil {
		s.err = err
	}
}

// ToSlice drains the stream into a slice. On a failing pull it returns the
// elements collected so far alongside the error, following io.Reader
// conventions.
func (s *Stream[T]) ToSlice(ctx context.Context) ([]T, error) {
	var items []T
	for {
		v, err := s.Next(ctx)
		if err == io.EOF {
			return items, s.Err()
		}
		if err != nil {
			return items, err
		}
		items = append(items, v)
	}
}

// ForEach applies fn to each element until exhaustion, a failing pull, or
// an error from fn.
func (s *Stream[T]) ForEach(ctx context.Context, fn func(T) error) error {
	for {
		v, err := s.Next(ctx)
		if err == io.EOF {
			return s.Err()
		}
		if err != nil {
			return err
		}
		if err := fn(v); err != nil {
			return err
		}
	}
}

// ToChan drains the stream into a channel. The error channel receives the
// terminal error (or nil) exactly once when the stream ends.
//
// Note: this spawns an unscoped goroutine. The caller must cancel ctx or
// drain the channel to avoid leaking it.
func (s *Stream[T]) ToChan(ctx context.Context) (<-chan T, <-chan error) {
	ch := make(chan T)
	errCh := make(chan error, 1)
	go func() {
		defer close(ch)
		defer close(errCh)
		for {
			v, err := s.Next(ctx)
			if err == io.EOF {
				errCh <- s.Err()
				return
			}
			if err != nil {
				errCh <- err
				return
			}
			select {
			case ch <- v:
			case <-ctx.Done():
				errCh <- ctx.Err()
				return
			}
		}
	}()
	return ch, errCh
}

// Stream returns a guarded view of src with the same state machine as
// [Catcher.Seq], where every pull and every handler invocation is a
// suspension point: both receive the consumer's ctx.
//
// Iteration is strictly single-flight and order-preserving; the wrapper
// never pulls ahead of the consumer, so backpressure is whatever the
// underlying producer provides. Cancellation at any point stops pulling
// and propagates the cancellation error unchanged; it is never misreported
// as a captured failure and never reaches the handler.
func (c *Catcher[T]) Stream(src *Stream[T]) *Stream[T] {
	if src == nil {
		panic("catch: Stream requires a non-nil source")
	}

	var (
		idx  int
		term error
	)
	g := &Stream[T]{args: src.args}
	g.next = func(ctx context.Context) (T, error) {
		var zero T
		if term != nil {
			return zero, term
		}
		for {
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			default:
			}

			v, err := src.Next(ctx)
			if err == io.EOF {
				return zero, io.EOF
			}
			if err != nil && isCancellation(err) {
				return zero, err
			}

			i := idx
			idx++

			if err == nil {
				if c.cfg.onSuccess != nil {
					c.cfg.onSuccess(v, src.args)
				}
				c.finalize(src.args)
				return v, nil
			}

			sub, ok, perr := c.apply(ctx, newIndexedFailure(err, src.args, i))
			c.finalize(src.args)
			if perr != nil {
				term = perr
				return zero, perr
			}
			if ok {
				return sub, nil
			}
			// Suppressed: the failed position is absent from the output.
		}
	}
	return g
}
