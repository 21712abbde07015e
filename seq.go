package catch

import (
	"context"
	"io"
	"iter"
)

// Seq is a lazy, pull-based synchronous sequence. Next returns io.EOF when
// the sequence is exhausted. Seqs add no buffering and are restartable
// only if the underlying producer is restartable.
//
// Seqs are single-consumer; Next and the terminal methods must not be
// called concurrently.
type Seq[T any] struct {
	next func() (T, error)
	stop func()
	args []any
	err  error
	done bool
}

// NewSeq creates a Seq from a pull function. next returns one element per
// call and io.EOF at exhaustion. args record the producer's construction
// arguments; they surface in the [Failure] of any element-level capture.
func NewSeq[T any](next func() (T, error), args ...any) *Seq[T] {
	if next == nil {
		panic("catch: NewSeq requires a non-nil pull function")
	}
	return &Seq[T]{next: next, args: args}
}

// SeqFromSlice creates a Seq over items.
func SeqFromSlice[T any](items []T) *Seq[T] {
	var idx int
	return NewSeq(func() (T, error) {
		if idx >= len(items) {
			var zero T
			return zero, io.EOF
		}
		v := items[idx]
		idx++
		return v, nil
	})
}

// FromSeq2 creates a Seq from an iter.Seq2[T, error] producer, the shape
// range-over-func generators naturally take. Each yielded pair becomes one
// pull result; the sequence ends when src stops yielding.
//
// If src stops yielding after an error (a non-resumable producer), the
// next pull reports io.EOF and the sequence ends early.
func FromSeq2[T any](src iter.Seq2[T, error], args ...any) *Seq[T] {
	next, stop := iter.Pull2(src)
	s := NewSeq(func() (T, error) {
		v, err, ok := next()
		if !ok {
			var zero T
			return zero, io.EOF
		}
		return v, err
	}, args...)
	s.stop = stop
	return s
}

// Next returns the next element. io.EOF signals exhaustion and is
// terminal. Any other error belongs to a single pull: the producer decides
// whether later pulls can still succeed, so callers may keep pulling. The
// first non-EOF error is also recorded for [Seq.Err].
func (s *Seq[T]) Next() (T, error) {
	var zero T
	if s.done {
		return zero, io.EOF
	}

	v, err := s.next()
	if err == io.EOF {
		s.done = true
		s.Stop()
		return zero, io.EOF
	}
	if err != nil && s.err == nil {
		s.err = err
	}
	return v, err
}

// Err returns the first non-EOF error observed by this sequence, or nil.
func (s *Seq[T]) Err() error {
	return s.err
}

// Stop releases the underlying producer, if it holds resources. It is
// safe to call multiple times and after exhaustion.
func (s *Seq[T]) Stop() {
	if s.stop != nil {
		s.stop()
	}
}

// All exposes the sequence for range-over-func iteration. Iteration ends
// at exhaustion or at the first failing pull; inspect [Seq.Err] afterwards
// to distinguish the two.
func (s *Seq[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, err := s.Next()
			if err != nil {
				return
			}
			if !yield(v) {
				s.Stop()
				return
			}
		}
	}
}

// Collect drains the sequence into a slice. On a failing pull it returns
// the elements collected so far alongside the error, following io.Reader
// conventions.
func (s *Seq[T]) Collect() ([]T, error) {
	var items []T
	for {
		v, err := s.Next()
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
func (s *Seq[T]) ForEach(fn func(T) error) error {
	for {
		v, err := s.Next()
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

// Seq returns a guarded view of src: every failing pull is captured,
// dispatched to the handler, and resolved before anything reaches the
// consumer.
//
//   - Suppress skips the failed position; the output simply omits it and
//     the next element is pulled.
//   - Substitute(v) yields v at the failed position; subsequent elements
//     are unaffected.
//   - Propagate(e) terminates the sequence with e; no further elements are
//     produced and later pulls keep returning e.
//
// The [Failure] carries the producer's construction arguments and the
// 0-based underlying element index. The index advances once per underlying
// pull, so suppressed positions never reset or rewind forward progress.
//
// If the producer cannot resume after a failure, the pull that follows a
// suppression reports exhaustion and the sequence ends early; the wrapper
// never hides that gap. Cancellation errors surfacing from the producer
// pass through without reaching the handler.
func (c *Catcher[T]) Seq(src *Seq[T]) *Seq[T] {
	if src == nil {
		panic("catch: Seq requires a non-nil source")
	}

	var (
		idx  int
		term error
	)
	g := &Seq[T]{args: src.args, stop: src.Stop}
	g.next = func() (T, error) {
		var zero T
		if term != nil {
			return zero, term
		}
		for {
			v, err := src.Next()
			if err == io.EOF {
				return zero, io.EOF
			}
			if err != nil && isCancellation(err) {
				term = err
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

			sub, ok, perr := c.apply(context.Background(), newIndexedFailure(err, src.args, i))
			c.finalize(src.args)
			if perr != nil {
				term = perr
				src.Stop()
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
