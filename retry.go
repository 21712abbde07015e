package catch

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Retry re-runs fn until it succeeds, decide declines, the wait schedule
// is exhausted, or ctx is cancelled. decide receives each failure and the
// 0-based attempt number; returning false stops retrying immediately.
// Waits between attempts come from b (use [backoff.WithMaxRetries] to cap
// attempts); [backoff.Stop] ends the schedule.
//
// Retry is mechanism layered on top of the same capture path as
// [Catcher.CallCtx]: the terminal failure, whichever way retrying ended,
// is dispatched to the handler and resolved into the usual widened return
// contract. Cancellation, as everywhere, bypasses the handler.
//
// Retry panics if fn, b or decide is nil.
func (c *Catcher[T]) Retry(
	ctx context.Context,
	fn func(context.Context) (T, error),
	b backoff.BackOff,
	decide func(err error, attempt int) bool,
	args ...any,
) (T, bool, error) {
	if fn == nil {
		panic("catch: Retry requires a non-nil function")
	}
	if b == nil {
		panic("catch: Retry requires a non-nil backoff")
	}
	if decide == nil {
		panic("catch: Retry requires a non-nil decide function")
	}

	b.Reset()

	var zero T
	var lastErr error
	for attempt := 0; ; attempt++ {
		v, err := c.exec(ctx, fn)
		if err == nil {
			if c.cfg.onSuccess != nil {
				c.cfg.onSuccess(v, args)
			}
			c.finalize(args)
			return v, true, nil
		}
		if isCancellation(err) {
			c.finalize(args)
			return zero, false, err
		}

		lastErr = err
		if !decide(err, attempt) {
			break
		}
		wait := b.NextBackOff()
		if wait == backoff.Stop {
			break
		}

		if c.cfg.logger != nil {
			c.cfg.logger.
				WithField("attempt", attempt).
				WithField("wait", wait).
				WithField("error", err).
				Debug("retrying after failure")
		}

		select {
		case <-time.After(wait):
		case <-ctx.Done():
			c.finalize(args)
			return zero, false, ctx.Err()
		}
	}

	v, ok, err := c.apply(ctx, NewFailure(lastErr, args))
	c.finalize(args)
	return v, ok, err
}
