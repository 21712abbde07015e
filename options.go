package catch

import "github.com/sirupsen/logrus"

type config[T any] struct {
	logger         logrus.FieldLogger
	onSuccess      func(v T, args []any)
	onFinalize     func(args []any)
	panicAsFailure bool
	rehandle       bool
}

// Option configures a [Catcher].
type Option[T any] func(*config[T])

func defaultConfig[T any]() config[T] {
	return config[T]{}
}

// WithLogger enables debug-level logging of every handling decision
// (suppressed, substituted, propagated) and of retry attempts. The catcher
// is silent by default. WithLogger panics if l is nil.
func WithLogger[T any](l logrus.FieldLogger) Option[T] {
	if l == nil {
		panic("catch: WithLogger requires a non-nil logger")
	}
	return func(c *config[T]) {
		c.logger = l
	}
}

// WithOnSuccess registers a hook invoked after every successful call or
// sequence element, with the result and the originating arguments. The
// hook runs on the caller's goroutine, before the finalize hook.
//
// A panic in the hook is intentionally not recovered: observability hooks
// must not panic.
func WithOnSuccess[T any](fn func(v T, args []any)) Option[T] {
	return func(c *config[T]) {
		c.onSuccess = fn
	}
}

// WithOnFinalize registers a hook invoked after every episode, whether it
// ended in success, suppression, substitution or propagation. It runs
// after the handler and the success hook. For sequences it runs once per
// element episode.
func WithOnFinalize[T any](fn func(args []any)) Option[T] {
	return func(c *config[T]) {
		c.onFinalize = fn
	}
}

// WithPanicAsFailure converts panics raised by the unit of work into
// [*PanicError] captured failures routed through the handler. By default
// such panics propagate raw to the caller.
//
// Panics raised by the handler itself are always converted, regardless of
// this option.
func WithPanicAsFailure[T any]() Option[T] {
	return func(c *config[T]) {
		c.panicAsFailure = true
	}
}

// WithRehandle makes the catcher dispatch failures even when they are
// already marked handled by another catcher. By default nested catchers
// pass handled errors through untouched, so stacked wrappers do not fire
// their handlers repeatedly for one underlying failure.
func WithRehandle[T any]() Option[T] {
	return func(c *config[T]) {
		c.rehandle = true
	}
}
