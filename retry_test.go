package catch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
)

func TestRetrySucceedsAfterFailures(t *testing.T) {
	h := &countingHandler[int]{inner: SuppressAll[int]()}
	c := New[int](h)

	var attempts int
	v, ok, err := c.Retry(context.Background(), func(context.Context) (int, error) {
		attempts++
		if attempts < 3 {
			return 0, errors.New("transient")
		}
		return 42, nil
	}, backoff.NewConstantBackOff(time.Millisecond), func(error, int) bool { return true })

	if err != nil || !ok || v != 42 {
		t.Fatalf("got %v, %v, %v; want 42, true, nil", v, ok, err)
	}
	if attempts != 3 {
		t.Fatalf("attempts = %d; want 3", attempts)
	}
	if h.calls != 0 {
		t.Fatalf("handler invoked %d times on eventual success; want 0", h.calls)
	}
}

func TestRetryDecideDeclines(t *testing.T) {
	boom := errors.New("permanent")
	var got Failure
	c := New(HandlerFunc[int](func(_ context.Context, f Failure) Outcome[int] {
		got = f
		return Substitute(-1)
	}))

	var attempts int
	v, ok, err := c.Retry(context.Background(), func(context.Context) (int, error) {
		attempts++
		return 0, boom
	}, backoff.NewConstantBackOff(time.Millisecond), func(err error, attempt int) bool {
		return !errors.Is(err, boom)
	})

	if err != nil || !ok || v != -1 {
		t.Fatalf("got %v, %v, %v; want -1, true, nil", v, ok, err)
	}
	if attempts != 1 {
		t.Fatalf("attempts = %d; want 1", attempts)
	}
	if got.Err() != boom {
		t.Fatalf("handler saw %v; want %v", got.Err(), boom)
	}
}

func TestRetryScheduleExhausted(t *testing.T) {
	h := &countingHandler[int]{inner: SuppressAll[int]()}
	c := New[int](h)

	var attempts int
	b := backoff.WithMaxRetries(backoff.NewConstantBackOff(time.Millisecond), 2)
	_, ok, err := c.Retry(context.Background(), func(context.Context) (int, error) {
		attempts++
		return 0, errors.New("still failing")
	}, b, func(error, int) bool { return true })

	if err != nil || ok {
		t.Fatalf("got %v, %v; want suppressed terminal failure", ok, err)
	}
	if attempts != 3 {
		t.Fatalf("attempts = %d; want 3 (initial try plus 2 retries)", attempts)
	}
	if h.calls != 1 {
		t.Fatalf("handler invoked %d times; want 1", h.calls)
	}
}

func TestRetryCancelledDuringWait(t *testing.T) {
	h := &countingHandler[int]{inner: SuppressAll[int]()}
	c := New[int](h)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(5 * time.Millisecond)
		cancel()
	}()

	_, _, err := c.Retry(ctx, func(context.Context) (int, error) {
		return 0, errors.New("transient")
	}, backoff.NewConstantBackOff(time.Minute), func(error, int) bool { return true })

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v; want context.Canceled", err)
	}
	if h.calls != 0 {
		t.Fatalf("handler invoked %d times after cancellation; want 0", h.calls)
	}
}

func TestRetryAttemptNumbers(t *testing.T) {
	c := New(SuppressAll[int]())

	var seen []int
	c.Retry(context.Background(), func(context.Context) (int, error) {
		return 0, errors.New("transient")
	}, backoff.WithMaxRetries(backoff.NewConstantBackOff(time.Millisecond), 2), func(_ error, attempt int) bool {
		seen = append(seen, attempt)
		return true
	})

	if len(seen) != 3 || seen[0] != 0 || seen[1] != 1 || seen[2] != 2 {
		t.Fatalf("decide saw attempts %v; want [0 1 2]", seen)
	}
}
