package catch

import (
	"context"
	"errors"
	"io"
	"reflect"
	"strconv"
	"testing"
)

func conversionStream(items []string) *Stream[int] {
	var idx int
	return NewStream(func(ctx context.Context) (int, error) {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		default:
		}
		if idx >= len(items) {
			return 0, io.EOF
		}
		s := items[idx]
		idx++
		return strconv.Atoi(s)
	}, items)
}

func TestStreamIdentity(t *testing.T) {
	c := New(SuppressAll[int]())
	got, err := c.Stream(StreamFromSlice([]int{1, 2, 3})).ToSlice(context.Background())
	if err != nil {
		t.Fatalf("ToSlice failed: %v", err)
	}
	if !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Fatalf("got %v; want [1 2 3]", got)
	}
}

func TestStreamSuppressSkipsPosition(t *testing.T) {
	c := New(SuppressAll[int]())
	got, err := c.Stream(conversionStream([]string{"1", "2", "bad", "4"})).ToSlice(context.Background())
	if err != nil {
		t.Fatalf("ToSlice failed: %v", err)
	}
	if !reflect.DeepEqual(got, []int{1, 2, 4}) {
		t.Fatalf("got %v; want [1 2 4]", got)
	}
}

func TestStreamSubstitutePreservesOrder(t *testing.T) {
	c := New(Fallback(-1))
	got, err := c.Stream(conversionStream([]string{"0", "1", "bad", "3"})).ToSlice(context.Background())
	if err != nil {
		t.Fatalf("ToSlice failed: %v", err)
	}
	if !reflect.DeepEqual(got, []int{0, 1, -1, 3}) {
		t.Fatalf("got %v; want [0 1 -1 3]", got)
	}
}

func TestStreamPropagateTerminates(t *testing.T) {
	fatal := errors.New("fatal conversion")
	c := New(HandlerFunc[int](func(context.Context, Failure) Outcome[int] {
		return Propagate[int](fatal)
	}))

	s := c.Stream(conversionStream([]string{"1", "2", "bad", "4"}))
	got, err := s.ToSlice(context.Background())
	if !errors.Is(err, fatal) {
		t.Fatalf("got %v; want %v", err, fatal)
	}
	if !reflect.DeepEqual(got, []int{1, 2}) {
		t.Fatalf("got %v; want [1 2] before termination", got)
	}
	if s.Err() == nil {
		t.Fatal("terminal error not recorded")
	}

	_, err = s.Next(context.Background())
	if !errors.Is(err, fatal) {
		t.Fatalf("pull after termination got %v; want %v", err, fatal)
	}
}

func TestStreamCancellationNeverReachesHandler(t *testing.T) {
	h := &countingHandler[int]{inner: SuppressAll[int]()}
	c := New[int](h)

	blocked := NewStream(func(ctx context.Context) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	})
	s := c.Stream(blocked)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := s.Next(ctx)
		done <- err
	}()

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v; want context.Canceled", err)
	}
	if h.calls != 0 {
		t.Fatalf("handler invoked %d times after cancellation; want 0", h.calls)
	}
}

func TestStreamCancelledContextStopsPulling(t *testing.T) {
	h := &countingHandler[int]{inner: SuppressAll[int]()}
	c := New[int](h)
	var pulls int
	s := c.Stream(NewStream(func(ctx context.Context) (int, error) {
		pulls++
		return 1, nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.Next(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v; want context.Canceled", err)
	}
	if pulls != 0 {
		t.Fatalf("pulled %d times from a cancelled context; want 0", pulls)
	}
	if h.calls != 0 {
		t.Fatalf("handler invoked %d times; want 0", h.calls)
	}
}

func TestStreamFromChan(t *testing.T) {
	ch := make(chan int, 3)
	ch <- 1
	ch <- 2
	ch <- 3
	close(ch)

	c := New(SuppressAll[int]())
	got, err := c.Stream(FromChan(ch)).ToSlice(context.Background())
	if err != nil {
		t.Fatalf("ToSlice failed: %v", err)
	}
	if !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Fatalf("got %v; want [1 2 3]", got)
	}
}

func TestStreamToChan(t *testing.T) {
	c := New(SuppressAll[int]())
	s := c.Stream(conversionStream([]string{"1", "bad", "3"}))

	ch, errCh := s.ToChan(context.Background())
	var got []int
	for v := range ch {
		got = append(got, v)
	}
	if err := <-errCh; err != nil {
		t.Fatalf("ToChan reported error: %v", err)
	}
	if !reflect.DeepEqual(got, []int{1, 3}) {
		t.Fatalf("got %v; want [1 3]", got)
	}
}

func TestStreamForEach(t *testing.T) {
	c := New(Fallback(0))
	var got []int
	err := c.Stream(conversionStream([]string{"1", "x", "3"})).ForEach(context.Background(), func(v int) error {
		got = append(got, v)
		return nil
	})
	if err != nil {
		t.Fatalf("ForEach failed: %v", err)
	}
	if !reflect.DeepEqual(got, []int{1, 0, 3}) {
		t.Fatalf("got %v; want [1 0 3]", got)
	}
}
