package catch_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/catchware/catch"
)

var errDivideByZero = errors.New("divide by zero")

func divide(a, b float64) (float64, error) {
	if b == 0 {
		return 0, errDivideByZero
	}
	return a / b, nil
}

func ExampleCatcher_Call() {
	c := catch.New(catch.Fallback(0.0))

	v, _, _ := c.Call(func() (float64, error) { return divide(10, 0) }, 10, 0)
	fmt.Println(v)

	v, _, _ = c.Call(func() (float64, error) { return divide(10, 2) }, 10, 2)
	fmt.Println(v)

	// Output:
	// 0
	// 5
}

func ExampleCatcher_Seq() {
	c := catch.New(catch.SuppressAll[int]())

	items := []string{"1", "2", "bad", "4"}
	var idx int
	src := catch.NewSeq(func() (int, error) {
		if idx >= len(items) {
			return 0, io.EOF
		}
		s := items[idx]
		idx++
		return strconv.Atoi(s)
	}, items)

	got, _ := c.Seq(src).Collect()
	fmt.Println(got)

	// Output:
	// [1 2 4]
}

func ExampleHandlerFunc() {
	c := catch.New(catch.HandlerFunc[int](func(_ context.Context, f catch.Failure) catch.Outcome[int] {
		if errors.Is(f.Err(), strconv.ErrSyntax) {
			return catch.Suppress[int]()
		}
		return catch.Propagate[int](f.Err())
	}))

	v, ok, err := c.Call(func() (int, error) { return strconv.Atoi("oops") }, "oops")
	fmt.Println(v, ok, err)

	// Output:
	// 0 false <nil>
}
