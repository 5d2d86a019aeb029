package conveyor

import (
	"strconv"

	"github.com/ygrebnov/errorc"
)

// ComputeFunc produces the result for one item key. Implementations must be
// deterministic and free of side effects; they may be arbitrarily expensive.
// A returned error makes the consumer log and skip the item, leaving its slot
// empty; the gap is reported as ErrIncompleteResults after joins.
type ComputeFunc[R any] func(key int) (R, error)

// Validator checks the fully assembled results after all goroutines have been
// joined. It runs single-threaded on the orchestrator.
type Validator[R any] func(values []R) error

// Fibonacci computes the n-th Fibonacci number with the naive recursion,
// intentionally inefficient so each item burns real CPU time.
// Keys below 1 yield ErrInvalidKey.
func Fibonacci(n int) (int, error) {
	if n < 1 {
		return 0, errorc.With(ErrInvalidKey, errorc.String("key", strconv.Itoa(n)))
	}
	return fib(n), nil
}

func fib(n int) int {
	if n <= 2 {
		return 1
	}
	return fib(n-1) + fib(n-2)
}

// FibonacciChainValidator validates results of a Fibonacci pipeline over the
// key range starting at start: the first two slots are checked against the
// function itself and every later slot against the recurrence
// values[i] == values[i-1] + values[i-2]. Anchors that do not exist (fewer
// than one or two slots) are skipped, so an empty run validates cleanly.
func FibonacciChainValidator(start int) Validator[int] {
	return func(values []int) error {
		for i := 0; i < 2 && i < len(values); i++ {
			want, err := Fibonacci(start + i)
			if err != nil {
				return err
			}
			if values[i] != want {
				return chainMismatch(i, values[i], want)
			}
		}
		for i := 2; i < len(values); i++ {
			if want := values[i-1] + values[i-2]; values[i] != want {
				return chainMismatch(i, values[i], want)
			}
		}
		return nil
	}
}

func chainMismatch(position, got, want int) error {
	return errorc.With(ErrValidationFailed,
		errorc.String("position", strconv.Itoa(position)),
		errorc.String("got", strconv.Itoa(got)),
		errorc.String("want", strconv.Itoa(want)),
	)
}
