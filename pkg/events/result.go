package events

import "fmt"

// Result is a fallible value: a success carrying T or a failure carrying an
// error, exclusively. It is the update type consumed by Unwrapped and
// UnsafelyUnwrapped.
type Result[T any] struct {
	value T
	err   error
}

// Ok creates a success result.
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Err creates a failure result. A nil err is replaced with a generic failure
// so a Result always holds exactly one of value or error.
func Err[T any](err error) Result[T] {
	if err == nil {
		err = errUnspecified
	}
	return Result[T]{err: err}
}

// Value returns the success value and true, or the zero value and false for
// a failure.
func (r Result[T]) Value() (T, bool) {
	return r.value, r.err == nil
}

// Error returns the failure error, or nil for a success.
func (r Result[T]) Error() error {
	return r.err
}

// MustValue returns the success value, panicking on a failure. This is the
// one deliberately aborting path in the package; callers use it only when
// the producer guarantees success.
func (r Result[T]) MustValue() T {
	if r.err != nil {
		panic(fmt.Sprintf("events: MustValue on failure result: %v", r.err))
	}
	return r.value
}
