package events

import (
	"github.com/vnykmshr/eventflow/pkg/executor"
	"github.com/vnykmshr/eventflow/pkg/lifetime"
)

// Map creates a channel whose updates are transform applied to src's
// updates. A transform error fails the derived channel; the completion
// passes through verbatim.
func Map[U1, C, U2 any](src Channel[U1, C], opts Options, transform func(U1) (U2, error)) Channel[U2, C] {
	return derive("map", src, opts,
		func(_ lifetime.Context, ev Event[U1, C], out *Producer[U2, C], _ executor.Executor) {
			v, ok := ev.Update()
			if !ok {
				c, _ := ev.Completion()
				out.Complete(c)
				return
			}

			mapped, err := transform(v)
			if err != nil {
				out.Fail(err)
				return
			}
			out.Update(mapped)
		})
}

// CompactMap is Map for transforms that may yield no value: when the
// transform reports false, no update is forwarded for that input.
func CompactMap[U1, C, U2 any](src Channel[U1, C], opts Options, transform func(U1) (U2, bool, error)) Channel[U2, C] {
	return derive("compact_map", src, opts,
		func(_ lifetime.Context, ev Event[U1, C], out *Producer[U2, C], _ executor.Executor) {
			v, ok := ev.Update()
			if !ok {
				c, _ := ev.Completion()
				out.Complete(c)
				return
			}

			mapped, keep, err := transform(v)
			if err != nil {
				out.Fail(err)
				return
			}
			if keep {
				out.Update(mapped)
			}
		})
}

// FlatMap expands each source update into a finite ordered sequence of
// updates, forwarded in order before the next source event is processed.
func FlatMap[U1, C, U2 any](src Channel[U1, C], opts Options, transform func(U1) ([]U2, error)) Channel[U2, C] {
	return derive("flat_map", src, opts,
		func(_ lifetime.Context, ev Event[U1, C], out *Producer[U2, C], _ executor.Executor) {
			v, ok := ev.Update()
			if !ok {
				c, _ := ev.Completion()
				out.Complete(c)
				return
			}

			values, err := transform(v)
			if err != nil {
				out.Fail(err)
				return
			}
			for _, mapped := range values {
				out.Update(mapped)
			}
		})
}

// Filter forwards updates unchanged when the predicate holds. A predicate
// error fails the derived channel exactly as a Map transform error does;
// the completion always passes through unchanged.
func Filter[U, C any](src Channel[U, C], opts Options, predicate func(U) (bool, error)) Channel[U, C] {
	return derive("filter", src, opts,
		func(_ lifetime.Context, ev Event[U, C], out *Producer[U, C], _ executor.Executor) {
			v, ok := ev.Update()
			if !ok {
				c, _ := ev.Completion()
				out.Complete(c)
				return
			}

			keep, err := predicate(v)
			if err != nil {
				out.Fail(err)
				return
			}
			if keep {
				out.Update(v)
			}
		})
}

// Unwrapped maps each Result update to its success payload. The first
// failure result fails the derived channel with the result's error and stops
// further delivery. With no executor configured it runs on the immediate
// executor: unwrapping does no real work, so scheduling latency buys nothing.
func Unwrapped[T, C any](src Channel[Result[T], C], opts Options) Channel[T, C] {
	if opts.Executor == nil {
		opts.Executor = executor.Immediate()
	}
	return derive("unwrap", src, opts,
		func(_ lifetime.Context, ev Event[Result[T], C], out *Producer[T, C], _ executor.Executor) {
			r, ok := ev.Update()
			if !ok {
				c, _ := ev.Completion()
				out.Complete(c)
				return
			}

			v, ok := r.Value()
			if !ok {
				out.Fail(r.Error())
				return
			}
			out.Update(v)
		})
}

// UnsafelyUnwrapped is Unwrapped for sources that guarantee success results.
// A failure result violates that precondition and panics via
// Result.MustValue; all other paths in the package never abort.
func UnsafelyUnwrapped[T, C any](src Channel[Result[T], C], opts Options) Channel[T, C] {
	if opts.Executor == nil {
		opts.Executor = executor.Immediate()
	}
	return derive("unwrap", src, opts,
		func(_ lifetime.Context, ev Event[Result[T], C], out *Producer[T, C], _ executor.Executor) {
			r, ok := ev.Update()
			if !ok {
				c, _ := ev.Completion()
				out.Complete(c)
				return
			}
			out.Update(r.MustValue())
		})
}
