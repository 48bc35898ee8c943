package events

import "errors"

// ErrCanceled is the failure carried by a cancellation-flavored completion.
// Consumers distinguish deliberate stops from transform failures with
// errors.Is(c.Err(), ErrCanceled).
var ErrCanceled = errors.New("channel canceled")

// errUnspecified substitutes for a nil error passed to a failure
// constructor, so a failure always carries a non-nil error.
var errUnspecified = errors.New("unspecified failure")

// Completion is the terminal outcome of a channel: either a success value or
// a failure error, never both and never neither.
type Completion[C any] struct {
	value C
	err   error
}

// Succeed creates a success completion carrying v.
func Succeed[C any](v C) Completion[C] {
	return Completion[C]{value: v}
}

// Failure creates a failure completion carrying err. A nil err is replaced
// with a generic failure so the two-state invariant holds.
func Failure[C any](err error) Completion[C] {
	if err == nil {
		err = errUnspecified
	}
	return Completion[C]{err: err}
}

// Canceled creates the cancellation-flavored failure completion.
func Canceled[C any]() Completion[C] {
	return Failure[C](ErrCanceled)
}

// Value returns the success value and true, or the zero value and false for
// a failure.
func (c Completion[C]) Value() (C, bool) {
	return c.value, c.err == nil
}

// Err returns the failure error, or nil for a success.
func (c Completion[C]) Err() error {
	return c.err
}

// Failed reports whether the completion is a failure.
func (c Completion[C]) Failed() bool {
	return c.err != nil
}

// Canceled reports whether the completion is a cancellation.
func (c Completion[C]) Canceled() bool {
	return errors.Is(c.err, ErrCanceled)
}

// Event is a single emission on a channel: any number of update events
// followed by exactly one completion event.
type Event[U, C any] struct {
	update     U
	completion Completion[C]
	terminal   bool
}

// NewUpdate creates an update event carrying v.
func NewUpdate[U, C any](v U) Event[U, C] {
	return Event[U, C]{update: v}
}

// NewCompletion creates the terminal completion event.
func NewCompletion[U, C any](c Completion[C]) Event[U, C] {
	return Event[U, C]{completion: c, terminal: true}
}

// Update returns the update value and true, or the zero value and false for
// a completion event.
func (e Event[U, C]) Update() (U, bool) {
	if e.terminal {
		var zero U
		return zero, false
	}
	return e.update, true
}

// Completion returns the completion and true, or the zero completion and
// false for an update event.
func (e Event[U, C]) Completion() (Completion[C], bool) {
	if !e.terminal {
		return Completion[C]{}, false
	}
	return e.completion, true
}

// IsCompletion reports whether the event is the terminal completion.
func (e Event[U, C]) IsCompletion() bool {
	return e.terminal
}
