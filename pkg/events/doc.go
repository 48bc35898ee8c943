/*
Package events provides multi-subscriber event channels with exactly-once
completion, plus the operator layer for deriving transformed channels.

Event Model:

A channel carries a stream of typed events: any number of update events
followed by exactly one completion event. The completion is itself a result,
either a success terminal value or a failure; cancellation is a distinguished
failure detectable with errors.Is against ErrCanceled.

	Active ──(updates)──▶ Active ──▶ Completed / Failed / Canceled

No events of any kind follow the completion. Calling Update or Complete on a
completed producer is a silent no-op, so racy shutdown sequences are safe by
construction.

Producers and Channels:

Producer is the write side; Channel is the read side. Any number of consumers
subscribe independently and each sees the event sequence from its moment of
attachment forward (no replay). The subscriber list is a prepend-only linked
chain whose head lives in an atomic slot, so subscription never blocks
producers and producers never block each other on list access. Unsubscribing
tombstones the node; delivery skips tombstoned entries.

	src := events.NewProducer[int, string]()

	reg := src.Subscribe(func(ev events.Event[int, string]) {
		if v, ok := ev.Update(); ok {
			fmt.Println("update:", v)
		} else if c, ok := ev.Completion(); ok {
			fmt.Println("done:", c.Err())
		}
	})
	defer reg.Cancel()

	src.Update(1)
	src.Complete(events.Succeed("all sent"))

Handlers run on the emitting goroutine and must return promptly; expensive
work belongs on an executor, which is exactly what the operator layer
arranges.

Operators:

Map, CompactMap, FlatMap, Filter, Unwrapped, and UnsafelyUnwrapped are all
built on one primitive, Derive, which subscribes to a source, buffers its
events, and runs a transform body on a configured executor bound to an
optional lifetime scope and cancellation token.

	scope := lifetime.NewScope(executor.NewSerial())

	evens := events.Filter[int, string](src, events.Options{Scope: scope},
		func(v int) (bool, error) { return v%2 == 0, nil })

	doubled := events.Map[int, string, int](evens, events.Options{Scope: scope},
		func(v int) (int, error) { return v * 2, nil })

A transform or predicate error never unwinds across the package boundary: it
becomes a failure completion on the derived channel, delivered like any other
event.

Buffering and Backpressure:

Each derivation buffers undelivered events between the source and the
executor. Options.BufferSize of 0 selects the default bound (64), a negative
value removes the bound, and a positive value bounds the queue at that size.
The overflow policy is Block: a source emitting into a full bounded queue
waits until the derivation catches up. Events are handed to the executor one
at a time, so a derived channel observes source events in source order even
on a multi-worker executor.

Cancellation:

Cancellation is cooperative and checked at dispatch time. A dead scope drops
update events but converts a completion into a cancellation completion, so
downstream consumers never hang. A fired token completes the derived channel
with a cancellation exactly once. Once a body has begun executing it runs to
completion.
*/
package events
