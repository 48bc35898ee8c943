/*
Package eventflow provides reactive, cancellable, backpressure-aware event
channels shared across concurrent producers and consumers.

Atomic state (pkg/atomicslot):
  - Slot: thread-safe single-slot container with atomic read-modify-write
  - Interchangeable backends (lock-free CAS, mutex, spinlock, semaphore)

Event channels (pkg/events):
  - Producer/Channel: multi-subscriber event streams with exactly-once completion
  - Operators: Map, CompactMap, FlatMap, Filter, Unwrapped
  - Configurable buffering with blocking backpressure

Execution (pkg/executor, pkg/lifetime):
  - Executor: immediate, serial, and worker-pool executors
  - Scope and Token: lifetime binding and cooperative cancellation

Sources and bridges (pkg/emitter, pkg/bridge/redisbridge):
  - Ticker and cron-scheduled event producers
  - Redis Pub/Sub fan-out across processes

Example usage:

	import (
		"github.com/vnykmshr/eventflow/pkg/events"
		"github.com/vnykmshr/eventflow/pkg/executor"
	)

	src := events.NewProducer[int, string]()
	doubled := events.Map[int, string, int](src, events.Options{Executor: executor.Immediate()},
		func(v int) (int, error) { return v * 2, nil })

	doubled.Subscribe(func(ev events.Event[int, string]) {
		if v, ok := ev.Update(); ok {
			fmt.Println(v)
		}
	})

	src.Update(21)
	src.Complete(events.Succeed("done"))
*/
package eventflow
