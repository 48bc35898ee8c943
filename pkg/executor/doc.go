/*
Package executor provides the execution abstraction used by event pipelines:
a minimal Executor interface and several implementations with different
scheduling characteristics.

Key Components:
  - Executor: Submit(work func()) with prompt, non-blocking enqueue
  - Immediate: runs work synchronously on the calling goroutine
  - Primary: shared process-wide worker pool, created on first use
  - Pool: fixed-size worker pool with panic containment and graceful shutdown
  - Serial: single goroutine, strict FIFO ordering, unbounded queue

Ordering:

A Pool with more than one worker may reorder independently submitted work
items; callers that need cross-item ordering should use a Serial executor or
Immediate. Panics raised by submitted work never escape an executor: they are
routed to the configured PanicHandler or logged with a stack trace.

Basic Usage:

	pool := executor.NewPool(4, 100)
	defer pool.Shutdown()

	pool.Submit(func() {
		// runs on one of 4 workers
	})

	serial := executor.NewSerial()
	defer serial.Shutdown()

	serial.Submit(first)
	serial.Submit(second) // runs strictly after first
*/
package executor
