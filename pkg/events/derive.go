package events

import (
	"github.com/vnykmshr/eventflow/pkg/executor"
	"github.com/vnykmshr/eventflow/pkg/lifetime"
	"github.com/vnykmshr/eventflow/pkg/metrics"
)

// Options configures a derived channel.
type Options struct {
	// Scope binds the derivation to an object's lifetime. If the scope is
	// dead by the time a scheduled body runs, update events are dropped and
	// a completion is converted into a cancellation completion.
	Scope lifetime.Context

	// Executor runs the transform bodies. Nil falls back to the scope's
	// default executor, then to the primary executor.
	Executor executor.Executor

	// Token requests cooperative cancellation independent of the scope.
	// Firing it completes the derived channel with a cancellation exactly
	// once and stops further delivery.
	Token *lifetime.Token

	// BufferSize bounds the undelivered events queued between the source and
	// the executor. 0 picks the implementation default (64), a negative
	// value removes the bound, a positive value bounds the queue at that
	// size. When a bounded queue is full the source's emitting goroutine
	// blocks until space frees up.
	BufferSize int

	// Name identifies the derived channel in metrics. Empty disables
	// instrumentation.
	Name string

	// Metrics is the registry to instrument against. Nil with a non-empty
	// Name uses metrics.DefaultRegistry.
	Metrics *metrics.Registry
}

// Body receives one source event per invocation and feeds the derived
// producer. It runs on the derivation's executor. The executor is passed
// through so a body can schedule follow-up work of its own.
type Body[U1, C1, U2, C2 any] func(scope lifetime.Context, ev Event[U1, C1], out *Producer[U2, C2], exec executor.Executor)

// Derive creates a channel fed by invoking body once per event received from
// src. It is the single primitive all operators are built from.
//
// Events are buffered per Options.BufferSize and handed to the executor one
// at a time, so the derived channel observes source events in source order
// regardless of the executor's internal parallelism. The derivation tears
// itself down when the derived producer reaches a terminal state.
func Derive[U1, C1, U2, C2 any](src Channel[U1, C1], opts Options, body Body[U1, C1, U2, C2]) Channel[U2, C2] {
	return derive("derive", src, opts, body)
}

func derive[U1, C1, U2, C2 any](op string, src Channel[U1, C1], opts Options, body Body[U1, C1, U2, C2]) Channel[U2, C2] {
	d := &derivation[U1, C1, U2, C2]{
		op:   op,
		opts: opts,
		exec: resolveExecutor(opts),
		body: body,
		out: NewProducerWithConfig[U2, C2](Config{
			Name:    opts.Name,
			Metrics: opts.Metrics,
		}),
	}
	if opts.Name != "" {
		d.reg = opts.Metrics
		if d.reg == nil {
			d.reg = metrics.DefaultRegistry
		}
	}
	d.queue = newEventQueue[Event[U1, C1]](opts.BufferSize, opts.Name, d.reg)

	d.registration = src.Subscribe(func(ev Event[U1, C1]) {
		// Push applies the configured backpressure; a closed queue means the
		// derivation already reached a terminal state and the event is moot.
		_ = d.queue.push(ev)
	})

	if opts.Token != nil {
		opts.Token.OnCancel(func() {
			d.out.Complete(Canceled[C2]())
			d.teardown()
		})
	}

	go d.pump()

	return d.out
}

// derivation carries the runtime state of one Derive call.
type derivation[U1, C1, U2, C2 any] struct {
	op   string
	opts Options
	exec executor.Executor
	body Body[U1, C1, U2, C2]
	out  *Producer[U2, C2]
	reg  *metrics.Registry

	queue        *eventQueue[Event[U1, C1]]
	registration *Registration
}

// pump drains the queue, running the body on the executor one event at a
// time. Waiting for each invocation keeps per-derivation ordering intact
// even on a multi-worker executor and lets the queue's bound act as real
// backpressure.
func (d *derivation[U1, C1, U2, C2]) pump() {
	defer d.teardown()

	for {
		ev, ok := d.queue.pop()
		if !ok {
			return
		}

		done := make(chan struct{})
		d.exec.Submit(func() {
			defer close(done)
			d.process(ev)
		})
		<-done

		if d.out.Completed() {
			return
		}
	}
}

// process runs the body for one event, honoring cancellation and scope
// liveness at dispatch time. Once the body has begun it runs to completion.
func (d *derivation[U1, C1, U2, C2]) process(ev Event[U1, C1]) {
	if d.out.Completed() {
		return
	}

	if d.opts.Token != nil && d.opts.Token.Canceled() {
		d.out.Complete(Canceled[C2]())
		return
	}

	if d.opts.Scope != nil && !d.opts.Scope.Alive() {
		// A dead scope drops updates, but a completion still flows so the
		// derived channel never hangs: it arrives as a cancellation.
		if ev.IsCompletion() {
			d.out.Complete(Canceled[C2]())
		} else if d.reg != nil {
			d.reg.EventsSkipped.WithLabelValues(d.opts.Name, "context_dead").Inc()
		}
		return
	}

	d.body(d.opts.Scope, ev, d.out, d.exec)

	if d.reg != nil {
		d.reg.TransformsExecuted.WithLabelValues(d.op, d.opts.Name).Inc()
		if f, ok := d.out.Final(); ok && f.Failed() && !f.Canceled() && !ev.IsCompletion() {
			// The body turned an update into a terminal failure.
			d.reg.TransformErrors.WithLabelValues(d.op, d.opts.Name).Inc()
		}
	}
}

// teardown detaches from the source and releases the queue. Safe to call
// more than once.
func (d *derivation[U1, C1, U2, C2]) teardown() {
	d.registration.Cancel()
	d.queue.close()
}

// resolveExecutor applies the executor fallback chain: explicit executor,
// then the scope's default, then the process-wide primary executor.
func resolveExecutor(opts Options) executor.Executor {
	if opts.Executor != nil {
		return opts.Executor
	}
	if opts.Scope != nil {
		if exec := opts.Scope.Executor(); exec != nil {
			return exec
		}
	}
	return executor.Primary()
}
