package events

import (
	"sync/atomic"

	"github.com/vnykmshr/eventflow/pkg/atomicslot"
	"github.com/vnykmshr/eventflow/pkg/metrics"
)

// Handler consumes events delivered to a subscriber. Handlers are invoked on
// the emitting goroutine and are expected to return immediately, enqueueing
// expensive work on their own executor.
type Handler[U, C any] func(Event[U, C])

// Channel is the read side of an event stream. Any number of consumers may
// attach independently; each sees the event sequence from its moment of
// attachment forward.
type Channel[U, C any] interface {
	// Subscribe registers a handler for future events. If the channel has
	// already completed, the handler immediately receives the remembered
	// completion, so consumers never wait on a finished channel.
	Subscribe(handler Handler[U, C]) *Registration
}

// Registration identifies one subscription. Cancel detaches the handler.
type Registration struct {
	cancel func()
}

// Cancel deregisters the subscription. Events already being delivered may
// still arrive; no new deliveries begin after Cancel returns. Idempotent.
func (r *Registration) Cancel() {
	if r != nil && r.cancel != nil {
		r.cancel()
	}
}

// subscriber is a node in the producer's subscriber chain. Nodes are
// tombstoned on cancel rather than unlinked, which keeps the chain a simple
// prepend-only structure under the slot's atomic head swap.
type subscriber[U, C any] struct {
	handler Handler[U, C]
	next    *subscriber[U, C]

	removed atomic.Bool
	// done latches when the completion has been delivered to this
	// subscriber; nothing is delivered past it.
	done atomic.Bool
}

// Config holds configuration for a Producer.
type Config struct {
	// Name identifies the channel in metrics. Empty disables instrumentation.
	Name string

	// Metrics is the registry to instrument against. Nil with a non-empty
	// Name uses metrics.DefaultRegistry.
	Metrics *metrics.Registry

	// SlotStrategy selects the subscriber-list synchronization backend.
	// The zero value is the platform default (lock-free).
	SlotStrategy atomicslot.Strategy
}

// Producer is the write side of an event stream. It owns the subscriber list
// and fans every emitted event out to all live subscribers, in emission
// order, with the completion delivered exactly once per subscriber.
//
// Multiple goroutines may call Update and Complete concurrently; the
// subscriber list is the only shared state and is protected solely by the
// atomic slot.
type Producer[U, C any] struct {
	config Config
	reg    *metrics.Registry

	subs  atomicslot.Slot[subscriber[U, C]]
	final atomicslot.Slot[Completion[C]]
}

// NewProducer creates a producer with default configuration.
func NewProducer[U, C any]() *Producer[U, C] {
	return NewProducerWithConfig[U, C](Config{})
}

// NewProducerWithConfig creates a producer with the specified configuration.
func NewProducerWithConfig[U, C any](config Config) *Producer[U, C] {
	p := &Producer[U, C]{
		config: config,
		subs:   atomicslot.NewWithStrategy[subscriber[U, C]](config.SlotStrategy),
		final:  atomicslot.NewWithStrategy[Completion[C]](config.SlotStrategy),
	}
	if config.Name != "" {
		p.reg = config.Metrics
		if p.reg == nil {
			p.reg = metrics.DefaultRegistry
		}
	}
	return p
}

// Subscribe implements Channel.
func (p *Producer[U, C]) Subscribe(handler Handler[U, C]) *Registration {
	if handler == nil {
		return &Registration{}
	}

	node := &subscriber[U, C]{handler: handler}
	p.subs.Update(func(head *subscriber[U, C]) *subscriber[U, C] {
		// node is not yet visible to other goroutines, so relinking it on a
		// lock-free retry has no observable side effects.
		node.next = head
		return node
	})

	if p.reg != nil {
		p.reg.SubscriptionsTotal.WithLabelValues(p.config.Name).Inc()
		p.reg.SubscribersActive.WithLabelValues(p.config.Name).Inc()
	}

	// A completion emitted before this subscription is delivered now, so the
	// subscriber never waits on a finished channel.
	if final := p.final.Head(); final != nil {
		p.deliverCompletion(node, *final)
	}

	return &Registration{
		cancel: func() {
			if node.removed.CompareAndSwap(false, true) && p.reg != nil {
				p.reg.SubscribersActive.WithLabelValues(p.config.Name).Dec()
			}
		},
	}
}

// Update emits an update event to every live subscriber. After the producer
// has completed, Update is a silent no-op, keeping producers robust against
// racy shutdown sequences.
func (p *Producer[U, C]) Update(value U) {
	if p.Completed() {
		return
	}

	ev := NewUpdate[U, C](value)
	for node := p.subs.Head(); node != nil; node = node.next {
		if node.removed.Load() || node.done.Load() {
			continue
		}
		node.handler(ev)
	}

	if p.reg != nil {
		p.reg.EventsEmitted.WithLabelValues(p.config.Name).Inc()
	}
}

// Complete emits the terminal completion event to every live subscriber and
// marks the producer finished. Only the first call takes effect; later calls
// to Update, Complete, and Fail are silent no-ops.
func (p *Producer[U, C]) Complete(c Completion[C]) {
	old, _ := p.final.Update(func(old *Completion[C]) *Completion[C] {
		if old != nil {
			return old
		}
		stored := c
		return &stored
	})
	if old != nil {
		// Lost the race; another goroutine's completion stands.
		return
	}

	for node := p.subs.Head(); node != nil; node = node.next {
		p.deliverCompletion(node, c)
	}

	if p.reg != nil {
		p.reg.CompletionsDelivered.WithLabelValues(p.config.Name, completionOutcome(c)).Inc()
	}
}

// Fail completes the producer with a failure carrying err.
func (p *Producer[U, C]) Fail(err error) {
	p.Complete(Failure[C](err))
}

// Completed reports whether the producer has delivered its completion.
func (p *Producer[U, C]) Completed() bool {
	return p.final.Head() != nil
}

// Final returns the completion and true once the producer has completed.
func (p *Producer[U, C]) Final() (Completion[C], bool) {
	if final := p.final.Head(); final != nil {
		return *final, true
	}
	return Completion[C]{}, false
}

// deliverCompletion delivers the completion to a single subscriber at most
// once, racing Subscribe against Complete safely.
func (p *Producer[U, C]) deliverCompletion(node *subscriber[U, C], c Completion[C]) {
	if node.removed.Load() {
		return
	}
	if !node.done.CompareAndSwap(false, true) {
		return
	}
	node.handler(NewCompletion[U, C](c))
}

func completionOutcome[C any](c Completion[C]) string {
	switch {
	case c.Canceled():
		return "canceled"
	case c.Failed():
		return "failure"
	default:
		return "success"
	}
}
