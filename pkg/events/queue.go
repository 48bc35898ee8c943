package events

import (
	"errors"
	"sync"

	"github.com/vnykmshr/eventflow/pkg/metrics"
)

// errQueueClosed is returned when pushing to a closed derivation queue.
var errQueueClosed = errors.New("derivation queue is closed")

// defaultQueueBound is the capacity used when a derivation does not specify
// a buffer size.
const defaultQueueBound = 64

// eventQueue buffers events between a source channel and the pump that feeds
// the derived producer. A bounded queue applies backpressure by blocking the
// pushing goroutine until space frees up; an unbounded queue grows without
// limit. This blocking overflow policy is uniform across all operators.
type eventQueue[T any] struct {
	mu       sync.Mutex
	sendCond *sync.Cond
	recvCond *sync.Cond

	buf    []T
	head   int
	bound  int // 0 means unbounded
	closed bool

	name string
	reg  *metrics.Registry
}

// newEventQueue creates a queue. bufferSize follows the derivation
// convention: 0 picks the default bound, a negative value is unbounded, a
// positive value bounds the queue at that many undelivered events.
func newEventQueue[T any](bufferSize int, name string, reg *metrics.Registry) *eventQueue[T] {
	bound := bufferSize
	if bufferSize == 0 {
		bound = defaultQueueBound
	} else if bufferSize < 0 {
		bound = 0
	}

	q := &eventQueue[T]{bound: bound, name: name, reg: reg}
	q.sendCond = sync.NewCond(&q.mu)
	q.recvCond = sync.NewCond(&q.mu)
	return q
}

// push appends v, blocking while a bounded queue is full. It returns
// errQueueClosed if the queue is or becomes closed.
func (q *eventQueue[T]) push(v T) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	blocked := false
	for !q.closed && q.bound > 0 && q.size() >= q.bound {
		if !blocked {
			blocked = true
			if q.reg != nil {
				q.reg.BackpressureBlocks.WithLabelValues(q.name).Inc()
			}
		}
		q.sendCond.Wait()
	}
	if q.closed {
		return errQueueClosed
	}

	q.buf = append(q.buf, v)
	if q.reg != nil {
		q.reg.QueueDepth.WithLabelValues(q.name).Set(float64(q.size()))
	}
	q.recvCond.Signal()
	return nil
}

// pop removes the oldest event, blocking while the queue is open and empty.
// The second result is false once the queue is closed and drained.
func (q *eventQueue[T]) pop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for !q.closed && q.size() == 0 {
		q.recvCond.Wait()
	}
	if q.size() == 0 {
		var zero T
		return zero, false
	}

	v := q.buf[q.head]
	var zero T
	q.buf[q.head] = zero
	q.head++
	if q.head == len(q.buf) {
		q.buf = q.buf[:0]
		q.head = 0
	}

	if q.reg != nil {
		q.reg.QueueDepth.WithLabelValues(q.name).Set(float64(q.size()))
	}
	q.sendCond.Signal()
	return v, true
}

// close marks the queue closed and wakes all waiters. Buffered events remain
// available to pop. Idempotent.
func (q *eventQueue[T]) close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	q.sendCond.Broadcast()
	q.recvCond.Broadcast()
}

// depth returns the current number of buffered events.
func (q *eventQueue[T]) depth() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.size()
}

func (q *eventQueue[T]) size() int {
	return len(q.buf) - q.head
}
