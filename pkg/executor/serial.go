package executor

import "sync"

// Serial is an Executor that runs all submitted work on a single dedicated
// goroutine, in submission order. The queue is unbounded, so Submit never
// blocks; use it when strict cross-event ordering matters more than bounded
// memory.
type Serial struct {
	mu       sync.Mutex
	cond     *sync.Cond
	queue    []func()
	shutdown bool
	stopped  chan struct{}
}

// NewSerial creates a serial executor and starts its goroutine.
func NewSerial() *Serial {
	s := &Serial{
		stopped: make(chan struct{}),
	}
	s.cond = sync.NewCond(&s.mu)
	go s.run()
	return s
}

// Submit implements Executor. Work submitted after Shutdown is discarded.
func (s *Serial) Submit(work func()) {
	if work == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.shutdown {
		return
	}
	s.queue = append(s.queue, work)
	s.cond.Signal()
}

// Shutdown stops the executor after draining already-queued work. The
// returned channel closes when the goroutine has exited.
func (s *Serial) Shutdown() <-chan struct{} {
	s.mu.Lock()
	if !s.shutdown {
		s.shutdown = true
		s.cond.Signal()
	}
	s.mu.Unlock()
	return s.stopped
}

// QueueLen returns the current number of queued work items.
func (s *Serial) QueueLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

func (s *Serial) run() {
	defer close(s.stopped)

	for {
		s.mu.Lock()
		for len(s.queue) == 0 && !s.shutdown {
			s.cond.Wait()
		}
		if len(s.queue) == 0 && s.shutdown {
			s.mu.Unlock()
			return
		}
		work := s.queue[0]
		s.queue[0] = nil
		s.queue = s.queue[1:]
		s.mu.Unlock()

		runProtected(work, nil)
	}
}
