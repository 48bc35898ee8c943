package executor

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"
)

// Config holds configuration options for creating a pool executor.
type Config struct {
	// Workers is the number of worker goroutines. Must be greater than 0.
	Workers int

	// QueueSize is the capacity of the work queue. If 0, a default of 256
	// is used. Submitting to a full queue hands the work off on a fresh
	// goroutine so that Submit never blocks the caller.
	QueueSize int

	// PanicHandler is called when submitted work panics. If nil, the panic
	// and stack are written to stderr; panics never escape a worker.
	PanicHandler func(recovered interface{})

	// OnWorkerStart is called when a worker starts.
	OnWorkerStart func(workerID int)

	// OnWorkerStop is called when a worker stops.
	OnWorkerStop func(workerID int)
}

// Pool is a fixed-size worker-pool Executor.
type Pool struct {
	config Config

	queue        chan func()
	shutdownOnce sync.Once

	mu         sync.RWMutex
	isShutdown bool

	workerWg sync.WaitGroup
}

// NewPool creates a pool executor with the given worker count and queue size.
func NewPool(workers, queueSize int) *Pool {
	return NewPoolWithConfig(Config{
		Workers:   workers,
		QueueSize: queueSize,
	})
}

// NewPoolWithConfig creates a pool executor with the specified configuration.
func NewPoolWithConfig(config Config) *Pool {
	if config.Workers <= 0 {
		panic("executor: worker count must be positive")
	}
	if config.QueueSize <= 0 {
		config.QueueSize = 256
	}

	p := &Pool{
		config: config,
		queue:  make(chan func(), config.QueueSize),
	}

	for i := 0; i < config.Workers; i++ {
		p.workerWg.Add(1)
		go p.run(i)
	}

	return p
}

// Submit implements Executor. It enqueues the work without blocking: if the
// queue is full, the work is handed to a dedicated goroutine instead of
// making the caller wait. Work submitted after Shutdown is discarded.
func (p *Pool) Submit(work func()) {
	if work == nil {
		return
	}

	// The read lock also fences the send against Shutdown closing the queue.
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.isShutdown {
		return
	}

	select {
	case p.queue <- work:
	default:
		go p.execute(work)
	}
}

// Shutdown initiates a graceful shutdown. Queued work is completed; new work
// is discarded. The returned channel closes when all workers have stopped.
func (p *Pool) Shutdown() <-chan struct{} {
	p.shutdownOnce.Do(func() {
		p.mu.Lock()
		p.isShutdown = true
		close(p.queue)
		p.mu.Unlock()
	})

	done := make(chan struct{})
	go func() {
		p.workerWg.Wait()
		close(done)
	}()
	return done
}

// Size returns the number of workers in the pool.
func (p *Pool) Size() int {
	return p.config.Workers
}

// QueueLen returns the current number of queued work items.
func (p *Pool) QueueLen() int {
	return len(p.queue)
}

// run is the main loop for a worker.
func (p *Pool) run(id int) {
	defer p.workerWg.Done()

	if p.config.OnWorkerStart != nil {
		p.config.OnWorkerStart(id)
	}
	if p.config.OnWorkerStop != nil {
		defer p.config.OnWorkerStop(id)
	}

	for work := range p.queue {
		p.execute(work)
	}
}

// execute runs a single work item, containing any panic.
func (p *Pool) execute(work func()) {
	runProtected(work, p.config.PanicHandler)
}

// runProtected runs work and contains any panic. A nil handler logs the
// panic and stack to stderr.
func runProtected(work func(), handler func(recovered interface{})) {
	defer func() {
		if r := recover(); r != nil {
			if handler != nil {
				handler(r)
				return
			}
			fmt.Fprintf(os.Stderr, "executor: work panicked: %v\n%s\n", r, debug.Stack())
		}
	}()

	work()
}
