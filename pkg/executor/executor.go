package executor

import (
	"runtime"
	"sync"
)

// Executor runs units of work on some goroutine. Submit must return promptly:
// implementations may run the work synchronously only when that is their
// documented contract (Immediate), and must otherwise enqueue without waiting
// for execution.
type Executor interface {
	// Submit schedules work for execution. Work submitted after an executor
	// has been shut down is silently discarded.
	Submit(work func())
}

// Func adapts a function to the Executor interface.
type Func func(work func())

// Submit implements Executor.
func (f Func) Submit(work func()) { f(work) }

// immediate runs work synchronously on the calling goroutine.
type immediate struct{}

func (immediate) Submit(work func()) { work() }

var immediateInstance Executor = immediate{}

// Immediate returns the executor that runs work synchronously on the calling
// goroutine, with no scheduling latency. Use it for transforms that do no
// real work of their own.
func Immediate() Executor {
	return immediateInstance
}

var (
	primaryOnce sync.Once
	primary     *Pool
)

// Primary returns the process-wide general-purpose executor: a shared worker
// pool sized to the number of CPUs, created on first use and never shut down.
func Primary() Executor {
	primaryOnce.Do(func() {
		primary = NewPool(runtime.GOMAXPROCS(0), 256)
	})
	return primary
}
