package atomicslot

import (
	"runtime"
	"sync/atomic"
)

// spinSlot implements Slot with a busy-spin lock. Intended for very short
// critical sections on platforms where parking a goroutine costs more than
// a handful of failed acquisition attempts.
type spinSlot[T any] struct {
	locked atomic.Bool
	head   *T
}

func (s *spinSlot[T]) lock() {
	for !s.locked.CompareAndSwap(false, true) {
		// Yield so the holder can run; pure spinning starves single-proc
		// schedulers.
		runtime.Gosched()
	}
}

func (s *spinSlot[T]) unlock() {
	s.locked.Store(false)
}

// Update implements Slot.Update.
func (s *spinSlot[T]) Update(transform func(old *T) *T) (*T, *T) {
	s.lock()
	defer s.unlock()

	old := s.head
	s.head = transform(old)
	return old, s.head
}

// Head implements Slot.Head.
func (s *spinSlot[T]) Head() *T {
	s.lock()
	defer s.unlock()
	return s.head
}
