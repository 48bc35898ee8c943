package atomicslot

import "sync/atomic"

// lockFreeSlot implements Slot with a CAS retry loop. Progress is guaranteed
// in the lock-free sense: a failed CAS means some other goroutine's update
// succeeded.
type lockFreeSlot[T any] struct {
	head atomic.Pointer[T]
}

// Update implements Slot.Update.
func (s *lockFreeSlot[T]) Update(transform func(old *T) *T) (*T, *T) {
	for {
		old := s.head.Load()
		next := transform(old)
		if s.head.CompareAndSwap(old, next) {
			return old, next
		}
		// Another goroutine replaced the head between Load and CAS.
		// Discard next and retry against the fresh head.
	}
}

// Head implements Slot.Head.
func (s *lockFreeSlot[T]) Head() *T {
	return s.head.Load()
}
