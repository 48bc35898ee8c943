package atomicslot

import "sync"

// mutexSlot implements Slot with the runtime's lightweight mutex.
// The transform runs exactly once inside a bounded critical section.
type mutexSlot[T any] struct {
	mu   sync.Mutex
	head *T
}

// Update implements Slot.Update.
func (s *mutexSlot[T]) Update(transform func(old *T) *T) (*T, *T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.head
	s.head = transform(old)
	return old, s.head
}

// Head implements Slot.Head.
func (s *mutexSlot[T]) Head() *T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.head
}
