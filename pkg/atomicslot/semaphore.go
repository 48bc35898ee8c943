package atomicslot

// semaphoreSlot implements Slot with a capacity-1 counting semaphore used as
// a binary mutex. This is the fallback for environments whose native mutex is
// unavailable or undesirable; a buffered channel gives the same exclusion
// guarantee with FIFO-ish fairness under contention.
type semaphoreSlot[T any] struct {
	sem  chan struct{}
	head *T
}

func newSemaphoreSlot[T any]() *semaphoreSlot[T] {
	return &semaphoreSlot[T]{
		sem: make(chan struct{}, 1),
	}
}

func (s *semaphoreSlot[T]) acquire() {
	s.sem <- struct{}{}
}

func (s *semaphoreSlot[T]) release() {
	<-s.sem
}

// Update implements Slot.Update.
func (s *semaphoreSlot[T]) Update(transform func(old *T) *T) (*T, *T) {
	s.acquire()
	defer s.release()

	old := s.head
	s.head = transform(old)
	return old, s.head
}

// Head implements Slot.Head.
func (s *semaphoreSlot[T]) Head() *T {
	s.acquire()
	defer s.release()
	return s.head
}
