package atomicslot

// Strategy selects the synchronization backend used by a Slot.
// All backends provide identical external behavior; they differ only in
// liveness and performance characteristics.
type Strategy int

const (
	// LockFree uses an atomic pointer compare-and-swap retry loop.
	// The transform function may be invoked more than once under contention.
	LockFree Strategy = iota

	// Mutex uses the runtime's lightweight mutex. The transform runs
	// exactly once under exclusion.
	Mutex

	// Spin uses a busy-spin lock with scheduler yields between attempts.
	Spin

	// Semaphore uses a binary counting semaphore as a mutex.
	Semaphore
)

// Slot is a thread-safe single-slot container holding an optional head value.
// A nil head means the slot is empty. Each head value is a distinct owned
// allocation, so pointer identity is sufficient to detect concurrent
// replacement (no ABA hazard).
type Slot[T any] interface {
	// Update atomically replaces the head. The transform receives a snapshot
	// of the current head and returns its replacement. It must be a pure
	// function of its input: the lock-free backend may invoke it multiple
	// times under contention and discards the results of failed attempts.
	// Update returns the head that was replaced and the head that was stored.
	Update(transform func(old *T) *T) (old, head *T)

	// Head returns the current head, or nil if the slot is empty. The value
	// was current at some instant during the call; by the time the caller
	// observes it, it may have been superseded.
	Head() *T
}

// New creates a Slot using the platform default backend.
func New[T any]() Slot[T] {
	return NewWithStrategy[T](defaultStrategy())
}

// NewWithStrategy creates a Slot using the given backend. Unknown strategies
// fall back to the platform default.
func NewWithStrategy[T any](s Strategy) Slot[T] {
	switch s {
	case LockFree:
		return &lockFreeSlot[T]{}
	case Mutex:
		return &mutexSlot[T]{}
	case Spin:
		return &spinSlot[T]{}
	case Semaphore:
		return newSemaphoreSlot[T]()
	default:
		return NewWithStrategy[T](defaultStrategy())
	}
}

// defaultStrategy reports the preferred backend for this platform.
// Every port of the runtime supports single-word pointer compare-and-swap,
// so the lock-free backend is always eligible; the blocking backends remain
// available as explicit fallbacks.
func defaultStrategy() Strategy {
	return LockFree
}
