/*
Package atomicslot provides a thread-safe single-slot container with atomic
read-modify-write semantics.

A Slot holds an optional head value and replaces it atomically through a
caller-supplied transform function. The typical use is holding the head of an
immutable singly-linked list shared between concurrent readers and writers,
such as a subscriber registry: each write prepends a freshly allocated node,
and readers walk whatever snapshot of the chain they observe.

Backends:

Four interchangeable synchronization strategies are available, selected once
at construction. They satisfy identical correctness contracts (exactly one
logical replacement per Update call, no torn reads, no lost updates) and
differ only in liveness:

  - LockFree: atomic pointer CAS retry loop; never blocks, but may invoke
    the transform more than once under contention
  - Mutex: runtime mutex; transform runs exactly once under exclusion
  - Spin: busy-spin lock with scheduler yields
  - Semaphore: binary counting semaphore used as a mutex

Basic Usage:

	type node struct {
		value int
		next  *node
	}

	slot := atomicslot.New[node]()

	// Prepend atomically; the transform must be pure.
	slot.Update(func(head *node) *node {
		return &node{value: 42, next: head}
	})

	for n := slot.Head(); n != nil; n = n.next {
		fmt.Println(n.value)
	}

Transform Purity:

The transform passed to Update must have no observable side effects beyond
its return value. The lock-free backend retries the whole read-transform-CAS
cycle when another goroutine wins the race, discarding the rejected result.
Allocating the replacement value inside the transform is expected; mutating
shared state is not.

Because every head value is a distinct allocation, comparing pointer identity
in the CAS is sufficient to detect concurrent replacement. Implementations
that reuse allocations would need a version tag; this package does not.
*/
package atomicslot
