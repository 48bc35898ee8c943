package events

import (
	"sync"
	"testing"
	"time"

	"github.com/vnykmshr/eventflow/internal/testutil"
)

func TestQueueFIFO(t *testing.T) {
	q := newEventQueue[int](10, "", nil)

	testutil.AssertNoError(t, q.push(1))
	testutil.AssertNoError(t, q.push(2))
	testutil.AssertNoError(t, q.push(3))
	testutil.AssertEqual(t, q.depth(), 3)

	for want := 1; want <= 3; want++ {
		v, ok := q.pop()
		testutil.AssertEqual(t, ok, true)
		testutil.AssertEqual(t, v, want)
	}
	testutil.AssertEqual(t, q.depth(), 0)
}

func TestQueueBlocksWhenFull(t *testing.T) {
	q := newEventQueue[int](2, "", nil)

	testutil.AssertNoError(t, q.push(1))
	testutil.AssertNoError(t, q.push(2))

	pushed := make(chan struct{})
	go func() {
		_ = q.push(3)
		close(pushed)
	}()

	select {
	case <-pushed:
		t.Fatal("push should block on a full queue")
	case <-time.After(20 * time.Millisecond):
	}

	v, ok := q.pop()
	testutil.AssertEqual(t, ok, true)
	testutil.AssertEqual(t, v, 1)

	select {
	case <-pushed:
	case <-time.After(time.Second):
		t.Fatal("push should unblock after a pop")
	}
}

func TestQueueUnbounded(t *testing.T) {
	q := newEventQueue[int](-1, "", nil)

	for i := 0; i < 10000; i++ {
		testutil.AssertNoError(t, q.push(i))
	}
	testutil.AssertEqual(t, q.depth(), 10000)
}

func TestQueueDefaultBound(t *testing.T) {
	q := newEventQueue[int](0, "", nil)
	testutil.AssertEqual(t, q.bound, defaultQueueBound)
}

func TestQueuePopBlocksUntilPush(t *testing.T) {
	q := newEventQueue[int](10, "", nil)

	got := make(chan int)
	go func() {
		v, _ := q.pop()
		got <- v
	}()

	time.Sleep(10 * time.Millisecond)
	testutil.AssertNoError(t, q.push(7))
	testutil.AssertEqual(t, <-got, 7)
}

func TestQueueCloseWakesWaiters(t *testing.T) {
	q := newEventQueue[int](10, "", nil)

	done := make(chan bool)
	go func() {
		_, ok := q.pop()
		done <- ok
	}()

	time.Sleep(10 * time.Millisecond)
	q.close()
	testutil.AssertEqual(t, <-done, false)

	testutil.AssertEqual(t, q.push(1), errQueueClosed)
	q.close() // idempotent
}

func TestQueueCloseKeepsBufferedEvents(t *testing.T) {
	q := newEventQueue[int](10, "", nil)
	testutil.AssertNoError(t, q.push(1))
	q.close()

	v, ok := q.pop()
	testutil.AssertEqual(t, ok, true)
	testutil.AssertEqual(t, v, 1)

	_, ok = q.pop()
	testutil.AssertEqual(t, ok, false)
}

func TestQueueConcurrentProducersConsumers(t *testing.T) {
	q := newEventQueue[int](8, "", nil)

	const producers = 4
	const perProducer = 500

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				_ = q.push(i)
			}
		}()
	}

	rec := testutil.NewRecorder[int]()
	var consumers sync.WaitGroup
	for c := 0; c < 2; c++ {
		consumers.Add(1)
		go func() {
			defer consumers.Done()
			for {
				v, ok := q.pop()
				if !ok {
					return
				}
				rec.Append(v)
			}
		}()
	}

	wg.Wait()
	q.close()
	consumers.Wait()

	testutil.AssertEqual(t, rec.Len(), producers*perProducer)
}
