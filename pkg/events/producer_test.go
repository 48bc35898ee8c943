package events

import (
	"errors"
	"sync"
	"testing"

	"github.com/vnykmshr/eventflow/internal/testutil"
	"github.com/vnykmshr/eventflow/pkg/atomicslot"
)

// collect subscribes a recorder that keeps updates and the final completion.
func collect[U, C any](ch Channel[U, C]) (*testutil.Recorder[U], *testutil.Recorder[Completion[C]]) {
	updates := testutil.NewRecorder[U]()
	completions := testutil.NewRecorder[Completion[C]]()
	ch.Subscribe(func(ev Event[U, C]) {
		if v, ok := ev.Update(); ok {
			updates.Append(v)
		} else if c, ok := ev.Completion(); ok {
			completions.Append(c)
		}
	})
	return updates, completions
}

func TestProducerDeliversInEmissionOrder(t *testing.T) {
	p := NewProducer[int, string]()
	updates, completions := collect[int, string](p)

	p.Update(1)
	p.Update(2)
	p.Update(3)
	p.Complete(Succeed("done"))

	testutil.AssertSliceEqual(t, updates.Values(), []int{1, 2, 3})
	testutil.AssertEqual(t, completions.Len(), 1)
	v, _ := completions.Values()[0].Value()
	testutil.AssertEqual(t, v, "done")
}

func TestProducerFansOutToAllSubscribers(t *testing.T) {
	p := NewProducer[int, string]()

	a, _ := collect[int, string](p)
	b, _ := collect[int, string](p)

	p.Update(10)
	p.Update(20)

	testutil.AssertSliceEqual(t, a.Values(), []int{10, 20})
	testutil.AssertSliceEqual(t, b.Values(), []int{10, 20})
}

func TestProducerNoReplayForLateSubscriber(t *testing.T) {
	p := NewProducer[int, string]()
	p.Update(1)

	updates, _ := collect[int, string](p)
	p.Update(2)

	testutil.AssertSliceEqual(t, updates.Values(), []int{2})
}

func TestProducerCompletionIsTerminal(t *testing.T) {
	p := NewProducer[int, string]()
	updates, completions := collect[int, string](p)

	p.Complete(Succeed("first"))
	p.Update(99)
	p.Complete(Succeed("second"))
	p.Fail(errors.New("late"))

	testutil.AssertEqual(t, updates.Len(), 0)
	testutil.AssertEqual(t, completions.Len(), 1)
	v, _ := completions.Values()[0].Value()
	testutil.AssertEqual(t, v, "first")

	final, ok := p.Final()
	testutil.AssertEqual(t, ok, true)
	fv, _ := final.Value()
	testutil.AssertEqual(t, fv, "first")
}

func TestProducerFail(t *testing.T) {
	p := NewProducer[int, string]()
	_, completions := collect[int, string](p)

	cause := errors.New("boom")
	p.Fail(cause)

	testutil.AssertEqual(t, completions.Len(), 1)
	testutil.AssertEqual(t, completions.Values()[0].Err(), cause)
	testutil.AssertEqual(t, p.Completed(), true)
}

func TestSubscribeAfterCompletionReceivesCompletion(t *testing.T) {
	p := NewProducer[int, string]()
	p.Complete(Succeed("done"))

	updates, completions := collect[int, string](p)

	testutil.AssertEqual(t, updates.Len(), 0)
	testutil.AssertEqual(t, completions.Len(), 1)
}

func TestRegistrationCancelStopsDelivery(t *testing.T) {
	p := NewProducer[int, string]()
	updates := testutil.NewRecorder[int]()
	reg := p.Subscribe(func(ev Event[int, string]) {
		if v, ok := ev.Update(); ok {
			updates.Append(v)
		}
	})

	p.Update(1)
	reg.Cancel()
	reg.Cancel() // idempotent
	p.Update(2)
	p.Complete(Succeed("done"))

	testutil.AssertSliceEqual(t, updates.Values(), []int{1})
}

func TestNilHandlerRegistrationIsInert(t *testing.T) {
	p := NewProducer[int, string]()
	reg := p.Subscribe(nil)
	reg.Cancel()

	p.Update(1)
	p.Complete(Succeed("done"))
}

func TestProducerSlotStrategies(t *testing.T) {
	for name, strategy := range map[string]atomicslot.Strategy{
		"Mutex":     atomicslot.Mutex,
		"Spin":      atomicslot.Spin,
		"Semaphore": atomicslot.Semaphore,
	} {
		t.Run(name, func(t *testing.T) {
			p := NewProducerWithConfig[int, string](Config{SlotStrategy: strategy})
			updates, _ := collect[int, string](p)

			p.Update(5)
			testutil.AssertSliceEqual(t, updates.Values(), []int{5})
		})
	}
}

func TestConcurrentSubscribeDuringEmission(t *testing.T) {
	p := NewProducer[int, string]()

	const subscribers = 50
	const updates = 200

	var wg sync.WaitGroup
	recorders := make([]*testutil.Recorder[int], subscribers)

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < updates; i++ {
			p.Update(i)
		}
		p.Complete(Succeed("done"))
	}()

	for s := 0; s < subscribers; s++ {
		wg.Add(1)
		go func(s int) {
			defer wg.Done()
			rec := testutil.NewRecorder[int]()
			recorders[s] = rec
			p.Subscribe(func(ev Event[int, string]) {
				if v, ok := ev.Update(); ok {
					rec.Append(v)
				}
			})
		}(s)
	}
	wg.Wait()

	// Each subscriber sees a contiguous suffix of the emission sequence, in
	// order, starting from whenever it attached.
	for _, rec := range recorders {
		values := rec.Values()
		for i := 1; i < len(values); i++ {
			if values[i] != values[i-1]+1 {
				t.Fatalf("gap in delivered sequence: %v", values)
			}
		}
	}
}

func TestConcurrentCompleteDeliversExactlyOnce(t *testing.T) {
	p := NewProducer[int, string]()
	_, completions := collect[int, string](p)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p.Complete(Succeed("done"))
		}(i)
	}
	wg.Wait()

	testutil.AssertEqual(t, completions.Len(), 1)
}
