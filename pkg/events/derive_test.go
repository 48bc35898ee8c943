package events

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/vnykmshr/eventflow/internal/testutil"
	"github.com/vnykmshr/eventflow/pkg/executor"
	"github.com/vnykmshr/eventflow/pkg/lifetime"
)

func TestDeriveCustomBody(t *testing.T) {
	src := NewProducer[int, string]()

	// Running sum: each update emits the total so far, and the completion
	// carries the final total instead of the source's value.
	sum := 0
	derived := Derive[int, string, int, int](src, Options{Executor: executor.Immediate()},
		func(_ lifetime.Context, ev Event[int, string], out *Producer[int, int], _ executor.Executor) {
			if v, ok := ev.Update(); ok {
				sum += v
				out.Update(sum)
				return
			}
			out.Complete(Succeed(sum))
		})
	updates, completions := collect[int, int](derived)

	src.Update(1)
	src.Update(2)
	src.Update(3)
	src.Complete(Succeed(""))

	final := waitFinal[int](t, completions)
	testutil.AssertSliceEqual(t, updates.Values(), []int{1, 3, 6})
	total, ok := final.Value()
	testutil.AssertEqual(t, ok, true)
	testutil.AssertEqual(t, total, 6)
}

func TestDeriveUsesScopeExecutor(t *testing.T) {
	var submissions atomic.Int32
	counting := executor.Func(func(work func()) {
		submissions.Add(1)
		work()
	})
	scope := lifetime.NewScope(counting)

	src := NewProducer[int, string]()
	derived := Map[int, string, int](src, Options{Scope: scope},
		func(v int) (int, error) { return v, nil })
	updates, _ := collect[int, string](derived)

	src.Update(1)
	src.Update(2)

	if !updates.WaitLen(2, testutil.TestTimeout) {
		t.Fatal("updates never arrived")
	}
	testutil.AssertEqual(t, submissions.Load() >= 2, true)
}

func TestDeriveExplicitExecutorOverridesScope(t *testing.T) {
	var viaScope, viaExplicit atomic.Int32
	scopeExec := executor.Func(func(work func()) {
		viaScope.Add(1)
		work()
	})
	explicit := executor.Func(func(work func()) {
		viaExplicit.Add(1)
		work()
	})

	src := NewProducer[int, string]()
	derived := Map[int, string, int](src,
		Options{Scope: lifetime.NewScope(scopeExec), Executor: explicit},
		func(v int) (int, error) { return v, nil })
	updates, _ := collect[int, string](derived)

	src.Update(1)

	if !updates.WaitLen(1, testutil.TestTimeout) {
		t.Fatal("update never arrived")
	}
	testutil.AssertEqual(t, viaScope.Load(), int32(0))
	testutil.AssertEqual(t, viaExplicit.Load() >= 1, true)
}

func TestDeriveBoundedBufferBlocksProducer(t *testing.T) {
	gate := make(chan struct{})
	gated := executor.Func(func(work func()) {
		go func() {
			<-gate
			work()
		}()
	})

	src := NewProducer[int, string]()
	derived := Map[int, string, int](src,
		Options{Executor: gated, BufferSize: 1},
		func(v int) (int, error) { return v, nil })
	updates, _ := collect[int, string](derived)

	// First update is dequeued by the pump and parked behind the gate;
	// the second fills the buffer. The third must block its producer.
	src.Update(1)
	src.Update(2)

	var returned atomic.Bool
	released := make(chan struct{})
	go func() {
		src.Update(3)
		returned.Store(true)
		close(released)
	}()

	time.Sleep(50 * time.Millisecond)
	if returned.Load() {
		t.Fatal("producer was not blocked by a full buffer")
	}

	close(gate)
	select {
	case <-released:
	case <-time.After(testutil.TestTimeout):
		t.Fatal("producer never unblocked after the executor drained")
	}

	if !updates.WaitLen(3, testutil.TestTimeout) {
		t.Fatal("updates never drained")
	}
	testutil.AssertSliceEqual(t, updates.Values(), []int{1, 2, 3})
}

func TestDeriveUnboundedBufferNeverBlocks(t *testing.T) {
	gate := make(chan struct{})
	gated := executor.Func(func(work func()) {
		go func() {
			<-gate
			work()
		}()
	})

	src := NewProducer[int, string]()
	derived := Map[int, string, int](src,
		Options{Executor: gated, BufferSize: -1},
		func(v int) (int, error) { return v, nil })
	updates, completions := collect[int, string](derived)

	const n = 500
	emitted := make(chan struct{})
	go func() {
		for i := 0; i < n; i++ {
			src.Update(i)
		}
		src.Complete(Succeed("done"))
		close(emitted)
	}()

	select {
	case <-emitted:
	case <-time.After(testutil.TestTimeout):
		t.Fatal("producer blocked on an unbounded buffer")
	}

	close(gate)
	waitFinal[string](t, completions)
	testutil.AssertEqual(t, updates.Len(), n)
}

func TestDerivePreservesOrderOnPoolExecutor(t *testing.T) {
	pool := executor.NewPool(4, 64)
	defer pool.Shutdown()

	src := NewProducer[int, string]()
	derived := Map[int, string, int](src, Options{Executor: pool},
		func(v int) (int, error) { return v, nil })
	updates, completions := collect[int, string](derived)

	const n = 200
	want := make([]int, n)
	for i := 0; i < n; i++ {
		want[i] = i
		src.Update(i)
	}
	src.Complete(Succeed("done"))

	waitFinal[string](t, completions)
	testutil.AssertSliceEqual(t, updates.Values(), want)
}

func TestDeriveStopsConsumingAfterEarlyCompletion(t *testing.T) {
	src := NewProducer[int, string]()

	var invocations atomic.Int32
	derived := Derive[int, string, int, string](src, Options{Executor: executor.Immediate()},
		func(_ lifetime.Context, ev Event[int, string], out *Producer[int, string], _ executor.Executor) {
			invocations.Add(1)
			if v, ok := ev.Update(); ok && v >= 2 {
				out.Complete(Succeed("early"))
				return
			}
			if v, ok := ev.Update(); ok {
				out.Update(v)
			}
		})
	updates, completions := collect[int, string](derived)

	src.Update(1)
	src.Update(2)
	if !completions.WaitLen(1, testutil.TestTimeout) {
		t.Fatal("early completion never arrived")
	}

	// The derivation has torn itself down; later source events go nowhere.
	src.Update(3)
	src.Update(4)
	time.Sleep(20 * time.Millisecond)

	testutil.AssertSliceEqual(t, updates.Values(), []int{1})
	testutil.AssertEqual(t, invocations.Load() <= 3, true)
}

func TestDeriveTokenCancelBeforeAnyEvent(t *testing.T) {
	src := NewProducer[int, string]()
	token := lifetime.NewToken()
	token.Cancel()

	derived := Map[int, string, int](src,
		Options{Executor: executor.Immediate(), Token: token},
		func(v int) (int, error) { return v, nil })
	updates, completions := collect[int, string](derived)

	final := waitFinal[string](t, completions)
	testutil.AssertEqual(t, final.Canceled(), true)
	testutil.AssertEqual(t, updates.Len(), 0)
}
