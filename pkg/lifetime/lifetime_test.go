package lifetime

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/vnykmshr/eventflow/internal/testutil"
	"github.com/vnykmshr/eventflow/pkg/executor"
)

func TestScopeAlive(t *testing.T) {
	scope := NewScope(executor.Immediate())
	testutil.AssertEqual(t, scope.Alive(), true)

	scope.Close()
	testutil.AssertEqual(t, scope.Alive(), false)

	scope.Close() // idempotent
	testutil.AssertEqual(t, scope.Alive(), false)
}

func TestScopeExecutor(t *testing.T) {
	exec := executor.Immediate()
	scope := NewScope(exec)
	if scope.Executor() != exec {
		t.Fatal("scope should return its executor")
	}
}

func TestScopeNilExecutorDefaultsToPrimary(t *testing.T) {
	scope := NewScope(nil)
	if scope.Executor() != executor.Primary() {
		t.Fatal("nil executor should default to the primary executor")
	}
}

func TestTokenCancel(t *testing.T) {
	token := NewToken()
	testutil.AssertEqual(t, token.Canceled(), false)

	token.Cancel()
	testutil.AssertEqual(t, token.Canceled(), true)
}

func TestTokenOnCancelRunsExactlyOnce(t *testing.T) {
	token := NewToken()

	var calls atomic.Int32
	token.OnCancel(func() { calls.Add(1) })

	token.Cancel()
	token.Cancel()
	testutil.AssertEqual(t, calls.Load(), int32(1))
}

func TestTokenOnCancelAfterCancelRunsImmediately(t *testing.T) {
	token := NewToken()
	token.Cancel()

	ran := false
	token.OnCancel(func() { ran = true })
	testutil.AssertEqual(t, ran, true)
}

func TestTokenConcurrentCancel(t *testing.T) {
	token := NewToken()

	var calls atomic.Int32
	token.OnCancel(func() { calls.Add(1) })

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token.Cancel()
		}()
	}
	wg.Wait()

	testutil.AssertEqual(t, calls.Load(), int32(1))
}
