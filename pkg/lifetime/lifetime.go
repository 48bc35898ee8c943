package lifetime

import (
	"sync"

	"github.com/vnykmshr/eventflow/pkg/executor"
)

// Context models an object with a finite lifetime that event pipelines may be
// bound to. A pipeline holds the Context non-owningly: it queries liveness at
// dispatch time and never extends the object's lifetime.
type Context interface {
	// Alive reports whether the context still exists. The answer was true at
	// some instant during the call; it may become false immediately after.
	Alive() bool

	// Executor returns the context's default executor, used when a pipeline
	// stage is bound to the context without an explicit executor.
	Executor() executor.Executor
}

// Scope is a concrete Context whose lifetime ends when Close is called.
type Scope struct {
	exec   executor.Executor
	mu     sync.RWMutex
	closed bool
}

// NewScope creates a live Scope with the given default executor.
// A nil executor defaults to the primary executor.
func NewScope(exec executor.Executor) *Scope {
	if exec == nil {
		exec = executor.Primary()
	}
	return &Scope{exec: exec}
}

// Alive implements Context.
func (s *Scope) Alive() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.closed
}

// Executor implements Context.
func (s *Scope) Executor() executor.Executor {
	return s.exec
}

// Close ends the scope's lifetime. Pipelines bound to the scope stop
// transforming events and deliver a cancellation completion instead.
// Close is idempotent.
func (s *Scope) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

// Token is a cooperative cancellation signal, independent of any Context
// lifetime. The zero value is not usable; create tokens with NewToken.
type Token struct {
	mu        sync.Mutex
	canceled  bool
	callbacks []func()
}

// NewToken creates a token that has not been canceled.
func NewToken() *Token {
	return &Token{}
}

// Cancel requests cancellation and runs registered callbacks, each exactly
// once. Subsequent calls are no-ops.
func (t *Token) Cancel() {
	t.mu.Lock()
	if t.canceled {
		t.mu.Unlock()
		return
	}
	t.canceled = true
	callbacks := t.callbacks
	t.callbacks = nil
	t.mu.Unlock()

	for _, cb := range callbacks {
		cb()
	}
}

// Canceled reports whether cancellation has been requested.
func (t *Token) Canceled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.canceled
}

// OnCancel registers a callback to run when the token is canceled. If the
// token is already canceled, the callback runs synchronously before OnCancel
// returns.
func (t *Token) OnCancel(cb func()) {
	if cb == nil {
		return
	}

	t.mu.Lock()
	if t.canceled {
		t.mu.Unlock()
		cb()
		return
	}
	t.callbacks = append(t.callbacks, cb)
	t.mu.Unlock()
}
