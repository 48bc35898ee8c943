/*
Package lifetime provides the lifetime and cancellation primitives consumed
by event pipelines.

Key Components:
  - Context: a non-owning view of an object with a finite lifetime, exposing
    a liveness query and a default executor
  - Scope: a concrete Context ended explicitly with Close
  - Token: a cooperative cancellation signal with callback registration

A pipeline stage bound to a Context checks Alive at the moment its scheduled
transform runs. A dead context causes the update to be skipped; a completion
arriving after death is still forwarded, converted into a cancellation
completion, so downstream consumers never hang.

Basic Usage:

	scope := lifetime.NewScope(executor.NewSerial())
	defer scope.Close()

	token := lifetime.NewToken()
	token.OnCancel(func() {
		// runs exactly once, synchronously with Cancel
	})
	token.Cancel()
*/
package lifetime
