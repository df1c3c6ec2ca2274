package wirebox

import "sync"

// The shared container is a convenience for programs that want one
// process-wide object graph without threading a *Container through their
// wiring code. It is plain state layered on top of the core: nothing in
// the container engine reads it, and code that wants isolation simply
// calls New instead.

var (
	sharedMu sync.Mutex
	shared   *Container
)

// Shared returns the process-wide container, creating it on first use.
func Shared() *Container {
	sharedMu.Lock()
	defer sharedMu.Unlock()
	if shared == nil {
		shared = New()
	}
	return shared
}

// ResetShared discards the process-wide container. The next Shared call
// starts from an empty one. Intended for tests and for programs that
// rebuild their graph wholesale.
func ResetShared() {
	sharedMu.Lock()
	defer sharedMu.Unlock()
	shared = nil
}
