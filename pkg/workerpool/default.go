package workerpool

import "sync"

var (
	defaultMu   sync.Mutex
	defaultPool *Pool
)

// Default returns the process-wide pool, creating it with
// DefaultWorkerCount workers on first use. It is a convenience for
// callers that want one shared pool; anything that needs isolation
// (tests in particular) should construct its own Pool instead.
func Default() *Pool {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultPool == nil {
		defaultPool = New(DefaultWorkerCount)
	}
	return defaultPool
}

// CloseDefault shuts the process-wide pool down and waits for its
// workers to exit. Call it during ordered process teardown, after all
// submitters have stopped. A later Default call creates a fresh pool.
func CloseDefault() {
	defaultMu.Lock()
	p := defaultPool
	defaultPool = nil
	defaultMu.Unlock()

	if p != nil {
		<-p.Shutdown()
	}
}
