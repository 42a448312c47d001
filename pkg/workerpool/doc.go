/*
Package workerpool provides a fixed-size pool of workers draining one
shared blocking queue.

A pool starts all of its workers up front; each worker repeatedly
dequeues a task and runs it. Submission is fire-and-forget:

	pool := workerpool.New(8)

	pool.Execute(func() {
		process(item)
	})

	// Teardown: one stop sentinel per worker, then wait.
	<-pool.Shutdown()

Shutdown guarantees every task submitted before it completes before the
returned channel closes. Submitting after shutdown has begun returns an
error. There is no cancellation and no result channel; callers needing
completion signals should build them into the task.

A task that panics is recovered, logged with a stack trace (or handed to
the configured PanicHandler), and the worker continues, so pool capacity
never shrinks silently.

Default exposes a lazily created process-wide pool for convenience;
construct pools explicitly wherever isolation matters.
*/
package workerpool
