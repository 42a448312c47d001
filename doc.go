/*
Package goprim provides low-level in-process concurrency primitives:
shared-ownership handles, blocking queues, reschedulable timers, and a
fixed-size worker pool built on top of them.

Components (pkg/):
  - refcount: intrusive atomic reference counting with generic
    shared-ownership handles and pluggable allocation strategies
  - queue: unbounded, blocking multi-producer/multi-consumer FIFO
  - timer: single-shot timer with atomic rescheduling and cron-expression
    deadlines
  - workerpool: fixed set of workers draining one shared task queue

Example usage:

	import (
		"github.com/vnykmshr/goprim/pkg/timer"
		"github.com/vnykmshr/goprim/pkg/workerpool"
	)

	pool := workerpool.New(8)
	defer func() { <-pool.Shutdown() }()

	pool.Execute(func() { doWork() })

	t := timer.NewWithCallback(flush, 50*time.Millisecond)
	defer t.Stop()
*/
package goprim
