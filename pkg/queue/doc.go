/*
Package queue provides an unbounded, blocking multi-producer/
multi-consumer FIFO.

Each queue is guarded by one mutex and one wake condition; consumers
blocked in Dequeue yield their goroutine rather than spinning. Items
enqueued by one producer are delivered in that producer's submission
order, each to exactly one consumer:

	q := queue.New[string]()

	go func() {
		for {
			handle(q.Dequeue())
		}
	}()

	q.Enqueue("job-1")
	q.Enqueue("job-2")

A queue can be shared across goroutines with automatic lifetime
tracking via NewShared, which hands out the queue's first reference as
a refcount.Handle.

There is deliberately no capacity bound, no enqueue-side blocking, and
no dequeue timeout; backpressure is outside this package's contract.
*/
package queue
