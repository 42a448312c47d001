package queue

import (
	"sync"

	"github.com/vnykmshr/goprim/pkg/refcount"
)

// Queue is an unbounded, blocking multi-producer/multi-consumer FIFO.
// Enqueue never blocks; Dequeue blocks while the queue is empty. Each
// item is delivered to exactly one consumer, in enqueue order.
//
// Queue embeds refcount.RefCount so an instance can be shared across
// goroutines through a refcount.Handle; see NewShared.
type Queue[T any] struct {
	refcount.RefCount

	mu    sync.Mutex
	ready *sync.Cond
	items []T
}

// New creates an empty queue.
func New[T any]() *Queue[T] {
	q := &Queue[T]{}
	q.ready = sync.NewCond(&q.mu)
	return q
}

// NewShared creates a queue and returns its first reference as a
// shared-ownership handle. Storage is heap-allocated, so the handle
// carries no free function.
func NewShared[T any]() *refcount.Handle[*Queue[T]] {
	q := New[T]()
	q.InitRef()
	return refcount.Adopt(q, nil)
}

// Enqueue appends item at the tail and wakes one blocked consumer, if
// any. It always succeeds; the queue has no capacity bound.
func (q *Queue[T]) Enqueue(item T) {
	q.mu.Lock()
	q.items = append(q.items, item)
	q.mu.Unlock()
	q.ready.Signal()
}

// Dequeue removes and returns the head item, blocking while the queue
// is empty. Among racing consumers each item is delivered exactly once.
// There is no timeout and no cancellation for a blocked Dequeue.
func (q *Queue[T]) Dequeue() T {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.items) == 0 {
		q.ready.Wait()
	}

	item := q.items[0]
	var zero T
	q.items[0] = zero // release the element for the collector
	q.items = q.items[1:]
	if len(q.items) == 0 {
		q.items = nil
	}
	return item
}

// Len returns the number of items currently waiting.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
