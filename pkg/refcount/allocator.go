package refcount

import "sync"

// Allocator is a minimal allocation strategy: obtain storage for a T,
// and return it once the last reference is gone. Handles created by New
// free their target through the same strategy that allocated it.
type Allocator[T any] interface {
	// Allocate obtains storage for one T. It returns an error when
	// storage cannot be obtained; callers must not treat a nil object
	// with a nil error as success.
	Allocate() (*T, error)

	// Free returns storage previously obtained from Allocate.
	Free(*T)
}

// HeapAllocator is the default strategy: plain heap allocation, with
// reclamation left to the garbage collector.
type HeapAllocator[T any] struct{}

// Allocate returns a zeroed T from the heap.
func (HeapAllocator[T]) Allocate() (*T, error) {
	return new(T), nil
}

// Free is a no-op; the garbage collector reclaims the storage.
func (HeapAllocator[T]) Free(*T) {}

// PoolAllocator recycles objects through a sync.Pool, for callers that
// churn through many short-lived shared objects.
//
// Recycled objects keep the state they had when freed. The init function
// passed to New must reset every field it cares about; the reference
// count itself is always re-initialized by New.
type PoolAllocator[T any] struct {
	pool sync.Pool
}

// NewPoolAllocator creates a pool-backed allocation strategy.
func NewPoolAllocator[T any]() *PoolAllocator[T] {
	return &PoolAllocator[T]{
		pool: sync.Pool{
			New: func() interface{} { return new(T) },
		},
	}
}

// Allocate returns a recycled T when one is available, or a fresh one.
func (a *PoolAllocator[T]) Allocate() (*T, error) {
	return a.pool.Get().(*T), nil
}

// Free hands the object back for reuse.
func (a *PoolAllocator[T]) Free(obj *T) {
	a.pool.Put(obj)
}
