package refcount

import "sync/atomic"

// RefCount is an intrusive atomic reference count. Types managed through
// a Handle embed it:
//
//	type Session struct {
//		refcount.RefCount
//		// ...
//	}
//
// The count lives inside the managed object itself, not in a separate
// control block, and is mutated without any external lock.
type RefCount struct {
	n int32
}

// InitRef sets the count to 1, the constructing owner's reference.
// Handle constructors call this; it is exported so objects built outside
// refcount.New can establish their first reference before being adopted.
func (r *RefCount) InitRef() {
	atomic.StoreInt32(&r.n, 1)
}

// IncRef atomically increments the count and returns the new value.
func (r *RefCount) IncRef() int32 {
	return atomic.AddInt32(&r.n, 1)
}

// DecRef atomically decrements the count and returns the new value.
// The owner observing a return of zero is responsible for finalizing
// and freeing the object.
func (r *RefCount) DecRef() int32 {
	return atomic.AddInt32(&r.n, -1)
}

// Refs returns the current count. The value is a snapshot and may be
// stale by the time the caller acts on it.
func (r *RefCount) Refs() int32 {
	return atomic.LoadInt32(&r.n)
}

// Counted is the capability a Handle requires of its target.
// Embedding RefCount satisfies it.
type Counted interface {
	InitRef()
	IncRef() int32
	DecRef() int32
	Refs() int32
}

// Shared constrains the types a Handle can manage: comparable (pointer)
// types whose pointee embeds RefCount.
type Shared interface {
	comparable
	Counted
}

// Finalizer is implemented by managed types that need teardown logic.
// Finalize runs exactly once, when the last reference is released and
// before the object's storage is returned to its allocator.
type Finalizer interface {
	Finalize()
}
