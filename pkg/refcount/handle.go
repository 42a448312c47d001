package refcount

import (
	"fmt"

	gperrors "github.com/vnykmshr/goprim/pkg/common/errors"
)

// Handle is a shared-ownership smart handle over a reference-counted
// object. Retain shares ownership and increments the target's count;
// Release decrements it and, exactly when the count reaches zero, runs
// the target's Finalize (if implemented) and returns its storage to the
// allocator that created it.
//
// A Handle value is owned by one goroutine at a time. To share the
// target across goroutines, give each goroutine its own handle via
// Retain; the count inside the target is the only cross-goroutine state
// and is maintained atomically without locks.
type Handle[T Shared] struct {
	obj  T
	free func(T)
}

// New allocates a T through alloc, initializes it in place with init,
// and returns a handle holding the object's first reference (count 1).
// A nil alloc uses HeapAllocator. Allocation failures are reported as
// errors wrapping errors.ErrAllocation.
func New[T any, P interface {
	Shared
	*T
}](alloc Allocator[T], init func(*T)) (*Handle[P], error) {
	if alloc == nil {
		alloc = HeapAllocator[T]{}
	}

	obj, err := alloc.Allocate()
	if err != nil {
		return nil, fmt.Errorf("refcount: %w: %v", gperrors.ErrAllocation, err)
	}
	if obj == nil {
		return nil, fmt.Errorf("refcount: %w: allocator returned no storage", gperrors.ErrAllocation)
	}

	if init != nil {
		init(obj)
	}

	p := P(obj)
	p.InitRef()
	return &Handle[P]{
		obj:  p,
		free: func(v P) { alloc.Free((*T)(v)) },
	}, nil
}

// Adopt wraps an object whose count is already owned by the caller,
// typically 1 from the object's own construction, without adjusting it.
// free, if non-nil, is invoked after the last release; pass nil for
// objects whose storage the garbage collector reclaims.
func Adopt[T Shared](obj T, free func(T)) *Handle[T] {
	var zero T
	if obj == zero {
		return &Handle[T]{}
	}
	return &Handle[T]{obj: obj, free: free}
}

// Retain shares ownership of the target, incrementing its count, and
// returns a new handle for the caller to release independently.
// Retaining a nil handle yields another nil handle.
func (h *Handle[T]) Retain() *Handle[T] {
	if h.IsNil() {
		return &Handle[T]{}
	}
	h.obj.IncRef()
	return &Handle[T]{obj: h.obj, free: h.free}
}

// Release drops this handle's reference. When the count reaches zero the
// target is finalized and its storage freed, exactly once. Releasing an
// already-released or nil handle is a no-op.
func (h *Handle[T]) Release() {
	var zero T
	if h == nil || h.obj == zero {
		return
	}
	obj, free := h.obj, h.free
	h.obj, h.free = zero, nil
	releaseRef(obj, free)
}

// Assign replaces this handle's target with other's, sharing ownership
// of the new target and releasing the old one. The new target is
// retained before the old is released, so assigning a handle to itself
// never transiently drops the count to zero.
func (h *Handle[T]) Assign(other *Handle[T]) {
	var zero T

	var newObj T
	var newFree func(T)
	if other != nil && other.obj != zero {
		other.obj.IncRef()
		newObj, newFree = other.obj, other.free
	}

	old, oldFree := h.obj, h.free
	h.obj, h.free = newObj, newFree
	if old != zero {
		releaseRef(old, oldFree)
	}
}

// Get returns the target, or the zero (nil) value for a released or
// empty handle. The returned reference is only valid while the handle
// still owns a reference.
func (h *Handle[T]) Get() T {
	if h == nil {
		var zero T
		return zero
	}
	return h.obj
}

// IsNil reports whether the handle holds no target.
func (h *Handle[T]) IsNil() bool {
	var zero T
	return h == nil || h.obj == zero
}

// Refs returns the target's current count, or 0 for a nil handle.
func (h *Handle[T]) Refs() int32 {
	if h.IsNil() {
		return 0
	}
	return h.obj.Refs()
}

// releaseRef decrements obj's count and, on the transition to zero,
// finalizes and frees it.
func releaseRef[T Shared](obj T, free func(T)) {
	if obj.DecRef() != 0 {
		return
	}
	if f, ok := any(obj).(Finalizer); ok {
		f.Finalize()
	}
	if free != nil {
		free(obj)
	}
}
