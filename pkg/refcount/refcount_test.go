package refcount

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/vnykmshr/goprim/internal/testutil"
	gperrors "github.com/vnykmshr/goprim/pkg/common/errors"
)

// resource is a managed test object. finalized counts Finalize calls so
// tests can assert exactly-once destruction.
type resource struct {
	RefCount
	payload   int
	finalized int32
}

func (r *resource) Finalize() {
	atomic.AddInt32(&r.finalized, 1)
}

func TestNewStartsWithOneReference(t *testing.T) {
	h, err := New[resource](nil, func(r *resource) { r.payload = 42 })
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, h.Refs(), int32(1))
	testutil.AssertEqual(t, h.Get().payload, 42)
	testutil.AssertEqual(t, h.IsNil(), false)

	obj := h.Get()
	h.Release()

	testutil.AssertEqual(t, atomic.LoadInt32(&obj.finalized), int32(1))
	testutil.AssertEqual(t, h.IsNil(), true)
}

func TestRetainSharesOwnership(t *testing.T) {
	h, err := New[resource](nil, nil)
	testutil.AssertNoError(t, err)

	other := h.Retain()
	testutil.AssertEqual(t, h.Refs(), int32(2))
	testutil.AssertEqual(t, other.Get() == h.Get(), true)

	obj := h.Get()
	h.Release()
	testutil.AssertEqual(t, atomic.LoadInt32(&obj.finalized), int32(0))

	other.Release()
	testutil.AssertEqual(t, atomic.LoadInt32(&obj.finalized), int32(1))
}

func TestReleaseIsIdempotent(t *testing.T) {
	h, err := New[resource](nil, nil)
	testutil.AssertNoError(t, err)

	obj := h.Get()
	h.Release()
	h.Release() // second release of the same handle is a no-op

	testutil.AssertEqual(t, atomic.LoadInt32(&obj.finalized), int32(1))
}

// TestConcurrentReleaseFinalizesOnce is the regression test for the
// release rule: destruction happens exactly when the count transitions
// to zero, never on a non-zero count, under arbitrary interleavings.
func TestConcurrentReleaseFinalizesOnce(t *testing.T) {
	const owners = 64

	h, err := New[resource](nil, nil)
	testutil.AssertNoError(t, err)
	obj := h.Get()

	handles := make([]*Handle[*resource], owners)
	for i := range handles {
		handles[i] = h.Retain()
	}
	h.Release()

	var wg sync.WaitGroup
	for _, owner := range handles {
		wg.Add(1)
		go func(owner *Handle[*resource]) {
			defer wg.Done()
			owner.Release()
		}(owner)
	}
	wg.Wait()

	testutil.AssertEqual(t, atomic.LoadInt32(&obj.finalized), int32(1))
	testutil.AssertEqual(t, obj.Refs(), int32(0))
}

func TestConcurrentRetainRelease(t *testing.T) {
	const goroutines = 32
	const rounds = 200

	h, err := New[resource](nil, nil)
	testutil.AssertNoError(t, err)
	obj := h.Get()

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < rounds; j++ {
				owner := h.Retain()
				_ = owner.Get().payload
				owner.Release()
			}
		}()
	}
	wg.Wait()

	testutil.AssertEqual(t, h.Refs(), int32(1))
	h.Release()
	testutil.AssertEqual(t, atomic.LoadInt32(&obj.finalized), int32(1))
}

func TestAssignSelf(t *testing.T) {
	h, err := New[resource](nil, nil)
	testutil.AssertNoError(t, err)
	obj := h.Get()

	h.Assign(h)

	testutil.AssertEqual(t, h.Refs(), int32(1))
	testutil.AssertEqual(t, atomic.LoadInt32(&obj.finalized), int32(0))

	h.Release()
	testutil.AssertEqual(t, atomic.LoadInt32(&obj.finalized), int32(1))
}

func TestAssignReplacesTarget(t *testing.T) {
	first, err := New[resource](nil, func(r *resource) { r.payload = 1 })
	testutil.AssertNoError(t, err)
	second, err := New[resource](nil, func(r *resource) { r.payload = 2 })
	testutil.AssertNoError(t, err)

	old := first.Get()
	first.Assign(second)

	// first's previous target lost its last reference
	testutil.AssertEqual(t, atomic.LoadInt32(&old.finalized), int32(1))
	testutil.AssertEqual(t, first.Get().payload, 2)
	testutil.AssertEqual(t, second.Refs(), int32(2))

	kept := second.Get()
	first.Release()
	testutil.AssertEqual(t, atomic.LoadInt32(&kept.finalized), int32(0))
	second.Release()
	testutil.AssertEqual(t, atomic.LoadInt32(&kept.finalized), int32(1))
}

func TestAssignNil(t *testing.T) {
	h, err := New[resource](nil, nil)
	testutil.AssertNoError(t, err)
	obj := h.Get()

	h.Assign(nil)

	testutil.AssertEqual(t, h.IsNil(), true)
	testutil.AssertEqual(t, atomic.LoadInt32(&obj.finalized), int32(1))
}

func TestAdopt(t *testing.T) {
	obj := &resource{payload: 7}
	obj.InitRef() // the object's construction owns the first reference

	h := Adopt(obj, nil)
	testutil.AssertEqual(t, h.Refs(), int32(1))
	testutil.AssertEqual(t, h.Get().payload, 7)

	h.Release()
	testutil.AssertEqual(t, atomic.LoadInt32(&obj.finalized), int32(1))
}

func TestAdoptNil(t *testing.T) {
	h := Adopt[*resource](nil, nil)
	testutil.AssertEqual(t, h.IsNil(), true)
	h.Release() // no-op
}

func TestEmptyHandle(t *testing.T) {
	var h Handle[*resource]
	testutil.AssertEqual(t, h.IsNil(), true)
	testutil.AssertEqual(t, h.Refs(), int32(0))

	other := h.Retain()
	testutil.AssertEqual(t, other.IsNil(), true)
	other.Release()
	h.Release()
}

type failingAllocator struct{}

func (failingAllocator) Allocate() (*resource, error) { return nil, errors.New("arena exhausted") }
func (failingAllocator) Free(*resource)               {}

type nilAllocator struct{}

func (nilAllocator) Allocate() (*resource, error) { return nil, nil }
func (nilAllocator) Free(*resource)               {}

func TestAllocationFailure(t *testing.T) {
	_, err := New[resource](failingAllocator{}, nil)
	testutil.AssertError(t, err)
	testutil.AssertEqual(t, gperrors.IsAllocation(err), true)

	_, err = New[resource](nilAllocator{}, nil)
	testutil.AssertError(t, err)
	testutil.AssertEqual(t, gperrors.IsAllocation(err), true)
}

// countingAllocator tracks Allocate/Free pairing so tests can verify the
// storage is released through the strategy that created it.
type countingAllocator struct {
	allocated int32
	freed     int32
}

func (a *countingAllocator) Allocate() (*resource, error) {
	atomic.AddInt32(&a.allocated, 1)
	return new(resource), nil
}

func (a *countingAllocator) Free(*resource) {
	atomic.AddInt32(&a.freed, 1)
}

func TestFreeUsesOriginatingAllocator(t *testing.T) {
	alloc := &countingAllocator{}

	h, err := New[resource](alloc, nil)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, atomic.LoadInt32(&alloc.allocated), int32(1))
	testutil.AssertEqual(t, atomic.LoadInt32(&alloc.freed), int32(0))

	h.Release()
	testutil.AssertEqual(t, atomic.LoadInt32(&alloc.freed), int32(1))
}

func TestPoolAllocatorReusesStorage(t *testing.T) {
	alloc := NewPoolAllocator[resource]()

	h, err := New[resource](alloc, func(r *resource) { r.payload = 1 })
	testutil.AssertNoError(t, err)
	first := h.Get()
	h.Release()

	// The freed object goes back to the pool; the next allocation on the
	// same goroutine reuses it. New re-initializes the count and runs
	// init on the recycled storage.
	h2, err := New[resource](alloc, func(r *resource) { r.payload = 2 })
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, h2.Get() == first, true)
	testutil.AssertEqual(t, h2.Get().payload, 2)
	testutil.AssertEqual(t, h2.Refs(), int32(1))
	h2.Release()
}
