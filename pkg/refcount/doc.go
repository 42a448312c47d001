/*
Package refcount provides intrusive atomic reference counting with
generic shared-ownership handles and pluggable allocation strategies.

A managed type embeds RefCount; its count lives inside the object
itself. Handles share ownership explicitly:

	type Session struct {
		refcount.RefCount
		conns []net.Conn
	}

	func (s *Session) Finalize() { closeAll(s.conns) }

	h, err := refcount.New[Session](nil, func(s *Session) {
		s.conns = dial()
	})
	if err != nil {
		return err
	}
	defer h.Release()

	worker := h.Retain() // second owner
	go func() {
		defer worker.Release()
		use(worker.Get())
	}()

The object is finalized and its storage returned to the allocator
exactly once, exactly when the last reference is released, no matter how
many goroutines release concurrently. Allocation strategies are
pluggable: HeapAllocator is the default, PoolAllocator recycles objects
through a sync.Pool, and callers can supply their own arena-style
strategies without touching handle logic.
*/
package refcount
