package integration

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/vnykmshr/goprim/pkg/queue"
	"github.com/vnykmshr/goprim/pkg/timer"
	"github.com/vnykmshr/goprim/pkg/workerpool"
)

// TestTimerDrivenPool wires a timer to a pool: the timer's callback
// submits work, and pool teardown observes its completion.
func TestTimerDrivenPool(t *testing.T) {
	pool := workerpool.New(2)

	var ran int64
	submitted := make(chan struct{})

	tm := timer.NewWithCallback(func() {
		if err := pool.Execute(func() { atomic.AddInt64(&ran, 1) }); err != nil {
			t.Errorf("execute from timer callback: %v", err)
		}
		close(submitted)
	}, 20*time.Millisecond)
	defer tm.Stop()

	select {
	case <-submitted:
	case <-time.After(5 * time.Second):
		t.Fatal("timer never fired")
	}

	<-pool.Shutdown()
	if got := atomic.LoadInt64(&ran); got != 1 {
		t.Fatalf("task ran %d times, want 1", got)
	}
}

// TestPoolFeedsSharedQueue runs a fan-out/fan-in pipeline: pool workers
// produce into a reference-counted queue that outlives the pool because
// the consumer still holds a reference.
func TestPoolFeedsSharedQueue(t *testing.T) {
	const items = 100

	results := queue.NewShared[int]()
	consumer := results.Retain()

	pool := workerpool.New(4)
	for i := 0; i < items; i++ {
		i := i
		producer := results.Retain()
		if err := pool.Execute(func() {
			defer producer.Release()
			producer.Get().Enqueue(i * i)
		}); err != nil {
			t.Fatalf("execute: %v", err)
		}
	}

	<-pool.Shutdown()
	results.Release()

	// The consumer's reference keeps the queue alive past both the pool
	// and the original handle.
	if consumer.IsNil() {
		t.Fatal("queue released while a consumer still owned it")
	}

	var sum int64
	for i := 0; i < items; i++ {
		sum += int64(consumer.Get().Dequeue())
	}

	var want int64
	for i := 0; i < items; i++ {
		want += int64(i * i)
	}
	if sum != want {
		t.Fatalf("sum = %d, want %d", sum, want)
	}

	if got := consumer.Get().Len(); got != 0 {
		t.Fatalf("queue still holds %d items", got)
	}
	consumer.Release()
}

// TestDebouncedFlush exercises the classic timer use: bursts of
// enqueues keep deferring one flush task that drains the queue.
func TestDebouncedFlush(t *testing.T) {
	pending := queue.New[string]()
	pool := workerpool.New(1)

	flushed := make(chan int, 1)
	tm := timer.NewWithCallback(func() {
		if err := pool.Execute(func() {
			n := pending.Len()
			for i := 0; i < n; i++ {
				pending.Dequeue()
			}
			flushed <- n
		}); err != nil {
			t.Errorf("execute flush: %v", err)
		}
	}, 50*time.Millisecond)
	defer tm.Stop()

	for i := 0; i < 5; i++ {
		pending.Enqueue("event")
		tm.Reset(50 * time.Millisecond)
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case n := <-flushed:
		if n != 5 {
			t.Fatalf("flushed %d events, want 5", n)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("flush never ran")
	}

	<-pool.Shutdown()
}
