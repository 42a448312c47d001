package timer

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Callback is invoked synchronously on the timer's background goroutine
// when the deadline passes. Callbacks may call Set or Reset to rearm the
// timer; they must not call Stop on the timer invoking them.
type Callback func()

// disabledTimeout pushes the deadline far enough into the future that it
// is never reached in practice, about 49 days. A disarmed timer still
// occupies its background goroutine.
const disabledTimeout = time.Duration(math.MaxUint32) * time.Millisecond

// cronParser accepts six-field expressions with a seconds column.
var cronParser = cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Timer is a single-shot, reschedulable timer. One background goroutine
// waits for the current deadline or a wake signal; when the deadline
// passes, the current callback runs once, outside the timer's lock, and
// the timer disarms until the next Set or Reset.
//
// Rescheduling before expiry supersedes the pending deadline entirely:
// only the last Set or Reset issued before expiry produces a firing.
type Timer struct {
	mu       sync.Mutex
	callback Callback
	deadline time.Time
	gen      uint64 // bumped on every reschedule

	wake     chan struct{}
	done     chan struct{}
	exited   chan struct{}
	stopOnce sync.Once
}

// New starts a disarmed timer. The timer stays live, waiting on its
// far-future deadline, until Set arms it or Stop tears it down.
func New() *Timer {
	t := &Timer{
		deadline: time.Now().Add(disabledTimeout),
		wake:     make(chan struct{}, 1),
		done:     make(chan struct{}),
		exited:   make(chan struct{}),
	}
	go t.run()
	return t
}

// NewWithCallback starts a timer armed to invoke callback once d has
// elapsed.
func NewWithCallback(callback Callback, d time.Duration) *Timer {
	t := New()
	t.Set(callback, d)
	return t
}

// Set atomically replaces both callback and deadline, then wakes the
// background goroutine so the new deadline takes effect immediately
// instead of after the old one.
func (t *Timer) Set(callback Callback, d time.Duration) {
	t.mu.Lock()
	t.callback = callback
	t.deadline = time.Now().Add(d)
	t.gen++
	t.mu.Unlock()
	t.notify()
}

// Reset replaces only the deadline, keeping the current callback.
func (t *Timer) Reset(d time.Duration) {
	t.mu.Lock()
	t.deadline = time.Now().Add(d)
	t.gen++
	t.mu.Unlock()
	t.notify()
}

// SetSchedule arms the timer for the next activation of a cron
// expression (six fields, seconds first, e.g. "0 */5 * * * *").
// The deadline is computed once; a recurring schedule is obtained by
// calling SetSchedule again from the callback.
func (t *Timer) SetSchedule(expr string, callback Callback) error {
	schedule, err := cronParser.Parse(expr)
	if err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", expr, err)
	}

	t.mu.Lock()
	t.callback = callback
	t.deadline = schedule.Next(time.Now())
	t.gen++
	t.mu.Unlock()
	t.notify()
	return nil
}

// Deadline returns the currently armed deadline.
func (t *Timer) Deadline() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.deadline
}

// Stop shuts the timer down: it clears the callback, wakes the
// background goroutine, and waits for it to exit. No callback fires
// after Stop begins. Stop is idempotent.
//
// Calling Stop from the timer's own callback deadlocks: Stop waits for
// the goroutine that is running the callback.
func (t *Timer) Stop() {
	t.stopOnce.Do(func() {
		t.mu.Lock()
		t.callback = nil
		t.mu.Unlock()
		close(t.done)
	})
	<-t.exited
}

// notify wakes the background goroutine without blocking; a pending
// wake token already covers this reschedule.
func (t *Timer) notify() {
	select {
	case t.wake <- struct{}{}:
	default:
	}
}

// run is the timer's wait loop: WAITING until the deadline or a wake,
// FIRING outside the lock, then WAITING again on whatever deadline is
// current. It exits only when Stop closes done.
func (t *Timer) run() {
	defer close(t.exited)

	for {
		select {
		case <-t.done:
			return
		default:
		}

		t.mu.Lock()
		deadline := t.deadline
		t.mu.Unlock()

		wait := time.NewTimer(time.Until(deadline))
		select {
		case <-t.done:
			wait.Stop()
			return
		case <-t.wake:
			// Rescheduled; re-evaluate the new deadline.
			wait.Stop()
			continue
		case <-wait.C:
		}

		// Re-check under the lock: a reschedule may have landed between
		// the expiry and here, or the wake token may have been spurious.
		t.mu.Lock()
		if time.Now().Before(t.deadline) {
			t.mu.Unlock()
			continue
		}
		callback := t.callback
		gen := t.gen
		t.mu.Unlock()

		if callback != nil {
			callback()
		}

		// Disarm unless the callback (or a racing Set) rescheduled.
		t.mu.Lock()
		if t.gen == gen {
			t.deadline = time.Now().Add(disabledTimeout)
		}
		t.mu.Unlock()
	}
}
