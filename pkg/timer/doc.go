/*
Package timer provides a single-shot timer whose deadline and callback
can be atomically replaced while it waits.

Each timer owns one background goroutine. The goroutine sleeps until the
current deadline or an explicit wake, fires the current callback at most
once per armed deadline, and returns to waiting. Rescheduling before
expiry supersedes the pending deadline entirely:

	t := timer.NewWithCallback(flush, 200*time.Millisecond)
	defer t.Stop()

	// Activity: push the flush out again.
	t.Reset(200 * time.Millisecond)

Callbacks run outside the timer's lock, so a callback may rearm its own
timer with Set or Reset. A callback must not call Stop on the timer that
is invoking it, and should not block: the timer fires nothing else until
the callback returns.

Deadlines can also be derived from cron expressions via SetSchedule,
which arms the timer for the expression's next activation.
*/
package timer
