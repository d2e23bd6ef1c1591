// Copyright 2026 The Timewarp Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"sync"
	"time"
)

// Fake returns a FakeClock initialized to the given time. Time stands
// still until Advance is called.
func Fake(initial time.Time) *FakeClock {
	return &FakeClock{current: initial}
}

// FakeClock is a deterministic Clock for tests. Timers fire only when
// Advance moves the clock past their deadline, synchronously in the
// advancing goroutine. Do not call Advance from inside a timer
// callback; that would deadlock.
//
// FakeClock is safe for concurrent use.
type FakeClock struct {
	mu      sync.Mutex
	current time.Time
	timers  []*fakeTimer
}

type fakeTimer struct {
	deadline time.Time
	callback func()

	// stopped is set by Timer.Stop; stopped timers are skipped and
	// dropped on the next Advance.
	stopped bool

	// fired is set once the callback has run, so overlapping Advance
	// calls cannot fire a one-shot timer twice.
	fired bool
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// AfterFunc arms a timer that calls f once the clock advances past
// its deadline. If d <= 0, f is called synchronously before AfterFunc
// returns.
func (c *FakeClock) AfterFunc(d time.Duration, f func()) *Timer {
	c.mu.Lock()

	if d <= 0 {
		c.mu.Unlock()
		f()
		return &Timer{
			stopFunc:  func() bool { return false },
			resetFunc: func(time.Duration) bool { return false },
		}
	}

	timer := &fakeTimer{
		deadline: c.current.Add(d),
		callback: f,
	}
	c.timers = append(c.timers, timer)
	c.mu.Unlock()

	return &Timer{
		stopFunc: func() bool {
			c.mu.Lock()
			defer c.mu.Unlock()
			if timer.stopped || timer.fired {
				return false
			}
			timer.stopped = true
			return true
		},
		resetFunc: func(d time.Duration) bool {
			c.mu.Lock()
			defer c.mu.Unlock()
			wasPending := !timer.stopped && !timer.fired
			timer.stopped = false
			timer.fired = false
			timer.deadline = c.current.Add(d)
			// A timer that already fired was removed from the pending
			// list and has to be re-added.
			if !wasPending {
				c.timers = append(c.timers, timer)
			}
			return wasPending
		},
	}
}

// Advance moves the clock forward by d and fires every timer whose
// deadline falls within the new window, in deadline order. The clock
// steps to each deadline as its callback runs, so a callback that
// arms a new timer inside the window has that timer fire in the same
// Advance call. Callbacks run synchronously in the calling goroutine.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.current.Add(d)
	c.mu.Unlock()

	for {
		timer := c.popNextExpired(target)
		if timer == nil {
			break
		}
		timer.callback()
	}

	c.mu.Lock()
	if c.current.Before(target) {
		c.current = target
	}
	c.mu.Unlock()
}

// popNextExpired removes the earliest pending timer whose deadline
// falls at or before target, marks it fired, and steps the clock to
// its deadline. Stopped timers are pruned from the pending list on
// the way. Returns nil when no pending timer is due.
func (c *FakeClock) popNextExpired(target time.Time) *fakeTimer {
	c.mu.Lock()
	defer c.mu.Unlock()

	var next *fakeTimer
	for _, timer := range c.timers {
		if timer.stopped || timer.deadline.After(target) {
			continue
		}
		if next == nil || timer.deadline.Before(next.deadline) {
			next = timer
		}
	}

	pending := make([]*fakeTimer, 0, len(c.timers))
	for _, timer := range c.timers {
		if timer == next || timer.stopped {
			continue
		}
		pending = append(pending, timer)
	}
	c.timers = pending

	if next == nil {
		return nil
	}
	next.fired = true
	if c.current.Before(next.deadline) {
		c.current = next.deadline
	}
	return next
}

// PendingCount returns the number of armed timers that have not yet
// fired or been stopped.
func (c *FakeClock) PendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	count := 0
	for _, timer := range c.timers {
		if !timer.stopped {
			count++
		}
	}
	return count
}
