// Copyright 2026 The Timewarp Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source so code that arms
// timers can be tested without waiting on real time. Production code
// takes a Clock and is handed Real(); tests hand in Fake() and move
// time forward explicitly with Advance.
package clock

import "time"

// Clock abstracts the time operations the rest of the program is
// allowed to use. Code that needs the current time or a delayed call
// accepts a Clock instead of reaching for the time package directly.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// AfterFunc arms a timer that calls f after duration d and
	// returns a Timer that can cancel or re-arm the pending call.
	// If d <= 0, f runs immediately: on a new goroutine for the real
	// clock, synchronously for the fake one.
	AfterFunc(d time.Duration, f func()) *Timer
}

// Timer is a pending AfterFunc call.
type Timer struct {
	stopFunc  func() bool
	resetFunc func(time.Duration) bool
}

// Stop cancels the pending call. It returns true if the call was
// still pending, false if it already ran or was stopped.
func (t *Timer) Stop() bool { return t.stopFunc() }

// Reset re-arms the timer to fire after duration d, whether or not it
// has already fired. It returns true if the timer was still pending
// before the reset.
func (t *Timer) Reset(d time.Duration) bool { return t.resetFunc(d) }
