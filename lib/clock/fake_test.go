// Copyright 2026 The Timewarp Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"testing"
	"time"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestNowAdvances(t *testing.T) {
	c := Fake(epoch)
	if got := c.Now(); !got.Equal(epoch) {
		t.Errorf("Now() = %v, want %v", got, epoch)
	}
	c.Advance(90 * time.Second)
	if got, want := c.Now(), epoch.Add(90*time.Second); !got.Equal(want) {
		t.Errorf("Now() after advance = %v, want %v", got, want)
	}
}

func TestAfterFuncFiresAtDeadline(t *testing.T) {
	c := Fake(epoch)
	fired := 0
	c.AfterFunc(10*time.Second, func() { fired++ })

	c.Advance(9 * time.Second)
	if fired != 0 {
		t.Fatalf("timer fired %d times before its deadline", fired)
	}
	c.Advance(1 * time.Second)
	if fired != 1 {
		t.Fatalf("timer fired %d times at its deadline, want 1", fired)
	}
	c.Advance(time.Hour)
	if fired != 1 {
		t.Errorf("one-shot timer fired %d times, want 1", fired)
	}
}

func TestAfterFuncImmediate(t *testing.T) {
	c := Fake(epoch)
	fired := false
	c.AfterFunc(0, func() { fired = true })
	if !fired {
		t.Error("AfterFunc(0) did not run the callback synchronously")
	}
	if got := c.PendingCount(); got != 0 {
		t.Errorf("PendingCount() = %d, want 0", got)
	}
}

func TestStopCancelsTimer(t *testing.T) {
	c := Fake(epoch)
	fired := false
	timer := c.AfterFunc(10*time.Second, func() { fired = true })

	if !timer.Stop() {
		t.Error("Stop() = false on a pending timer, want true")
	}
	c.Advance(time.Minute)
	if fired {
		t.Error("stopped timer fired")
	}
	if timer.Stop() {
		t.Error("Stop() = true on an already stopped timer, want false")
	}
}

func TestResetPostponesDeadline(t *testing.T) {
	c := Fake(epoch)
	fired := 0
	timer := c.AfterFunc(10*time.Second, func() { fired++ })

	c.Advance(9 * time.Second)
	if !timer.Reset(10 * time.Second) {
		t.Error("Reset() = false on a pending timer, want true")
	}
	c.Advance(9 * time.Second)
	if fired != 0 {
		t.Fatalf("timer fired %d times before the postponed deadline", fired)
	}
	c.Advance(1 * time.Second)
	if fired != 1 {
		t.Errorf("timer fired %d times, want 1", fired)
	}
}

func TestResetRearmsFiredTimer(t *testing.T) {
	c := Fake(epoch)
	fired := 0
	timer := c.AfterFunc(time.Second, func() { fired++ })

	c.Advance(time.Second)
	if fired != 1 {
		t.Fatalf("timer fired %d times, want 1", fired)
	}
	if timer.Reset(time.Second) {
		t.Error("Reset() = true on a fired timer, want false")
	}
	c.Advance(time.Second)
	if fired != 2 {
		t.Errorf("re-armed timer fired %d times in total, want 2", fired)
	}
}

func TestAdvanceFiresInDeadlineOrder(t *testing.T) {
	c := Fake(epoch)
	var order []string
	c.AfterFunc(30*time.Second, func() { order = append(order, "late") })
	c.AfterFunc(10*time.Second, func() { order = append(order, "early") })
	c.AfterFunc(20*time.Second, func() { order = append(order, "middle") })

	c.Advance(time.Minute)
	want := []string{"early", "middle", "late"}
	if len(order) != len(want) {
		t.Fatalf("fired %d timers, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("firing order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestCallbackArmsFollowupTimer(t *testing.T) {
	c := Fake(epoch)
	fired := 0
	c.AfterFunc(10*time.Second, func() {
		fired++
		c.AfterFunc(10*time.Second, func() { fired++ })
	})

	// One advance spanning both deadlines fires the follow-up too.
	c.Advance(time.Minute)
	if fired != 2 {
		t.Errorf("fired %d timers, want 2", fired)
	}
}

func TestPendingCount(t *testing.T) {
	c := Fake(epoch)
	if got := c.PendingCount(); got != 0 {
		t.Fatalf("PendingCount() = %d, want 0", got)
	}
	timer := c.AfterFunc(time.Minute, func() {})
	c.AfterFunc(time.Hour, func() {})
	if got := c.PendingCount(); got != 2 {
		t.Errorf("PendingCount() = %d, want 2", got)
	}
	timer.Stop()
	c.Advance(0)
	if got := c.PendingCount(); got != 1 {
		t.Errorf("PendingCount() after stop = %d, want 1", got)
	}
}
