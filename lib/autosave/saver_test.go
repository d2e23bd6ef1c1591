// Copyright 2026 The Timewarp Authors
// SPDX-License-Identifier: Apache-2.0

package autosave

import (
	"errors"
	"testing"
	"time"

	"github.com/timewarp-audio/timewarp/lib/clock"
	"github.com/timewarp-audio/timewarp/lib/medium"
	"github.com/timewarp-audio/timewarp/lib/settings"
	"github.com/timewarp-audio/timewarp/lib/slotstore"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

type fixture struct {
	clk      *clock.FakeClock
	counting *medium.Counting
	store    *slotstore.Store
	saver    *Saver
}

func newFixture(t *testing.T, cfg Config) *fixture {
	t.Helper()
	f := &fixture{
		clk:      clock.Fake(epoch),
		counting: medium.NewCounting(medium.NewMemFilled(1024, 0xFF)),
	}
	f.store = slotstore.New(f.counting, settings.Size, nil)
	if err := f.store.Init(); err != nil {
		t.Fatalf("Init() = %v, want nil", err)
	}
	cfg.Store = f.store
	cfg.Clock = f.clk
	saver, err := New(cfg)
	if err != nil {
		t.Fatalf("New() = %v, want nil", err)
	}
	f.saver = saver
	return f
}

// recordWrites counts how often the first record byte was written.
// One flush writes it exactly once.
func (f *fixture) recordWrites() int {
	return f.counting.WriteCount(slotstore.MarkerWidth)
}

func (f *fixture) stored(t *testing.T) settings.Settings {
	t.Helper()
	raw, err := f.store.Read()
	if err != nil {
		t.Fatalf("Read() = %v, want nil", err)
	}
	loaded, err := settings.Load(raw)
	if err != nil {
		t.Fatalf("Load() = %v, want nil", err)
	}
	return loaded
}

func TestSavesAfterQuietPeriod(t *testing.T) {
	f := newFixture(t, Config{})

	state := settings.Default()
	state.SetEffect(settings.Chorus)
	f.saver.Update(state)

	f.clk.Advance(9 * time.Second)
	if got := f.recordWrites(); got != 0 {
		t.Fatalf("record written %d times before the quiet period ended, want 0", got)
	}
	if !f.saver.Pending() {
		t.Fatal("Pending() = false while a change is waiting, want true")
	}

	f.clk.Advance(1 * time.Second)
	if got := f.recordWrites(); got != 1 {
		t.Fatalf("record written %d times after the quiet period, want 1", got)
	}
	if f.saver.Pending() {
		t.Error("Pending() = true after the save, want false")
	}
	if got := f.stored(t); got != state {
		t.Errorf("stored settings = %+v, want %+v", got, state)
	}
}

func TestChangesRearmTimer(t *testing.T) {
	f := newFixture(t, Config{})

	state := settings.Default()
	f.saver.Update(state)
	f.clk.Advance(9 * time.Second)

	// A second change inside the quiet period restarts the wait, so
	// nothing is written at the original deadline.
	state.SetEffect(settings.Reverb)
	f.saver.Update(state)
	f.clk.Advance(9 * time.Second)
	if got := f.recordWrites(); got != 0 {
		t.Fatalf("record written %d times before the restarted wait ended, want 0", got)
	}

	f.clk.Advance(1 * time.Second)
	if got := f.recordWrites(); got != 1 {
		t.Fatalf("record written %d times, want 1", got)
	}
	if got := f.stored(t); got.Effect != settings.Reverb {
		t.Errorf("stored effect = %v, want %v", got.Effect, settings.Reverb)
	}
}

func TestCoalescesEditingBurst(t *testing.T) {
	f := newFixture(t, Config{})

	state := settings.Default()
	for i := 0; i < 50; i++ {
		state.AdjustDelay(1)
		f.saver.Update(state)
		f.clk.Advance(time.Second)
	}
	f.clk.Advance(10 * time.Second)

	if got := f.recordWrites(); got != 1 {
		t.Errorf("editing burst wrote the record %d times, want 1", got)
	}
	if got := f.stored(t); got != state {
		t.Errorf("stored settings = %+v, want the last update %+v", got, state)
	}
}

func TestFlushWritesImmediately(t *testing.T) {
	f := newFixture(t, Config{})

	state := settings.Default()
	state.SetEffect(settings.Telegraph)
	f.saver.Update(state)

	if err := f.saver.Flush(); err != nil {
		t.Fatalf("Flush() = %v, want nil", err)
	}
	if got := f.recordWrites(); got != 1 {
		t.Fatalf("record written %d times after Flush, want 1", got)
	}

	// The disarmed timer must not produce a second write.
	f.clk.Advance(time.Minute)
	if got := f.recordWrites(); got != 1 {
		t.Errorf("record written %d times after the timer window, want 1", got)
	}
}

func TestFlushWithoutChangesIsNoop(t *testing.T) {
	f := newFixture(t, Config{})
	if err := f.saver.Flush(); err != nil {
		t.Fatalf("Flush() = %v, want nil", err)
	}
	f.clk.Advance(time.Minute)
	if got := f.recordWrites(); got != 0 {
		t.Errorf("record written %d times with nothing pending, want 0", got)
	}
}

func TestCloseFlushesPending(t *testing.T) {
	f := newFixture(t, Config{})

	state := settings.Default()
	state.SetEffect(settings.Psycho)
	f.saver.Update(state)

	if err := f.saver.Close(); err != nil {
		t.Fatalf("Close() = %v, want nil", err)
	}
	if got := f.stored(t); got.Effect != settings.Psycho {
		t.Errorf("stored effect = %v, want %v", got.Effect, settings.Psycho)
	}

	// Updates after Close are dropped.
	state.SetEffect(settings.Echo)
	f.saver.Update(state)
	f.clk.Advance(time.Minute)
	if got := f.recordWrites(); got != 1 {
		t.Errorf("record written %d times, want 1", got)
	}
	if err := f.saver.Close(); err != nil {
		t.Errorf("second Close() = %v, want nil", err)
	}
}

func TestCustomDelay(t *testing.T) {
	f := newFixture(t, Config{Delay: 2 * time.Second})

	f.saver.Update(settings.Default())
	f.clk.Advance(1 * time.Second)
	if got := f.recordWrites(); got != 0 {
		t.Fatalf("record written %d times before the custom delay, want 0", got)
	}
	f.clk.Advance(1 * time.Second)
	if got := f.recordWrites(); got != 1 {
		t.Errorf("record written %d times after the custom delay, want 1", got)
	}
}

func TestOnSaveCallback(t *testing.T) {
	var results []Result
	f := newFixture(t, Config{OnSave: func(r Result) { results = append(results, r) }})

	state := settings.Default()
	state.SetEffect(settings.LongDelay)
	f.saver.Update(state)
	f.clk.Advance(10 * time.Second)

	if len(results) != 1 {
		t.Fatalf("OnSave called %d times, want 1", len(results))
	}
	r := results[0]
	if r.Err != nil {
		t.Errorf("Result.Err = %v, want nil", r.Err)
	}
	if r.Settings != state {
		t.Errorf("Result.Settings = %+v, want %+v", r.Settings, state)
	}
	if r.Address != 0 {
		t.Errorf("Result.Address = %d, want 0 for the first write", r.Address)
	}
}

func TestFailedWriteKeepsPending(t *testing.T) {
	// A medium smaller than one slot makes every write fail with a
	// capacity error.
	store := slotstore.New(medium.NewMemFilled(8, 0xFF), settings.Size, nil)
	var results []Result
	saver, err := New(Config{
		Store:  store,
		Clock:  clock.Fake(epoch),
		OnSave: func(r Result) { results = append(results, r) },
	})
	if err != nil {
		t.Fatalf("New() = %v, want nil", err)
	}

	saver.Update(settings.Default())
	if err := saver.Flush(); !errors.Is(err, slotstore.ErrCapacity) {
		t.Fatalf("Flush() error = %v, want ErrCapacity", err)
	}
	if !saver.Pending() {
		t.Error("Pending() = false after a failed save, want true")
	}
	if len(results) != 1 || !errors.Is(results[0].Err, slotstore.ErrCapacity) {
		t.Errorf("OnSave results = %+v, want one capacity error", results)
	}
}

func TestNewRequiresStore(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Error("New() without a store succeeded, want error")
	}
}
