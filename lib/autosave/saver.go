// Copyright 2026 The Timewarp Authors
// SPDX-License-Identifier: Apache-2.0

// Package autosave writes settings changes to the slot store after a
// quiet period. Every change re-arms the save timer, so a burst of
// control edits coalesces into a single slot write once the controls
// have been untouched for the configured delay. This is the same
// save discipline the pedal firmware uses to keep knob twiddling from
// chewing through the medium's write endurance.
package autosave

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/timewarp-audio/timewarp/lib/clock"
	"github.com/timewarp-audio/timewarp/lib/settings"
	"github.com/timewarp-audio/timewarp/lib/slotstore"
)

// DefaultDelay is how long the controls must stay quiet before a
// pending change is written.
const DefaultDelay = 10 * time.Second

// Config configures a Saver.
type Config struct {
	// Store receives the serialized records. Required.
	Store *slotstore.Store

	// Clock drives the save timer. Defaults to clock.Real().
	Clock clock.Clock

	// Delay is the quiet period before a pending change is written.
	// Defaults to DefaultDelay.
	Delay time.Duration

	// Logger receives save activity. Defaults to discarding.
	Logger *slog.Logger

	// OnSave, when set, is called after every save attempt, including
	// failed ones. It runs outside the Saver's lock, so it may call
	// back into the Saver.
	OnSave func(Result)
}

// Result describes one save attempt.
type Result struct {
	// Settings is the state that was written, or that failed to
	// write.
	Settings settings.Settings

	// Address is the slot address the store reported after the write.
	Address int64

	// Err is nil on success.
	Err error
}

// Saver debounces settings writes to a slot store.
//
// Saver serializes its own store access; while a Saver owns a store,
// nothing else should write to it.
type Saver struct {
	store  *slotstore.Store
	clk    clock.Clock
	delay  time.Duration
	logger *slog.Logger
	onSave func(Result)

	mu sync.Mutex

	// pending is the latest unsaved state, nil when everything has
	// been written.
	pending *settings.Settings

	// timer is armed while a save is scheduled. Nil until the first
	// Update.
	timer *clock.Timer

	closed bool
}

// New creates a Saver. The returned Saver holds no pending state and
// arms no timer until the first Update.
func New(cfg Config) (*Saver, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("autosave: Store is required")
	}
	clk := cfg.Clock
	if clk == nil {
		clk = clock.Real()
	}
	delay := cfg.Delay
	if delay <= 0 {
		delay = DefaultDelay
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Saver{
		store:  cfg.Store,
		clk:    clk,
		delay:  delay,
		logger: logger,
		onSave: cfg.OnSave,
	}, nil
}

// Update records s as the state to be saved and re-arms the quiet
// period timer. Calling Update again before the timer fires replaces
// the pending state and restarts the wait. Updates after Close are
// dropped.
func (sv *Saver) Update(s settings.Settings) {
	sv.mu.Lock()
	defer sv.mu.Unlock()
	if sv.closed {
		return
	}
	sv.pending = &s
	if sv.timer == nil {
		sv.timer = sv.clk.AfterFunc(sv.delay, sv.timerFired)
	} else {
		sv.timer.Reset(sv.delay)
	}
}

// Pending reports whether an unsaved change is waiting.
func (sv *Saver) Pending() bool {
	sv.mu.Lock()
	defer sv.mu.Unlock()
	return sv.pending != nil
}

// Flush writes any pending state immediately instead of waiting out
// the quiet period. It is a no-op when nothing is pending.
func (sv *Saver) Flush() error {
	return sv.flush()
}

// Close stops the save timer and flushes any pending state. Further
// Updates are dropped. Close is idempotent.
func (sv *Saver) Close() error {
	sv.mu.Lock()
	if sv.closed {
		sv.mu.Unlock()
		return nil
	}
	sv.closed = true
	if sv.timer != nil {
		sv.timer.Stop()
	}
	sv.mu.Unlock()
	return sv.flush()
}

// timerFired is the AfterFunc callback.
func (sv *Saver) timerFired() {
	sv.flush()
}

func (sv *Saver) flush() error {
	sv.mu.Lock()
	if sv.pending == nil {
		sv.mu.Unlock()
		return nil
	}
	state := *sv.pending
	record, err := state.MarshalBinary()
	if err == nil {
		_, err = sv.store.Write(record)
	}
	address := sv.store.CurrentAddress()
	// A failed write keeps the state pending so a later Flush or
	// Close can retry it.
	if err == nil {
		sv.pending = nil
		if sv.timer != nil {
			sv.timer.Stop()
		}
	}
	onSave := sv.onSave
	sv.mu.Unlock()

	if err != nil {
		sv.logger.Error("autosave write failed", "error", err)
	} else {
		sv.logger.Debug("settings autosaved", "address", address)
	}
	if onSave != nil {
		onSave(Result{Settings: state, Address: address, Err: err})
	}
	return err
}
