// Copyright 2026 The Timewarp Authors
// SPDX-License-Identifier: Apache-2.0

package settingsui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the settings editor TUI.
type KeyMap struct {
	// Effect selection.
	NextEffect     key.Binding
	PreviousEffect key.Binding

	// Delay control. Fast variants move ten steps at once.
	DelayDown     key.Binding
	DelayUp       key.Binding
	DelayDownFast key.Binding
	DelayUpFast   key.Binding

	// Tempo control.
	TempoUp   key.Binding
	TempoDown key.Binding

	// Output mix.
	ToggleMix key.Binding

	// Persistence.
	Save key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// (j/k for the effect list, h/l for the delay control) alongside
// standard arrow keys.
var DefaultKeyMap = KeyMap{
	NextEffect: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "next effect"),
	),
	PreviousEffect: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "previous effect"),
	),
	DelayDown: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "delay -1"),
	),
	DelayUp: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "delay +1"),
	),
	DelayDownFast: key.NewBinding(
		key.WithKeys("H", "shift+left"),
		key.WithHelp("H", "delay -10"),
	),
	DelayUpFast: key.NewBinding(
		key.WithKeys("L", "shift+right"),
		key.WithHelp("L", "delay +10"),
	),
	TempoUp: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "tempo +1"),
	),
	TempoDown: key.NewBinding(
		key.WithKeys("T"),
		key.WithHelp("T", "tempo -1"),
	),
	ToggleMix: key.NewBinding(
		key.WithKeys("w"),
		key.WithHelp("w", "toggle mix"),
	),
	Save: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "save now"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c", "esc"),
		key.WithHelp("q", "quit"),
	),
}
