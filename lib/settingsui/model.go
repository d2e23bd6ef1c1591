// Copyright 2026 The Timewarp Authors
// SPDX-License-Identifier: Apache-2.0

// Package settingsui implements the interactive settings editor TUI:
// the pedal's control surface rendered in a terminal. The effect list
// stands in for the selector knob, h/l for the delay control, t/T for
// the tempo control, and w for the wet/dry toggle.
//
// Edits accumulate in memory and reach the slot store through an
// autosave.Saver, so a burst of adjustments coalesces into one slot
// write after the quiet period. The status line tracks that cycle:
// pending while edits wait, saved with the slot offset once the write
// lands, and the error text when it fails.
package settingsui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/timewarp-audio/timewarp/lib/autosave"
	"github.com/timewarp-audio/timewarp/lib/settings"
)

// effectColumnWidth fits the longest effect label with room for the
// selection marker.
const effectColumnWidth = 12

// saveResultMsg wraps an autosave result for delivery through the
// bubbletea message loop.
type saveResultMsg struct {
	result autosave.Result
}

// Config configures the settings editor.
type Config struct {
	// Settings is the state the editor starts from. It is clamped
	// before first render.
	Settings settings.Settings

	// Saver receives every edit. When nil, edits stay in memory and
	// the status line reports nothing, which is only useful in tests.
	Saver *autosave.Saver

	// Events delivers save results for the status line. Usually fed by
	// the Saver's OnSave callback.
	Events <-chan autosave.Result

	// Theme overrides the color scheme. Zero value means DefaultTheme.
	Theme *Theme
}

// Model is the bubbletea model for the settings editor.
type Model struct {
	settings settings.Settings
	saver    *autosave.Saver
	events   <-chan autosave.Result
	theme    Theme
	keys     KeyMap

	// Terminal dimensions (set by WindowSizeMsg).
	width  int
	height int
	ready  bool

	// Save status line state. dirty is set on every edit and cleared
	// when a save result reports the current state written.
	dirty       bool
	savedOnce   bool
	lastAddress int64
	saveError   string
}

// NewModel creates a settings editor model.
func NewModel(cfg Config) Model {
	cfg.Settings.Clamp()

	theme := DefaultTheme
	if cfg.Theme != nil {
		theme = *cfg.Theme
	}

	return Model{
		settings: cfg.Settings,
		saver:    cfg.Saver,
		events:   cfg.Events,
		theme:    theme,
		keys:     DefaultKeyMap,
	}
}

// Settings returns the editor's current state.
func (model Model) Settings() settings.Settings {
	return model.settings
}

// Init implements tea.Model. Starts listening for save results when an
// event channel is configured.
func (model Model) Init() tea.Cmd {
	if model.events == nil {
		return nil
	}
	return listenForSaveResult(model.events)
}

// listenForSaveResult returns a tea.Cmd that blocks until a save
// result arrives, then delivers it as a saveResultMsg.
func listenForSaveResult(events <-chan autosave.Result) tea.Cmd {
	return func() tea.Msg {
		result, ok := <-events
		if !ok {
			return nil
		}
		return saveResultMsg{result: result}
	}
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(message, model.keys.Quit):
			return model, tea.Quit

		case key.Matches(message, model.keys.NextEffect):
			model.settings.CycleEffect(1)
			model.touch()

		case key.Matches(message, model.keys.PreviousEffect):
			model.settings.CycleEffect(-1)
			model.touch()

		case key.Matches(message, model.keys.DelayDown):
			model.settings.AdjustDelay(-1)
			model.touch()

		case key.Matches(message, model.keys.DelayUp):
			model.settings.AdjustDelay(1)
			model.touch()

		case key.Matches(message, model.keys.DelayDownFast):
			model.settings.AdjustDelay(-10)
			model.touch()

		case key.Matches(message, model.keys.DelayUpFast):
			model.settings.AdjustDelay(10)
			model.touch()

		case key.Matches(message, model.keys.TempoUp):
			model.settings.AdjustTempo(1)
			model.touch()

		case key.Matches(message, model.keys.TempoDown):
			model.settings.AdjustTempo(-1)
			model.touch()

		case key.Matches(message, model.keys.ToggleMix):
			model.settings.WetAndDry = !model.settings.WetAndDry
			model.touch()

		case key.Matches(message, model.keys.Save):
			if model.saver != nil {
				saver := model.saver
				// Flush off the update path; the result comes back
				// through the event channel.
				return model, func() tea.Msg {
					saver.Flush()
					return nil
				}
			}
		}

	case saveResultMsg:
		if message.result.Err != nil {
			model.saveError = message.result.Err.Error()
		} else {
			model.saveError = ""
			model.savedOnce = true
			model.lastAddress = message.result.Address
			if message.result.Settings == model.settings {
				model.dirty = false
			}
		}
		return model, listenForSaveResult(model.events)

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true
	}

	return model, nil
}

// touch records an edit: the state is dirty and the saver's quiet
// period restarts.
func (model *Model) touch() {
	model.dirty = true
	model.saveError = ""
	if model.saver != nil {
		model.saver.Update(model.settings)
	}
}

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready {
		return "Loading..."
	}

	headerStyle := lipgloss.NewStyle().Foreground(model.theme.HeaderForeground).Bold(true)
	faintStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	valueStyle := lipgloss.NewStyle().Foreground(model.theme.ValueForeground)
	helpStyle := lipgloss.NewStyle().Foreground(model.theme.HelpText)

	var view strings.Builder
	view.WriteString(" " + headerStyle.Render("TIMEWARP SETTINGS"))
	view.WriteString("\n\n")

	for _, effect := range settings.Effects() {
		view.WriteString(model.renderEffectRow(effect))
		view.WriteString("\n")
	}

	mix := "wet only"
	if model.settings.WetAndDry {
		mix = "wet + dry"
	}
	view.WriteString("\n ")
	view.WriteString(faintStyle.Render("Mix: "))
	view.WriteString(valueStyle.Render(mix))
	view.WriteString(faintStyle.Render("   Delay ceiling: "))
	view.WriteString(valueStyle.Render(fmt.Sprintf("%d", model.settings.Effect.DelayCeiling())))
	view.WriteString("\n\n")

	view.WriteString(" " + model.renderStatus())
	view.WriteString("\n ")
	view.WriteString(helpStyle.Render(
		"j/k effect  h/l delay  H/L delay x10  t/T tempo  w mix  s save  q quit"))
	view.WriteString("\n")

	return view.String()
}

// renderEffectRow renders one effect line: the label, its delay time
// against the effect's ceiling, and its tempo fraction. The selected
// effect gets the highlight background.
func (model Model) renderEffectRow(effect settings.Effect) string {
	label := effect.String()
	delay := model.settings.DelayTime[effect]
	tempo := settings.TempoLabel(model.settings.TempoIndex[effect])
	row := fmt.Sprintf(" %-*s delay %3d/%-3d  tempo %-5s",
		effectColumnWidth, label, delay, effect.DelayCeiling(), tempo)

	if effect == model.settings.Effect {
		selectedStyle := lipgloss.NewStyle().
			Background(model.theme.SelectedBackground).
			Foreground(model.theme.SelectedForeground)
		return " >" + selectedStyle.Render(row)
	}
	normalStyle := lipgloss.NewStyle().Foreground(model.theme.NormalText)
	return "  " + normalStyle.Render(row)
}

// renderStatus renders the save state line.
func (model Model) renderStatus() string {
	switch {
	case model.saveError != "":
		return lipgloss.NewStyle().Foreground(model.theme.AccentError).
			Render("save failed: " + model.saveError)
	case model.dirty:
		return lipgloss.NewStyle().Foreground(model.theme.AccentPending).
			Render("● unsaved changes")
	case model.savedOnce:
		return lipgloss.NewStyle().Foreground(model.theme.AccentSaved).
			Render(fmt.Sprintf("saved at offset %d", model.lastAddress))
	default:
		return lipgloss.NewStyle().Foreground(model.theme.FaintText).
			Render("no changes")
	}
}
