// Copyright 2026 The Timewarp Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color palette for Timewarp's terminal UIs. All
// colors use lipgloss ANSI 256-color codes for broad terminal
// compatibility.
//
// The fields cover universal chrome (text, selection, headers) and the
// save-state accents every editor shares: settings sit dirty in memory
// until the autosave quiet period expires, and the status line colors
// that state.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Value emphasis: the numbers a control currently sits at.
	ValueForeground lipgloss.Color

	// Save state accents for the status line.
	AccentPending lipgloss.Color
	AccentSaved   lipgloss.Color
	AccentError   lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal color scheme. Designed
// for 256-color terminals with a dark background.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	ValueForeground: lipgloss.Color("75"), // blue

	AccentPending: lipgloss.Color("220"), // yellow/amber
	AccentSaved:   lipgloss.Color("114"), // green
	AccentError:   lipgloss.Color("196"), // red
}
