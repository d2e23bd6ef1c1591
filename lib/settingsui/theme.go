// Copyright 2026 The Timewarp Authors
// SPDX-License-Identifier: Apache-2.0

package settingsui

import "github.com/timewarp-audio/timewarp/lib/tui"

// Re-export theme types from the shared TUI library so that code
// within this package can refer to them unqualified.

// Theme defines the color palette for the settings editor.
type Theme = tui.Theme

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = tui.DefaultTheme
