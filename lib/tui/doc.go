// Copyright 2026 The Timewarp Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui provides shared terminal user interface pieces for
// Timewarp's interactive editors: the color theme and small rendering
// helpers. Built for bubbletea (Elm architecture) programs.
//
// Domain-specific editors import this package for a consistent look:
// same palette, same chrome conventions. Each editor owns its own
// model, layout, and domain rendering.
package tui
