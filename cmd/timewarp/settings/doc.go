// Copyright 2026 The Timewarp Authors
// SPDX-License-Identifier: Apache-2.0

// Package settings implements the "timewarp settings" command group
// for reading and changing the stored configuration record: a
// one-shot show, scripted set, and an interactive editor that mimics
// the pedal's control surface.
package settings
