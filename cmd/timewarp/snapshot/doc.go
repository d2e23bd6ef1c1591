// Copyright 2026 The Timewarp Authors
// SPDX-License-Identifier: Apache-2.0

// Package snapshot implements the "timewarp snapshot" command group
// for moving device state through files: settings snapshots for
// sharing presets, and full medium images for backup and restore.
package snapshot
