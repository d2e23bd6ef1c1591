// Copyright 2026 The Timewarp Authors
// SPDX-License-Identifier: Apache-2.0

// Timewarp is the CLI for the Timewarp delay pedal's settings store.
// It provides subcommands for managing the backing device file
// (store), reading and editing the stored settings (settings), and
// moving settings and whole-medium images between devices as files
// (snapshot).
package main
