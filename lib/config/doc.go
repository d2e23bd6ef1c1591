// Copyright 2026 The Timewarp Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for timewarp.
//
// Configuration is loaded from a single file specified by either the
// TIMEWARP_CONFIG environment variable (via [Load]) or a --config
// flag (via [LoadFile]). There are no fallbacks, no ~/.config
// discovery, and no automatic file search.
//
// A missing file is not an error for [Load]: with TIMEWARP_CONFIG
// unset, commands run on the defaults, which place a 1 KiB device
// image under the user's home directory.
//
// Variable expansion is performed on path fields after loading:
// ${HOME} and ${VAR:-default} patterns are expanded. No other
// environment variables override config values.
//
// Key exports:
//
//   - [Config] -- master struct with Device, Autosave, Snapshot
//   - [Default] -- returns the stock configuration
//   - [Load] and [LoadFile] -- the two entry points for loading
//
// The minimum-capacity check is the only reason this package reaches
// into the settings and slotstore packages.
package config
