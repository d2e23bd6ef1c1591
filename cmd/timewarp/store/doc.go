// Copyright 2026 The Timewarp Authors
// SPDX-License-Identifier: Apache-2.0

// Package store implements the "timewarp store" command group for
// managing the record store on the device medium: creating and sizing
// the device file, erasing it back to factory state, and inspecting
// the raw slot rotation.
package store
