// Copyright 2026 The Timewarp Authors
// SPDX-License-Identifier: Apache-2.0

// Package medium provides byte-addressable fixed-capacity storage for
// the slot store: a file-backed Device for real EEPROM image files and
// sysfs EEPROM nodes, an in-memory Mem for tests and dry runs, and a
// Counting wrapper that records per-cell write traffic.
package medium

// Medium is fixed-capacity byte-addressable storage. The capacity is
// established at construction and never changes for the lifetime of
// the value. Offsets are caller-computed; implementations may bounds-
// check writes but are not required to validate beyond what callers
// guarantee.
type Medium interface {
	// Capacity returns the total size in bytes.
	Capacity() int64

	// ReadAt reads len(p) bytes starting at byte offset off. Returns
	// io.EOF when fewer than len(p) bytes are available.
	ReadAt(p []byte, off int64) (int, error)

	// WriteAt writes len(p) bytes starting at byte offset off.
	WriteAt(p []byte, off int64) (int, error)
}
