// Copyright 2026 The Timewarp Authors
// SPDX-License-Identifier: Apache-2.0

package medium

import (
	"fmt"
	"io"
)

// Mem is an in-memory Medium. Tests use it in place of a Device; the
// dry-run paths of the CLI use it to preview operations without
// touching a device file.
type Mem struct {
	data []byte
}

// NewMem returns a zero-filled in-memory medium of the given capacity.
func NewMem(capacity int64) *Mem {
	return &Mem{data: make([]byte, capacity)}
}

// NewMemFilled returns an in-memory medium with every byte set to
// fill. A fill of 0xFF mirrors the factory state of EEPROM cells.
func NewMemFilled(capacity int64, fill byte) *Mem {
	m := NewMem(capacity)
	for i := range m.data {
		m.data[i] = fill
	}
	return m
}

// Capacity returns the medium size in bytes.
func (m *Mem) Capacity() int64 {
	return int64(len(m.data))
}

// ReadAt reads len(p) bytes starting at byte offset off. Returns
// io.EOF when the requested range extends past the end.
func (m *Mem) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(p, m.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// WriteAt writes len(p) bytes starting at byte offset off. Writes past
// the fixed capacity are refused.
func (m *Mem) WriteAt(p []byte, off int64) (int, error) {
	if off < 0 || off+int64(len(p)) > int64(len(m.data)) {
		return 0, fmt.Errorf("write at offset %d with length %d exceeds medium size %d",
			off, len(p), len(m.data))
	}
	return copy(m.data[off:], p), nil
}

// Bytes returns a copy of the medium contents.
func (m *Mem) Bytes() []byte {
	out := make([]byte, len(m.data))
	copy(out, m.data)
	return out
}
