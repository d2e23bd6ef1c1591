// Copyright 2026 The Timewarp Authors
// SPDX-License-Identifier: Apache-2.0

package slotstore

import (
	"bufio"
	"fmt"
	"io"
)

const (
	// eraseChunk is the buffer size Erase writes the fill pattern in.
	eraseChunk = 256

	// eraseFill is the byte value Erase floods the medium with,
	// matching the factory state of EEPROM cells.
	eraseFill = 0xFF

	// dumpWordsPerLine is how many marker-aligned words Dump prints
	// per output line.
	dumpWordsPerLine = 8
)

// Erase resets the medium to its factory state: every byte is
// overwritten with 0xFF, the current address returns to zero, and an
// EmptyMarker is written there. The live record, if any, is lost.
func (s *Store) Erase() error {
	if s.blocked {
		return ErrLayout
	}
	fill := make([]byte, eraseChunk)
	for i := range fill {
		fill[i] = eraseFill
	}
	for off := int64(0); off < s.capacity; off += eraseChunk {
		chunk := fill
		if remain := s.capacity - off; remain < eraseChunk {
			chunk = fill[:remain]
		}
		if _, err := s.medium.WriteAt(chunk, off); err != nil {
			return fmt.Errorf("erasing at offset %d: %w", off, err)
		}
	}
	s.current = 0
	if err := s.writeMarker(0, EmptyMarker); err != nil {
		return fmt.Errorf("marking erased medium empty: %w", err)
	}
	s.logger.Debug("medium erased", "capacity", s.capacity)
	return nil
}

// Prime seeds offset zero with record and makes it the live record,
// bypassing the wear rotation. The slot at the previous current
// address is tombstoned first. Prime is how a restored image or a
// factory default lands on a medium whose rotation state is unknown
// or untrusted.
func (s *Store) Prime(record []byte) error {
	if s.blocked {
		return ErrLayout
	}
	if s.recordSize+MarkerWidth > s.capacity {
		return fmt.Errorf("slot of %d bytes exceeds medium capacity %d: %w",
			s.recordSize+MarkerWidth, s.capacity, ErrCapacity)
	}
	if int64(len(record)) != s.recordSize {
		return fmt.Errorf("got %d bytes, want %d: %w", len(record), s.recordSize, ErrRecordSize)
	}
	if err := s.writeMarker(s.current, EraseMarker); err != nil {
		return fmt.Errorf("tombstoning slot at offset %d: %w", s.current, err)
	}
	if err := s.writeMarker(0, DataMarker); err != nil {
		return fmt.Errorf("writing data marker at offset 0: %w", err)
	}
	if _, err := s.medium.WriteAt(record, MarkerWidth); err != nil {
		return fmt.Errorf("writing record at offset %d: %w", int64(MarkerWidth), err)
	}
	s.current = 0
	s.logger.Debug("primed record at offset zero")
	return nil
}

// Dump writes a hex dump of every marker-aligned word on the medium
// to w, eight words per line, each line prefixed with the decimal
// offset of its first word. Words equal to DataMarker are bracketed
// so the live slot stands out.
func (s *Store) Dump(w io.Writer) error {
	if s.blocked {
		return ErrLayout
	}
	bw := bufio.NewWriter(w)
	for addr := int64(0); addr+MarkerWidth <= s.capacity; addr += MarkerWidth {
		word, err := s.readMarker(addr)
		if err != nil {
			return fmt.Errorf("reading word at offset %d: %w", addr, err)
		}
		if column := (addr / MarkerWidth) % dumpWordsPerLine; column == 0 {
			if addr > 0 {
				fmt.Fprintln(bw)
			}
			fmt.Fprintf(bw, "%04d ->", addr)
		}
		if word == DataMarker {
			fmt.Fprintf(bw, ">%08x<", word)
		} else {
			fmt.Fprintf(bw, " %08x ", word)
		}
	}
	fmt.Fprintln(bw)
	return bw.Flush()
}
