// Copyright 2026 The Timewarp Authors
// SPDX-License-Identifier: Apache-2.0

// Package slotstore persists a single fixed-size record on a
// byte-addressable medium, rotating the record's location so that
// rewrites spread wear across the medium's cells instead of burning
// out one spot.
//
// The medium is carved implicitly into slots: a 4-byte marker word
// followed immediately by the record bytes. At most one slot holds
// the live record, tagged with DataMarker. A rewrite first tombstones
// the live slot with EraseMarker and then writes the new record into
// the next slot, wrapping to offset zero when the next slot would not
// fit. After a restart, Init finds the live record again by scanning
// for its marker.
//
// Marker words are little-endian. A slot is trusted purely on its
// marker; record bytes carry no checksum, so the on-medium layout
// stays readable by the firmware revisions that wrote it.
package slotstore

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/timewarp-audio/timewarp/lib/medium"
)

// Marker words tagging slot states.
const (
	// MarkerWidth is the size of a marker word in bytes. Slot
	// addresses advance in multiples of this width, and the record
	// size must be a multiple of it.
	MarkerWidth = 4

	// DataMarker tags the slot holding the live record.
	DataMarker uint32 = 0x66666666

	// EraseMarker tags a slot whose record has been superseded.
	EraseMarker uint32 = 0x33333333

	// EmptyMarker at offset zero tags a medium holding no record.
	EmptyMarker uint32 = 0x22222222
)

// Errors reported by Store operations.
var (
	// ErrLayout means the record size is not a positive multiple of
	// the marker width. A store in this state refuses every operation
	// without touching the medium.
	ErrLayout = errors.New("slotstore: record size not a multiple of the marker width")

	// ErrCapacity means a single slot does not fit the medium, or the
	// current record extends past the end of the medium.
	ErrCapacity = errors.New("slotstore: record does not fit the medium")

	// ErrNotFound means the current address holds no live record.
	// This is the normal state of a fresh or erased medium.
	ErrNotFound = errors.New("slotstore: no record found")

	// ErrRecordSize means the caller's record length does not match
	// the store's fixed record size.
	ErrRecordSize = errors.New("slotstore: record length mismatch")
)

// Store rotates a fixed-size record across a medium.
//
// A Store is not safe for concurrent use; callers that share one
// across goroutines must serialize access themselves.
type Store struct {
	medium     medium.Medium
	logger     *slog.Logger
	recordSize int64
	capacity   int64
	current    int64
	blocked    bool
}

// New creates a Store over m holding records of recordSize bytes.
// The layout is checked immediately: a record size that is not a
// positive multiple of MarkerWidth blocks the store permanently, and
// every operation returns ErrLayout without any medium traffic.
//
// Call Init before the first Read or Write. A nil logger discards all
// log output.
func New(m medium.Medium, recordSize int, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Store{
		medium:     m,
		logger:     logger,
		recordSize: int64(recordSize),
		capacity:   m.Capacity(),
	}
	if recordSize <= 0 || recordSize%MarkerWidth != 0 {
		s.blocked = true
	}
	return s
}

// Init locates the live record after a restart. It scans the medium
// from offset zero in MarkerWidth strides and adopts the first
// DataMarker it finds as the current address. The scan stops before
// any offset whose record could not fit, so a marker in the trailing
// dead zone is never adopted. A medium with no data marker is treated
// as fresh: the current address becomes zero and an EmptyMarker is
// written there.
//
// Init returns ErrLayout on a blocked store and ErrCapacity when a
// single slot exceeds the medium; in the capacity case nothing is
// written and the store stays usable with the current address at
// zero.
func (s *Store) Init() error {
	if s.blocked {
		return ErrLayout
	}
	if s.recordSize+MarkerWidth > s.capacity {
		return fmt.Errorf("slot of %d bytes exceeds medium capacity %d: %w",
			s.recordSize+MarkerWidth, s.capacity, ErrCapacity)
	}
	for addr := int64(0); addr < s.capacity-s.recordSize; addr += MarkerWidth {
		marker, err := s.readMarker(addr)
		if err != nil {
			return fmt.Errorf("scanning for data marker at offset %d: %w", addr, err)
		}
		if marker == DataMarker {
			s.current = addr
			s.logger.Debug("recovered live record", "address", addr)
			return nil
		}
	}
	s.current = 0
	if err := s.writeMarker(0, EmptyMarker); err != nil {
		return fmt.Errorf("marking fresh medium empty: %w", err)
	}
	s.logger.Debug("no live record, marked medium empty")
	return nil
}

// IsEmpty reports whether the marker at the current address is
// EmptyMarker. A medium whose marker bytes are garbage reads as not
// empty; Read distinguishes that case by returning ErrNotFound.
func (s *Store) IsEmpty() (bool, error) {
	if s.blocked {
		return false, ErrLayout
	}
	marker, err := s.readMarker(s.current)
	if err != nil {
		return false, fmt.Errorf("reading marker at offset %d: %w", s.current, err)
	}
	return marker == EmptyMarker, nil
}

// Write stores record in the next slot of the rotation and returns
// the number of medium bytes one slot occupies. The slot holding the
// previous record is tombstoned first, so a crash between the
// tombstone and the data write leaves no live record rather than an
// ambiguous pair. The first write on a fresh medium reuses the slot
// at offset zero.
func (s *Store) Write(record []byte) (int, error) {
	if s.blocked {
		return 0, ErrLayout
	}
	if s.recordSize+MarkerWidth > s.capacity {
		return 0, fmt.Errorf("slot of %d bytes exceeds medium capacity %d: %w",
			s.recordSize+MarkerWidth, s.capacity, ErrCapacity)
	}
	if int64(len(record)) != s.recordSize {
		return 0, fmt.Errorf("got %d bytes, want %d: %w", len(record), s.recordSize, ErrRecordSize)
	}

	marker, err := s.readMarker(s.current)
	if err != nil {
		return 0, fmt.Errorf("reading marker at offset %d: %w", s.current, err)
	}
	if err := s.writeMarker(s.current, EraseMarker); err != nil {
		return 0, fmt.Errorf("tombstoning slot at offset %d: %w", s.current, err)
	}
	if marker != EmptyMarker {
		next := s.current + MarkerWidth + s.recordSize
		if next+s.recordSize > s.capacity {
			s.logger.Debug("write cursor wrapped", "from", s.current)
			next = 0
		}
		s.current = next
	}
	if err := s.writeMarker(s.current, DataMarker); err != nil {
		return 0, fmt.Errorf("writing data marker at offset %d: %w", s.current, err)
	}
	if _, err := s.medium.WriteAt(record, s.current+MarkerWidth); err != nil {
		return 0, fmt.Errorf("writing record at offset %d: %w", s.current+MarkerWidth, err)
	}
	return int(s.recordSize) + MarkerWidth, nil
}

// Read returns a copy of the live record. It returns ErrNotFound when
// the current address holds no DataMarker and ErrCapacity when the
// record would extend past the end of the medium.
func (s *Store) Read() ([]byte, error) {
	if s.blocked {
		return nil, ErrLayout
	}
	if s.current+s.recordSize > s.capacity {
		return nil, fmt.Errorf("record at offset %d extends past medium capacity %d: %w",
			s.current, s.capacity, ErrCapacity)
	}
	marker, err := s.readMarker(s.current)
	if err != nil {
		return nil, fmt.Errorf("reading marker at offset %d: %w", s.current, err)
	}
	if marker != DataMarker {
		return nil, ErrNotFound
	}
	record := make([]byte, s.recordSize)
	if _, err := s.medium.ReadAt(record, s.current+MarkerWidth); err != nil {
		return nil, fmt.Errorf("reading record at offset %d: %w", s.current+MarkerWidth, err)
	}
	return record, nil
}

// CurrentAddress returns the medium offset of the slot the store
// considers current.
func (s *Store) CurrentAddress() int64 {
	return s.current
}

// Capacity returns the capacity of the underlying medium in bytes.
func (s *Store) Capacity() int64 {
	return s.capacity
}

// RecordSize returns the fixed record size in bytes.
func (s *Store) RecordSize() int {
	return int(s.recordSize)
}

// SlotSize returns the medium footprint of one slot: the marker word
// plus the record.
func (s *Store) SlotSize() int64 {
	return MarkerWidth + s.recordSize
}

func (s *Store) readMarker(off int64) (uint32, error) {
	var buf [MarkerWidth]byte
	if _, err := s.medium.ReadAt(buf[:], off); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

func (s *Store) writeMarker(off int64, marker uint32) error {
	var buf [MarkerWidth]byte
	binary.LittleEndian.PutUint32(buf[:], marker)
	_, err := s.medium.WriteAt(buf[:], off)
	return err
}
