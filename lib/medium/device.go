// Copyright 2026 The Timewarp Authors
// SPDX-License-Identifier: Apache-2.0

//go:build darwin || linux

package medium

import (
	"fmt"
	"io"

	"golang.org/x/sys/unix"
)

// Device is a fixed-size file used as the persistent medium: either a
// plain EEPROM image file or a kernel-exposed EEPROM node (sysfs "eeprom"
// attribute). Reads and writes go through pread/pwrite on a raw file
// descriptor; such nodes do not support mmap, and the store's access
// pattern is a handful of small transfers, not bulk I/O.
//
// The descriptor holds an exclusive flock for its lifetime, so a second
// process opening the same device fails fast instead of interleaving
// writes. Within a process, WriteAt calls must be serialized by the
// caller (single writer).
type Device struct {
	path string
	fd   int
	size int64
}

// OpenDevice opens the device file at path. With capacity > 0 a missing
// file is created at that size, and an existing file must match it
// exactly; delete the file to resize. With capacity == 0 the file must
// already exist and its current size is adopted.
func OpenDevice(path string, capacity int64) (*Device, error) {
	if capacity < 0 {
		return nil, fmt.Errorf("device capacity must not be negative, got %d", capacity)
	}

	flags := unix.O_RDWR
	if capacity > 0 {
		flags |= unix.O_CREAT
	}
	fd, err := unix.Open(path, flags, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening device %s: %w", path, err)
	}

	// Exclusive, non-blocking: a held lock means another timewarp
	// process owns the device right now.
	if err := unix.Flock(fd, unix.LOCK_EX|unix.LOCK_NB); err != nil {
		unix.Close(fd)
		if err == unix.EWOULDBLOCK {
			return nil, fmt.Errorf("device %s is locked by another process", path)
		}
		return nil, fmt.Errorf("locking device %s: %w", path, err)
	}

	var stat unix.Stat_t
	if err := unix.Fstat(fd, &stat); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("stating device %s: %w", path, err)
	}

	size := stat.Size
	switch {
	case capacity == 0 && size == 0:
		unix.Close(fd)
		return nil, fmt.Errorf("device %s is empty and no capacity was requested", path)
	case capacity == 0:
		// Adopt whatever is there.
	case size == 0:
		// New file, grow to the requested capacity.
		if err := unix.Ftruncate(fd, capacity); err != nil {
			unix.Close(fd)
			return nil, fmt.Errorf("truncating new device %s to %d bytes: %w", path, capacity, err)
		}
		size = capacity
	case size != capacity:
		unix.Close(fd)
		return nil, fmt.Errorf("device %s is %d bytes but %d was requested; delete the file to resize",
			path, size, capacity)
	}

	return &Device{path: path, fd: fd, size: size}, nil
}

// ReadAt reads len(p) bytes from the device starting at byte offset
// off. Returns io.EOF when the requested range extends past the end.
func (d *Device) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off >= d.size {
		return 0, io.EOF
	}

	want := len(p)
	if off+int64(want) > d.size {
		want = int(d.size - off)
	}

	total := 0
	for total < want {
		n, err := unix.Pread(d.fd, p[total:want], off+int64(total))
		total += n
		if err != nil {
			return total, fmt.Errorf("pread at offset %d: %w", off+int64(total), err)
		}
		if n == 0 {
			break
		}
	}
	if total < len(p) {
		return total, io.EOF
	}
	return total, nil
}

// WriteAt writes len(p) bytes to the device starting at byte offset
// off. Writes past the fixed size are refused.
func (d *Device) WriteAt(p []byte, off int64) (int, error) {
	if off < 0 || off+int64(len(p)) > d.size {
		return 0, fmt.Errorf("write at offset %d with length %d exceeds device size %d",
			off, len(p), d.size)
	}

	total := 0
	for len(p) > 0 {
		n, err := unix.Pwrite(d.fd, p, off)
		total += n
		if err != nil {
			return total, fmt.Errorf("pwrite at offset %d: %w", off, err)
		}
		p = p[n:]
		off += int64(n)
	}
	return total, nil
}

// Sync flushes written data to the underlying storage. Metadata is not
// flushed; the file's size never changes after OpenDevice.
func (d *Device) Sync() error {
	if err := unix.Fdatasync(d.fd); err != nil {
		return fmt.Errorf("syncing device %s: %w", d.path, err)
	}
	return nil
}

// Close releases the lock and the descriptor.
func (d *Device) Close() error {
	var firstErr error
	if err := unix.Flock(d.fd, unix.LOCK_UN); err != nil {
		firstErr = fmt.Errorf("unlocking device %s: %w", d.path, err)
	}
	if err := unix.Close(d.fd); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("closing device %s: %w", d.path, err)
	}
	d.fd = -1
	return firstErr
}

// Capacity returns the device size in bytes.
func (d *Device) Capacity() int64 {
	return d.size
}

// Path returns the device file path.
func (d *Device) Path() string {
	return d.path
}
