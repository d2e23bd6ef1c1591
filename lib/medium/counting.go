// Copyright 2026 The Timewarp Authors
// SPDX-License-Identifier: Apache-2.0

package medium

// Counting wraps a Medium and records traffic per byte offset. Tests
// use it to assert two properties the store promises: blocked
// instances perform no I/O at all, and slot rotation spreads writes
// evenly across cells instead of hammering one location.
type Counting struct {
	inner  Medium
	reads  map[int64]int
	writes map[int64]int
}

// NewCounting wraps m with traffic counters.
func NewCounting(m Medium) *Counting {
	return &Counting{
		inner:  m,
		reads:  make(map[int64]int),
		writes: make(map[int64]int),
	}
}

// Capacity returns the wrapped medium's capacity.
func (c *Counting) Capacity() int64 {
	return c.inner.Capacity()
}

// ReadAt counts one read per byte covered, then delegates.
func (c *Counting) ReadAt(p []byte, off int64) (int, error) {
	for i := range p {
		c.reads[off+int64(i)]++
	}
	return c.inner.ReadAt(p, off)
}

// WriteAt counts one write per byte covered, then delegates.
func (c *Counting) WriteAt(p []byte, off int64) (int, error) {
	for i := range p {
		c.writes[off+int64(i)]++
	}
	return c.inner.WriteAt(p, off)
}

// WriteCount returns how many times the byte at off has been written.
func (c *Counting) WriteCount(off int64) int {
	return c.writes[off]
}

// TotalReads returns the total bytes read across all calls.
func (c *Counting) TotalReads() int {
	total := 0
	for _, n := range c.reads {
		total += n
	}
	return total
}

// TotalWrites returns the total bytes written across all calls.
func (c *Counting) TotalWrites() int {
	total := 0
	for _, n := range c.writes {
		total += n
	}
	return total
}
