// Copyright 2026 The Timewarp Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for timewarp packages.
//
// [RequireReceive] encapsulates the timeout safety valve pattern
// (select with a time.After fallback) so that individual tests do not
// block forever on a channel that never delivers. It is the only place
// in the test suite where real wall-clock timeouts are used; tests
// drive logical time through fake clocks instead.
//
// Helpers call t.Fatalf on failure rather than returning errors, since
// test setup failures are not recoverable.
package testutil
