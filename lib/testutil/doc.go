// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for tabula packages.
//
// [RequireReceive], [RequireSend], [RequireClosed] and
// [RequireNoReceive] wrap the select-with-time.After pattern for tests
// that wait on work delivered from another goroutine, such as a
// server-mode fetch dispatched back to the table's event loop. They
// are the only real wall-clock timeouts in the test suite; everything
// the code under test schedules runs against a fake clock.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no tabula-internal dependencies.
package testutil
