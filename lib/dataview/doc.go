// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package dataview is the pure data-shaping pipeline behind a table:
// search and field filtering, stable type-aware sorting, and
// pagination, composed by [Compute] as paginate(sort(filter(rows))).
//
// Every function here is a pure function of its arguments. Input
// slices and rows are never modified; results are freshly allocated.
// Nothing is cached between calls, so a caller recomputes from the
// raw collection on every state change.
//
// Two modes share the same entry points. In [Client] mode the full
// collection is filtered, sorted and sliced locally. In [Server] mode
// the rows are already the requested page: filtering passes them
// through, pagination reports the caller-supplied page metadata, and
// only the local sort (which reorders the page in hand) still applies.
package dataview
