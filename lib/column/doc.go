// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package column interprets declarative column descriptions.
//
// A [Spec] says where a column's value comes from (an [Accessor]: a
// dot-separated field path or a function of the row), how it should be
// presented (a [CellType] plus a typed cell config), and whether and
// by which key it sorts. The package answers two independent
// questions for a (Spec, Row) pair:
//
//   - [Spec.Value]: the raw value, used for sorting and searching.
//   - [Registry.Display]: the presented [Cell], produced by a
//     per-cell-type [Presenter] registered in a [Registry].
//
// Presenters are pure functions of (config, value). A value that is
// missing renders as the column's fallback text; a config or value the
// presenter cannot handle falls through to plain rendering. Nothing
// here panics on malformed rows or mutates them.
package column
