// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package datatable is the embeddable table component. A [Table] owns
// all interaction state for one table instance (search term, field
// filters, sort, page, selection, highlight) and turns it, together
// with the caller's rows and column definitions, into a [View] ready
// to render.
//
// Every state change reruns the full dataview pipeline
// (filter, sort, paginate) from the raw rows; nothing is cached
// between changes. Outgoing callbacks fire only after the table has
// finished updating, so a callback may call back into the table.
//
// In client mode the table filters, sorts and pages locally. In
// server mode it renders the rows it is given, reports the page
// metadata it is given, and turns page, search, filter and sort
// changes into callbacks for the owner to forward upstream.
//
// A Table is not safe for concurrent use. Drive it from one event
// loop and route asynchronous work (the highlight expiry timer) back
// onto that loop with Deps.Dispatch.
package datatable
