// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package rowsource supplies rows to tables.
//
// Row files are read and written by [ReadFile] and [WriteFile]. The
// format follows the extension: a JSON array (.json), one JSON object
// per line (.jsonl), or a CBOR array (.cbor), optionally compressed
// with zstd (.zst) or LZ4 frames (.lz4). "quotes.jsonl.zst" is
// zstd-compressed JSON lines.
//
// For server mode, a [Server] answers paged queries over a collection
// with the same filter, sort and paginate pipeline a client-mode table
// runs locally, and a [Binding] connects a datatable to any [Fetcher]:
// it turns the table's page, search, filter and sort callbacks into
// queries, fetches off the event loop, and delivers each answer back
// through the table owner's dispatch function. Answers to superseded
// queries are dropped.
package rowsource
