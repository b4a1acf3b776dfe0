// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides tabula's CBOR configuration and the
// normalization of arbitrary Go values into rows.
//
// CBOR is the compact on-disk format for row files (.cbor), and the
// bridge from typed data to the engine's generic rows: a slice of
// structs is encoded with fxamacker/cbor (which reads `json` tags when
// `cbor` tags are absent) and decoded back into map[string]any, so
// callers can hand the table their own types without writing
// converters.
//
//	rows, err := codec.Rows(quotes)       // []Quote -> []record.Row
//	rows, err := codec.DecodeRows(data)   // .cbor file contents
//	err = codec.EncodeRows(file, rows)
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2), so the
// same rows always produce identical bytes. Times encode as RFC 3339
// strings, which the date cell parses directly.
package codec
