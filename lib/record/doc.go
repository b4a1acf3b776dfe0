// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package record defines the opaque row type consumed by the table
// engine and the value helpers every stage of the pipeline shares.
//
// A [Row] is a map from field name to value, usually produced by
// decoding JSON or CBOR. The only field the engine interprets is "id":
// its string form ([Row.ID]) is the row's identity for selection and
// highlighting. All other fields are reached through dot-separated
// field paths ([Lookup]) and compared through [String], [Lower] and
// [Number], so filter, sort and render agree on how a value reads.
//
// Nothing in this package mutates a row.
package record
