// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dataview

import "github.com/bureau-foundation/tabula/lib/record"

// Input is one snapshot of everything the pipeline depends on.
type Input struct {
	Rows       []record.Row
	SearchKeys []string
	Filter     FilterState
	Sort       SortState
	Page       PageState
	Mode       Mode

	// ServerTotalPages is the page count reported by the server.
	// Ignored in client mode.
	ServerTotalPages int
}

// Result is the pipeline output.
type Result struct {
	// Ordered is the filtered and sorted collection before
	// pagination. Highlight targets are located in it.
	Ordered []record.Row

	// Page is the visible page.
	Page Page
}

// Compute runs filter, sort and paginate, in that order.
func Compute(input Input) Result {
	filtered := Filter(input.Rows, input.SearchKeys, input.Filter, input.Mode)
	ordered := Sort(filtered, input.Sort)
	return Result{
		Ordered: ordered,
		Page:    Paginate(ordered, input.Page, input.Mode, input.ServerTotalPages),
	}
}
