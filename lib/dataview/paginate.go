// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dataview

import "github.com/bureau-foundation/tabula/lib/record"

// DefaultPageSize is used when a page size is not positive.
const DefaultPageSize = 10

// PageState is the requested page size and 1-based page number.
type PageState struct {
	Size    int
	Current int
}

// Page is one page of rows plus its metadata.
type Page struct {
	// Rows are the rows on this page, at most Size of them.
	Rows []record.Row

	// Current is the 1-based page number, clamped to TotalPages in
	// client mode.
	Current int

	// Size is the effective page size.
	Size int

	// TotalPages is 0 when there are no rows.
	TotalPages int

	// Total counts the rows across all pages in client mode. In
	// server mode it is the number of rows on the page in hand.
	Total int
}

// HasPrevious reports whether a page precedes this one.
func (page Page) HasPrevious() bool { return page.Current > 1 }

// HasNext reports whether a page follows this one.
func (page Page) HasNext() bool { return page.Current < page.TotalPages }

// Offset is the index of the page's first row within the full
// ordered collection.
func (page Page) Offset() int { return (page.Current - 1) * page.Size }

// TotalPages returns ceil(count/size), 0 for no rows.
func TotalPages(count, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	if count <= 0 {
		return 0
	}
	return (count + size - 1) / size
}

// PageOf returns the 1-based page holding the row at index.
func PageOf(index, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	return index/size + 1
}

// ClampPage bounds current to [1, totalPages], or to 1 when there are
// no pages.
func ClampPage(current, totalPages int) int {
	if totalPages <= 0 {
		return 1
	}
	return min(max(current, 1), totalPages)
}

// Paginate slices rows into the requested page. In Server mode rows
// are already the page: they come back as given, with serverTotalPages
// and the requested page number reported unchanged.
func Paginate(rows []record.Row, state PageState, mode Mode, serverTotalPages int) Page {
	size := state.Size
	if size <= 0 {
		size = DefaultPageSize
	}

	if mode == Server {
		return Page{
			Rows:       rows,
			Current:    max(state.Current, 1),
			Size:       size,
			TotalPages: max(serverTotalPages, 0),
			Total:      len(rows),
		}
	}

	totalPages := TotalPages(len(rows), size)
	current := ClampPage(state.Current, totalPages)
	page := Page{
		Rows:       []record.Row{},
		Current:    current,
		Size:       size,
		TotalPages: totalPages,
		Total:      len(rows),
	}
	if totalPages == 0 {
		return page
	}

	start := (current - 1) * size
	end := min(start+size, len(rows))
	page.Rows = rows[start:end:end]
	return page
}
