// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package datatable

import (
	"fmt"
	"maps"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/bureau-foundation/tabula/lib/column"
	"github.com/bureau-foundation/tabula/lib/dataview"
	"github.com/bureau-foundation/tabula/lib/record"
)

// Sort indicators shown next to the sorted column's header.
const (
	IndicatorAscending  = "▲"
	IndicatorDescending = "▼"
)

// EmptyState says why a view has no rows.
type EmptyState int

const (
	// EmptyNone means the page has rows.
	EmptyNone EmptyState = iota

	// EmptyNoRows means the table was given no rows at all.
	EmptyNoRows

	// EmptyNoMatches means rows exist but the search or filters
	// exclude every one of them.
	EmptyNoMatches
)

func (state EmptyState) String() string {
	switch state {
	case EmptyNone:
		return "none"
	case EmptyNoRows:
		return "no-rows"
	case EmptyNoMatches:
		return "no-matches"
	default:
		return fmt.Sprintf("EmptyState(%d)", int(state))
	}
}

// Header is one column header.
type Header struct {
	Title    string
	Sortable bool

	// Sorted is true when this column holds the active sort.
	Sorted    bool
	Direction dataview.Direction
}

// Indicator returns the sort arrow for a sorted header, or "".
func (header Header) Indicator() string {
	if !header.Sorted {
		return ""
	}
	if header.Direction == dataview.Descending {
		return IndicatorDescending
	}
	return IndicatorAscending
}

// ViewRow is one rendered row.
type ViewRow struct {
	ID          string
	Row         record.Row
	Cells       []column.Cell
	Selected    bool
	Highlighted bool
}

// View is everything a renderer needs for one frame.
type View struct {
	Mode    dataview.Mode
	Headers []Header
	Rows    []ViewRow

	// Page is the 1-based page on display.
	Page       int
	TotalPages int
	PageSize   int

	// Total counts matching rows across all pages in client mode,
	// and the rows in hand in server mode.
	Total int

	SearchTerm string
	Filters    map[string]string
	Sort       dataview.SortState

	Selectable    bool
	AllSelected   bool
	SelectedCount int

	Highlighted string
	Empty       EmptyState
}

// View assembles the current view. Cells are presented on demand here
// and not stored between calls.
func (table *Table) View() View {
	page := table.result.Page
	view := View{
		Mode:          table.mode,
		Headers:       table.headers(),
		Rows:          make([]ViewRow, 0, len(page.Rows)),
		Page:          page.Current,
		TotalPages:    page.TotalPages,
		PageSize:      page.Size,
		Total:         page.Total,
		SearchTerm:    table.filter.SearchTerm,
		Filters:       maps.Clone(table.filter.Active()),
		Sort:          table.sort,
		Selectable:    table.config.Selectable,
		SelectedCount: table.selection.Len(),
		Highlighted:   table.highlighter.State().TargetID,
	}

	pageIDs := record.IDs(page.Rows)
	for index, row := range page.Rows {
		id := pageIDs[index]
		cells := make([]column.Cell, len(table.config.Columns))
		for columnIndex, spec := range table.config.Columns {
			cells[columnIndex] = table.registry.Display(spec, row)
		}
		view.Rows = append(view.Rows, ViewRow{
			ID:          id,
			Row:         row,
			Cells:       cells,
			Selected:    table.config.Selectable && table.selection.IsSelected(id),
			Highlighted: table.highlighter.IsHighlighted(id),
		})
	}
	if table.config.Selectable {
		view.AllSelected = table.selection.IsAllSelected(pageIDs)
	}
	view.Empty = table.emptyState()
	return view
}

func (table *Table) headers() []Header {
	headers := make([]Header, len(table.config.Columns))
	for index, spec := range table.config.Columns {
		key, sortable := spec.SortPath()
		header := Header{Title: spec.Header, Sortable: sortable}
		if sortable && !table.sort.IsZero() && key == table.sort.Key {
			header.Sorted = true
			header.Direction = table.sort.Direction
		}
		headers[index] = header
	}
	return headers
}

func (table *Table) emptyState() EmptyState {
	switch {
	case len(table.result.Page.Rows) > 0:
		return EmptyNone
	case len(table.rows) == 0 && (table.mode == dataview.Client || table.filter.IsZero()):
		return EmptyNoRows
	default:
		return EmptyNoMatches
	}
}

// Caption describes the visible range, such as
// "Showing 11-20 of 1,204 · Page 2 of 121". A nil printer formats for
// American English.
func (view View) Caption(printer *message.Printer) string {
	if printer == nil {
		printer = message.NewPrinter(language.AmericanEnglish)
	}
	if len(view.Rows) == 0 {
		return printer.Sprintf("Page %d of %d", view.Page, view.TotalPages)
	}
	if view.Mode == dataview.Server {
		return printer.Sprintf("Showing %d rows · Page %d of %d", len(view.Rows), view.Page, view.TotalPages)
	}
	first := (view.Page-1)*view.PageSize + 1
	last := first + len(view.Rows) - 1
	return printer.Sprintf("Showing %d-%d of %d · Page %d of %d", first, last, view.Total, view.Page, view.TotalPages)
}

func typeName(value any) string {
	if value == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", value)
}
