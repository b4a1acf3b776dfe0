// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package datatable

import (
	"io"
	"log/slog"
	"time"

	"github.com/bureau-foundation/tabula/lib/clock"
	"github.com/bureau-foundation/tabula/lib/column"
	"github.com/bureau-foundation/tabula/lib/dataview"
	"github.com/bureau-foundation/tabula/lib/highlight"
	"github.com/bureau-foundation/tabula/lib/record"
	"github.com/bureau-foundation/tabula/lib/selection"
)

// FilterOption is one choice offered for a field filter.
type FilterOption struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// DisplayLabel returns Label, or Value when Label is empty.
func (option FilterOption) DisplayLabel() string {
	if option.Label != "" {
		return option.Label
	}
	return option.Value
}

// FilterDefinition describes a field filter the renderer offers.
type FilterDefinition struct {
	Key     string         `json:"key" yaml:"key"`
	Label   string         `json:"label,omitempty" yaml:"label,omitempty"`
	Options []FilterOption `json:"options" yaml:"options"`
}

// Preferences supplies user defaults.
type Preferences interface {
	// DefaultPageSize is the page size used when the table config
	// does not set one. Non-positive values are ignored.
	DefaultPageSize() int
}

// Config is the table's configuration surface.
type Config struct {
	Columns       []column.Spec
	SearchKeys    []string
	FilterOptions []FilterDefinition

	// ItemsPerPage is the page size. Zero uses Preferences.
	ItemsPerPage int

	// ServerSide delegates filtering and paging to the owner.
	ServerSide        bool
	ServerTotalPages  int
	ServerCurrentPage int

	// HighlightID is highlighted once its row is in view.
	HighlightID string

	// Selectable enables row selection. With ControlledSelection the
	// owner holds the selection and pushes it through SyncSelection;
	// SelectedIDs is its initial value.
	Selectable          bool
	ControlledSelection bool
	SelectedIDs         []string

	OnSelectionChange  func(ids []string)
	OnServerPageChange func(page int)
	OnSearchChange     func(term string)
	OnRowClick         func(row record.Row)
	OnFilterClick      func()
	OnClearFilters     func()
	OnFilterChange     func(key, value string)
	OnSortChange       func(state dataview.SortState)
}

// Deps are the table's collaborators. Every field is optional.
type Deps struct {
	Logger      *slog.Logger
	Clock       clock.Clock
	Platform    highlight.Platform
	Dispatch    func(func())
	Preferences Preferences
	Registry    *column.Registry

	// HighlightQueryParam overrides highlight.DefaultQueryParam.
	HighlightQueryParam string

	// HighlightDuration overrides highlight.DefaultDuration.
	HighlightDuration time.Duration

	// OnHighlightChange is called when the active highlight changes,
	// including on expiry.
	OnHighlightChange func(highlight.State)
}

// Table is one table instance.
type Table struct {
	config   Config
	logger   *slog.Logger
	registry *column.Registry

	mode     dataview.Mode
	pageSize int

	rows        []record.Row
	filter      dataview.FilterState
	sort        dataview.SortState
	page        int
	serverPage  int
	serverPages int

	selection        *selection.Controller
	highlighter      *highlight.Coordinator
	pendingHighlight string

	result dataview.Result

	// callbacks queued during a mutation, flushed once state settles.
	queued []func()
}

// New builds a table and computes its first view.
func New(config Config, deps Deps) *Table {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	registry := deps.Registry
	if registry == nil {
		registry = column.NewRegistry(column.Options{Clock: deps.Clock})
	}

	table := &Table{
		config:           config,
		logger:           logger,
		registry:         registry,
		page:             1,
		serverPage:       max(config.ServerCurrentPage, 1),
		serverPages:      max(config.ServerTotalPages, 0),
		pendingHighlight: config.HighlightID,
	}
	if config.ServerSide {
		table.mode = dataview.Server
	}
	table.pageSize = resolvePageSize(config.ItemsPerPage, deps.Preferences, logger)

	for _, spec := range config.Columns {
		if err := spec.Validate(); err != nil {
			logger.Warn("column degraded", "error", err)
		}
	}

	if config.ControlledSelection {
		table.selection = selection.NewDelegated(config.SelectedIDs, table.selectionChanged)
	} else {
		table.selection = selection.NewOwned(table.selectionChanged)
	}

	table.highlighter = highlight.New(highlight.Config{
		Platform:   deps.Platform,
		Clock:      deps.Clock,
		QueryParam: deps.HighlightQueryParam,
		Duration:   deps.HighlightDuration,
		Dispatch:   deps.Dispatch,
		OnChange:   deps.OnHighlightChange,
		Logger:     logger.With("component", "highlight"),
	})

	table.refresh()
	return table
}

func resolvePageSize(configured int, preferences Preferences, logger *slog.Logger) int {
	if configured > 0 {
		return configured
	}
	if configured < 0 {
		logger.Warn("invalid page size, using default", "items_per_page", configured)
	}
	if preferences != nil {
		if preferred := preferences.DefaultPageSize(); preferred > 0 {
			return preferred
		}
	}
	return dataview.DefaultPageSize
}

// Mode returns the paging mode.
func (table *Table) Mode() dataview.Mode { return table.mode }

// PageSize returns the effective page size.
func (table *Table) PageSize() int { return table.pageSize }

// Columns returns the column definitions.
func (table *Table) Columns() []column.Spec { return table.config.Columns }

// FilterOptions returns the filter definitions.
func (table *Table) FilterOptions() []FilterDefinition { return table.config.FilterOptions }

// Filter returns the current filter state.
func (table *Table) Filter() dataview.FilterState { return table.filter }

// Sort returns the current sort state.
func (table *Table) Sort() dataview.SortState { return table.sort }

// Ordered returns the filtered, sorted rows before pagination.
func (table *Table) Ordered() []record.Row { return table.result.Ordered }

// Selection returns the selected ids.
func (table *Table) Selection() []string { return table.selection.IDs() }

// HighlightState returns the active highlight.
func (table *Table) HighlightState() highlight.State { return table.highlighter.State() }

// CurrentPage returns the 1-based page on display.
func (table *Table) CurrentPage() int { return table.result.Page.Current }

// TotalPages returns the page count on display.
func (table *Table) TotalPages() int { return table.result.Page.TotalPages }

// SetRows replaces the raw collection. The slice is not copied and
// must not be modified by the caller afterwards.
func (table *Table) SetRows(rows []record.Row) {
	table.rows = rows
	table.refresh()
}

// Load replaces the raw collection with an arbitrary decoded value.
// Values that are not collections are treated as empty.
func (table *Table) Load(value any) {
	rows, ok := record.FromValue(value)
	if !ok {
		table.logger.Warn("malformed row collection, treating as empty", "type", typeName(value))
	}
	table.SetRows(rows)
}

// SetServerPaging updates the page metadata reported by the server.
func (table *Table) SetServerPaging(totalPages, currentPage int) {
	table.serverPages = max(totalPages, 0)
	table.serverPage = max(currentPage, 1)
	table.refresh()
}

// SetSearchTerm changes the search term. Client mode returns to page 1.
func (table *Table) SetSearchTerm(term string) {
	if term == table.filter.SearchTerm {
		return
	}
	table.filter.SearchTerm = term
	table.resetPage()
	table.refresh()
	table.queue(func() {
		if table.config.OnSearchChange != nil {
			table.config.OnSearchChange(term)
		}
	})
	table.flush()
}

// SetFieldFilter sets one field filter. An empty or "all" value
// removes the constraint. Client mode returns to page 1.
func (table *Table) SetFieldFilter(key, value string) {
	table.filter = table.filter.With(key, value)
	table.resetPage()
	table.refresh()
	table.queue(func() {
		if table.config.OnFilterChange != nil {
			table.config.OnFilterChange(key, value)
		}
	})
	table.flush()
}

// ClearFilters drops the search term and every field filter. The
// change is reported once: OnClearFilters covers the search term too,
// and OnSearchChange("") is only reported when OnClearFilters is unset.
func (table *Table) ClearFilters() {
	hadSearch := table.filter.SearchTerm != ""
	table.filter = dataview.FilterState{}
	table.resetPage()
	table.refresh()
	table.queue(func() {
		switch {
		case table.config.OnClearFilters != nil:
			table.config.OnClearFilters()
		case hadSearch && table.config.OnSearchChange != nil:
			table.config.OnSearchChange("")
		}
	})
	table.flush()
}

// ToggleSort handles a click on the header of column index. It
// reports false when the column does not exist or cannot sort.
func (table *Table) ToggleSort(index int) bool {
	if index < 0 || index >= len(table.config.Columns) {
		table.logger.Debug("sort requested for unknown column", "index", index)
		return false
	}
	key, ok := table.config.Columns[index].SortPath()
	if !ok {
		table.logger.Debug("sort requested for unsortable column", "header", table.config.Columns[index].Header)
		return false
	}
	table.sort = table.sort.Toggle(key)
	table.resetPage()
	table.refresh()
	state := table.sort
	table.queue(func() {
		if table.config.OnSortChange != nil {
			table.config.OnSortChange(state)
		}
	})
	table.flush()
	return true
}

// SetSort applies a sort state directly, as when restoring a view.
func (table *Table) SetSort(state dataview.SortState) {
	if state.Direction == "" {
		state.Direction = dataview.Ascending
	}
	table.sort = state
	table.resetPage()
	table.refresh()
}

// SetPage requests a page. Client mode switches locally, clamped to
// the available pages. Server mode reports the request through
// OnServerPageChange and leaves local state alone.
func (table *Table) SetPage(page int) {
	if table.mode == dataview.Server {
		if page < 1 || (table.serverPages > 0 && page > table.serverPages) || page == table.serverPage {
			return
		}
		table.queue(func() {
			if table.config.OnServerPageChange != nil {
				table.config.OnServerPageChange(page)
			}
		})
		table.flush()
		return
	}

	table.page = dataview.ClampPage(page, table.result.Page.TotalPages)
	table.refresh()
}

// NextPage moves forward one page if there is one.
func (table *Table) NextPage() {
	if table.result.Page.HasNext() {
		table.SetPage(table.result.Page.Current + 1)
	}
}

// PreviousPage moves back one page if there is one.
func (table *Table) PreviousPage() {
	if table.result.Page.HasPrevious() {
		table.SetPage(table.result.Page.Current - 1)
	}
}

// SelectAll selects exactly the rows on the current page, or clears
// the selection.
func (table *Table) SelectAll(checked bool) {
	if !table.config.Selectable {
		return
	}
	table.selection.SelectAll(checked, record.IDs(table.result.Page.Rows))
	table.flush()
}

// SelectOne toggles the selection of a row on the current page. Ids
// not on the page are ignored.
func (table *Table) SelectOne(id string) {
	if !table.config.Selectable || id == "" {
		return
	}
	if record.IndexOf(table.result.Page.Rows, id) < 0 {
		table.logger.Debug("select on row not on page", "id", id)
		return
	}
	table.selection.SelectOne(id)
	table.flush()
}

// SyncSelection pushes the owner's selection into a controlled table.
func (table *Table) SyncSelection(ids []string) {
	table.selection.Sync(ids)
}

// Highlight requests a highlight of the row with id. A row that is
// not in view yet is highlighted once it arrives.
func (table *Table) Highlight(id string) {
	table.pendingHighlight = id
	table.retryHighlight()
}

// ClickRow reports a click on the row with id.
func (table *Table) ClickRow(id string) {
	index := record.IndexOf(table.result.Page.Rows, id)
	if index < 0 {
		table.logger.Debug("click on row not on page", "id", id)
		return
	}
	if table.config.OnRowClick != nil {
		table.config.OnRowClick(table.result.Page.Rows[index])
	}
}

// OpenFilters reports a request to show the filter controls.
func (table *Table) OpenFilters() {
	if table.config.OnFilterClick != nil {
		table.config.OnFilterClick()
	}
}

// Close releases the highlight timer and any pending scroll.
func (table *Table) Close() {
	table.highlighter.Close()
}

func (table *Table) resetPage() {
	if table.mode == dataview.Client {
		table.page = 1
	}
}

// refresh reruns the pipeline and retries a pending highlight.
func (table *Table) refresh() {
	table.compute()
	table.retryHighlight()
}

func (table *Table) compute() {
	current := table.page
	if table.mode == dataview.Server {
		current = table.serverPage
	}
	table.result = dataview.Compute(dataview.Input{
		Rows:             table.rows,
		SearchKeys:       table.config.SearchKeys,
		Filter:           table.filter,
		Sort:             table.sort,
		Page:             dataview.PageState{Size: table.pageSize, Current: current},
		Mode:             table.mode,
		ServerTotalPages: table.serverPages,
	})
	if table.mode == dataview.Client {
		table.page = table.result.Page.Current
	}
}

func (table *Table) retryHighlight() {
	id := table.pendingHighlight
	if id == "" {
		return
	}
	armed := table.highlighter.Request(id, table.result.Ordered, tablePager{table})
	if armed || table.highlighter.LastProcessed() == id {
		table.pendingHighlight = ""
	}
}

func (table *Table) selectionChanged(ids []string) {
	table.queue(func() {
		if table.config.OnSelectionChange != nil {
			table.config.OnSelectionChange(ids)
		}
	})
}

func (table *Table) queue(callback func()) {
	table.queued = append(table.queued, callback)
}

// flush runs queued callbacks. Callbacks queued by a callback run in
// the same flush.
func (table *Table) flush() {
	for len(table.queued) > 0 {
		callback := table.queued[0]
		table.queued = table.queued[1:]
		callback()
	}
}

// tablePager exposes the table's client paging to the highlight
// coordinator.
type tablePager struct{ table *Table }

func (pager tablePager) ClientPaging() bool { return pager.table.mode == dataview.Client }
func (pager tablePager) PageSize() int      { return pager.table.pageSize }
func (pager tablePager) CurrentPage() int   { return pager.table.result.Page.Current }

func (pager tablePager) SetPage(page int) {
	pager.table.page = page
	pager.table.compute()
}
