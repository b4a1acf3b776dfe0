// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package rowsource

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/bureau-foundation/tabula/lib/datatable"
	"github.com/bureau-foundation/tabula/lib/dataview"
)

// BindingConfig configures a Binding.
type BindingConfig struct {
	Fetcher Fetcher

	// Dispatch runs a function on the goroutine that owns the table.
	// Required: the table is not safe for concurrent use.
	Dispatch func(func())

	// OnError is called through Dispatch when a fetch fails. Fetches
	// canceled because a newer query superseded them are not errors.
	OnError func(error)

	Logger *slog.Logger
}

// Binding drives a server-mode table from a Fetcher. Every query
// change the table reports starts a fetch; only the answer to the
// newest query is delivered.
type Binding struct {
	fetcher  Fetcher
	dispatch func(func())
	onError  func(error)
	logger   *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu          sync.Mutex
	table       *datatable.Table
	query       Query
	generation  uint64
	cancelFetch context.CancelFunc
	closed      bool

	inflight sync.WaitGroup
	done     chan struct{}
}

// NewBinding creates a binding. It fetches nothing until Attach.
func NewBinding(config BindingConfig) *Binding {
	if config.Fetcher == nil {
		panic("rowsource: BindingConfig.Fetcher is required")
	}
	if config.Dispatch == nil {
		panic("rowsource: BindingConfig.Dispatch is required")
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Binding{
		fetcher:  config.Fetcher,
		dispatch: config.Dispatch,
		onError:  config.OnError,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
		query:    Query{Page: 1},
		done:     make(chan struct{}),
	}
}

// Wire puts config in server mode and installs callbacks that turn
// page, search, filter and sort changes into queries. Callbacks
// already present in config still run, after the binding's.
func (binding *Binding) Wire(config *datatable.Config) {
	config.ServerSide = true
	if config.ServerCurrentPage > 0 {
		binding.query.Page = config.ServerCurrentPage
	}

	onPage := config.OnServerPageChange
	config.OnServerPageChange = func(page int) {
		binding.update(func(query *Query) { query.Page = page })
		if onPage != nil {
			onPage(page)
		}
	}

	onSearch := config.OnSearchChange
	config.OnSearchChange = func(term string) {
		binding.update(func(query *Query) {
			query.Filter.SearchTerm = term
			query.Page = 1
		})
		if onSearch != nil {
			onSearch(term)
		}
	}

	onFilter := config.OnFilterChange
	config.OnFilterChange = func(key, value string) {
		binding.update(func(query *Query) {
			query.Filter = query.Filter.With(key, value)
			query.Page = 1
		})
		if onFilter != nil {
			onFilter(key, value)
		}
	}

	onClear := config.OnClearFilters
	config.OnClearFilters = func() {
		binding.update(func(query *Query) {
			query.Filter = dataview.FilterState{}
			query.Page = 1
		})
		if onClear != nil {
			onClear()
		}
	}

	onSort := config.OnSortChange
	config.OnSortChange = func(state dataview.SortState) {
		binding.update(func(query *Query) {
			query.Sort = state
			query.Page = 1
		})
		if onSort != nil {
			onSort(state)
		}
	}
}

// Attach connects the table built from the wired config and starts
// the first fetch. The query adopts the table's page, search, filters
// and sort as they stand, so state restored before Attach is sent
// with the first fetch.
func (binding *Binding) Attach(table *datatable.Table) {
	binding.mu.Lock()
	binding.table = table
	binding.query.Size = table.PageSize()
	binding.query.Page = table.CurrentPage()
	binding.query.Filter = table.Filter()
	binding.query.Sort = table.Sort()
	binding.mu.Unlock()
	binding.Refresh()
}

// Query returns the current query.
func (binding *Binding) Query() Query {
	binding.mu.Lock()
	defer binding.mu.Unlock()
	return binding.query
}

// Refresh refetches the current query.
func (binding *Binding) Refresh() {
	binding.update(func(*Query) {})
}

// Close cancels any fetch in flight. Done is closed once every fetch
// goroutine has returned.
func (binding *Binding) Close() {
	binding.mu.Lock()
	if binding.closed {
		binding.mu.Unlock()
		return
	}
	binding.closed = true
	binding.generation++
	binding.mu.Unlock()

	binding.cancel()
	go func() {
		binding.inflight.Wait()
		close(binding.done)
	}()
}

// Done is closed after Close once no fetch is running.
func (binding *Binding) Done() <-chan struct{} {
	return binding.done
}

func (binding *Binding) update(change func(*Query)) {
	binding.mu.Lock()
	if binding.closed {
		binding.mu.Unlock()
		return
	}
	change(&binding.query)
	if binding.table == nil {
		binding.mu.Unlock()
		return
	}
	query := binding.query
	binding.generation++
	generation := binding.generation
	if binding.cancelFetch != nil {
		binding.cancelFetch()
	}
	ctx, cancel := context.WithCancel(binding.ctx)
	binding.cancelFetch = cancel
	binding.inflight.Add(1)
	binding.mu.Unlock()

	go binding.fetch(ctx, cancel, generation, query)
}

func (binding *Binding) fetch(ctx context.Context, cancel context.CancelFunc, generation uint64, query Query) {
	defer binding.inflight.Done()
	defer cancel()

	logger := binding.logger.With("generation", generation, "page", query.Page)
	result, err := binding.fetcher.Fetch(ctx, query)
	if !binding.current(generation) {
		logger.Debug("dropping superseded fetch")
		return
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		logger.Warn("fetch failed", "error", err)
		binding.dispatch(func() {
			if binding.current(generation) && binding.onError != nil {
				binding.onError(err)
			}
		})
		return
	}

	binding.dispatch(func() {
		if !binding.current(generation) {
			logger.Debug("dropping superseded fetch")
			return
		}
		binding.mu.Lock()
		table := binding.table
		binding.mu.Unlock()
		if table == nil {
			return
		}
		table.SetServerPaging(result.TotalPages, result.Page)
		table.SetRows(result.Rows)
	})
}

func (binding *Binding) current(generation uint64) bool {
	binding.mu.Lock()
	defer binding.mu.Unlock()
	return !binding.closed && binding.generation == generation
}
