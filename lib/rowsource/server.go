// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package rowsource

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/bureau-foundation/tabula/lib/clock"
	"github.com/bureau-foundation/tabula/lib/dataview"
	"github.com/bureau-foundation/tabula/lib/record"
)

// Query asks a source for one page of rows.
type Query struct {
	// Page is 1-based. Values below 1 mean page 1.
	Page int

	// Size is the page size. Zero uses dataview.DefaultPageSize.
	Size int

	Filter dataview.FilterState
	Sort   dataview.SortState
}

// PageResult is one page of rows and the paging metadata for the
// whole result set.
type PageResult struct {
	Rows       []record.Row
	Page       int
	TotalPages int
	Total      int
}

// Fetcher answers queries. Implementations must be safe for concurrent
// use and must honor ctx cancellation.
type Fetcher interface {
	Fetch(ctx context.Context, query Query) (PageResult, error)
}

// ServerConfig configures a Server.
type ServerConfig struct {
	Rows       []record.Row
	SearchKeys []string

	// Latency delays every answer, simulating a remote backend.
	Latency time.Duration

	// Clock times Latency. Default: clock.Real().
	Clock clock.Clock

	Logger *slog.Logger
}

// Server is an in-process Fetcher over a fixed collection. It runs
// the client-mode pipeline on every query, so a server-mode table
// backed by it shows the same pages a client-mode table would.
type Server struct {
	mu         sync.RWMutex
	rows       []record.Row
	searchKeys []string

	latency time.Duration
	clock   clock.Clock
	logger  *slog.Logger
}

// NewServer creates a server over config.Rows.
func NewServer(config ServerConfig) *Server {
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	clk := config.Clock
	if clk == nil {
		clk = clock.Real()
	}
	return &Server{
		rows:       config.Rows,
		searchKeys: config.SearchKeys,
		latency:    config.Latency,
		clock:      clk,
		logger:     logger,
	}
}

// SetRows replaces the collection. Queries in flight finish against
// the collection they started with.
func (server *Server) SetRows(rows []record.Row) {
	server.mu.Lock()
	server.rows = rows
	server.mu.Unlock()
}

// Fetch returns the page of rows matching query. A page past the end
// is clamped to the last page.
func (server *Server) Fetch(ctx context.Context, query Query) (PageResult, error) {
	if server.latency > 0 {
		select {
		case <-ctx.Done():
			return PageResult{}, ctx.Err()
		case <-server.clock.After(server.latency):
		}
	}
	if err := ctx.Err(); err != nil {
		return PageResult{}, err
	}

	server.mu.RLock()
	rows := server.rows
	server.mu.RUnlock()

	size := query.Size
	if size <= 0 {
		size = dataview.DefaultPageSize
	}
	result := dataview.Compute(dataview.Input{
		Rows:       rows,
		SearchKeys: server.searchKeys,
		Filter:     query.Filter,
		Sort:       query.Sort,
		Page:       dataview.PageState{Size: size, Current: max(query.Page, 1)},
		Mode:       dataview.Client,
	})

	server.logger.Debug("query answered",
		"page", result.Page.Current,
		"total_pages", result.Page.TotalPages,
		"matches", result.Page.Total,
	)
	return PageResult{
		Rows:       result.Page.Rows,
		Page:       result.Page.Current,
		TotalPages: result.Page.TotalPages,
		Total:      result.Page.Total,
	}, nil
}
