// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/message"

	"github.com/bureau-foundation/tabula/internal/cli"
	"github.com/bureau-foundation/tabula/lib/clock"
	"github.com/bureau-foundation/tabula/lib/column"
	"github.com/bureau-foundation/tabula/lib/config"
	"github.com/bureau-foundation/tabula/lib/datatable"
	"github.com/bureau-foundation/tabula/lib/highlight"
	"github.com/bureau-foundation/tabula/lib/record"
	"github.com/bureau-foundation/tabula/lib/rowsource"
	"github.com/bureau-foundation/tabula/lib/tableui"
	"github.com/bureau-foundation/tabula/lib/viewdef"
)

// input is the rows and view a session shows.
type input struct {
	rows       []record.Row
	definition *viewdef.Definition
}

func loadInput(opts options, cfg *config.Config) (input, error) {
	dataPath := opts.dataPath
	if dataPath == "" {
		dataPath = cfg.Data.File
	}
	if dataPath == "" {
		return input{}, cli.Validation("no row file given").
			WithHint("Pass --data FILE or set data.file in the config.")
	}

	rows, err := rowsource.ReadFile(dataPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return input{}, cli.NotFound("row file: %w", err)
		}
		return input{}, cli.Validation("cannot load rows: %w", err)
	}

	viewPath := opts.viewPath
	if viewPath == "" {
		viewPath = cfg.Data.View
	}
	if viewPath == "" {
		return input{rows: rows, definition: viewdef.Infer(rowsource.DatasetName(dataPath), rows)}, nil
	}

	definition, err := viewdef.ReadFile(viewPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return input{}, cli.NotFound("view file: %w", err)
		}
		return input{}, cli.Validation("cannot load view: %w", err)
	}
	if issues := viewdef.Validate(definition); len(issues) > 0 {
		return input{}, cli.Validation("view %s is invalid:\n  %s", viewPath, strings.Join(issues, "\n  "))
	}
	return input{rows: rows, definition: definition}, nil
}

// session carries what building a table needs besides the view.
type session struct {
	cfg      *config.Config
	opts     options
	logger   *slog.Logger
	clock    clock.Clock
	platform highlight.Platform
	dispatch func(func())

	// highlightID is the row to highlight, from --highlight or the
	// link.
	highlightID string
}

// newTableConfig builds the table configuration from the view,
// config and command line. Callbacks are left for the caller.
func (s session) newTableConfig(in input) (datatable.Config, error) {
	tableConfig, err := in.definition.TableConfig()
	if err != nil {
		return datatable.Config{}, cli.Validation("view %s: %w", in.definition.Name, err)
	}
	if s.opts.pageSize > 0 {
		tableConfig.ItemsPerPage = s.opts.pageSize
	}
	for index := range tableConfig.Columns {
		if tableConfig.Columns[index].Fallback == "" {
			tableConfig.Columns[index].Fallback = s.cfg.Display.Fallback
		}
	}
	tableConfig.HighlightID = s.highlightID
	return tableConfig, nil
}

func (s session) deps() (datatable.Deps, error) {
	locale, err := s.cfg.LocaleTag()
	if err != nil {
		return datatable.Deps{}, cli.Validation("%w", err)
	}
	duration, err := s.cfg.HighlightDuration()
	if err != nil {
		return datatable.Deps{}, cli.Validation("%w", err)
	}
	return datatable.Deps{
		Logger:      s.logger,
		Clock:       s.clock,
		Platform:    s.platform,
		Dispatch:    s.dispatch,
		Preferences: s.cfg,
		Registry: column.NewRegistry(column.Options{
			Locale:         locale,
			CurrencySymbol: s.cfg.Display.CurrencySymbol,
			DateLayout:     s.cfg.Display.DateLayout,
			RelativeDates:  s.cfg.Display.RelativeDates,
			Clock:          s.clock,
		}),
		HighlightQueryParam: s.cfg.Highlight.QueryParam,
		HighlightDuration:   duration,
	}, nil
}

// restore applies the initial search, filters and sort. The sort from
// the command line wins over the view's.
func restore(table *datatable.Table, definition *viewdef.Definition, state viewState) {
	if state.search != "" {
		table.SetSearchTerm(state.search)
	}
	for _, filter := range state.filters {
		table.SetFieldFilter(filter[0], filter[1])
	}
	switch {
	case state.hasSort:
		table.SetSort(state.sort)
	case definition.Sort != nil:
		table.SetSort(definition.InitialSort())
	}
}

func newServer(in input, tableConfig datatable.Config, s session) *rowsource.Server {
	return rowsource.NewServer(rowsource.ServerConfig{
		Rows:       in.rows,
		SearchKeys: tableConfig.SearchKeys,
		Latency:    s.opts.latency,
		Clock:      s.clock,
		Logger:     s.logger.With("component", "server"),
	})
}

// highlightLink returns the deep link to open: --link as given, or
// one built from --highlight.
func highlightLink(opts options, cfg *config.Config, viewName string) string {
	if opts.link != "" || opts.highlightID == "" {
		return opts.link
	}
	query := url.Values{cfg.Highlight.QueryParam: {opts.highlightID}}
	return (&url.URL{Scheme: "tabula", Host: viewName, RawQuery: query.Encode()}).String()
}

// runPrint renders one page to stdout. Highlighting runs headless:
// frames fire inline and nothing scrolls.
func runPrint(stdout io.Writer, opts options, cfg *config.Config, in input, state viewState) error {
	level, _ := cfg.LogLevel()
	logger := cli.NewLogger(os.Stderr, level)
	colorMode, err := tableui.ParseColorMode(opts.color)
	if err != nil {
		return cli.Validation("--color: %w", err)
	}

	link := highlightLink(opts, cfg, in.definition.Name)
	highlightID := ""
	if link != "" {
		parsed, err := url.Parse(link)
		if err != nil {
			return cli.Validation("--link: %w", err)
		}
		highlightID = parsed.Query().Get(cfg.Highlight.QueryParam)
	}

	s := session{
		cfg:         cfg,
		opts:        opts,
		logger:      logger,
		clock:       clock.Real(),
		platform:    highlight.NopPlatform{},
		highlightID: highlightID,
	}
	tableConfig, err := s.newTableConfig(in)
	if err != nil {
		return err
	}
	deps, err := s.deps()
	if err != nil {
		return err
	}

	var table *datatable.Table
	if opts.serverSide {
		tableConfig.ServerSide = true
		tableConfig.ServerCurrentPage = opts.page
		table = datatable.New(tableConfig, deps)
		defer table.Close()
		restore(table, in.definition, state)

		result, err := newServer(in, tableConfig, s).Fetch(context.Background(), rowsource.Query{
			Page:   table.CurrentPage(),
			Size:   table.PageSize(),
			Filter: table.Filter(),
			Sort:   table.Sort(),
		})
		if err != nil {
			return cli.Internal("fetching page: %w", err)
		}
		table.SetServerPaging(result.TotalPages, result.Page)
		table.SetRows(result.Rows)
	} else {
		table = datatable.New(tableConfig, deps)
		defer table.Close()
		restore(table, in.definition, state)
		table.SetRows(in.rows)
		if opts.page > 0 && !table.HighlightState().Active() {
			table.SetPage(opts.page)
		}
	}

	locale, _ := cfg.LocaleTag()
	err = tableui.Print(stdout, table, tableui.PrintOptions{
		Title:         in.definition.Name,
		Width:         opts.width,
		Color:         colorMode,
		Printer:       message.NewPrinter(locale),
		EmptyText:     cfg.Table.EmptyText,
		NoMatchesText: cfg.Table.NoMatchesText,
	})
	if err != nil {
		return cli.Internal("printing: %w", err)
	}

	if highlightID != "" && table.View().Highlighted != highlightID {
		logger.Warn("highlight target not in view", "id", highlightID)
		return &cli.ExitError{Code: exitHighlightNotFound}
	}
	return nil
}

// runViewer runs the interactive viewer until the user quits.
//
// Background logging (fetch errors, degraded columns) is routed
// through a tableui.LogHandler into the status bar, since writing to
// stderr would corrupt the alt-screen display. --log-output also
// captures every record as JSON.
func runViewer(opts options, cfg *config.Config, in input, state viewState) error {
	tuiHandler := tableui.NewLogHandler(slog.LevelWarn)
	var handler slog.Handler = tuiHandler
	if opts.logOutput != "" {
		fileHandler, closeFile, err := cli.OpenFileLogHandler(opts.logOutput)
		if err != nil {
			return cli.Validation("cannot open log file %s: %w", opts.logOutput, err)
		}
		defer closeFile()
		handler = cli.FanoutHandler{tuiHandler, fileHandler}
	}
	logger := slog.New(handler)

	platform, err := tableui.NewPlatform(highlightLink(opts, cfg, in.definition.Name))
	if err != nil {
		return cli.Validation("--link: %w", err)
	}
	dispatcher := tableui.NewDispatcher()
	defer dispatcher.Close()

	s := session{
		cfg:         cfg,
		opts:        opts,
		logger:      logger,
		clock:       clock.Real(),
		platform:    platform,
		dispatch:    dispatcher.Dispatch,
		highlightID: platform.QueryParam(cfg.Highlight.QueryParam),
	}
	tableConfig, err := s.newTableConfig(in)
	if err != nil {
		return err
	}
	deps, err := s.deps()
	if err != nil {
		return err
	}

	title := in.definition.Name
	var table *datatable.Table
	if opts.serverSide {
		binding := rowsource.NewBinding(rowsource.BindingConfig{
			Fetcher:  newServer(in, tableConfig, s),
			Dispatch: dispatcher.Dispatch,
			OnError: func(err error) {
				logger.Error("fetch failed", "error", err)
			},
			Logger: logger.With("component", "binding"),
		})
		tableConfig.ServerCurrentPage = opts.page
		binding.Wire(&tableConfig)
		table = datatable.New(tableConfig, deps)
		restore(table, in.definition, state)
		binding.Attach(table)
		defer binding.Close()
		title += " (server)"
	} else {
		table = datatable.New(tableConfig, deps)
		restore(table, in.definition, state)
		table.SetRows(in.rows)
		if opts.page > 0 && !table.HighlightState().Active() {
			table.SetPage(opts.page)
		}
	}
	defer table.Close()

	locale, _ := cfg.LocaleTag()
	model := tableui.NewModel(table, tableui.Options{
		Title:         title,
		Platform:      platform,
		Dispatcher:    dispatcher,
		Printer:       message.NewPrinter(locale),
		EmptyText:     cfg.Table.EmptyText,
		NoMatchesText: cfg.Table.NoMatchesText,
		Logger:        logger.With("component", "viewer"),
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	tuiHandler.SetProgram(program)

	_, err = program.Run()
	return err
}
