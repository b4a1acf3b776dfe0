// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// tabula browses a collection of rows as a paged, searchable,
// sortable table in the terminal.
//
// Rows come from a JSON, JSONL or CBOR file (optionally zstd or lz4
// compressed). Columns, search keys and filters come from a view
// definition in JSONC or YAML; without one, tabula infers a column per
// top-level field.
//
// Two modes of operation:
//
// Interactive (default): a full-screen viewer with a search bar,
// filter dropdowns, column sorting, row selection and a row detail
// pane. A deep link (--link 'tabula://quotes?highlight=q-17') opens on
// the page holding the row and highlights it briefly.
//
// Print (--print): renders one page to stdout and exits, for scripts
// and quick checks. With a highlight target that is not in view,
// tabula prints the page and exits 3.
//
// --server-side runs every search, filter, sort and page change
// through an in-process paged server instead of the table's own
// pipeline, the way a table backed by a remote API behaves.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/tabula/internal/cli"
	"github.com/bureau-foundation/tabula/lib/config"
	"github.com/bureau-foundation/tabula/lib/dataview"
	"github.com/bureau-foundation/tabula/lib/version"
)

// exitHighlightNotFound is the --print exit code when the highlight
// target is not among the filtered rows.
const exitHighlightNotFound = 3

func main() {
	os.Exit(cli.Report(os.Stderr, run(os.Args[1:], os.Stdout)))
}

// options holds the parsed command line.
type options struct {
	configPath string
	dataPath   string
	viewPath   string

	pageSize   int
	page       int
	search     string
	filters    []string
	sort       string
	serverSide bool
	latency    time.Duration

	link        string
	highlightID string

	print     bool
	color     string
	width     int
	logOutput string
}

func newFlagSet(opts *options) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet("tabula", pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.StringVar(&opts.configPath, "config", "", "config file (default: $"+config.EnvVar+", then built-in defaults)")
	flagSet.StringVarP(&opts.dataPath, "data", "d", "", "row file (.json, .jsonl, .cbor, optionally .zst or .lz4)")
	flagSet.StringVar(&opts.viewPath, "view", "", "view definition (.jsonc, .json, .yaml); inferred from the rows when absent")
	flagSet.IntVar(&opts.pageSize, "page-size", 0, "rows per page (overrides the view and config)")
	flagSet.IntVar(&opts.page, "page", 0, "1-based page to open on")
	flagSet.StringVarP(&opts.search, "search", "s", "", "initial search term")
	flagSet.StringArrayVarP(&opts.filters, "filter", "f", nil, "field filter as key=value (repeatable)")
	flagSet.StringVar(&opts.sort, "sort", "", "initial sort as key or key:desc")
	flagSet.BoolVar(&opts.serverSide, "server-side", false, "page, search, filter and sort through an in-process server")
	flagSet.DurationVar(&opts.latency, "latency", 0, "simulated server latency with --server-side")
	flagSet.StringVar(&opts.link, "link", "", "deep link such as tabula://quotes?highlight=q-17")
	flagSet.StringVar(&opts.highlightID, "highlight", "", "id of the row to highlight (shorthand for a --link)")
	flagSet.BoolVarP(&opts.print, "print", "p", false, "print one page and exit")
	flagSet.StringVar(&opts.color, "color", "auto", "color in --print output: auto, never, always")
	flagSet.IntVar(&opts.width, "width", 0, "line width for --print (default: terminal width, or 100)")
	flagSet.StringVar(&opts.logOutput, "log-output", "", "also write JSON log records to this file")
	flagSet.BoolP("help", "h", false, "show help")
	return flagSet
}

func run(args []string, stdout io.Writer) error {
	// Handle --version before flag parsing to match the other binaries.
	if len(args) > 0 && args[0] == "--version" {
		version.Print("tabula")
		return nil
	}

	var opts options
	flagSet := newFlagSet(&opts)
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(flagSet)
			return nil
		}
		return cli.Validation("%v", err).WithHint("Run 'tabula --help' for usage.")
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if extra := flagSet.Args(); len(extra) > 0 {
		return cli.Validation("unexpected argument: %s", extra[0])
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	state, err := parseViewState(opts)
	if err != nil {
		return err
	}
	input, err := loadInput(opts, cfg)
	if err != nil {
		return err
	}

	if opts.print {
		return runPrint(stdout, opts, cfg, input, state)
	}
	return runViewer(opts, cfg, input, state)
}

// loadConfig loads --config, else $TABULA_CONFIG, else the defaults.
func loadConfig(path string) (*config.Config, error) {
	var cfg *config.Config
	var err error
	switch {
	case path != "":
		cfg, err = config.LoadFile(path)
	case os.Getenv(config.EnvVar) != "":
		cfg, err = config.Load()
	default:
		cfg = config.Default()
	}
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, cli.NotFound("config file: %w", err)
		}
		return nil, cli.Validation("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, cli.Validation("invalid config: %w", err)
	}
	return cfg, nil
}

// viewState is the search, filters, sort and page to restore before
// the first render.
type viewState struct {
	search  string
	filters [][2]string
	sort    dataview.SortState
	hasSort bool
	page    int
}

func parseViewState(opts options) (viewState, error) {
	state := viewState{search: opts.search, page: opts.page}
	if opts.page < 0 {
		return state, cli.Validation("--page must be positive, got %d", opts.page)
	}
	if opts.pageSize < 0 {
		return state, cli.Validation("--page-size must be positive, got %d", opts.pageSize)
	}
	for _, filter := range opts.filters {
		key, value, ok := strings.Cut(filter, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return state, cli.Validation("--filter %q: want key=value", filter)
		}
		state.filters = append(state.filters, [2]string{strings.TrimSpace(key), value})
	}
	if opts.sort != "" {
		key, direction, _ := strings.Cut(opts.sort, ":")
		parsed, err := dataview.ParseDirection(direction)
		if err != nil {
			return state, cli.Validation("--sort %q: %w", opts.sort, err)
		}
		state.sort = dataview.SortState{Key: key, Direction: parsed}
		state.hasSort = true
	}
	return state, nil
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `tabula: browse rows as a paged, searchable, sortable table.

Usage:
  tabula --data FILE [--view FILE] [flags]

Examples:
  # Browse quotes with a view definition
  tabula --data quotes.jsonl --view quotes.jsonc

  # Open on a row from a deep link; the row is highlighted for 3s
  tabula --data quotes.json.zst --link 'tabula://quotes?highlight=q-17'

  # Print the second page of active quotes, sorted by amount
  tabula --data quotes.cbor --filter status=active --sort amount:desc --page 2 --print

  # Drive the table through a simulated slow backend
  tabula --data quotes.jsonl --server-side --latency 300ms

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}
