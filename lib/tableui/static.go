// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tableui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
	"golang.org/x/text/message"

	"github.com/bureau-foundation/tabula/lib/datatable"
	"github.com/bureau-foundation/tabula/lib/tui"
)

// ColorMode controls escape sequences in printed output.
type ColorMode int

const (
	// ColorAuto colors when the writer is a terminal that supports it.
	ColorAuto ColorMode = iota
	// ColorNever prints plain text.
	ColorNever
	// ColorAlways prints 256-color output even to a pipe.
	ColorAlways
)

// ParseColorMode accepts "auto", "never" and "always".
func ParseColorMode(name string) (ColorMode, error) {
	switch name {
	case "", "auto":
		return ColorAuto, nil
	case "never":
		return ColorNever, nil
	case "always":
		return ColorAlways, nil
	default:
		return ColorAuto, fmt.Errorf("unknown color mode %q (want auto, never, or always)", name)
	}
}

// defaultPrintWidth is used when the writer is not a terminal.
const defaultPrintWidth = 100

// PrintOptions configures Print.
type PrintOptions struct {
	Title string
	Theme *tui.Theme

	// Width is the line width. Zero measures the terminal behind w, or
	// uses 100 columns.
	Width int

	Color   ColorMode
	Printer *message.Printer

	EmptyText     string
	NoMatchesText string
}

// Print writes the table's current page to w: title, header, rows, and
// the caption line. The highlighted row keeps its marker so a deep
// link can be checked without a terminal UI.
func Print(w io.Writer, table *datatable.Table, options PrintOptions) error {
	theme := tui.DefaultTheme
	if options.Theme != nil {
		theme = *options.Theme
	}
	profile := colorProfile(w, options.Color)
	lip := lipgloss.NewRenderer(w, termenv.WithProfile(profile))
	lip.SetColorProfile(profile)
	renderer := rowRenderer{theme: theme, lip: lip}

	width := options.Width
	if width <= 0 {
		width = terminalWidth(w)
	}

	view := table.View()
	widths := columnWidths(view, width)

	var output strings.Builder
	if options.Title != "" {
		output.WriteString(lip.NewStyle().Bold(true).Render(options.Title))
		output.WriteByte('\n')
	}
	output.WriteString(strings.TrimRight(renderer.renderHeader(view, widths, -1), " "))
	output.WriteByte('\n')

	noRows := options.EmptyText
	if noRows == "" {
		noRows = "No data"
	}
	noMatches := options.NoMatchesText
	if noMatches == "" {
		noMatches = "No rows match the current search or filters"
	}
	if text := emptyText(view, noRows, noMatches); text != "" {
		output.WriteString("  " + text + "\n")
	}
	for _, row := range view.Rows {
		output.WriteString(strings.TrimRight(renderer.renderRow(view, row, widths, false), " "))
		output.WriteByte('\n')
	}
	output.WriteString(view.Caption(options.Printer))
	output.WriteByte('\n')

	_, err := io.WriteString(w, output.String())
	return err
}

func colorProfile(w io.Writer, mode ColorMode) termenv.Profile {
	switch mode {
	case ColorNever:
		return termenv.Ascii
	case ColorAlways:
		return termenv.ANSI256
	}
	if file, ok := w.(*os.File); !ok || !term.IsTerminal(int(file.Fd())) {
		return termenv.Ascii
	}
	return termenv.NewOutput(w).EnvColorProfile()
}

func terminalWidth(w io.Writer) int {
	file, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(file.Fd())) {
		return defaultPrintWidth
	}
	width, _, err := term.GetSize(int(file.Fd()))
	if err != nil || width <= 0 {
		return defaultPrintWidth
	}
	return width
}
