// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tableui

import (
	"encoding/json"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/tabula/lib/record"
	"github.com/bureau-foundation/tabula/lib/tui"
)

// detailPane shows the full record behind one row as highlighted
// JSON.
type detailPane struct {
	rowID  string
	lines  []string
	scroll int
}

// newDetailPane renders row once; scrolling reuses the lines.
func newDetailPane(theme tui.Theme, row record.Row) *detailPane {
	return &detailPane{
		rowID: row.ID(),
		lines: strings.Split(highlightJSON(theme, row), "\n"),
	}
}

// highlightJSON pretty-prints row and colors it with Chroma. Rows
// that cannot be marshaled fall back to Go syntax in faint text.
func highlightJSON(theme tui.Theme, row record.Row) string {
	data, err := json.MarshalIndent(row, "", "  ")
	if err != nil {
		return lipgloss.NewStyle().Foreground(theme.FaintText).Render(record.String(map[string]any(row)))
	}
	var buffer strings.Builder
	if err := quick.Highlight(&buffer, string(data), "json", "terminal256", "monokai"); err != nil {
		return lipgloss.NewStyle().Foreground(theme.FaintText).Render(string(data))
	}
	return strings.TrimRight(buffer.String(), "\n")
}

func (pane *detailPane) scrollBy(delta, height int) {
	pane.scroll = min(max(pane.scroll+delta, 0), max(len(pane.lines)-height, 0))
}

// render draws the pane at the given size, with a title line.
func (pane *detailPane) render(theme tui.Theme, width, height int) string {
	if height <= 0 {
		return ""
	}
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.HeaderForeground).
		Render(fit("Row "+pane.rowID, max(width-1, 1), false))
	bodyHeight := height - 1

	end := min(pane.scroll+bodyHeight, len(pane.lines))
	visible := pane.lines[min(pane.scroll, end):end]

	body := make([]string, bodyHeight)
	for index := range body {
		if index < len(visible) {
			body[index] = ansi.Truncate(visible[index], max(width-2, 1), "…")
		}
	}
	scrollbar := tui.RenderScrollbar(theme, bodyHeight, len(pane.lines), bodyHeight, pane.scroll, true)
	return title + "\n" + lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(max(width-1, 1)).Render(strings.Join(body, "\n")),
		scrollbar,
	)
}
