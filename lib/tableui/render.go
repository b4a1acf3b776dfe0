// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tableui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/tabula/lib/column"
	"github.com/bureau-foundation/tabula/lib/datatable"
	"github.com/bureau-foundation/tabula/lib/tui"
)

const (
	// maxColumnWidth caps a column before the available width is
	// shared out.
	maxColumnWidth = 32

	// minColumnWidth is the narrowest a column is squeezed to.
	minColumnWidth = 3

	columnGap = "  "

	// gutterWidth is the marker column left of every row.
	gutterWidth = 2

	checkboxWidth = 4
)

// rowRenderer draws headers, rows and cells with one lipgloss renderer,
// so the interactive model and the static printer share a look.
type rowRenderer struct {
	theme tui.Theme
	lip   *lipgloss.Renderer
}

func (renderer rowRenderer) style() lipgloss.Style {
	return renderer.lip.NewStyle()
}

// columnWidths sizes each column to its widest header or cell on the
// page, then shrinks the widest columns until the row fits available.
func columnWidths(view datatable.View, available int) []int {
	widths := make([]int, len(view.Headers))
	for index, header := range view.Headers {
		widths[index] = ansi.StringWidth(header.Title) + 2 // room for " ▲"
	}
	for _, row := range view.Rows {
		for index, cell := range row.Cells {
			if index < len(widths) {
				widths[index] = max(widths[index], ansi.StringWidth(cellText(cell)))
			}
		}
	}
	for index := range widths {
		widths[index] = min(max(widths[index], minColumnWidth), maxColumnWidth)
	}

	budget := available - rowPrefixWidth(view) - len(columnGap)*max(len(widths)-1, 0)
	for total(widths) > budget {
		widest := 0
		for index := range widths {
			if widths[index] > widths[widest] {
				widest = index
			}
		}
		if widths[widest] <= minColumnWidth {
			break
		}
		widths[widest]--
	}
	return widths
}

func total(widths []int) int {
	sum := 0
	for _, width := range widths {
		sum += width
	}
	return sum
}

func rowPrefixWidth(view datatable.View) int {
	if view.Selectable {
		return gutterWidth + checkboxWidth
	}
	return gutterWidth
}

// columnAt returns the header index under screen column x within a
// rendered row, or -1.
func columnAt(view datatable.View, widths []int, x int) int {
	position := rowPrefixWidth(view)
	for index, width := range widths {
		if x >= position && x < position+width {
			return index
		}
		position += width + len(columnGap)
	}
	return -1
}

// cellText is the unstyled text of a cell.
func cellText(cell column.Cell) string {
	switch cell.Type {
	case column.CellBadge:
		return "● " + cell.Text
	case column.CellAvatar:
		return "(" + cell.Text + ")"
	default:
		return cell.Text
	}
}

// fit truncates or pads text to exactly width columns.
func fit(text string, width int, rightAlign bool) string {
	if ansi.StringWidth(text) > width {
		return ansi.Truncate(text, width, "…")
	}
	padding := strings.Repeat(" ", width-ansi.StringWidth(text))
	if rightAlign {
		return padding + text
	}
	return text + padding
}

// renderHeader draws the header row. focusedColumn is underlined; -1
// underlines nothing.
func (renderer rowRenderer) renderHeader(view datatable.View, widths []int, focusedColumn int) string {
	base := renderer.style().Bold(true).Foreground(renderer.theme.HeaderForeground)

	var line strings.Builder
	line.WriteString(strings.Repeat(" ", gutterWidth))
	if view.Selectable {
		mark := "[ ] "
		if view.AllSelected {
			mark = "[x] "
		}
		line.WriteString(base.Render(mark))
	}
	for index, header := range view.Headers {
		if index > 0 {
			line.WriteString(columnGap)
		}
		title := header.Title
		if indicator := header.Indicator(); indicator != "" {
			title += " " + indicator
		}
		style := base
		if !header.Sortable {
			style = style.Foreground(renderer.theme.FaintText)
		}
		if index == focusedColumn {
			style = style.Underline(true)
		}
		line.WriteString(style.Render(fit(title, widths[index], false)))
	}
	return line.String()
}

// renderRow draws one row. cursor marks the row under the keyboard
// cursor.
func (renderer rowRenderer) renderRow(view datatable.View, row datatable.ViewRow, widths []int, cursor bool) string {
	background := lipgloss.Color("")
	switch {
	case row.Highlighted:
		background = renderer.theme.HighlightBackground
	case cursor:
		background = renderer.theme.SelectedBackground
	}
	base := renderer.style().Foreground(renderer.theme.NormalText)
	if background != "" {
		base = base.Background(background)
	}

	var line strings.Builder
	gutter := "  "
	switch {
	case row.Highlighted:
		gutter = "▶ "
	case cursor:
		gutter = "› "
	}
	line.WriteString(base.Foreground(renderer.theme.Accent).Render(gutter))

	if view.Selectable {
		if row.Selected {
			line.WriteString(base.Foreground(renderer.theme.CheckedForeground).Render("[x] "))
		} else {
			line.WriteString(base.Foreground(renderer.theme.FaintText).Render("[ ] "))
		}
	}

	for index, cell := range row.Cells {
		if index >= len(widths) {
			break
		}
		if index > 0 {
			line.WriteString(base.Render(columnGap))
		}
		line.WriteString(renderer.renderCell(cell, widths[index], base))
	}
	return line.String()
}

func (renderer rowRenderer) renderCell(cell column.Cell, width int, base lipgloss.Style) string {
	text := fit(cellText(cell), width, cell.Type == column.CellCurrency)
	switch {
	case cell.Missing:
		return base.Foreground(renderer.theme.FaintText).Render(text)
	case cell.Type == column.CellBadge:
		return base.Foreground(renderer.theme.ToneColor(cell.Tone)).Render(text)
	case cell.Type == column.CellAvatar:
		return base.Foreground(renderer.theme.ToneInfo).Render(text)
	default:
		return base.Render(text)
	}
}

// emptyText returns the message for an empty view, or "".
func emptyText(view datatable.View, noRows, noMatches string) string {
	switch view.Empty {
	case datatable.EmptyNoRows:
		return noRows
	case datatable.EmptyNoMatches:
		return noMatches
	default:
		return ""
	}
}
