// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// SpliceOverlay draws overlayLines over view with the top-left corner
// at (anchorX, anchorY). Truncation is ANSI-aware, so styling in the
// covered view survives on both sides of the overlay. View lines
// shorter than anchorX are padded with spaces; overlay lines that fall
// outside the view are dropped.
func SpliceOverlay(view string, overlayLines []string, anchorX, anchorY int) string {
	if len(overlayLines) == 0 {
		return view
	}
	anchorX = max(anchorX, 0)

	viewLines := strings.Split(view, "\n")
	for offset, overlayLine := range overlayLines {
		row := anchorY + offset
		if row < 0 || row >= len(viewLines) {
			continue
		}
		under := viewLines[row]
		underWidth := ansi.StringWidth(under)

		var line strings.Builder
		if underWidth >= anchorX {
			line.WriteString(ansi.Truncate(under, anchorX, ""))
		} else {
			line.WriteString(under)
			line.WriteString(strings.Repeat(" ", anchorX-underWidth))
		}
		line.WriteString("\x1b[0m")
		line.WriteString(overlayLine)
		line.WriteString("\x1b[0m")

		resume := anchorX + ansi.StringWidth(overlayLine)
		if resume < underWidth {
			line.WriteString(ansi.TruncateLeft(under, resume, ""))
		}
		viewLines[row] = line.String()
	}
	return strings.Join(viewLines, "\n")
}

// PadOverlayLine pads styled content to totalWidth: one column of
// background before it, and background after it up to innerWidth plus
// one closing column.
func PadOverlayLine(styledContent string, innerWidth, totalWidth int, backgroundStyle lipgloss.Style) string {
	rightPad := max(innerWidth-ansi.StringWidth(styledContent), 0)
	line := backgroundStyle.Render(" ") + styledContent + backgroundStyle.Render(strings.Repeat(" ", rightPad+1))
	if short := totalWidth - ansi.StringWidth(line); short > 0 {
		line += backgroundStyle.Render(strings.Repeat(" ", short))
	}
	return line
}
