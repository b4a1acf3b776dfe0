// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderScrollbar produces a one-column scrollbar of the given height
// for a list of totalItems of which visibleItems are shown starting at
// scrollOffset. When everything fits the thumb fills the track. The
// thumb uses the accent color when focused.
func RenderScrollbar(theme Theme, height, totalItems, visibleItems, scrollOffset int, focused bool) string {
	if height <= 0 {
		return ""
	}

	thumbColor := theme.BorderColor
	if focused {
		thumbColor = theme.Accent
	}
	track := lipgloss.NewStyle().Foreground(theme.BorderColor).Render("│")
	thumb := lipgloss.NewStyle().Foreground(thumbColor).Render("┃")

	thumbStart, thumbSize := 0, height
	if totalItems > visibleItems && totalItems > 0 {
		thumbSize = max(height*visibleItems/totalItems, 1)
		scrollable := totalItems - visibleItems
		if travel := height - thumbSize; travel > 0 {
			thumbStart = min(max(scrollOffset, 0), scrollable) * travel / scrollable
		}
	}

	lines := make([]string, height)
	for row := range lines {
		if row >= thumbStart && row < thumbStart+thumbSize {
			lines[row] = thumb
		} else {
			lines[row] = track
		}
	}
	return strings.Join(lines, "\n")
}
