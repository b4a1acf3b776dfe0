// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/tabula/lib/column"
)

// Theme defines the color palette for tabula's terminal views. All
// colors use lipgloss ANSI 256-color codes for broad terminal
// compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Cursor row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Checkbox mark for selected rows.
	CheckedForeground lipgloss.Color

	// Background of the row named by an active highlight.
	HighlightBackground lipgloss.Color

	// Badge tones.
	ToneNeutral lipgloss.Color
	ToneInfo    lipgloss.Color
	ToneSuccess lipgloss.Color
	ToneWarning lipgloss.Color
	ToneDanger  lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color
	Accent           lipgloss.Color

	// Background tint for fuzzy-matched characters.
	SearchHighlightBackground lipgloss.Color

	// Dropdown overlays.
	OverlayForeground lipgloss.Color
	OverlayBackground lipgloss.Color
}

// ToneColor returns the color for a badge tone. Unknown tones use
// ToneNeutral.
func (theme Theme) ToneColor(tone column.Tone) lipgloss.Color {
	switch tone {
	case column.ToneInfo:
		return theme.ToneInfo
	case column.ToneSuccess:
		return theme.ToneSuccess
	case column.ToneWarning:
		return theme.ToneWarning
	case column.ToneDanger:
		return theme.ToneDanger
	default:
		return theme.ToneNeutral
	}
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	CheckedForeground: lipgloss.Color("114"),

	HighlightBackground: lipgloss.Color("58"), // dark amber

	ToneNeutral: lipgloss.Color("245"), // gray
	ToneInfo:    lipgloss.Color("75"),  // blue
	ToneSuccess: lipgloss.Color("114"), // green
	ToneWarning: lipgloss.Color("220"), // amber
	ToneDanger:  lipgloss.Color("196"), // red

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),
	Accent:           lipgloss.Color("220"),

	SearchHighlightBackground: lipgloss.Color("58"),

	OverlayForeground: lipgloss.Color("252"),
	OverlayBackground: lipgloss.Color("237"),
}
