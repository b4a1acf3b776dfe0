// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// DropdownOption is a single selectable item in a dropdown overlay.
type DropdownOption struct {
	Label string // Display text shown in the dropdown.
	Value string // Value applied on selection.
}

// dropdownMatch is an option that survives the typed query.
type dropdownMatch struct {
	index     int
	score     int
	positions []int
}

// DropdownOverlay renders a floating menu anchored at a screen
// position. Typing narrows the options by fuzzy match; up/down moves
// between the remaining ones. The model owns the dropdown and routes
// input to it while it is open.
type DropdownOverlay struct {
	Options []DropdownOption
	Cursor  int // Index into the narrowed list.
	AnchorX int // Screen X coordinate of the top-left corner.
	AnchorY int // Screen Y coordinate of the top-left corner.
	Field   string

	query   []rune
	matches []dropdownMatch
}

// NewDropdown creates a dropdown over options for field. The cursor
// starts on the option whose value equals current, if any.
func NewDropdown(field string, options []DropdownOption, current string) *DropdownOverlay {
	dropdown := &DropdownOverlay{Options: options, Field: field}
	dropdown.Narrow("")
	for position, match := range dropdown.matches {
		if options[match.index].Value == current {
			dropdown.Cursor = position
			break
		}
	}
	return dropdown
}

// Query returns the narrowing text typed so far.
func (dropdown *DropdownOverlay) Query() string { return string(dropdown.query) }

// Narrow keeps the options whose label fuzzy-matches query, best
// match first. An empty query keeps every option in its original
// order. The cursor returns to the top.
func (dropdown *DropdownOverlay) Narrow(query string) {
	dropdown.query = []rune(query)
	dropdown.matches = dropdown.matches[:0]
	dropdown.Cursor = 0

	if len(dropdown.query) == 0 {
		for index := range dropdown.Options {
			dropdown.matches = append(dropdown.matches, dropdownMatch{index: index})
		}
		return
	}

	slab := NewSlab()
	for index, option := range dropdown.Options {
		result := FuzzyMatch(option.Label, dropdown.query, slab)
		if result.Score == 0 {
			continue
		}
		dropdown.matches = append(dropdown.matches, dropdownMatch{
			index:     index,
			score:     result.Score,
			positions: result.Positions,
		})
	}
	slices.SortStableFunc(dropdown.matches, func(a, b dropdownMatch) int {
		return b.score - a.score
	})
}

// TypeRune appends to the query and narrows.
func (dropdown *DropdownOverlay) TypeRune(character rune) {
	dropdown.Narrow(string(append(slices.Clone(dropdown.query), character)))
}

// Backspace removes the last query rune and narrows.
func (dropdown *DropdownOverlay) Backspace() {
	if len(dropdown.query) == 0 {
		return
	}
	dropdown.Narrow(string(dropdown.query[:len(dropdown.query)-1]))
}

// Len returns the number of options left after narrowing.
func (dropdown *DropdownOverlay) Len() int { return len(dropdown.matches) }

// MoveUp moves the cursor up by one, wrapping to the bottom.
func (dropdown *DropdownOverlay) MoveUp() {
	if len(dropdown.matches) == 0 {
		return
	}
	dropdown.Cursor--
	if dropdown.Cursor < 0 {
		dropdown.Cursor = len(dropdown.matches) - 1
	}
}

// MoveDown moves the cursor down by one, wrapping to the top.
func (dropdown *DropdownOverlay) MoveDown() {
	if len(dropdown.matches) == 0 {
		return
	}
	dropdown.Cursor++
	if dropdown.Cursor >= len(dropdown.matches) {
		dropdown.Cursor = 0
	}
}

// Selected returns the option under the cursor. It reports false when
// the query matches nothing.
func (dropdown *DropdownOverlay) Selected() (DropdownOption, bool) {
	if dropdown.Cursor < 0 || dropdown.Cursor >= len(dropdown.matches) {
		return DropdownOption{}, false
	}
	return dropdown.Options[dropdown.matches[dropdown.Cursor].index], true
}

// Width returns the visible width of the rendered dropdown. It covers
// every option, so narrowing does not resize the box.
func (dropdown *DropdownOverlay) Width() int {
	maxLabelWidth := ansi.StringWidth("/" + string(dropdown.query))
	for _, option := range dropdown.Options {
		maxLabelWidth = max(maxLabelWidth, ansi.StringWidth(option.Label))
	}
	// " > LABEL ": marker and space, then label, one column of
	// padding on each side.
	return 2 + maxLabelWidth + 2
}

// Height returns the number of rendered lines: the query line plus
// one per remaining option, at least one.
func (dropdown *DropdownOverlay) Height() int {
	return 1 + max(len(dropdown.matches), 1)
}

// Contains reports whether the screen coordinate (x, y) falls within
// the dropdown's bounding rectangle.
func (dropdown *DropdownOverlay) Contains(x, y int) bool {
	if y < dropdown.AnchorY || y >= dropdown.AnchorY+dropdown.Height() {
		return false
	}
	return x >= dropdown.AnchorX && x < dropdown.AnchorX+dropdown.Width()
}

// OptionAtY returns the narrowed-list position at screen row y, or -1.
func (dropdown *DropdownOverlay) OptionAtY(y int) int {
	position := y - dropdown.AnchorY - 1
	if position < 0 || position >= len(dropdown.matches) {
		return -1
	}
	return position
}

// Render produces the dropdown lines for SpliceOverlay. Every line
// has the same visible width. Matched characters are tinted and the
// option under the cursor uses the selection colors.
func (dropdown *DropdownOverlay) Render(theme Theme) []string {
	totalWidth := dropdown.Width()
	innerWidth := totalWidth - 2

	backgroundStyle := lipgloss.NewStyle().
		Background(theme.OverlayBackground).
		Foreground(theme.OverlayForeground)
	selectedStyle := lipgloss.NewStyle().
		Background(theme.SelectedBackground).
		Foreground(theme.SelectedForeground)
	faintStyle := backgroundStyle.Foreground(theme.FaintText)

	var lines []string
	queryLine := faintStyle.Render("/" + string(dropdown.query))
	lines = append(lines, PadOverlayLine(queryLine, innerWidth, totalWidth, backgroundStyle))

	if len(dropdown.matches) == 0 {
		lines = append(lines, PadOverlayLine(faintStyle.Render("no matches"), innerWidth, totalWidth, backgroundStyle))
		return lines
	}

	for position, match := range dropdown.matches {
		style := backgroundStyle
		marker := "  "
		if position == dropdown.Cursor {
			style = selectedStyle
			marker = "> "
		}
		label := HighlightPositions(dropdown.Options[match.index].Label, match.positions, style,
			style.Background(theme.SearchHighlightBackground))
		lines = append(lines, PadOverlayLine(style.Render(marker)+label, innerWidth, totalWidth, style))
	}
	return lines
}

// HighlightPositions renders text with the runes at positions in
// matchStyle and the rest in baseStyle.
func HighlightPositions(text string, positions []int, baseStyle, matchStyle lipgloss.Style) string {
	if len(positions) == 0 {
		return baseStyle.Render(text)
	}
	matched := make(map[int]bool, len(positions))
	for _, position := range positions {
		matched[position] = true
	}

	var result, run strings.Builder
	runMatched := false
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if runMatched {
			result.WriteString(matchStyle.Render(run.String()))
		} else {
			result.WriteString(baseStyle.Render(run.String()))
		}
		run.Reset()
	}
	for index, character := range []rune(text) {
		if matched[index] != runMatched {
			flush()
			runMatched = matched[index]
		}
		run.WriteRune(character)
	}
	flush()
	return result.String()
}
