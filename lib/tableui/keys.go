// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tableui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the table viewer.
type KeyMap struct {
	// Row cursor.
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	// Column cursor, used by Sort.
	Left  key.Binding
	Right key.Binding

	NextPage     key.Binding
	PreviousPage key.Binding

	Sort key.Binding // Toggle sort on the focused column.

	Search       key.Binding // Focus the search bar.
	Filter       key.Binding // Open the filter dropdown.
	NextFilter   key.Binding // Inside the dropdown: next filter field.
	ClearFilters key.Binding

	Select    key.Binding // Toggle the cursor row.
	SelectAll key.Binding // Toggle every row on the page.

	Detail key.Binding // Open the row detail pane.
	Back   key.Binding // Close the pane, clear the search, or dismiss.

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style movement
// alongside arrow keys.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Top: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "top"),
	),
	Bottom: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "bottom"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "column"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "column"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("n", "pgdown", "]"),
		key.WithHelp("n", "next page"),
	),
	PreviousPage: key.NewBinding(
		key.WithKeys("p", "pgup", "["),
		key.WithHelp("p", "prev page"),
	),
	Sort: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "sort"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Filter: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "filter"),
	),
	NextFilter: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "next filter"),
	),
	ClearFilters: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "clear"),
	),
	Select: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("Space", "select"),
	),
	SelectAll: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "select page"),
	),
	Detail: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "details"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
