// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tableui

import (
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"golang.org/x/text/message"

	"github.com/bureau-foundation/tabula/lib/datatable"
	"github.com/bureau-foundation/tabula/lib/tui"
)

// FocusRegion identifies which part of the viewer receives keys.
type FocusRegion int

const (
	// FocusTable means keys move the cursor and drive the table.
	FocusTable FocusRegion = iota
	// FocusSearch means keystrokes edit the search term.
	FocusSearch
	// FocusDropdown means the filter dropdown is open.
	FocusDropdown
	// FocusDetail means keys scroll the row detail pane.
	FocusDetail
)

// chromeHeight is the title bar, the header row, the caption and the
// status line.
const chromeHeight = 4

// firstRowY is the screen row of the first table row.
const firstRowY = 2

// Options configures a Model. Every field is optional.
type Options struct {
	// Title is shown in the title bar.
	Title string

	Theme *tui.Theme
	Keys  *KeyMap

	// Platform receives highlight scrolls and frames. Pass the same
	// platform to datatable.Deps.
	Platform *Platform

	// Dispatcher delivers work from other goroutines. Pass its
	// Dispatch method to datatable.Deps.
	Dispatcher *Dispatcher

	// Printer formats the caption. Default: American English.
	Printer *message.Printer

	EmptyText     string
	NoMatchesText string

	Logger *slog.Logger
}

// Model is the bubbletea model for the table viewer.
type Model struct {
	table      *datatable.Table
	theme      tui.Theme
	keys       KeyMap
	renderer   rowRenderer
	platform   *Platform
	dispatcher *Dispatcher
	printer    *message.Printer
	logger     *slog.Logger

	title         string
	emptyText     string
	noMatchesText string

	// Terminal dimensions (set by WindowSizeMsg).
	width  int
	height int
	ready  bool

	focus  FocusRegion
	search textinput.Model

	// cursor is the row index within the page on display.
	cursor       int
	scrollOffset int
	columnCursor int

	dropdown    *tui.DropdownOverlay
	filterIndex int

	detail *detailPane

	statusMessage string
	statusLevel   slog.Level
	statusSeq     int
}

// NewModel creates a viewer for table.
func NewModel(table *datatable.Table, options Options) Model {
	theme := tui.DefaultTheme
	if options.Theme != nil {
		theme = *options.Theme
	}
	keys := DefaultKeyMap
	if options.Keys != nil {
		keys = *options.Keys
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	emptyText := options.EmptyText
	if emptyText == "" {
		emptyText = "No data"
	}
	noMatchesText := options.NoMatchesText
	if noMatchesText == "" {
		noMatchesText = "No rows match the current search or filters"
	}

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search"
	search.SetValue(table.Filter().SearchTerm)

	return Model{
		table:         table,
		theme:         theme,
		keys:          keys,
		renderer:      rowRenderer{theme: theme, lip: lipgloss.DefaultRenderer()},
		platform:      options.Platform,
		dispatcher:    options.Dispatcher,
		printer:       options.Printer,
		logger:        logger,
		title:         options.Title,
		emptyText:     emptyText,
		noMatchesText: noMatchesText,
		search:        search,
	}
}

// Focus returns the region receiving keys.
func (model Model) Focus() FocusRegion { return model.focus }

// Cursor returns the cursor row index within the page.
func (model Model) Cursor() int { return model.cursor }

// Init starts listening for dispatched work and runs any frames the
// table requested while it was being built.
func (model Model) Init() tea.Cmd {
	return tea.Batch(model.dispatcher.listen(), model.platform.scheduleFrame())
}

// Update implements tea.Model.
func (model Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var commands []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		command, quit := model.handleKey(msg)
		if quit {
			return model, tea.Quit
		}
		commands = append(commands, command)

	case tea.MouseMsg:
		model.handleMouse(msg)

	case tea.WindowSizeMsg:
		model.width = msg.Width
		model.height = msg.Height
		model.search.Width = max(msg.Width/3, 10)
		model.ready = true

	case dispatchMsg:
		msg.fn()
		commands = append(commands, model.dispatcher.listen())

	case frameMsg:
		if model.platform != nil {
			model.platform.runFrames()
		}

	case logRecordMsg:
		model.statusSeq++
		model.statusMessage = msg.Summary
		model.statusLevel = msg.Level
		seq := model.statusSeq
		commands = append(commands, tea.Tick(logRecordFadeDelay, func(time.Time) tea.Msg {
			return logRecordFadeMsg{seq: seq}
		}))

	case logRecordFadeMsg:
		if msg.seq == model.statusSeq {
			model.statusMessage = ""
		}

	default:
		if model.focus == FocusSearch {
			var command tea.Cmd
			model.search, command = model.search.Update(msg)
			commands = append(commands, command)
		}
	}

	model.settle()
	commands = append(commands, model.platform.scheduleFrame())
	return model, tea.Batch(commands...)
}

// settle applies a pending highlight scroll and keeps the cursors in
// range after the table changed underneath them.
func (model *Model) settle() {
	view := model.table.View()
	if model.platform != nil {
		if target, ok := model.platform.takeScroll(); ok {
			model.scrollTo(view, target)
		}
	}
	model.cursor = min(model.cursor, max(len(view.Rows)-1, 0))
	model.columnCursor = min(model.columnCursor, max(len(view.Headers)-1, 0))
	model.ensureCursorVisible(len(view.Rows))
}

// scrollTo moves the cursor to the row with id and centers it.
func (model *Model) scrollTo(view datatable.View, id string) {
	for index, row := range view.Rows {
		if row.ID != id {
			continue
		}
		model.cursor = index
		height := model.rowsHeight()
		model.scrollOffset = min(max(index-height/2, 0), max(len(view.Rows)-height, 0))
		return
	}
	model.logger.Debug("scroll target not on page", "id", id)
}

func (model *Model) ensureCursorVisible(rowCount int) {
	height := model.rowsHeight()
	if model.cursor < model.scrollOffset {
		model.scrollOffset = model.cursor
	}
	if model.cursor >= model.scrollOffset+height {
		model.scrollOffset = model.cursor - height + 1
	}
	model.scrollOffset = min(max(model.scrollOffset, 0), max(rowCount-height, 0))
}

// rowsHeight is the number of table rows that fit on screen.
func (model Model) rowsHeight() int {
	if !model.ready {
		return max(model.table.PageSize(), 1)
	}
	return max(model.height-chromeHeight-model.detailHeight(), 1)
}

func (model Model) detailHeight() int {
	if model.detail == nil || !model.ready {
		return 0
	}
	return max((model.height-chromeHeight)/2, 3)
}

// handleKey routes a key by focus. It reports true when the viewer
// should quit.
func (model *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if msg.Type == tea.KeyCtrlC {
		return nil, true
	}
	switch model.focus {
	case FocusSearch:
		return model.handleSearchKey(msg), false
	case FocusDropdown:
		model.handleDropdownKey(msg)
		return nil, false
	case FocusDetail:
		return nil, model.handleDetailKey(msg)
	}

	view := model.table.View()
	switch {
	case key.Matches(msg, model.keys.Quit):
		return nil, true

	case key.Matches(msg, model.keys.Up):
		model.cursor = max(model.cursor-1, 0)

	case key.Matches(msg, model.keys.Down):
		model.cursor = min(model.cursor+1, max(len(view.Rows)-1, 0))

	case key.Matches(msg, model.keys.Top):
		model.cursor = 0

	case key.Matches(msg, model.keys.Bottom):
		model.cursor = max(len(view.Rows)-1, 0)

	case key.Matches(msg, model.keys.Left):
		model.columnCursor = max(model.columnCursor-1, 0)

	case key.Matches(msg, model.keys.Right):
		model.columnCursor = min(model.columnCursor+1, max(len(view.Headers)-1, 0))

	case key.Matches(msg, model.keys.NextPage):
		before := model.table.CurrentPage()
		model.table.NextPage()
		if model.table.CurrentPage() != before {
			model.cursor = 0
		}

	case key.Matches(msg, model.keys.PreviousPage):
		before := model.table.CurrentPage()
		model.table.PreviousPage()
		if model.table.CurrentPage() != before {
			model.cursor = 0
		}

	case key.Matches(msg, model.keys.Sort):
		if model.table.ToggleSort(model.columnCursor) {
			model.cursor = 0
		}

	case key.Matches(msg, model.keys.Search):
		model.focus = FocusSearch
		return model.search.Focus(), false

	case key.Matches(msg, model.keys.Filter):
		model.table.OpenFilters()
		model.openDropdown()

	case key.Matches(msg, model.keys.ClearFilters):
		model.table.ClearFilters()
		model.search.SetValue("")
		model.cursor = 0

	case key.Matches(msg, model.keys.Select):
		if model.cursor < len(view.Rows) {
			model.table.SelectOne(view.Rows[model.cursor].ID)
		}

	case key.Matches(msg, model.keys.SelectAll):
		model.table.SelectAll(!view.AllSelected)

	case key.Matches(msg, model.keys.Detail):
		if model.cursor < len(view.Rows) {
			row := view.Rows[model.cursor]
			model.table.ClickRow(row.ID)
			model.detail = newDetailPane(model.theme, row.Row)
			model.focus = FocusDetail
		}

	case key.Matches(msg, model.keys.Back):
		if model.search.Value() != "" {
			model.search.SetValue("")
			model.table.SetSearchTerm("")
			model.cursor = 0
		}
	}
	return nil, false
}

func (model *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		if model.search.Value() != "" {
			model.search.SetValue("")
			model.applySearch()
			return nil
		}
		model.search.Blur()
		model.focus = FocusTable
		return nil

	case tea.KeyEnter:
		model.search.Blur()
		model.focus = FocusTable
		return nil
	}

	var command tea.Cmd
	model.search, command = model.search.Update(msg)
	model.applySearch()
	return command
}

func (model *Model) applySearch() {
	if model.search.Value() == model.table.Filter().SearchTerm {
		return
	}
	model.table.SetSearchTerm(model.search.Value())
	model.cursor = 0
}

// openDropdown opens the dropdown for the filter at filterIndex. With
// no filters configured it does nothing.
func (model *Model) openDropdown() {
	definitions := model.table.FilterOptions()
	if len(definitions) == 0 {
		return
	}
	model.filterIndex %= len(definitions)
	definition := definitions[model.filterIndex]

	options := []tui.DropdownOption{{Label: "All", Value: "all"}}
	for _, option := range definition.Options {
		options = append(options, tui.DropdownOption{Label: option.DisplayLabel(), Value: option.Value})
	}
	current := model.table.Filter().Fields[definition.Key]
	if current == "" {
		current = "all"
	}
	model.dropdown = tui.NewDropdown(definition.Key, options, current)
	model.dropdown.AnchorX = 2
	model.dropdown.AnchorY = firstRowY
	model.focus = FocusDropdown
}

func (model *Model) handleDropdownKey(msg tea.KeyMsg) {
	if model.dropdown == nil {
		model.focus = FocusTable
		return
	}
	switch {
	case msg.Type == tea.KeyEsc:
		model.dismissDropdown()

	case msg.Type == tea.KeyUp:
		model.dropdown.MoveUp()

	case msg.Type == tea.KeyDown:
		model.dropdown.MoveDown()

	case key.Matches(msg, model.keys.NextFilter):
		model.filterIndex++
		model.openDropdown()

	case msg.Type == tea.KeyEnter:
		if selected, ok := model.dropdown.Selected(); ok {
			model.table.SetFieldFilter(model.dropdown.Field, selected.Value)
			model.cursor = 0
		}
		model.dismissDropdown()

	case msg.Type == tea.KeyBackspace:
		model.dropdown.Backspace()

	case msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace:
		for _, character := range msg.Runes {
			model.dropdown.TypeRune(character)
		}
	}
}

func (model *Model) dismissDropdown() {
	model.dropdown = nil
	model.focus = FocusTable
}

// handleDetailKey scrolls or closes the detail pane. It reports true
// on quit.
func (model *Model) handleDetailKey(msg tea.KeyMsg) bool {
	height := max(model.detailHeight()-1, 1)
	switch {
	case key.Matches(msg, model.keys.Quit):
		return true
	case key.Matches(msg, model.keys.Back), key.Matches(msg, model.keys.Detail):
		model.detail = nil
		model.focus = FocusTable
	case key.Matches(msg, model.keys.Up):
		model.detail.scrollBy(-1, height)
	case key.Matches(msg, model.keys.Down):
		model.detail.scrollBy(1, height)
	case key.Matches(msg, model.keys.Top):
		model.detail.scrollBy(-len(model.detail.lines), height)
	case key.Matches(msg, model.keys.Bottom):
		model.detail.scrollBy(len(model.detail.lines), height)
	}
	return false
}

// handleMouse sorts on header clicks, moves the cursor on row clicks,
// and scrolls with the wheel.
func (model *Model) handleMouse(msg tea.MouseMsg) {
	if model.focus == FocusDropdown && model.dropdown != nil {
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return
		}
		if !model.dropdown.Contains(msg.X, msg.Y) {
			model.dismissDropdown()
			return
		}
		if position := model.dropdown.OptionAtY(msg.Y); position >= 0 {
			model.dropdown.Cursor = position
			model.handleDropdownKey(tea.KeyMsg{Type: tea.KeyEnter})
		}
		return
	}

	view := model.table.View()
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		model.cursor = max(model.cursor-1, 0)
	case tea.MouseButtonWheelDown:
		model.cursor = min(model.cursor+1, max(len(view.Rows)-1, 0))
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return
		}
		widths := columnWidths(view, model.tableWidth())
		switch {
		case msg.Y == firstRowY-1:
			if index := columnAt(view, widths, msg.X); index >= 0 {
				model.columnCursor = index
				if model.table.ToggleSort(index) {
					model.cursor = 0
				}
			}
		case msg.Y >= firstRowY && msg.Y < firstRowY+model.rowsHeight():
			index := model.scrollOffset + msg.Y - firstRowY
			if index < len(view.Rows) {
				model.cursor = index
				model.table.ClickRow(view.Rows[index].ID)
			}
		}
	}
}

// tableWidth leaves one column for the scrollbar.
func (model Model) tableWidth() int {
	return max(model.width-1, 20)
}

// View implements tea.Model.
func (model Model) View() string {
	model.platform.markRendered()
	if !model.ready {
		return "Loading..."
	}
	view := model.table.View()

	sections := []string{model.renderTitleBar(view)}
	sections = append(sections, model.renderTable(view))
	if model.detail != nil {
		sections = append(sections, model.detail.render(model.theme, model.width, model.detailHeight()))
	}
	sections = append(sections, model.renderCaption(view), model.renderStatus())
	screen := strings.Join(sections, "\n")

	if model.dropdown != nil {
		screen = tui.SpliceOverlay(screen, model.dropdown.Render(model.theme), model.dropdown.AnchorX, model.dropdown.AnchorY)
	}
	return screen
}

func (model Model) renderTitleBar(view datatable.View) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground)
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	parts := []string{titleStyle.Render(model.title)}
	if model.focus == FocusSearch || model.search.Value() != "" {
		parts = append(parts, model.search.View())
	}
	if len(view.Filters) > 0 {
		keys := make([]string, 0, len(view.Filters))
		for field := range view.Filters {
			keys = append(keys, field)
		}
		sort.Strings(keys)
		var filters []string
		for _, field := range keys {
			filters = append(filters, field+"="+view.Filters[field])
		}
		parts = append(parts, faint.Render("["+strings.Join(filters, " ")+"]"))
	}
	if view.Selectable && view.SelectedCount > 0 {
		parts = append(parts, lipgloss.NewStyle().Foreground(model.theme.CheckedForeground).
			Render(model.printerOrDefault().Sprintf("%d selected", view.SelectedCount)))
	}
	return ansi.Truncate(strings.Join(parts, "  "), model.width, "…")
}

func (model Model) renderTable(view datatable.View) string {
	height := model.rowsHeight()
	width := model.tableWidth()
	widths := columnWidths(view, width)

	focused := -1
	if model.focus == FocusTable {
		focused = model.columnCursor
	}
	header := model.renderer.renderHeader(view, widths, focused)

	lines := make([]string, height)
	if text := emptyText(view, model.emptyText, model.noMatchesText); text != "" {
		lines[0] = lipgloss.NewStyle().Foreground(model.theme.FaintText).Render("  " + text)
	}
	for index := 0; index < height; index++ {
		rowIndex := model.scrollOffset + index
		if rowIndex >= len(view.Rows) {
			break
		}
		lines[index] = model.renderer.renderRow(view, view.Rows[rowIndex], widths, rowIndex == model.cursor && model.focus != FocusDetail)
	}
	for index, line := range lines {
		lines[index] = fitStyled(line, width)
	}

	scrollbar := tui.RenderScrollbar(model.theme, height, len(view.Rows), height, model.scrollOffset, model.focus == FocusTable)
	return fitStyled(header, width) + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(lines, "\n"), scrollbar)
}

// fitStyled truncates or pads a styled line to width columns.
func fitStyled(line string, width int) string {
	lineWidth := ansi.StringWidth(line)
	if lineWidth > width {
		return ansi.Truncate(line, width, "")
	}
	return line + strings.Repeat(" ", width-lineWidth)
}

func (model Model) renderCaption(view datatable.View) string {
	caption := view.Caption(model.printer)
	if !view.Sort.IsZero() {
		caption += " · sorted by " + view.Sort.Key + " " + string(view.Sort.Direction)
	}
	return lipgloss.NewStyle().Foreground(model.theme.FaintText).Render(caption)
}

func (model Model) renderStatus() string {
	if model.statusMessage != "" {
		color := model.theme.ToneWarning
		if model.statusLevel >= slog.LevelError {
			color = model.theme.ToneDanger
		}
		return ansi.Truncate(lipgloss.NewStyle().Foreground(color).Render(model.statusMessage), model.width, "…")
	}

	var bindings []key.Binding
	switch model.focus {
	case FocusSearch:
		return lipgloss.NewStyle().Foreground(model.theme.HelpText).Render("Enter confirm · Esc clear")
	case FocusDropdown:
		return lipgloss.NewStyle().Foreground(model.theme.HelpText).Render("type to narrow · ↑/↓ move · Enter apply · Tab next filter · Esc close")
	case FocusDetail:
		bindings = []key.Binding{model.keys.Up, model.keys.Down, model.keys.Back, model.keys.Quit}
	default:
		bindings = []key.Binding{
			model.keys.Down, model.keys.NextPage, model.keys.Sort, model.keys.Search,
			model.keys.Filter, model.keys.ClearFilters, model.keys.Detail, model.keys.Quit,
		}
		if model.table.View().Selectable {
			bindings = append(bindings, model.keys.Select, model.keys.SelectAll)
		}
	}
	var parts []string
	for _, binding := range bindings {
		help := binding.Help()
		parts = append(parts, help.Key+" "+help.Desc)
	}
	return ansi.Truncate(lipgloss.NewStyle().Foreground(model.theme.HelpText).Render(strings.Join(parts, " · ")), model.width, "…")
}

func (model Model) printerOrDefault() *message.Printer {
	if model.printer != nil {
		return model.printer
	}
	return message.NewPrinter(message.MatchLanguage("en-US"))
}
