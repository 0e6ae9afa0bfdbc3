package views

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/xolan/swimlog/internal/catalog"
	"github.com/xolan/swimlog/internal/cli"
	"github.com/xolan/swimlog/internal/importer"
	"github.com/xolan/swimlog/internal/service"
	"github.com/xolan/swimlog/internal/swimtime"
	"github.com/xolan/swimlog/internal/tui/ui"
	"github.com/xolan/swimlog/internal/view"
)

// timesMode represents the current mode of the times view
type timesMode int

const (
	timesModeNormal timesMode = iota
	timesModeAdd
	timesModeImport
	timesModeDelete
	timesModeClear
)

// TimesModel is the model for the times view
type TimesModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	// UI state
	width       int
	height      int
	rows        []view.TableRow
	seeded      bool
	loading     bool
	err         error
	status      string
	cursorEvent int
	cursorTime  int
	offset      int
	marked      map[catalog.Selection]bool
	pending     bool // a mutation is running; keys are ignored until it reports back

	// Input mode state
	mode      timesMode
	addEvent  int
	timeInput textinput.Model
	pathInput textinput.Model
}

// NewTimesModel creates a new times view model
func NewTimesModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) TimesModel {
	timeInput := textinput.New()
	timeInput.Placeholder = "minutes.seconds.hundredths, e.g. 1.05.32"
	timeInput.CharLimit = 20
	timeInput.Width = 30

	pathInput := textinput.New()
	pathInput.Placeholder = "path/to/times.xlsx"
	pathInput.CharLimit = 500
	pathInput.Width = 50

	return TimesModel{
		services:  services,
		styles:    styles,
		keys:      keys,
		loading:   true,
		marked:    make(map[catalog.Selection]bool),
		timeInput: timeInput,
		pathInput: pathInput,
	}
}

// timesLoadedMsg is sent when the table is (re)loaded
type timesLoadedMsg struct {
	rows   []view.TableRow
	seeded bool
	err    error
}

// timesChangedMsg is sent when a mutation finished
type timesChangedMsg struct {
	rows   []view.TableRow
	seeded bool
	status string
	err    error
}

// Init implements tea.Model
func (m TimesModel) Init() tea.Cmd {
	return m.loadTimes()
}

// Update implements tea.Model
func (m TimesModel) Update(msg tea.Msg) (TimesModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.pending {
			return m, nil
		}
		switch m.mode {
		case timesModeAdd:
			return m.handleAddMode(msg)
		case timesModeImport:
			return m.handleImportMode(msg)
		case timesModeDelete, timesModeClear:
			return m.handleConfirmMode(msg)
		}
		return m.handleNormalMode(msg)

	case timesLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.setRows(msg.rows, msg.seeded)
		}
		return m, nil

	case timesChangedMsg:
		m.pending = false
		if msg.err != nil && correctable(msg.err) {
			m.err = msg.err
			switch m.mode {
			case timesModeAdd:
				m.timeInput.Focus()
				return m, textinput.Blink
			case timesModeImport:
				m.pathInput.Focus()
				return m, textinput.Blink
			}
		}
		m.err = msg.err
		m.mode = timesModeNormal
		m.status = ""
		if msg.err == nil {
			m.status = msg.status
		}
		m.marked = make(map[catalog.Selection]bool)
		if msg.rows != nil {
			m.setRows(msg.rows, msg.seeded)
		}
		return m, catalogChanged

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		return m, nil
	}

	// Keep the cursor blinking in text inputs
	switch m.mode {
	case timesModeAdd:
		m.timeInput, cmd = m.timeInput.Update(msg)
	case timesModeImport:
		m.pathInput, cmd = m.pathInput.Update(msg)
	}
	return m, cmd
}

// handleNormalMode handles keys when browsing the table
func (m TimesModel) handleNormalMode(msg tea.KeyMsg) (TimesModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursorEvent > 0 {
			m.cursorEvent--
			m.clampCursor()
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursorEvent < len(m.rows)-1 {
			m.cursorEvent++
			m.clampCursor()
		}
	case key.Matches(msg, m.keys.Left):
		if m.cursorTime > 0 {
			m.cursorTime--
		}
	case key.Matches(msg, m.keys.Right):
		if m.cursorTime < len(m.currentCells())-1 {
			m.cursorTime++
		}
	case key.Matches(msg, m.keys.Toggle):
		cells := m.currentCells()
		if m.cursorTime < len(cells) {
			c := cells[m.cursorTime]
			sel := catalog.Selection{EventIndex: c.EventIndex, TimeIndex: c.TimeIndex}
			if m.marked[sel] {
				delete(m.marked, sel)
			} else {
				m.marked[sel] = true
			}
		}
	case key.Matches(msg, m.keys.Delete):
		if len(m.marked) == 0 {
			m.status = "Mark times with space first"
			return m, nil
		}
		m.mode = timesModeDelete
	case key.Matches(msg, m.keys.Clear):
		if len(m.currentCells()) == 0 {
			m.status = fmt.Sprintf("%s has no times", m.currentName())
			return m, nil
		}
		m.mode = timesModeClear
	case key.Matches(msg, m.keys.New):
		if len(m.rows) == 0 {
			return m, nil
		}
		m.mode = timesModeAdd
		m.err = nil
		m.addEvent = m.cursorEvent
		m.timeInput.SetValue("")
		m.timeInput.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Import):
		m.mode = timesModeImport
		m.err = nil
		m.pathInput.SetValue("")
		m.pathInput.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Refresh):
		m.status = ""
		return m, m.loadTimes()
	}
	return m, nil
}

// handleAddMode handles keys in the add form. Up and down pick the event,
// everything else edits the time.
func (m TimesModel) handleAddMode(msg tea.KeyMsg) (TimesModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		text := strings.TrimSpace(m.inputValue())
		if text == "" {
			m.err = service.ErrEmptyTime
			return m, nil
		}
		m.timeInput.Blur()
		m.pending = true
		return m, m.addTime(m.rows[m.addEvent].Name, text)
	case key.Matches(msg, m.keys.Back):
		m.mode = timesModeNormal
		m.err = nil
		m.timeInput.Blur()
		return m, nil
	case msg.Type == tea.KeyUp:
		if m.addEvent > 0 {
			m.addEvent--
		}
		return m, nil
	case msg.Type == tea.KeyDown:
		if m.addEvent < len(m.rows)-1 {
			m.addEvent++
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.timeInput, cmd = m.timeInput.Update(msg)
	return m, cmd
}

// handleImportMode handles keys in the import path prompt
func (m TimesModel) handleImportMode(msg tea.KeyMsg) (TimesModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		path := strings.TrimSpace(m.inputValue())
		if path == "" {
			return m, nil
		}
		m.pathInput.Blur()
		m.pending = true
		return m, m.importFile(path)
	case key.Matches(msg, m.keys.Back):
		m.mode = timesModeNormal
		m.err = nil
		m.pathInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)
	return m, cmd
}

// handleConfirmMode handles keys in the delete and clear confirmations
func (m TimesModel) handleConfirmMode(msg tea.KeyMsg) (TimesModel, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		// Selections are positional: capture them once and drop the marks.
		var cmd tea.Cmd
		if m.mode == timesModeDelete {
			cmd = m.deleteMarked()
			m.marked = make(map[catalog.Selection]bool)
		} else {
			cmd = m.clearEvent(m.cursorEvent, m.currentName())
		}
		m.mode = timesModeNormal
		m.pending = true
		m.status = "Saving..."
		return m, cmd
	case "n", "N", "esc":
		m.mode = timesModeNormal
	}
	return m, nil
}

// setRows replaces the table and keeps the cursor inside it
func (m *TimesModel) setRows(rows []view.TableRow, seeded bool) {
	m.rows = rows
	m.seeded = seeded
	if m.cursorEvent >= len(m.rows) {
		m.cursorEvent = max(0, len(m.rows)-1)
	}
	m.clampCursor()
}

func (m *TimesModel) clampCursor() {
	if n := len(m.currentCells()); m.cursorTime >= n {
		m.cursorTime = max(0, n-1)
	}
	m.offset = scrollOffset(m.offset, m.cursorEvent, m.visibleRows())
}

func (m TimesModel) currentCells() []view.Cell {
	if m.cursorEvent < len(m.rows) {
		return m.rows[m.cursorEvent].Cells
	}
	return nil
}

func (m TimesModel) currentName() string {
	if m.cursorEvent < len(m.rows) {
		return m.rows[m.cursorEvent].Name
	}
	return ""
}

// visibleRows is the number of table rows that fit the view
func (m TimesModel) visibleRows() int {
	if m.height == 0 {
		return 0
	}
	return max(3, m.height-6)
}

// markedCells returns the marked cells in table order
func (m TimesModel) markedCells() []view.Cell {
	var cells []view.Cell
	for _, r := range m.rows {
		for _, c := range r.Cells {
			if m.marked[catalog.Selection{EventIndex: c.EventIndex, TimeIndex: c.TimeIndex}] {
				cells = append(cells, c)
			}
		}
	}
	return cells
}

// View implements tea.Model
func (m TimesModel) View() string {
	switch m.mode {
	case timesModeAdd:
		return m.renderAddForm()
	case timesModeImport:
		return m.renderImportForm()
	case timesModeDelete:
		return m.renderDeleteConfirm()
	case timesModeClear:
		return m.renderClearConfirm()
	}

	var b strings.Builder
	b.WriteString(m.styles.ViewTitle.Render("Times"))
	b.WriteString("\n")

	if m.loading {
		b.WriteString("Loading...")
		return b.String()
	}

	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	}

	if len(m.rows) == 0 {
		b.WriteString(m.styles.StatLabel.Render("No events"))
		b.WriteString("\n\n")
		b.WriteString(m.styles.StatLabel.Render("Press 'i' to import times"))
		return b.String()
	}

	b.WriteString(RenderTimesTable(m.rows, m.styles, TableRenderOptions{
		CursorEvent: m.cursorEvent,
		CursorTime:  m.cursorTime,
		Marked:      m.marked,
		Offset:      m.offset,
		Limit:       m.visibleRows(),
	}))

	b.WriteString(strings.Repeat("─", min(60, max(m.width, 20))))
	b.WriteString("\n")
	total := view.TimeCount(m.rows)
	b.WriteString(fmt.Sprintf("Total: %d %s across %d %s",
		total, pluralize("time", total),
		len(m.rows), pluralize("event", len(m.rows))))
	if len(m.marked) > 0 {
		b.WriteString(m.styles.CellMarked.UnsetStrikethrough().Render(fmt.Sprintf("  (%d marked)", len(m.marked))))
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Success.Render(m.status))
	} else if m.seeded {
		b.WriteString("\n")
		b.WriteString(m.styles.StatLabel.UnsetWidth().Render("Nothing saved yet. Press 'n' to add a time."))
	}

	return b.String()
}

// renderAddForm renders the add time form
func (m TimesModel) renderAddForm() string {
	var b strings.Builder
	b.WriteString(m.styles.ViewTitle.Render("Add Time"))
	b.WriteString("\n\n")

	b.WriteString(m.styles.StatLabel.Render("Event:"))
	b.WriteString("\n")
	b.WriteString(m.renderEventSelector())
	b.WriteString("\n")

	b.WriteString(m.styles.StatLabel.Render("▸ Time:"))
	b.WriteString("\n")
	b.WriteString(m.timeInput.View())
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(m.styles.Error.Render(m.formError()))
		b.WriteString("\n\n")
	} else if text := strings.TrimSpace(m.inputValue()); text != "" && !swimtime.Valid(text) {
		b.WriteString(m.styles.Warning.Render("Not in minutes.seconds.hundredths format; it will not be charted"))
		b.WriteString("\n\n")
	}

	b.WriteString(m.styles.StatLabel.UnsetWidth().Render("↑/↓ pick event, Enter to save, Esc to cancel"))
	return b.String()
}

// renderEventSelector shows a window of event names around the selection
func (m TimesModel) renderEventSelector() string {
	const window = 5
	start := max(0, min(m.addEvent-window/2, len(m.rows)-window))
	end := min(len(m.rows), start+window)

	var b strings.Builder
	for i := start; i < end; i++ {
		if i == m.addEvent {
			b.WriteString(m.styles.CellCursor.Render("▸ " + m.rows[i].Name))
		} else {
			b.WriteString("  " + m.styles.EventName.Render(m.rows[i].Name))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m TimesModel) formError() string {
	switch {
	case errors.Is(m.err, swimtime.ErrInvalidFormat):
		return "Invalid time: use minutes.seconds.hundredths, e.g. 1.05.32"
	case errors.Is(m.err, service.ErrEmptyTime):
		return "Time cannot be empty"
	}
	return fmt.Sprintf("Error: %v", m.err)
}

// renderImportForm renders the import path prompt
func (m TimesModel) renderImportForm() string {
	var b strings.Builder
	b.WriteString(m.styles.ViewTitle.Render("Import Times"))
	b.WriteString("\n\n")
	b.WriteString(m.styles.StatLabel.UnsetWidth().Render("Spreadsheet (.xlsx, .xlsm or .csv): event name in column A, time in column B"))
	b.WriteString("\n")
	b.WriteString(m.pathInput.View())
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	}
	b.WriteString(m.styles.StatLabel.UnsetWidth().Render("Enter to import, Esc to cancel"))
	return b.String()
}

// renderDeleteConfirm renders the delete confirmation dialog
func (m TimesModel) renderDeleteConfirm() string {
	var b strings.Builder
	b.WriteString(m.styles.ViewTitle.Render("Delete Times"))
	b.WriteString("\n\n")

	cells := m.markedCells()
	b.WriteString(m.styles.Warning.Render(fmt.Sprintf("Delete %d marked %s?", len(cells), pluralize("time", len(cells)))))
	b.WriteString("\n\n")
	for _, c := range cells {
		b.WriteString(fmt.Sprintf("  %s %s\n", m.rows[c.EventIndex].Name, cli.FormatCell(c)))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.StatLabel.UnsetWidth().Render("Press Y to confirm, N or Esc to cancel"))
	return b.String()
}

// renderClearConfirm renders the clear confirmation dialog
func (m TimesModel) renderClearConfirm() string {
	var b strings.Builder
	b.WriteString(m.styles.ViewTitle.Render("Clear Event"))
	b.WriteString("\n\n")

	n := len(m.currentCells())
	b.WriteString(m.styles.Warning.Render(fmt.Sprintf("Clear %d %s from %s?", n, pluralize("time", n), m.currentName())))
	b.WriteString("\n\n")
	b.WriteString(m.styles.StatLabel.UnsetWidth().Render("Press Y to confirm, N or Esc to cancel"))
	return b.String()
}

// SetSize sets the view dimensions
func (m *TimesModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.offset = scrollOffset(m.offset, m.cursorEvent, m.visibleRows())
}

// IsInputMode returns true when the view is capturing keyboard input
func (m TimesModel) IsInputMode() bool {
	return m.mode == timesModeAdd || m.mode == timesModeImport
}

// inputValue returns the text of the open add or import form
func (m TimesModel) inputValue() string {
	switch m.mode {
	case timesModeAdd:
		return m.timeInput.Value()
	case timesModeImport:
		return m.pathInput.Value()
	}
	return ""
}

// Marked returns the number of marked cells
func (m TimesModel) Marked() int {
	return len(m.marked)
}

// Cursor returns the cursor position as (event, time) indices. ok is false
// when the event under the cursor has no times.
func (m TimesModel) Cursor() (event, time int, ok bool) {
	return m.cursorEvent, m.cursorTime, m.cursorTime < len(m.currentCells())
}

// Pending reports whether a mutation is still running
func (m TimesModel) Pending() bool {
	return m.pending
}

func catalogChanged() tea.Msg {
	return ui.CatalogChangedMsg{}
}

// loadTimes creates a command to load the table
func (m TimesModel) loadTimes() tea.Cmd {
	return func() tea.Msg {
		rows, seeded, err := m.table()
		return timesLoadedMsg{rows: rows, seeded: seeded, err: err}
	}
}

func (m TimesModel) table() ([]view.TableRow, bool, error) {
	svc := m.services.Catalog
	if err := svc.Open(); err != nil {
		return nil, false, err
	}
	rows, err := svc.Table()
	if err != nil {
		return nil, false, err
	}
	return rows, svc.Seeded(), nil
}

// changed builds the message sent after a mutation. The table is reloaded
// even when the mutation failed: a failed save keeps the in-memory change.
func (m TimesModel) changed(status string, err error) tea.Msg {
	if err != nil && correctable(err) {
		return timesChangedMsg{err: err}
	}
	rows, seeded, loadErr := m.table()
	if err == nil {
		err = loadErr
	}
	return timesChangedMsg{rows: rows, seeded: seeded, status: status, err: err}
}

// correctable reports whether err came from user input that left the
// catalog untouched, so the form can stay open for another try.
func correctable(err error) bool {
	return errors.Is(err, swimtime.ErrInvalidFormat) ||
		errors.Is(err, service.ErrEmptyTime) ||
		errors.Is(err, catalog.ErrEventNotFound) ||
		errors.Is(err, importer.ErrUnsupportedFormat) ||
		errors.Is(err, fs.ErrNotExist)
}

// addTime creates a command to append a time to an event
func (m TimesModel) addTime(name, text string) tea.Cmd {
	return func() tea.Msg {
		err := m.services.Catalog.AddTime(name, text)
		return m.changed(fmt.Sprintf("Added %s to %s", text, name), err)
	}
}

// deleteMarked creates a command to delete every marked cell in one batch
func (m TimesModel) deleteMarked() tea.Cmd {
	sel := view.Selections(m.markedCells())
	return func() tea.Msg {
		removed, err := m.services.Catalog.DeleteSelected(sel)
		return m.changed(fmt.Sprintf("Deleted %d %s", removed, pluralize("time", removed)), err)
	}
}

// clearEvent creates a command to remove all times of an event
func (m TimesModel) clearEvent(index int, name string) tea.Cmd {
	return func() tea.Msg {
		err := m.services.Catalog.ClearEvent(index)
		return m.changed(fmt.Sprintf("Cleared %s", name), err)
	}
}

// importFile creates a command to import a spreadsheet
func (m TimesModel) importFile(path string) tea.Cmd {
	return func() tea.Msg {
		summary, err := m.services.Catalog.ImportFile(path)
		return m.changed(cli.FormatMergeSummary(summary), err)
	}
}
