// Package tui provides the Terminal User Interface for swimlog.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/xolan/swimlog/internal/service"
	"github.com/xolan/swimlog/internal/tui/ui"
	"github.com/xolan/swimlog/internal/tui/views"
)

// Tab represents a view tab
type Tab int

const (
	TabTimes Tab = iota
	TabChart
	TabStats
	TabConfig
)

var tabNames = []string{"Times", "Chart", "Stats", "Config"}

// Model is the root TUI model
type Model struct {
	// Services
	services *service.Services

	// UI state
	activeTab Tab
	width     int
	height    int
	showHelp  bool
	notice    string

	// View models
	timesView  views.TimesModel
	chartView  views.ChartModel
	statsView  views.StatsModel
	configView views.ConfigModel

	// Theme and styles
	themeProvider *ui.ThemeProvider
	styles        ui.Styles
	keys          ui.KeyMap
}

// themeSavedMsg is sent after the theme was written to the config file
type themeSavedMsg struct {
	err error
}

// New creates a new TUI model
func New(services *service.Services) Model {
	themeName := services.Config.Get().Theme
	themeProvider := ui.NewThemeProvider(themeName)
	styles := themeProvider.Styles()
	keys := ui.DefaultKeyMap()

	var notice string
	if themeName != "" && !themeProvider.Has(themeName) {
		notice = fmt.Sprintf("Unknown theme %q, using %s", themeName, themeProvider.CurrentName())
	}

	return Model{
		services:      services,
		activeTab:     TabTimes,
		notice:        notice,
		themeProvider: themeProvider,
		styles:        styles,
		keys:          keys,
		timesView:     views.NewTimesModel(services, styles, keys),
		chartView:     views.NewChartModel(services, styles, keys),
		statsView:     views.NewStatsModel(services, styles, keys),
		configView:    views.NewConfigModel(services, themeProvider, styles, keys),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.timesView.Init(),
		m.chartView.Init(),
		m.statsView.Init(),
	)
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Text inputs (add time, import path) receive every key except
		// ctrl+c, so typed digits and letters never switch tabs or quit.
		capturingKeys := m.isCapturingKeys()

		switch {
		case msg.String() == "ctrl+c":
			return m, tea.Quit

		case key.Matches(msg, m.keys.Quit) && !capturingKeys:
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help) && !capturingKeys:
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, m.keys.NextTab) && !capturingKeys:
			return m.switchTab(Tab((int(m.activeTab) + 1) % len(tabNames)))

		case key.Matches(msg, m.keys.PrevTab) && !capturingKeys:
			return m.switchTab(Tab((int(m.activeTab) - 1 + len(tabNames)) % len(tabNames)))

		case key.Matches(msg, m.keys.Tab1) && !capturingKeys:
			return m.switchTab(TabTimes)

		case key.Matches(msg, m.keys.Tab2) && !capturingKeys:
			return m.switchTab(TabChart)

		case key.Matches(msg, m.keys.Tab3) && !capturingKeys:
			return m.switchTab(TabStats)

		case key.Matches(msg, m.keys.Tab4) && !capturingKeys:
			return m.switchTab(TabConfig)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		contentHeight := m.height - 4 // Account for tabs and status bar
		m.timesView.SetSize(m.width, contentHeight)
		m.chartView.SetSize(m.width, contentHeight)
		m.statsView.SetSize(m.width, contentHeight)
		m.configView.SetSize(m.width, contentHeight)
		return m, nil

	case ui.ThemeChangeRequestMsg:
		m.themeProvider.SetTheme(msg.ThemeName)
		newTheme := m.themeProvider.CurrentName()
		m.styles = m.themeProvider.Styles()

		themeMsg := ui.ThemeChangedMsg{
			ThemeName: newTheme,
			Styles:    m.styles,
		}
		m.timesView, _ = m.timesView.Update(themeMsg)
		m.chartView, _ = m.chartView.Update(themeMsg)
		m.statsView, _ = m.statsView.Update(themeMsg)
		m.configView, _ = m.configView.Update(themeMsg)

		return m, m.saveThemeConfig(newTheme)

	case themeSavedMsg:
		m.notice = ""
		if msg.err != nil {
			m.notice = fmt.Sprintf("Theme not saved: %v", msg.err)
		}
		return m, nil
	}

	// Keys go to the active view only
	if _, ok := msg.(tea.KeyMsg); ok {
		switch m.activeTab {
		case TabTimes:
			m.timesView, cmd = m.timesView.Update(msg)
		case TabChart:
			m.chartView, cmd = m.chartView.Update(msg)
		case TabStats:
			m.statsView, cmd = m.statsView.Update(msg)
		case TabConfig:
			m.configView, cmd = m.configView.Update(msg)
		}
		return m, cmd
	}

	// Command results reach every view, so a view keeps up with catalog
	// changes made while another tab is shown
	var cmds []tea.Cmd
	m.timesView, cmd = m.timesView.Update(msg)
	cmds = append(cmds, cmd)
	m.chartView, cmd = m.chartView.Update(msg)
	cmds = append(cmds, cmd)
	m.statsView, cmd = m.statsView.Update(msg)
	cmds = append(cmds, cmd)
	m.configView, cmd = m.configView.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// switchTab activates tab and reloads it
func (m Model) switchTab(tab Tab) (tea.Model, tea.Cmd) {
	m.activeTab = tab
	return m, m.initCurrentView()
}

// View implements tea.Model
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	switch m.activeTab {
	case TabTimes:
		b.WriteString(m.timesView.View())
	case TabChart:
		b.WriteString(m.chartView.View())
	case TabStats:
		b.WriteString(m.statsView.View())
	case TabConfig:
		b.WriteString(m.configView.View())
	}

	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(m.styles.Warning.Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString(m.renderStatusBar())

	if m.showHelp {
		return m.renderHelpOverlay()
	}

	return m.styles.App.Render(b.String())
}

// renderTabs renders the tab bar
func (m Model) renderTabs() string {
	var tabs []string
	for i, name := range tabNames {
		if Tab(i) == m.activeTab {
			tabs = append(tabs, m.styles.TabActive.Render(name))
		} else {
			tabs = append(tabs, m.styles.TabInactive.Render(name))
		}
	}
	return m.styles.TabBar.Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

// renderStatusBar renders the status bar at the bottom
func (m Model) renderStatusBar() string {
	var parts []string

	if m.isCapturingKeys() {
		parts = append(parts, m.renderKeyHelp("Enter", "save"))
		parts = append(parts, m.renderKeyHelp("Esc", "cancel"))
		if m.activeTab == TabTimes {
			parts = append(parts, m.renderKeyHelp("↑/↓", "event"))
		}
	} else {
		switch m.activeTab {
		case TabTimes:
			parts = append(parts, m.renderTimesPosition())
			parts = append(parts, m.renderKeyHelp("n", "add"))
			parts = append(parts, m.renderKeyHelp("space", "mark"))
			parts = append(parts, m.renderKeyHelp("d", "delete"))
			parts = append(parts, m.renderKeyHelp("c", "clear"))
			parts = append(parts, m.renderKeyHelp("i", "import"))
		case TabChart:
			parts = append(parts, m.renderKeyHelp("x", "write image"))
			parts = append(parts, m.renderKeyHelp("r", "refresh"))
		case TabStats:
			parts = append(parts, m.renderKeyHelp("s", "sort"))
			parts = append(parts, m.renderKeyHelp("r", "refresh"))
		case TabConfig:
			parts = append(parts, m.renderKeyHelp("t", "themes"))
		}

		parts = append(parts, m.renderKeyHelp("1-4", "views"))
		parts = append(parts, m.renderKeyHelp("?", "help"))
		parts = append(parts, m.renderKeyHelp("q", "quit"))
	}

	content := strings.Join(parts, "  ")

	padding := m.width - lipgloss.Width(content)
	if padding > 0 {
		content += strings.Repeat(" ", padding)
	}

	return m.styles.StatusBar.Render(content)
}

// renderTimesPosition renders the cursor as the 1-based "event:time"
// coordinate the delete command takes, or "saving" while a change runs.
func (m Model) renderTimesPosition() string {
	if m.timesView.Pending() {
		return m.styles.StatusValue.Render("saving")
	}
	event, time, ok := m.timesView.Cursor()
	pos := fmt.Sprintf("%d:-", event+1)
	if ok {
		pos = fmt.Sprintf("%d:%d", event+1, time+1)
	}
	if n := m.timesView.Marked(); n > 0 {
		pos += fmt.Sprintf(" (%d marked)", n)
	}
	return m.styles.StatusValue.Render(pos)
}

// renderKeyHelp renders a single key help item
func (m Model) renderKeyHelp(key, desc string) string {
	return fmt.Sprintf("%s %s",
		m.styles.StatusKey.Render(key),
		m.styles.StatusHelp.Render(desc))
}

// isCapturingKeys checks if the current view is capturing keyboard input
func (m Model) isCapturingKeys() bool {
	return m.activeTab == TabTimes && m.timesView.IsInputMode()
}

// initCurrentView initializes the current view when switching tabs
func (m Model) initCurrentView() tea.Cmd {
	switch m.activeTab {
	case TabTimes:
		return m.timesView.Init()
	case TabChart:
		return m.chartView.Init()
	case TabStats:
		return m.statsView.Init()
	case TabConfig:
		return m.configView.Init()
	}
	return nil
}

// saveThemeConfig saves the theme to the config file
func (m Model) saveThemeConfig(themeName string) tea.Cmd {
	return func() tea.Msg {
		return themeSavedMsg{err: m.services.Config.SetTheme(themeName)}
	}
}

// renderHelpOverlay renders the keyboard shortcuts for the active view
func (m Model) renderHelpOverlay() string {
	var help strings.Builder

	help.WriteString(m.styles.DialogTitle.Render("Keyboard Shortcuts"))
	help.WriteString("\n")

	section := func(title string, lines ...[2]string) {
		help.WriteString(m.styles.StatLabel.Render(title))
		help.WriteString("\n")
		for _, l := range lines {
			help.WriteString(fmt.Sprintf("  %s %s\n",
				m.styles.HelpKey.Render(fmt.Sprintf("%-10s", l[0])),
				m.styles.HelpDesc.Render(l[1])))
		}
		help.WriteString("\n")
	}

	section("Global:",
		[2]string{"Tab/1-4", "Switch views"},
		[2]string{"?", "Toggle help"},
		[2]string{"q", "Quit"},
	)

	switch m.activeTab {
	case TabTimes:
		section("Times:",
			[2]string{"j/k", "Previous/next event"},
			[2]string{"h/l", "Previous/next time"},
			[2]string{"space", "Mark time for deletion"},
			[2]string{"d", "Delete marked times"},
			[2]string{"c", "Clear current event"},
			[2]string{"n", "Add a time"},
			[2]string{"i", "Import a spreadsheet"},
			[2]string{"r", "Refresh"},
		)
	case TabChart:
		section("Chart:",
			[2]string{"x", "Write chart image"},
			[2]string{"r", "Refresh"},
		)
	case TabStats:
		section("Stats:",
			[2]string{"s", "Toggle catalog order / largest gain first"},
			[2]string{"r", "Refresh"},
		)
	case TabConfig:
		section("Config:",
			[2]string{"t/Enter", "Open theme selector"},
			[2]string{"j/k", "Navigate themes"},
			[2]string{"Esc", "Cancel"},
		)
	}

	help.WriteString(m.styles.StatusHelp.Render("Press ? to close"))

	return m.styles.App.Render(m.styles.Dialog.Render(help.String()))
}

// ActiveTab returns the active tab
func (m Model) ActiveTab() Tab {
	return m.activeTab
}

// Run starts the TUI application
func Run(services *service.Services) error {
	model := New(services)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
