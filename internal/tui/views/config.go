package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/xolan/swimlog/internal/config"
	"github.com/xolan/swimlog/internal/service"
	"github.com/xolan/swimlog/internal/tui/ui"
)

// ConfigModel is the model for the config view
type ConfigModel struct {
	services      *service.Services
	themeProvider *ui.ThemeProvider
	styles        ui.Styles
	keys          ui.KeyMap

	// UI state
	width     int
	height    int
	config    config.Config
	path      string
	exists    bool
	storage   string
	themeName string

	// Theme selector state
	selectingTheme bool
	themes         []string
	themeCursor    int
	themeOffset    int // For scrolling
}

// NewConfigModel creates a new config view model
func NewConfigModel(services *service.Services, themeProvider *ui.ThemeProvider, styles ui.Styles, keys ui.KeyMap) ConfigModel {
	m := ConfigModel{
		services:      services,
		themeProvider: themeProvider,
		styles:        styles,
		keys:          keys,
		themes:        themeProvider.AvailableThemes(),
		themeName:     themeProvider.CurrentName(),
	}
	m.resetThemeCursor()
	return m
}

// Init implements tea.Model
func (m ConfigModel) Init() tea.Cmd {
	return m.loadConfig()
}

// configLoadedMsg is sent when config is loaded
type configLoadedMsg struct {
	config  config.Config
	path    string
	exists  bool
	storage string
}

// maxVisibleThemes is the maximum number of themes to show at once
const maxVisibleThemes = 10

// Update implements tea.Model
func (m ConfigModel) Update(msg tea.Msg) (ConfigModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.selectingTheme {
			return m.handleThemeSelection(msg)
		}

		if key.Matches(msg, m.keys.Select) || key.Matches(msg, m.keys.Theme) {
			m.selectingTheme = true
			m.updateThemeOffset()
			return m, nil
		}

	case configLoadedMsg:
		m.config = msg.config
		m.path = msg.path
		m.exists = msg.exists
		m.storage = msg.storage
		m.themeName = m.themeProvider.CurrentName()
		m.resetThemeCursor()

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		m.themeName = msg.ThemeName
		m.config.Theme = msg.ThemeName
		return m, nil
	}

	return m, nil
}

// handleThemeSelection handles keys when theme selector is open
func (m ConfigModel) handleThemeSelection(msg tea.KeyMsg) (ConfigModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.themeCursor > 0 {
			m.themeCursor--
			m.updateThemeOffset()
		}
	case key.Matches(msg, m.keys.Down):
		if m.themeCursor < len(m.themes)-1 {
			m.themeCursor++
			m.updateThemeOffset()
		}
	case key.Matches(msg, m.keys.Select):
		m.selectingTheme = false
		if len(m.themes) == 0 {
			return m, nil
		}
		return m, m.requestThemeChange(m.themes[m.themeCursor])
	case key.Matches(msg, m.keys.Back):
		m.selectingTheme = false
		m.resetThemeCursor()
	}
	return m, nil
}

// resetThemeCursor moves the cursor to the active theme
func (m *ConfigModel) resetThemeCursor() {
	for i, t := range m.themes {
		if t == m.themeName {
			m.themeCursor = i
			break
		}
	}
	m.updateThemeOffset()
}

// updateThemeOffset adjusts scroll offset to keep cursor visible
func (m *ConfigModel) updateThemeOffset() {
	m.themeOffset = scrollOffset(m.themeOffset, m.themeCursor, maxVisibleThemes)
}

// requestThemeChange creates a command to request a theme change by name
func (m ConfigModel) requestThemeChange(themeName string) tea.Cmd {
	return func() tea.Msg {
		return ui.ThemeChangeRequestMsg{ThemeName: themeName}
	}
}

// View implements tea.Model
func (m ConfigModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Configuration"))
	b.WriteString("\n\n")

	b.WriteString(m.renderConfigLine("Config file", m.path))
	b.WriteString(m.styles.StatLabel.Render("Status:"))
	b.WriteString(" ")
	if m.exists {
		b.WriteString(m.styles.Success.Render("File exists"))
	} else {
		b.WriteString(m.styles.Warning.Render("Using defaults (no config file)"))
	}
	b.WriteString("\n")
	if m.storage != "" {
		b.WriteString(m.renderConfigLine("Storage file", m.storage))
	}
	b.WriteString("\n")

	b.WriteString(strings.Repeat("─", min(50, max(m.width, 20))))
	b.WriteString("\n\n")

	b.WriteString(m.renderConfigLine("strict_times", fmt.Sprint(m.config.StrictTimes)))
	b.WriteString(m.renderConfigLine("axis_mode", m.config.AxisMode))
	b.WriteString(m.renderConfigLine("chart_format", m.config.ChartFormat))
	b.WriteString(m.renderConfigLine("chart_size", fmt.Sprintf("%dx%d", m.config.ChartWidth, m.config.ChartHeight)))
	b.WriteString(m.renderConfigLine("chart_title", m.config.ChartTitle))

	if m.selectingTheme {
		b.WriteString(m.renderThemeSelector())
	} else {
		b.WriteString(m.renderConfigLine("theme", m.themeName))
		b.WriteString("\n")
		b.WriteString(m.styles.StatLabel.UnsetWidth().Render("Press Enter or 't' to change theme"))
	}

	return b.String()
}

// renderThemeSelector renders the theme selection list
func (m ConfigModel) renderThemeSelector() string {
	var b strings.Builder

	b.WriteString(m.styles.StatLabel.Render("theme:"))
	b.WriteString(" ")
	b.WriteString(m.styles.StatValue.Render("Select a theme"))
	b.WriteString("\n\n")

	endIdx := min(m.themeOffset+maxVisibleThemes, len(m.themes))

	if m.themeOffset > 0 {
		b.WriteString(m.styles.StatusHelp.Render("  ↑ more themes above"))
		b.WriteString("\n")
	}

	for i := m.themeOffset; i < endIdx; i++ {
		theme := m.themes[i]
		current := ""
		if theme == m.themeName {
			current = m.styles.Success.Render(" (current)")
		}
		if i == m.themeCursor {
			b.WriteString(m.styles.CellCursor.Render("▸ " + theme))
		} else {
			b.WriteString("  " + m.styles.StatValue.Render(theme))
		}
		b.WriteString(current)
		b.WriteString("\n")
	}

	if endIdx < len(m.themes) {
		b.WriteString(m.styles.StatusHelp.Render("  ↓ more themes below"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.StatusHelp.Render("↑/↓ navigate  Enter select  Esc cancel"))

	return b.String()
}

// SetSize sets the view dimensions
func (m *ConfigModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// IsSelecting reports whether the theme selector is open
func (m ConfigModel) IsSelecting() bool {
	return m.selectingTheme
}

// loadConfig creates a command to load config
func (m ConfigModel) loadConfig() tea.Cmd {
	return func() tea.Msg {
		return configLoadedMsg{
			config:  m.services.Config.Get(),
			path:    m.services.Config.GetPath(),
			exists:  m.services.Config.Exists(),
			storage: m.services.Catalog.Location(),
		}
	}
}

func (m ConfigModel) renderConfigLine(key, value string) string {
	return m.styles.StatLabel.Render(key+":") + " " + m.styles.StatValue.Render(value) + "\n"
}
