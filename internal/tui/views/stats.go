package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/xolan/swimlog/internal/service"
	"github.com/xolan/swimlog/internal/swimtime"
	"github.com/xolan/swimlog/internal/tui/ui"
)

// StatsModel is the model for the stats view
type StatsModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	// UI state
	width   int
	height  int
	result  *service.StatsResult
	loading bool
	err     error
	ranked  bool // true = largest gain first, false = catalog order
}

// NewStatsModel creates a new stats view model
func NewStatsModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) StatsModel {
	return StatsModel{
		services: services,
		styles:   styles,
		keys:     keys,
		loading:  true,
	}
}

// statsLoadedMsg is sent when stats are loaded
type statsLoadedMsg struct {
	result *service.StatsResult
	err    error
}

// Init implements tea.Model
func (m StatsModel) Init() tea.Cmd {
	return m.loadStats()
}

// Update implements tea.Model
func (m StatsModel) Update(msg tea.Msg) (StatsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Rank):
			m.ranked = !m.ranked
			return m, m.loadStats()
		case key.Matches(msg, m.keys.Refresh):
			return m, m.loadStats()
		}

	case statsLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.result = msg.result
		}

	case ui.CatalogChangedMsg:
		return m, m.loadStats()

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
	}

	return m, nil
}

// View implements tea.Model
func (m StatsModel) View() string {
	var b strings.Builder

	title := "Personal Bests"
	if m.ranked {
		title = "Personal Bests (by gain)"
	}
	b.WriteString(m.styles.ViewTitle.Render(title))
	b.WriteString("\n")

	if m.loading {
		b.WriteString("Loading...")
		return b.String()
	}

	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		return b.String()
	}

	if m.result == nil {
		b.WriteString("No data")
		return b.String()
	}

	s := m.result.Statistics
	b.WriteString(m.renderStatLine("Events:", fmt.Sprintf("%d (%d with times)", s.EventCount, s.EventsWithTimes)))
	b.WriteString(m.renderStatLine("Total times:", fmt.Sprintf("%d %s", s.TimeCount, pluralize("time", s.TimeCount))))
	if s.InvalidCount > 0 {
		b.WriteString(m.renderStatLine("Not charted:", fmt.Sprintf("%d %s", s.InvalidCount, pluralize("time", s.InvalidCount))))
	}

	if len(m.result.Events) == 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.StatusHelp.Render("No times recorded yet"))
		return b.String()
	}

	nameWidth := 0
	for _, e := range m.result.Events {
		nameWidth = max(nameWidth, len(e.Event))
	}

	b.WriteString("\n")
	b.WriteString(m.styles.StatusHelp.Render(fmt.Sprintf("%-*s  %9s  %9s  %9s", nameWidth, "", "Best", "Latest", "Gain")))
	b.WriteString("\n")
	for _, e := range m.result.Events {
		b.WriteString(m.styles.EventName.Render(fmt.Sprintf("%-*s", nameWidth, e.Event)))
		b.WriteString("  ")
		b.WriteString(m.styles.SeriesValue.Render(fmt.Sprintf("%9s", swimtime.Format(e.Best))))
		b.WriteString("  ")
		b.WriteString(fmt.Sprintf("%9s  %9s", swimtime.Format(e.Latest), swimtime.Format(e.Improvement())))
		b.WriteString(m.styles.StatusHelp.Render(fmt.Sprintf("  (%d %s)", e.TimeCount, pluralize("time", e.TimeCount))))
		b.WriteString("\n")
	}

	return b.String()
}

func (m StatsModel) renderStatLine(label, value string) string {
	return m.styles.StatLabel.Render(label) + m.styles.StatValue.Render(value) + "\n"
}

// SetSize sets the view dimensions
func (m *StatsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// loadStats creates a command to load stats
func (m StatsModel) loadStats() tea.Cmd {
	ranked := m.ranked
	return func() tea.Msg {
		if err := m.services.Catalog.Open(); err != nil {
			return statsLoadedMsg{err: err}
		}
		result, err := m.services.Stats.Summary(ranked)
		return statsLoadedMsg{result: result, err: err}
	}
}
