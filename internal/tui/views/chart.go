package views

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/xolan/swimlog/internal/service"
	"github.com/xolan/swimlog/internal/tui/ui"
	"github.com/xolan/swimlog/internal/view"
)

// ChartModel is the model for the chart view
type ChartModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	// UI state
	width   int
	height  int
	chart   view.Chart
	loading bool
	err     error
	status  string
	output  string
}

// NewChartModel creates a new chart view model
func NewChartModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) ChartModel {
	return ChartModel{
		services: services,
		styles:   styles,
		keys:     keys,
		loading:  true,
	}
}

// seriesLoadedMsg is sent when the series are loaded
type seriesLoadedMsg struct {
	chart view.Chart
	err   error
}

// chartWrittenMsg is sent when the chart image has been written
type chartWrittenMsg struct {
	path string
	err  error
}

// Init implements tea.Model
func (m ChartModel) Init() tea.Cmd {
	return m.loadSeries()
}

// Update implements tea.Model
func (m ChartModel) Update(msg tea.Msg) (ChartModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Export):
			m.status = "Writing chart..."
			return m, m.writeChart()
		case key.Matches(msg, m.keys.Refresh):
			m.status = ""
			return m, m.loadSeries()
		}

	case seriesLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.chart = msg.chart
		}

	case chartWrittenMsg:
		m.err = nil
		m.status = ""
		switch {
		case errors.Is(msg.err, view.ErrNoData):
			m.status = "Nothing to chart yet"
		case msg.err != nil:
			m.err = msg.err
		default:
			m.status = "Chart written to " + msg.path
		}

	case ui.CatalogChangedMsg:
		return m, m.loadSeries()

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
	}

	return m, nil
}

// View implements tea.Model
func (m ChartModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Progress"))
	b.WriteString("\n")

	if m.loading {
		b.WriteString("Loading...")
		return b.String()
	}

	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	}

	labels := m.chart.Labels
	axis := fmt.Sprintf("X-axis: %d entries", len(labels))
	if len(labels) == 1 {
		axis = "X-axis: 1 entry"
	}
	if len(labels) > 0 {
		axis += fmt.Sprintf(" (%s - %s)", labels[0], labels[len(labels)-1])
	}
	b.WriteString(m.styles.StatLabel.UnsetWidth().Render(axis))
	b.WriteString("\n\n")

	nameWidth := 0
	for _, s := range m.chart.Series {
		nameWidth = max(nameWidth, len(s.Name))
	}

	for _, s := range m.chart.Series {
		b.WriteString(m.styles.EventName.Render(fmt.Sprintf("%-*s", nameWidth, s.Name)))
		b.WriteString("  ")
		b.WriteString(m.renderValues(s, len(labels)))
		b.WriteString("\n")
	}

	if m.chart.Empty() {
		b.WriteString("\n")
		b.WriteString(m.styles.Warning.Render("Nothing to chart: the x-axis follows the first event's times"))
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Success.Render(m.status))
	}

	return b.String()
}

// renderValues renders charted values; values past the x-axis are dimmed
// since the chart leaves them out.
func (m ChartModel) renderValues(s view.Series, axisLen int) string {
	if len(s.Values) == 0 {
		return m.styles.StatusHelp.Render("-")
	}
	parts := formatValues(s.Values)
	for i := range parts {
		if i < axisLen && s.Values[i].IsValid() {
			parts[i] = m.styles.SeriesValue.Render(parts[i])
		} else {
			parts[i] = m.styles.StatusHelp.Render(parts[i])
		}
	}
	return strings.Join(parts, "  ")
}

// SetSize sets the view dimensions
func (m *ChartModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// loadSeries creates a command to project the catalog into series
func (m ChartModel) loadSeries() tea.Cmd {
	return func() tea.Msg {
		if err := m.services.Catalog.Open(); err != nil {
			return seriesLoadedMsg{err: err}
		}
		c, err := m.services.Catalog.Series()
		return seriesLoadedMsg{chart: c, err: err}
	}
}

// SetOutput sets the file the x key writes. Empty uses the default chart
// name in the working directory.
func (m *ChartModel) SetOutput(path string) {
	m.output = path
}

// writeChart creates a command to write the chart image
func (m ChartModel) writeChart() tea.Cmd {
	output := m.output
	return func() tea.Msg {
		path, err := m.services.Chart.WriteFile(output)
		return chartWrittenMsg{path: path, err: err}
	}
}
