package ui

import (
	"github.com/charmbracelet/lipgloss"
	tint "github.com/lrstanley/bubbletint"
)

// Styles contains all the styles used in the TUI
type Styles struct {
	// Base styles
	App lipgloss.Style

	// Tab bar
	TabBar      lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	// Content area
	Content   lipgloss.Style
	ViewTitle lipgloss.Style

	// Status bar
	StatusBar   lipgloss.Style
	StatusKey   lipgloss.Style
	StatusValue lipgloss.Style
	StatusHelp  lipgloss.Style

	// Times table
	EventIndex   lipgloss.Style
	EventName    lipgloss.Style
	EventCurrent lipgloss.Style
	Cell         lipgloss.Style
	CellCursor   lipgloss.Style
	CellMarked   lipgloss.Style
	CellInvalid  lipgloss.Style

	// Chart listing
	SeriesValue lipgloss.Style

	// Stats
	StatLabel lipgloss.Style
	StatValue lipgloss.Style

	// Help
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	// Input
	Input        lipgloss.Style
	InputFocused lipgloss.Style

	// Dialog
	Dialog      lipgloss.Style
	DialogTitle lipgloss.Style

	// Errors and warnings
	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style
}

// palette maps semantic roles to colors.
type palette struct {
	primary    lipgloss.TerminalColor
	secondary  lipgloss.TerminalColor
	accent     lipgloss.TerminalColor
	muted      lipgloss.TerminalColor
	success    lipgloss.TerminalColor
	warning    lipgloss.TerminalColor
	errorColor lipgloss.TerminalColor
	fg         lipgloss.TerminalColor
	bg         lipgloss.TerminalColor
	highlight  lipgloss.TerminalColor
}

// DefaultStyles returns the styles for the 256-color fallback palette
func DefaultStyles() Styles {
	return newStyles(palette{
		primary:    lipgloss.Color("99"),  // Purple
		secondary:  lipgloss.Color("39"),  // Cyan
		accent:     lipgloss.Color("212"), // Pink
		muted:      lipgloss.Color("240"), // Gray
		success:    lipgloss.Color("82"),  // Green
		warning:    lipgloss.Color("214"), // Orange
		errorColor: lipgloss.Color("196"), // Red
		fg:         lipgloss.Color("252"),
		bg:         lipgloss.Color("236"),
		highlight:  lipgloss.Color("237"),
	})
}

// NewStylesFromRegistry creates a Styles struct using colors from a bubbletint registry.
// This maps theme colors to semantic UI elements:
// - Primary: Purple (tabs, titles, event names)
// - Secondary: Cyan (times, keys)
// - Accent: BrightPurple (marked cells, chart values)
// - Muted: BrightBlack (inactive elements, labels, the cursor background)
// - Success/Warning/Error: Green/Yellow/Red
func NewStylesFromRegistry(r *tint.Registry) Styles {
	return newStyles(palette{
		primary:    r.Purple(),
		secondary:  r.Cyan(),
		accent:     r.BrightPurple(),
		muted:      r.BrightBlack(),
		success:    r.Green(),
		warning:    r.Yellow(),
		errorColor: r.Red(),
		fg:         r.Fg(),
		bg:         r.Bg(),
		highlight:  r.BrightBlack(),
	})
}

func newStyles(p palette) Styles {
	return Styles{
		// Base styles
		App: lipgloss.NewStyle().Padding(1, 2),

		// Tab bar
		TabBar: lipgloss.NewStyle().
			MarginBottom(1).
			BorderBottom(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(p.muted),
		TabActive: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			Padding(0, 2),
		TabInactive: lipgloss.NewStyle().
			Foreground(p.muted).
			Padding(0, 2),

		// Content area
		Content: lipgloss.NewStyle().
			Padding(0, 1),
		ViewTitle: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			MarginBottom(1),

		// Status bar
		StatusBar: lipgloss.NewStyle().
			Foreground(p.fg).
			Background(p.bg).
			Padding(0, 1),
		StatusKey: lipgloss.NewStyle().
			Foreground(p.secondary).
			Bold(true),
		StatusValue: lipgloss.NewStyle().
			Foreground(p.fg),
		StatusHelp: lipgloss.NewStyle().
			Foreground(p.muted),

		// Times table
		EventIndex: lipgloss.NewStyle().
			Foreground(p.muted),
		EventName: lipgloss.NewStyle().
			Foreground(p.primary),
		EventCurrent: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true),
		Cell: lipgloss.NewStyle().
			Foreground(p.secondary),
		CellCursor: lipgloss.NewStyle().
			Background(p.highlight).
			Bold(true),
		CellMarked: lipgloss.NewStyle().
			Foreground(p.accent).
			Strikethrough(true),
		CellInvalid: lipgloss.NewStyle().
			Foreground(p.warning),

		// Chart listing
		SeriesValue: lipgloss.NewStyle().
			Foreground(p.accent),

		// Stats
		StatLabel: lipgloss.NewStyle().
			Foreground(p.muted).
			Width(20),
		StatValue: lipgloss.NewStyle().
			Foreground(p.fg).
			Bold(true),

		// Help
		HelpKey: lipgloss.NewStyle().
			Foreground(p.secondary).
			Bold(true),
		HelpDesc: lipgloss.NewStyle().
			Foreground(p.muted),

		// Input
		Input: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.muted).
			Padding(0, 1),
		InputFocused: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.primary).
			Padding(0, 1),

		// Dialog
		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.primary).
			Padding(1, 2).
			Width(50),
		DialogTitle: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			MarginBottom(1),

		// Errors and warnings
		Error: lipgloss.NewStyle().
			Foreground(p.errorColor),
		Warning: lipgloss.NewStyle().
			Foreground(p.warning),
		Success: lipgloss.NewStyle().
			Foreground(p.success),
	}
}
