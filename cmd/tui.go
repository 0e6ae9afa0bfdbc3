package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xolan/swimlog/internal/tui"
)

// runTUIFunc launches the terminal UI. Tests replace it.
var runTUIFunc = tui.Run

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal UI",
	Long: `Launch the interactive Terminal User Interface for swimlog.

Views available:
  - Times: Browse the table, add, delete, clear and import times
  - Chart: See every event's charted series and write the chart image
  - Stats: Personal bests and gain per event
  - Config: View configuration and pick a theme

Keyboard shortcuts:
  - Tab/Shift+Tab: Navigate between views
  - 1-4: Jump to specific view
  - arrows or h/j/k/l: Move the cell cursor
  - space: Mark a time for deletion, d: delete marked times
  - n: Add a time, c: Clear an event, i: Import a file
  - ?: Show help
  - q: Quit`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runTUI()
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)

	// Add --tui flag to root command for quick access
	rootCmd.PersistentFlags().Bool("tui", false, "Launch interactive terminal UI")
}

// runTUI runs the TUI on the configured services
func runTUI() {
	d := deps()
	if d.Services == nil {
		_, _ = fmt.Fprintf(d.Stderr, "Error initializing services: %v\n", d.ServicesErr)
		d.Exit(1)
		return
	}

	if err := runTUIFunc(d.Services); err != nil {
		_, _ = fmt.Fprintf(d.Stderr, "Error running TUI: %v\n", err)
		d.Exit(1)
	}
}

// CheckTUIFlag checks if the --tui flag is set and runs the TUI if so.
// Returns true if the TUI was launched, false otherwise.
func CheckTUIFlag(cmd *cobra.Command) bool {
	tuiFlag, _ := cmd.Root().PersistentFlags().GetBool("tui")
	if tuiFlag {
		runTUI()
		return true
	}
	return false
}
