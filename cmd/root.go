package cmd

import (
	"github.com/spf13/cobra"
	"github.com/xolan/swimlog/internal/cli/handlers"
)

var rootCmd = &cobra.Command{
	Use:   "swimlog",
	Short: "Track swimming times across events",
	Long: `swimlog records your swimming times per event, charts your progress
and imports times from spreadsheets. Everything is stored locally.

Usage:
  swimlog                               List all events and their times
  swimlog add <event> <time>            Record a time (event by name or number)
  swimlog delete <e:t>...               Delete times by coordinate (e.g. 1:2)
  swimlog clear <event>                 Delete every time of an event
  swimlog import <file>                 Import times from .xlsx or .csv
  swimlog chart [-o file]               Write the progress chart (png or svg)
  swimlog series                        Print the chart data as text
  swimlog export json|csv|yaml          Export all events
  swimlog validate                      Check storage file health
  swimlog restore [n]                   Restore from backup (default: most recent)
  swimlog tui                           Launch the interactive terminal UI

Time format: minutes.seconds.hundredths
Examples: 1.05.32, 0.28.90, 17.45.00`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if CheckTUIFlag(cmd) {
			return
		}
		handlers.ListTimes(deps())
	},
}

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all events and their times",
	Long: `List every event with its recorded times in entry order.

Each time is shown with its [event:time] coordinate, which the delete
command accepts. Times that are not in minutes.seconds.hundredths format
are marked with "?" and are left out of the chart.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ListTimes(deps())
	},
}

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check storage file health",
	Long:  `Validate the storage file and report on its health status, including corrupted data and duplicate event names.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.Validate(deps())
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(validateCmd)
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(
		"swimlog version {{.Version}}\n" +
			"commit: " + commit + "\n" +
			"built: " + date + "\n",
	)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
