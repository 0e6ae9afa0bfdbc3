package cmd

import (
	"github.com/spf13/cobra"
	"github.com/xolan/swimlog/internal/cli/handlers"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <json|csv|yaml>",
	Short: "Export all events to various formats",
	Long: `Export every event and its times for backup, migration or analysis.

Available formats:
  json    The same layout as the storage file
  csv     One event,time row per time, importable with 'swimlog import'
  yaml    Events as a YAML list

Examples:
  swimlog export json > backup.json
  swimlog export csv > times.csv
  swimlog export yaml`,
	ValidArgs: []string{"json", "csv", "yaml"},
	Args:      cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handlers.Export(deps(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
