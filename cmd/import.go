package cmd

import (
	"github.com/spf13/cobra"
	"github.com/xolan/swimlog/internal/cli/handlers"
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import times from a spreadsheet",
	Long: `Import times from an Excel workbook (.xlsx, .xlsm) or a CSV file.

The first sheet is read. The first row is a header and is skipped; every
other row holds an event name in the first column and a time in the second.
Rows missing either are skipped. Times for unknown events create the event
at the end of the list.

Example:
  swimlog import season.xlsx
  swimlog export csv > times.csv && swimlog import times.csv`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ImportFile(deps(), args[0])
	},
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"xlsx", "xlsm", "csv"}, cobra.ShellCompDirectiveFilterFileExt
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
