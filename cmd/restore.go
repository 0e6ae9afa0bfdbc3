package cmd

import (
	"github.com/spf13/cobra"
	"github.com/xolan/swimlog/internal/cli/handlers"
)

// restoreCmd represents the restore command
var restoreCmd = &cobra.Command{
	Use:   "restore [backup_number]",
	Short: "Restore from a backup file",
	Long: `Restore the storage file from a backup.

A backup is taken before every save; the three most recent are kept.
By default, restores from the most recent backup (.bak.1).
Optionally specify a backup number to restore from (1-3).

Examples:
  swimlog restore       Restore from most recent backup
  swimlog restore 2     Restore from backup #2`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handlers.RestoreBackup(deps(), args)
	},
}

func init() {
	rootCmd.AddCommand(restoreCmd)
}
