package cmd

import (
	"github.com/spf13/cobra"
	"github.com/xolan/swimlog/internal/cli/handlers"
)

var yesFlag bool

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <event:time>...",
	Short: "Delete recorded times by coordinate",
	Long: `Delete one or more times in a single batch.

Coordinates are the [event:time] pairs shown by the list output, both
starting from 1. All selected times are removed together, so the order of
the arguments does not matter.
A confirmation prompt will be shown unless --yes is specified.

Example:
  swimlog delete 1:2
  swimlog delete 1:1 1:3 4:2 --yes`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handlers.DeleteTimes(deps(), args, yesFlag)
	},
}

// clearCmd represents the clear command
var clearCmd = &cobra.Command{
	Use:   "clear <event>",
	Short: "Delete every time of an event",
	Long: `Remove all recorded times of one event. The event itself stays in the list.

The event is given by its name or by its number in the list output.
A confirmation prompt will be shown unless --yes is specified.

Example:
  swimlog clear 3
  swimlog clear "200 free" --yes`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ClearEvent(deps(), args[0], yesFlag)
	},
	ValidArgsFunction: completeEventNames,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(clearCmd)
	deleteCmd.Flags().BoolVarP(&yesFlag, "yes", "y", false, "skip confirmation prompt")
	clearCmd.Flags().BoolVarP(&yesFlag, "yes", "y", false, "skip confirmation prompt")
}
