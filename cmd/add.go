package cmd

import (
	"github.com/spf13/cobra"
	"github.com/xolan/swimlog/internal/cli/handlers"
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add <event> <time>",
	Short: "Record a time for an event",
	Long: `Record a time at the end of an event's list of times.

The event is given by its name or by its number in the list output.
Quote names that contain spaces.

Examples:
  swimlog add "100 free" 1.05.32
  swimlog add 2 1.04.90`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		handlers.AddTime(deps(), args[0], args[1])
	},
	ValidArgsFunction: completeEventNames,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

// completeEventNames completes the first argument with event names
func completeEventNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	d := deps()
	if d.Services == nil || d.Services.Catalog.Open() != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	events, err := d.Services.Catalog.Events()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	names := make([]string, 0, len(events))
	for _, e := range events {
		names = append(names, e.Name)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
