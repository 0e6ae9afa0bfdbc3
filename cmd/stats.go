package cmd

import (
	"github.com/spf13/cobra"
	"github.com/xolan/swimlog/internal/cli/handlers"
)

var rankFlag bool

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show personal bests and progress per event",
	Long: `Show summary statistics for your recorded times.

For each event with times this lists the number of times, the best
(lowest) time, the first and latest valid times, and the gain from the
first time to the best one. Times that are not in
minutes.seconds.hundredths format are counted but not used.

Examples:
  swimlog stats           Events in catalog order
  swimlog stats --rank    Events with the largest gain first`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ShowStats(deps(), rankFlag)
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVar(&rankFlag, "rank", false, "order events by gain instead of catalog order")
}
