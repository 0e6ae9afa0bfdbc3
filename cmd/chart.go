package cmd

import (
	"github.com/spf13/cobra"
	"github.com/xolan/swimlog/internal/cli/handlers"
)

var chartOutput string

// chartCmd represents the chart command
var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Write the progress chart to an image",
	Long: `Render a line chart with one line per event to a PNG or SVG file.

The x-axis has one position per time of the first event ("Entry 1" to
"Entry N"); set axis_mode = "longest" in the config file to size it by the
event with the most times instead. Times that are not in
minutes.seconds.hundredths format are left out.

The image format follows the output file extension (.png or .svg) and
otherwise the chart_format setting.

Examples:
  swimlog chart                    Write swimlog-chart.png
  swimlog chart -o progress.svg    Write an SVG chart`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.WriteChart(deps(), chartOutput)
	},
}

// seriesCmd represents the series command
var seriesCmd = &cobra.Command{
	Use:   "series",
	Short: "Print the chart data as text",
	Long:  `Print each event's decoded times as they are charted. Times that cannot be charted are shown as --.--.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ShowSeries(deps())
	},
}

func init() {
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(seriesCmd)
	chartCmd.Flags().StringVarP(&chartOutput, "output", "o", "", "output file (.png or .svg)")
}
