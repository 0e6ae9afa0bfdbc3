package cmd

import (
	"github.com/spf13/cobra"
	"github.com/xolan/swimlog/internal/cli/handlers"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display or manage configuration settings",
	Long: `Display the current effective configuration settings for swimlog.

Shows the configuration file location, whether it exists, and all current settings.
Configuration values are merged from the config file with sensible defaults.

By default, swimlog works without any configuration file. All settings have defaults:
  - theme: (default TUI theme)
  - strict_times: false
  - axis_mode: first
  - chart_format: png (1024x600)

Examples:

  Display current configuration:
    swimlog config                   Show all current settings
    swimlog config init              Write a commented sample config file

Configuration file location:
  ~/.config/swimlog/config.toml      Linux
  %APPDATA%\swimlog\config.toml      Windows`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ShowConfig(deps())
	},
}

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a sample config file",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.InitConfig(deps())
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
}
