package handlers

import (
	"fmt"
	"strings"

	"github.com/xolan/swimlog/internal/cli"
)

// ShowConfig displays the current configuration
func ShowConfig(deps *cli.Deps) {
	if deps.Services == nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to determine config file location")
		if deps.ServicesErr != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", deps.ServicesErr)
		}
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Check that your config file is valid TOML and your home directory is accessible")
		deps.Exit(1)
		return
	}

	cfg := deps.Services.Config.Get()
	path := deps.Services.Config.GetPath()

	_, _ = fmt.Fprintln(deps.Stdout, "Configuration:")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "Config file: %s\n", path)
	if deps.Services.Config.Exists() {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: File exists")
	} else {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: Using defaults (no config file)")
	}
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))

	theme := cfg.Theme
	if theme == "" {
		theme = "(default)"
	}
	_, _ = fmt.Fprintf(deps.Stdout, "theme:        %s\n", theme)
	_, _ = fmt.Fprintf(deps.Stdout, "strict_times: %t\n", cfg.StrictTimes)
	_, _ = fmt.Fprintf(deps.Stdout, "axis_mode:    %s\n", cfg.AxisMode)
	_, _ = fmt.Fprintf(deps.Stdout, "chart_format: %s\n", cfg.ChartFormat)
	_, _ = fmt.Fprintf(deps.Stdout, "chart_size:   %dx%d\n", cfg.ChartWidth, cfg.ChartHeight)
	_, _ = fmt.Fprintf(deps.Stdout, "chart_title:  %s\n", cfg.ChartTitle)
}

// InitConfig creates a sample config file
func InitConfig(deps *cli.Deps) {
	if deps.Services == nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to determine config file location")
		deps.Exit(1)
		return
	}

	err := deps.Services.Config.Init()
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}

	path := deps.Services.Config.GetPath()
	_, _ = fmt.Fprintf(deps.Stdout, "Created config file: %s\n", path)
	_, _ = fmt.Fprintln(deps.Stdout, "Edit this file to customize your settings.")
}
