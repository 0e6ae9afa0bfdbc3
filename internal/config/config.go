// Package config loads the swimlog TOML configuration file.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/xolan/swimlog/internal/osutil"
)

const (
	// ConfigFile is the name of the TOML configuration file
	ConfigFile = "config.toml"
)

// Axis modes for chart labels
const (
	// AxisFirst labels the x-axis from the first event's entry count
	AxisFirst = "first"
	// AxisLongest labels the x-axis from the event with the most entries
	AxisLongest = "longest"
)

// Chart image formats
const (
	ChartPNG = "png"
	ChartSVG = "svg"
)

const (
	minChartSize = 200
	maxChartSize = 8000
)

// Config represents the application configuration
type Config struct {
	// Theme is the bubbletint theme ID used by the TUI
	Theme string `toml:"theme"`
	// StrictTimes rejects manually added times that are not minutes.seconds.hundredths
	StrictTimes bool `toml:"strict_times"`
	// AxisMode selects how chart x-axis labels are derived ("first" or "longest")
	AxisMode string `toml:"axis_mode"`
	// ChartFormat is the default chart image format ("png" or "svg")
	ChartFormat string `toml:"chart_format"`
	// ChartWidth and ChartHeight are the chart image size in pixels
	ChartWidth  int `toml:"chart_width"`
	ChartHeight int `toml:"chart_height"`
	// ChartTitle is drawn above the chart
	ChartTitle string `toml:"chart_title"`
}

// DefaultConfig returns a Config matching the behavior without a config file.
// - theme: "" (TUI default theme)
// - strict_times: false (malformed times are stored and charted as gaps)
// - axis_mode: "first"
// - chart_format: "png", 1024x600
func DefaultConfig() Config {
	return Config{
		Theme:       "",
		StrictTimes: false,
		AxisMode:    AxisFirst,
		ChartFormat: ChartPNG,
		ChartWidth:  1024,
		ChartHeight: 600,
		ChartTitle:  "Swimming Time Progress",
	}
}

// GetConfigPath returns the path to the config file.
// Uses os.UserConfigDir() for cross-platform XDG-compliant config directory.
// Creates the config directory if it doesn't exist.
func GetConfigPath() (string, error) {
	return osutil.AppFile(ConfigFile)
}

// Load reads and validates the config file at path. Keys missing from the
// file keep their default values.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err != nil {
		return cfg, err
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadOrDefault loads the config file, or returns DefaultConfig when it does
// not exist. Any other failure (unreadable, invalid) is returned.
func LoadOrDefault(path string) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return DefaultConfig(), err
	}
	return Load(path)
}

// Normalize lowercases and trims enumerated values and fills zero sizes.
func (c *Config) Normalize() {
	c.Theme = strings.TrimSpace(c.Theme)
	c.AxisMode = strings.ToLower(strings.TrimSpace(c.AxisMode))
	c.ChartFormat = strings.ToLower(strings.TrimSpace(c.ChartFormat))

	defaults := DefaultConfig()
	if c.AxisMode == "" {
		c.AxisMode = defaults.AxisMode
	}
	if c.ChartFormat == "" {
		c.ChartFormat = defaults.ChartFormat
	}
	if c.ChartWidth == 0 {
		c.ChartWidth = defaults.ChartWidth
	}
	if c.ChartHeight == 0 {
		c.ChartHeight = defaults.ChartHeight
	}
}

// Validate checks enumerated values and sizes.
func (c Config) Validate() error {
	switch c.AxisMode {
	case AxisFirst, AxisLongest:
	default:
		return fmt.Errorf("invalid axis_mode %q: must be %q or %q", c.AxisMode, AxisFirst, AxisLongest)
	}

	switch c.ChartFormat {
	case ChartPNG, ChartSVG:
	default:
		return fmt.Errorf("invalid chart_format %q: must be %q or %q", c.ChartFormat, ChartPNG, ChartSVG)
	}

	if c.ChartWidth < minChartSize || c.ChartWidth > maxChartSize {
		return fmt.Errorf("invalid chart_width %d: must be between %d and %d", c.ChartWidth, minChartSize, maxChartSize)
	}
	if c.ChartHeight < minChartSize || c.ChartHeight > maxChartSize {
		return fmt.Errorf("invalid chart_height %d: must be between %d and %d", c.ChartHeight, minChartSize, maxChartSize)
	}
	return nil
}

// Encode renders the config as TOML.
func (c Config) Encode() (string, error) {
	var b strings.Builder
	b.WriteString("# swimlog configuration file\n\n")
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return "", err
	}
	return b.String(), nil
}

// GenerateSampleConfig returns a commented config file documenting every key.
func GenerateSampleConfig() string {
	return `# swimlog configuration file
#
# Every setting is optional; the values shown are the defaults.

# TUI color theme (any bubbletint theme ID, e.g. "dracula", "nord", "gruvbox_dark")
# theme = ""

# Reject times that are not minutes.seconds.hundredths (e.g. 1.05.32) when
# adding them by hand. When false they are stored as typed and show up as
# gaps in the chart.
# strict_times = false

# Chart x-axis labels: "first" labels Entry 1..N from the first event's
# number of times; "longest" uses the event with the most times.
# axis_mode = "first"

# Chart image format: "png" or "svg"
# chart_format = "png"

# Chart size in pixels (200-8000)
# chart_width = 1024
# chart_height = 600

# chart_title = "Swimming Time Progress"
`
}
