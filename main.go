package main

import (
	"fmt"
	"os"

	"github.com/xolan/swimlog/cmd"
	"github.com/xolan/swimlog/internal/config"
)

// Version information injected by GoReleaser via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// exitFunc is os.Exit; tests replace it.
var exitFunc = os.Exit

func main() {
	exitFunc(run())
}

// run validates the config file and executes the root command, returning
// the process exit code.
func run() int {
	configPath, err := config.GetConfigPath()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error: Failed to determine config file location")
		_, _ = fmt.Fprintf(os.Stderr, "Details: %v\n", err)
		return 1
	}
	if _, err := config.LoadOrDefault(configPath); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error: Invalid config file")
		_, _ = fmt.Fprintf(os.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintf(os.Stderr, "Hint: Fix or remove %s, or run 'swimlog config init' after removing it\n", configPath)
		return 1
	}

	cmd.SetVersionInfo(version, commit, date)
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}
