package cmd

import "github.com/xolan/swimlog/internal/cli"

// Deps holds external dependencies for CLI commands, enabling testability.
type Deps = cli.Deps

// deps returns the dependencies used by commands.
// In production, this is cli.DefaultDeps(). Tests can replace it.
func deps() *Deps {
	return cli.GetDeps()
}

// SetDeps sets the global dependencies (for testing).
func SetDeps(d *Deps) {
	cli.SetDeps(d)
}

// ResetDeps resets dependencies to defaults (for testing cleanup).
func ResetDeps() {
	cli.ResetDeps()
}
