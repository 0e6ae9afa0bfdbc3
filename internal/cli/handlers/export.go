package handlers

import (
	"fmt"

	"github.com/xolan/swimlog/internal/cli"
	"github.com/xolan/swimlog/internal/service"
)

// Export writes the whole catalog to stdout as json, csv or yaml
func Export(deps *cli.Deps, formatName string) {
	format, err := service.ParseExportFormat(formatName)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}

	if _, ok := openCatalog(deps); !ok {
		return
	}

	if err := deps.Services.Export.Export(deps.Stdout, format); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to export events")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
	}
}
