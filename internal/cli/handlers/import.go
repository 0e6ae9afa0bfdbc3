package handlers

import (
	"errors"
	"fmt"

	"github.com/xolan/swimlog/internal/cli"
	"github.com/xolan/swimlog/internal/importer"
)

// ImportFile merges the rows of a spreadsheet into the catalog
func ImportFile(deps *cli.Deps, path string) {
	svc, ok := openCatalog(deps)
	if !ok {
		return
	}

	summary, err := svc.ImportFile(path)
	if err != nil {
		switch {
		case errors.Is(err, importer.ErrUnsupportedFormat):
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Unsupported file type '%s'\n", path)
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: Import .xlsx, .xlsm or .csv files with event names in column A and times in column B")
			deps.Exit(1)
		case summary.Rows() > 0:
			reportSaveError(deps, err)
		default:
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to import '%s'\n", path)
			_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
			deps.Exit(1)
		}
		return
	}

	if summary.Rows() == 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "No times found in %s\n", path)
		if summary.Skipped > 0 {
			_, _ = fmt.Fprintf(deps.Stdout, "%d %s skipped (missing event name or time)\n", summary.Skipped, cli.Pluralize("row", summary.Skipped))
		}
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, cli.FormatMergeSummary(summary))
}
