package handlers

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/xolan/swimlog/internal/cli"
	"github.com/xolan/swimlog/internal/service"
)

// openCatalog returns the hydrated catalog service, reporting and exiting
// when storage is unavailable.
func openCatalog(deps *cli.Deps) (*service.CatalogService, bool) {
	if deps.Services == nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to determine storage location")
		if deps.ServicesErr != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", deps.ServicesErr)
		}
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Check that your home directory is accessible")
		deps.Exit(1)
		return nil, false
	}

	svc := deps.Services.Catalog
	if err := svc.Open(); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to load events")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return nil, false
	}
	return svc, true
}

// reportSaveError prints the failure of a mutation that could not be
// persisted.
func reportSaveError(deps *cli.Deps, err error) {
	_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to save events")
	_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
	if loc := deps.Services.Catalog.Location(); loc != "" {
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: Check that the file is writable: %s\n", loc)
	}
	deps.Exit(1)
}

// promptConfirmation asks the user a yes/no question
func promptConfirmation(stdout io.Writer, stdin io.Reader, question string) bool {
	_, _ = fmt.Fprintf(stdout, "%s [y/N]: ", question)

	scanner := bufio.NewScanner(stdin)
	if !scanner.Scan() {
		return false
	}

	response := strings.TrimSpace(scanner.Text())
	return response == "y" || response == "Y"
}
