package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xolan/swimlog/internal/cli"
	"github.com/xolan/swimlog/internal/view"
)

// WriteChart renders the progress chart to an image file
func WriteChart(deps *cli.Deps, output string) {
	if _, ok := openCatalog(deps); !ok {
		return
	}

	path, err := deps.Services.Chart.WriteFile(output)
	if err != nil {
		switch {
		case errors.Is(err, view.ErrNoData):
			_, _ = fmt.Fprintln(deps.Stderr, "Error: Nothing to chart")
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: The x-axis follows the first event's times; add a time to it with 'swimlog add 1 <time>'")
		case errors.Is(err, view.ErrUnsupportedImage):
			_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: Use a .png or .svg output file")
		default:
			_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to write chart")
			_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		}
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Chart written to %s\n", path)
}

// ShowSeries prints the chart data as text
func ShowSeries(deps *cli.Deps) {
	svc, ok := openCatalog(deps)
	if !ok {
		return
	}

	c, err := svc.Series()
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}

	if len(c.Series) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No events")
		return
	}

	word := "entries"
	if len(c.Labels) == 1 {
		word = "entry"
	}
	_, _ = fmt.Fprintf(deps.Stdout, "X-axis: %d %s", len(c.Labels), word)
	if len(c.Labels) > 0 {
		_, _ = fmt.Fprintf(deps.Stdout, " (%s - %s)", c.Labels[0], c.Labels[len(c.Labels)-1])
	}
	_, _ = fmt.Fprintln(deps.Stdout)
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 60))

	width := 0
	for _, s := range c.Series {
		if len(s.Name) > width {
			width = len(s.Name)
		}
	}
	for _, s := range c.Series {
		_, _ = fmt.Fprintf(deps.Stdout, "%-*s  %s\n", width, s.Name, cli.FormatSeriesValues(s.Values))
	}
}
