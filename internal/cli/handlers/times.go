package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xolan/swimlog/internal/catalog"
	"github.com/xolan/swimlog/internal/cli"
	"github.com/xolan/swimlog/internal/service"
	"github.com/xolan/swimlog/internal/swimtime"
	"github.com/xolan/swimlog/internal/view"
)

// ListTimes prints every event with its recorded times
func ListTimes(deps *cli.Deps) {
	svc, ok := openCatalog(deps)
	if !ok {
		return
	}

	rows, err := svc.Table()
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}

	if len(rows) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No events")
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Events:")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 60))

	nameWidth := cli.NameWidth(rows)
	indexWidth := len(fmt.Sprintf("%d", len(rows)))
	for _, row := range rows {
		_, _ = fmt.Fprintln(deps.Stdout, cli.FormatRow(row, nameWidth, indexWidth))
	}

	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 60))
	total := view.TimeCount(rows)
	_, _ = fmt.Fprintf(deps.Stdout, "Total: %d %s across %d %s\n",
		total, cli.Pluralize("time", total), len(rows), cli.Pluralize("event", len(rows)))

	if svc.Seeded() {
		_, _ = fmt.Fprintln(deps.Stdout, "Tip: Nothing saved yet. Add a time with 'swimlog add <event> <time>'")
	}
}

// AddTime records a time against an event given by name or 1-based number
func AddTime(deps *cli.Deps, eventRef, text string) {
	svc, ok := openCatalog(deps)
	if !ok {
		return
	}

	name, err := svc.ResolveEvent(eventRef)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Unknown event '%s'\n", eventRef)
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: List events with 'swimlog' to see names and numbers")
		deps.Exit(1)
		return
	}

	if err := svc.AddTime(name, text); err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyTime):
			_, _ = fmt.Fprintln(deps.Stderr, "Error: Time cannot be empty")
		case errors.Is(err, swimtime.ErrInvalidFormat):
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid time '%s'\n", text)
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: Use minutes.seconds.hundredths, e.g. 1.05.32")
		case errors.Is(err, catalog.ErrEventNotFound):
			_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		default:
			reportSaveError(deps, err)
			return
		}
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Added: %s %s\n", name, strings.TrimSpace(text))
	if !swimtime.Valid(text) {
		_, _ = fmt.Fprintln(deps.Stderr, "Warning: Time is not in minutes.seconds.hundredths format and will not be charted")
	}
}

// DeleteTimes removes the times at the given "event:time" coordinates in
// one batch
func DeleteTimes(deps *cli.Deps, coords []string, skipConfirm bool) {
	selections := make([]catalog.Selection, 0, len(coords))
	for _, c := range coords {
		sel, err := service.ParseSelection(c)
		if err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid coordinate '%s'\n", c)
			_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: Coordinates are shown in brackets by 'swimlog', e.g. 2:1")
			deps.Exit(1)
			return
		}
		selections = append(selections, sel)
	}

	svc, ok := openCatalog(deps)
	if !ok {
		return
	}

	rows, err := svc.Table()
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}

	var cells []view.Cell
	for _, sel := range selections {
		if sel.EventIndex >= len(rows) || sel.TimeIndex >= len(rows[sel.EventIndex].Cells) {
			_, _ = fmt.Fprintf(deps.Stderr, "Warning: No time at %d:%d, ignoring\n", sel.EventIndex+1, sel.TimeIndex+1)
			continue
		}
		cells = append(cells, rows[sel.EventIndex].Cells[sel.TimeIndex])
	}

	if len(cells) == 0 {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: No matching times to delete")
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Times to delete:")
	for _, c := range cells {
		_, _ = fmt.Fprintf(deps.Stdout, "  %s %s\n", rows[c.EventIndex].Name, cli.FormatCell(c))
	}

	if !skipConfirm {
		if !promptConfirmation(deps.Stdout, deps.Stdin, "Delete these times?") {
			_, _ = fmt.Fprintln(deps.Stdout, "Deletion cancelled")
			return
		}
	}

	removed, err := svc.DeleteSelected(view.Selections(cells))
	if err != nil {
		reportSaveError(deps, err)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Deleted %d %s\n", removed, cli.Pluralize("time", removed))
}

// ClearEvent removes all times of an event given by name or 1-based number
func ClearEvent(deps *cli.Deps, eventRef string, skipConfirm bool) {
	svc, ok := openCatalog(deps)
	if !ok {
		return
	}

	name, err := svc.ResolveEvent(eventRef)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Unknown event '%s'\n", eventRef)
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: List events with 'swimlog' to see names and numbers")
		deps.Exit(1)
		return
	}

	rows, err := svc.Table()
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}

	index := -1
	for _, r := range rows {
		if r.Name == name {
			index = r.EventIndex
			break
		}
	}
	if index < 0 {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Unknown event '%s'\n", eventRef)
		deps.Exit(1)
		return
	}

	count := len(rows[index].Cells)
	if count == 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "%s has no times\n", name)
		return
	}

	if !skipConfirm {
		question := fmt.Sprintf("Clear %d %s from %s?", count, cli.Pluralize("time", count), name)
		if !promptConfirmation(deps.Stdout, deps.Stdin, question) {
			_, _ = fmt.Fprintln(deps.Stdout, "Clear cancelled")
			return
		}
	}

	if err := svc.ClearEvent(index); err != nil {
		reportSaveError(deps, err)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Cleared %d %s from %s\n", count, cli.Pluralize("time", count), name)
}
