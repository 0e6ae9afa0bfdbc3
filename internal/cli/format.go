// Package cli provides the CLI presentation layer for swimlog.
// It handles command-line output formatting and user interaction.
package cli

import (
	"fmt"
	"strings"

	"github.com/xolan/swimlog/internal/catalog"
	"github.com/xolan/swimlog/internal/storage"
	"github.com/xolan/swimlog/internal/swimtime"
	"github.com/xolan/swimlog/internal/view"
)

// Pluralize returns the singular or plural form of a word based on count
func Pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	return word + "s"
}

// FormatCoordinate formats a cell's 1-based "event:time" coordinate, the
// same form the delete command accepts.
// Example: Cell{EventIndex: 0, TimeIndex: 2} -> "1:3"
func FormatCoordinate(c view.Cell) string {
	return fmt.Sprintf("%d:%d", c.EventIndex+1, c.TimeIndex+1)
}

// FormatCell formats a time cell for the list output. Times that cannot be
// charted are marked with "?".
// Examples: "[1:1] 1.00.00", "[2:3] 1:05 ?"
func FormatCell(c view.Cell) string {
	s := fmt.Sprintf("[%s] %s", FormatCoordinate(c), c.Text)
	if !swimtime.Valid(c.Text) {
		s += " ?"
	}
	return s
}

// FormatRow formats one table row with its cells on a single line.
func FormatRow(row view.TableRow, nameWidth, indexWidth int) string {
	prefix := fmt.Sprintf("%*d. %-*s", indexWidth, row.EventIndex+1, nameWidth, row.Name)
	if len(row.Cells) == 0 {
		return prefix + "  -"
	}

	cells := make([]string, len(row.Cells))
	for i, c := range row.Cells {
		cells[i] = FormatCell(c)
	}
	return prefix + "  " + strings.Join(cells, "  ")
}

// NameWidth returns the width of the longest event name.
func NameWidth(rows []view.TableRow) int {
	w := 0
	for _, r := range rows {
		if len(r.Name) > w {
			w = len(r.Name)
		}
	}
	return w
}

// FormatSeriesValues formats decoded values for the series listing.
// Undecodable values are shown as "--.--".
func FormatSeriesValues(values []swimtime.Measure) string {
	if len(values) == 0 {
		return "-"
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = swimtime.Format(v)
	}
	return strings.Join(parts, ", ")
}

// FormatMergeSummary describes an import result.
// Example: "Imported 5 times: 3 appended, 2 new events (Relay, Open water), 1 row skipped"
func FormatMergeSummary(s catalog.MergeSummary) string {
	rows := s.Rows()
	msg := fmt.Sprintf("Imported %d %s: %d appended, %d new %s",
		rows, Pluralize("time", rows),
		s.Appended,
		len(s.Created), Pluralize("event", len(s.Created)))
	if len(s.Created) > 0 {
		msg += fmt.Sprintf(" (%s)", strings.Join(s.Created, ", "))
	}
	if s.Skipped > 0 {
		msg += fmt.Sprintf(", %d %s skipped", s.Skipped, Pluralize("row", s.Skipped))
	}
	return msg
}

// FormatBytes formats a byte count for display.
// Examples: "512 B", "1.5 KB"
func FormatBytes(n int) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	return fmt.Sprintf("%.1f KB", float64(n)/1024)
}

// FormatBackup formats a backup for the restore listing.
func FormatBackup(b storage.BackupInfo) string {
	return fmt.Sprintf("  [%d] %s", b.Number, b.Path)
}
