package views

import (
	"fmt"
	"strings"

	"github.com/xolan/swimlog/internal/catalog"
	"github.com/xolan/swimlog/internal/swimtime"
	"github.com/xolan/swimlog/internal/tui/ui"
	"github.com/xolan/swimlog/internal/view"
)

// TableRenderOptions configures how the times table is rendered
type TableRenderOptions struct {
	CursorEvent int // Row holding the cursor (-1 for none)
	CursorTime  int // Cell holding the cursor within that row
	Marked      map[catalog.Selection]bool
	Offset      int // First visible row
	Limit       int // Number of visible rows (0 for all)
}

// RenderTimesTable renders one line per event with a checkbox per time
func RenderTimesTable(rows []view.TableRow, styles ui.Styles, opts TableRenderOptions) string {
	if len(rows) == 0 {
		return ""
	}

	nameWidth := 0
	for _, r := range rows {
		nameWidth = max(nameWidth, len(r.Name))
	}
	indexWidth := len(fmt.Sprint(len(rows)))

	end := len(rows)
	if opts.Limit > 0 {
		end = min(end, opts.Offset+opts.Limit)
	}

	var b strings.Builder
	for i := opts.Offset; i < end; i++ {
		row := rows[i]
		current := i == opts.CursorEvent

		index := styles.EventIndex.Render(fmt.Sprintf("%*d.", indexWidth, i+1))
		nameStyle := styles.EventName
		pointer := "  "
		if current {
			nameStyle = styles.EventCurrent
			pointer = "▸ "
		}
		name := nameStyle.Render(fmt.Sprintf("%-*s", nameWidth, row.Name))

		b.WriteString(pointer + index + " " + name + "  ")
		if len(row.Cells) == 0 {
			b.WriteString(styles.StatusHelp.Render("-"))
		}
		for j, c := range row.Cells {
			if j > 0 {
				b.WriteString("  ")
			}
			sel := catalog.Selection{EventIndex: c.EventIndex, TimeIndex: c.TimeIndex}
			b.WriteString(renderCell(c, styles, opts.Marked[sel], current && j == opts.CursorTime))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderCell renders a checkbox and the time text
func renderCell(c view.Cell, styles ui.Styles, marked, cursor bool) string {
	box := "[ ]"
	style := styles.Cell
	text := c.Text
	if !swimtime.Valid(c.Text) {
		style = styles.CellInvalid
		text += " ?"
	}
	if marked {
		box = "[x]"
		style = styles.CellMarked
	}
	out := style.Render(box + " " + text)
	if cursor {
		out = styles.CellCursor.Render(box + " " + text)
	}
	return out
}

// formatValues formats decoded measures, showing "--.--" for undecodable ones
func formatValues(values []swimtime.Measure) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = swimtime.Format(v)
	}
	return out
}

// scrollOffset returns the first visible row so that cursor stays within limit rows
func scrollOffset(offset, cursor, limit int) int {
	if limit <= 0 {
		return 0
	}
	if cursor < offset {
		return cursor
	}
	if cursor >= offset+limit {
		return cursor - limit + 1
	}
	return offset
}

func pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	return word + "s"
}
