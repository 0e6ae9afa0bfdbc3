// Package view projects the event catalog into the shapes the presentation
// layers draw: a table of time cells and per-event chart series.
package view

import "github.com/xolan/swimlog/internal/catalog"

// Cell is one recorded time together with its coordinates in the catalog.
type Cell struct {
	Text       string
	EventIndex int
	TimeIndex  int
}

// TableRow is one event with its time cells in insertion order.
type TableRow struct {
	EventIndex int
	Name       string
	Cells      []Cell
}

// ToTable builds one row per event. Cells carry the coordinates a batch
// delete needs to address them.
func ToTable(events []catalog.Event) []TableRow {
	rows := make([]TableRow, 0, len(events))
	for i, ev := range events {
		row := TableRow{
			EventIndex: i,
			Name:       ev.Name,
			Cells:      make([]Cell, 0, len(ev.Times)),
		}
		for j, text := range ev.Times {
			row.Cells = append(row.Cells, Cell{Text: text, EventIndex: i, TimeIndex: j})
		}
		rows = append(rows, row)
	}
	return rows
}

// Selections converts cells into catalog selections.
func Selections(cells []Cell) []catalog.Selection {
	sel := make([]catalog.Selection, 0, len(cells))
	for _, c := range cells {
		sel = append(sel, catalog.Selection{EventIndex: c.EventIndex, TimeIndex: c.TimeIndex})
	}
	return sel
}

// TimeCount returns the number of cells across all rows.
func TimeCount(rows []TableRow) int {
	n := 0
	for _, r := range rows {
		n += len(r.Cells)
	}
	return n
}
