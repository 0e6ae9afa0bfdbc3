// Package stats computes personal-best summaries over the event catalog.
package stats

import (
	"sort"

	"github.com/xolan/swimlog/internal/catalog"
	"github.com/xolan/swimlog/internal/swimtime"
)

// Statistics contains aggregated figures for the whole catalog
type Statistics struct {
	EventCount      int
	EventsWithTimes int
	TimeCount       int
	InvalidCount    int
}

// EventBreakdown contains the figures for a single event.
// Best, First and Latest are NaN when the event has no valid time.
type EventBreakdown struct {
	Event        string
	TimeCount    int
	InvalidCount int
	Best         swimtime.Measure
	First        swimtime.Measure
	Latest       swimtime.Measure
}

// Improvement is the gap between the first valid time and the best one.
func (b EventBreakdown) Improvement() swimtime.Measure {
	if !b.First.IsValid() || !b.Best.IsValid() {
		return swimtime.Invalid
	}
	return b.First - b.Best
}

// HasBest reports whether the event has at least one valid time
func (b EventBreakdown) HasBest() bool {
	return b.Best.IsValid()
}

// CalculateStatistics counts events and times across the catalog
func CalculateStatistics(events []catalog.Event) Statistics {
	stats := Statistics{EventCount: len(events)}

	for _, e := range events {
		if len(e.Times) > 0 {
			stats.EventsWithTimes++
		}
		for _, text := range e.Times {
			stats.TimeCount++
			if !swimtime.Valid(text) {
				stats.InvalidCount++
			}
		}
	}

	return stats
}

// CalculateEventBreakdown returns one breakdown per event that has times,
// in catalog order. Lower times are better.
func CalculateEventBreakdown(events []catalog.Event) []EventBreakdown {
	breakdowns := []EventBreakdown{}

	for _, e := range events {
		if len(e.Times) == 0 {
			continue
		}

		b := EventBreakdown{
			Event:     e.Name,
			TimeCount: len(e.Times),
			Best:      swimtime.Invalid,
			First:     swimtime.Invalid,
			Latest:    swimtime.Invalid,
		}
		for _, text := range e.Times {
			m := swimtime.Decode(text)
			if !m.IsValid() {
				b.InvalidCount++
				continue
			}
			if !b.First.IsValid() {
				b.First = m
			}
			if !b.Best.IsValid() || m < b.Best {
				b.Best = m
			}
			b.Latest = m
		}
		breakdowns = append(breakdowns, b)
	}

	return breakdowns
}

// RankByImprovement orders breakdowns by improvement, largest first.
// Events without a valid time sort last; ties keep catalog order.
func RankByImprovement(breakdowns []EventBreakdown) []EventBreakdown {
	ranked := make([]EventBreakdown, len(breakdowns))
	copy(ranked, breakdowns)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i].Improvement(), ranked[j].Improvement()
		if !a.IsValid() {
			return false
		}
		if !b.IsValid() {
			return true
		}
		return a > b
	})

	return ranked
}
