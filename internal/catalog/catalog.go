// Package catalog holds the ordered collection of swimming events and the
// times recorded against each of them.
package catalog

import (
	"errors"
	"fmt"
	"sort"

	"github.com/xolan/swimlog/internal/importer"
)

// Common errors for catalog mutations
var (
	ErrEventNotFound        = errors.New("event not found")
	ErrEventIndexOutOfRange = errors.New("event index out of range")
)

// Event is a named swimming discipline and its recorded times in entry order.
type Event struct {
	Name  string   `json:"name" yaml:"name"`
	Times []string `json:"times" yaml:"times"`
}

// Selection addresses one recorded time by position.
type Selection struct {
	EventIndex int
	TimeIndex  int
}

// MergeSummary reports what MergeImport did with each row.
type MergeSummary struct {
	Appended int      // Rows appended to an existing event
	Created  []string // Names of events created by the import, in creation order
	Skipped  int      // Rows without a name or time
}

// Rows returns the number of rows that changed the catalog.
func (s MergeSummary) Rows() int {
	return s.Appended + len(s.Created)
}

// SeedNames is the default event list, in display order.
var SeedNames = []string{
	"50 free", "100 free", "200 free", "400 free", "800 free", "1500 free",
	"50 back", "100 back", "200 back",
	"50 breast", "100 breast", "200 breast",
	"50 fly", "100 fly", "200 fly",
	"100 IM", "200 IM", "400 IM",
}

// SeedTime is the example entry recorded on the first seed event.
const SeedTime = "1.00.00"

// Catalog is an ordered list of events with unique names.
type Catalog struct {
	events []Event
}

// Seed returns the first-run catalog.
func Seed() *Catalog {
	events := make([]Event, len(SeedNames))
	for i, name := range SeedNames {
		events[i] = Event{Name: name, Times: []string{}}
	}
	events[0].Times = append(events[0].Times, SeedTime)
	return &Catalog{events: events}
}

// New builds a catalog from a snapshot. The input is copied. Repeated names
// are folded into their first occurrence so names stay unique.
func New(events []Event) *Catalog {
	c := &Catalog{events: make([]Event, 0, len(events))}
	for _, e := range events {
		if i := c.Index(e.Name); i >= 0 {
			c.events[i].Times = append(c.events[i].Times, e.Times...)
			continue
		}
		c.events = append(c.events, Event{Name: e.Name, Times: copyTimes(e.Times)})
	}
	return c
}

// Len returns the number of events.
func (c *Catalog) Len() int {
	return len(c.events)
}

// Index returns the position of the named event, or -1.
func (c *Catalog) Index(name string) int {
	for i, e := range c.events {
		if e.Name == name {
			return i
		}
	}
	return -1
}

// Names returns event names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.events))
	for i, e := range c.events {
		names[i] = e.Name
	}
	return names
}

// Events returns a deep copy of the events in catalog order.
func (c *Catalog) Events() []Event {
	events := make([]Event, len(c.events))
	for i, e := range c.events {
		events[i] = Event{Name: e.Name, Times: copyTimes(e.Times)}
	}
	return events
}

// AppendTime records text at the end of the named event's times.
// An unknown name leaves the catalog unchanged.
func (c *Catalog) AppendTime(name, text string) error {
	i := c.Index(name)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrEventNotFound, name)
	}
	c.events[i].Times = append(c.events[i].Times, text)
	return nil
}

// DeleteTimesAt removes every selected time in one batch and returns how
// many were removed. Duplicate and out-of-range selections are ignored.
// Removals run from the highest time index down within each event, so no
// removal shifts another pending one.
func (c *Catalog) DeleteTimesAt(selections []Selection) int {
	byEvent := make(map[int]map[int]bool)
	for _, s := range selections {
		if s.EventIndex < 0 || s.EventIndex >= len(c.events) {
			continue
		}
		if s.TimeIndex < 0 || s.TimeIndex >= len(c.events[s.EventIndex].Times) {
			continue
		}
		if byEvent[s.EventIndex] == nil {
			byEvent[s.EventIndex] = make(map[int]bool)
		}
		byEvent[s.EventIndex][s.TimeIndex] = true
	}

	removed := 0
	for eventIndex, set := range byEvent {
		indices := make([]int, 0, len(set))
		for timeIndex := range set {
			indices = append(indices, timeIndex)
		}
		sort.Sort(sort.Reverse(sort.IntSlice(indices)))

		times := c.events[eventIndex].Times
		for _, timeIndex := range indices {
			times = append(times[:timeIndex], times[timeIndex+1:]...)
			removed++
		}
		c.events[eventIndex].Times = times
	}
	return removed
}

// ClearTimes empties the times of the event at eventIndex.
func (c *Catalog) ClearTimes(eventIndex int) error {
	if eventIndex < 0 || eventIndex >= len(c.events) {
		return fmt.Errorf("%w: %d (valid range 0-%d)", ErrEventIndexOutOfRange, eventIndex, len(c.events)-1)
	}
	c.events[eventIndex].Times = []string{}
	return nil
}

// MergeImport applies imported rows in order. A row for a known event
// appends to it; a row for an unknown event creates the event at the end of
// the catalog. Rows without a name or time are skipped.
func (c *Catalog) MergeImport(rows []importer.Row) MergeSummary {
	var summary MergeSummary
	for _, row := range rows {
		if row.Name == "" || row.Time == "" {
			summary.Skipped++
			continue
		}
		if i := c.Index(row.Name); i >= 0 {
			c.events[i].Times = append(c.events[i].Times, row.Time)
			summary.Appended++
			continue
		}
		c.events = append(c.events, Event{Name: row.Name, Times: []string{row.Time}})
		summary.Created = append(summary.Created, row.Name)
	}
	return summary
}

func copyTimes(times []string) []string {
	out := make([]string, len(times))
	copy(out, times)
	return out
}
