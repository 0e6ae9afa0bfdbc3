package view

import (
	"fmt"

	"github.com/xolan/swimlog/internal/catalog"
	"github.com/xolan/swimlog/internal/swimtime"
)

// AxisMode selects which event determines the x-axis labels.
type AxisMode string

const (
	// AxisFirstEvent labels the axis from the first event's number of times.
	AxisFirstEvent AxisMode = "first"
	// AxisLongest labels the axis from the event with the most times.
	AxisLongest AxisMode = "longest"
)

// ParseAxisMode maps a config value to an AxisMode. Unknown values fall
// back to AxisFirstEvent.
func ParseAxisMode(s string) AxisMode {
	if AxisMode(s) == AxisLongest {
		return AxisLongest
	}
	return AxisFirstEvent
}

// Series is one event's decoded times.
type Series struct {
	Name   string
	Values []swimtime.Measure
}

// Points returns the number of decodable values.
func (s Series) Points() int {
	n := 0
	for _, v := range s.Values {
		if v.IsValid() {
			n++
		}
	}
	return n
}

// Chart is the data behind the progress chart.
type Chart struct {
	Labels []string
	Series []Series
}

// Empty reports whether no series has a point that falls under a label.
func (c Chart) Empty() bool {
	for _, s := range c.Series {
		for i, v := range s.Values {
			if i >= len(c.Labels) {
				break
			}
			if v.IsValid() {
				return false
			}
		}
	}
	return true
}

// ToSeries decodes every event's times. Undecodable times stay in the
// series as NaN so positions line up with the labels.
func ToSeries(events []catalog.Event, mode AxisMode) Chart {
	if len(events) == 0 {
		return Chart{Labels: []string{}, Series: []Series{}}
	}

	k := len(events[0].Times)
	if mode == AxisLongest {
		for _, ev := range events[1:] {
			if len(ev.Times) > k {
				k = len(ev.Times)
			}
		}
	}

	labels := make([]string, k)
	for i := range labels {
		labels[i] = fmt.Sprintf("Entry %d", i+1)
	}

	series := make([]Series, 0, len(events))
	for _, ev := range events {
		values := make([]swimtime.Measure, len(ev.Times))
		for i, text := range ev.Times {
			values[i] = swimtime.Decode(text)
		}
		series = append(series, Series{Name: ev.Name, Values: values})
	}

	return Chart{Labels: labels, Series: series}
}
