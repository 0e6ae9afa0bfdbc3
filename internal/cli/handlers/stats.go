package handlers

import (
	"fmt"
	"strings"

	"github.com/xolan/swimlog/internal/cli"
	"github.com/xolan/swimlog/internal/stats"
	"github.com/xolan/swimlog/internal/swimtime"
)

// ShowStats prints personal bests and progress per event
func ShowStats(deps *cli.Deps, ranked bool) {
	if _, ok := openCatalog(deps); !ok {
		return
	}

	result, err := deps.Services.Stats.Summary(ranked)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}

	s := result.Statistics
	_, _ = fmt.Fprintln(deps.Stdout, "Statistics:")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 60))
	_, _ = fmt.Fprintf(deps.Stdout, "Events:          %d (%d with times)\n", s.EventCount, s.EventsWithTimes)
	_, _ = fmt.Fprintf(deps.Stdout, "Total times:     %d\n", s.TimeCount)
	if s.InvalidCount > 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "Not charted:     %d (not in minutes.seconds.hundredths format)\n", s.InvalidCount)
	}

	if len(result.Events) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No times recorded yet")
		return
	}

	displayBreakdown(deps, result.Events)
}

func displayBreakdown(deps *cli.Deps, breakdowns []stats.EventBreakdown) {
	width := len("Event")
	for _, b := range breakdowns {
		width = max(width, len(b.Event))
	}

	_, _ = fmt.Fprintln(deps.Stdout)
	_, _ = fmt.Fprintf(deps.Stdout, "%-*s  %5s  %9s  %9s  %9s  %9s\n", width, "Event", "Times", "Best", "First", "Latest", "Gain")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", width+52))
	for _, b := range breakdowns {
		_, _ = fmt.Fprintf(deps.Stdout, "%-*s  %5d  %9s  %9s  %9s  %9s\n",
			width, b.Event, b.TimeCount,
			swimtime.Format(b.Best), swimtime.Format(b.First), swimtime.Format(b.Latest),
			swimtime.Format(b.Improvement()))
	}
}
