package service

import (
	"github.com/xolan/swimlog/internal/stats"
)

// StatsResult contains the catalog summary and per-event breakdowns
type StatsResult struct {
	Statistics stats.Statistics
	Events     []stats.EventBreakdown
}

// StatsService provides personal-best statistics over the catalog
type StatsService struct {
	catalog *CatalogService
}

// NewStatsService creates a new StatsService
func NewStatsService(catalog *CatalogService) *StatsService {
	return &StatsService{catalog: catalog}
}

// Summary computes statistics for the current catalog. When ranked is set
// the breakdowns are ordered by improvement instead of catalog order.
func (s *StatsService) Summary(ranked bool) (*StatsResult, error) {
	events, err := s.catalog.Events()
	if err != nil {
		return nil, err
	}

	breakdowns := stats.CalculateEventBreakdown(events)
	if ranked {
		breakdowns = stats.RankByImprovement(breakdowns)
	}

	return &StatsResult{
		Statistics: stats.CalculateStatistics(events),
		Events:     breakdowns,
	}, nil
}
