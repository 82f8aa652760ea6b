package services

import (
	"context"

	"github.com/talchemy/logoforge/internal/core/ports"
)

// StatsService aggregates counts across all runs
type StatsService struct {
	listService *ListService
}

// NewStatsService creates a new stats service
func NewStatsService(runRepo ports.RunRepository) *StatsService {
	return &StatsService{
		listService: NewListService(runRepo),
	}
}

// StatsResponse holds the aggregated counts
type StatsResponse struct {
	Runs          []RunInfo // newest first
	TotalRuns     int
	TotalConcepts int
	TotalPicks    int
}

// Execute collects stats over every run
func (s *StatsService) Execute(ctx context.Context) (*StatsResponse, error) {
	runs, err := s.listService.Runs(ctx)
	if err != nil {
		return nil, err
	}

	resp := &StatsResponse{
		Runs:      runs.Runs,
		TotalRuns: runs.Total,
	}
	for _, info := range runs.Runs {
		resp.TotalConcepts += info.Concepts
		resp.TotalPicks += info.Picks
	}
	return resp, nil
}
