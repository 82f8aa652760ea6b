package services

import (
	"context"
	"fmt"

	"github.com/talchemy/logoforge/internal/core/domain"
	"github.com/talchemy/logoforge/internal/core/ports"
)

// CleanService prunes old runs, keeping the newest N
type CleanService struct {
	runRepo ports.RunRepository
}

// NewCleanService creates a new clean service
func NewCleanService(runRepo ports.RunRepository) *CleanService {
	return &CleanService{
		runRepo: runRepo,
	}
}

// CleanRequest represents a prune request
type CleanRequest struct {
	Keep   int  // number of newest runs to keep
	DryRun bool // report what would be deleted without deleting
}

// CleanResponse represents the result of a prune
type CleanResponse struct {
	Kept    int
	Deleted []domain.Run
}

// Execute removes all runs beyond the newest Keep
func (s *CleanService) Execute(ctx context.Context, req CleanRequest) (*CleanResponse, error) {
	if req.Keep < 1 {
		return nil, fmt.Errorf("keep must be at least 1, got %d", req.Keep)
	}

	runs, err := s.runRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := &CleanResponse{}
	if len(runs) <= req.Keep {
		resp.Kept = len(runs)
		return resp, nil
	}

	resp.Kept = req.Keep
	for _, run := range runs[req.Keep:] {
		if !req.DryRun {
			if err := s.runRepo.Delete(ctx, &run); err != nil {
				return resp, err
			}
		}
		resp.Deleted = append(resp.Deleted, run)
	}
	return resp, nil
}
