package services

import (
	"context"

	"github.com/talchemy/logoforge/internal/core/domain"
	"github.com/talchemy/logoforge/internal/core/ports"
)

// ReviewService manages the pick selection of a run
type ReviewService struct {
	runRepo ports.RunRepository
}

// NewReviewService creates a new review service
func NewReviewService(runRepo ports.RunRepository) *ReviewService {
	return &ReviewService{
		runRepo: runRepo,
	}
}

// Load returns the current picks for a run (empty if none saved)
func (s *ReviewService) Load(ctx context.Context, run *domain.Run) (domain.Picks, error) {
	return s.runRepo.LoadPicks(ctx, run)
}

// Save persists the picks for a run
func (s *ReviewService) Save(ctx context.Context, run *domain.Run, picks domain.Picks) error {
	return s.runRepo.SavePicks(ctx, run, picks)
}

// Picked returns the picked concepts of a run, in manifest order
func (s *ReviewService) Picked(ctx context.Context, run *domain.Run) ([]domain.Concept, error) {
	concepts, err := s.runRepo.LoadManifest(ctx, run)
	if err != nil {
		return nil, err
	}

	picks, err := s.runRepo.LoadPicks(ctx, run)
	if err != nil {
		return nil, err
	}

	var picked []domain.Concept
	for _, c := range concepts {
		if picks.Has(c.ID) {
			picked = append(picked, c)
		}
	}
	return picked, nil
}
