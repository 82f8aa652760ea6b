package services

import (
	"context"
	"fmt"

	"github.com/talchemy/logoforge/internal/core/domain"
	"github.com/talchemy/logoforge/internal/core/ports"
)

// GalleryService rebuilds the review page for an existing run from its
// manifest, without touching the images.
type GalleryService struct {
	runRepo  ports.RunRepository
	renderer ports.GalleryRenderer
}

// NewGalleryService creates a new gallery service
func NewGalleryService(runRepo ports.RunRepository, renderer ports.GalleryRenderer) *GalleryService {
	return &GalleryService{
		runRepo:  runRepo,
		renderer: renderer,
	}
}

// GalleryRequest represents a request to rebuild a gallery
type GalleryRequest struct {
	RunID string // empty means latest run
}

// GalleryResponse represents the result of a gallery rebuild
type GalleryResponse struct {
	Run      *domain.Run
	Concepts int
}

// Execute re-renders index.html for the requested run
func (s *GalleryService) Execute(ctx context.Context, req GalleryRequest) (*GalleryResponse, error) {
	run, err := s.resolveRun(ctx, req.RunID)
	if err != nil {
		return nil, err
	}

	concepts, err := s.runRepo.LoadManifest(ctx, run)
	if err != nil {
		return nil, fmt.Errorf("run %s has no readable manifest: %w", run.ID, err)
	}

	html, err := s.renderer.Render(run, concepts)
	if err != nil {
		return nil, err
	}

	if err := s.runRepo.SaveGallery(ctx, run, html); err != nil {
		return nil, err
	}

	return &GalleryResponse{Run: run, Concepts: len(concepts)}, nil
}

func (s *GalleryService) resolveRun(ctx context.Context, id string) (*domain.Run, error) {
	if id == "" {
		return s.runRepo.Latest(ctx)
	}
	return s.runRepo.Get(ctx, id)
}
