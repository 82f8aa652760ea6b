package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/talchemy/logoforge/internal/core/domain"
	"github.com/talchemy/logoforge/internal/core/ports"
)

// ListService handles listing runs and the concepts inside them
type ListService struct {
	runRepo ports.RunRepository
}

// NewListService creates a new list service
func NewListService(runRepo ports.RunRepository) *ListService {
	return &ListService{
		runRepo: runRepo,
	}
}

// RunInfo is a run plus the counts shown in list output
type RunInfo struct {
	Run      domain.Run
	Concepts int
	Picks    int
}

// RunsResponse represents the response from listing runs
type RunsResponse struct {
	Runs  []RunInfo
	Total int
}

// Runs lists all runs, newest first, with concept and pick counts
func (s *ListService) Runs(ctx context.Context) (*RunsResponse, error) {
	runs, err := s.runRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	resp := &RunsResponse{Total: len(runs)}
	for _, run := range runs {
		info := RunInfo{Run: run}

		// A run without a manifest is still listed, just with zero concepts
		if concepts, err := s.runRepo.LoadManifest(ctx, &run); err == nil {
			info.Concepts = len(concepts)
		}
		if picks, err := s.runRepo.LoadPicks(ctx, &run); err == nil {
			info.Picks = len(picks.ConceptIDs)
		}

		resp.Runs = append(resp.Runs, info)
	}
	return resp, nil
}

// ConceptsRequest represents a request for the concepts of one run
type ConceptsRequest struct {
	RunID string // empty means latest run
	Query string // optional substring filter on title and prompt
}

// ConceptsResponse represents the concepts of a run
type ConceptsResponse struct {
	Run      *domain.Run
	Concepts []domain.Concept
	Total    int
}

// Concepts returns the manifest of a run, optionally filtered
func (s *ListService) Concepts(ctx context.Context, req ConceptsRequest) (*ConceptsResponse, error) {
	var run *domain.Run
	var err error
	if req.RunID == "" {
		run, err = s.runRepo.Latest(ctx)
	} else {
		run, err = s.runRepo.Get(ctx, req.RunID)
	}
	if err != nil {
		return nil, err
	}

	concepts, err := s.runRepo.LoadManifest(ctx, run)
	if err != nil {
		return nil, err
	}

	if q := strings.TrimSpace(req.Query); q != "" {
		concepts = filterConcepts(concepts, q)
	}

	return &ConceptsResponse{
		Run:      run,
		Concepts: concepts,
		Total:    len(concepts),
	}, nil
}

func filterConcepts(concepts []domain.Concept, query string) []domain.Concept {
	q := strings.ToLower(query)
	var filtered []domain.Concept
	for _, c := range concepts {
		if strings.Contains(strings.ToLower(c.Title), q) ||
			strings.Contains(strings.ToLower(c.Prompt), q) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}
