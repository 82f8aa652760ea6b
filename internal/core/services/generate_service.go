package services

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/talchemy/logoforge/internal/core/domain"
	"github.com/talchemy/logoforge/internal/core/ports"
)

// GenerateService runs a batch of prompts through the image backend and
// assembles the run directory: PNGs, manifest and gallery.
type GenerateService struct {
	promptRepo ports.PromptRepository
	runRepo    ports.RunRepository
	generator  ports.ImageGenerator
	renderer   ports.GalleryRenderer
}

// NewGenerateService creates a new generate service
func NewGenerateService(
	promptRepo ports.PromptRepository,
	runRepo ports.RunRepository,
	generator ports.ImageGenerator,
	renderer ports.GalleryRenderer,
) *GenerateService {
	return &GenerateService{
		promptRepo: promptRepo,
		runRepo:    runRepo,
		generator:  generator,
		renderer:   renderer,
	}
}

// GenerateRequest represents a request to run a prompt batch
type GenerateRequest struct {
	PromptsPath string
	RunID       string // resume into this existing run when set
	MaxWorkers  int    // number of concurrent workers
	Options     domain.ImageOptions
	SkipGallery bool

	// Progress, when set, is called once per finished concept. Calls are
	// serialized.
	Progress func(ConceptResult)
}

// ConceptResult is the outcome for a single prompt in the batch
type ConceptResult struct {
	Concept domain.Concept
	Skipped bool // PNG already existed (resume)
	Err     error
}

// GenerateResponse represents the outcome of a whole batch
type GenerateResponse struct {
	Run       *domain.Run
	Concepts  []domain.Concept // manifest entries, in prompt id order
	Total     int
	Generated int
	Skipped   int
	Failed    int
	Results   []ConceptResult
}

// Execute runs the batch. Failed concepts are excluded from the manifest
// but the run still completes; the caller decides how loud to be about them.
func (s *GenerateService) Execute(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	prompts, err := s.promptRepo.Load(ctx, req.PromptsPath)
	if err != nil {
		return nil, err
	}

	var run *domain.Run
	if req.RunID != "" {
		run, err = s.runRepo.Get(ctx, req.RunID)
		if err != nil {
			return nil, fmt.Errorf("cannot resume: %w", err)
		}
	} else {
		run, err = s.runRepo.Create(ctx)
		if err != nil {
			return nil, err
		}
	}

	maxWorkers := req.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = 1
	}

	results := s.generateConcurrently(ctx, run, prompts, req, maxWorkers)

	response := &GenerateResponse{
		Run:     run,
		Total:   len(prompts),
		Results: results,
	}

	for _, res := range results {
		switch {
		case res.Err != nil:
			response.Failed++
		case res.Skipped:
			response.Skipped++
			response.Concepts = append(response.Concepts, res.Concept)
		default:
			response.Generated++
			response.Concepts = append(response.Concepts, res.Concept)
		}
	}

	// Manifest order follows prompt ids, not completion order
	sort.Slice(response.Concepts, func(i, j int) bool {
		return response.Concepts[i].ID < response.Concepts[j].ID
	})

	if err := s.runRepo.SaveManifest(ctx, run, response.Concepts); err != nil {
		return response, err
	}

	if !req.SkipGallery {
		html, err := s.renderer.Render(run, response.Concepts)
		if err != nil {
			return response, err
		}
		if err := s.runRepo.SaveGallery(ctx, run, html); err != nil {
			return response, err
		}
	}

	return response, nil
}

// generateConcurrently runs prompts through a worker pool
func (s *GenerateService) generateConcurrently(ctx context.Context, run *domain.Run, prompts []domain.Prompt, req GenerateRequest, maxWorkers int) []ConceptResult {
	jobs := make(chan domain.Prompt, len(prompts))
	results := make(chan ConceptResult, len(prompts))

	var wg sync.WaitGroup
	for i := 0; i < maxWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.worker(ctx, run, req.Options, jobs, results)
		}()
	}

	for _, p := range prompts {
		jobs <- p
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	// Collect results; the Progress callback runs here so callers never see
	// concurrent calls
	var collected []ConceptResult
	for result := range results {
		if req.Progress != nil {
			req.Progress(result)
		}
		collected = append(collected, result)
	}

	return collected
}

// worker is a worker goroutine that processes generation jobs
func (s *GenerateService) worker(ctx context.Context, run *domain.Run, opts domain.ImageOptions, jobs <-chan domain.Prompt, results chan<- ConceptResult) {
	for prompt := range jobs {
		concept := prompt.Concept()

		select {
		case <-ctx.Done():
			results <- ConceptResult{Concept: concept, Err: ctx.Err()}
			continue
		default:
		}

		// Resume: a non-empty PNG means this concept is done
		if s.runRepo.HasImage(ctx, run, concept.File) {
			results <- ConceptResult{Concept: concept, Skipped: true}
			continue
		}

		img, err := s.generator.Generate(ctx, prompt.Prompt, opts)
		if err != nil {
			results <- ConceptResult{Concept: concept, Err: err}
			continue
		}

		if err := s.runRepo.SaveImage(ctx, run, concept.File, img); err != nil {
			results <- ConceptResult{Concept: concept, Err: err}
			continue
		}

		results <- ConceptResult{Concept: concept}
	}
}
