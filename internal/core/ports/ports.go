package ports

import (
	"context"

	"github.com/talchemy/logoforge/internal/core/domain"
)

// PromptRepository defines the port for reading and writing prompt manifests
type PromptRepository interface {
	// Load reads and validates a prompts manifest
	Load(ctx context.Context, path string) ([]domain.Prompt, error)

	// Save writes a prompts manifest (used by init scaffolding)
	Save(ctx context.Context, path string, prompts []domain.Prompt) error
}

// RunRepository defines the port for run directory persistence
type RunRepository interface {
	// Create makes a new timestamped run directory
	Create(ctx context.Context) (*domain.Run, error)

	// Get resolves an existing run by id
	Get(ctx context.Context, id string) (*domain.Run, error)

	// Latest returns the most recent run, or an error if none exist
	Latest(ctx context.Context) (*domain.Run, error)

	// List returns all runs, newest first
	List(ctx context.Context) ([]domain.Run, error)

	// SaveImage writes a concept PNG into the run directory
	SaveImage(ctx context.Context, run *domain.Run, filename string, data []byte) error

	// HasImage reports whether a non-empty PNG already exists (resume support)
	HasImage(ctx context.Context, run *domain.Run, filename string) bool

	// SaveManifest writes generated.json for the run
	SaveManifest(ctx context.Context, run *domain.Run, concepts []domain.Concept) error

	// LoadManifest reads generated.json for the run
	LoadManifest(ctx context.Context, run *domain.Run) ([]domain.Concept, error)

	// SaveGallery writes index.html for the run
	SaveGallery(ctx context.Context, run *domain.Run, html []byte) error

	// SavePicks and LoadPicks round-trip the review selection.
	// LoadPicks returns empty picks when none were saved yet.
	SavePicks(ctx context.Context, run *domain.Run, picks domain.Picks) error
	LoadPicks(ctx context.Context, run *domain.Run) (domain.Picks, error)

	// Delete removes a run directory and everything in it
	Delete(ctx context.Context, run *domain.Run) error
}

// ImageGenerator defines the port for the image generation backend
type ImageGenerator interface {
	// Generate produces PNG bytes for a single prompt
	Generate(ctx context.Context, prompt string, opts domain.ImageOptions) ([]byte, error)
}

// GalleryRenderer defines the port for producing the review gallery page
type GalleryRenderer interface {
	// Render produces the index.html contents for a run
	Render(run *domain.Run, concepts []domain.Concept) ([]byte, error)
}
