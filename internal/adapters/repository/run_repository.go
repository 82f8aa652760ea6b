package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/talchemy/logoforge/internal/core/domain"
	"github.com/talchemy/logoforge/internal/core/ports"
	"github.com/talchemy/logoforge/pkg/workspace"
)

// FileRunRepository manages run directories under the workspace out/ tree
type FileRunRepository struct {
	ws *workspace.Workspace
	mu sync.RWMutex
}

// NewFileRunRepository creates a new file-based run repository
func NewFileRunRepository(ws *workspace.Workspace) *FileRunRepository {
	return &FileRunRepository{
		ws: ws,
	}
}

// Ensure it implements the interface
var _ ports.RunRepository = (*FileRunRepository)(nil)

// Create makes a new timestamped run directory
func (r *FileRunRepository) Create(ctx context.Context) (*domain.Run, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ws.EnsureOut(); err != nil {
		return nil, err
	}

	id := domain.NewRunID()
	path := r.ws.RunPath(id)
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create run directory: %w", err)
	}

	return &domain.Run{ID: id, Path: path}, nil
}

// Get resolves an existing run by id
func (r *FileRunRepository) Get(ctx context.Context, id string) (*domain.Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !domain.ValidRunID(id) {
		return nil, fmt.Errorf("invalid run id: %s", id)
	}

	path := r.ws.RunPath(id)
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("run not found: %s", id)
	}

	return &domain.Run{ID: id, Path: path}, nil
}

// Latest returns the most recent run
func (r *FileRunRepository) Latest(ctx context.Context) (*domain.Run, error) {
	runs, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, fmt.Errorf("no runs found in %s", r.ws.OutPath)
	}
	return &runs[0], nil
}

// List returns all runs, newest first. Run ids are timestamps, so lexical
// order is chronological order.
func (r *FileRunRepository) List(ctx context.Context) ([]domain.Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries, err := os.ReadDir(r.ws.OutPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read output directory: %w", err)
	}

	var runs []domain.Run
	for _, entry := range entries {
		if !entry.IsDir() || !domain.ValidRunID(entry.Name()) {
			continue
		}
		runs = append(runs, domain.Run{
			ID:   entry.Name(),
			Path: r.ws.RunPath(entry.Name()),
		})
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].ID > runs[j].ID
	})
	return runs, nil
}

// SaveImage writes a concept PNG into the run directory
func (r *FileRunRepository) SaveImage(ctx context.Context, run *domain.Run, filename string, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	path := filepath.Join(run.Path, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write image %s: %w", filename, err)
	}
	return nil
}

// HasImage reports whether a non-empty PNG already exists. Zero-byte files
// count as missing so interrupted downloads are retried on resume.
func (r *FileRunRepository) HasImage(ctx context.Context, run *domain.Run, filename string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	info, err := os.Stat(filepath.Join(run.Path, filename))
	return err == nil && info.Size() > 0
}

// SaveManifest writes generated.json for the run
func (r *FileRunRepository) SaveManifest(ctx context.Context, run *domain.Run, concepts []domain.Concept) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.MarshalIndent(concepts, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	path := filepath.Join(run.Path, domain.ManifestFile)
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// LoadManifest reads generated.json for the run
func (r *FileRunRepository) LoadManifest(ctx context.Context, run *domain.Run) ([]domain.Concept, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	path := filepath.Join(run.Path, domain.ManifestFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest for run %s: %w", run.ID, err)
	}

	var concepts []domain.Concept
	if err := json.Unmarshal(data, &concepts); err != nil {
		return nil, fmt.Errorf("failed to parse manifest for run %s: %w", run.ID, err)
	}
	return concepts, nil
}

// SaveGallery writes index.html for the run
func (r *FileRunRepository) SaveGallery(ctx context.Context, run *domain.Run, html []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	path := filepath.Join(run.Path, domain.GalleryFile)
	if err := os.WriteFile(path, html, 0644); err != nil {
		return fmt.Errorf("failed to write gallery: %w", err)
	}
	return nil
}

// SavePicks writes picks.json for the run
func (r *FileRunRepository) SavePicks(ctx context.Context, run *domain.Run, picks domain.Picks) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.MarshalIndent(picks, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal picks: %w", err)
	}

	path := filepath.Join(run.Path, domain.PicksFile)
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write picks: %w", err)
	}
	return nil
}

// LoadPicks reads picks.json, returning empty picks when none were saved
func (r *FileRunRepository) LoadPicks(ctx context.Context, run *domain.Run) (domain.Picks, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	path := filepath.Join(run.Path, domain.PicksFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Picks{}, nil
		}
		return domain.Picks{}, fmt.Errorf("failed to read picks for run %s: %w", run.ID, err)
	}

	var picks domain.Picks
	if err := json.Unmarshal(data, &picks); err != nil {
		return domain.Picks{}, fmt.Errorf("failed to parse picks for run %s: %w", run.ID, err)
	}
	return picks, nil
}

// Delete removes a run directory and everything in it
func (r *FileRunRepository) Delete(ctx context.Context, run *domain.Run) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Refuse to delete anything outside the out/ tree
	if filepath.Dir(run.Path) != r.ws.OutPath {
		return fmt.Errorf("refusing to delete path outside output directory: %s", run.Path)
	}

	if err := os.RemoveAll(run.Path); err != nil {
		return fmt.Errorf("failed to delete run %s: %w", run.ID, err)
	}
	return nil
}
