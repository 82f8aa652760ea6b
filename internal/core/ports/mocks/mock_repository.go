package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/talchemy/logoforge/internal/core/domain"
)

// MockRunRepository is an in-memory implementation of the RunRepository
// interface for testing
type MockRunRepository struct {
	mu        sync.RWMutex
	runs      map[string]*domain.Run
	images    map[string]map[string][]byte // run id -> filename -> data
	manifests map[string][]domain.Concept
	galleries map[string][]byte
	picks     map[string]domain.Picks

	// NextRunID overrides the generated id for deterministic tests
	NextRunID string

	// FailSaveImage makes SaveImage fail for the given filenames
	FailSaveImage map[string]bool
}

// NewMockRunRepository creates a new mock run repository
func NewMockRunRepository() *MockRunRepository {
	return &MockRunRepository{
		runs:          make(map[string]*domain.Run),
		images:        make(map[string]map[string][]byte),
		manifests:     make(map[string][]domain.Concept),
		galleries:     make(map[string][]byte),
		picks:         make(map[string]domain.Picks),
		FailSaveImage: make(map[string]bool),
	}
}

// Create makes a new run
func (m *MockRunRepository) Create(ctx context.Context) (*domain.Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.NextRunID
	if id == "" {
		id = domain.NewRunID()
	}
	run := &domain.Run{ID: id, Path: "/mock/out/" + id}
	m.runs[id] = run
	m.images[id] = make(map[string][]byte)
	return run, nil
}

// Get resolves a run by id
func (m *MockRunRepository) Get(ctx context.Context, id string) (*domain.Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	run, ok := m.runs[id]
	if !ok {
		return nil, fmt.Errorf("run not found: %s", id)
	}
	return run, nil
}

// Latest returns the newest run
func (m *MockRunRepository) Latest(ctx context.Context) (*domain.Run, error) {
	runs, err := m.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, fmt.Errorf("no runs found")
	}
	return &runs[0], nil
}

// List returns all runs, newest first
func (m *MockRunRepository) List(ctx context.Context) ([]domain.Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	runs := make([]domain.Run, 0, len(m.runs))
	for _, r := range m.runs {
		runs = append(runs, *r)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].ID > runs[j].ID
	})
	return runs, nil
}

// SaveImage stores image bytes in memory
func (m *MockRunRepository) SaveImage(ctx context.Context, run *domain.Run, filename string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailSaveImage[filename] {
		return fmt.Errorf("save failed for %s", filename)
	}
	if _, ok := m.images[run.ID]; !ok {
		m.images[run.ID] = make(map[string][]byte)
	}
	m.images[run.ID][filename] = data
	return nil
}

// HasImage reports whether a non-empty image exists
func (m *MockRunRepository) HasImage(ctx context.Context, run *domain.Run, filename string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.images[run.ID][filename]
	return ok && len(data) > 0
}

// ImageCount returns the number of stored images for a run (test helper)
func (m *MockRunRepository) ImageCount(runID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.images[runID])
}

// SaveManifest stores the manifest in memory
func (m *MockRunRepository) SaveManifest(ctx context.Context, run *domain.Run, concepts []domain.Concept) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.manifests[run.ID] = concepts
	return nil
}

// LoadManifest returns the stored manifest
func (m *MockRunRepository) LoadManifest(ctx context.Context, run *domain.Run) ([]domain.Concept, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	concepts, ok := m.manifests[run.ID]
	if !ok {
		return nil, fmt.Errorf("no manifest for run: %s", run.ID)
	}
	return concepts, nil
}

// SaveGallery stores the gallery page in memory
func (m *MockRunRepository) SaveGallery(ctx context.Context, run *domain.Run, html []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.galleries[run.ID] = html
	return nil
}

// Gallery returns the stored gallery page (test helper)
func (m *MockRunRepository) Gallery(runID string) []byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.galleries[runID]
}

// SavePicks stores the review selection
func (m *MockRunRepository) SavePicks(ctx context.Context, run *domain.Run, picks domain.Picks) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.picks[run.ID] = picks
	return nil
}

// LoadPicks returns the stored selection, empty if none saved
func (m *MockRunRepository) LoadPicks(ctx context.Context, run *domain.Run) (domain.Picks, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.picks[run.ID], nil
}

// Delete removes a run and its contents
func (m *MockRunRepository) Delete(ctx context.Context, run *domain.Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.runs[run.ID]; !ok {
		return fmt.Errorf("run not found: %s", run.ID)
	}
	delete(m.runs, run.ID)
	delete(m.images, run.ID)
	delete(m.manifests, run.ID)
	delete(m.galleries, run.ID)
	delete(m.picks, run.ID)
	return nil
}
