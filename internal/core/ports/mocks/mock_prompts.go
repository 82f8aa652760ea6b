package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/talchemy/logoforge/internal/core/domain"
)

// MockPromptRepository is an in-memory implementation of the
// PromptRepository interface for testing
type MockPromptRepository struct {
	mu    sync.RWMutex
	files map[string][]domain.Prompt
}

// NewMockPromptRepository creates a new mock prompt repository
func NewMockPromptRepository() *MockPromptRepository {
	return &MockPromptRepository{
		files: make(map[string][]domain.Prompt),
	}
}

// Load returns the prompts stored under path
func (m *MockPromptRepository) Load(ctx context.Context, path string) ([]domain.Prompt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	prompts, ok := m.files[path]
	if !ok {
		return nil, fmt.Errorf("prompts file not found: %s", path)
	}
	if err := domain.ValidatePrompts(prompts); err != nil {
		return nil, err
	}
	return prompts, nil
}

// Save stores prompts under path
func (m *MockPromptRepository) Save(ctx context.Context, path string, prompts []domain.Prompt) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.files[path] = prompts
	return nil
}
