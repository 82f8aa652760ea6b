package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/talchemy/logoforge/internal/core/domain"
	"github.com/talchemy/logoforge/internal/core/ports"
)

// FilePromptRepository reads and writes prompts.json manifests
type FilePromptRepository struct{}

// NewFilePromptRepository creates a new file-based prompt repository
func NewFilePromptRepository() *FilePromptRepository {
	return &FilePromptRepository{}
}

// Ensure it implements the interface
var _ ports.PromptRepository = (*FilePromptRepository)(nil)

// Load reads and validates a prompts manifest
func (r *FilePromptRepository) Load(ctx context.Context, path string) ([]domain.Prompt, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompts file %s: %w", path, err)
	}

	var prompts []domain.Prompt
	if err := json.Unmarshal(data, &prompts); err != nil {
		return nil, fmt.Errorf("failed to parse prompts file %s: %w", path, err)
	}

	if err := domain.ValidatePrompts(prompts); err != nil {
		return nil, fmt.Errorf("invalid prompts file %s: %w", path, err)
	}

	return prompts, nil
}

// Save writes a prompts manifest with indentation for hand editing
func (r *FilePromptRepository) Save(ctx context.Context, path string, prompts []domain.Prompt) error {
	data, err := json.MarshalIndent(prompts, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal prompts: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write prompts file: %w", err)
	}
	return nil
}
