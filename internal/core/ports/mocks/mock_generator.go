package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/talchemy/logoforge/internal/core/domain"
)

// MockGenerator is a mock implementation of the ImageGenerator interface
// for testing
type MockGenerator struct {
	mu      sync.Mutex
	prompts []string

	// Data is returned for every successful call
	Data []byte

	// FailPrompts makes Generate fail for specific prompt texts
	FailPrompts map[string]bool

	// Block, when set, makes Generate wait for a receive on the channel
	// (or ctx cancellation) before proceeding. Lets tests stage how far a
	// batch gets before being interrupted.
	Block chan struct{}
}

// NewMockGenerator creates a new mock generator returning fixed PNG bytes
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{
		Data:        []byte("png-bytes"),
		FailPrompts: make(map[string]bool),
	}
}

// Generate records the prompt and returns the configured bytes
func (m *MockGenerator) Generate(ctx context.Context, prompt string, opts domain.ImageOptions) ([]byte, error) {
	if m.Block != nil {
		select {
		case <-m.Block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailPrompts[prompt] {
		return nil, fmt.Errorf("generation failed for prompt: %s", prompt)
	}
	m.prompts = append(m.prompts, prompt)
	return m.Data, nil
}

// Prompts returns the prompts seen so far
func (m *MockGenerator) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, len(m.prompts))
	copy(out, m.prompts)
	return out
}

// Calls returns the number of successful generations
func (m *MockGenerator) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}
