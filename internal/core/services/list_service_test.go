package services

import (
	"context"
	"testing"

	"github.com/talchemy/logoforge/internal/core/domain"
	"github.com/talchemy/logoforge/internal/core/ports/mocks"
)

func seedRun(t *testing.T, repo *mocks.MockRunRepository, id string, concepts []domain.Concept) *domain.Run {
	t.Helper()
	ctx := context.Background()

	repo.NextRunID = id
	run, err := repo.Create(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if concepts != nil {
		if err := repo.SaveManifest(ctx, run, concepts); err != nil {
			t.Fatal(err)
		}
	}
	return run
}

func TestListService_Runs(t *testing.T) {
	repo := mocks.NewMockRunRepository()
	svc := NewListService(repo)
	ctx := context.Background()

	seedRun(t, repo, "2026-08-27-10-00-00", []domain.Concept{
		{ID: 1, Title: "A", Prompt: "pa", File: "01-a.png"},
	})
	runB := seedRun(t, repo, "2026-08-29-10-00-00", []domain.Concept{
		{ID: 1, Title: "A", Prompt: "pa", File: "01-a.png"},
		{ID: 2, Title: "B", Prompt: "pb", File: "02-b.png"},
	})
	// Run without a manifest still shows up
	seedRun(t, repo, "2026-08-28-10-00-00", nil)

	repo.SavePicks(ctx, runB, domain.Picks{ConceptIDs: []int{2}})

	resp, err := svc.Runs(ctx)
	if err != nil {
		t.Fatalf("Runs() returned error: %v", err)
	}

	if resp.Total != 3 {
		t.Fatalf("expected 3 runs, got %d", resp.Total)
	}
	if resp.Runs[0].Run.ID != "2026-08-29-10-00-00" {
		t.Errorf("expected newest run first, got %q", resp.Runs[0].Run.ID)
	}
	if resp.Runs[0].Concepts != 2 || resp.Runs[0].Picks != 1 {
		t.Errorf("unexpected counts for newest run: %+v", resp.Runs[0])
	}
	if resp.Runs[1].Concepts != 0 {
		t.Errorf("manifest-less run should report 0 concepts: %+v", resp.Runs[1])
	}
}

func TestListService_Runs_Empty(t *testing.T) {
	svc := NewListService(mocks.NewMockRunRepository())

	resp, err := svc.Runs(context.Background())
	if err != nil {
		t.Fatalf("Runs() returned error: %v", err)
	}
	if resp.Total != 0 {
		t.Errorf("expected 0 runs, got %d", resp.Total)
	}
}

func TestListService_Concepts(t *testing.T) {
	repo := mocks.NewMockRunRepository()
	svc := NewListService(repo)
	ctx := context.Background()

	concepts := []domain.Concept{
		{ID: 1, Title: "Crucible T", Prompt: "a crucible forming a T", File: "01-crucible-t.png"},
		{ID: 2, Title: "Gold Drop", Prompt: "a golden drop", File: "02-gold-drop.png"},
		{ID: 3, Title: "Ember", Prompt: "glowing gold embers", File: "03-ember.png"},
	}
	run := seedRun(t, repo, "2026-08-29-10-00-00", concepts)

	tests := []struct {
		name          string
		request       ConceptsRequest
		expectedCount int
		expectError   bool
	}{
		{"all concepts by run id", ConceptsRequest{RunID: run.ID}, 3, false},
		{"latest run by default", ConceptsRequest{}, 3, false},
		{"filter by title", ConceptsRequest{RunID: run.ID, Query: "crucible"}, 1, false},
		{"filter matches prompt text", ConceptsRequest{RunID: run.ID, Query: "gold"}, 2, false},
		{"filter case insensitive", ConceptsRequest{RunID: run.ID, Query: "CRUCIBLE"}, 1, false},
		{"filter no matches", ConceptsRequest{RunID: run.ID, Query: "nonexistent"}, 0, false},
		{"unknown run", ConceptsRequest{RunID: "2020-01-01-00-00-00"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Concepts(ctx, tt.request)
			if tt.expectError {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp.Total != tt.expectedCount {
				t.Errorf("expected %d concepts, got %d", tt.expectedCount, resp.Total)
			}
		})
	}
}
