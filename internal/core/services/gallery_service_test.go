package services

import (
	"context"
	"strings"
	"testing"

	"github.com/talchemy/logoforge/internal/adapters/gallery"
	"github.com/talchemy/logoforge/internal/core/domain"
	"github.com/talchemy/logoforge/internal/core/ports/mocks"
)

func TestGalleryService_RebuildByID(t *testing.T) {
	repo := mocks.NewMockRunRepository()
	svc := NewGalleryService(repo, gallery.NewHTMLRenderer("Rebuilt", "sub"))
	ctx := context.Background()

	run := seedRun(t, repo, "2026-08-29-10-00-00", []domain.Concept{
		{ID: 1, Title: "A", Prompt: "pa", File: "01-a.png"},
		{ID: 2, Title: "B", Prompt: "pb", File: "02-b.png"},
	})

	resp, err := svc.Execute(ctx, GalleryRequest{RunID: run.ID})
	if err != nil {
		t.Fatalf("Execute() returned error: %v", err)
	}

	if resp.Concepts != 2 {
		t.Errorf("expected 2 concepts, got %d", resp.Concepts)
	}

	html := string(repo.Gallery(run.ID))
	if !strings.Contains(html, "Rebuilt") {
		t.Error("gallery was not written")
	}
}

func TestGalleryService_DefaultsToLatest(t *testing.T) {
	repo := mocks.NewMockRunRepository()
	svc := NewGalleryService(repo, gallery.NewHTMLRenderer("T", "s"))
	ctx := context.Background()

	seedRun(t, repo, "2026-08-27-10-00-00", []domain.Concept{
		{ID: 1, Title: "Old", Prompt: "p", File: "01-old.png"},
	})
	latest := seedRun(t, repo, "2026-08-29-10-00-00", []domain.Concept{
		{ID: 1, Title: "New", Prompt: "p", File: "01-new.png"},
	})

	resp, err := svc.Execute(ctx, GalleryRequest{})
	if err != nil {
		t.Fatalf("Execute() returned error: %v", err)
	}
	if resp.Run.ID != latest.ID {
		t.Errorf("expected latest run %s, got %s", latest.ID, resp.Run.ID)
	}
}

func TestGalleryService_NoManifest(t *testing.T) {
	repo := mocks.NewMockRunRepository()
	svc := NewGalleryService(repo, gallery.NewHTMLRenderer("T", "s"))

	run := seedRun(t, repo, "2026-08-29-10-00-00", nil)

	if _, err := svc.Execute(context.Background(), GalleryRequest{RunID: run.ID}); err == nil {
		t.Error("expected error for run without manifest")
	}
}

func TestGalleryService_NoRuns(t *testing.T) {
	repo := mocks.NewMockRunRepository()
	svc := NewGalleryService(repo, gallery.NewHTMLRenderer("T", "s"))

	if _, err := svc.Execute(context.Background(), GalleryRequest{}); err == nil {
		t.Error("expected error when no runs exist")
	}
}
