package services

import (
	"context"
	"strings"
	"testing"

	"github.com/talchemy/logoforge/internal/adapters/gallery"
	"github.com/talchemy/logoforge/internal/core/domain"
	"github.com/talchemy/logoforge/internal/core/ports/mocks"
)

func testPrompts() []domain.Prompt {
	return []domain.Prompt{
		{ID: 1, Title: "Crucible T", Prompt: "a crucible forming a T"},
		{ID: 2, Title: "Gold Drop", Prompt: "a golden drop"},
		{ID: 3, Title: "Ember T", Prompt: "a glowing ember T"},
	}
}

func newGenerateFixture(t *testing.T) (*GenerateService, *mocks.MockPromptRepository, *mocks.MockRunRepository, *mocks.MockGenerator) {
	t.Helper()

	promptRepo := mocks.NewMockPromptRepository()
	runRepo := mocks.NewMockRunRepository()
	generator := mocks.NewMockGenerator()
	renderer := gallery.NewHTMLRenderer("Test Gallery", "sub")

	svc := NewGenerateService(promptRepo, runRepo, generator, renderer)
	return svc, promptRepo, runRepo, generator
}

func TestGenerateService_FullBatch(t *testing.T) {
	svc, promptRepo, runRepo, generator := newGenerateFixture(t)
	ctx := context.Background()

	promptRepo.Save(ctx, "prompts.json", testPrompts())

	resp, err := svc.Execute(ctx, GenerateRequest{
		PromptsPath: "prompts.json",
		MaxWorkers:  2,
	})
	if err != nil {
		t.Fatalf("Execute() returned error: %v", err)
	}

	if resp.Total != 3 || resp.Generated != 3 || resp.Skipped != 0 || resp.Failed != 0 {
		t.Errorf("unexpected counts: %+v", resp)
	}
	if generator.Calls() != 3 {
		t.Errorf("expected 3 generator calls, got %d", generator.Calls())
	}
	if runRepo.ImageCount(resp.Run.ID) != 3 {
		t.Errorf("expected 3 saved images, got %d", runRepo.ImageCount(resp.Run.ID))
	}

	// Manifest is ordered by prompt id regardless of completion order
	if len(resp.Concepts) != 3 {
		t.Fatalf("expected 3 manifest entries, got %d", len(resp.Concepts))
	}
	for i, c := range resp.Concepts {
		if c.ID != i+1 {
			t.Errorf("manifest out of order at %d: %+v", i, c)
		}
	}

	manifest, err := runRepo.LoadManifest(ctx, resp.Run)
	if err != nil {
		t.Fatalf("manifest not saved: %v", err)
	}
	if len(manifest) != 3 {
		t.Errorf("expected 3 saved manifest entries, got %d", len(manifest))
	}

	html := string(runRepo.Gallery(resp.Run.ID))
	if !strings.Contains(html, "Test Gallery") {
		t.Error("gallery was not rendered")
	}
	if strings.Count(html, "<figure>") != 3 {
		t.Error("gallery should contain all concepts")
	}
}

func TestGenerateService_ResumeSkipsExisting(t *testing.T) {
	svc, promptRepo, runRepo, generator := newGenerateFixture(t)
	ctx := context.Background()

	promptRepo.Save(ctx, "prompts.json", testPrompts())

	// Seed an existing run with one already-generated concept
	runRepo.NextRunID = "2026-08-29-10-00-00"
	run, err := runRepo.Create(ctx)
	if err != nil {
		t.Fatal(err)
	}
	runRepo.SaveImage(ctx, run, "01-crucible-t.png", []byte("existing"))

	resp, err := svc.Execute(ctx, GenerateRequest{
		PromptsPath: "prompts.json",
		RunID:       run.ID,
		MaxWorkers:  1,
	})
	if err != nil {
		t.Fatalf("Execute() returned error: %v", err)
	}

	if resp.Run.ID != run.ID {
		t.Errorf("expected resume into run %s, got %s", run.ID, resp.Run.ID)
	}
	if resp.Skipped != 1 || resp.Generated != 2 {
		t.Errorf("unexpected counts: skipped=%d generated=%d", resp.Skipped, resp.Generated)
	}
	if generator.Calls() != 2 {
		t.Errorf("expected 2 generator calls, got %d", generator.Calls())
	}

	// Skipped concepts still appear in the manifest
	if len(resp.Concepts) != 3 {
		t.Errorf("expected 3 manifest entries, got %d", len(resp.Concepts))
	}
}

func TestGenerateService_ResumeUnknownRun(t *testing.T) {
	svc, promptRepo, _, _ := newGenerateFixture(t)
	ctx := context.Background()

	promptRepo.Save(ctx, "prompts.json", testPrompts())

	_, err := svc.Execute(ctx, GenerateRequest{
		PromptsPath: "prompts.json",
		RunID:       "2020-01-01-00-00-00",
	})
	if err == nil {
		t.Fatal("expected error resuming into unknown run")
	}
}

func TestGenerateService_PartialFailure(t *testing.T) {
	svc, promptRepo, runRepo, generator := newGenerateFixture(t)
	ctx := context.Background()

	promptRepo.Save(ctx, "prompts.json", testPrompts())
	generator.FailPrompts["a golden drop"] = true

	var progressCalls int
	resp, err := svc.Execute(ctx, GenerateRequest{
		PromptsPath: "prompts.json",
		MaxWorkers:  2,
		Progress: func(res ConceptResult) {
			progressCalls++
		},
	})
	if err != nil {
		t.Fatalf("Execute() returned error: %v", err)
	}

	if resp.Failed != 1 || resp.Generated != 2 {
		t.Errorf("unexpected counts: failed=%d generated=%d", resp.Failed, resp.Generated)
	}
	if progressCalls != 3 {
		t.Errorf("expected 3 progress calls, got %d", progressCalls)
	}

	// Failed concept is excluded from the manifest
	manifest, err := runRepo.LoadManifest(ctx, resp.Run)
	if err != nil {
		t.Fatal(err)
	}
	if len(manifest) != 2 {
		t.Fatalf("expected 2 manifest entries, got %d", len(manifest))
	}
	for _, c := range manifest {
		if c.ID == 2 {
			t.Errorf("failed concept should not be in manifest: %+v", c)
		}
	}
}

func TestGenerateService_MissingPromptsFile(t *testing.T) {
	svc, _, _, _ := newGenerateFixture(t)

	_, err := svc.Execute(context.Background(), GenerateRequest{
		PromptsPath: "missing.json",
	})
	if err == nil {
		t.Fatal("expected error for missing prompts file")
	}
}

func TestGenerateService_SkipGallery(t *testing.T) {
	svc, promptRepo, runRepo, _ := newGenerateFixture(t)
	ctx := context.Background()

	promptRepo.Save(ctx, "prompts.json", testPrompts())

	resp, err := svc.Execute(ctx, GenerateRequest{
		PromptsPath: "prompts.json",
		SkipGallery: true,
	})
	if err != nil {
		t.Fatalf("Execute() returned error: %v", err)
	}

	if runRepo.Gallery(resp.Run.ID) != nil {
		t.Error("gallery should not be rendered with SkipGallery")
	}
}

func TestGenerateService_ContextCancelled(t *testing.T) {
	svc, promptRepo, _, _ := newGenerateFixture(t)

	ctx, cancel := context.WithCancel(context.Background())
	promptRepo.Save(ctx, "prompts.json", testPrompts())
	cancel()

	resp, err := svc.Execute(ctx, GenerateRequest{
		PromptsPath: "prompts.json",
		MaxWorkers:  1,
	})
	if err != nil {
		t.Fatalf("Execute() returned error: %v", err)
	}

	// All prompts report the cancellation as failures
	if resp.Failed != 3 {
		t.Errorf("expected 3 failed results, got %d", resp.Failed)
	}
}

func TestGenerateService_CancelMidBatch(t *testing.T) {
	svc, promptRepo, runRepo, generator := newGenerateFixture(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	promptRepo.Save(ctx, "prompts.json", testPrompts())
	generator.Block = make(chan struct{})

	done := make(chan *GenerateResponse, 1)
	go func() {
		resp, err := svc.Execute(ctx, GenerateRequest{
			PromptsPath: "prompts.json",
			MaxWorkers:  1,
		})
		if err != nil {
			t.Errorf("Execute() returned error: %v", err)
		}
		done <- resp
	}()

	// Let the single worker finish the first prompt, then pull the plug
	generator.Block <- struct{}{}
	cancel()

	resp := <-done
	if resp == nil {
		t.Fatal("Execute() returned no response")
	}

	if resp.Generated != 1 {
		t.Errorf("expected 1 generated concept, got %d", resp.Generated)
	}
	if resp.Failed != 2 {
		t.Errorf("expected 2 failed results, got %d", resp.Failed)
	}
	if len(resp.Concepts) != 1 || resp.Concepts[0].ID != 1 {
		t.Fatalf("expected manifest with only concept 1, got %+v", resp.Concepts)
	}

	// The saved manifest only holds work that actually completed
	manifest, err := runRepo.LoadManifest(context.Background(), resp.Run)
	if err != nil {
		t.Fatalf("manifest not saved: %v", err)
	}
	if len(manifest) != 1 || manifest[0].ID != 1 {
		t.Errorf("expected saved manifest with only concept 1, got %+v", manifest)
	}
}
