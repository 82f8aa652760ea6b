package gallery

import (
	"strings"
	"testing"

	"github.com/talchemy/logoforge/internal/core/domain"
)

func testRun() *domain.Run {
	return &domain.Run{ID: "2026-08-29-14-05-33", Path: "/out/2026-08-29-14-05-33"}
}

func TestRender_Basics(t *testing.T) {
	r := NewHTMLRenderer("T Alchemy", "Generated concepts for review.")

	concepts := []domain.Concept{
		{ID: 1, Title: "Crucible T", Prompt: "a crucible forming a T", File: "01-crucible-t.png"},
		{ID: 2, Title: "Gold Drop", Prompt: "a golden drop", File: "02-gold-drop.png"},
	}

	out, err := r.Render(testRun(), concepts)
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	html := string(out)

	if !strings.Contains(html, "<title>T Alchemy</title>") {
		t.Error("missing page title")
	}
	if !strings.Contains(html, "T Alchemy — 2 Concepts (PNG)") {
		t.Error("missing heading with concept count")
	}
	if got := strings.Count(html, "<figure>"); got != 2 {
		t.Errorf("expected 2 figures, got %d", got)
	}
	if !strings.Contains(html, `<img src="01-crucible-t.png" loading="lazy" />`) {
		t.Error("missing lazy-loaded image tag")
	}
	if !strings.Contains(html, "<strong>02.</strong> Gold Drop") {
		t.Error("missing zero-padded caption number")
	}
	if !strings.Contains(html, "<small>a golden drop</small>") {
		t.Error("missing prompt text in caption")
	}
}

func TestRender_EscapesPromptText(t *testing.T) {
	r := NewHTMLRenderer("T Alchemy", "sub")

	concepts := []domain.Concept{
		{ID: 1, Title: "Tricky <Title>", Prompt: `a "quoted" <b>prompt</b>`, File: "01-tricky.png"},
	}

	out, err := r.Render(testRun(), concepts)
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	html := string(out)

	if strings.Contains(html, "<b>prompt</b>") {
		t.Error("prompt text was not escaped")
	}
	if !strings.Contains(html, "Tricky &lt;Title&gt;") {
		t.Error("title was not escaped")
	}
}

func TestRender_EmptyManifest(t *testing.T) {
	r := NewHTMLRenderer("T Alchemy", "sub")

	out, err := r.Render(testRun(), nil)
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	html := string(out)

	if strings.Contains(html, "<figure>") {
		t.Error("empty manifest should render no figures")
	}
	if !strings.Contains(html, `<div class="grid">`) {
		t.Error("grid container should still be present")
	}
}
