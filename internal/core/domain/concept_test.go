package domain

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		expected string
	}{
		{"simple title", "Crucible T Monogram", "crucible-t-monogram"},
		{"special characters", "T + Alchemy: Gold!", "t-alchemy-gold"},
		{"multiple spaces", "Tall   T    Ligature", "tall-t-ligature"},
		{"leading and trailing junk", "  --Ember T--  ", "ember-t"},
		{"unicode stripped", "Té Alchemy ✨", "t-alchemy"},
		{"empty falls back", "", "logo"},
		{"only symbols falls back", "★☆★", "logo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.title); got != tt.expected {
				t.Errorf("Slugify(%q) = %q, want %q", tt.title, got, tt.expected)
			}
		})
	}
}

func TestConceptFilename(t *testing.T) {
	tests := []struct {
		name     string
		id       int
		title    string
		expected string
	}{
		{"single digit id padded", 3, "Crucible T", "03-crucible-t.png"},
		{"double digit id", 42, "Gold Drop", "42-gold-drop.png"},
		{"triple digit id", 101, "Extra", "101-extra.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ConceptFilename(tt.id, tt.title); got != tt.expected {
				t.Errorf("ConceptFilename(%d, %q) = %q, want %q", tt.id, tt.title, got, tt.expected)
			}
		})
	}
}

func TestConceptFilename_TruncatesLongTitles(t *testing.T) {
	title := strings.Repeat("alchemy ", 20)
	got := ConceptFilename(1, title)

	// "01-" + slug + ".png" with the slug capped at 60 runes
	if len(got) > len("01-")+60+len(".png") {
		t.Errorf("filename too long (%d): %q", len(got), got)
	}
	if strings.Contains(got, "-.png") {
		t.Errorf("truncation left a trailing hyphen: %q", got)
	}
}

func TestPrompt_Validate(t *testing.T) {
	tests := []struct {
		name        string
		prompt      Prompt
		expectError bool
	}{
		{"valid", Prompt{ID: 1, Title: "T Mark", Prompt: "a bold letter T"}, false},
		{"zero id", Prompt{ID: 0, Title: "T Mark", Prompt: "a bold letter T"}, true},
		{"negative id", Prompt{ID: -2, Title: "T Mark", Prompt: "a bold letter T"}, true},
		{"empty title", Prompt{ID: 1, Title: "  ", Prompt: "a bold letter T"}, true},
		{"empty prompt text", Prompt{ID: 1, Title: "T Mark", Prompt: ""}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.prompt.Validate()
			if tt.expectError && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidatePrompts(t *testing.T) {
	valid := []Prompt{
		{ID: 1, Title: "A", Prompt: "pa"},
		{ID: 2, Title: "B", Prompt: "pb"},
	}
	if err := ValidatePrompts(valid); err != nil {
		t.Errorf("unexpected error for valid manifest: %v", err)
	}

	if err := ValidatePrompts(nil); err == nil {
		t.Error("expected error for empty manifest")
	}

	dupes := []Prompt{
		{ID: 1, Title: "A", Prompt: "pa"},
		{ID: 1, Title: "B", Prompt: "pb"},
	}
	if err := ValidatePrompts(dupes); err == nil {
		t.Error("expected error for duplicate ids")
	}
}

func TestPrompt_Concept(t *testing.T) {
	p := Prompt{ID: 7, Title: "Ember T", Prompt: "a glowing T"}
	c := p.Concept()

	if c.ID != 7 || c.Title != "Ember T" || c.Prompt != "a glowing T" {
		t.Errorf("concept did not carry prompt fields: %+v", c)
	}
	if c.File != "07-ember-t.png" {
		t.Errorf("expected file '07-ember-t.png', got %q", c.File)
	}
}
