package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// maxSlugLen caps the slug portion of a concept filename so long titles
// still produce portable filenames.
const maxSlugLen = 60

// Prompt represents one entry of the prompts manifest: a candidate logo
// concept described as text, before any image exists for it.
type Prompt struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Prompt string `json:"prompt"`
}

// Concept represents a generated logo concept: a prompt plus the PNG file
// produced for it inside a run directory. This is the shape of one entry in
// generated.json.
type Concept struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Prompt string `json:"prompt"`
	File   string `json:"file"`
}

// Slugify creates a filename-friendly slug from a concept title
// Converts "Crucible T Monogram" -> "crucible-t-monogram"
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))

	reg := regexp.MustCompile(`[^a-z0-9]+`)
	slug = reg.ReplaceAllString(slug, "-")

	slug = strings.Trim(slug, "-")

	reg = regexp.MustCompile(`-+`)
	slug = reg.ReplaceAllString(slug, "-")

	if slug == "" {
		return "logo"
	}
	return slug
}

// ConceptFilename creates the PNG filename for a concept.
// Format: NN-slug.png, e.g. "03-crucible-t-monogram.png"
func ConceptFilename(id int, title string) string {
	slug := Slugify(title)
	if len(slug) > maxSlugLen {
		slug = strings.Trim(slug[:maxSlugLen], "-")
	}
	return fmt.Sprintf("%02d-%s.png", id, slug)
}

// Validate checks that a prompt is usable for generation
func (p Prompt) Validate() error {
	if p.ID <= 0 {
		return fmt.Errorf("prompt id must be positive, got %d", p.ID)
	}
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("prompt %d: title cannot be empty", p.ID)
	}
	if strings.TrimSpace(p.Prompt) == "" {
		return fmt.Errorf("prompt %d: prompt text cannot be empty", p.ID)
	}
	return nil
}

// ValidatePrompts checks a whole manifest and rejects duplicate ids
func ValidatePrompts(prompts []Prompt) error {
	if len(prompts) == 0 {
		return fmt.Errorf("prompts manifest is empty")
	}

	seen := make(map[int]bool, len(prompts))
	for _, p := range prompts {
		if err := p.Validate(); err != nil {
			return err
		}
		if seen[p.ID] {
			return fmt.Errorf("duplicate prompt id: %d", p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}

// Concept builds the manifest entry for a prompt
func (p Prompt) Concept() Concept {
	return Concept{
		ID:     p.ID,
		Title:  p.Title,
		Prompt: p.Prompt,
		File:   ConceptFilename(p.ID, p.Title),
	}
}

// ImageOptions holds the generation parameters passed to the image backend
type ImageOptions struct {
	Model   string
	Size    string
	Quality string
	Style   string
}
