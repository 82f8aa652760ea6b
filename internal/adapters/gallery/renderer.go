package gallery

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/talchemy/logoforge/internal/core/domain"
	"github.com/talchemy/logoforge/internal/core/ports"
)

// pageTemplate is the whole gallery page. It is deliberately dumb: a grid of
// figure cards over the manifest, nothing else.
const pageTemplate = `<!doctype html>
<meta charset="utf-8" />
<title>{{.Title}}</title>
<style>
  :root { color-scheme: dark; }
  body { margin: 24px; font: 14px/1.4 ui-sans-serif, system-ui; background: #0b0f14; color: #e8edf2; }
  h1 { font-size: 20px; margin: 0 0 8px; }
  p { margin: 0 0 18px; color: #b7c2cc; }
  .grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(260px, 1fr)); gap: 16px; }
  figure { margin: 0; padding: 12px; border: 1px solid #1e2a36; border-radius: 14px; background: #0f1620; }
  img { width: 100%; height: auto; border-radius: 10px; display: block; background: #ffffff; }
  figcaption { margin-top: 10px; color: #b7c2cc; }
  small { color: #8ea2b2; }
</style>
<h1>{{.Heading}}</h1>
<p>{{.Subtitle}}</p>
<div class="grid">
{{- range .Concepts}}
<figure>
  <a href="{{.File}}"><img src="{{.File}}" loading="lazy" /></a>
  <figcaption><strong>{{printf "%02d" .ID}}.</strong> {{.Title}}<br/><small>{{.Prompt}}</small></figcaption>
</figure>
{{- end}}
</div>
`

type pageData struct {
	Title    string
	Heading  string
	Subtitle string
	Concepts []domain.Concept
}

// HTMLRenderer produces the static review gallery for a run
type HTMLRenderer struct {
	title    string
	subtitle string
	tmpl     *template.Template
}

// NewHTMLRenderer creates a renderer with the given page title and subtitle
func NewHTMLRenderer(title, subtitle string) *HTMLRenderer {
	return &HTMLRenderer{
		title:    title,
		subtitle: subtitle,
		tmpl:     template.Must(template.New("gallery").Parse(pageTemplate)),
	}
}

// Ensure it implements the interface
var _ ports.GalleryRenderer = (*HTMLRenderer)(nil)

// Render produces the index.html contents for a run
func (r *HTMLRenderer) Render(run *domain.Run, concepts []domain.Concept) ([]byte, error) {
	data := pageData{
		Title:    r.title,
		Heading:  fmt.Sprintf("%s — %d Concepts (PNG)", r.title, len(concepts)),
		Subtitle: r.subtitle,
		Concepts: concepts,
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render gallery: %w", err)
	}
	return buf.Bytes(), nil
}
