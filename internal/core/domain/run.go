package domain

import (
	"fmt"
	"strings"
	"time"
)

// runIDLayout is the timestamp format used for run directory names,
// e.g. "2026-08-29-14-05-33". Lexical order equals chronological order.
const runIDLayout = "2006-01-02-15-04-05"

// Manifest and gallery filenames inside a run directory
const (
	ManifestFile = "generated.json"
	GalleryFile  = "index.html"
	PicksFile    = "picks.json"
)

// Run represents one generation run: a timestamped output directory
// holding concept PNGs, the manifest and the gallery page.
type Run struct {
	ID   string // e.g. "2026-08-29-14-05-33"
	Path string // absolute path of the run directory
}

// NewRunID creates a run identifier from the current time
func NewRunID() string {
	return time.Now().Format(runIDLayout)
}

// ValidRunID reports whether s looks like a run directory name
func ValidRunID(s string) bool {
	_, err := time.Parse(runIDLayout, s)
	return err == nil
}

// RunTime parses the timestamp embedded in a run id
func RunTime(id string) (time.Time, error) {
	t, err := time.Parse(runIDLayout, id)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid run id %q: %w", id, err)
	}
	return t, nil
}

// DisplayDate returns a human-readable form of the run timestamp
func (r Run) DisplayDate() string {
	t, err := RunTime(r.ID)
	if err != nil {
		return r.ID
	}
	return t.Format("Jan 02, 2006 15:04")
}

// Picks holds the concept ids selected during review
type Picks struct {
	ConceptIDs []int `json:"concept_ids"`
}

// Has reports whether a concept id is picked
func (p Picks) Has(id int) bool {
	for _, c := range p.ConceptIDs {
		if c == id {
			return true
		}
	}
	return false
}

// Toggle adds the id if absent, removes it if present
func (p *Picks) Toggle(id int) {
	for i, c := range p.ConceptIDs {
		if c == id {
			p.ConceptIDs = append(p.ConceptIDs[:i], p.ConceptIDs[i+1:]...)
			return
		}
	}
	p.ConceptIDs = append(p.ConceptIDs, id)
}

// SummaryLine is used by list output: "42 concepts, 5 picked"
func SummaryLine(concepts, picks int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d concepts", concepts)
	if picks > 0 {
		fmt.Fprintf(&sb, ", %d picked", picks)
	}
	return sb.String()
}
