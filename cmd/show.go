package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/talchemy/logoforge/internal/core/domain"
	"github.com/talchemy/logoforge/internal/core/services"
	"github.com/talchemy/logoforge/pkg/ui"
)

var (
	showRun  string
	showOpen bool
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show the details of a concept",
	Long: `Show a concept from a run: its ID, title, full prompt text and image
file. Without an ID the concepts of the run are offered in a fuzzy finder.

Examples:
  logoforge show
  logoforge show 7
  logoforge show 7 --run 2026-08-29-14-05-33 --open`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().StringVarP(&showRun, "run", "r", "", "Run to read the concept from (default latest)")
	showCmd.Flags().BoolVarP(&showOpen, "open", "o", false, "Open the PNG in the default viewer")
}

func runShow(cmd *cobra.Command, args []string) error {
	id := ""
	if len(args) > 0 {
		id = args[0]
	}

	run, concept, err := selectConcept(showRun, id)
	if err != nil {
		return err
	}
	if concept == nil {
		return nil
	}

	picks, _ := reviewService.Load(getContext(), run)

	imagePath := filepath.Join(run.Path, concept.File)

	fmt.Println(ui.FormatTitle(fmt.Sprintf("%02d %s", concept.ID, concept.Title)))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Run", run.ID))
	fmt.Println(ui.RenderKeyValue("File", imagePath))
	fmt.Println(ui.RenderKeyValue("Picked", fmt.Sprintf("%t", picks.Has(concept.ID))))
	fmt.Println()
	fmt.Println(ui.StyleBold.Render("Prompt"))
	fmt.Println(wrapText(concept.Prompt, 76))

	if showOpen {
		return OpenFile(imagePath, "")
	}
	return nil
}

// selectConcept resolves a concept by ID, or via the fuzzy finder when id is empty.
// A nil concept with a nil error means the user cancelled the finder.
func selectConcept(runID, id string) (*domain.Run, *domain.Concept, error) {
	ctx := getContext()

	resp, err := listService.Concepts(ctx, services.ConceptsRequest{RunID: runID})
	if err != nil {
		fmt.Println(ui.FormatError("Failed to load concepts"))
		return nil, nil, err
	}
	if resp.Total == 0 {
		fmt.Println(ui.FormatWarning("Run has no concepts"))
		return nil, nil, fmt.Errorf("run '%s' has no concepts", resp.Run.ID)
	}

	if id != "" {
		for i := range resp.Concepts {
			if fmt.Sprintf("%d", resp.Concepts[i].ID) == id || fmt.Sprintf("%02d", resp.Concepts[i].ID) == id {
				return resp.Run, &resp.Concepts[i], nil
			}
		}
		return nil, nil, fmt.Errorf("concept '%s' not found in run '%s'", id, resp.Run.ID)
	}

	concepts := resp.Concepts
	idx, err := fuzzyfinder.Find(
		concepts,
		func(i int) string {
			c := concepts[i]
			return fmt.Sprintf("%02d  %s", c.ID, c.Title)
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			c := concepts[i]
			width := w/2 - 4
			if width < 20 {
				width = 20
			}
			return fmt.Sprintf("%s\n\n%s\n\n%s",
				ui.StyleBold.Render(c.Title),
				wrapText(c.Prompt, width),
				ui.StyleMuted.Render(c.File))
		}),
	)
	if err != nil {
		if isFinderAbort(err) {
			fmt.Println(ui.FormatInfo("Selection cancelled."))
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to select concept: %w", err)
	}

	return resp.Run, &concepts[idx], nil
}

// isFinderAbort reports whether the fuzzy finder exited because the user
// cancelled it, as opposed to a terminal failure.
func isFinderAbort(err error) bool {
	return errors.Is(err, fuzzyfinder.ErrAbort)
}

// wrapText breaks text into lines of at most width runes, on word boundaries
func wrapText(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var sb strings.Builder
	lineLen := 0
	for i, word := range words {
		if i > 0 {
			if lineLen+1+len(word) > width {
				sb.WriteString("\n")
				lineLen = 0
			} else {
				sb.WriteString(" ")
				lineLen++
			}
		}
		sb.WriteString(word)
		lineLen += len(word)
	}
	return sb.String()
}
