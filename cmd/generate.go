package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/talchemy/logoforge/internal/core/domain"
	"github.com/talchemy/logoforge/internal/core/services"
	"github.com/talchemy/logoforge/pkg/ui"
)

var (
	generatePrompts   string
	generateRun       string
	generateJobs      int
	generateModel     string
	generateSize      string
	generateQuality   string
	generateStyle     string
	generateNoGallery bool
	generateOpen      bool
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen"},
	Short:   "Run a prompt batch and build a new run (alias: gen)",
	Long: `Generate one PNG per prompt in the manifest and collect them in a
timestamped run directory under out/, together with generated.json and the
review gallery.

Already-generated concepts are skipped when resuming into an existing run
with --run, so an interrupted batch can be picked up where it stopped.

Examples:
  logoforge generate
  logoforge generate --prompts prompts2-lockup.json --jobs 4
  logoforge generate --run 2026-08-29-14-05-33
  logoforge generate --size 1792x1024 --quality standard --open`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generatePrompts, "prompts", "p", "", "Prompts manifest to use (default from config)")
	generateCmd.Flags().StringVarP(&generateRun, "run", "r", "", "Resume into an existing run instead of creating a new one")
	generateCmd.Flags().IntVarP(&generateJobs, "jobs", "j", 0, "Number of concurrent workers (default from config)")
	generateCmd.Flags().StringVar(&generateModel, "model", "", "Image model (default from config)")
	generateCmd.Flags().StringVar(&generateSize, "size", "", "Image size, e.g. 1024x1024 (default from config)")
	generateCmd.Flags().StringVar(&generateQuality, "quality", "", "Image quality (default from config)")
	generateCmd.Flags().StringVar(&generateStyle, "style", "", "Image style (default from config)")
	generateCmd.Flags().BoolVar(&generateNoGallery, "no-gallery", false, "Skip rendering index.html")
	generateCmd.Flags().BoolVar(&generateOpen, "open", false, "Open the gallery in the browser when done")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	svc, err := newGenerateService()
	if err != nil {
		fmt.Println(ui.FormatError("Missing API key"))
		return err
	}

	promptsPath := appWorkspace.PromptsPath(generatePrompts)
	if generatePrompts == "" {
		promptsPath = appWorkspace.PromptsPath(appConfig.PromptsFile)
	}

	jobs := generateJobs
	if jobs <= 0 {
		jobs = appConfig.MaxWorkers
	}

	opts := domain.ImageOptions{
		Model:   firstNonEmpty(generateModel, appConfig.Model),
		Size:    firstNonEmpty(generateSize, appConfig.Size),
		Quality: firstNonEmpty(generateQuality, appConfig.Quality),
		Style:   firstNonEmpty(generateStyle, appConfig.Style),
	}

	fmt.Println(ui.FormatBrush("Generating logo concepts..."))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Prompts", promptsPath))
	fmt.Println(ui.RenderKeyValue("Model", opts.Model))
	fmt.Println(ui.RenderKeyValue("Size", opts.Size))
	fmt.Println(ui.RenderKeyValue("Workers", fmt.Sprintf("%d", jobs)))
	fmt.Println()

	var done int
	req := services.GenerateRequest{
		PromptsPath: promptsPath,
		RunID:       generateRun,
		MaxWorkers:  jobs,
		Options:     opts,
		SkipGallery: generateNoGallery,
		Progress: func(res services.ConceptResult) {
			done++
			switch {
			case res.Err != nil:
				fmt.Printf("[%d] %s %s\n", done, ui.FormatError(res.Concept.Title), ui.FormatMuted(res.Err.Error()))
			case res.Skipped:
				fmt.Printf("[%d] %s %s\n", done, res.Concept.Title, ui.FormatMuted("(skip)"))
			default:
				fmt.Printf("[%d] %s\n", done, res.Concept.Title)
			}
		},
	}

	ctx := getContext()
	resp, err := svc.Execute(ctx, req)
	if err != nil {
		fmt.Println(ui.FormatError("Generation failed"))
		return err
	}

	fmt.Println()
	fmt.Println(ui.FormatSuccess(fmt.Sprintf("Run %s complete", resp.Run.ID)))
	fmt.Println(ui.RenderKeyValue("Generated", fmt.Sprintf("%d", resp.Generated)))
	if resp.Skipped > 0 {
		fmt.Println(ui.RenderKeyValue("Skipped", fmt.Sprintf("%d", resp.Skipped)))
	}
	if resp.Failed > 0 {
		fmt.Println(ui.FormatWarning(fmt.Sprintf("%d concepts failed and were left out of the manifest", resp.Failed)))
	}

	if !generateNoGallery {
		galleryPath := filepath.Join(resp.Run.Path, domain.GalleryFile)
		fmt.Println(ui.RenderKeyValue("Gallery", galleryPath))

		if generateOpen || appConfig.OpenAfterGenerate {
			if err := OpenFile(galleryPath, appConfig.Browser); err != nil {
				fmt.Println(ui.FormatWarning("Failed to open gallery: " + err.Error()))
			}
		}
	}

	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
