package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/talchemy/logoforge/internal/core/domain"
	"github.com/talchemy/logoforge/internal/core/services"
	"github.com/talchemy/logoforge/pkg/ui"
)

// openCmd represents the open command
var openCmd = &cobra.Command{
	Use:   "open [run-id]",
	Short: "Open the gallery of a run in your browser",
	Long: `Open the index.html gallery of a run in your browser. Without an
argument the latest run is opened. If the gallery file is missing it is
rendered from the run manifest first.

Examples:
  logoforge open
  logoforge open 2026-08-29-14-05-33`,
	Args: cobra.MaximumNArgs(1),
	RunE: runOpenGallery,
}

func runOpenGallery(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	runID := ""
	if len(args) > 0 {
		runID = args[0]
	}

	run, err := resolveRun(ctx, runID)
	if err != nil {
		fmt.Println(ui.FormatError("Run not found"))
		return err
	}

	galleryPath := filepath.Join(run.Path, domain.GalleryFile)

	// Render the gallery on the fly if a previous run skipped it
	if _, statErr := os.Stat(galleryPath); statErr != nil {
		if _, err := galleryService.Execute(ctx, services.GalleryRequest{RunID: run.ID}); err != nil {
			fmt.Println(ui.FormatError("Failed to render gallery"))
			return err
		}
		fmt.Println(ui.FormatInfo("Rendered missing gallery for run " + run.ID))
	}

	fmt.Println(ui.FormatInfo("Opening: " + galleryPath))
	return OpenFile(galleryPath, appConfig.Browser)
}
