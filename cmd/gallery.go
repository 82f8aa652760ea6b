package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/talchemy/logoforge/internal/core/domain"
	"github.com/talchemy/logoforge/internal/core/services"
	"github.com/talchemy/logoforge/pkg/ui"
)

var galleryRun string

// galleryCmd represents the gallery command
var galleryCmd = &cobra.Command{
	Use:   "gallery",
	Short: "Rebuild the review gallery for a run",
	Long: `Re-render index.html for a run from its generated.json manifest.

Useful after editing the manifest by hand or after changing the gallery
title in the config.

Examples:
  logoforge gallery                        # latest run
  logoforge gallery --run 2026-08-29-14-05-33`,
	RunE: runGallery,
}

func init() {
	galleryCmd.Flags().StringVarP(&galleryRun, "run", "r", "", "Run to rebuild (default: latest)")
}

func runGallery(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	resp, err := galleryService.Execute(ctx, services.GalleryRequest{RunID: galleryRun})
	if err != nil {
		fmt.Println(ui.FormatError("Failed to rebuild gallery"))
		return err
	}

	fmt.Println(ui.FormatSuccess(fmt.Sprintf("Gallery rebuilt for run %s (%d concepts)", resp.Run.ID, resp.Concepts)))
	fmt.Println(ui.FormatMuted(filepath.Join(resp.Run.Path, domain.GalleryFile)))
	return nil
}
