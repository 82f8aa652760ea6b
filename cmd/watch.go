package cmd

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/talchemy/logoforge/internal/core/services"
	"github.com/talchemy/logoforge/pkg/ui"
)

var (
	watchRun   string
	watchQuiet bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch a run and re-render its gallery on changes",
	Long: `Watch a run directory and rebuild its index.html whenever images or
picks change.

This monitors the run for:
  - New or replaced .png files
  - Changes to picks.json or generated.json

Useful while a generate batch is filling the run from another terminal, or
when curating files by hand. Open the gallery in a browser and refresh to
see updates.

Use --quiet to suppress re-render notifications.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchRun, "run", "r", "", "Run to watch (default latest)")
	watchCmd.Flags().BoolVarP(&watchQuiet, "quiet", "q", false, "Suppress re-render notifications")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	run, err := resolveRun(ctx, watchRun)
	if err != nil {
		fmt.Println(ui.FormatError("Run not found"))
		return err
	}

	// Create file watcher
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(run.Path); err != nil {
		return fmt.Errorf("failed to watch run directory: %w", err)
	}

	if !watchQuiet {
		fmt.Println(ui.FormatRocket("Watching run " + run.ID))
		fmt.Println(ui.FormatMuted("Directory: " + run.Path))
		fmt.Println(ui.FormatMuted("Press Ctrl+C to stop"))
		fmt.Println()
	}

	// Debounce timer to avoid re-rendering for every file in a burst
	var debounceTimer *time.Timer
	debounceDuration := appConfig.WatchDebounce()
	needsRender := false

	doRender := func() {
		if !needsRender {
			return
		}
		needsRender = false

		resp, err := galleryService.Execute(ctx, services.GalleryRequest{RunID: run.ID})
		if err != nil {
			if !watchQuiet {
				fmt.Println(ui.FormatError("Gallery render failed: " + err.Error()))
			}
			log.Printf("Render error: %v", err)
			return
		}

		if !watchQuiet {
			fmt.Println(ui.FormatSuccess(fmt.Sprintf("Gallery updated (%d concepts)", resp.Concepts)))
		}
	}

	// Event loop
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			baseName := filepath.Base(event.Name)

			// index.html writes are our own output, skip them to avoid loops
			if baseName == "index.html" {
				continue
			}
			// Filter out temporary/hidden files
			if strings.HasPrefix(baseName, ".") || strings.HasPrefix(baseName, "~") {
				continue
			}
			if !strings.HasSuffix(baseName, ".png") &&
				baseName != "picks.json" &&
				baseName != "generated.json" {
				continue
			}

			if event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Write) ||
				event.Has(fsnotify.Remove) ||
				event.Has(fsnotify.Rename) {

				needsRender = true

				// Reset debounce timer
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(debounceDuration, doRender)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("Watcher error: %v", err)

		case <-ctx.Done():
			if !watchQuiet {
				fmt.Println()
				fmt.Println(ui.FormatMuted("Watcher stopped"))
			}
			return nil
		}
	}
}
