package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/talchemy/logoforge/pkg/config"
	"github.com/talchemy/logoforge/pkg/ui"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the health of your logoforge setup",
	Long: `Diagnose issues with your logoforge setup.

Checks for:
  - Workspace layout (prompts manifest, out/ directory)
  - API key (.env or environment)
  - Configuration file
  - Prompt manifest integrity`,
	Run: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) {
	fmt.Println(ui.FormatTitle("🏥 Logoforge Doctor"))
	fmt.Println()

	// 1. Check Workspace
	checkStep("Workspace Root", func() error {
		if _, err := os.Stat(appWorkspace.RootPath); err != nil {
			return fmt.Errorf("not found at %s", appWorkspace.RootPath)
		}
		return nil
	})

	checkStep("Output Directory", func() error {
		if _, err := os.Stat(appWorkspace.OutPath); os.IsNotExist(err) {
			return fmt.Errorf("missing (will be created on first generate)")
		}
		// Verify it is writable
		probe := filepath.Join(appWorkspace.OutPath, ".doctor-probe")
		if err := os.WriteFile(probe, nil, 0644); err != nil {
			return fmt.Errorf("not writable: %v", err)
		}
		os.Remove(probe)
		return nil
	})

	// 2. Check Config
	checkStep("Configuration File", func() error {
		if _, err := os.Stat(appWorkspace.ConfigPath); os.IsNotExist(err) {
			return fmt.Errorf("missing at %s (using defaults)", appWorkspace.ConfigPath)
		}
		return nil
	})

	// 3. Check API Key
	checkStep("OpenAI API Key", func() error {
		if _, err := config.APIKey(appWorkspace.EnvPath()); err != nil {
			return fmt.Errorf("not set (required for 'logoforge generate')")
		}
		return nil
	})

	// 4. Check Prompt Manifest
	checkStep("Prompt Manifest", func() error {
		path := appWorkspace.PromptsPath(appConfig.PromptsFile)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("missing at %s (run 'logoforge init')", path)
		}
		prompts, err := promptRepo.Load(getContext(), path)
		if err != nil {
			return fmt.Errorf("invalid: %v", err)
		}
		fmt.Println()
		fmt.Println(ui.FormatMuted(fmt.Sprintf("    %d prompts ready", len(prompts))))
		return nil
	})

	fmt.Println()
	fmt.Println(ui.FormatInfo("Checking run integrity..."))

	// Check each run for manifest entries pointing at missing or empty PNGs
	checkStep("Run Images", func() error {
		runs, err := runRepo.List(getContext())
		if err != nil {
			return err
		}

		missingCount := 0
		for _, run := range runs {
			concepts, err := runRepo.LoadManifest(getContext(), &run)
			if err != nil {
				continue
			}
			for _, c := range concepts {
				if !runRepo.HasImage(getContext(), &run, c.File) {
					if missingCount == 0 {
						fmt.Println()
					}
					fmt.Printf("    %s -> %s (Missing)\n", run.ID, c.File)
					missingCount++
				}
			}
		}

		if missingCount > 0 {
			return fmt.Errorf("found %d missing images", missingCount)
		}
		return nil
	})
}

// checkStep runs a check function and prints the result nicely
func checkStep(name string, check func() error) {
	err := check()
	if err == nil {
		fmt.Printf("%s %s\n", ui.StyleSuccess.Render(ui.IconSuccess), name)
	} else {
		fmt.Printf("%s %s\n", ui.StyleError.Render(ui.IconError), name)
		fmt.Printf("    %s\n", ui.StyleMuted.Render(err.Error()))
	}
}
