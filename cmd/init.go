package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/talchemy/logoforge/internal/core/domain"
	"github.com/talchemy/logoforge/pkg/config"
	"github.com/talchemy/logoforge/pkg/ui"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a logoforge workspace",
	Long: `Initialize a logoforge workspace in the current directory.

This creates:
  - prompts.json : A starter prompt manifest to edit
  - .env         : API key template (OPENAI_API_KEY)
  - .gitignore   : Keeps generated runs and the API key out of git
  - config.yaml  : Global configuration (under your config directory)

Existing files are left untouched.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	fmt.Println(ui.FormatRocket("Initializing logoforge workspace..."))
	fmt.Println()

	if err := createStarterPrompts(); err != nil {
		fmt.Println(ui.FormatError("Failed to create prompts.json"))
		return err
	}

	if err := createEnvTemplate(); err != nil {
		fmt.Println(ui.FormatWarning("Failed to create .env template: " + err.Error()))
	}

	if err := createGitignore(); err != nil {
		fmt.Println(ui.FormatWarning("Failed to create .gitignore: " + err.Error()))
	}

	if err := createDefaultConfig(); err != nil {
		fmt.Println(ui.FormatWarning("Failed to create default config: " + err.Error()))
		// Don't fail - config is optional
	}

	fmt.Println(ui.FormatSuccess("Workspace initialized successfully!"))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Location", appWorkspace.RootPath))
	fmt.Println(ui.RenderKeyValue("Config", appWorkspace.ConfigPath))
	fmt.Println()
	fmt.Println(ui.FormatInfo("Next steps:"))
	fmt.Println(ui.FormatMuted("  1. Put your API key in .env (OPENAI_API_KEY=sk-...)"))
	fmt.Println(ui.FormatMuted("  2. Edit prompts.json with your logo concepts"))
	fmt.Println(ui.FormatMuted("  3. Run a batch: logoforge generate"))

	return nil
}

func createStarterPrompts() error {
	path := appWorkspace.PromptsPath("")
	if _, err := os.Stat(path); err == nil {
		fmt.Println(ui.FormatWarning("prompts.json already exists, keeping it"))
		return nil
	}

	starter := []domain.Prompt{
		{
			ID:     1,
			Title:  "Geometric Monogram",
			Prompt: "Minimal flat vector logo, geometric monogram built from overlapping circles, two-color palette of deep teal and warm amber, centered on a plain white background, no text, no gradients, clean sharp edges",
		},
		{
			ID:     2,
			Title:  "Abstract Origami Mark",
			Prompt: "Modern abstract logo mark resembling a folded origami bird, flat design, single navy blue shape with one coral accent facet, generous negative space, plain white background, no lettering",
		},
	}

	data, err := json.MarshalIndent(starter, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}
	fmt.Println(ui.FormatSuccess("Starter manifest (prompts.json) created"))
	return nil
}

func createEnvTemplate() error {
	path := appWorkspace.EnvPath()
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	content := "# OpenAI API key used by 'logoforge generate'\nOPENAI_API_KEY=\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return err
	}
	fmt.Println(ui.FormatSuccess("API key template (.env) created"))
	return nil
}

func createGitignore() error {
	path := filepath.Join(appWorkspace.RootPath, ".gitignore")
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	content := `# Generated runs
out/

# API keys
.env

# OS generated files
.DS_Store
Thumbs.db
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return err
	}
	fmt.Println(ui.FormatSuccess("Git ignore file (.gitignore) created"))
	return nil
}

func createDefaultConfig() error {
	if _, err := os.Stat(appWorkspace.ConfigPath); err == nil {
		return nil
	}

	cfg := config.DefaultConfig()
	if err := cfg.Save(appWorkspace.ConfigPath); err != nil {
		return err
	}
	fmt.Println(ui.FormatSuccess("Default config (config.yaml) created"))
	return nil
}
