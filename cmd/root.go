package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/talchemy/logoforge/internal/adapters/gallery"
	"github.com/talchemy/logoforge/internal/adapters/openai"
	"github.com/talchemy/logoforge/internal/adapters/repository"
	"github.com/talchemy/logoforge/internal/core/services"
	"github.com/talchemy/logoforge/pkg/config"
	"github.com/talchemy/logoforge/pkg/ui"
	"github.com/talchemy/logoforge/pkg/workspace"
)

var (
	// Global workspace instance
	appWorkspace *workspace.Workspace
	appConfig    *config.Config

	// Services
	galleryService  *services.GalleryService
	listService     *services.ListService
	reviewService   *services.ReviewService
	statsService    *services.StatsService
	cleanService    *services.CleanService

	// Repositories
	promptRepo *repository.FilePromptRepository
	runRepo    *repository.FileRunRepository

	// Renderer
	htmlRenderer *gallery.HTMLRenderer
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "logoforge",
	Short: "Logoforge - batch logo concept generation and review",
	Long: ui.StyleTitle.Render("Logoforge") + " - Logo Concept Generator\n\n" +
		"Run batches of logo prompts against the OpenAI Images API, collect the\n" +
		"PNGs in timestamped run directories, and review them in a static HTML\n" +
		"gallery.",
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(galleryCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(copyCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(versionCmd)
}

// initializeApp initializes the application components
func initializeApp(cmd *cobra.Command, args []string) error {
	ws, err := workspace.New()
	if err != nil {
		return fmt.Errorf("failed to initialize workspace: %w", err)
	}
	appWorkspace = ws

	cfg, err := config.Load(ws.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	appConfig = cfg

	ui.SetTheme(cfg.ColorTheme)

	// Initialize repositories
	promptRepo = repository.NewFilePromptRepository()
	runRepo = repository.NewFileRunRepository(ws)

	// Initialize renderer
	htmlRenderer = gallery.NewHTMLRenderer(cfg.GalleryTitle, cfg.GallerySubtitle)

	// Initialize services. The image client is created lazily in generate,
	// the only command that needs the API key.
	galleryService = services.NewGalleryService(runRepo, htmlRenderer)
	listService = services.NewListService(runRepo)
	reviewService = services.NewReviewService(runRepo)
	statsService = services.NewStatsService(runRepo)
	cleanService = services.NewCleanService(runRepo)

	return nil
}

// newGenerateService builds the generate service once the API key is known
func newGenerateService() (*services.GenerateService, error) {
	apiKey, err := config.APIKey(appWorkspace.EnvPath())
	if err != nil {
		return nil, err
	}

	client := openai.NewClient(apiKey, openai.WithTimeout(appConfig.Timeout()))
	return services.NewGenerateService(promptRepo, runRepo, client, htmlRenderer), nil
}

// getContext returns a context for operations
func getContext() context.Context {
	return context.Background()
}
