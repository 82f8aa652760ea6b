package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/talchemy/logoforge/internal/core/services"
	"github.com/talchemy/logoforge/pkg/ui"
)

var (
	cleanKeep   int
	cleanDryRun bool
)

// cleanCmd represents the clean command
var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Delete old runs, keeping the newest ones",
	Long: `Delete old run directories under out/, keeping the newest N runs.
The default for --keep comes from the config (keep_runs), falling back to 5.

Examples:
  logoforge clean
  logoforge clean --keep 3
  logoforge clean --keep 3 --dry-run`,
	Args: cobra.NoArgs,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().IntVarP(&cleanKeep, "keep", "k", 0, "Number of newest runs to keep (default from config)")
	cleanCmd.Flags().BoolVarP(&cleanDryRun, "dry-run", "n", false, "Show what would be deleted without deleting")
}

func runClean(cmd *cobra.Command, args []string) error {
	keep := cleanKeep
	if keep == 0 {
		keep = appConfig.KeepRuns
	}
	if keep <= 0 {
		keep = 5
	}

	resp, err := cleanService.Execute(getContext(), services.CleanRequest{
		Keep:   keep,
		DryRun: cleanDryRun,
	})
	if err != nil {
		fmt.Println(ui.FormatError("Failed to clean runs"))
		return err
	}

	if len(resp.Deleted) == 0 {
		fmt.Println(ui.FormatInfo(fmt.Sprintf("Nothing to delete, %d runs present", resp.Kept)))
		return nil
	}

	verb := "Deleted"
	if cleanDryRun {
		verb = "Would delete"
	}
	for _, run := range resp.Deleted {
		fmt.Println(ui.FormatMuted("  " + run.ID))
	}
	fmt.Println()
	fmt.Println(ui.FormatSuccess(fmt.Sprintf("%s %d runs, kept the newest %d", verb, len(resp.Deleted), resp.Kept)))
	return nil
}
