package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/spf13/cobra"

	"github.com/talchemy/logoforge/internal/core/services"
	"github.com/talchemy/logoforge/pkg/ui"
)

var statsHTML bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show workspace statistics across all runs",
	Long: `Analyze the workspace and display useful statistics.

Includes:
  - Run, concept and pick totals
  - Pick rate
  - Per-run breakdown

With --html an interactive bar chart is written to out/stats.html.`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsHTML, "html", false, "Write an interactive chart to out/stats.html")
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	fmt.Println(ui.FormatRocket("Analyzing workspace..."))

	resp, err := statsService.Execute(ctx)
	if err != nil {
		return err
	}

	if resp.TotalRuns == 0 {
		fmt.Println(ui.FormatWarning("No runs found"))
		fmt.Println(ui.FormatMuted("Run 'logoforge generate' to create one"))
		return nil
	}

	avgConcepts := float64(resp.TotalConcepts) / float64(resp.TotalRuns)
	pickRate := 0.0
	if resp.TotalConcepts > 0 {
		pickRate = float64(resp.TotalPicks) / float64(resp.TotalConcepts) * 100
	}

	fmt.Println()
	fmt.Println(ui.FormatTitle("Workspace Analytics"))
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 4, ' ', 0)
	fmt.Fprintf(w, "%s\t%d\n", ui.StyleBold.Render("Total Runs:"), resp.TotalRuns)
	fmt.Fprintf(w, "%s\t%d\n", ui.StyleBold.Render("Total Concepts:"), resp.TotalConcepts)
	fmt.Fprintf(w, "%s\t%d\n", ui.StyleBold.Render("Total Picks:"), resp.TotalPicks)
	fmt.Fprintf(w, "%s\t%.1f concepts/run\n", ui.StyleBold.Render("Average Batch:"), avgConcepts)
	fmt.Fprintf(w, "%s\t%.0f%%\n", ui.StyleBold.Render("Pick Rate:"), pickRate)
	w.Flush()

	fmt.Println()

	table := ui.NewTable([]ui.TableColumn{
		{Header: "RUN", Width: 19},
		{Header: "CONCEPTS", Width: 8, Align: "right"},
		{Header: "PICKS", Width: 5, Align: "right"},
	})
	for _, info := range resp.Runs {
		table.AddRow([]string{
			info.Run.ID,
			fmt.Sprintf("%d", info.Concepts),
			fmt.Sprintf("%d", info.Picks),
		})
	}
	fmt.Print(table.Render())

	if statsHTML {
		path, err := writeStatsChart(resp)
		if err != nil {
			fmt.Println(ui.FormatError("Failed to write chart"))
			return err
		}
		fmt.Println()
		fmt.Println(ui.FormatSuccess("Chart written to " + path))
	}

	return nil
}

// writeStatsChart renders a concepts/picks bar chart per run to out/stats.html
func writeStatsChart(resp *services.StatsResponse) (string, error) {
	var labels []string
	var concepts []opts.BarData
	var picks []opts.BarData

	// Oldest first reads better on a time axis
	for i := len(resp.Runs) - 1; i >= 0; i-- {
		info := resp.Runs[i]
		labels = append(labels, info.Run.ID)
		concepts = append(concepts, opts.BarData{Value: info.Concepts})
		picks = append(picks, opts.BarData{Value: info.Picks})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Logoforge Runs",
			Subtitle: "Concepts generated and picked per run",
		}),
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Logoforge Stats",
		}),
	)
	bar.SetXAxis(labels).
		AddSeries("Concepts", concepts).
		AddSeries("Picks", picks)

	if err := appWorkspace.EnsureOut(); err != nil {
		return "", err
	}

	path := filepath.Join(appWorkspace.OutPath, "stats.html")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := bar.Render(f); err != nil {
		return "", err
	}
	return path, nil
}
