package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/talchemy/logoforge/internal/core/services"
	"github.com/talchemy/logoforge/pkg/ui"
)

var (
	listRun    string
	listQuery  string
	listPicked bool
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List runs or the concepts of a run (alias: ls)",
	Long: `List all generation runs, newest first. With --run, list the concepts
inside that run instead.

Examples:
  logoforge list
  logoforge list --run 2026-08-29-14-05-33
  logoforge list --run 2026-08-29-14-05-33 --query monogram
  logoforge list --run 2026-08-29-14-05-33 --picked`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listRun, "run", "r", "", "List concepts of this run")
	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "Filter concepts by title or prompt text")
	listCmd.Flags().BoolVar(&listPicked, "picked", false, "Only show picked concepts")
}

func runList(cmd *cobra.Command, args []string) error {
	if listRun == "" && listQuery == "" && !listPicked {
		return listRuns()
	}
	return listConcepts()
}

func listRuns() error {
	resp, err := listService.Runs(getContext())
	if err != nil {
		fmt.Println(ui.FormatError("Failed to list runs"))
		return err
	}

	if resp.Total == 0 {
		fmt.Println(ui.FormatWarning("No runs found"))
		fmt.Println(ui.FormatMuted("Run 'logoforge generate' to create one"))
		return nil
	}

	table := ui.NewTable([]ui.TableColumn{
		{Header: "RUN", Width: 19},
		{Header: "DATE", Width: 18},
		{Header: "CONCEPTS", Width: 8, Align: "right"},
		{Header: "PICKS", Width: 5, Align: "right"},
	})

	for _, info := range resp.Runs {
		table.AddRow([]string{
			info.Run.ID,
			info.Run.DisplayDate(),
			fmt.Sprintf("%d", info.Concepts),
			fmt.Sprintf("%d", info.Picks),
		})
	}

	fmt.Print(table.Render())
	fmt.Println()
	fmt.Println(ui.FormatMuted(fmt.Sprintf("%d runs", resp.Total)))
	return nil
}

func listConcepts() error {
	resp, err := listService.Concepts(getContext(), services.ConceptsRequest{
		RunID: listRun,
		Query: listQuery,
	})
	if err != nil {
		fmt.Println(ui.FormatError("Failed to list concepts"))
		return err
	}

	picks, err := reviewService.Load(getContext(), resp.Run)
	if err != nil {
		fmt.Println(ui.FormatWarning("Could not read picks: " + err.Error()))
	}

	concepts := resp.Concepts
	if listPicked {
		if listQuery == "" {
			concepts, err = reviewService.Picked(getContext(), resp.Run)
			if err != nil {
				return err
			}
		} else {
			filtered := concepts[:0]
			for _, c := range concepts {
				if picks.Has(c.ID) {
					filtered = append(filtered, c)
				}
			}
			concepts = filtered
		}
	}

	if len(concepts) == 0 {
		fmt.Println(ui.FormatWarning("No concepts found"))
		return nil
	}

	table := ui.NewTable([]ui.TableColumn{
		{Header: "ID", Width: 3, Align: "right"},
		{Header: "TITLE", Width: 24},
		{Header: "FILE", Width: 30},
		{Header: "PICK", Width: 4},
	})

	for _, c := range concepts {
		pick := ""
		if picks.Has(c.ID) {
			pick = ui.IconSuccess
		}
		table.AddRow([]string{
			fmt.Sprintf("%02d", c.ID),
			c.Title,
			c.File,
			pick,
		})
	}

	fmt.Println(ui.FormatTitle("Run " + resp.Run.ID))
	fmt.Println()
	fmt.Print(table.Render())
	return nil
}
