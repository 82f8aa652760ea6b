package cmd

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/talchemy/logoforge/pkg/ui"
)

var copyRun string

// copyCmd represents the copy command
var copyCmd = &cobra.Command{
	Use:     "copy [id]",
	Aliases: []string{"cp"},
	Short:   "Copy a concept prompt to the clipboard (alias: cp)",
	Long: `Copy the full prompt text of a concept to the system clipboard, for
iterating on a prompt outside the batch file. Without an ID the concepts
are offered in a fuzzy finder.

Examples:
  logoforge copy
  logoforge copy 3
  logoforge copy 3 --run 2026-08-29-14-05-33`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCopy,
}

func init() {
	copyCmd.Flags().StringVarP(&copyRun, "run", "r", "", "Run to read the concept from (default latest)")
}

func runCopy(cmd *cobra.Command, args []string) error {
	id := ""
	if len(args) > 0 {
		id = args[0]
	}

	_, concept, err := selectConcept(copyRun, id)
	if err != nil {
		return err
	}
	if concept == nil {
		return nil
	}

	if err := clipboard.WriteAll(concept.Prompt); err != nil {
		fmt.Println(ui.FormatWarning("Could not copy to clipboard. Prompt printed below:"))
		fmt.Println()
		fmt.Println(concept.Prompt)
		return nil
	}

	fmt.Println(ui.FormatSuccess(fmt.Sprintf("Copied prompt of '%s' to clipboard", concept.Title)))
	return nil
}
