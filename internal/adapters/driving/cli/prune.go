package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var pruneDryRunFlag bool

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove low-value pages from the corpus",
	Long: `Inspects every page in the corpus directory and deletes the ones that
declare a non-English language or contain too little text to contribute
to the lexicon. Run before build to keep junk words out.`,
	RunE: runPrune,
}

func init() {
	pruneCmd.Flags().BoolVar(&pruneDryRunFlag, "dry-run", false,
		"report removable pages without deleting them")
	rootCmd.AddCommand(pruneCmd)
}

func runPrune(cmd *cobra.Command, _ []string) error {
	if corpusPruner == nil {
		return errors.New("pruner service not configured")
	}

	report, err := corpusPruner.Prune(context.Background(), pruneDryRunFlag)
	if err != nil {
		return fmt.Errorf("prune failed: %w", err)
	}

	if pruneDryRunFlag {
		cmd.Printf("Checked %d pages; %d would be removed.\n",
			report.PagesChecked, len(report.Removed))
	} else {
		cmd.Printf("Checked %d pages; removed %d.\n",
			report.PagesChecked, len(report.Removed))
	}

	for _, path := range report.Removed {
		cmd.Printf("  %s\n", path)
	}
	if report.ErrorCount > 0 {
		cmd.Printf("%d pages could not be read.\n", report.ErrorCount)
	}
	return nil
}
