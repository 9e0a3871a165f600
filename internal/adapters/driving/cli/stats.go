package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show crawl run history",
	Long:  `Lists recorded crawl runs with their page and failure counts.`,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	if runStore == nil {
		return errors.New("state store not configured")
	}

	runs, err := runStore.ListRuns(context.Background())
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		cmd.Println("No crawl runs recorded.")
		return nil
	}

	for _, run := range runs {
		finished := "running"
		if !run.FinishedAt.IsZero() {
			finished = run.FinishedAt.Format("2006-01-02 15:04:05")
		}
		cmd.Printf("%s  started %s  finished %s  fetched %d  skipped %d  failed %d\n",
			run.ID,
			run.StartedAt.Format("2006-01-02 15:04:05"),
			finished,
			run.PagesFetched, run.PagesSkipped, run.Failures)
	}
	return nil
}
