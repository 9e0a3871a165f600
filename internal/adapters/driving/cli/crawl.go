package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var crawlPagesFlag int

var crawlCmd = &cobra.Command{
	Use:   "crawl [seed-url...]",
	Short: "Crawl pages into the HTML corpus",
	Long: `Fetches pages into the corpus directory, starting from the given seed
URLs plus any URLs left pending by earlier runs. Workers stick to one
site at a time, fetches are rate-limited per host, and near-duplicate
pages are detected by fingerprint and skipped.

Seed URLs can also be configured under crawl.seeds in the config file.`,
	RunE: runCrawl,
}

func init() {
	crawlCmd.Flags().IntVar(&crawlPagesFlag, "pages", 0,
		"stop after this many stored pages (0 uses crawl.page_budget, default 1000)")
	rootCmd.AddCommand(crawlCmd)
}

func runCrawl(cmd *cobra.Command, args []string) error {
	if crawlService == nil {
		return errors.New("crawl service not configured")
	}

	seeds := args
	if configStore != nil {
		seeds = append(seeds, configStore.GetStringSlice("crawl.seeds")...)
	}

	budget := crawlPagesFlag
	if budget <= 0 && configStore != nil {
		budget = configStore.GetInt("crawl.page_budget")
	}
	if budget <= 0 {
		budget = 1000
	}

	cmd.Printf("Crawling (budget %d pages)...\n", budget)

	ctx := context.Background()
	if err := crawlService.Crawl(ctx, seeds, budget); err != nil {
		return fmt.Errorf("crawl failed: %w", err)
	}

	status, err := crawlService.Status(ctx)
	if err == nil && status != nil {
		cmd.Printf("Crawl complete: %d fetched, %d skipped, %d failed.\n",
			status.PagesFetched, status.PagesSkipped, status.ErrorCount)
	} else {
		cmd.Println("Crawl complete.")
	}
	return nil
}
