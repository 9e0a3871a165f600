package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lexica-cli/internal/core/ports/driving"
)

var buildWatchFlag bool

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the lexicon from the HTML corpus",
	Long: `Scans every .html page in the corpus directory, tokenises the text
content, filters candidate words by the phonotactic heuristics, and
writes the resulting word set (seed words included) to the lexicon file.

With --watch, the build keeps running and extends the lexicon as new
pages land in the corpus directory.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().BoolVar(&buildWatchFlag, "watch", false,
		"keep running and extend the lexicon as pages are added")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	if lexiconBuilder == nil {
		return errors.New("builder service not configured")
	}

	ctx := context.Background()

	if buildWatchFlag {
		cmd.Println("Building lexicon, then watching corpus (Ctrl-C to stop)...")
		err := lexiconBuilder.Watch(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	cmd.Println("Building lexicon...")

	result, err := buildWithProgress(ctx, cmd, lexiconBuilder)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	cmd.Printf("Scanned %d pages, %d candidates, %d accepted.\n",
		result.PagesScanned, result.CandidateWords, result.AcceptedWords)
	cmd.Printf("Lexicon written: %d unique words to %s\n", result.LexiconSize, lexiconPath)
	return nil
}

// buildWithProgress runs the build while displaying progress updates.
func buildWithProgress(
	ctx context.Context,
	cmd *cobra.Command,
	builder driving.LexiconBuilder,
) (*driving.BuildResult, error) {
	type outcome struct {
		result *driving.BuildResult
		err    error
	}
	doneCh := make(chan outcome, 1)
	go func() {
		result, err := builder.Build(ctx)
		doneCh <- outcome{result: result, err: err}
	}()

	// Poll status every 500ms
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	lastCount := 0
	for {
		select {
		case out := <-doneCh:
			return out.result, out.err
		case <-ticker.C:
			// Check progress (ignore status error - best effort)
			status, statusErr := builder.Status(ctx)
			if statusErr == nil && status != nil && status.PagesScanned > lastCount {
				cmd.Printf("\rScanning... %d pages", status.PagesScanned)
				lastCount = status.PagesScanned
			}
		}
	}
}
