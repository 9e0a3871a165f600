// Package cli implements the cobra command tree for the lexica binary.
// Commands talk to core services through the driving ports; services are
// wired once in Execute and held in package-level variables so tests can
// substitute doubles.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	configfile "github.com/custodia-labs/lexica-cli/internal/adapters/driven/config/file"
	storagefile "github.com/custodia-labs/lexica-cli/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/lexica-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/lexica-cli/internal/connectors/filesystem"
	"github.com/custodia-labs/lexica-cli/internal/core/ports/driven"
	"github.com/custodia-labs/lexica-cli/internal/core/ports/driving"
	"github.com/custodia-labs/lexica-cli/internal/core/services"
	"github.com/custodia-labs/lexica-cli/internal/crawler"
	"github.com/custodia-labs/lexica-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services used by the commands. Wired in Execute; tests substitute
// doubles directly.
var (
	configStore    driven.ConfigStore
	lexiconBuilder driving.LexiconBuilder
	crawlService   driving.CrawlOrchestrator
	corpusPruner   driving.CorpusPruner
	runStore       driven.CrawlRunStore
	lexiconPath    string
)

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "lexica",
	Short: "Build a lexicon of English-like words from an HTML corpus",
	Long: `Lexica extracts a deduplicated lexicon of English-like words from a
directory of HTML pages. The corpus can be filled by the built-in
crawler or supplied directly as .html files.

A typical session:

  lexica crawl https://example.org --pages 500
  lexica prune
  lexica build`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false,
		"print pipeline details to stderr")
}

// Execute wires the default services and runs the command tree.
func Execute() {
	if err := initServices(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initServices builds the production wiring. Services that are already
// set (by tests) are left alone.
func initServices() error {
	if configStore == nil {
		store, err := configfile.NewConfigStore("")
		if err != nil {
			return fmt.Errorf("opening config: %w", err)
		}
		configStore = store
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("getting home directory: %w", err)
	}
	dataDir := filepath.Join(home, ".lexica", "data")

	rawDir := configStore.GetString("corpus.dir")
	if rawDir == "" {
		rawDir = filepath.Join(dataDir, "raw")
	}

	lexiconPath = configStore.GetString("lexicon.path")
	if lexiconPath == "" {
		lexiconPath = filepath.Join(home, ".lexica", "lexicon.txt")
	}

	if lexiconBuilder == nil {
		source := filesystem.New("corpus", rawDir)
		store := storagefile.NewLexiconStore(lexiconPath)
		lexiconBuilder = services.NewBuilder(source, store)
	}

	if corpusPruner == nil {
		opts := []services.PrunerOption{}
		if n := configStore.GetInt("prune.min_words"); n > 0 {
			opts = append(opts, services.WithMinWords(n))
		}
		corpusPruner = services.NewPruner(rawDir, opts...)
	}

	if crawlService == nil {
		state, err := sqlite.NewStore(dataDir)
		if err != nil {
			return fmt.Errorf("opening state store: %w", err)
		}
		runStore = state.CrawlRunStore()

		fetcherOpts := []crawler.FetcherOption{}
		if sec := configStore.GetInt("crawl.timeout_seconds"); sec > 0 {
			fetcherOpts = append(fetcherOpts, crawler.WithTimeout(time.Duration(sec)*time.Second))
		}
		if rps := configStore.GetInt("crawl.requests_per_second"); rps > 0 {
			fetcherOpts = append(fetcherOpts, crawler.WithRequestsPerSecond(rps))
		}

		crawlOpts := []services.CrawlOption{}
		if n := configStore.GetInt("crawl.workers"); n > 0 {
			crawlOpts = append(crawlOpts, services.WithWorkers(n))
		}

		crawlService = services.NewCrawlService(
			crawler.NewFetcher(fetcherOpts...),
			state.FrontierStore(),
			state.SimhashStore(),
			runStore,
			rawDir,
			crawlOpts...,
		)
	}

	return nil
}
