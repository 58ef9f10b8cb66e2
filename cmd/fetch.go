package cmd

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"royalemeta/internal/config"
	"royalemeta/internal/dataset"
	"royalemeta/internal/fetch"
	"royalemeta/internal/store"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Crawl published movesets for every profile with a dex number",
	Long: `fetch downloads the dex page for each profile that carries a dex number
and extracts its learnable moves. Results land in a local SQLite cache so
repeat runs skip the network. Use it to spot dataset moves that have gone
stale against the published movesets.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runFetch(cmd.Context()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().String("cache", "movesets.db", "SQLite cache path")
	fetchCmd.Flags().Int("workers", 4, "Concurrent fetches")
	fetchCmd.Flags().String("export", "", "Write the cached movesets to a CSV file after fetching")
	viper.BindPFlag("fetch.cache", fetchCmd.Flags().Lookup("cache"))
	viper.BindPFlag("fetch.workers", fetchCmd.Flags().Lookup("workers"))
	viper.BindPFlag("fetch.export", fetchCmd.Flags().Lookup("export"))
}

func runFetch(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}

	ds, err := dataset.Load(dataset.DefaultRoot(cfg.Data))
	if err != nil {
		return fmt.Errorf("error loading dataset: %w", err)
	}
	targets := ds.CrawlTargets()
	if len(targets) == 0 {
		return fmt.Errorf("no profiles carry a dex number; nothing to fetch")
	}

	cache, err := store.Open(cfg.Fetch.Cache)
	if err != nil {
		return err
	}
	defer cache.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	crawler := fetch.NewCrawler(fetch.NewClient(cfg.Fetch), cache, cfg.Fetch.Workers)
	results, err := crawler.Crawl(ctx, targets)
	if err != nil {
		return fmt.Errorf("crawl aborted: %w", err)
	}

	var fetched, cached, failed int
	for _, r := range results {
		switch {
		case r.Err != nil:
			failed++
			fmt.Fprintf(os.Stderr, "  %s: %v\n", r.Name, r.Err)
		case r.Cached:
			cached++
		default:
			fetched++
		}
		if !cfg.Quiet && r.Err == nil {
			fmt.Printf("  %s (#%s): %d moves\n", r.Name, r.Dex, len(r.Moves))
		}
	}

	fmt.Printf("Fetched %d, cached %d, failed %d (cache: %s)\n",
		fetched, cached, failed, cfg.Fetch.Cache)

	if cfg.Fetch.Export != "" {
		if err := exportMovesets(cache, cfg.Fetch.Export); err != nil {
			return fmt.Errorf("error exporting movesets: %w", err)
		}
		fmt.Printf("Exported movesets to %s\n", cfg.Fetch.Export)
	}
	return nil
}

// exportMovesets dumps the whole cache as CSV, one row per species with the
// moves pipe-joined, ordered by dex number.
func exportMovesets(cache *store.Store, path string) error {
	entries, err := cache.All()
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	rows := [][]string{{"dex", "name", "moves"}}
	for _, e := range entries {
		rows = append(rows, []string{e.Dex, e.Name, strings.Join(e.Moves, "|")})
	}
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return err
	}
	// Close errors matter here: a full disk surfaces on the final flush.
	return f.Close()
}
