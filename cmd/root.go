package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"royalemeta/internal/config"
	"royalemeta/internal/dataset"
	"royalemeta/internal/output"
	"royalemeta/internal/scoring"
	"royalemeta/internal/team"
	"royalemeta/internal/tier"
)

var (
	dataPath     string
	quiet        bool
	verbose      bool
	outputFormat string
	outputFile   string
	topN         int
)

var rootCmd = &cobra.Command{
	Use:   "royalemeta",
	Short: "Battle-royale meta analyzer for Pokemon free-for-alls",
	Long: `royalemeta scores every Pokemon in a dataset against the free-for-all
battle royale meta: area damage, cast speed, size profile, threat
immunities, bulk, and held items all feed a weighted viability score.

The scored roster is ranked into S through F tiers and printed as a
console table, JSON, Markdown, or CSV. A suggested team built under the
standard constraints (three slots, one legendary, unique items) closes
the report.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runAnalysis(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&dataPath, "data", "d", "data", "Dataset directory")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show per-term score breakdowns")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "console", "Report format (console|json|markdown|csv)")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "Write the report to a file instead of stdout")
	rootCmd.Flags().IntVarP(&topN, "top", "n", 35, "Limit console output to the top N rows (0 prints all)")

	viper.BindPFlag("data", rootCmd.PersistentFlags().Lookup("data"))
	viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("topN", rootCmd.Flags().Lookup("top"))
}

func initConfig() {
	for _, path := range []string{".royalemetarc.json", ".royalemetarc.yaml", ".royalemetarc.yml"} {
		if _, err := os.Stat(path); err == nil {
			viper.SetConfigFile(path)
			if err := viper.ReadInConfig(); err != nil {
				fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
				os.Exit(1)
			}
			break
		}
	}
}

// analysis carries the scored, ranked dataset shared by the root, tiers,
// and team commands.
type analysis struct {
	cfg     *config.Config
	ds      *dataset.Dataset
	root    string
	ranked  []tier.Ranked
	skipped []scoring.Skip
	started time.Time
}

func analyze() (*analysis, error) {
	started := time.Now()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("error loading configuration: %w", err)
	}

	root := dataset.DefaultRoot(cfg.Data)
	ds, err := dataset.Load(root)
	if err != nil {
		return nil, fmt.Errorf("error loading dataset: %w", err)
	}

	engine := scoring.NewEngine(ds.Moves, ds.Items, cfg.Weights, cfg.ThreatTypes())
	summary, err := engine.ScoreAll(ds.Profiles)
	if err != nil {
		return nil, err
	}

	assigner, err := tier.NewAssigner(cfg.Tiers)
	if err != nil {
		return nil, err
	}

	return &analysis{
		cfg:     cfg,
		ds:      ds,
		root:    root,
		ranked:  assigner.Assign(summary.Scores),
		skipped: mergeSkips(ds.Skipped, summary.Skipped),
		started: started,
	}, nil
}

func (a *analysis) report() *output.Report {
	return &output.Report{
		Generated: a.started,
		DataRoot:  a.root,
		Policy:    a.cfg.Tiers.Policy,
		Threats:   a.cfg.ThreatTypes(),
		Ranked:    a.ranked,
		Skipped:   a.skipped,
		Duration:  time.Since(a.started),
	}
}

func runAnalysis() error {
	a, err := analyze()
	if err != nil {
		return err
	}

	squad := team.Build(a.ranked, a.ds.Items, a.cfg.Team)
	report := a.report()
	report.Team = &squad

	if err := output.Render(report, a.cfg); err != nil {
		return fmt.Errorf("error formatting output: %w", err)
	}
	return nil
}

// mergeSkips folds load-time rejections and score-time skips into one list
// so the report shows every profile that fell out of the run.
func mergeSkips(loadSkips []dataset.Skip, scoreSkips []scoring.Skip) []scoring.Skip {
	out := make([]scoring.Skip, 0, len(loadSkips)+len(scoreSkips))
	for _, s := range loadSkips {
		out = append(out, scoring.Skip{Profile: s.Profile, Reason: s.Reason})
	}
	out = append(out, scoreSkips...)
	return out
}
