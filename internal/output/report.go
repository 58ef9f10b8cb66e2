// Package output renders a ranked analysis into the supported report
// formats: console, json, markdown, and csv.
package output

import (
	"fmt"
	"os"
	"strings"
	"time"

	"royalemeta/internal/config"
	"royalemeta/internal/dex"
	"royalemeta/internal/scoring"
	"royalemeta/internal/team"
	"royalemeta/internal/tier"
)

const (
	toolName    = "royalemeta"
	toolVersion = "1.0.0"
)

// Report carries one complete analysis run to the formatters.
type Report struct {
	Generated time.Time
	DataRoot  string
	Policy    string
	Threats   []dex.Type
	Ranked    []tier.Ranked
	Skipped   []scoring.Skip
	Team      *team.Team
	Duration  time.Duration
}

// Render dispatches to the formatter named by cfg.Format.
func Render(report *Report, cfg *config.Config) error {
	if report.Generated.IsZero() {
		report.Generated = time.Now()
	}

	switch cfg.Format {
	case "console":
		return NewConsoleFormatter(os.Stdout, cfg.Quiet, cfg.Verbose, cfg.TopN).Format(report)
	case "json":
		return NewJSONFormatter(true, cfg.Output).Format(report)
	case "markdown":
		return NewMarkdownFormatter(cfg.Output).Format(report)
	case "csv":
		return NewCSVFormatter(cfg.Output).Format(report)
	default:
		return fmt.Errorf("unsupported format: %s", cfg.Format)
	}
}

// write sends rendered bytes to outputFile, or stdout when no file is set.
func write(outputFile string, data []byte) error {
	if outputFile != "" {
		if err := os.WriteFile(outputFile, data, 0644); err != nil {
			return fmt.Errorf("error writing to file %s: %w", outputFile, err)
		}
		return nil
	}
	_, err := os.Stdout.Write(data)
	return err
}

// tierCounts tallies how many profiles landed in each tier.
func tierCounts(ranked []tier.Ranked) map[string]int {
	counts := make(map[string]int)
	for _, r := range ranked {
		counts[string(r.Tier)]++
	}
	return counts
}

func typeNames(types []dex.Type) []string {
	if len(types) == 0 {
		return nil
	}
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return names
}

func joinTypes(types []dex.Type) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return strings.Join(names, "/")
}

func secondType(p dex.Profile) string {
	if len(p.Types) > 1 {
		return string(p.Types[1])
	}
	return ""
}
