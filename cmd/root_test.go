package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"royalemeta/internal/dataset"
	"royalemeta/internal/scoring"
)

const testMovesYAML = `moves:
  - {name: Surf, type: Water, category: Special, power: Medium, target: AoE, cast: Fast}
  - {name: Earthquake, type: Ground, category: Physical, power: Medium, target: AoE, cast: Fast}
  - {name: Moonblast, type: Fairy, category: Special, power: Medium, target: Single, cast: Slow}
`

const testItemsYAML = `items:
  - {name: Life Orb, effect: damage_boost, value: 1.3}
  - {name: Focus Sash, effect: survive_ohko}
fallback: [Life Orb, Focus Sash]
`

const testPokedexYAML = `pokemon:
  - name: Kyogre
    types: [Water]
    stats: {hp: 100, atk: 100, def: 90, spa: 150, spd: 140, spe: 90}
    size: Huge
    legendary: true
    moves: [Surf]
  - name: Garchomp
    types: [Dragon, Ground]
    stats: {hp: 108, atk: 130, def: 95, spa: 80, spd: 85, spe: 102}
    size: Large
    moves: [Earthquake]
  - name: Sylveon
    types: [Fairy]
    stats: {hp: 95, atk: 65, def: 65, spa: 110, spd: 130, spe: 60}
    size: Small
    moves: [Moonblast, Hyper Voice]
`

func writeTestDataset(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"moves.yaml":        testMovesYAML,
		"items.yaml":        testItemsYAML,
		"pokedex/main.yaml": testPokedexYAML,
	}
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestRunAnalysisEndToEnd(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	reportPath := filepath.Join(t.TempDir(), "report.json")
	viper.Set("data", writeTestDataset(t))
	viper.Set("format", "json")
	viper.Set("output", reportPath)

	if err := runAnalysis(); err != nil {
		t.Fatalf("runAnalysis(): %v", err)
	}

	data, err := os.ReadFile(reportPath)
	if err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Summary struct {
			Ranked  int `json:"ranked"`
			Skipped int `json:"skipped"`
		} `json:"summary"`
		Results []struct {
			Rank  int     `json:"rank"`
			Name  string  `json:"name"`
			Tier  string  `json:"tier"`
			Score float64 `json:"score"`
		} `json:"results"`
		Skipped []struct {
			Profile string `json:"profile"`
		} `json:"skipped"`
		Team []struct {
			Name string `json:"name"`
			Item string `json:"item"`
		} `json:"team"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}

	// Sylveon's Hyper Voice is not in the move catalog, so it skips.
	if doc.Summary.Ranked != 2 || doc.Summary.Skipped != 1 {
		t.Errorf("summary = %+v", doc.Summary)
	}
	if len(doc.Skipped) != 1 || doc.Skipped[0].Profile != "Sylveon" {
		t.Errorf("skipped = %+v", doc.Skipped)
	}
	if len(doc.Results) != 2 || doc.Results[0].Rank != 1 {
		t.Fatalf("results = %+v", doc.Results)
	}
	if doc.Results[0].Score < doc.Results[1].Score {
		t.Errorf("results not sorted best-first: %+v", doc.Results)
	}
	if len(doc.Team) == 0 {
		t.Error("report has no suggested team")
	}
}

func TestRunAnalysisMissingDataRoot(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("data", filepath.Join(t.TempDir(), "nope"))

	if err := runAnalysis(); err == nil {
		t.Fatal("expected error for missing data root")
	}
}

func TestMergeSkips(t *testing.T) {
	got := mergeSkips(
		[]dataset.Skip{{Profile: "Missingno", Reason: "malformed"}},
		[]scoring.Skip{{Profile: "Glitchmon", Reason: "unknown move"}},
	)
	if len(got) != 2 || got[0].Profile != "Missingno" || got[1].Profile != "Glitchmon" {
		t.Errorf("mergeSkips() = %+v", got)
	}
}

func TestRunTiersOmitsTeam(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	reportPath := filepath.Join(t.TempDir(), "tiers.json")
	viper.Set("data", writeTestDataset(t))
	viper.Set("format", "json")
	viper.Set("output", reportPath)

	if err := runTiers(); err != nil {
		t.Fatalf("runTiers(): %v", err)
	}

	data, err := os.ReadFile(reportPath)
	if err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Results []struct {
			Name string `json:"name"`
		} `json:"results"`
		Team []struct {
			Name string `json:"name"`
		} `json:"team"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if len(doc.Results) != 2 {
		t.Errorf("results = %+v", doc.Results)
	}
	if len(doc.Team) != 0 {
		t.Errorf("tiers report should not carry a team, got %+v", doc.Team)
	}
}

func TestRunTeamPrintsMembers(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("data", writeTestDataset(t))

	var buf bytes.Buffer
	if err := runTeam(&buf); err != nil {
		t.Fatalf("runTeam(): %v", err)
	}

	out := buf.String()
	for _, want := range []string{"1. ", "Kyogre", "[legendary]"} {
		if !strings.Contains(out, want) {
			t.Errorf("team output missing %q:\n%s", want, out)
		}
	}
	// Only one of the two ranked profiles is legendary, so both fit.
	if !strings.Contains(out, "Garchomp") {
		t.Errorf("team output missing Garchomp:\n%s", out)
	}
}
