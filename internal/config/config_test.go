package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"

	"royalemeta/internal/dex"
)

func defaultConfig(t *testing.T) *Config {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}
	return cfg
}

func TestLoadHonorsRCFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	rc := filepath.Join(dir, ".royalemetarc.yaml")
	if err := os.WriteFile(rc, []byte("data: customdata\nformat: markdown\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}
	if cfg.Data != "customdata" {
		t.Errorf("Data = %q, want customdata", cfg.Data)
	}
	if cfg.Format != "markdown" {
		t.Errorf("Format = %q, want markdown", cfg.Format)
	}
}

func TestLoadHonorsEnv(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("ROYALEMETA_DATA", "envdata")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}
	if cfg.Data != "envdata" {
		t.Errorf("Data = %q, want envdata", cfg.Data)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := defaultConfig(t)

	if cfg.Format != "console" {
		t.Errorf("Format = %q, want console", cfg.Format)
	}
	if cfg.Tiers.Policy != "percentile" {
		t.Errorf("Tiers.Policy = %q, want percentile", cfg.Tiers.Policy)
	}
	if cfg.Team.Size != 3 || cfg.Team.MaxLegendaries != 1 {
		t.Errorf("Team = %+v, want size 3, 1 legendary", cfg.Team)
	}
	if cfg.Weights.AoEBonus <= 0 {
		t.Errorf("Weights.AoEBonus = %v, want > 0", cfg.Weights.AoEBonus)
	}

	threats := cfg.ThreatTypes()
	want := []dex.Type{dex.Dragon, dex.Ground, dex.Psychic}
	if len(threats) != len(want) {
		t.Fatalf("ThreatTypes() = %v, want %v", threats, want)
	}
	for i := range want {
		if threats[i] != want[i] {
			t.Errorf("ThreatTypes()[%d] = %v, want %v", i, threats[i], want[i])
		}
	}
}

func TestSizeWeightsOrdering(t *testing.T) {
	cfg := defaultConfig(t)

	sz := cfg.Weights.Size
	order := []dex.SizeClass{dex.SizeTiny, dex.SizeSmall, dex.SizeMedium, dex.SizeLarge, dex.SizeHuge}
	for i := 1; i < len(order); i++ {
		if sz.For(order[i-1]) <= sz.For(order[i]) {
			t.Errorf("size term for %v (%v) should exceed %v (%v)",
				order[i-1], sz.For(order[i-1]), order[i], sz.For(order[i]))
		}
	}
	if sz.For(dex.SizeMedium) != 0 {
		t.Errorf("Medium size term = %v, want 0", sz.For(dex.SizeMedium))
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad format", func(c *Config) { c.Format = "xml" }},
		{"bad policy", func(c *Config) { c.Tiers.Policy = "vibes" }},
		{"bad threat", func(c *Config) { c.Threats = []string{"Shadow"} }},
		{"inverted sizes", func(c *Config) { c.Weights.Size.Huge = 50 }},
		{"zero team", func(c *Config) { c.Team.Size = 0 }},
		{"zero workers", func(c *Config) { c.Fetch.Workers = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig(t)
			tt.mutate(cfg)
			if err := Validate(cfg); err == nil {
				t.Errorf("Validate() accepted %s", tt.name)
			}
		})
	}
}
