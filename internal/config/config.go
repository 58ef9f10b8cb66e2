package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"royalemeta/internal/dex"
)

// Config represents the royalemeta configuration.
type Config struct {
	Data    string      `mapstructure:"data"`
	Format  string      `mapstructure:"format"`
	Output  string      `mapstructure:"output"`
	Quiet   bool        `mapstructure:"quiet"`
	Verbose bool        `mapstructure:"verbose"`
	TopN    int         `mapstructure:"topN"`
	Threats []string    `mapstructure:"threats"`
	Weights Weights     `mapstructure:"weights"`
	Tiers   TierConfig  `mapstructure:"tiers"`
	Team    TeamConfig  `mapstructure:"team"`
	Fetch   FetchConfig `mapstructure:"fetch"`
}

// Weights holds every scoring-formula constant. The qualitative ordering is
// fixed by the game rules; the magnitudes are a policy choice, so all of
// them live here rather than as literals in the engine.
type Weights struct {
	Offense             float64            `mapstructure:"offense"`
	AoEBonus            float64            `mapstructure:"aoeBonus"`
	ImmunityBonus       float64            `mapstructure:"immunityBonus"`
	SpecialSlowPenalty  float64            `mapstructure:"specialSlowPenalty"`
	PhysicalFastBonus   float64            `mapstructure:"physicalFastBonus"`
	ApproachRiskPenalty float64            `mapstructure:"approachRiskPenalty"`
	Mobility            float64            `mapstructure:"mobility"`
	Survivability       float64            `mapstructure:"survivability"`
	Size                SizeWeights        `mapstructure:"size"`
	Items               map[string]float64 `mapstructure:"items"`
}

// SizeWeights is the additive size term per class. Smaller is safer, so the
// values must be strictly decreasing from Tiny to Huge, with Medium as the
// zero point.
type SizeWeights struct {
	Tiny   float64 `mapstructure:"tiny"`
	Small  float64 `mapstructure:"small"`
	Medium float64 `mapstructure:"medium"`
	Large  float64 `mapstructure:"large"`
	Huge   float64 `mapstructure:"huge"`
}

// For returns the size term for a class.
func (s SizeWeights) For(size dex.SizeClass) float64 {
	switch size {
	case dex.SizeTiny:
		return s.Tiny
	case dex.SizeSmall:
		return s.Small
	case dex.SizeLarge:
		return s.Large
	case dex.SizeHuge:
		return s.Huge
	default:
		return s.Medium
	}
}

// TierConfig selects the tier-cut strategy. Percentile cuts are the default
// because they stay stable while the scoring formula is tuned.
type TierConfig struct {
	Policy     string             `mapstructure:"policy"` // percentile|fixed
	Cuts       map[string]float64 `mapstructure:"cuts"`
	Thresholds map[string]float64 `mapstructure:"thresholds"`
}

// TeamConfig bounds the team builder.
type TeamConfig struct {
	Size           int `mapstructure:"size"`
	MaxLegendaries int `mapstructure:"maxLegendaries"`
}

// FetchConfig tunes the moveset crawler.
type FetchConfig struct {
	BaseURL    string        `mapstructure:"baseURL"`
	Delay      time.Duration `mapstructure:"delay"`
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxRetries int           `mapstructure:"maxRetries"`
	Workers    int           `mapstructure:"workers"`
	Cache      string        `mapstructure:"cache"`
	Export     string        `mapstructure:"export"`
	UserAgent  string        `mapstructure:"userAgent"`
}

// Load reads configuration from defaults, an optional rc file, environment
// variables, and bound flags, in ascending precedence. Flags participate
// through viper bindings, so an unset flag never shadows the rc file.
func Load() (*Config, error) {
	setDefaults()

	for _, path := range []string{".royalemetarc.json", ".royalemetarc.yaml", ".royalemetarc.yml"} {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err == nil {
			break
		}
	}

	viper.SetEnvPrefix("ROYALEMETA")
	viper.AutomaticEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("data", "data")
	viper.SetDefault("format", "console")
	viper.SetDefault("quiet", false)
	viper.SetDefault("verbose", false)
	viper.SetDefault("topN", 35)
	viper.SetDefault("threats", []string{"Dragon", "Ground", "Psychic"})

	viper.SetDefault("weights.offense", 1.0)
	viper.SetDefault("weights.aoeBonus", 40.0)
	viper.SetDefault("weights.immunityBonus", 15.0)
	viper.SetDefault("weights.specialSlowPenalty", 20.0)
	viper.SetDefault("weights.physicalFastBonus", 10.0)
	viper.SetDefault("weights.approachRiskPenalty", 25.0)
	viper.SetDefault("weights.mobility", 0.25)
	viper.SetDefault("weights.survivability", 0.2)
	viper.SetDefault("weights.size.tiny", 20.0)
	viper.SetDefault("weights.size.small", 10.0)
	viper.SetDefault("weights.size.medium", 0.0)
	viper.SetDefault("weights.size.large", -15.0)
	viper.SetDefault("weights.size.huge", -30.0)
	viper.SetDefault("weights.items", map[string]float64{
		"form_change":  60,
		"damage_boost": 40,
		"survive_ohko": 30,
		"stat_boost":   25,
		"recovery":     15,
		"resist_once":  10,
	})

	viper.SetDefault("tiers.policy", "percentile")
	viper.SetDefault("tiers.cuts", map[string]float64{
		"S": 0.10, "A": 0.25, "B": 0.45, "C": 0.70, "D": 0.90,
	})
	viper.SetDefault("tiers.thresholds", map[string]float64{
		"S": 0.90, "A": 0.75, "B": 0.60, "C": 0.45, "D": 0.30,
	})

	viper.SetDefault("team.size", 3)
	viper.SetDefault("team.maxLegendaries", 1)

	viper.SetDefault("fetch.baseURL", "https://www.serebii.net")
	viper.SetDefault("fetch.delay", 500*time.Millisecond)
	viper.SetDefault("fetch.timeout", 30*time.Second)
	viper.SetDefault("fetch.maxRetries", 3)
	viper.SetDefault("fetch.workers", 4)
	viper.SetDefault("fetch.cache", "movesets.db")
	viper.SetDefault("fetch.export", "")
	viper.SetDefault("fetch.userAgent", "royalemeta/1.0")
}

// Validate rejects configurations the pipeline cannot run with.
func Validate(cfg *Config) error {
	switch cfg.Format {
	case "console", "json", "markdown", "csv":
	default:
		return fmt.Errorf("invalid format: %s. Must be 'console', 'json', 'markdown', or 'csv'", cfg.Format)
	}

	switch cfg.Tiers.Policy {
	case "percentile", "fixed":
	default:
		return fmt.Errorf("invalid tier policy: %s. Must be 'percentile' or 'fixed'", cfg.Tiers.Policy)
	}

	for _, t := range cfg.Threats {
		if _, err := dex.ParseType(t); err != nil {
			return fmt.Errorf("invalid threat type: %w", err)
		}
	}

	sz := cfg.Weights.Size
	if !(sz.Tiny > sz.Small && sz.Small > sz.Medium && sz.Medium >= 0 && sz.Medium > sz.Large && sz.Large > sz.Huge) {
		return fmt.Errorf("size weights must decrease strictly from Tiny to Huge with Medium >= 0")
	}

	if cfg.Team.Size < 1 {
		return fmt.Errorf("team size must be at least 1")
	}
	if cfg.Team.MaxLegendaries < 0 {
		return fmt.Errorf("maxLegendaries must not be negative")
	}
	if cfg.Fetch.Workers < 1 {
		return fmt.Errorf("fetch workers must be at least 1")
	}
	if cfg.Fetch.MaxRetries < 0 {
		return fmt.Errorf("fetch maxRetries must not be negative")
	}
	return nil
}

// ThreatTypes converts the configured threat names to domain types. Load
// already validated them.
func (c *Config) ThreatTypes() []dex.Type {
	out := make([]dex.Type, 0, len(c.Threats))
	for _, t := range c.Threats {
		typ, err := dex.ParseType(t)
		if err != nil {
			continue
		}
		out = append(out, typ)
	}
	return out
}
