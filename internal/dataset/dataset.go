// Package dataset discovers and loads the reference data a run scores
// against: the move catalog, the pokedex profiles, and the held-item
// catalog, all plain YAML files under the data root.
//
// Catalog files (moves, items) must be coherent or the load fails; that is
// reference data the whole run depends on. Individual pokedex entries that
// fail validation are recorded as skips and never abort the load.
package dataset

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"royalemeta/internal/catalog"
	"royalemeta/internal/dex"
	"royalemeta/internal/schema"
)

// Discovery patterns, relative to the data root.
var (
	movePatterns    = []string{"moves*.{yaml,yml}"}
	pokedexPatterns = []string{"pokedex/**/*.{yaml,yml}", "pokedex*.{yaml,yml}"}
	itemPatterns    = []string{"items*.{yaml,yml}"}
)

// Skip records a pokedex entry that was rejected at load time.
type Skip struct {
	Profile string
	File    string
	Reason  string
}

// Dataset is everything a scoring run needs, loaded once.
type Dataset struct {
	Moves    *catalog.Catalog
	Items    *catalog.Items
	Profiles []dex.Profile
	Skipped  []Skip
}

// Load reads the full dataset from root.
func Load(root string) (*Dataset, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("data root %s: %w", root, err)
	}

	validator, err := schema.NewValidator()
	if err != nil {
		return nil, err
	}

	fsys := os.DirFS(root)
	ds := &Dataset{}

	moves, err := loadMoves(fsys, root, validator)
	if err != nil {
		return nil, err
	}
	ds.Moves, err = catalog.New(moves)
	if err != nil {
		return nil, err
	}

	ds.Items, err = loadItems(fsys, root, validator)
	if err != nil {
		return nil, err
	}

	ds.Profiles, ds.Skipped, err = loadProfiles(fsys, root, validator)
	if err != nil {
		return nil, err
	}

	return ds, nil
}

// glob expands a pattern list against the data root, deduplicated and in a
// stable order.
func glob(fsys fs.FS, patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("bad glob %q: %w", pattern, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

type rawMoveFile struct {
	Moves []map[string]any `yaml:"moves"`
}

func loadMoves(fsys fs.FS, root string, v *schema.Validator) ([]dex.Move, error) {
	files, err := glob(fsys, movePatterns)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no move catalog found under %s (want moves.yaml)", root)
	}

	var moves []dex.Move
	for _, file := range files {
		content, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", file, err)
		}
		var raw rawMoveFile
		if err := yaml.Unmarshal(content, &raw); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", file, err)
		}
		for i, entry := range raw.Moves {
			if err := v.ValidateMove(entry); err != nil {
				return nil, fmt.Errorf("%s: move entry %d: %w", file, i, err)
			}
			m, err := moveFromRaw(entry)
			if err != nil {
				return nil, fmt.Errorf("%s: move entry %d: %w", file, i, err)
			}
			moves = append(moves, m)
		}
	}
	return moves, nil
}

func moveFromRaw(entry map[string]any) (dex.Move, error) {
	var m dex.Move
	var err error
	m.Name = str(entry, "name")
	if m.Type, err = dex.ParseType(str(entry, "type")); err != nil {
		return m, err
	}
	if m.Category, err = dex.ParseCategory(str(entry, "category")); err != nil {
		return m, err
	}
	if m.Power, err = dex.ParsePowerClass(str(entry, "power")); err != nil {
		return m, err
	}
	if m.Target, err = dex.ParseTargetClass(str(entry, "target")); err != nil {
		return m, err
	}
	if m.Cast, err = dex.ParseCastSpeed(str(entry, "cast")); err != nil {
		return m, err
	}
	return m, nil
}

type rawItemFile struct {
	Items     []map[string]any    `yaml:"items"`
	Synergies map[string][]string `yaml:"synergies"`
	Fallback  []string            `yaml:"fallback"`
}

func loadItems(fsys fs.FS, root string, v *schema.Validator) (*catalog.Items, error) {
	files, err := glob(fsys, itemPatterns)
	if err != nil {
		return nil, err
	}

	var items []catalog.Item
	synergies := make(map[string][]string)
	var fallback []string

	for _, file := range files {
		content, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", file, err)
		}
		var raw rawItemFile
		if err := yaml.Unmarshal(content, &raw); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", file, err)
		}
		for i, entry := range raw.Items {
			if err := v.ValidateItem(entry); err != nil {
				return nil, fmt.Errorf("%s: item entry %d: %w", file, i, err)
			}
			it := catalog.Item{
				Name:        str(entry, "name"),
				Effect:      catalog.ItemEffect(str(entry, "effect")),
				Value:       num(entry, "value"),
				Description: str(entry, "description"),
			}
			if rt := str(entry, "resistType"); rt != "" {
				typ, err := dex.ParseType(rt)
				if err != nil {
					return nil, fmt.Errorf("%s: item entry %d: %w", file, i, err)
				}
				it.ResistType = typ
			}
			items = append(items, it)
		}
		for species, prefs := range raw.Synergies {
			synergies[species] = prefs
		}
		fallback = append(fallback, raw.Fallback...)
	}

	return catalog.NewItems(items, synergies, fallback)
}

type rawPokedexFile struct {
	Pokemon []map[string]any `yaml:"pokemon"`
}

func loadProfiles(fsys fs.FS, root string, v *schema.Validator) ([]dex.Profile, []Skip, error) {
	files, err := glob(fsys, pokedexPatterns)
	if err != nil {
		return nil, nil, err
	}

	var profiles []dex.Profile
	var skipped []Skip

	for _, file := range files {
		content, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, nil, fmt.Errorf("reading %s: %w", file, err)
		}
		var raw rawPokedexFile
		if err := yaml.Unmarshal(content, &raw); err != nil {
			return nil, nil, fmt.Errorf("parsing %s: %w", file, err)
		}
		for _, entry := range raw.Pokemon {
			name := str(entry, "name")
			if err := v.ValidateProfile(entry); err != nil {
				skipped = append(skipped, Skip{Profile: name, File: file, Reason: err.Error()})
				continue
			}
			p, err := profileFromRaw(entry)
			if err != nil {
				skipped = append(skipped, Skip{Profile: name, File: file, Reason: err.Error()})
				continue
			}
			if err := p.Validate(); err != nil {
				skipped = append(skipped, Skip{Profile: name, File: file, Reason: err.Error()})
				continue
			}
			profiles = append(profiles, p)
		}
	}

	return profiles, skipped, nil
}

func profileFromRaw(entry map[string]any) (dex.Profile, error) {
	var p dex.Profile
	p.Name = str(entry, "name")

	for _, t := range list(entry, "types") {
		typ, err := dex.ParseType(t)
		if err != nil {
			return p, err
		}
		p.Types = append(p.Types, typ)
	}

	stats, _ := entry["stats"].(map[string]any)
	p.Stats = dex.Stats{
		HP:  intval(stats, "hp"),
		Atk: intval(stats, "atk"),
		Def: intval(stats, "def"),
		SpA: intval(stats, "spa"),
		SpD: intval(stats, "spd"),
		Spe: intval(stats, "spe"),
	}

	size, err := dex.ParseSizeClass(str(entry, "size"))
	if err != nil {
		return p, err
	}
	p.Size = size

	p.Moves = list(entry, "moves")
	p.Legendary, _ = entry["legendary"].(bool)
	p.Item = str(entry, "item")
	p.Dex = str(entry, "dex")
	return p, nil
}

// CrawlTargets returns the profiles carrying a dex page number, the subset
// the moveset crawler can fetch.
func (d *Dataset) CrawlTargets() []dex.Profile {
	var out []dex.Profile
	for _, p := range d.Profiles {
		if p.Dex != "" {
			out = append(out, p)
		}
	}
	return out
}

func str(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func num(m map[string]any, key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

func intval(m map[string]any, key string) int {
	switch v := m[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

func list(m map[string]any, key string) []string {
	raw, _ := m[key].([]any)
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// DefaultRoot resolves the data root against the working directory, which
// lets the CLI run from anywhere inside the repo.
func DefaultRoot(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	return filepath.Join(wd, path)
}
