package catalog

import (
	"fmt"

	"royalemeta/internal/dex"
)

// ItemEffect classifies what a held item does in-game.
type ItemEffect string

const (
	EffectFormChange  ItemEffect = "form_change"
	EffectDamageBoost ItemEffect = "damage_boost"
	EffectSurviveOHKO ItemEffect = "survive_ohko"
	EffectStatBoost   ItemEffect = "stat_boost"
	EffectRecovery    ItemEffect = "recovery"
	EffectResistOnce  ItemEffect = "resist_once"
	EffectContact     ItemEffect = "contact_damage"
	EffectLifesteal   ItemEffect = "lifesteal"
	EffectAccuracy    ItemEffect = "accuracy"
	EffectCrit        ItemEffect = "crit"
)

// knownEffects gates item data at load time.
var knownEffects = map[ItemEffect]bool{
	EffectFormChange:  true,
	EffectDamageBoost: true,
	EffectSurviveOHKO: true,
	EffectStatBoost:   true,
	EffectRecovery:    true,
	EffectResistOnce:  true,
	EffectContact:     true,
	EffectLifesteal:   true,
	EffectAccuracy:    true,
	EffectCrit:        true,
}

// Item is a held-item catalog entry. ResistType is set only for
// resist_once berries.
type Item struct {
	Name        string
	Effect      ItemEffect
	Value       float64
	ResistType  dex.Type
	Description string
}

// Items is the held-item catalog plus the per-species synergy preferences
// used by the team builder when it must avoid duplicates.
type Items struct {
	byName    map[string]Item
	synergies map[string][]string
	fallback  []string
}

// NewItems builds the item catalog. The fallback list is consulted when a
// species has no synergy entry or its preferred items are taken.
func NewItems(items []Item, synergies map[string][]string, fallback []string) (*Items, error) {
	ic := &Items{
		byName:    make(map[string]Item, len(items)),
		synergies: synergies,
		fallback:  fallback,
	}
	for _, it := range items {
		if it.Name == "" {
			return nil, fmt.Errorf("item catalog entry with empty name")
		}
		if !knownEffects[it.Effect] {
			return nil, fmt.Errorf("item %q: unknown effect %q", it.Name, it.Effect)
		}
		if _, dup := ic.byName[it.Name]; dup {
			return nil, fmt.Errorf("duplicate item catalog entry %q", it.Name)
		}
		ic.byName[it.Name] = it
	}
	for species, names := range synergies {
		for _, n := range names {
			if _, ok := ic.byName[n]; !ok {
				return nil, fmt.Errorf("synergy list for %s references unknown item %q", species, n)
			}
		}
	}
	for _, n := range fallback {
		if _, ok := ic.byName[n]; !ok {
			return nil, fmt.Errorf("fallback list references unknown item %q", n)
		}
	}
	return ic, nil
}

// Len reports the number of items in the catalog.
func (ic *Items) Len() int { return len(ic.byName) }

// Lookup resolves an item name.
func (ic *Items) Lookup(name string) (Item, bool) {
	it, ok := ic.byName[name]
	return it, ok
}

// Preferences returns the ordered item preference list for a species: its
// explicit profile item first, then synergies, then the global fallback.
func (ic *Items) Preferences(p dex.Profile) []string {
	var prefs []string
	seen := make(map[string]bool)
	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		if _, ok := ic.byName[name]; !ok {
			return
		}
		seen[name] = true
		prefs = append(prefs, name)
	}

	add(p.Item)
	for _, n := range ic.synergies[p.Name] {
		add(n)
	}
	for _, n := range ic.fallback {
		add(n)
	}
	return prefs
}

// Recommend picks the best available item for a species, skipping names in
// used. Returns false when every preference is taken.
func (ic *Items) Recommend(p dex.Profile, used map[string]bool) (Item, bool) {
	for _, name := range ic.Preferences(p) {
		if used[name] {
			continue
		}
		return ic.byName[name], true
	}
	return Item{}, false
}
