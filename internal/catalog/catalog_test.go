package catalog

import (
	"errors"
	"testing"

	"royalemeta/internal/dex"
)

func testMoves() []dex.Move {
	return []dex.Move{
		{Name: "Surf", Type: dex.Water, Category: dex.Special, Power: dex.PowerMedium, Target: dex.TargetAoE, Cast: dex.CastFast},
		{Name: "Hydro Pump", Type: dex.Water, Category: dex.Special, Power: dex.PowerHigh, Target: dex.TargetSingle, Cast: dex.CastSlow},
		{Name: "Earthquake", Type: dex.Ground, Category: dex.Physical, Power: dex.PowerMedium, Target: dex.TargetAoE, Cast: dex.CastFast},
	}
}

func TestCatalogLookup(t *testing.T) {
	c, err := New(testMoves())
	if err != nil {
		t.Fatalf("New(): %v", err)
	}
	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", c.Len())
	}

	m, ok := c.Lookup("Surf")
	if !ok || m.Target != dex.TargetAoE {
		t.Errorf("Lookup(Surf) = %+v, %v", m, ok)
	}
	if _, ok := c.Lookup("Splash"); ok {
		t.Error("Lookup(Splash) should miss")
	}
}

func TestCatalogRejectsDuplicates(t *testing.T) {
	moves := append(testMoves(), dex.Move{Name: "Surf"})
	if _, err := New(moves); err == nil {
		t.Fatal("New() should reject duplicate move names")
	}
}

func TestResolveUnknownMove(t *testing.T) {
	c, _ := New(testMoves())
	p := dex.Profile{Name: "Kyogre", Moves: []string{"Surf", "Water Spout"}}

	_, err := c.Resolve(p)
	var ume *dex.UnknownMoveError
	if !errors.As(err, &ume) {
		t.Fatalf("Resolve() = %v, want *UnknownMoveError", err)
	}
	if ume.Move != "Water Spout" || ume.Profile != "Kyogre" {
		t.Errorf("UnknownMoveError = %+v", ume)
	}
}

func TestItemsRecommend(t *testing.T) {
	items := []Item{
		{Name: "Life Orb", Effect: EffectDamageBoost, Value: 1.3},
		{Name: "Assault Vest", Effect: EffectStatBoost, Value: 1.5},
		{Name: "Focus Sash", Effect: EffectSurviveOHKO},
		{Name: "Yache Berry", Effect: EffectResistOnce, ResistType: dex.Ice},
	}
	synergies := map[string][]string{
		"Garchomp": {"Yache Berry", "Life Orb"},
	}
	ic, err := NewItems(items, synergies, []string{"Life Orb", "Assault Vest", "Focus Sash"})
	if err != nil {
		t.Fatalf("NewItems(): %v", err)
	}

	chomp := dex.Profile{Name: "Garchomp"}

	it, ok := ic.Recommend(chomp, nil)
	if !ok || it.Name != "Yache Berry" {
		t.Errorf("Recommend() = %v %v, want Yache Berry", it.Name, ok)
	}

	used := map[string]bool{"Yache Berry": true, "Life Orb": true}
	it, ok = ic.Recommend(chomp, used)
	if !ok || it.Name != "Assault Vest" {
		t.Errorf("Recommend() with used items = %v %v, want Assault Vest", it.Name, ok)
	}

	all := map[string]bool{"Yache Berry": true, "Life Orb": true, "Assault Vest": true, "Focus Sash": true}
	if _, ok := ic.Recommend(chomp, all); ok {
		t.Error("Recommend() should fail when every preference is taken")
	}
}

func TestItemsRecommendFormStone(t *testing.T) {
	items := []Item{
		{Name: "Garchompite", Effect: EffectFormChange},
		{Name: "Red Orb", Effect: EffectFormChange},
		{Name: "Life Orb", Effect: EffectDamageBoost, Value: 1.3},
	}
	synergies := map[string][]string{
		"Garchomp-Mega":  {"Garchompite", "Life Orb"},
		"Groudon-Primal": {"Red Orb", "Life Orb"},
	}
	ic, err := NewItems(items, synergies, []string{"Life Orb"})
	if err != nil {
		t.Fatalf("NewItems(): %v", err)
	}

	it, ok := ic.Recommend(dex.Profile{Name: "Groudon-Primal"}, nil)
	if !ok || it.Name != "Red Orb" || it.Effect != EffectFormChange {
		t.Errorf("Recommend() = %v %v, want the Red Orb form item", it.Name, ok)
	}

	// A taken stone falls through to the rest of the preference list.
	it, ok = ic.Recommend(dex.Profile{Name: "Garchomp-Mega"}, map[string]bool{"Garchompite": true})
	if !ok || it.Name != "Life Orb" {
		t.Errorf("Recommend() with stone taken = %v %v, want Life Orb", it.Name, ok)
	}
}

func TestNewItemsValidation(t *testing.T) {
	if _, err := NewItems([]Item{{Name: "Odd Rock", Effect: "mystery"}}, nil, nil); err == nil {
		t.Error("NewItems should reject unknown effects")
	}
	if _, err := NewItems(nil, map[string][]string{"Mew": {"Life Orb"}}, nil); err == nil {
		t.Error("NewItems should reject synergies pointing at unknown items")
	}
}
