package dex

import (
	"errors"
	"testing"
)

func TestDefenseForImmunities(t *testing.T) {
	tests := []struct {
		name   string
		types  []Type
		immune []Type
	}{
		{"Fairy blanks Dragon", []Type{Fairy}, []Type{Dragon}},
		{"Flying blanks Ground", []Type{Flying}, []Type{Ground}},
		{"Dark blanks Psychic", []Type{Dark}, []Type{Psychic}},
		{"Steel blanks Poison", []Type{Steel}, []Type{Poison}},
		{"Dark/Flying blanks both", []Type{Dark, Flying}, []Type{Ground, Psychic}},
		{"Water has none", []Type{Water}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Immunities(tt.types)
			if len(got) != len(tt.immune) {
				t.Fatalf("Immunities(%v) = %v, want %v", tt.types, got, tt.immune)
			}
			for i := range got {
				if got[i] != tt.immune[i] {
					t.Errorf("Immunities(%v)[%d] = %v, want %v", tt.types, i, got[i], tt.immune[i])
				}
			}
		})
	}
}

func TestDefenseForQuadWeakness(t *testing.T) {
	d := DefenseFor([]Type{Dragon, Flying})
	if d.Weak[Ice] != 4 {
		t.Errorf("Dragon/Flying vs Ice = %v, want 4", d.Weak[Ice])
	}
	if d.Weak[Rock] != 2 {
		t.Errorf("Dragon/Flying vs Rock = %v, want 2", d.Weak[Rock])
	}
	// Grass is resisted by Dragon and by Flying.
	if d.Resist[Grass] != 0.25 {
		t.Errorf("Dragon/Flying vs Grass = %v, want 0.25", d.Resist[Grass])
	}
}

func TestDefenseForImmunityOverridesWeakness(t *testing.T) {
	// Ground/Flying: the Flying immunity to Ground must survive the Ground
	// half of the typing, no matter the evaluation order.
	d := DefenseFor([]Type{Ground, Flying})
	for _, imm := range d.Immune {
		if imm == Ground {
			return
		}
	}
	t.Errorf("Ground/Flying should be immune to Ground, got %v", d.Immune)
}

func TestProfileValidate(t *testing.T) {
	valid := Profile{
		Name:  "Kyogre",
		Types: []Type{Water},
		Stats: Stats{HP: 100, Atk: 100, Def: 90, SpA: 150, SpD: 140, Spe: 90},
		Size:  SizeHuge,
		Moves: []string{"Origin Pulse"},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() on valid profile: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(Profile) Profile
	}{
		{"empty name", func(p Profile) Profile { p.Name = ""; return p }},
		{"no types", func(p Profile) Profile { p.Types = nil; return p }},
		{"three types", func(p Profile) Profile { p.Types = []Type{Water, Fire, Grass}; return p }},
		{"duplicate types", func(p Profile) Profile { p.Types = []Type{Water, Water}; return p }},
		{"no moves", func(p Profile) Profile { p.Moves = nil; return p }},
		{"bad size", func(p Profile) Profile { p.Size = 0; return p }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.mutate(valid)
			err := p.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want MalformedProfileError")
			}
			var mpe *MalformedProfileError
			if !errors.As(err, &mpe) {
				t.Errorf("Validate() = %T, want *MalformedProfileError", err)
			}
		})
	}
}

func TestParseRoundTrips(t *testing.T) {
	for _, s := range []string{"Tiny", "Small", "Medium", "Large", "Huge"} {
		sz, err := ParseSizeClass(s)
		if err != nil {
			t.Fatalf("ParseSizeClass(%q): %v", s, err)
		}
		if sz.String() != s {
			t.Errorf("ParseSizeClass(%q).String() = %q", s, sz.String())
		}
	}
	if _, err := ParseSizeClass("Gargantuan"); err == nil {
		t.Error("ParseSizeClass should reject unknown names")
	}
	if _, err := ParseType("Shadow"); err == nil {
		t.Error("ParseType should reject unknown names")
	}
}
