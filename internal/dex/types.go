// Package dex provides the shared domain types used across the royalemeta
// codebase. This package is at the bottom of the dependency graph and should
// not import any other internal packages to avoid circular dependencies.
package dex

import "fmt"

// Type is an elemental type (Water, Dragon, ...).
type Type string

// The eighteen elemental types.
const (
	Normal   Type = "Normal"
	Fire     Type = "Fire"
	Water    Type = "Water"
	Electric Type = "Electric"
	Grass    Type = "Grass"
	Ice      Type = "Ice"
	Fighting Type = "Fighting"
	Poison   Type = "Poison"
	Ground   Type = "Ground"
	Flying   Type = "Flying"
	Psychic  Type = "Psychic"
	Bug      Type = "Bug"
	Rock     Type = "Rock"
	Ghost    Type = "Ghost"
	Dragon   Type = "Dragon"
	Dark     Type = "Dark"
	Steel    Type = "Steel"
	Fairy    Type = "Fairy"
)

// AllTypes lists every elemental type in a fixed order. Iteration over this
// slice keeps derived results deterministic (map iteration order is not).
var AllTypes = []Type{
	Normal, Fire, Water, Electric, Grass, Ice, Fighting, Poison, Ground,
	Flying, Psychic, Bug, Rock, Ghost, Dragon, Dark, Steel, Fairy,
}

// ParseType validates a type name.
func ParseType(s string) (Type, error) {
	for _, t := range AllTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown type %q", s)
}

// Category is a move's damage category.
type Category int

const (
	Physical Category = iota
	Special
)

func (c Category) String() string {
	if c == Physical {
		return "Physical"
	}
	return "Special"
}

// ParseCategory parses a damage category name.
func ParseCategory(s string) (Category, error) {
	switch s {
	case "Physical":
		return Physical, nil
	case "Special":
		return Special, nil
	}
	return 0, fmt.Errorf("unknown category %q", s)
}

// PowerClass buckets move power into coarse classes.
type PowerClass int

const (
	PowerLow PowerClass = iota
	PowerMedium
	PowerHigh
)

func (p PowerClass) String() string {
	switch p {
	case PowerHigh:
		return "High"
	case PowerMedium:
		return "Medium"
	default:
		return "Low"
	}
}

// ParsePowerClass parses a power class name.
func ParsePowerClass(s string) (PowerClass, error) {
	switch s {
	case "Low":
		return PowerLow, nil
	case "Medium":
		return PowerMedium, nil
	case "High":
		return PowerHigh, nil
	}
	return 0, fmt.Errorf("unknown power class %q", s)
}

// TargetClass says how a move applies its damage. AoE hits one area and can
// catch several grouped enemies; multi-hit strikes one target repeatedly and
// is dodgeable between hits, so it earns no area bonus.
type TargetClass int

const (
	TargetSingle TargetClass = iota
	TargetAoE
	TargetMultiHit
)

func (t TargetClass) String() string {
	switch t {
	case TargetAoE:
		return "AoE"
	case TargetMultiHit:
		return "MultiHit"
	default:
		return "Single"
	}
}

// ParseTargetClass parses a target class name.
func ParseTargetClass(s string) (TargetClass, error) {
	switch s {
	case "Single":
		return TargetSingle, nil
	case "AoE":
		return TargetAoE, nil
	case "MultiHit":
		return TargetMultiHit, nil
	}
	return 0, fmt.Errorf("unknown target class %q", s)
}

// CastSpeed is the coarse cast-time class of a move.
type CastSpeed int

const (
	CastFast CastSpeed = iota
	CastSlow
)

func (c CastSpeed) String() string {
	if c == CastSlow {
		return "Slow"
	}
	return "Fast"
}

// ParseCastSpeed parses a cast speed name.
func ParseCastSpeed(s string) (CastSpeed, error) {
	switch s {
	case "Fast":
		return CastFast, nil
	case "Slow":
		return CastSlow, nil
	}
	return 0, fmt.Errorf("unknown cast speed %q", s)
}

// SizeClass is the qualitative hitbox/movement class of a species. Smaller
// is safer in a free-for-all: harder to hit, quicker to reposition.
type SizeClass int

const (
	SizeTiny SizeClass = iota + 1
	SizeSmall
	SizeMedium
	SizeLarge
	SizeHuge
)

func (s SizeClass) String() string {
	switch s {
	case SizeTiny:
		return "Tiny"
	case SizeSmall:
		return "Small"
	case SizeLarge:
		return "Large"
	case SizeHuge:
		return "Huge"
	default:
		return "Medium"
	}
}

// ParseSizeClass parses a size class name.
func ParseSizeClass(s string) (SizeClass, error) {
	switch s {
	case "Tiny":
		return SizeTiny, nil
	case "Small":
		return SizeSmall, nil
	case "Medium":
		return SizeMedium, nil
	case "Large":
		return SizeLarge, nil
	case "Huge":
		return SizeHuge, nil
	}
	return 0, fmt.Errorf("unknown size class %q", s)
}

// Move is an immutable move-catalog entry, created once at load time.
type Move struct {
	Name     string
	Type     Type
	Category Category
	Power    PowerClass
	Target   TargetClass
	Cast     CastSpeed
}

// Stats holds a species' base stats.
type Stats struct {
	HP  int
	Atk int
	Def int
	SpA int
	SpD int
	Spe int
}

// Profile is a per-species record: typing, base stats, size category, and
// the learnable move subset (by catalog name). Profiles are process-wide
// read-only state once loaded; tiers are never stored on them so a profile
// stays reusable across rule changes.
type Profile struct {
	Name      string
	Types     []Type
	Stats     Stats
	Size      SizeClass
	Moves     []string
	Legendary bool
	Item      string // preferred held item, optional
	Dex       string // dex page number for the moveset crawler, optional
}

// Validate checks the structural invariants: a profile carries 1-2 distinct
// types and a non-empty move list.
func (p Profile) Validate() error {
	if p.Name == "" {
		return &MalformedProfileError{Profile: p.Name, Reason: "missing name"}
	}
	if len(p.Types) < 1 || len(p.Types) > 2 {
		return &MalformedProfileError{Profile: p.Name, Reason: fmt.Sprintf("want 1-2 types, got %d", len(p.Types))}
	}
	if len(p.Types) == 2 && p.Types[0] == p.Types[1] {
		return &MalformedProfileError{Profile: p.Name, Reason: "duplicate type " + string(p.Types[0])}
	}
	if len(p.Moves) == 0 {
		return &MalformedProfileError{Profile: p.Name, Reason: "empty move list"}
	}
	if p.Size < SizeTiny || p.Size > SizeHuge {
		return &MalformedProfileError{Profile: p.Name, Reason: "invalid size class"}
	}
	return nil
}
