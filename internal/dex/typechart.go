package dex

// matchup is the defensive profile of a single type.
type matchup struct {
	weak   []Type
	resist []Type
	immune []Type
}

// defenseChart maps each defending type to the attacking types it is weak,
// resistant, or immune to.
var defenseChart = map[Type]matchup{
	Normal:   {weak: []Type{Fighting}, immune: []Type{Ghost}},
	Fire:     {weak: []Type{Water, Ground, Rock}, resist: []Type{Fire, Grass, Ice, Bug, Steel, Fairy}},
	Water:    {weak: []Type{Electric, Grass}, resist: []Type{Fire, Water, Ice, Steel}},
	Electric: {weak: []Type{Ground}, resist: []Type{Electric, Flying, Steel}},
	Grass:    {weak: []Type{Fire, Ice, Poison, Flying, Bug}, resist: []Type{Water, Electric, Grass, Ground}},
	Ice:      {weak: []Type{Fire, Fighting, Rock, Steel}, resist: []Type{Ice}},
	Fighting: {weak: []Type{Flying, Psychic, Fairy}, resist: []Type{Bug, Rock, Dark}},
	Poison:   {weak: []Type{Ground, Psychic}, resist: []Type{Grass, Fighting, Poison, Bug, Fairy}},
	Ground:   {weak: []Type{Water, Grass, Ice}, resist: []Type{Poison, Rock}, immune: []Type{Electric}},
	Flying:   {weak: []Type{Electric, Ice, Rock}, resist: []Type{Grass, Fighting, Bug}, immune: []Type{Ground}},
	Psychic:  {weak: []Type{Bug, Ghost, Dark}, resist: []Type{Fighting, Psychic}},
	Bug:      {weak: []Type{Fire, Flying, Rock}, resist: []Type{Grass, Fighting, Ground}},
	Rock:     {weak: []Type{Water, Grass, Fighting, Ground, Steel}, resist: []Type{Normal, Fire, Poison, Flying}},
	Ghost:    {weak: []Type{Ghost, Dark}, resist: []Type{Poison, Bug}, immune: []Type{Normal, Fighting}},
	Dragon:   {weak: []Type{Ice, Dragon, Fairy}, resist: []Type{Fire, Water, Electric, Grass}},
	Dark:     {weak: []Type{Fighting, Bug, Fairy}, resist: []Type{Ghost, Dark}, immune: []Type{Psychic}},
	Steel:    {weak: []Type{Fire, Fighting, Ground}, resist: []Type{Normal, Grass, Ice, Flying, Psychic, Bug, Rock, Dragon, Steel, Fairy}, immune: []Type{Poison}},
	Fairy:    {weak: []Type{Poison, Steel}, resist: []Type{Fighting, Bug, Dark}, immune: []Type{Dragon}},
}

// Defense holds the combined defensive multipliers for a typing.
// Weak lists 2x and 4x matchups, Resist 0.5x and 0.25x, Immune 0x.
type Defense struct {
	Weak   map[Type]float64
	Resist map[Type]float64
	Immune []Type
}

// DefenseFor combines the defensive chart across a 1-2 type combination and
// classifies every attacking type.
func DefenseFor(types []Type) Defense {
	d := Defense{
		Weak:   make(map[Type]float64),
		Resist: make(map[Type]float64),
	}

	for _, attack := range AllTypes {
		mult := 1.0
		for _, def := range types {
			m, ok := defenseChart[def]
			if !ok {
				continue
			}
			switch {
			case contains(m.immune, attack):
				mult = 0
			case contains(m.weak, attack):
				mult *= 2
			case contains(m.resist, attack):
				mult *= 0.5
			}
		}

		switch {
		case mult == 0:
			d.Immune = append(d.Immune, attack)
		case mult >= 2:
			d.Weak[attack] = mult
		case mult <= 0.5:
			d.Resist[attack] = mult
		}
	}

	return d
}

// Immunities returns the attacking types a typing is fully immune to, in
// chart order.
func Immunities(types []Type) []Type {
	return DefenseFor(types).Immune
}

func contains(ts []Type, t Type) bool {
	for _, v := range ts {
		if v == t {
			return true
		}
	}
	return false
}
