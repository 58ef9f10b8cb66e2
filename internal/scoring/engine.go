// Package scoring implements the viability heuristic for the real-time
// four-player battle-royale format. The engine is a pure function over a
// profile and the immutable catalogs: no hidden state, no randomness, same
// inputs always produce the same score.
package scoring

import (
	"errors"
	"sort"
	"time"

	"royalemeta/internal/catalog"
	"royalemeta/internal/config"
	"royalemeta/internal/dex"
)

// metaThreatWeight scales weakness penalties by how common an attacking
// type is in practice. Coverage nobody runs barely matters; Ice is
// everywhere.
var metaThreatWeight = map[dex.Type]float64{
	dex.Ice: 1.5, dex.Fighting: 1.4, dex.Ground: 1.3, dex.Fire: 1.2,
	dex.Fairy: 1.2, dex.Rock: 1.1, dex.Electric: 1.0, dex.Water: 1.0,
	dex.Dark: 1.0, dex.Ghost: 1.0, dex.Psychic: 0.9, dex.Steel: 0.9,
	dex.Dragon: 0.9, dex.Grass: 0.8, dex.Flying: 0.8, dex.Poison: 0.7,
	dex.Bug: 0.6, dex.Normal: 0.5,
}

// Weakness penalty bases: a 4x weakness makes a profile the lobby's
// favorite kill-steal target.
const (
	weaknessPenalty     = 20.0
	quadWeaknessPenalty = 50.0
)

// Engine computes viability scores against a fixed catalog, item set, and
// weight configuration.
type Engine struct {
	moves   *catalog.Catalog
	items   *catalog.Items
	weights config.Weights
	threats []dex.Type
}

// NewEngine wires an engine. items may be an empty catalog; threats is the
// set of attack types immunities are rewarded against.
func NewEngine(moves *catalog.Catalog, items *catalog.Items, weights config.Weights, threats []dex.Type) *Engine {
	return &Engine{moves: moves, items: items, weights: weights, threats: threats}
}

// ScoreAll evaluates a batch. Per-profile failures (unknown move, malformed
// profile) are recorded as skips and the batch continues; an empty input is
// the only fatal condition.
func (e *Engine) ScoreAll(profiles []dex.Profile) (*Summary, error) {
	if len(profiles) == 0 {
		return nil, dex.ErrEmptyDataset
	}

	s := &Summary{Started: time.Now()}
	for _, p := range profiles {
		sc, err := e.Score(p)
		if err != nil {
			var ume *dex.UnknownMoveError
			var mpe *dex.MalformedProfileError
			if errors.As(err, &ume) || errors.As(err, &mpe) {
				s.Skipped = append(s.Skipped, Skip{Profile: p.Name, Reason: err.Error()})
				continue
			}
			return nil, err
		}
		s.Scores = append(s.Scores, sc)
	}
	return s, nil
}

// Score evaluates a single profile. The formula is an additive weighted
// sum, clipped to a non-negative range:
//
//	offense + aoe + cast + size + immunity + mobility + survivability + item
//
// Size is the only term that reads the profile's size class.
func (e *Engine) Score(p dex.Profile) (Score, error) {
	if err := p.Validate(); err != nil {
		return Score{}, err
	}
	moves, err := e.moves.Resolve(p)
	if err != nil {
		return Score{}, err
	}

	best := bestMove(moves)
	bestAoE, hasAoE := bestAoEMove(moves)

	sc := Score{
		Profile:  p,
		BestMove: best,
		HasAoE:   hasAoE,
		Style:    attackStyle(p, bestAoE, hasAoE),
	}

	w := e.weights
	var b Breakdown

	// Base offense: the better of the two attacking stats. The AoE move's
	// category decides the reported style but never lowers the base.
	b.Offense = w.Offense * float64(maxInt(p.Stats.Atk, p.Stats.SpA))

	if hasAoE {
		b.AoE = w.AoEBonus
	}

	b.CastSpeed = e.castAdjustment(best)
	b.Size = w.Size.For(p.Size)

	defense := dex.DefenseFor(p.Types)
	sc.Immunities = defense.Immune
	b.Immunity = w.ImmunityBonus * float64(e.threatImmunities(defense.Immune))

	b.Mobility = w.Mobility * float64(p.Stats.Spe)

	item, hasItem := e.items.Recommend(p, nil)
	if hasItem {
		sc.Item = item.Name
		b.Item = w.Items[string(item.Effect)]
	}

	b.Survivability = w.Survivability * e.survivability(p, defense, item, hasItem)

	for _, t := range dex.AllTypes {
		if defense.Weak[t] >= 4 {
			sc.QuadWeak = append(sc.QuadWeak, t)
		}
	}

	sc.Breakdown = b
	sc.Value = b.Total()
	if sc.Value < 0 {
		sc.Value = 0
	}
	return sc, nil
}

// castAdjustment reflects the physical/special trade-off of the format:
// slow special casts can be dodged or interrupted, fast physical casts are
// reliable but require a risky approach.
func (e *Engine) castAdjustment(best dex.Move) float64 {
	w := e.weights
	switch {
	case best.Category == dex.Special && best.Cast == dex.CastSlow:
		return -w.SpecialSlowPenalty
	case best.Category == dex.Physical && best.Cast == dex.CastFast:
		return w.PhysicalFastBonus - w.ApproachRiskPenalty
	default:
		return 0
	}
}

// threatImmunities counts distinct immunities against the configured
// threat types.
func (e *Engine) threatImmunities(immune []dex.Type) int {
	n := 0
	for _, threat := range e.threats {
		for _, imm := range immune {
			if imm == threat {
				n++
				break
			}
		}
	}
	return n
}

// survivability is raw bulk minus a meta-weighted weakness penalty. It is
// deliberately size-free: the hitbox effect lives entirely in the size
// term. A recommended resist berry halves the penalty of its 4x type, the
// one hit it can eat.
func (e *Engine) survivability(p dex.Profile, defense dex.Defense, item catalog.Item, hasItem bool) float64 {
	bulk := float64(p.Stats.HP) * float64(p.Stats.Def+p.Stats.SpD) / 200

	penalty := 0.0
	for _, t := range dex.AllTypes {
		mult, ok := defense.Weak[t]
		if !ok {
			continue
		}
		base := weaknessPenalty
		if mult >= 4 {
			base = quadWeaknessPenalty
			if hasItem && item.Effect == catalog.EffectResistOnce && item.ResistType == t {
				base /= 2
			}
		}
		penalty += base * metaThreatWeight[t]
	}

	v := bulk - penalty
	if v < 0 {
		v = 0
	}
	return v
}

// attackStyle reports which attacking stat drives the profile: the best AoE
// move's category when one exists, otherwise whichever stat is higher, with
// special winning ties as the safer ranged option.
func attackStyle(p dex.Profile, bestAoE dex.Move, hasAoE bool) dex.Category {
	if hasAoE {
		return bestAoE.Category
	}
	if p.Stats.Atk > p.Stats.SpA {
		return dex.Physical
	}
	return dex.Special
}

// bestMove ranks a non-empty move list: higher power class first, then AoE
// over single-target over multi-hit, then name for determinism.
func bestMove(moves []dex.Move) dex.Move {
	ranked := make([]dex.Move, len(moves))
	copy(ranked, moves)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Power != ranked[j].Power {
			return ranked[i].Power > ranked[j].Power
		}
		if ranked[i].Target != ranked[j].Target {
			return targetRank(ranked[i].Target) > targetRank(ranked[j].Target)
		}
		return ranked[i].Name < ranked[j].Name
	})
	return ranked[0]
}

// bestAoEMove returns the highest-ranked true AoE move, if any. Multi-hit
// moves never qualify: they strike one target repeatedly and are dodgeable
// between hits.
func bestAoEMove(moves []dex.Move) (dex.Move, bool) {
	var aoe []dex.Move
	for _, m := range moves {
		if m.Target == dex.TargetAoE {
			aoe = append(aoe, m)
		}
	}
	if len(aoe) == 0 {
		return dex.Move{}, false
	}
	return bestMove(aoe), true
}

func targetRank(t dex.TargetClass) int {
	switch t {
	case dex.TargetAoE:
		return 2
	case dex.TargetSingle:
		return 1
	default:
		return 0
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
