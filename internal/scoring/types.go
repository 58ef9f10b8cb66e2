package scoring

import (
	"time"

	"royalemeta/internal/dex"
)

// Breakdown is the per-term decomposition of a score. Every term except
// Size is independent of the profile's size class, so two profiles that
// differ only in size differ exactly by the Size delta.
type Breakdown struct {
	Offense       float64 `json:"offense"`
	AoE           float64 `json:"aoe"`
	CastSpeed     float64 `json:"cast_speed"`
	Size          float64 `json:"size"`
	Immunity      float64 `json:"immunity"`
	Mobility      float64 `json:"mobility"`
	Survivability float64 `json:"survivability"`
	Item          float64 `json:"item"`
}

// Total sums the terms before clipping.
func (b Breakdown) Total() float64 {
	return b.Offense + b.AoE + b.CastSpeed + b.Size + b.Immunity +
		b.Mobility + b.Survivability + b.Item
}

// Score is a profile's computed viability for one analysis run. Scores are
// ephemeral: recomputed every run, never persisted apart from a report.
type Score struct {
	Profile    dex.Profile
	Value      float64
	Breakdown  Breakdown
	Style      dex.Category // attack style the offense term used
	BestMove   dex.Move
	HasAoE     bool
	Item       string
	Immunities []dex.Type
	QuadWeak   []dex.Type
}

// Skip records a profile the engine could not evaluate. Skips never abort
// the batch.
type Skip struct {
	Profile string
	Reason  string
}

// Summary is the outcome of one batch run: everything scored plus
// everything skipped and why.
type Summary struct {
	Started time.Time
	Scores  []Score
	Skipped []Skip
}
