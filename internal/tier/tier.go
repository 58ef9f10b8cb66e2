// Package tier ranks scored profiles and buckets them into the S..F ladder.
package tier

import (
	"fmt"
	"sort"

	"royalemeta/internal/config"
	"royalemeta/internal/scoring"
)

// Tier is a meta-viability bucket. S is best, F is worst.
type Tier string

const (
	TierS Tier = "S"
	TierA Tier = "A"
	TierB Tier = "B"
	TierC Tier = "C"
	TierD Tier = "D"
	TierF Tier = "F"
)

// ladder is the assignment order for both policies. F is the catch-all and
// never carries a cut of its own.
var ladder = [...]Tier{TierS, TierA, TierB, TierC, TierD}

// Ranked is a scored profile with its final rank and tier attached.
type Ranked struct {
	Rank int
	Tier Tier
	scoring.Score
}

// Assigner buckets scores into tiers using one of two policies:
//
//   - percentile: a profile's tier depends on its rank fraction within the
//     batch. Stable while the scoring formula is retuned.
//   - fixed: a profile's tier depends on its score as a ratio of the batch
//     maximum. Comparable across batches of different sizes.
type Assigner struct {
	policy     string
	cuts       map[string]float64
	thresholds map[string]float64
}

// NewAssigner validates the tier configuration up front so a bad cut table
// fails the run instead of silently dumping everything into F.
func NewAssigner(cfg config.TierConfig) (*Assigner, error) {
	switch cfg.Policy {
	case "percentile":
		if err := checkAscending(cfg.Cuts); err != nil {
			return nil, fmt.Errorf("tier cuts: %w", err)
		}
	case "fixed":
		if err := checkDescending(cfg.Thresholds); err != nil {
			return nil, fmt.Errorf("tier thresholds: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown tier policy %q", cfg.Policy)
	}
	return &Assigner{
		policy:     cfg.Policy,
		cuts:       cfg.Cuts,
		thresholds: cfg.Thresholds,
	}, nil
}

func checkAscending(cuts map[string]float64) error {
	prev := 0.0
	for _, t := range ladder {
		c, ok := cuts[string(t)]
		if !ok {
			return fmt.Errorf("missing cut for tier %s", t)
		}
		if c <= prev || c > 1 {
			return fmt.Errorf("cut for tier %s must be in (%v, 1], got %v", t, prev, c)
		}
		prev = c
	}
	return nil
}

func checkDescending(thresholds map[string]float64) error {
	prev := 1.0
	for _, t := range ladder {
		th, ok := thresholds[string(t)]
		if !ok {
			return fmt.Errorf("missing threshold for tier %s", t)
		}
		if th >= prev || th <= 0 {
			return fmt.Errorf("threshold for tier %s must be in (0, %v), got %v", t, prev, th)
		}
		prev = th
	}
	return nil
}

// Assign sorts scores best-first and attaches ranks and tiers. The sort is
// stable, so profiles with equal scores keep their relative input order.
// Equal scores always share a tier; when a cut would split them, the whole
// group takes the higher tier.
func (a *Assigner) Assign(scores []scoring.Score) []Ranked {
	ordered := make([]scoring.Score, len(scores))
	copy(ordered, scores)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Value > ordered[j].Value
	})

	ranked := make([]Ranked, len(ordered))
	for i, s := range ordered {
		t := a.tierFor(i, len(ordered), s.Value, maxValue(ordered))
		if i > 0 && s.Value == ordered[i-1].Value {
			t = ranked[i-1].Tier
		}
		ranked[i] = Ranked{Rank: i + 1, Tier: t, Score: s}
	}
	return ranked
}

func maxValue(ordered []scoring.Score) float64 {
	if len(ordered) == 0 {
		return 0
	}
	return ordered[0].Value
}

func (a *Assigner) tierFor(pos, total int, value, max float64) Tier {
	if a.policy == "fixed" {
		if max <= 0 {
			return TierF
		}
		ratio := value / max
		for _, t := range ladder {
			if ratio >= a.thresholds[string(t)] {
				return t
			}
		}
		return TierF
	}

	// Percentile: the fraction of the batch ranked strictly above this
	// entry decides the bucket, so the single best profile is always S.
	frac := float64(pos) / float64(total)
	for _, t := range ladder {
		if frac < a.cuts[string(t)] {
			return t
		}
	}
	return TierF
}
