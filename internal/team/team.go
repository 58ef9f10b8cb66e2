// Package team builds a suggested squad from a ranked tier list.
package team

import (
	"royalemeta/internal/catalog"
	"royalemeta/internal/config"
	"royalemeta/internal/tier"
)

// Member is one slot on the suggested team.
type Member struct {
	Ranked  tier.Ranked
	Item    catalog.Item
	HasItem bool
}

// Team is the builder's output, plus the constraints it was built under so
// reports can echo them.
type Team struct {
	Members        []Member
	Size           int
	MaxLegendaries int
}

// Build walks the tier list best-first and fills the team greedily. Two
// constraints prune candidates: at most MaxLegendaries legendaries, and no
// two members may hold the same item. A candidate whose every preferred
// item is already taken is skipped, not given a duplicate.
func Build(ranked []tier.Ranked, items *catalog.Items, cfg config.TeamConfig) Team {
	team := Team{
		Size:           cfg.Size,
		MaxLegendaries: cfg.MaxLegendaries,
	}

	legendaries := 0
	used := make(map[string]bool)
	for _, r := range ranked {
		if len(team.Members) == cfg.Size {
			break
		}
		if r.Score.Profile.Legendary && legendaries == cfg.MaxLegendaries {
			continue
		}

		item, ok := items.Recommend(r.Score.Profile, used)
		if !ok && items.Len() > 0 {
			// Every item this species wants is spoken for. It plays
			// worse without its kit, so pass it over.
			continue
		}

		if r.Score.Profile.Legendary {
			legendaries++
		}
		if ok {
			used[item.Name] = true
		}
		team.Members = append(team.Members, Member{Ranked: r, Item: item, HasItem: ok})
	}
	return team
}
