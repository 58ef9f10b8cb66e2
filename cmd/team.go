package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"royalemeta/internal/team"
)

var teamCmd = &cobra.Command{
	Use:   "team",
	Short: "Print only the suggested team",
	Long: `Score and rank the dataset, then print the suggested team built under
the standard constraints: three slots, at most one legendary, no two
members holding the same item.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runTeam(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(teamCmd)
}

func runTeam(w io.Writer) error {
	a, err := analyze()
	if err != nil {
		return err
	}

	squad := team.Build(a.ranked, a.ds.Items, a.cfg.Team)
	if len(squad.Members) == 0 {
		return fmt.Errorf("no team could be built from %d ranked profiles", len(a.ranked))
	}

	for i, m := range squad.Members {
		item := "no item"
		if m.HasItem {
			item = m.Item.Name
		}
		tag := ""
		if m.Ranked.Score.Profile.Legendary {
			tag = " [legendary]"
		}
		fmt.Fprintf(w, "%d. %s (%s, %.1f) holding %s%s\n",
			i+1, m.Ranked.Score.Profile.Name, m.Ranked.Tier, m.Ranked.Value, item, tag)
	}
	return nil
}
