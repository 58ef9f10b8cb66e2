package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"royalemeta/internal/output"
)

var tiersCmd = &cobra.Command{
	Use:   "tiers",
	Short: "Print the tier rankings without a team suggestion",
	Long: `Score and rank every Pokemon in the dataset, printing only the tier
list. The team builder is skipped, which is useful when piping the
rankings into another tool.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runTiers(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(tiersCmd)
}

func runTiers() error {
	a, err := analyze()
	if err != nil {
		return err
	}
	if err := output.Render(a.report(), a.cfg); err != nil {
		return fmt.Errorf("error formatting output: %w", err)
	}
	return nil
}
