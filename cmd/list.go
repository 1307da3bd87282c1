package cmd

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/halcyonpartners/backdrop/internal/effect"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available effects",
	RunE:  listEffects,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func listEffects(cmd *cobra.Command, args []string) error {
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	if err := table.Append([]string{"Effect", "Description", "Bloom"}); err != nil {
		return fmt.Errorf("append header row: %w", err)
	}
	for _, st := range effect.Strategies() {
		bloom := "no"
		if st.Glow {
			bloom = "yes"
		}
		if err := table.Append([]string{st.Name, st.Description, bloom}); err != nil {
			return fmt.Errorf("append %s: %w", st.Name, err)
		}
	}
	return table.Render()
}
