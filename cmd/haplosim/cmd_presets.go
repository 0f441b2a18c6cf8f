package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kjelman/haplosim/internal/scenario"
)

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the built-in simulation presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			runs := scenario.Presets()

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
					"presets": runs,
					"count":   len(runs),
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Built-in presets (%d):\n\n", len(runs))
			for _, r := range runs {
				fmt.Fprintf(out, "  %-10s p0=%g w1=%g w2=%g generations=%d\n",
					r.Name, r.P0, r.W1, r.W2, r.Generations)
			}
			return nil
		},
	}
}
