package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "haplosim",
		Short: "Deterministic one-locus haploid selection simulation",
		Long: `haplosim computes allele-frequency trajectories under one-locus
haploid natural selection.

Given an initial frequency and the relative fitness of two alleles, it
iterates the deterministic recurrence generation by generation, detects
fixation, and renders diagnostic plots of the dynamics.`,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON (for machine consumption)")
	rootCmd.PersistentFlags().String("log-level", "", "Log verbosity: info, debug, or trace (overrides config)")
	rootCmd.PersistentFlags().String("root", ".", "Directory for the .haplosim trace output")

	// Add subcommands
	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newSweepCmd(),
		newPlotCmd(),
		newPresetsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{"version": version})
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "haplosim version %s\n", version)
			}
		},
	}
}
