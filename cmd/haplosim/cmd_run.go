package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kjelman/haplosim/internal/config"
	"github.com/kjelman/haplosim/internal/logging"
	"github.com/kjelman/haplosim/internal/scenario"
	"github.com/kjelman/haplosim/internal/selection"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Simulate a single selection trajectory",
		Long: `Simulate one-locus haploid selection for a single configuration.

The configuration comes from the parameter flags, or from a built-in
preset with --preset. At debug log level each generation is also traced
to .haplosim/trace.jsonl.

Examples:
  haplosim run --p0 0.01 --w1 1 --w2 0.9 -n 100
  haplosim run --preset extended --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := resolveRun(cmd)
			if err != nil {
				return err
			}
			cfg, logger, err := loadAppConfig(cmd)
			if err != nil {
				return err
			}
			jsonOut, _ := cmd.Flags().GetBool("json")
			table, _ := cmd.Flags().GetBool("table")
			root, _ := cmd.Flags().GetString("root")

			logger.Debug("starting run",
				"name", run.Name, "p0", run.P0, "w1", run.W1, "w2", run.W2,
				"generations", run.Generations)

			traj, fix, err := selection.Simulate(run.Config())
			if err != nil {
				return fmt.Errorf("simulation failed: %w", err)
			}

			traceTrajectory(filepath.Join(root, ".haplosim"), cfg.Logging.Level, run, traj)

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
					"config":     run,
					"trajectory": traj,
					"fixation":   fix,
				})
			}

			out := cmd.OutOrStdout()
			if run.Name != "" {
				fmt.Fprintf(out, "Run: %s\n", run.Name)
			}
			fmt.Fprintf(out, "Parameters: p0=%g w1=%g w2=%g generations=%d\n",
				run.P0, run.W1, run.W2, run.Generations)
			fmt.Fprintln(out)

			if table {
				fmt.Fprintf(out, "%10s %12s %12s %12s\n", "generation", "p", "w_bar", "delta_p")
				for i := 0; i < traj.Generations(); i++ {
					fmt.Fprintf(out, "%10d %12.6f %12.6f %12.6f\n",
						i+1, traj.P[i], traj.WBar[i], traj.DeltaP[i])
				}
				fmt.Fprintln(out)
			}

			last := traj.Generations() - 1
			fmt.Fprintf(out, "Final frequency: %.6f (w̄=%.6f)\n", traj.P[last], traj.WBar[last])
			fmt.Fprintf(out, "Fixation: %s\n", fix)

			return nil
		},
	}

	addRunFlags(cmd)
	cmd.Flags().Bool("table", false, "Print the full per-generation table")

	return cmd
}

// addRunFlags registers the shared simulation parameter flags.
// The defaults match the basic lecture demo.
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("p0", 0.01, "Initial frequency of allele 1 (in [0,1])")
	cmd.Flags().Float64("w1", 1.0, "Relative fitness of allele 1")
	cmd.Flags().Float64("w2", 0.9, "Relative fitness of allele 2")
	cmd.Flags().IntP("generations", "n", 100, "Number of generations to simulate")
	cmd.Flags().String("preset", "", "Use a built-in preset (basic, extended) instead of the parameter flags")
}

// resolveRun builds the run from --preset or the parameter flags.
func resolveRun(cmd *cobra.Command) (scenario.Run, error) {
	preset, _ := cmd.Flags().GetString("preset")
	if preset != "" {
		return scenario.Preset(preset)
	}

	p0, _ := cmd.Flags().GetFloat64("p0")
	w1, _ := cmd.Flags().GetFloat64("w1")
	w2, _ := cmd.Flags().GetFloat64("w2")
	n, _ := cmd.Flags().GetInt("generations")
	return scenario.Run{P0: p0, W1: w1, W2: w2, Generations: n}, nil
}

// loadAppConfig loads the application config and builds the logger,
// applying the --log-level override.
func loadAppConfig(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.Logging.Level = lvl
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}
	logger := logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr())
	return cfg, logger, nil
}

// traceTrajectory writes the per-generation trace at debug level and
// above. A disabled trace logger is a nil no-op.
func traceTrajectory(dir, level string, run scenario.Run, traj *selection.Trajectory) {
	tl := logging.NewTraceLogger(dir, level)
	defer tl.Close()

	for i := 0; i < traj.Generations(); i++ {
		tl.Log(map[string]any{
			"run":        run.Name,
			"generation": i + 1,
			"p":          traj.P[i],
			"w_bar":      traj.WBar[i],
			"delta_p":    traj.DeltaP[i],
		})
	}
}
