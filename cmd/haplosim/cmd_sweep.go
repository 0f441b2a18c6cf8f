package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kjelman/haplosim/internal/scenario"
	"github.com/kjelman/haplosim/internal/selection"
)

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run every configuration of a scenario file",
		Long: `Run all configurations of a scenario YAML file on a worker pool.

Runs are independent, so they execute concurrently; results are
reported in file order. Without --scenario the built-in presets are
swept.

Example scenario file:
  runs:
    - name: strong
      p0: 0.01
      w1: 1.0
      w2: 0.9
      generations: 100`,
		RunE: func(cmd *cobra.Command, args []string) error {
			scenarioPath, _ := cmd.Flags().GetString("scenario")
			workers, _ := cmd.Flags().GetInt("workers")
			jsonOut, _ := cmd.Flags().GetBool("json")

			cfg, logger, err := loadAppConfig(cmd)
			if err != nil {
				return err
			}
			if workers <= 0 {
				workers = cfg.Sweep.EffectiveWorkers()
			}

			var runs []scenario.Run
			if scenarioPath != "" {
				s, err := scenario.LoadFile(scenarioPath)
				if err != nil {
					return err
				}
				runs = s.Runs
			} else {
				runs = scenario.Presets()
			}

			configs := make([]selection.Config, len(runs))
			for i, r := range runs {
				configs[i] = r.Config()
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Debug("starting sweep", "runs", len(runs), "workers", workers)

			results, ctxErr := selection.Sweep(ctx, configs, workers)
			if ctxErr != nil {
				return fmt.Errorf("sweep interrupted: %w", ctxErr)
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(sweepSummary(runs, results))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Sweep results (%d runs, %d workers):\n\n", len(runs), workers)
			for i, r := range results {
				name := runs[i].Name
				if name == "" {
					name = fmt.Sprintf("run-%d", i+1)
				}
				switch {
				case r.Err != nil:
					fmt.Fprintf(out, "%-12s error: %v\n", name, r.Err)
				case r.Fixation.Fixed:
					fmt.Fprintf(out, "%-12s fixed at generation %d\n", name, r.Fixation.Generation)
				default:
					fmt.Fprintf(out, "%-12s no fixation (max frequency %.6f)\n", name, r.Fixation.MaxFrequency)
				}
			}

			return nil
		},
	}

	cmd.Flags().String("scenario", "", "Scenario YAML file (default: built-in presets)")
	cmd.Flags().Int("workers", 0, "Concurrent simulations (default: from config, else one per CPU)")

	return cmd
}

// sweepRunSummary is the per-run JSON summary of a sweep.
type sweepRunSummary struct {
	Name           string                    `json:"name"`
	Config         selection.Config          `json:"config"`
	Fixation       *selection.FixationReport `json:"fixation,omitempty"`
	FinalFrequency *float64                  `json:"final_frequency,omitempty"`
	Error          string                    `json:"error,omitempty"`
}

func sweepSummary(runs []scenario.Run, results []selection.SweepResult) map[string]interface{} {
	summaries := make([]sweepRunSummary, len(results))
	for i, r := range results {
		s := sweepRunSummary{Name: runs[i].Name, Config: r.Config}
		if r.Err != nil {
			s.Error = r.Err.Error()
		} else {
			fix := r.Fixation
			s.Fixation = &fix
			last := r.Trajectory.P[r.Trajectory.Generations()-1]
			s.FinalFrequency = &last
		}
		summaries[i] = s
	}
	return map[string]interface{}{
		"runs":  summaries,
		"count": len(summaries),
	}
}
