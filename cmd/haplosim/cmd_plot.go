package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kjelman/haplosim/internal/plot"
	"github.com/kjelman/haplosim/internal/selection"
)

func newPlotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Simulate and render diagnostic plots",
		Long: `Simulate a configuration and render the four diagnostic views:
mean fitness, allele frequency, the phase plot, and frequency change.

Formats: png, svg, or a self-contained html report. With --serve the
html report is served on a localhost port instead of written to disk.

Examples:
  haplosim plot --preset basic -o basic.png
  haplosim plot --p0 0.0001 --w2 0.987 -n 1000 --format html
  haplosim plot --preset extended --format html --serve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := resolveRun(cmd)
			if err != nil {
				return err
			}
			cfg, logger, err := loadAppConfig(cmd)
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			output, _ := cmd.Flags().GetString("output")
			serve, _ := cmd.Flags().GetBool("serve")
			noOpen, _ := cmd.Flags().GetBool("no-open")

			if format == "" {
				format = cfg.Plot.Format
			}
			opts := plot.Options{Width: cfg.Plot.Width, Height: cfg.Plot.Height}

			traj, fix, err := selection.Simulate(run.Config())
			if err != nil {
				return fmt.Errorf("simulation failed: %w", err)
			}
			logger.Debug("rendering", "format", format, "generations", traj.Generations())

			if serve {
				if plot.Format(format) != plot.FormatHTML {
					return fmt.Errorf("--serve requires the html format")
				}
				return serveReport(cmd, traj, fix, opts, noOpen)
			}

			outPath := output
			if outPath == "" {
				outPath = filepath.Join(os.TempDir(), "haplosim-report."+format)
			}
			if err := plot.RenderFile(outPath, plot.Format(format), traj, fix, opts); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", outPath)
			fmt.Fprintf(cmd.OutOrStdout(), "Fixation: %s\n", fix)

			if plot.Format(format) == plot.FormatHTML && !noOpen {
				if err := plot.OpenBrowser(outPath); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Could not open browser: %v\nOpen %s manually.\n", err, outPath)
				}
			}
			return nil
		},
	}

	addRunFlags(cmd)
	cmd.Flags().String("format", "", "Output format: png, svg, or html (default from config)")
	cmd.Flags().StringP("output", "o", "", "Output file path")
	cmd.Flags().Bool("serve", false, "Serve the html report on a localhost port")
	cmd.Flags().Bool("no-open", false, "Don't open the browser for html output")

	return cmd
}

// serveReport renders the html report and serves it until interrupted.
func serveReport(cmd *cobra.Command, traj *selection.Trajectory, fix selection.FixationReport, opts plot.Options, noOpen bool) error {
	report, err := plot.RenderHTML(traj, fix, opts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := plot.NewServer(report)
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe(ctx) }()

	// Wait for the listener before announcing the address.
	for srv.Addr() == "" {
		select {
		case err := <-errCh:
			return err
		case <-time.After(10 * time.Millisecond):
		}
	}

	url := "http://" + srv.Addr()
	fmt.Fprintf(cmd.OutOrStdout(), "Serving report at %s (Ctrl-C to stop)\n", url)

	if !noOpen {
		if err := plot.OpenBrowser(url); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Could not open browser: %v\nOpen %s manually.\n", err, url)
		}
	}

	return <-errCh
}
