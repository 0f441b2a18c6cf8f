// Package plot renders diagnostic views of selection trajectories in
// various output formats. It is a pure consumer: nothing here mutates
// or recomputes a trajectory.
package plot

import (
	"gonum.org/v1/plot/plotter"

	"github.com/kjelman/haplosim/internal/selection"
)

// meanFitnessSeries is w̄ against generation, for all generations.
func meanFitnessSeries(t *selection.Trajectory) plotter.XYs {
	xys := make(plotter.XYs, t.Generations())
	for i, w := range t.WBar {
		xys[i] = plotter.XY{X: float64(i + 1), Y: w}
	}
	return xys
}

// frequencySeries is p against generation, for all generations.
func frequencySeries(t *selection.Trajectory) plotter.XYs {
	xys := make(plotter.XYs, t.Generations())
	for i, p := range t.P {
		xys[i] = plotter.XY{X: float64(i + 1), Y: p}
	}
	return xys
}

// phaseSeries pairs consecutive frequencies: (p[t], p[t+1]).
// Empty for a single-generation trajectory.
func phaseSeries(t *selection.Trajectory) plotter.XYs {
	n := t.Generations()
	if n < 2 {
		return nil
	}
	xys := make(plotter.XYs, n-1)
	for i := 0; i < n-1; i++ {
		xys[i] = plotter.XY{X: t.P[i], Y: t.P[i+1]}
	}
	return xys
}

// deltaSeries is Δp against generation for generations 2..n; the delta
// at generation 1 is a defined zero with no prior state, so it is
// omitted from the view.
func deltaSeries(t *selection.Trajectory) plotter.XYs {
	n := t.Generations()
	if n < 2 {
		return nil
	}
	xys := make(plotter.XYs, n-1)
	for i := 1; i < n; i++ {
		xys[i-1] = plotter.XY{X: float64(i + 1), Y: t.DeltaP[i]}
	}
	return xys
}
