package plot

import (
	"fmt"
	"io"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/kjelman/haplosim/internal/selection"
)

// Format specifies the output format for trajectory rendering.
type Format string

const (
	FormatPNG  Format = "png"
	FormatSVG  Format = "svg"
	FormatHTML Format = "html"
)

// Options control the rendered figure.
type Options struct {
	// Width and Height of the full tiled canvas, in points.
	// Zero means the defaults (800x600).
	Width  float64
	Height float64
}

func (o Options) size() (vg.Length, vg.Length) {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = 800
	}
	if h <= 0 {
		h = 600
	}
	return vg.Points(w), vg.Points(h)
}

// panels builds the four diagnostic plots in a 2x2 grid:
// mean fitness, allele frequency, phase plot, frequency change.
func panels(t *selection.Trajectory, fix selection.FixationReport) ([][]*plot.Plot, error) {
	fitness, err := linePanel("Mean population fitness", "generation", "w̄", meanFitnessSeries(t))
	if err != nil {
		return nil, err
	}

	freq, err := linePanel("Allele 1 frequency", "generation", "p", frequencySeries(t))
	if err != nil {
		return nil, err
	}
	freq.Title.Text = "Allele 1 frequency: " + fix.String()
	freq.Y.Min, freq.Y.Max = 0, 1

	phase, err := plotPhase(t)
	if err != nil {
		return nil, err
	}

	delta, err := linePanel("Frequency change", "generation", "Δp", deltaSeries(t))
	if err != nil {
		return nil, err
	}

	return [][]*plot.Plot{{fitness, freq}, {phase, delta}}, nil
}

func linePanel(title, xLabel, yLabel string, xys plotter.XYs) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel

	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, fmt.Errorf("line %q: %w", title, err)
	}
	p.Add(line, plotter.NewGrid())
	return p, nil
}

func plotPhase(t *selection.Trajectory) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Phase plot"
	p.X.Label.Text = "p(t)"
	p.Y.Label.Text = "p(t+1)"

	scatter, err := plotter.NewScatter(phaseSeries(t))
	if err != nil {
		return nil, fmt.Errorf("phase scatter: %w", err)
	}
	scatter.Radius = vg.Points(1.5)
	p.Add(scatter, plotter.NewGrid())
	return p, nil
}

// Render draws the four diagnostic views of a trajectory to w in the
// given format.
func Render(w io.Writer, format Format, t *selection.Trajectory, fix selection.FixationReport, opts Options) error {
	switch format {
	case FormatPNG:
		return renderPNG(w, t, fix, opts)
	case FormatSVG:
		return renderSVG(w, t, fix, opts)
	case FormatHTML:
		html, err := RenderHTML(t, fix, opts)
		if err != nil {
			return err
		}
		_, err = w.Write(html)
		return err
	default:
		return fmt.Errorf("unsupported format %q (use 'png', 'svg', or 'html')", format)
	}
}

// RenderFile renders to a file at path, creating or truncating it.
func RenderFile(path string, format Format, t *selection.Trajectory, fix selection.FixationReport, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Render(f, format, t, fix, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func renderPNG(w io.Writer, t *selection.Trajectory, fix selection.FixationReport, opts Options) error {
	plots, err := panels(t, fix)
	if err != nil {
		return err
	}

	width, height := opts.size()
	img := vgimg.New(width, height)
	drawTiled(plots, draw.New(img))

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}

func renderSVG(w io.Writer, t *selection.Trajectory, fix selection.FixationReport, opts Options) error {
	plots, err := panels(t, fix)
	if err != nil {
		return err
	}

	width, height := opts.size()
	svg := vgsvg.New(width, height)
	drawTiled(plots, draw.New(svg))

	if _, err := svg.WriteTo(w); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

func drawTiled(plots [][]*plot.Plot, dc draw.Canvas) {
	tiles := draw.Tiles{
		Rows: len(plots),
		Cols: len(plots[0]),
		PadX: vg.Millimeter * 2,
		PadY: vg.Millimeter * 2,
	}

	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		for j := range plots[i] {
			if plots[i][j] != nil {
				plots[i][j].Draw(canvases[i][j])
			}
		}
	}
}
