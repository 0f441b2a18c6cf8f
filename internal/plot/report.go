package plot

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/kjelman/haplosim/internal/selection"
)

// reportTemplate is the self-contained HTML report: the tiled SVG
// figure inlined directly, plus the fixation summary.
const reportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>haplosim report</title>
<style>
  body { font-family: Helvetica, Arial, sans-serif; margin: 2rem; color: #222; }
  h1 { font-size: 1.3rem; }
  .summary { margin: 1rem 0; padding: 0.6rem 1rem; background: #f4f4f4; border-left: 4px solid steelblue; }
  .figure { max-width: 100%; }
</style>
</head>
<body>
<h1>Haploid selection diagnostics</h1>
<p class="summary">{{.Summary}} ({{.Generations}} generations)</p>
<div class="figure">{{.Figure}}</div>
</body>
</html>
`

// RenderHTML produces a self-contained HTML report for a trajectory.
// The figure is inlined as SVG so the file has no external assets.
func RenderHTML(t *selection.Trajectory, fix selection.FixationReport, opts Options) ([]byte, error) {
	var svg bytes.Buffer
	if err := renderSVG(&svg, t, fix, opts); err != nil {
		return nil, err
	}
	// Drop the XML prolog; it is not valid inside an HTML body.
	figure := svg.Bytes()
	if i := bytes.Index(figure, []byte("<svg")); i > 0 {
		figure = figure[i:]
	}

	tmpl, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse report template: %w", err)
	}

	data := struct {
		Summary     string
		Generations int
		Figure      template.HTML
	}{
		Summary:     fix.String(),
		Generations: t.Generations(),
		Figure:      template.HTML(figure),
	}

	var out bytes.Buffer
	if err := tmpl.Execute(&out, data); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return out.Bytes(), nil
}
