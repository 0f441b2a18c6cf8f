package plot

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kjelman/haplosim/internal/selection"
)

func testTrajectory(t *testing.T) (*selection.Trajectory, selection.FixationReport) {
	t.Helper()
	traj, fix, err := selection.Simulate(selection.Config{P0: 0.01, W1: 1, W2: 0.9, Generations: 100})
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	return traj, fix
}

func TestSeries(t *testing.T) {
	traj, _ := testTrajectory(t)
	n := traj.Generations()

	tests := []struct {
		name    string
		lenWant int
	}{
		{"mean fitness", n},
		{"frequency", n},
		{"phase", n - 1},
		{"delta", n - 1},
	}

	fitness := meanFitnessSeries(traj)
	freq := frequencySeries(traj)
	phase := phaseSeries(traj)
	delta := deltaSeries(traj)
	got := []int{len(fitness), len(freq), len(phase), len(delta)}

	for i, tt := range tests {
		if got[i] != tt.lenWant {
			t.Errorf("%s series length = %d, want %d", tt.name, got[i], tt.lenWant)
		}
	}

	// Generation axis is 1-based.
	if fitness[0].X != 1 || freq[0].X != 1 {
		t.Errorf("first generation X = %v, %v, want 1", fitness[0].X, freq[0].X)
	}
	// The delta view starts at generation 2.
	if delta[0].X != 2 {
		t.Errorf("first delta X = %v, want 2", delta[0].X)
	}
	// Phase pairs are (p[t], p[t+1]).
	if phase[0].X != traj.P[0] || phase[0].Y != traj.P[1] {
		t.Errorf("phase[0] = %+v, want (%v, %v)", phase[0], traj.P[0], traj.P[1])
	}
}

func TestSeries_SingleGeneration(t *testing.T) {
	traj, _, err := selection.Simulate(selection.Config{P0: 0.5, W1: 1.1, W2: 1, Generations: 1})
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if got := phaseSeries(traj); len(got) != 0 {
		t.Errorf("phase series length = %d, want 0", len(got))
	}
	if got := deltaSeries(traj); len(got) != 0 {
		t.Errorf("delta series length = %d, want 0", len(got))
	}
}

func TestRender_Formats(t *testing.T) {
	traj, fix := testTrajectory(t)

	tests := []struct {
		name   string
		format Format
		sniff  string
	}{
		{"png", FormatPNG, "\x89PNG"},
		{"svg", FormatSVG, "<svg"},
		{"html", FormatHTML, "<!DOCTYPE html>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Render(&buf, tt.format, traj, fix, Options{}); err != nil {
				t.Fatalf("Render(%s) err = %v", tt.format, err)
			}
			if buf.Len() == 0 {
				t.Fatal("Render produced no output")
			}
			if !strings.Contains(buf.String(), tt.sniff) {
				t.Errorf("output does not look like %s (missing %q)", tt.format, tt.sniff)
			}
		})
	}
}

func TestRender_UnsupportedFormat(t *testing.T) {
	traj, fix := testTrajectory(t)
	var buf bytes.Buffer
	if err := Render(&buf, Format("pdf"), traj, fix, Options{}); err == nil {
		t.Fatal("Render(pdf) = nil error, want failure")
	}
}

func TestRenderFile(t *testing.T) {
	traj, fix := testTrajectory(t)
	path := filepath.Join(t.TempDir(), "report.svg")

	if err := RenderFile(path, FormatSVG, traj, fix, Options{Width: 640, Height: 480}); err != nil {
		t.Fatalf("RenderFile() err = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	if info.Size() == 0 {
		t.Error("rendered file is empty")
	}
}

func TestRenderHTML(t *testing.T) {
	traj, fix := testTrajectory(t)

	html, err := RenderHTML(traj, fix, Options{})
	if err != nil {
		t.Fatalf("RenderHTML() err = %v", err)
	}

	doc := string(html)
	if !strings.Contains(doc, "<svg") {
		t.Error("report does not inline the SVG figure")
	}
	if strings.Contains(doc, "<?xml") {
		t.Error("report leaks the XML prolog into the HTML body")
	}
	if !strings.Contains(doc, fix.String()) {
		t.Errorf("report missing fixation summary %q", fix.String())
	}
	if !strings.Contains(doc, "100 generations") {
		t.Error("report missing generation count")
	}
}

func TestRenderHTML_DoesNotMutateTrajectory(t *testing.T) {
	traj, fix := testTrajectory(t)
	before := make([]float64, len(traj.P))
	copy(before, traj.P)

	if _, err := RenderHTML(traj, fix, Options{}); err != nil {
		t.Fatalf("RenderHTML() err = %v", err)
	}
	for i := range before {
		if traj.P[i] != before[i] {
			t.Fatalf("renderer mutated P[%d]", i)
		}
	}
}
