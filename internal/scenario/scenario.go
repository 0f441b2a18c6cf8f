// Package scenario loads named simulation run sets from YAML files and
// provides the built-in lecture presets.
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kjelman/haplosim/internal/selection"
)

// Run is a named simulation configuration.
type Run struct {
	Name        string  `json:"name" yaml:"name"`
	P0          float64 `json:"p0" yaml:"p0"`
	W1          float64 `json:"w1" yaml:"w1"`
	W2          float64 `json:"w2" yaml:"w2"`
	Generations int     `json:"generations" yaml:"generations"`
}

// Config converts the run to a selection.Config.
func (r Run) Config() selection.Config {
	return selection.Config{P0: r.P0, W1: r.W1, W2: r.W2, Generations: r.Generations}
}

// Scenario is an ordered set of runs, typically loaded from a YAML file.
type Scenario struct {
	Runs []Run `json:"runs" yaml:"runs"`
}

// Configs returns the selection configs of all runs, in order.
func (s *Scenario) Configs() []selection.Config {
	configs := make([]selection.Config, len(s.Runs))
	for i, r := range s.Runs {
		configs[i] = r.Config()
	}
	return configs
}

// Validate checks every run's config and that names are present and
// unique, so a bad file is rejected before any simulation starts.
func (s *Scenario) Validate() error {
	if len(s.Runs) == 0 {
		return fmt.Errorf("scenario has no runs")
	}
	seen := make(map[string]bool, len(s.Runs))
	for i, r := range s.Runs {
		if r.Name == "" {
			return fmt.Errorf("run %d: missing name", i+1)
		}
		if seen[r.Name] {
			return fmt.Errorf("run %d: duplicate name %q", i+1, r.Name)
		}
		seen[r.Name] = true
		if err := r.Config().Validate(); err != nil {
			return fmt.Errorf("run %q: %w", r.Name, err)
		}
	}
	return nil
}

// LoadFile loads and validates a scenario from a YAML file.
func LoadFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scenario file: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}
	return &s, nil
}

// Built-in presets matching the classic lecture demos: a strongly
// selected allele starting at 1% and a weakly selected one starting at
// a single-copy-like frequency.
var presets = []Run{
	{Name: "basic", P0: 0.01, W1: 1, W2: 0.9, Generations: 100},
	{Name: "extended", P0: 0.0001, W1: 1, W2: 0.987, Generations: 1000},
}

// Presets returns the built-in runs, in declaration order.
func Presets() []Run {
	out := make([]Run, len(presets))
	copy(out, presets)
	return out
}

// Preset returns the built-in run with the given name.
func Preset(name string) (Run, error) {
	for _, r := range presets {
		if r.Name == name {
			return r, nil
		}
	}
	return Run{}, fmt.Errorf("unknown preset %q (available: basic, extended)", name)
}
