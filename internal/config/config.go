// Package config provides unified configuration loading for haplosim.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config contains all haplosim configuration settings.
type Config struct {
	// Logging contains settings for operational and trace logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`

	// Plot contains settings for the diagnostic plot renderer.
	Plot PlotConfig `json:"plot" yaml:"plot"`

	// Sweep contains settings for multi-run sweeps.
	Sweep SweepConfig `json:"sweep" yaml:"sweep"`
}

// LoggingConfig configures haplosim's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	// "debug" enables per-generation trace logging to .haplosim/trace.jsonl.
	Level string `json:"level" yaml:"level"`
}

// PlotConfig configures the default rendering of diagnostic plots.
type PlotConfig struct {
	// Format is the default output format: "png", "svg", or "html".
	Format string `json:"format" yaml:"format"`

	// Width and Height are the canvas size of the tiled figure, in
	// points. Zero means the renderer's defaults.
	Width  float64 `json:"width,omitempty" yaml:"width,omitempty"`
	Height float64 `json:"height,omitempty" yaml:"height,omitempty"`
}

// SweepConfig configures concurrent scenario sweeps.
type SweepConfig struct {
	// Workers is the number of simulations run concurrently.
	// Zero or negative means one worker per CPU.
	Workers int `json:"workers" yaml:"workers"`
}

// EffectiveWorkers resolves the worker count, defaulting to NumCPU.
func (c SweepConfig) EffectiveWorkers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info"},
		Plot:    PlotConfig{Format: "png"},
		Sweep:   SweepConfig{Workers: 0},
	}
}

// Load loads configuration from the default locations and environment variables.
// Order: defaults -> ~/.haplosim/config.yaml -> environment variables
func Load() (*Config, error) {
	cfg := Default()

	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".haplosim", "config.yaml")
		if _, statErr := os.Stat(configPath); statErr == nil {
			fileCfg, loadErr := LoadFromFile(configPath)
			if loadErr != nil {
				return nil, fmt.Errorf("loading config file: %w", loadErr)
			}
			cfg = fileCfg
		}
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// LoadFromFile loads configuration from a specific YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	validLevels := map[string]bool{"": true, "info": true, "debug": true, "trace": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}

	validFormats := map[string]bool{"": true, "png": true, "svg": true, "html": true}
	if !validFormats[c.Plot.Format] {
		return fmt.Errorf("invalid plot format: %s (valid: png, svg, html, or empty for default)", c.Plot.Format)
	}

	if c.Plot.Width < 0 || c.Plot.Height < 0 {
		return fmt.Errorf("plot size must be non-negative, got %gx%g", c.Plot.Width, c.Plot.Height)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HAPLOSIM_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	if v := os.Getenv("HAPLOSIM_PLOT_FORMAT"); v != "" {
		cfg.Plot.Format = v
	}

	if v := os.Getenv("HAPLOSIM_SWEEP_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Sweep.Workers = n
		}
	}
}
