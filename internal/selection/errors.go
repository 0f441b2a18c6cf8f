package selection

import (
	"errors"
	"fmt"
)

// Domain errors for simulation runs.
var (
	// ErrInvalidConfig indicates a malformed simulation config.
	ErrInvalidConfig = errors.New("selection: invalid config")

	// ErrZeroMeanFitness indicates the mean population fitness reached
	// exactly zero while advancing the sequence.
	ErrZeroMeanFitness = errors.New("selection: mean fitness is zero")
)

// ConfigError reports a config field that failed validation.
// It unwraps to ErrInvalidConfig.
type ConfigError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%v: %s=%v: %s", ErrInvalidConfig, e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// GenerationError wraps a mid-run failure with the 1-based generation
// index at which it occurred and the inputs that produced it.
type GenerationError struct {
	Generation int
	Config     Config
	Err        error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%v at generation %d (p0=%g w1=%g w2=%g)",
		e.Err, e.Generation, e.Config.P0, e.Config.W1, e.Config.W2)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
