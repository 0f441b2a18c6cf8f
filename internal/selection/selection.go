// Package selection implements deterministic one-locus haploid
// natural-selection dynamics. A Config fixes the initial frequency of
// allele 1 and the relative fitness of both alleles; Simulate iterates
// the standard recurrence
//
//	w̄(t) = p(t)·w1 + (1-p(t))·w2
//	p(t+1) = w1·p(t) / w̄(t)
//
// for a fixed number of generations and reports whether allele 1
// reached fixation. The computation is pure: the same Config always
// produces the same Trajectory, and nothing is shared between calls.
package selection

// FixationThreshold is the allele frequency above which allele 1 is
// considered fixed. The first generation whose frequency strictly
// exceeds it is reported as the fixation generation.
const FixationThreshold = 0.9999

// Config holds the parameters of a single simulation run.
//
// Fitness values are relative, not absolute; only their ratio matters
// to the trajectory. Negative fitness is accepted (the caller owns the
// consequences), but a mean fitness of exactly zero mid-run aborts the
// simulation with ErrZeroMeanFitness.
type Config struct {
	// P0 is the initial frequency of allele 1. Must be in [0, 1].
	P0 float64 `json:"p0" yaml:"p0"`

	// W1 is the relative fitness of allele 1.
	W1 float64 `json:"w1" yaml:"w1"`

	// W2 is the relative fitness of allele 2.
	W2 float64 `json:"w2" yaml:"w2"`

	// Generations is the number of generations to simulate, including
	// the initial one. Must be at least 1.
	Generations int `json:"generations" yaml:"generations"`
}

// Validate checks the config against the simulator's preconditions.
// It returns a *ConfigError wrapping ErrInvalidConfig on failure.
func (c Config) Validate() error {
	if c.P0 < 0 || c.P0 > 1 {
		return &ConfigError{Field: "p0", Value: c.P0, Reason: "initial frequency must be in [0, 1]"}
	}
	if c.Generations < 1 {
		return &ConfigError{Field: "generations", Value: float64(c.Generations), Reason: "generation count must be at least 1"}
	}
	return nil
}

// Trajectory is the full per-generation record of a simulation run.
// All three slices have length Config.Generations and share indexing:
// index 0 is generation 1.
type Trajectory struct {
	// P is the frequency of allele 1 per generation.
	P []float64 `json:"p"`

	// WBar is the mean population fitness per generation, including
	// the final generation even though it never advances the sequence.
	WBar []float64 `json:"w_bar"`

	// DeltaP is the generation-over-generation change in P.
	// DeltaP[0] is 0 by convention.
	DeltaP []float64 `json:"delta_p"`
}

// Generations returns the number of generations in the trajectory.
func (t *Trajectory) Generations() int {
	return len(t.P)
}

// Simulate runs the selection recurrence for cfg and returns the
// trajectory together with a fixation report.
//
// It fails with a *ConfigError (wrapping ErrInvalidConfig) before any
// computation when cfg is malformed, and with a *GenerationError
// (wrapping ErrZeroMeanFitness) when a mean fitness that would divide
// the next generation is exactly zero. On error no partial trajectory
// is returned.
func Simulate(cfg Config) (*Trajectory, FixationReport, error) {
	if err := cfg.Validate(); err != nil {
		return nil, FixationReport{}, err
	}

	n := cfg.Generations
	t := &Trajectory{
		P:      make([]float64, n),
		WBar:   make([]float64, n),
		DeltaP: make([]float64, n),
	}
	t.P[0] = cfg.P0

	for i := 1; i < n; i++ {
		wBar := meanFitness(t.P[i-1], cfg)
		if wBar == 0 {
			// Generation indices are 1-based in reports.
			return nil, FixationReport{}, &GenerationError{
				Generation: i,
				Config:     cfg,
				Err:        ErrZeroMeanFitness,
			}
		}
		t.WBar[i-1] = wBar
		t.P[i] = cfg.W1 * t.P[i-1] / wBar
		t.DeltaP[i] = t.P[i] - t.P[i-1]
	}

	// The last mean fitness advances nothing but completes the
	// parallel record.
	t.WBar[n-1] = meanFitness(t.P[n-1], cfg)

	return t, detectFixation(t.P), nil
}

// meanFitness is the frequency-weighted average fitness of both alleles.
func meanFitness(p float64, cfg Config) float64 {
	return p*cfg.W1 + (1-p)*cfg.W2
}
