package selection

import (
	"errors"
	"math"
	"testing"
)

const tol = 1e-12

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
		field   string
	}{
		{
			name: "valid config",
			cfg:  Config{P0: 0.01, W1: 1, W2: 0.9, Generations: 100},
		},
		{
			name: "boundary p0 zero",
			cfg:  Config{P0: 0, W1: 1, W2: 0.9, Generations: 10},
		},
		{
			name: "boundary p0 one",
			cfg:  Config{P0: 1, W1: 1, W2: 0.9, Generations: 10},
		},
		{
			name:    "p0 negative",
			cfg:     Config{P0: -0.1, W1: 1, W2: 0.9, Generations: 10},
			wantErr: true,
			field:   "p0",
		},
		{
			name:    "p0 above one",
			cfg:     Config{P0: 1.5, W1: 1, W2: 0.9, Generations: 10},
			wantErr: true,
			field:   "p0",
		},
		{
			name:    "zero generations",
			cfg:     Config{P0: 0.5, W1: 1, W2: 0.9, Generations: 0},
			wantErr: true,
			field:   "generations",
		},
		{
			name:    "negative generations",
			cfg:     Config{P0: 0.5, W1: 1, W2: 0.9, Generations: -3},
			wantErr: true,
			field:   "generations",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("Validate() error type = %T, want *ConfigError", err)
			}
			if ce.Field != tt.field {
				t.Errorf("ConfigError.Field = %q, want %q", ce.Field, tt.field)
			}
		})
	}
}

func TestSimulate_InvalidConfigBeforeComputation(t *testing.T) {
	traj, fix, err := Simulate(Config{P0: 2, W1: 1, W2: 1, Generations: 10})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("Simulate() err = %v, want ErrInvalidConfig", err)
	}
	if traj != nil {
		t.Errorf("Simulate() trajectory = %v, want nil", traj)
	}
	if fix != (FixationReport{}) {
		t.Errorf("Simulate() fixation = %+v, want zero value", fix)
	}
}

func TestSimulate_SingleGeneration(t *testing.T) {
	traj, fix, err := Simulate(Config{P0: 0.5, W1: 1.1, W2: 1.0, Generations: 1})
	if err != nil {
		t.Fatalf("Simulate() err = %v", err)
	}
	if got := traj.Generations(); got != 1 {
		t.Fatalf("Generations() = %d, want 1", got)
	}
	if traj.P[0] != 0.5 {
		t.Errorf("P[0] = %v, want 0.5", traj.P[0])
	}
	wantWBar := 0.5*1.1 + 0.5*1.0
	if math.Abs(traj.WBar[0]-wantWBar) > tol {
		t.Errorf("WBar[0] = %v, want %v", traj.WBar[0], wantWBar)
	}
	if traj.DeltaP[0] != 0 {
		t.Errorf("DeltaP[0] = %v, want 0", traj.DeltaP[0])
	}
	if fix.Fixed {
		t.Errorf("fixation = %+v, want not fixed", fix)
	}
	if fix.MaxFrequency != 0.5 {
		t.Errorf("MaxFrequency = %v, want 0.5", fix.MaxFrequency)
	}
}

func TestSimulate_EqualFitnessIsConstant(t *testing.T) {
	traj, _, err := Simulate(Config{P0: 0.3, W1: 1.2, W2: 1.2, Generations: 50})
	if err != nil {
		t.Fatalf("Simulate() err = %v", err)
	}
	for i, p := range traj.P {
		if math.Abs(p-0.3) > tol {
			t.Fatalf("P[%d] = %v, want constant 0.3", i, p)
		}
	}
	for i, d := range traj.DeltaP {
		if math.Abs(d) > tol {
			t.Fatalf("DeltaP[%d] = %v, want 0", i, d)
		}
	}
}

func TestSimulate_FavoredAlleleIsNonDecreasing(t *testing.T) {
	traj, _, err := Simulate(Config{P0: 0.05, W1: 1.0, W2: 0.8, Generations: 200})
	if err != nil {
		t.Fatalf("Simulate() err = %v", err)
	}
	for i := 1; i < traj.Generations(); i++ {
		if traj.P[i] < traj.P[i-1] {
			t.Fatalf("P[%d] = %v < P[%d] = %v, want non-decreasing", i, traj.P[i], i-1, traj.P[i-1])
		}
	}
	last := traj.P[traj.Generations()-1]
	if last <= 0.99 {
		t.Errorf("final frequency = %v, want convergence toward 1", last)
	}
}

func TestSimulate_DisfavoredAlleleIsNonIncreasing(t *testing.T) {
	traj, fix, err := Simulate(Config{P0: 0.9, W1: 0.8, W2: 1.0, Generations: 200})
	if err != nil {
		t.Fatalf("Simulate() err = %v", err)
	}
	for i := 1; i < traj.Generations(); i++ {
		if traj.P[i] > traj.P[i-1] {
			t.Fatalf("P[%d] = %v > P[%d] = %v, want non-increasing", i, traj.P[i], i-1, traj.P[i-1])
		}
	}
	if fix.Fixed {
		t.Errorf("fixation = %+v, want not fixed", fix)
	}
	last := traj.P[traj.Generations()-1]
	if last >= 0.01 {
		t.Errorf("final frequency = %v, want convergence toward 0", last)
	}
}

func TestSimulate_DeltaIdentity(t *testing.T) {
	traj, _, err := Simulate(Config{P0: 0.01, W1: 1, W2: 0.9, Generations: 100})
	if err != nil {
		t.Fatalf("Simulate() err = %v", err)
	}
	if traj.DeltaP[0] != 0 {
		t.Errorf("DeltaP[0] = %v, want 0", traj.DeltaP[0])
	}
	for i := 1; i < traj.Generations(); i++ {
		want := traj.P[i] - traj.P[i-1]
		if math.Abs(traj.DeltaP[i]-want) > tol {
			t.Errorf("DeltaP[%d] = %v, want %v", i, traj.DeltaP[i], want)
		}
	}
}

func TestSimulate_MeanFitnessBounds(t *testing.T) {
	cfg := Config{P0: 0.2, W1: 1.3, W2: 0.7, Generations: 80}
	traj, _, err := Simulate(cfg)
	if err != nil {
		t.Fatalf("Simulate() err = %v", err)
	}
	lo, hi := math.Min(cfg.W1, cfg.W2), math.Max(cfg.W1, cfg.W2)
	for i, w := range traj.WBar {
		if w < lo-tol || w > hi+tol {
			t.Errorf("WBar[%d] = %v, want within [%v, %v]", i, w, lo, hi)
		}
	}
}

func TestSimulate_Deterministic(t *testing.T) {
	cfg := Config{P0: 0.0001, W1: 1, W2: 0.987, Generations: 1000}
	a, fixA, err := Simulate(cfg)
	if err != nil {
		t.Fatalf("Simulate() err = %v", err)
	}
	b, fixB, err := Simulate(cfg)
	if err != nil {
		t.Fatalf("Simulate() err = %v", err)
	}
	if fixA != fixB {
		t.Errorf("fixation reports differ: %+v vs %+v", fixA, fixB)
	}
	for i := range a.P {
		if a.P[i] != b.P[i] || a.WBar[i] != b.WBar[i] || a.DeltaP[i] != b.DeltaP[i] {
			t.Fatalf("generation %d differs between identical runs", i+1)
		}
	}
}

func TestSimulate_BoundaryFrequencies(t *testing.T) {
	tests := []struct {
		name string
		p0   float64
	}{
		{"absent allele stays absent", 0},
		{"fixed allele stays fixed", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			traj, _, err := Simulate(Config{P0: tt.p0, W1: 1.4, W2: 0.6, Generations: 30})
			if err != nil {
				t.Fatalf("Simulate() err = %v", err)
			}
			for i, p := range traj.P {
				if p != tt.p0 {
					t.Fatalf("P[%d] = %v, want constant %v", i, p, tt.p0)
				}
			}
		})
	}
}

func TestSimulate_BasicDemo(t *testing.T) {
	// Odds multiply by w1/w2 = 10/9 per generation, so the 0.9999
	// threshold is crossed at generation 133; at 100 generations the
	// frequency tops out just under 0.9971.
	traj, fix, err := Simulate(Config{P0: 0.01, W1: 1, W2: 0.9, Generations: 100})
	if err != nil {
		t.Fatalf("Simulate() err = %v", err)
	}
	for i := 1; i < traj.Generations(); i++ {
		if traj.P[i] <= traj.P[i-1] {
			t.Fatalf("P[%d] = %v not strictly above P[%d] = %v", i, traj.P[i], i-1, traj.P[i-1])
		}
	}
	if fix.Fixed {
		t.Fatalf("fixation = %+v, want no fixation within 100 generations", fix)
	}
	if fix.MaxFrequency < 0.99 || fix.MaxFrequency > FixationThreshold {
		t.Errorf("MaxFrequency = %v, want just below the threshold", fix.MaxFrequency)
	}

	traj, fix, err = Simulate(Config{P0: 0.01, W1: 1, W2: 0.9, Generations: 150})
	if err != nil {
		t.Fatalf("Simulate() err = %v", err)
	}
	if !fix.Fixed {
		t.Fatalf("fixation = %+v, want fixed within 150 generations", fix)
	}
	if fix.Generation < 125 || fix.Generation > 140 {
		t.Errorf("fixation generation = %d, want near 133", fix.Generation)
	}
	if traj.P[fix.Generation-1] <= FixationThreshold {
		t.Errorf("P at fixation generation = %v, want > %v", traj.P[fix.Generation-1], FixationThreshold)
	}
	if traj.P[fix.Generation-2] > FixationThreshold {
		t.Errorf("P before fixation generation = %v, want first crossing reported", traj.P[fix.Generation-2])
	}
}

func TestSimulate_ExtendedDemo(t *testing.T) {
	// With w1/w2 = 1/0.987 the threshold crossing lands near
	// generation 1409, past the 1000-generation demo budget.
	_, fix, err := Simulate(Config{P0: 1e-4, W1: 1, W2: 0.987, Generations: 1000})
	if err != nil {
		t.Fatalf("Simulate() err = %v", err)
	}
	if fix.Fixed {
		t.Fatalf("fixation = %+v, want no fixation within 1000 generations", fix)
	}
	if fix.MaxFrequency < 0.9 || fix.MaxFrequency > FixationThreshold {
		t.Errorf("MaxFrequency = %v, want high but below threshold", fix.MaxFrequency)
	}

	_, fix, err = Simulate(Config{P0: 1e-4, W1: 1, W2: 0.987, Generations: 1500})
	if err != nil {
		t.Fatalf("Simulate() err = %v", err)
	}
	if !fix.Fixed {
		t.Fatalf("fixation = %+v, want fixed within 1500 generations", fix)
	}
	if fix.Generation < 1380 || fix.Generation > 1440 {
		t.Errorf("fixation generation = %d, want near 1409", fix.Generation)
	}
}

func TestSimulate_ZeroMeanFitness(t *testing.T) {
	traj, _, err := Simulate(Config{P0: 0.3, W1: 0, W2: 0, Generations: 10})
	if !errors.Is(err, ErrZeroMeanFitness) {
		t.Fatalf("Simulate() err = %v, want ErrZeroMeanFitness", err)
	}
	if traj != nil {
		t.Errorf("Simulate() trajectory = %v, want no partial trajectory", traj)
	}
	var ge *GenerationError
	if !errors.As(err, &ge) {
		t.Fatalf("Simulate() error type = %T, want *GenerationError", err)
	}
	if ge.Generation != 1 {
		t.Errorf("GenerationError.Generation = %d, want 1", ge.Generation)
	}
	if ge.Config.W1 != 0 || ge.Config.W2 != 0 {
		t.Errorf("GenerationError.Config = %+v, want offending inputs preserved", ge.Config)
	}
}

func TestSimulate_ZeroFinalMeanFitnessIsNotAnError(t *testing.T) {
	// With n == 1 no mean fitness is ever used as a divisor, so a
	// degenerate fitness pair is returned as data.
	traj, _, err := Simulate(Config{P0: 0.3, W1: 0, W2: 0, Generations: 1})
	if err != nil {
		t.Fatalf("Simulate() err = %v, want nil", err)
	}
	if traj.WBar[0] != 0 {
		t.Errorf("WBar[0] = %v, want 0", traj.WBar[0])
	}
}
