package selection

import (
	"context"
	"sync"
)

// SweepResult is the outcome of one config within a sweep. Exactly one
// of Trajectory or Err is set.
type SweepResult struct {
	Index      int
	Config     Config
	Trajectory *Trajectory
	Fixation   FixationReport
	Err        error
}

// Sweep simulates every config on a bounded pool of workers. Runs are
// independent, so no state is shared between them; results are returned
// in input order. A failing config records its error in the
// corresponding result without aborting the sweep.
//
// Sweep stops handing out work when ctx is cancelled and returns
// ctx.Err(); results for configs that never ran have Err set to the
// context error.
func Sweep(ctx context.Context, configs []Config, workers int) ([]SweepResult, error) {
	if workers < 1 {
		workers = 1
	}
	if workers > len(configs) {
		workers = len(configs)
	}

	results := make([]SweepResult, len(configs))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				traj, fix, err := Simulate(configs[i])
				results[i] = SweepResult{
					Index:      i,
					Config:     configs[i],
					Trajectory: traj,
					Fixation:   fix,
					Err:        err,
				}
			}
		}()
	}

	var ctxErr error
dispatch:
	for i := range configs {
		if err := ctx.Err(); err != nil {
			ctxErr = err
			for j := i; j < len(configs); j++ {
				results[j] = SweepResult{Index: j, Config: configs[j], Err: ctxErr}
			}
			break
		}
		select {
		case <-ctx.Done():
			ctxErr = ctx.Err()
			for j := i; j < len(configs); j++ {
				results[j] = SweepResult{Index: j, Config: configs[j], Err: ctxErr}
			}
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	return results, ctxErr
}
