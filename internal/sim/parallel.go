package sim

import (
	"context"
	"sync"
	"time"

	"github.com/san-kum/bounce/internal/physics"
)

// Setup prepares a fresh simulator before an ensemble run, typically by
// queueing the initial spawns.
type Setup func(s *Simulator) error

// EnsembleResult summarises one member of an ensemble.
type EnsembleResult struct {
	Seed     int64
	Frames   int
	Running  int
	Counters Counters
	Elapsed  time.Duration
}

// Ensemble runs independent sessions in parallel, one goroutine per session.
// Each simulator is still owned by exactly one goroutine.
type Ensemble struct {
	setup     Setup
	opts      []Option
	numRuns   int
	seedStart int64
}

func NewEnsemble(setup Setup, numRuns int, seedStart int64, opts ...Option) *Ensemble {
	return &Ensemble{setup: setup, opts: opts, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context, bounds physics.Bounds, frames int) ([]EnsembleResult, error) {
	results := make([]EnsembleResult, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			seed := e.seedStart + int64(idx)
			opts := append([]Option{WithBounds(bounds)}, e.opts...)
			s := New(append(opts, WithSeed(seed))...)
			if e.setup != nil {
				if err := e.setup(s); err != nil {
					errs[idx] = err
					return
				}
			}

			start := time.Now()
			errs[idx] = s.Run(ctx, bounds, frames, nil)
			snap := s.Snapshot()
			results[idx] = EnsembleResult{
				Seed:     seed,
				Frames:   int(snap.Frame),
				Running:  snap.Running(),
				Counters: snap.Counters,
				Elapsed:  time.Since(start),
			}
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
