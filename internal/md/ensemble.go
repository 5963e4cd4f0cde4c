package md

import (
	"context"
	"sync"

	"github.com/san-kum/reaxsim/internal/atoms"
	"github.com/san-kum/reaxsim/internal/forcefield"
)

// Ensemble runs independent replicas of one snapshot, each started from its
// own Maxwell-Boltzmann velocities.
type Ensemble struct {
	Replicas    int
	SeedStart   int64
	Temperature float64
}

// Run integrates every replica concurrently. Results are indexed by replica;
// the first error wins.
func (e Ensemble) Run(ctx context.Context, sys *atoms.System, ff *forcefield.Repository, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.Replicas)
	errs := make([]error, e.Replicas)

	var wg sync.WaitGroup
	for i := 0; i < e.Replicas; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			replica := sys.Clone()
			if err := MaxwellBoltzmann(replica, ff, e.Temperature, e.SeedStart+int64(idx)); err != nil {
				errs[idx] = err
				return
			}
			results[idx], _, errs[idx] = Run(ctx, replica, ff, cfg)
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
