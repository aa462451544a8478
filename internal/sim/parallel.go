package sim

import (
	"context"
	"sync"

	"github.com/san-kum/eclipsehunter/internal/config"
)

// Ensemble runs the same configuration under consecutive seeds.
type Ensemble struct {
	base      *config.Config
	numRuns   int
	seedStart int64
	// Metrics builds a fresh metric set for each run.
	Metrics func() []Metric
}

func NewEnsemble(cfg *config.Config, numRuns int, seedStart int64) *Ensemble {
	if seedStart == 0 {
		seedStart = 1
	}
	return &Ensemble{base: cfg, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context, ticks int) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfg := e.base.Clone()
			cfg.Seed = e.seedStart + int64(idx)

			var metrics []Metric
			if e.Metrics != nil {
				metrics = e.Metrics()
			}
			results[idx], errs[idx] = Run(ctx, cfg, ticks, metrics...)
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
