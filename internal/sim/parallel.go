package sim

import (
	"context"
	"sync"

	"github.com/kmuro/fieldsim/internal/world"
)

// WorldFactory builds a fresh world for a given seed. Ensemble runs call
// it once per run so no two goroutines ever share mutable bodies.
type WorldFactory func(seed int64) *world.World

// Ensemble runs the same scene under a range of seeds in parallel.
type Ensemble struct {
	factory   WorldFactory
	metrics   func() []Metric
	numRuns   int
	seedStart int64
}

func NewEnsemble(factory WorldFactory, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{factory: factory, numRuns: numRuns, seedStart: seedStart}
}

// WithMetrics installs a metrics factory. Each run gets its own instances;
// metric implementations are not safe for concurrent observation.
func (e *Ensemble) WithMetrics(build func() []Metric) *Ensemble {
	e.metrics = build
	return e
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := cfg
			cfgCopy.Seed = e.seedStart + int64(idx)

			s := New(e.factory(cfgCopy.Seed))
			if e.metrics != nil {
				for _, m := range e.metrics() {
					s.AddMetric(m)
				}
			}

			results[idx], errs[idx] = s.RunConfig(ctx, cfgCopy)
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
