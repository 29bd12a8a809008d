package automation

import (
	"context"
	"fmt"
	"sync"

	"github.com/san-kum/trails/internal/engine"
	"github.com/san-kum/trails/internal/metrics"
)

// Rig builds a bound manager and its frame queue for one run of an
// ensemble. Every call must return fresh, unshared state.
type Rig func(seed int64) (*engine.Manager, *engine.FrameQueue, error)

// Ensemble plays one scenario over consecutive seeds concurrently.
type Ensemble struct {
	rig       Rig
	numRuns   int
	seedStart int64
	fps       int

	// Metrics builds the metric set for each run; metrics hold state and
	// cannot be shared between goroutines.
	Metrics func() []metrics.Metric
}

func NewEnsemble(rig Rig, numRuns int, seedStart int64, fps int) *Ensemble {
	return &Ensemble{rig: rig, numRuns: numRuns, seedStart: seedStart, fps: fps}
}

func (e *Ensemble) Run(ctx context.Context, sc *Scenario) ([]*Result, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			seed := e.seedStart + int64(idx)
			mgr, queue, err := e.rig(seed)
			if err != nil {
				errs[idx] = fmt.Errorf("seed %d: %w", seed, err)
				return
			}
			var ms []metrics.Metric
			if e.Metrics != nil {
				ms = e.Metrics()
			}
			results[idx], errs[idx] = RunHeadless(ctx, mgr, queue, sc, e.fps, ms)
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

// Mean averages the final value of the named metric across results.
// Results without the metric are skipped.
func Mean(results []*Result, name string) (float64, bool) {
	sum, n := 0.0, 0
	for _, r := range results {
		s := r.Lookup(name)
		if s == nil {
			continue
		}
		sum += s.Metric.Value()
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}
