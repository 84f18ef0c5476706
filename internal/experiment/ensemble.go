package experiment

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/metrics"
)

// Ensemble runs the same start state through several integrators, one
// goroutine per integrator. Each run works on its own copies so the
// integrators never share state.
type Ensemble struct {
	integrators []dynamo.Integrator
	newMetrics  func() []metrics.Metric
}

// NewEnsemble builds an ensemble. newMetrics, if not nil, is called once
// per run to obtain fresh metrics.
func NewEnsemble(integs []dynamo.Integrator, newMetrics func() []metrics.Metric) *Ensemble {
	return &Ensemble{integrators: integs, newMetrics: newMetrics}
}

// Run returns one result per integrator, in order. The first failure
// cancels the remaining runs.
func (e *Ensemble) Run(ctx context.Context, sys *dynamo.System, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(e.integrators))

	g, ctx := errgroup.WithContext(ctx)
	for i, integ := range e.integrators {
		i, integ := i, integ
		start := sys.Clone()
		g.Go(func() error {
			runner := NewRunner(integ)
			if e.newMetrics != nil {
				for _, m := range e.newMetrics() {
					runner.AddMetric(m)
				}
			}

			res, err := runner.Run(ctx, start, cfg)
			results[i] = res
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
