package optim

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/experiment"
)

// StepResult describes one tried step count.
type StepResult struct {
	Steps       int
	Dt          float64
	Worst       float64
	Evaluations int
}

// CheapestStep finds the fewest steps covering duration after which body
// sits within tol of its position in target. An empty body scores every
// body target shares with sys. All tried counts are returned in ascending
// order alongside the choice.
func CheapestStep(
	ctx context.Context,
	sys, target *dynamo.System,
	integ dynamo.Integrator,
	body string,
	duration float64,
	counts []int,
	tol float64,
) (*StepResult, []StepResult, error) {
	if body != "" {
		if _, err := target.Find(body); err != nil {
			return nil, nil, err
		}
	}

	values := make([]float64, len(counts))
	for i, n := range counts {
		values[i] = float64(n)
	}

	tried := make(map[int]StepResult)
	score := func(ctx context.Context, params map[string]float64) (float64, error) {
		n := int(params["steps"])
		cfg := experiment.Config{Dt: duration / float64(n), Steps: n}
		res, err := experiment.Run(ctx, sys, integ, cfg)
		if err != nil {
			return 0, err
		}

		cmp := experiment.Compare(res.Final, target)
		if body != "" {
			for _, c := range cmp {
				if c.Name == body {
					cmp = []experiment.BodyComparison{c}
					break
				}
			}
		}
		worst := experiment.WorstDiscrepancy(cmp)
		tried[n] = StepResult{Steps: n, Dt: cfg.Dt, Worst: worst, Evaluations: res.Evaluations}

		if !(worst <= tol) {
			return math.Inf(1), nil
		}
		return float64(n), nil
	}

	best, _, err := NewGridSearch([]string{"steps"}, [][]float64{values}).Search(ctx, score)

	all := make([]StepResult, 0, len(tried))
	for _, r := range tried {
		all = append(all, r)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Steps < all[j].Steps })

	if err != nil {
		return nil, all, fmt.Errorf("%s within %g: %w", integ.Name(), tol, err)
	}
	choice := tried[int(best["steps"])]
	return &choice, all, nil
}
