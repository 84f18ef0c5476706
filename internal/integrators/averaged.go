package integrators

import (
	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
)

// RefinePasses is the fixed number of corrector passes of the averaged
// scheme. It is not derived from a convergence tolerance.
const RefinePasses = 3

// refinement carries the samples produced by the predictor-corrector loop.
// All slices belong to a single Step call.
type refinement struct {
	curr []dynamo.Vector    // accelerations at the start of the interval
	mean []dynamo.Vector    // average of curr and next from the last pass
	next []dynamo.Vector    // accelerations at the last candidate end state
	end  []dynamo.BodyState // candidate end state built from mean
}

func refine(bodies []dynamo.Body, states []dynamo.BodyState, dt float64) refinement {
	r := refinement{curr: physics.Accelerations(bodies, states)}
	r.end = AdvanceAll(states, r.curr, dt)

	r.mean = make([]dynamo.Vector, len(states))
	for pass := 0; pass < RefinePasses; pass++ {
		r.next = physics.Accelerations(bodies, r.end)
		for i := range r.mean {
			r.mean[i] = dynamo.Average(r.curr[i], r.next[i])
		}
		// always restart from the original state, never from the candidate
		r.end = AdvanceAll(states, r.mean, dt)
	}

	return r
}

// Averaged is a predictor-corrector scheme: the acceleration over the
// interval is taken as the mean of the start and estimated end
// accelerations, refined RefinePasses times.
type Averaged struct{}

func NewAveraged() *Averaged {
	return &Averaged{}
}

func (a *Averaged) Name() string     { return "averaged" }
func (a *Averaged) Evaluations() int { return 1 + RefinePasses }

func (a *Averaged) Step(s *dynamo.System, dt float64) *dynamo.System {
	r := refine(s.Bodies(), s.States(), dt)
	return s.Advance(r.end, dt)
}
