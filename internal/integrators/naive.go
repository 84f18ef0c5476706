package integrators

import (
	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
)

// Naive treats the accelerations at the start of the interval as constant
// over the whole interval. One force evaluation per step.
type Naive struct{}

func NewNaive() *Naive {
	return &Naive{}
}

func (n *Naive) Name() string     { return "naive" }
func (n *Naive) Evaluations() int { return 1 }

func (n *Naive) Step(s *dynamo.System, dt float64) *dynamo.System {
	states := s.States()
	acc := physics.Accelerations(s.Bodies(), states)
	return s.Advance(AdvanceAll(states, acc, dt), dt)
}
