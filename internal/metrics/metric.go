package metrics

import "github.com/san-kum/orbitsim/internal/dynamo"

// Metric accumulates a scalar over the states of a run.
type Metric interface {
	Name() string
	Observe(s *dynamo.System)
	Value() float64
	Reset()
}
