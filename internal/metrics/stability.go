package metrics

import "github.com/san-kum/orbitsim/internal/dynamo"

// Stability is the fraction of observed states in which every body is
// finite and within radius of the origin.
type Stability struct {
	name       string
	radius     float64
	violations int
	samples    int
}

func NewStability(radius float64) *Stability {
	return &Stability{
		name:   "stability",
		radius: radius,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(sys *dynamo.System) {
	s.samples++
	for i := 0; i < sys.Len(); i++ {
		st := sys.State(i)
		if !st.IsFinite() || st.Pos.Norm() > s.radius {
			s.violations++
			break
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
