package physics

import (
	"math"

	"github.com/san-kum/orbitsim/internal/dynamo"
)

// Accelerations returns the net gravitational acceleration of every body.
// Each unordered pair is visited once and contributes equal and opposite
// terms scaled by the other body's GM. Coincident bodies yield non-finite
// results; callers must supply a physically valid configuration.
func Accelerations(bodies []dynamo.Body, states []dynamo.BodyState) []dynamo.Vector {
	n := len(bodies)
	acc := make([]dynamo.Vector, n)

	for i := 0; i+1 < n; i++ {
		igm := bodies[i].GM
		for j := i + 1; j < n; j++ {
			jgm := bodies[j].GM

			rv := states[i].Pos.Sub(states[j].Pos)
			r2 := rv.Dot(rv)
			r3 := r2 * math.Sqrt(r2)

			acc[i] = acc[i].Sub(rv.Scale(jgm / r3))
			acc[j] = acc[j].Add(rv.Scale(igm / r3))
		}
	}

	return acc
}

// SystemAccelerations evaluates Accelerations at the system's current states.
func SystemAccelerations(s *dynamo.System) []dynamo.Vector {
	return Accelerations(s.Bodies(), s.States())
}

// Momentum returns the GM-weighted linear momentum sum(gm_i * v_i). It is
// proportional to the true momentum and stays constant under pairwise forces.
func Momentum(s *dynamo.System) dynamo.Vector {
	p := dynamo.Zero
	for i := 0; i < s.Len(); i++ {
		p = p.Add(s.Velocity(i).Scale(s.Body(i).GM))
	}
	return p
}

// Energy returns the GM-weighted total energy
// sum(gm_i*|v_i|^2/2) - sum_{i<j}(gm_i*gm_j/r_ij), i.e. G times the
// mechanical energy.
func Energy(s *dynamo.System) float64 {
	n := s.Len()
	ke, pe := 0.0, 0.0

	for i := 0; i < n; i++ {
		gi := s.Body(i).GM
		v := s.Velocity(i)
		ke += 0.5 * gi * v.Dot(v)

		for j := i + 1; j < n; j++ {
			r := s.Position(i).Sub(s.Position(j)).Norm()
			pe -= gi * s.Body(j).GM / r
		}
	}

	return ke + pe
}

// AngularMomentum returns the GM-weighted angular momentum about the origin.
func AngularMomentum(s *dynamo.System) dynamo.Vector {
	l := dynamo.Zero
	for i := 0; i < s.Len(); i++ {
		l = l.Add(s.Position(i).Cross(s.Velocity(i)).Scale(s.Body(i).GM))
	}
	return l
}
