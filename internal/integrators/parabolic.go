package integrators

import (
	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
)

// Parabolic fits a quadratic a(t) = E*t^2 + F*t + G through acceleration
// samples at t=0, dt/2 and dt, then integrates it exactly.
//
// The start and end samples come from the averaged refinement. The middle
// sample is evaluated at the start state advanced over dt/2 with the
// converged mean acceleration.
type Parabolic struct{}

func NewParabolic() *Parabolic {
	return &Parabolic{}
}

func (p *Parabolic) Name() string     { return "parabolic" }
func (p *Parabolic) Evaluations() int { return 2 + RefinePasses }

func (p *Parabolic) Step(s *dynamo.System, dt float64) *dynamo.System {
	bodies := s.Bodies()
	states := s.States()

	r := refine(bodies, states, dt)
	mid := AdvanceAll(states, r.mean, dt/2)
	half := physics.Accelerations(bodies, mid)

	next := make([]dynamo.BodyState, len(states))
	for i, st := range states {
		e, f, g := FitParabola(r.curr[i], half[i], r.next[i], dt)
		next[i] = IntegrateParabola(st, e, f, g, dt)
	}

	return s.Advance(next, dt)
}

// FitParabola returns the coefficients of the unique a(t) = E*t^2 + F*t + G
// with a(0)=j, a(dt/2)=k and a(dt)=l, component by component.
func FitParabola(j, k, l dynamo.Vector, dt float64) (e, f, g dynamo.Vector) {
	a := l.Add(j).Scale(0.5).Sub(k)
	b := l.Sub(j).Scale(0.5)
	p := 2 / dt

	e = a.Scale(p * p)
	f = b.Sub(a.Scale(2)).Scale(p)
	g = j
	return e, f, g
}

// IntegrateParabola integrates a(t) = E*t^2 + F*t + G twice over [0, dt]:
//
//	v(dt) = v0 + E*dt^3/3 + F*dt^2/2 + G*dt
//	r(dt) = r0 + v0*dt + E*dt^4/12 + F*dt^3/6 + G*dt^2/2
func IntegrateParabola(st dynamo.BodyState, e, f, g dynamo.Vector, dt float64) dynamo.BodyState {
	dt2 := dt * dt
	dt3 := dt2 * dt
	dt4 := dt3 * dt

	vel := st.Vel.
		Add(e.Scale(dt3 / 3)).
		Add(f.Scale(dt2 / 2)).
		Add(g.Scale(dt))

	pos := st.Pos.
		Add(st.Vel.Scale(dt)).
		Add(e.Scale(dt4 / 12)).
		Add(f.Scale(dt3 / 6)).
		Add(g.Scale(dt2 / 2))

	return dynamo.BodyState{Pos: pos, Vel: vel}
}
