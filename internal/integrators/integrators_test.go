package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func circularPair(t testing.TB) *dynamo.System {
	t.Helper()
	gm := 2.959122082855911e-4
	sys := dynamo.NewSystem(dynamo.MaxBodies)
	require.NoError(t, sys.Add(dynamo.Body{Name: "Sun", GM: gm}, dynamo.BodyState{}))
	require.NoError(t, sys.Add(dynamo.Body{Name: "Earth", GM: 0},
		dynamo.BodyState{Pos: dynamo.Vec(1, 0, 0), Vel: dynamo.Vec(0, math.Sqrt(gm), 0)}))
	return sys
}

func all() []dynamo.Integrator {
	return []dynamo.Integrator{NewNaive(), NewAveraged(), NewParabolic()}
}

func TestAdvance(t *testing.T) {
	st := dynamo.BodyState{Pos: dynamo.Vec(1, 2, 3), Vel: dynamo.Vec(0.5, 0, -1)}
	acc := dynamo.Vec(2, -4, 0)

	next := Advance(st, acc, 0.5)

	// vel + a*dt
	assert.Equal(t, dynamo.Vec(1.5, -2, -1), next.Vel)
	// pos + v*dt + a*dt^2/2
	assert.Equal(t, dynamo.Vec(1.5, 1.5, 2.5), next.Pos)
	assert.Equal(t, dynamo.Vec(1, 2, 3), st.Pos, "input must not change")
}

func TestAdvance_ZeroInterval(t *testing.T) {
	st := dynamo.BodyState{Pos: dynamo.Vec(1, 2, 3), Vel: dynamo.Vec(4, 5, 6)}
	assert.Equal(t, st, Advance(st, dynamo.Vec(7, 8, 9), 0))
}

func TestAdvanceAll(t *testing.T) {
	states := []dynamo.BodyState{{}, {Vel: dynamo.Vec(1, 0, 0)}}
	acc := []dynamo.Vector{dynamo.Vec(0, 2, 0), dynamo.Zero}

	next := AdvanceAll(states, acc, 1)
	require.Len(t, next, 2)
	assert.Equal(t, dynamo.Vec(0, 1, 0), next[0].Pos)
	assert.Equal(t, dynamo.Vec(1, 0, 0), next[1].Pos)
	assert.Equal(t, dynamo.BodyState{}, states[0])
}

func TestFitParabola_Exact(t *testing.T) {
	e0 := dynamo.Vec(1, 2, 3)
	f0 := dynamo.Vec(-1, 0.5, 4)
	g0 := dynamo.Vec(2, -3, 0.25)

	at := func(t float64) dynamo.Vector {
		return e0.Scale(t * t).Add(f0.Scale(t)).Add(g0)
	}

	tests := []struct {
		name string
		dt   float64
		tol  float64
	}{
		{"unit scale", 2, 0},
		{"sub-day", 0.5, 1e-12},
		{"long step", 36, 1e-12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, f, g := FitParabola(at(0), at(tt.dt/2), at(tt.dt), tt.dt)
			for _, pair := range [][2]dynamo.Vector{{e0, e}, {f0, f}, {g0, g}} {
				assert.InDelta(t, 0, pair[0].Sub(pair[1]).Norm(), tt.tol+1e-14*pair[0].Norm())
			}
		})
	}
}

func TestIntegrateParabola_ConstantAcceleration(t *testing.T) {
	st := dynamo.BodyState{Pos: dynamo.Vec(1, 0, 0), Vel: dynamo.Vec(0, 1, 0)}
	g := dynamo.Vec(0.25, -0.5, 1)

	got := IntegrateParabola(st, dynamo.Zero, dynamo.Zero, g, 2)
	want := Advance(st, g, 2)

	assert.InDelta(t, 0, got.Pos.Sub(want.Pos).Norm(), 1e-15)
	assert.InDelta(t, 0, got.Vel.Sub(want.Vel).Norm(), 1e-15)
}

func TestIntegrateParabola_Polynomial(t *testing.T) {
	// a(t) = 6t^2 -> v = 2t^3, r = t^4/2 from rest at the origin
	e := dynamo.Vec(6, 0, 0)
	got := IntegrateParabola(dynamo.BodyState{}, e, dynamo.Zero, dynamo.Zero, 2)

	assert.InDelta(t, 16.0, got.Vel.X, 1e-12)
	assert.InDelta(t, 8.0, got.Pos.X, 1e-12)
}

func TestStep_TimeAccumulation(t *testing.T) {
	for _, integ := range all() {
		t.Run(integ.Name(), func(t *testing.T) {
			sys := circularPair(t)
			dt := 0.25
			k := 40
			for i := 0; i < k; i++ {
				sys = integ.Step(sys, dt)
			}
			assert.Equal(t, float64(k)*dt, sys.Time())
			assert.Equal(t, 2, sys.Len())
		})
	}
}

func TestStep_DoesNotMutateInput(t *testing.T) {
	for _, integ := range all() {
		t.Run(integ.Name(), func(t *testing.T) {
			sys := circularPair(t)
			before := sys.States()

			next := integ.Step(sys, 1)

			assert.Equal(t, before, sys.States())
			assert.Equal(t, 0.0, sys.Time())
			assert.NotEqual(t, before[1].Pos, next.Position(1))
		})
	}
}

func TestStep_Deterministic(t *testing.T) {
	for _, integ := range all() {
		a := integ.Step(circularPair(t), 3)
		b := integ.Step(circularPair(t), 3)
		assert.Equal(t, a.States(), b.States(), integ.Name())
	}
}

func TestStep_PreservesPairing(t *testing.T) {
	for _, integ := range all() {
		next := integ.Step(circularPair(t), 1)
		assert.Equal(t, "Sun", next.Body(0).Name)
		assert.Equal(t, "Earth", next.Body(1).Name)
	}
}

func TestNaive_MatchesSingleAdvance(t *testing.T) {
	sys := circularPair(t)
	gm := sys.Body(0).GM

	next := NewNaive().Step(sys, 1)

	// Earth feels GM/r^2 toward the Sun at the start of the step
	want := Advance(sys.State(1), dynamo.Vec(-gm, 0, 0), 1)
	assert.InDelta(t, 0, next.Position(1).Sub(want.Pos).Norm(), 1e-18)
	assert.InDelta(t, 0, next.Velocity(1).Sub(want.Vel).Norm(), 1e-18)
}

func TestStep_CoincidentBodiesPropagate(t *testing.T) {
	sys := dynamo.NewSystem(2)
	require.NoError(t, sys.Add(dynamo.Body{Name: "A", GM: 1}, dynamo.BodyState{}))
	require.NoError(t, sys.Add(dynamo.Body{Name: "B", GM: 1}, dynamo.BodyState{}))

	for _, integ := range all() {
		next := integ.Step(sys, 1)
		assert.Error(t, next.Validate(), integ.Name())
	}
}

func TestEvaluations(t *testing.T) {
	assert.Equal(t, 1, NewNaive().Evaluations())
	assert.Equal(t, 4, NewAveraged().Evaluations())
	assert.Equal(t, 5, NewParabolic().Evaluations())
}

func TestSchemes_EnergyDrift(t *testing.T) {
	energy := func(s *dynamo.System) float64 {
		v := s.Velocity(1)
		return 0.5*v.Dot(v) - s.Body(0).GM/s.Position(1).Sub(s.Position(0)).Norm()
	}

	drift := map[string]float64{}
	for _, integ := range all() {
		sys := circularPair(t)
		e0 := energy(sys)
		for i := 0; i < 365; i++ {
			sys = integ.Step(sys, 1)
		}
		drift[integ.Name()] = math.Abs(energy(sys)-e0) / math.Abs(e0)
		t.Logf("%-10s energy drift %.3e", integ.Name(), drift[integ.Name()])
	}

	assert.Less(t, drift["averaged"], drift["naive"])
	assert.Less(t, drift["parabolic"], drift["naive"])
}
