package integrators

import "github.com/san-kum/orbitsim/internal/dynamo"

// Advance applies a constant-acceleration kinematic update over dt:
//
//	vel' = vel + acc*dt
//	pos' = pos + vel*dt + acc*dt^2/2
//
// The acceleration may be instantaneous, averaged or fitted; the caller
// decides. The input state is not modified.
func Advance(st dynamo.BodyState, acc dynamo.Vector, dt float64) dynamo.BodyState {
	dv := acc.Scale(dt)
	dr := st.Vel.Scale(dt).Add(dv.Scale(dt / 2))
	return dynamo.BodyState{
		Pos: st.Pos.Add(dr),
		Vel: st.Vel.Add(dv),
	}
}

// AdvanceAll applies Advance to every body with its own acceleration.
func AdvanceAll(states []dynamo.BodyState, acc []dynamo.Vector, dt float64) []dynamo.BodyState {
	next := make([]dynamo.BodyState, len(states))
	for i := range states {
		next[i] = Advance(states[i], acc[i], dt)
	}
	return next
}
