// Package physics provides the Newtonian force model for the orbit simulator.
//
//   - [Accelerations]: pairwise O(N^2) gravitational accelerations
//   - [Momentum], [AngularMomentum]: conserved vectors for drift checks
//   - [Energy]: conserved scalar for drift checks
//
// All quantities are scaled by G (bodies carry GM rather than mass), so
// conserved totals are only meaningful relative to their initial value:
//
//	e0 := physics.Energy(sys)
//	next := integ.Step(sys, dt)
//	drift := math.Abs(physics.Energy(next)-e0) / math.Abs(e0)
package physics
