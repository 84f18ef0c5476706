// Package dynamo provides the core value types of the orbit simulator.
//
// The package defines the data shared by every stage of a run:
//
//   - [Vector]: 3-component real vector with value semantics
//   - [Body]: name and gravitational parameter (GM) of one body
//   - [BodyState]: position and velocity of one body at one instant
//   - [System]: ordered (Body, BodyState) pairs plus simulated time
//
// Units follow the ephemeris tables: positions in AU, velocities in AU/day,
// GM in AU^3/day^2 and time in days.
//
// # Example
//
//	sys := dynamo.NewSystem(dynamo.MaxBodies)
//	if err := sys.Add(dynamo.Body{Name: "Sun", GM: 2.959e-4}, dynamo.BodyState{}); err != nil {
//	    return err
//	}
//	next := integrators.NewParabolic().Step(sys, 1.0)
//
// # Ownership
//
// A System is never modified by a stepper. Each step returns a new System
// that shares the immutable body list and owns a fresh state slice, so any
// earlier System stays valid for comparison and replay.
package dynamo
