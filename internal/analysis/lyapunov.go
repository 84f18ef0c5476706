package analysis

import (
	"errors"
	"math"

	"github.com/san-kum/orbitsim/internal/dynamo"
)

var ErrInvalidPerturbation = errors.New("analysis: perturbation must be positive")

// LyapunovExponent estimates how fast a displacement of d0 along x in the
// position of body grows, per unit time.
//
// Two copies of sys are stepped together and the perturbed copy is pulled
// back to separation d0 after every step:
//
//	lambda ≈ (1/(steps*dt)) * Σ ln(|δ_k| / d0)
//
// Separation is measured over all positions and velocities.
func LyapunovExponent(
	sys *dynamo.System,
	integ dynamo.Integrator,
	body int,
	d0, dt float64,
	steps int,
) (float64, error) {
	if body < 0 || body >= sys.Len() {
		return 0, &dynamo.BodyError{Index: body, Wrapped: dynamo.ErrUnknownBody}
	}
	if !(d0 > 0) {
		return 0, ErrInvalidPerturbation
	}
	if steps <= 0 {
		return 0, ErrTooFewSamples
	}

	states := sys.States()
	states[body].Pos.X += d0
	perturbed := sys.Advance(states, 0)

	sumLog := 0.0
	for k := 0; k < steps; k++ {
		sys = integ.Step(sys, dt)
		perturbed = integ.Step(perturbed, dt)

		sep := separation(sys, perturbed)
		if sep == 0 || math.IsNaN(sep) || math.IsInf(sep, 0) {
			continue
		}
		sumLog += math.Log(sep / d0)

		// renormalize
		scale := d0 / sep
		base := sys.States()
		next := perturbed.States()
		for i := range next {
			next[i].Pos = base[i].Pos.Add(next[i].Pos.Sub(base[i].Pos).Scale(scale))
			next[i].Vel = base[i].Vel.Add(next[i].Vel.Sub(base[i].Vel).Scale(scale))
		}
		perturbed = perturbed.Advance(next, 0)
	}

	return sumLog / (float64(steps) * dt), nil
}

func separation(a, b *dynamo.System) float64 {
	sum := 0.0
	for i := 0; i < a.Len(); i++ {
		dp := b.Position(i).Sub(a.Position(i))
		dv := b.Velocity(i).Sub(a.Velocity(i))
		sum += dp.Dot(dp) + dv.Dot(dv)
	}
	return math.Sqrt(sum)
}
