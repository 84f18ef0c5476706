// Package analysis extracts orbital properties from simulated trajectories.
//
//   - [DominantPeriod]: strongest period in a sampled coordinate, via FFT
//   - [CrossingPeriod]: mean time between ascending crossings of the x axis
//   - [TraceOrbit]: x-y projection of one body's path, with an ASCII renderer
//   - [LyapunovExponent]: growth rate of a small position perturbation
//
// # Period Estimation
//
// Both estimators work on evenly sampled histories such as the states
// recorded by a run:
//
//	period, err := analysis.DominantPeriod(xs, dt)
//	if errors.Is(err, analysis.ErrTooFewSamples) {
//	    // record more often or run longer
//	}
package analysis
