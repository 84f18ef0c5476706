package analysis

import (
	"errors"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

var (
	ErrTooFewSamples = errors.New("analysis: too few samples")
	ErrNoPeriod      = errors.New("analysis: no periodic component")
)

// MinSamples is the shortest history DominantPeriod accepts.
const MinSamples = 4

// PowerSpectrum returns the magnitude of the real FFT of the mean-removed
// samples, bins 0 through n/2.
func PowerSpectrum(samples []float64) []float64 {
	if len(samples) == 0 {
		return nil
	}

	var mean float64
	for _, v := range samples {
		mean += v
	}
	mean /= float64(len(samples))

	centered := make([]float64, len(samples))
	for i, v := range samples {
		centered[i] = v - mean
	}

	coeff := fourier.NewFFT(len(samples)).Coefficients(nil, centered)
	ps := make([]float64, len(coeff))
	for i, c := range coeff {
		ps[i] = cmplx.Abs(c)
	}
	return ps
}

// DominantPeriod returns the period, in the units of dt, of the strongest
// non-constant frequency in samples. The peak bin is refined by fitting a
// parabola through it and its neighbours.
func DominantPeriod(samples []float64, dt float64) (float64, error) {
	n := len(samples)
	if n < MinSamples {
		return 0, ErrTooFewSamples
	}

	ps := PowerSpectrum(samples)
	peak := 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > ps[peak] || peak == 0 {
			peak = i
		}
	}
	if ps[peak] == 0 || math.IsNaN(ps[peak]) {
		return 0, ErrNoPeriod
	}

	bin := float64(peak)
	if peak > 1 && peak < len(ps)-1 {
		a, b, c := ps[peak-1], ps[peak], ps[peak+1]
		if den := a - 2*b + c; den != 0 {
			bin += 0.5 * (a - c) / den
		}
	}

	return float64(n) * dt / bin, nil
}
