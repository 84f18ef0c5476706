package integrators_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/ephemeris"
	"github.com/san-kum/orbitsim/internal/integrators"
	"github.com/san-kum/orbitsim/internal/metrics"
)

func run(integ dynamo.Integrator, sys *dynamo.System, dt float64, steps int) *dynamo.System {
	for i := 0; i < steps; i++ {
		sys = integ.Step(sys, dt)
	}
	return sys
}

func heliocentric(sys *dynamo.System, body int) dynamo.Vector {
	return sys.Position(body).Sub(sys.Position(0))
}

var _ = Describe("Sun-Earth over one year", func() {
	var (
		start     *dynamo.System
		reference *dynamo.System
	)

	BeforeEach(func() {
		var err error
		start, err = ephemeris.SunEarth()
		Expect(err).NotTo(HaveOccurred())
		Expect(start.Len()).To(Equal(2))

		// 20 sub-steps per day with the most accurate scheme
		reference = run(integrators.NewParabolic(), start, 0.05, 365*20)
	})

	It("accumulates exactly one year of simulated time", func() {
		for _, integ := range []dynamo.Integrator{integrators.NewNaive(), integrators.NewAveraged(), integrators.NewParabolic()} {
			Expect(run(integ, start, 1, 365).Time()).To(Equal(365.0), integ.Name())
		}
		Expect(reference.Time()).To(BeNumerically("~", 365.0, 1e-9))
	})

	It("returns the Earth near its starting point with the averaged schemes", func() {
		origin := heliocentric(start, 1)
		for _, integ := range []dynamo.Integrator{integrators.NewAveraged(), integrators.NewParabolic()} {
			end := run(integ, start, 1, 365)
			Expect(metrics.RelativeDiscrepancy(origin, heliocentric(end, 1))).To(BeNumerically("<", 0.01), integ.Name())
		}
	})

	It("lets the naive scheme drift far more than the parabolic one", func() {
		naive := run(integrators.NewNaive(), start, 1, 365)
		parabolic := run(integrators.NewParabolic(), start, 1, 365)

		want := reference.Position(1)
		dNaive := metrics.RelativeDiscrepancy(want, naive.Position(1))
		dParabolic := metrics.RelativeDiscrepancy(want, parabolic.Position(1))

		Expect(dNaive).To(BeNumerically(">", 100*dParabolic))
		Expect(dParabolic).To(BeNumerically("<", 1e-3))
	})

	It("orders the schemes by accuracy", func() {
		want := reference.Position(1)
		var last float64 = 2
		for _, integ := range []dynamo.Integrator{integrators.NewNaive(), integrators.NewAveraged(), integrators.NewParabolic()} {
			d := metrics.RelativeDiscrepancy(want, run(integ, start, 1, 365).Position(1))
			Expect(d).To(BeNumerically("<", last), integ.Name())
			last = d
		}
	})
})

var _ = Describe("single-step convergence", func() {
	It("shrinks the naive position error at least quadratically with dt", func() {
		start, err := ephemeris.SunEarth()
		Expect(err).NotTo(HaveOccurred())

		stepError := func(dt float64) float64 {
			ref := run(integrators.NewParabolic(), start, dt/1000, 1000)
			got := integrators.NewNaive().Step(start, dt)
			return got.Position(1).Sub(ref.Position(1)).Norm()
		}

		e4, e2, e1 := stepError(4), stepError(2), stepError(1)
		Expect(e4 / e2).To(BeNumerically(">", 3.5))
		Expect(e2 / e1).To(BeNumerically(">", 3.5))
	})
})
