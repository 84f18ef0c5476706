package integrators

import (
	"testing"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/ephemeris"
)

func benchStep(b *testing.B, integ dynamo.Integrator, sys *dynamo.System, dt float64) {
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sys = integ.Step(sys, dt)
	}
}

func BenchmarkNaive(b *testing.B) {
	benchStep(b, NewNaive(), circularPair(b), 1)
}

func BenchmarkAveraged(b *testing.B) {
	benchStep(b, NewAveraged(), circularPair(b), 1)
}

func BenchmarkParabolic(b *testing.B) {
	benchStep(b, NewParabolic(), circularPair(b), 1)
}

func solar(b *testing.B) *dynamo.System {
	sys, err := ephemeris.SolarSystem()
	if err != nil {
		b.Fatal(err)
	}
	return sys
}

func BenchmarkNaive_Solar(b *testing.B) {
	benchStep(b, NewNaive(), solar(b), 36)
}

func BenchmarkParabolic_Solar(b *testing.B) {
	benchStep(b, NewParabolic(), solar(b), 36)
}
