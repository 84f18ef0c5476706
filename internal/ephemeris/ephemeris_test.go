package ephemeris

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
)

func TestSolarSystem(t *testing.T) {
	sys, err := SolarSystem()
	require.NoError(t, err)

	assert.Equal(t, 10, sys.Len())
	assert.Equal(t, 0.0, sys.Time())
	assert.NoError(t, sys.Validate())

	want := []string{"Sun", "Mercury", "Venus", "Earth", "Mars", "Jupiter", "Saturn", "Uranus", "Neptune", "Pluto"}
	assert.Equal(t, want, Names())
	for i, name := range want {
		assert.Equal(t, name, sys.Body(i).Name)
	}
}

func TestSolarSystemReference(t *testing.T) {
	ref, err := SolarSystemReference()
	require.NoError(t, err)

	start, err := SolarSystem()
	require.NoError(t, err)

	assert.Equal(t, ReferenceEpoch, ref.Time())
	require.Equal(t, start.Len(), ref.Len())
	for i := 0; i < ref.Len(); i++ {
		assert.Equal(t, start.Body(i), ref.Body(i))
		assert.NotEqual(t, start.Position(i), ref.Position(i), start.Body(i).Name)
	}
}

func TestBarycentricTables(t *testing.T) {
	for name, load := range map[string]func() (*dynamo.System, error){
		"initial":   SolarSystem,
		"reference": SolarSystemReference,
	} {
		t.Run(name, func(t *testing.T) {
			sys, err := load()
			require.NoError(t, err)

			var scale float64
			for i := 0; i < sys.Len(); i++ {
				scale += sys.Body(i).GM * sys.Velocity(i).Norm()
			}
			p := physics.Momentum(sys).Norm()
			assert.Less(t, p/scale, 1e-6)
		})
	}
}

func TestSunEarth(t *testing.T) {
	sys, err := SunEarth()
	require.NoError(t, err)
	require.Equal(t, 2, sys.Len())

	sun, earth := sys.Body(0), sys.Body(1)
	assert.Equal(t, "Sun", sun.Name)
	assert.Equal(t, "Earth", earth.Name)

	assert.Equal(t, dynamo.Zero, sys.Position(0))
	assert.Equal(t, dynamo.Zero, sys.Velocity(0))
	assert.Equal(t, 1.0, sys.Position(1).Norm())

	v := sys.Velocity(1)
	assert.InDelta(t, math.Sqrt(sun.GM+earth.GM), v.Norm(), 1e-15)
	assert.Equal(t, 0.0, v.Dot(sys.Position(1)))
}

func TestCircularPairUnknownBody(t *testing.T) {
	_, err := circularPair("Sun", "Vulcan")
	assert.ErrorIs(t, err, dynamo.ErrUnknownBody)

	_, err = circularPair("Vulcan", "Earth")
	assert.ErrorIs(t, err, dynamo.ErrUnknownBody)

	sys, err := circularPair("Sun", "Mars")
	require.NoError(t, err)
	assert.Greater(t, sys.Body(0).GM, 0.0)
	assert.Equal(t, "Mars", sys.Body(1).Name)
}

func TestLookup(t *testing.T) {
	r, err := Lookup("Jupiter")
	require.NoError(t, err)
	assert.Equal(t, "Jupiter", r.Name)
	assert.Greater(t, r.GM, 1e-7)

	_, err = Lookup("Vulcan")
	assert.ErrorIs(t, err, dynamo.ErrUnknownBody)
	assert.Contains(t, err.Error(), "Vulcan")
}
