package experiment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/integrators"
)

func TestEnsembleMatchesSequentialRuns(t *testing.T) {
	sys := sunEarth(t)
	integs := []dynamo.Integrator{integrators.NewNaive(), integrators.NewAveraged(), integrators.NewParabolic()}
	cfg := Config{Dt: 1, Steps: 50, Record: 25}

	results, err := NewEnsemble(integs, NewRegistry().DefaultMetrics).Run(context.Background(), sys, cfg)
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, integ := range integs {
		assert.Equal(t, integ.Name(), results[i].Integrator)
		assert.Len(t, results[i].Metrics, 3)

		want, err := quiet(NewRunner(integ)).Run(context.Background(), sys, cfg)
		require.NoError(t, err)
		assert.Equal(t, want.Final.States(), results[i].Final.States(), integ.Name())
	}

	assert.Equal(t, 0.0, sys.Time())
}

func TestEnsembleFailure(t *testing.T) {
	integs := []dynamo.Integrator{integrators.NewNaive(), integrators.NewParabolic()}
	_, err := NewEnsemble(integs, nil).Run(context.Background(), coincident(t), Config{Dt: 1, Steps: 10, ValidateState: true})
	assert.ErrorIs(t, err, dynamo.ErrNonFinite)
}
