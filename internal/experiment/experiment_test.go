package experiment

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/ephemeris"
	"github.com/san-kum/orbitsim/internal/integrators"
)

func quiet(r *Runner) *Runner {
	r.SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return r
}

func sunEarth(t *testing.T) *dynamo.System {
	t.Helper()
	sys, err := ephemeris.SunEarth()
	require.NoError(t, err)
	return sys
}

func TestRegistryIntegrators(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name string
		want string
	}{
		{"naive", "naive"},
		{"averaged", "averaged"},
		{"parabolic", "parabolic"},
		{"1", "naive"},
		{"2", "averaged"},
		{"3", "parabolic"},
	}
	for _, tt := range tests {
		integ, err := r.GetIntegrator(tt.name)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, integ.Name())
	}

	_, err := r.GetIntegrator("rk4")
	assert.ErrorIs(t, err, ErrUnknownIntegrator)
	_, err = r.GetIntegrator("4")
	assert.ErrorIs(t, err, ErrUnknownIntegrator)

	assert.Equal(t, []string{"averaged", "naive", "parabolic"}, r.ListIntegrators())
}

func TestRegistrySystems(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, []string{"solar", "sunearth"}, r.ListSystems())

	solar, err := r.GetSystem("solar")
	require.NoError(t, err)
	assert.Equal(t, 10, solar.Len())

	pair, err := r.GetSystem("sunearth")
	require.NoError(t, err)
	assert.Equal(t, 2, pair.Len())

	_, err = r.GetSystem("alpha-centauri")
	assert.ErrorIs(t, err, ErrUnknownSystem)

	assert.True(t, r.HasReference("solar"))
	assert.False(t, r.HasReference("sunearth"))

	ref, err := r.GetReference("solar")
	require.NoError(t, err)
	assert.Equal(t, ephemeris.ReferenceEpoch, ref.Time())

	_, err = r.GetReference("sunearth")
	assert.ErrorIs(t, err, ErrUnknownSystem)
}

func TestRunSnapshots(t *testing.T) {
	sys := sunEarth(t)

	tests := []struct {
		record int
		times  []float64
	}{
		{0, []float64{0, 10}},
		{1, []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}},
		{3, []float64{0, 3, 6, 9, 10}},
		{5, []float64{0, 5, 10}},
		{20, []float64{0, 10}},
	}

	for _, tt := range tests {
		runner := quiet(NewRunner(integrators.NewAveraged()))
		res, err := runner.Run(context.Background(), sys, Config{Dt: 1, Steps: 10, Record: tt.record})
		require.NoError(t, err)

		var times []float64
		for _, s := range res.Snapshots {
			times = append(times, s.Time)
			assert.Len(t, s.States, 2)
		}
		assert.Equal(t, tt.times, times, "record %d", tt.record)
	}
}

func TestRunResult(t *testing.T) {
	sys := sunEarth(t)
	r := NewRegistry()

	runner := quiet(NewRunner(integrators.NewParabolic()))
	for _, m := range r.DefaultMetrics() {
		runner.AddMetric(m)
	}

	res, err := runner.Run(context.Background(), sys, Config{Dt: 1, Steps: 30, Record: 10})
	require.NoError(t, err)

	assert.Equal(t, "parabolic", res.Integrator)
	assert.Equal(t, 30, res.StepsTaken)
	assert.Equal(t, 150, res.Evaluations)
	assert.Equal(t, 30.0, res.Final.Time())
	assert.Equal(t, 0.0, sys.Time(), "input system must not move")

	assert.Contains(t, res.Metrics, "energy_drift")
	assert.Contains(t, res.Metrics, "momentum_drift")
	assert.Equal(t, 1.0, res.Metrics["stability"])
	assert.Less(t, res.Metrics["energy_drift"], 1e-5)

	// the last snapshot is the final state
	last := res.Snapshots[len(res.Snapshots)-1]
	assert.Equal(t, res.Final.States(), last.States)
}

func TestRunMatchesManualStepping(t *testing.T) {
	sys := sunEarth(t)
	integ := integrators.NewNaive()

	want := sys
	for i := 0; i < 25; i++ {
		want = integ.Step(want, 2)
	}

	res, err := quiet(NewRunner(integ)).Run(context.Background(), sys, Config{Dt: 2, Steps: 25})
	require.NoError(t, err)
	assert.Equal(t, want.States(), res.Final.States())
	assert.Equal(t, want.Time(), res.Final.Time())
}

func TestRunInvalidConfig(t *testing.T) {
	sys := sunEarth(t)
	runner := quiet(NewRunner(integrators.NewNaive()))

	for _, cfg := range []Config{
		{Dt: 0, Steps: 1},
		{Dt: -1, Steps: 1},
		{Dt: 1, Steps: 0},
		{Dt: 1, Steps: 1, Record: -1},
	} {
		_, err := runner.Run(context.Background(), sys, cfg)
		assert.Error(t, err, "%+v", cfg)
	}

	_, err := runner.Run(context.Background(), dynamo.NewSystem(0), Config{Dt: 1, Steps: 1})
	assert.ErrorIs(t, err, dynamo.ErrEmptySystem)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := quiet(NewRunner(integrators.NewNaive())).Run(ctx, sunEarth(t), Config{Dt: 1, Steps: 100, Record: 1})
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, res)
	assert.Equal(t, 0, res.StepsTaken)
	assert.Len(t, res.Snapshots, 1)
	assert.Equal(t, 0.0, res.Final.Time())
}

type stopAfter struct {
	n      int
	cancel context.CancelFunc
	seen   []int
}

func (s *stopAfter) OnStep(_ *dynamo.System, step int) {
	s.seen = append(s.seen, step)
	if step == s.n {
		s.cancel()
	}
}

func TestRunObserverCancels(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	obs := &stopAfter{n: 4, cancel: cancel}
	runner := quiet(NewRunner(integrators.NewNaive()))
	runner.AddObserver(obs)

	res, err := runner.Run(ctx, sunEarth(t), Config{Dt: 1, Steps: 100})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []int{1, 2, 3, 4}, obs.seen)
	assert.Equal(t, 4, res.StepsTaken)
	assert.Equal(t, 4.0, res.Final.Time())
}

func coincident(t *testing.T) *dynamo.System {
	t.Helper()
	sys := dynamo.NewSystem(2)
	require.NoError(t, sys.Add(dynamo.Body{Name: "A", GM: 1}, dynamo.BodyState{}))
	require.NoError(t, sys.Add(dynamo.Body{Name: "B", GM: 1}, dynamo.BodyState{}))
	return sys
}

func TestRunValidateState(t *testing.T) {
	runner := quiet(NewRunner(integrators.NewNaive()))

	res, err := runner.Run(context.Background(), coincident(t), Config{Dt: 1, Steps: 5, ValidateState: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, dynamo.ErrNonFinite)

	var stepErr *StepError
	require.True(t, errors.As(err, &stepErr))
	assert.Equal(t, 1, stepErr.Step)
	assert.Equal(t, 1.0, stepErr.Time)
	assert.Equal(t, 0, res.StepsTaken)

	// without validation the non-finite values simply propagate
	res, err = runner.Run(context.Background(), coincident(t), Config{Dt: 1, Steps: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, res.StepsTaken)
	assert.Error(t, res.Final.Validate())
}

func TestRunWithCallback(t *testing.T) {
	runner := NewRunner(integrators.NewNaive())

	var times []float64
	err := runner.RunWithCallback(context.Background(), sunEarth(t), Config{Dt: 1, Steps: 3}, func(s *dynamo.System) bool {
		times = append(times, s.Time())
		return true
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2, 3}, times)

	calls := 0
	err = runner.RunWithCallback(context.Background(), sunEarth(t), Config{Dt: 1, Steps: 100}, func(*dynamo.System) bool {
		calls++
		return calls < 3
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)

	err = runner.RunWithCallback(context.Background(), coincident(t), Config{Dt: 1, Steps: 3, ValidateState: true}, func(*dynamo.System) bool {
		return true
	})
	assert.ErrorIs(t, err, dynamo.ErrNonFinite)
}

func TestRunShorthand(t *testing.T) {
	res, err := Run(context.Background(), sunEarth(t), integrators.NewAveraged(), Config{Dt: 1, Steps: 2})
	require.NoError(t, err)
	assert.Equal(t, 8, res.Evaluations)
}
