package experiment

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/ephemeris"
	"github.com/san-kum/orbitsim/internal/integrators"
	"github.com/san-kum/orbitsim/internal/metrics"
)

var (
	ErrUnknownIntegrator = errors.New("experiment: unknown integrator")
	ErrUnknownSystem     = errors.New("experiment: unknown system")
)

type systemFactory func() (*dynamo.System, error)

type Registry struct {
	integrators map[string]func() dynamo.Integrator
	aliases     map[string]string
	systems     map[string]systemFactory
	references  map[string]systemFactory
}

func NewRegistry() *Registry {
	r := &Registry{
		integrators: make(map[string]func() dynamo.Integrator),
		aliases:     make(map[string]string),
		systems:     make(map[string]systemFactory),
		references:  make(map[string]systemFactory),
	}

	r.integrators["naive"] = func() dynamo.Integrator { return integrators.NewNaive() }
	r.integrators["averaged"] = func() dynamo.Integrator { return integrators.NewAveraged() }
	r.integrators["parabolic"] = func() dynamo.Integrator { return integrators.NewParabolic() }

	r.aliases["1"] = "naive"
	r.aliases["2"] = "averaged"
	r.aliases["3"] = "parabolic"

	r.systems["solar"] = ephemeris.SolarSystem
	r.systems["sunearth"] = ephemeris.SunEarth

	r.references["solar"] = ephemeris.SolarSystemReference

	return r
}

// Canonical resolves an integrator alias to its name.
func (r *Registry) Canonical(name string) string {
	if canon, ok := r.aliases[name]; ok {
		return canon
	}
	return name
}

func (r *Registry) GetIntegrator(name string) (dynamo.Integrator, error) {
	fn, ok := r.integrators[r.Canonical(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownIntegrator, name)
	}
	return fn(), nil
}

func (r *Registry) GetSystem(name string) (*dynamo.System, error) {
	fn, ok := r.systems[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSystem, name)
	}
	return fn()
}

// GetReference returns the tabulated state a run of the named system is
// scored against.
func (r *Registry) GetReference(name string) (*dynamo.System, error) {
	fn, ok := r.references[name]
	if !ok {
		return nil, fmt.Errorf("%w: no reference for %s", ErrUnknownSystem, name)
	}
	return fn()
}

func (r *Registry) HasReference(name string) bool {
	_, ok := r.references[name]
	return ok
}

func (r *Registry) ListIntegrators() []string {
	return sortedKeys(r.integrators)
}

func (r *Registry) ListSystems() []string {
	return sortedKeys(r.systems)
}

// DefaultMetrics returns fresh metrics for one run.
func (r *Registry) DefaultMetrics() []metrics.Metric {
	return []metrics.Metric{
		metrics.NewEnergyDrift(),
		metrics.NewMomentumDrift(),
		metrics.NewStability(1000),
	}
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
