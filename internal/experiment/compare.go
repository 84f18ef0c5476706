package experiment

import (
	"math"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/metrics"
)

// BodyComparison scores one simulated body against its reference state.
type BodyComparison struct {
	Name        string
	Simulated   dynamo.Vector
	Reference   dynamo.Vector
	Discrepancy float64
	AbsError    float64
}

// Compare matches bodies of sim and ref by name and scores their positions.
// Bodies absent from ref are skipped. The result follows the body order of
// sim.
func Compare(sim, ref *dynamo.System) []BodyComparison {
	out := make([]BodyComparison, 0, sim.Len())
	for i := 0; i < sim.Len(); i++ {
		name := sim.Body(i).Name
		j, err := ref.Find(name)
		if err != nil {
			continue
		}

		want, got := ref.Position(j), sim.Position(i)
		out = append(out, BodyComparison{
			Name:        name,
			Simulated:   got,
			Reference:   want,
			Discrepancy: metrics.RelativeDiscrepancy(want, got),
			AbsError:    metrics.AbsoluteError(want, got),
		})
	}
	return out
}

// WorstDiscrepancy returns the largest relative discrepancy, or 0 for an
// empty comparison. NaN entries win.
func WorstDiscrepancy(cmp []BodyComparison) float64 {
	worst := 0.0
	for _, c := range cmp {
		if math.IsNaN(c.Discrepancy) {
			return c.Discrepancy
		}
		worst = math.Max(worst, c.Discrepancy)
	}
	return worst
}
