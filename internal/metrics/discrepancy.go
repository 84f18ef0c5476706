package metrics

import "github.com/san-kum/orbitsim/internal/dynamo"

// RelativeDiscrepancy returns |a-b| / |a|. a is the reference value; a zero
// reference yields +Inf or NaN.
func RelativeDiscrepancy(a, b dynamo.Vector) float64 {
	return a.Sub(b).Norm() / a.Norm()
}

// AbsoluteError returns |a-b|.
func AbsoluteError(a, b dynamo.Vector) float64 {
	return a.Sub(b).Norm()
}

// Discrepancy reports how far one body currently sits from a target
// position, relative to the target.
type Discrepancy struct {
	name   string
	body   int
	target dynamo.Vector
	last   float64
}

func NewDiscrepancy(body int, target dynamo.Vector) *Discrepancy {
	return &Discrepancy{
		name:   "discrepancy",
		body:   body,
		target: target,
	}
}

func (d *Discrepancy) Name() string { return d.name }

func (d *Discrepancy) Observe(s *dynamo.System) {
	if d.body >= s.Len() {
		return
	}
	d.last = RelativeDiscrepancy(d.target, s.Position(d.body))
}

func (d *Discrepancy) Value() float64 { return d.last }

func (d *Discrepancy) Reset() { d.last = 0 }
