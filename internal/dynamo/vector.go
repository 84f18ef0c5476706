package dynamo

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vector is a point or direction in 3-space. All operations return a new
// value and never modify their operands.
type Vector r3.Vec

// Zero is the additive identity.
var Zero = Vector{}

func Vec(x, y, z float64) Vector {
	return Vector{X: x, Y: y, Z: z}
}

func (v Vector) Add(o Vector) Vector {
	return Vector(r3.Add(r3.Vec(v), r3.Vec(o)))
}

func (v Vector) Sub(o Vector) Vector {
	return Vector(r3.Sub(r3.Vec(v), r3.Vec(o)))
}

func (v Vector) Scale(k float64) Vector {
	return Vector(r3.Scale(k, r3.Vec(v)))
}

func (v Vector) Dot(o Vector) float64 {
	return r3.Dot(r3.Vec(v), r3.Vec(o))
}

func (v Vector) Cross(o Vector) Vector {
	return Vector(r3.Cross(r3.Vec(v), r3.Vec(o)))
}

func (v Vector) Norm() float64 {
	return r3.Norm(r3.Vec(v))
}

func (v Vector) IsFinite() bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

func (v Vector) String() string {
	return fmt.Sprintf("(%.16g, %.16g, %.16g)", v.X, v.Y, v.Z)
}

// Average returns 0.5*(a+b).
func Average(a, b Vector) Vector {
	return a.Add(b).Scale(0.5)
}
