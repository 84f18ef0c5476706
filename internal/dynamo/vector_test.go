package dynamo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/rand"
)

func randomVector(rnd *rand.Rand) Vector {
	return Vec(rnd.NormFloat64()*10, rnd.NormFloat64()*10, rnd.NormFloat64()*10)
}

func TestVector_Arithmetic(t *testing.T) {
	a := Vec(1, 2, 3)
	b := Vec(4, 5, 6)

	assert.Equal(t, Vec(5, 7, 9), a.Add(b))
	assert.Equal(t, Vec(3, 3, 3), b.Sub(a))
	assert.Equal(t, Vec(2, 4, 6), a.Scale(2))
	assert.Equal(t, 32.0, a.Dot(b))
	assert.Equal(t, Vec(-3, 6, -3), a.Cross(b))
	assert.InDelta(t, 5.0, Vec(3, 4, 0).Norm(), 1e-15)
}

func TestVector_NoAliasing(t *testing.T) {
	a := Vec(1, 1, 1)
	b := a.Add(Vec(1, 0, 0))
	b.X = 100

	assert.Equal(t, Vec(1, 1, 1), a)
}

func TestAverage_Symmetric(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		a, b := randomVector(rnd), randomVector(rnd)
		if Average(a, b) != Average(b, a) {
			t.Fatalf("Average(%v, %v) != Average(%v, %v)", a, b, b, a)
		}
		if Average(a, a) != a {
			t.Fatalf("Average(%v, %v) = %v", a, a, Average(a, a))
		}
	}
}

func TestAverage_Midpoint(t *testing.T) {
	assert.Equal(t, Vec(2, 0, -1), Average(Vec(0, 0, 0), Vec(4, 0, -2)))
	assert.Equal(t, Vec(0.5, 0.5, 0.5), Average(Vec(1, 0, 1), Vec(0, 1, 0)))
}

func TestVector_IsFinite(t *testing.T) {
	tests := []struct {
		name  string
		v     Vector
		valid bool
	}{
		{"zero", Zero, true},
		{"normal", Vec(1, -2, 3), true},
		{"with NaN", Vec(1, math.NaN(), 0), false},
		{"with +Inf", Vec(math.Inf(1), 0, 0), false},
		{"with -Inf", Vec(0, 0, math.Inf(-1)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.IsFinite(); got != tt.valid {
				t.Errorf("IsFinite() = %v, want %v", got, tt.valid)
			}
		})
	}
}
