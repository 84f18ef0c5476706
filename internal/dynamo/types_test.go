package dynamo

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystem_Capacity(t *testing.T) {
	sys := NewSystem(2)
	require.NoError(t, sys.Add(Body{Name: "A", GM: 1}, BodyState{}))
	require.NoError(t, sys.Add(Body{Name: "B", GM: 1}, BodyState{Pos: Vec(1, 0, 0)}))

	err := sys.Add(Body{Name: "C", GM: 1}, BodyState{Pos: Vec(2, 0, 0)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCapacity))

	var be *BodyError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, 2, be.Index)
	assert.Equal(t, "C", be.Name)
	assert.Equal(t, 2, sys.Len(), "overflow must not truncate or append")
}

func TestSystem_DefaultCapacity(t *testing.T) {
	sys := NewSystem(0)
	assert.Equal(t, MaxBodies, sys.Capacity())
}

func TestSystem_NegativeGM(t *testing.T) {
	sys := NewSystem(MaxBodies)
	err := sys.Add(Body{Name: "Bad", GM: -1}, BodyState{})
	assert.True(t, errors.Is(err, ErrNegativeGM))
	assert.Equal(t, 0, sys.Len())
}

func TestSystem_AdvanceLeavesReceiver(t *testing.T) {
	sys := NewSystem(MaxBodies)
	require.NoError(t, sys.Add(Body{Name: "A", GM: 1}, BodyState{Pos: Vec(1, 0, 0)}))
	sys.SetTime(10)

	next := sys.Advance([]BodyState{{Pos: Vec(2, 0, 0)}}, 0.5)

	assert.Equal(t, 10.0, sys.Time())
	assert.Equal(t, Vec(1, 0, 0), sys.Position(0))
	assert.Equal(t, 10.5, next.Time())
	assert.Equal(t, Vec(2, 0, 0), next.Position(0))
	assert.Equal(t, sys.Body(0), next.Body(0))
}

func TestSystem_AdvanceMismatchPanics(t *testing.T) {
	sys := NewSystem(MaxBodies)
	require.NoError(t, sys.Add(Body{Name: "A", GM: 1}, BodyState{}))
	assert.Panics(t, func() { sys.Advance(nil, 1) })
}

func TestSystem_CopiesAreIndependent(t *testing.T) {
	sys := NewSystem(MaxBodies)
	require.NoError(t, sys.Add(Body{Name: "A", GM: 1}, BodyState{Pos: Vec(1, 2, 3)}))

	states := sys.States()
	states[0].Pos = Vec(9, 9, 9)
	bodies := sys.Bodies()
	bodies[0].Name = "Z"

	assert.Equal(t, Vec(1, 2, 3), sys.Position(0))
	assert.Equal(t, "A", sys.Body(0).Name)

	c := sys.Clone()
	c.SetTime(5)
	assert.Equal(t, 0.0, sys.Time())
}

func TestSystem_Find(t *testing.T) {
	sys := NewSystem(MaxBodies)
	require.NoError(t, sys.Add(Body{Name: "Sun", GM: 1}, BodyState{}))
	require.NoError(t, sys.Add(Body{Name: "Earth", GM: 0}, BodyState{Pos: Vec(1, 0, 0)}))

	idx, err := sys.Find("Earth")
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	_, err = sys.Find("Vulcan")
	assert.True(t, errors.Is(err, ErrUnknownBody))
}

func TestSystem_Validate(t *testing.T) {
	assert.True(t, errors.Is(NewSystem(1).Validate(), ErrEmptySystem))

	sys := NewSystem(MaxBodies)
	require.NoError(t, sys.Add(Body{Name: "A", GM: 1}, BodyState{}))
	assert.NoError(t, sys.Validate())

	bad := sys.Advance([]BodyState{{Vel: Vec(0, 0, math.Inf(1))}}, 1)
	assert.True(t, errors.Is(bad.Validate(), ErrNonFinite))
}

func TestBodyError(t *testing.T) {
	err := &BodyError{Index: 3, Name: "Earth", Wrapped: ErrNonFinite}
	assert.Equal(t, "body 3 (Earth): "+ErrNonFinite.Error(), err.Error())
}
