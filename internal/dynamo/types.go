package dynamo

import "fmt"

// MaxBodies is the default capacity of a System.
const MaxBodies = 10

// Body is the immutable description of one gravitating body.
type Body struct {
	Name string
	GM   float64 // gravitational parameter G*M [AU^3/day^2]
}

// BodyState is the kinematic state of one body at one instant.
type BodyState struct {
	Pos Vector // [AU]
	Vel Vector // [AU/day]
}

func (s BodyState) IsFinite() bool {
	return s.Pos.IsFinite() && s.Vel.IsFinite()
}

// System holds an ordered list of bodies with their current states and the
// accumulated simulated time. Insertion order is the pairing index used by
// the force model and never changes during a run.
type System struct {
	bodies   []Body
	states   []BodyState
	capacity int
	time     float64
}

// NewSystem returns an empty system that accepts up to capacity bodies.
// A non-positive capacity selects MaxBodies.
func NewSystem(capacity int) *System {
	if capacity <= 0 {
		capacity = MaxBodies
	}
	return &System{
		bodies:   make([]Body, 0, capacity),
		states:   make([]BodyState, 0, capacity),
		capacity: capacity,
	}
}

// Add registers a body with its initial state.
func (s *System) Add(b Body, st BodyState) error {
	idx := len(s.bodies)
	if idx >= s.capacity {
		return &BodyError{Index: idx, Name: b.Name, Wrapped: fmt.Errorf("%w (max %d)", ErrCapacity, s.capacity)}
	}
	if b.GM < 0 {
		return &BodyError{Index: idx, Name: b.Name, Wrapped: ErrNegativeGM}
	}
	s.bodies = append(s.bodies, b)
	s.states = append(s.states, st)
	return nil
}

func (s *System) Len() int           { return len(s.bodies) }
func (s *System) Capacity() int      { return s.capacity }
func (s *System) Time() float64      { return s.time }
func (s *System) SetTime(tt float64) { s.time = tt }

func (s *System) Body(i int) Body       { return s.bodies[i] }
func (s *System) State(i int) BodyState { return s.states[i] }
func (s *System) Position(i int) Vector { return s.states[i].Pos }
func (s *System) Velocity(i int) Vector { return s.states[i].Vel }

// Bodies returns a copy of the body list.
func (s *System) Bodies() []Body {
	out := make([]Body, len(s.bodies))
	copy(out, s.bodies)
	return out
}

// States returns a copy of the current states.
func (s *System) States() []BodyState {
	out := make([]BodyState, len(s.states))
	copy(out, s.states)
	return out
}

// Find returns the index of the named body.
func (s *System) Find(name string) (int, error) {
	for i, b := range s.bodies {
		if b.Name == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", ErrUnknownBody, name)
}

// Advance returns a new system with the same bodies, the given states and
// the simulated time moved forward by dt. The receiver is left untouched.
func (s *System) Advance(next []BodyState, dt float64) *System {
	if len(next) != len(s.bodies) {
		panic(fmt.Sprintf("dynamo: advance with %d states for %d bodies", len(next), len(s.bodies)))
	}
	return &System{
		bodies:   s.bodies,
		states:   next,
		capacity: s.capacity,
		time:     s.time + dt,
	}
}

// Clone returns an independent copy of the system.
func (s *System) Clone() *System {
	return &System{
		bodies:   s.Bodies(),
		states:   s.States(),
		capacity: s.capacity,
		time:     s.time,
	}
}

// Validate reports the first body whose state is not finite.
func (s *System) Validate() error {
	if len(s.bodies) == 0 {
		return ErrEmptySystem
	}
	for i, st := range s.states {
		if !st.IsFinite() {
			return &BodyError{Index: i, Name: s.bodies[i].Name, Wrapped: ErrNonFinite}
		}
	}
	return nil
}

// Integrator advances a whole system by one fixed time increment. Step must
// not modify its input and must return a system whose time is exactly
// s.Time()+dt.
type Integrator interface {
	Name() string
	Step(s *System, dt float64) *System
}
