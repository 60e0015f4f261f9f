// Package movement feeds a maze route to an external animator one waypoint at a time.
//
// The animator polls Advance once per tick with its current position. The Machine decides
// which waypoint is current; the animator owns interpolation speed and timing.
package movement

import (
	"errors"

	"github.com/beka-birhanu/vinom-pathfinder/maze"
)

// DefaultTolerance is the distance under which the animator is considered to have arrived.
const DefaultTolerance = 0.2

var (
	ErrEmptyRoute = errors.New("route has no remaining waypoints")
	ErrNotArrived = errors.New("current waypoint has not been reached")
)

// State is the phase of a Machine.
type State int

const (
	Idle      State = iota // no active route
	Routing                // route loaded, waiting to pop the next waypoint
	Advancing              // moving toward the current waypoint
)

func (s State) String() string {
	switch s {
	case Idle:
		return "IDLE"
	case Routing:
		return "ROUTING"
	case Advancing:
		return "ADVANCING"
	default:
		return "UNKNOWN"
	}
}

// Waypoint is the target handed to the animator.
type Waypoint struct {
	Cell      maze.Cell `json:"cell"`
	Target    maze.Vec3 `json:"target"`    // center of Cell
	Direction maze.Vec3 `json:"direction"` // Target minus the position reported when the waypoint was popped
}

// TransitionFunc observes state changes.
type TransitionFunc func(from, to State)

// Option configures a Machine.
type Option func(*Machine)

// WithTolerance sets the arrival distance. Non-positive values keep the default.
func WithTolerance(tolerance float64) Option {
	return func(m *Machine) {
		if tolerance > 0 {
			m.tolerance = tolerance
		}
	}
}

// WithTransitionHook registers f to be called on every state change.
func WithTransitionHook(f TransitionFunc) Option {
	return func(m *Machine) {
		m.onTransition = f
	}
}

// Machine tracks progress along a single route.
// It has a single owner: concurrent calls must be serialized by the caller.
type Machine struct {
	tolerance    float64
	state        State
	route        []maze.Cell
	current      Waypoint
	onTransition TransitionFunc
}

// New creates an idle Machine.
func New(opts ...Option) *Machine {
	m := &Machine{tolerance: DefaultTolerance, state: Idle}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns the current phase.
func (m *Machine) State() State {
	return m.state
}

// Tolerance returns the arrival distance.
func (m *Machine) Tolerance() float64 {
	return m.tolerance
}

// Remaining returns the number of waypoints not yet popped.
func (m *Machine) Remaining() int {
	return len(m.route)
}

// Target returns the in-progress waypoint while Advancing.
func (m *Machine) Target() (Waypoint, bool) {
	if m.state != Advancing {
		return Waypoint{}, false
	}
	return m.current, true
}

// Load replaces any in-flight route. The first cell of route is the first waypoint handed out.
func (m *Machine) Load(route maze.Route) {
	m.route = append(make([]maze.Cell, 0, len(route)), route...)
	m.current = Waypoint{}
	if len(m.route) == 0 {
		m.transition(Idle)
		return
	}
	m.transition(Routing)
}

// Next pops the next waypoint and starts advancing toward it.
// While Advancing it returns ErrNotArrived and leaves the machine untouched; call Arrive first.
// When the route is exhausted the machine goes Idle and ErrEmptyRoute is returned.
func (m *Machine) Next(current maze.Vec3) (Waypoint, error) {
	if m.state == Advancing {
		return Waypoint{}, ErrNotArrived
	}
	if len(m.route) == 0 {
		m.route = nil
		m.current = Waypoint{}
		m.transition(Idle)
		return Waypoint{}, ErrEmptyRoute
	}

	cell := m.route[0]
	m.route = m.route[1:]
	m.current = Waypoint{
		Cell:      cell,
		Target:    cell.Center,
		Direction: cell.Center.Sub(current),
	}
	m.transition(Advancing)
	return m.current, nil
}

// Arrive reports that the animator reached the current waypoint.
// It returns false when the machine was not Advancing.
func (m *Machine) Arrive() bool {
	if m.state != Advancing {
		return false
	}
	m.transition(Routing)
	return true
}

// Advance is polled once per tick with the animator's position.
// It returns nothing while Idle, the same waypoint while still travelling toward it,
// and the next waypoint once current is within tolerance of the target.
func (m *Machine) Advance(current maze.Vec3) (Waypoint, bool) {
	switch m.state {
	case Idle:
		return Waypoint{}, false
	case Advancing:
		if current.Dist(m.current.Target) >= m.tolerance {
			return m.current, true
		}
		m.Arrive()
	}

	w, err := m.Next(current)
	if err != nil {
		return Waypoint{}, false
	}
	return w, true
}

func (m *Machine) transition(to State) {
	from := m.state
	m.state = to
	if from != to && m.onTransition != nil {
		m.onTransition(from, to)
	}
}
