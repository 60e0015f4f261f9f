package maze

import "fmt"

// Route is the ordered list of cells from a start cell to a destination cell, both inclusive.
type Route []Cell

// Positions returns the grid positions of the route cells in order.
func (r Route) Positions() []Position {
	positions := make([]Position, len(r))
	for i, c := range r {
		positions[i] = c.Position
	}
	return positions
}

// Start returns the first cell of the route.
func (r Route) Start() (Cell, bool) {
	if len(r) == 0 {
		return Cell{}, false
	}
	return r[0], true
}

// Destination returns the last cell of the route.
func (r Route) Destination() (Cell, bool) {
	if len(r) == 0 {
		return Cell{}, false
	}
	return r[len(r)-1], true
}

// Router finds routes through a generated maze.
// The maze is only read, so a Router may be used from many goroutines at once.
type Router struct {
	maze *Maze
}

// NewRouter creates a Router over m.
func NewRouter(m *Maze) *Router {
	return &Router{maze: m}
}

// routeFrame is one step of the depth-first search.
type routeFrame struct {
	pos        Position
	cameFrom   WallState // wall of pos leading back to the previous frame
	candidates []Neighbor
	next       int
}

// Route returns the unique route from start to destination.
func (r *Router) Route(start, destination Position) (Route, error) {
	m := r.maze
	if !m.InBound(start) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStart, start)
	}
	if !m.InBound(destination) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDestination, destination)
	}

	limit := m.width * m.height
	path := []routeFrame{{pos: start, cameFrom: None, candidates: m.OpenNeighbors(start)}}

	for len(path) > 0 {
		top := &path[len(path)-1]
		if top.pos == destination {
			route := make(Route, len(path))
			for i, f := range path {
				route[i] = *m.at(f.pos)
			}
			return route, nil
		}

		if top.next >= len(top.candidates) {
			path = path[:len(path)-1]
			continue
		}

		n := top.candidates[top.next]
		top.next++
		if n.SharedWall == top.cameFrom {
			continue
		}

		if len(path) >= limit {
			return nil, fmt.Errorf("%w: route from %s exceeds %d cells", ErrNotPerfect, start, limit)
		}

		path = append(path, routeFrame{
			pos:        n.Position,
			cameFrom:   Opposite(n.SharedWall),
			candidates: m.OpenNeighbors(n.Position),
		})
	}

	return nil, fmt.Errorf("%w: %s to %s", ErrNoRoute, start, destination)
}
