package maze

// directions lists the neighbour offsets in enumeration order: LEFT, DOWN, UP, RIGHT.
var directions = []struct {
	wall   WallState
	dx, dy int
}{
	{wall: Left, dx: -1, dy: 0},
	{wall: Down, dx: 0, dy: -1},
	{wall: Up, dx: 0, dy: 1},
	{wall: Right, dx: 1, dy: 0},
}

// neighbors returns the in-bound cells adjacent to p that satisfy keep, in LEFT, DOWN, UP, RIGHT order.
func (m *Maze) neighbors(p Position, keep func(n Neighbor) bool) []Neighbor {
	result := make([]Neighbor, 0, len(directions))
	for _, d := range directions {
		n := Neighbor{
			Position:   Position{X: p.X + d.dx, Y: p.Y + d.dy},
			SharedWall: d.wall,
		}
		if m.InBound(n.Position) && keep(n) {
			result = append(result, n)
		}
	}
	return result
}

// UnvisitedNeighbors returns the adjacent cells of p whose VISITED flag is unset.
func (m *Maze) UnvisitedNeighbors(p Position) []Neighbor {
	if !m.InBound(p) {
		return nil
	}
	return m.neighbors(p, func(n Neighbor) bool {
		return !m.at(n.Position).Walls.Has(Visited)
	})
}

// OpenNeighbors returns the adjacent cells of p reachable through a carved wall.
// Only structural wall flags on p are inspected.
func (m *Maze) OpenNeighbors(p Position) []Neighbor {
	if !m.InBound(p) {
		return nil
	}
	walls := m.at(p).Walls
	return m.neighbors(p, func(n Neighbor) bool {
		return !walls.Has(n.SharedWall)
	})
}
