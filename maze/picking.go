package maze

import (
	"fmt"
	"math"
)

// CellAt maps a world-space point on the maze floor to the cell underneath it.
// Both axes use the same rule: round to the nearest integer, then shift by half the
// grid size. Points that land outside the grid yield ErrOutOfBounds.
func (m *Maze) CellAt(point Vec3) (Position, error) {
	p := Position{
		X: int(math.Round(point.X)) + m.width/2,
		Y: int(math.Round(point.Z)) + m.height/2,
	}
	if !m.InBound(p) {
		return Position{}, fmt.Errorf("%w: (%.2f, %.2f) maps to %s", ErrOutOfBounds, point.X, point.Z, p)
	}
	return p, nil
}
