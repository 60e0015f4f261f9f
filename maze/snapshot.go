package maze

import (
	"fmt"

	"github.com/google/uuid"
)

// Walls returns the wall state of every cell in x-major order: (0,0), (0,1), ... (w-1,h-1).
func (m *Maze) Walls() []WallState {
	walls := make([]WallState, 0, m.width*m.height)
	for x := range m.grid {
		for y := range m.grid[x] {
			walls = append(walls, m.grid[x][y].Walls)
		}
	}
	return walls
}

// Restore rebuilds a maze from its identifier, dimensions and x-major wall states,
// as produced by Walls. Cell centers are recomputed from the dimensions.
func Restore(id uuid.UUID, width, height int, walls []WallState) (*Maze, error) {
	m, err := NewGrid(width, height)
	if err != nil {
		return nil, err
	}
	if len(walls) != width*height {
		return nil, fmt.Errorf("%w: %d wall states for %dx%d grid", ErrInvalidGridSize, len(walls), width, height)
	}

	m.id = id
	for i, w := range walls {
		m.grid[i/height][i%height].Walls = w
	}
	return m, nil
}
