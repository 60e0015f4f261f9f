/*
Package maze provides tools for creating and solving rectangular perfect mazes.

A Maze is a width x height grid of Cell values, each carrying a WallState bit mask.
The Generator carves a spanning tree into a fully walled grid with a randomized
depth-first backtracker, and the Router walks that tree to return the unique route
between two cells.

Coordinates: x grows to the RIGHT, y grows UP. Neighbours are always enumerated
in the order LEFT, DOWN, UP, RIGHT.
*/
package maze

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spakin/disjoint"
)

const (
	// MaxDimension bounds the width and height accepted by NewGrid.
	MaxDimension = 1024
)

var (
	ErrInvalidGridSize    = errors.New("invalid maze dimensions")
	ErrInvalidStart       = errors.New("start cell is outside the maze")
	ErrInvalidDestination = errors.New("destination cell is outside the maze")
	ErrOutOfBounds        = errors.New("point is outside the maze")
	ErrNoRoute            = errors.New("no route between cells")
	ErrNotPerfect         = errors.New("maze is not a perfect maze")
)

// Maze represents a rectangular grid of cells.
// Once generation has finished a Maze is never mutated and may be shared between goroutines.
type Maze struct {
	id     uuid.UUID
	width  int
	height int
	grid   [][]Cell // indexed [x][y]
}

// NewGrid allocates a width x height grid with every structural wall present,
// except the LEFT wall of (0,0) and the RIGHT wall of (width-1,height-1).
func NewGrid(width, height int) (*Maze, error) {
	if min(width, height) < 1 || max(width, height) > MaxDimension {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidGridSize, width, height)
	}

	grid := make([][]Cell, width)
	for x := range grid {
		grid[x] = make([]Cell, height)
		for y := range grid[x] {
			grid[x][y] = Cell{
				Position: Position{X: x, Y: y},
				Walls:    AllWalls,
				Center:   centerOf(x, y, width, height),
			}
		}
	}

	grid[0][0].Walls &^= Left
	grid[width-1][height-1].Walls &^= Right

	return &Maze{
		id:     uuid.New(),
		width:  width,
		height: height,
		grid:   grid,
	}, nil
}

// ID returns the identifier assigned to the maze when its grid was allocated.
func (m *Maze) ID() uuid.UUID {
	return m.id
}

// Width returns the number of columns.
func (m *Maze) Width() int {
	return m.width
}

// Height returns the number of rows.
func (m *Maze) Height() int {
	return m.height
}

// InBound reports whether p lies inside the grid.
func (m *Maze) InBound(p Position) bool {
	return p.X >= 0 && p.X < m.width && p.Y >= 0 && p.Y < m.height
}

// Cell returns a copy of the cell at p.
func (m *Maze) Cell(p Position) (Cell, error) {
	if !m.InBound(p) {
		return Cell{}, fmt.Errorf("%w: %s", ErrOutOfBounds, p)
	}
	return m.grid[p.X][p.Y], nil
}

// Cells returns a copy of the grid, indexed [x][y].
func (m *Maze) Cells() [][]Cell {
	cells := make([][]Cell, m.width)
	for x := range m.grid {
		cells[x] = make([]Cell, m.height)
		copy(cells[x], m.grid[x])
	}
	return cells
}

// Entrance returns the cell whose LEFT wall is opened on initialization.
func (m *Maze) Entrance() Position {
	return Position{X: 0, Y: 0}
}

// Exit returns the cell whose RIGHT wall is opened on initialization.
func (m *Maze) Exit() Position {
	return Position{X: m.width - 1, Y: m.height - 1}
}

// at returns a pointer to the cell at p. p must be in bounds.
func (m *Maze) at(p Position) *Cell {
	return &m.grid[p.X][p.Y]
}

// openWall removes the wall between the cell at from and its neighbour n on both sides.
func (m *Maze) openWall(from Position, n Neighbor) {
	m.at(from).Walls &^= n.SharedWall
	m.at(n.Position).Walls &^= Opposite(n.SharedWall)
}

// OpenWalls counts the internal wall pairs that have been carved away.
// The entrance and exit openings on the boundary are not counted.
func (m *Maze) OpenWalls() int {
	open := 0
	for x := 0; x < m.width; x++ {
		for y := 0; y < m.height; y++ {
			c := m.grid[x][y]
			if x < m.width-1 && !c.HasWall(Right) {
				open++
			}
			if y < m.height-1 && !c.HasWall(Up) {
				open++
			}
		}
	}
	return open
}

// Validate checks that every internal opening is symmetric and that the openings form
// a spanning tree over the grid: connected, acyclic, width*height-1 edges.
func (m *Maze) Validate() error {
	sets := make([][]*disjoint.Element, m.width)
	for x := range sets {
		sets[x] = make([]*disjoint.Element, m.height)
		for y := range sets[x] {
			sets[x][y] = disjoint.NewElement()
		}
	}

	edges := 0
	join := func(a, b Position) error {
		ea, eb := sets[a.X][a.Y], sets[b.X][b.Y]
		if ea.Find() == eb.Find() {
			return fmt.Errorf("%w: cycle through %s-%s", ErrNotPerfect, a, b)
		}
		disjoint.Union(ea, eb)
		edges++
		return nil
	}

	for x := 0; x < m.width; x++ {
		for y := 0; y < m.height; y++ {
			p := Position{X: x, Y: y}
			c := m.grid[x][y]

			if x < m.width-1 {
				right := m.grid[x+1][y]
				if c.HasWall(Right) != right.HasWall(Left) {
					return fmt.Errorf("%w: asymmetric wall %s-%s", ErrNotPerfect, p, right.Position)
				}
				if !c.HasWall(Right) {
					if err := join(p, right.Position); err != nil {
						return err
					}
				}
			}

			if y < m.height-1 {
				up := m.grid[x][y+1]
				if c.HasWall(Up) != up.HasWall(Down) {
					return fmt.Errorf("%w: asymmetric wall %s-%s", ErrNotPerfect, p, up.Position)
				}
				if !c.HasWall(Up) {
					if err := join(p, up.Position); err != nil {
						return err
					}
				}
			}
		}
	}

	if want := m.width*m.height - 1; edges != want {
		return fmt.Errorf("%w: %d open walls, want %d", ErrNotPerfect, edges, want)
	}
	return nil
}

// String provides a textual representation of the maze, top row first.
func (m *Maze) String() string {
	return m.Render(nil)
}

// Render draws the maze as ASCII art and marks the cells of route.
// The first cell of the route is drawn as S, the last as E, the rest as *.
func (m *Maze) Render(route Route) string {
	marks := make(map[Position]string, len(route))
	for i, c := range route {
		switch i {
		case 0:
			marks[c.Position] = " S "
		case len(route) - 1:
			marks[c.Position] = " E "
		default:
			marks[c.Position] = " * "
		}
	}

	var output strings.Builder

	// Top boundary
	for x := 0; x < m.width; x++ {
		if m.grid[x][m.height-1].HasWall(Up) {
			output.WriteString("+---")
		} else {
			output.WriteString("+   ")
		}
	}
	output.WriteString("+\n")

	for y := m.height - 1; y >= 0; y-- {
		// Cell rows
		if m.grid[0][y].HasWall(Left) {
			output.WriteString("|")
		} else {
			output.WriteString(" ")
		}
		for x := 0; x < m.width; x++ {
			cell := m.grid[x][y]
			if mark, ok := marks[cell.Position]; ok {
				output.WriteString(mark)
			} else {
				output.WriteString("   ")
			}

			if cell.HasWall(Right) {
				output.WriteString("|")
			} else {
				output.WriteString(" ")
			}
		}
		output.WriteString("\n")

		// Wall rows
		for x := 0; x < m.width; x++ {
			if m.grid[x][y].HasWall(Down) {
				output.WriteString("+---")
			} else {
				output.WriteString("+   ")
			}
		}
		output.WriteString("+\n")
	}

	return output.String()
}
