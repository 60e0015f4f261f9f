package maze

import (
	"fmt"
	"math"
)

// cellCenterHeight is the vertical offset of every cell center.
const cellCenterHeight = 0.25

// Position represents the position of a cell in the maze grid.
type Position struct {
	X int `json:"x"` // Column index of the cell
	Y int `json:"y"` // Row index of the cell
}

// String returns the position as "(x,y)".
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Vec3 is a point or direction in world space. X and Z span the maze floor.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Scale returns v multiplied by f.
func (v Vec3) Scale(f float64) Vec3 {
	return Vec3{X: v.X * f, Y: v.Y * f, Z: v.Z * f}
}

// Len returns the euclidean length of v.
func (v Vec3) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Dist returns the euclidean distance between v and o.
func (v Vec3) Dist(o Vec3) float64 {
	return v.Sub(o).Len()
}

// Cell represents a single cell in a maze grid.
type Cell struct {
	Position Position  `json:"position"` // Grid coordinates of the cell
	Walls    WallState `json:"walls"`    // Wall flags currently set on the cell
	Center   Vec3      `json:"center"`   // World-space center, fixed at grid initialization
}

// HasWall reports whether the structural wall w is present on the cell.
func (c Cell) HasWall(w WallState) bool {
	return c.Walls.Has(w)
}

// Neighbor is a grid-adjacent cell together with the wall, as seen from the source cell,
// that separates the two.
type Neighbor struct {
	Position   Position
	SharedWall WallState
}

// centerOf returns the world-space center of the cell at (x, y) in a width x height grid.
func centerOf(x, y, width, height int) Vec3 {
	return Vec3{
		X: float64(x - width/2),
		Y: cellCenterHeight,
		Z: float64(y - height/2),
	}
}
