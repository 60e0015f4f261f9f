// Package mazeapi provides structures for maze generation, routing and picking requests.
package mazeapi

import (
	"github.com/beka-birhanu/vinom-pathfinder/maze"
	"github.com/google/uuid"
)

// GenerateRequest asks for a new current maze.
type GenerateRequest struct {
	Width  int   `json:"width" binding:"required,min=1,max=1024"`
	Height int   `json:"height" binding:"required,min=1,max=1024"`
	Seed   int64 `json:"seed"`
}

// PositionDTO is a cell coordinate.
type PositionDTO struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p PositionDTO) Position() maze.Position {
	return maze.Position{X: p.X, Y: p.Y}
}

// RouteRequest asks for the route between two cells of the current maze.
type RouteRequest struct {
	Start       *PositionDTO `json:"start" binding:"required"`
	Destination *PositionDTO `json:"destination" binding:"required"`
}

// PointDTO is a world-space point.
type PointDTO struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (p PointDTO) Vec3() maze.Vec3 {
	return maze.Vec3{X: p.X, Y: p.Y, Z: p.Z}
}

// MazeResponse describes a maze. Cells are indexed [x][y].
type MazeResponse struct {
	ID       uuid.UUID     `json:"id"`
	Width    int           `json:"width"`
	Height   int           `json:"height"`
	Entrance maze.Position `json:"entrance"`
	Exit     maze.Position `json:"exit"`
	Cells    [][]maze.Cell `json:"cells"`
}

func NewMazeResponse(m *maze.Maze) *MazeResponse {
	return &MazeResponse{
		ID:       m.ID(),
		Width:    m.Width(),
		Height:   m.Height(),
		Entrance: m.Entrance(),
		Exit:     m.Exit(),
		Cells:    m.Cells(),
	}
}

// RouteResponse lists the cells from start to destination, both included.
type RouteResponse struct {
	Length int         `json:"length"`
	Cells  []maze.Cell `json:"cells"`
}

func NewRouteResponse(r maze.Route) *RouteResponse {
	cells := []maze.Cell(r)
	if cells == nil {
		cells = []maze.Cell{}
	}
	return &RouteResponse{Length: len(cells), Cells: cells}
}
