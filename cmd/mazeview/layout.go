package main

import (
	"math"

	"github.com/beka-birhanu/vinom-pathfinder/maze"
)

// Screen placement of the maze drawing. Every cell is drawn cellCols wide and
// cellRows tall, following maze.Render, top row first.
const (
	originX  = 1
	originY  = 1
	cellCols = 4
	cellRows = 2
)

// pickPoint maps a screen coordinate to the world-space point under it.
// It is the terminal stand-in for a ray hit on the maze floor.
func pickPoint(m *maze.Maze, sx, sy int) (maze.Vec3, bool) {
	dx, dy := sx-originX, sy-originY
	if dx < 1 || dy < 1 {
		return maze.Vec3{}, false
	}

	col := (dx - 1) / cellCols
	row := (dy - 1) / cellRows
	offset := (float64((dx-1)%cellCols) - 1.5) / cellCols

	return maze.Vec3{
		X: float64(col-m.Width()/2) + offset,
		Z: float64((m.Height() - 1 - row) - m.Height()/2),
	}, true
}

// screenOf maps a world-space point to the screen cell drawing it.
func screenOf(m *maze.Maze, p maze.Vec3) (int, int) {
	x := p.X + float64(m.Width()/2)
	y := p.Z + float64(m.Height()/2)
	sx := originX + 2 + int(math.Round(x*cellCols))
	sy := originY + 1 + int(math.Round((float64(m.Height()-1)-y)*cellRows))
	return sx, sy
}

// step moves pos toward target by at most maxDist.
func step(pos, target maze.Vec3, maxDist float64) maze.Vec3 {
	d := target.Sub(pos)
	dist := d.Len()
	if dist <= maxDist || dist == 0 {
		return target
	}
	return pos.Add(d.Scale(maxDist / dist))
}
