package i

import "github.com/beka-birhanu/vinom-pathfinder/maze"

// MazeEncoder serializes mazes and routes for renderers.
type MazeEncoder interface {
	MarshalMaze(*maze.Maze) ([]byte, error)
	UnmarshalMaze([]byte) (*maze.Maze, error)
	MarshalRoute(maze.Route) ([]byte, error)
	UnmarshalRoute([]byte) ([]maze.Position, error)
	ContentType() string
}
