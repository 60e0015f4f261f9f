package i

import "github.com/beka-birhanu/vinom-pathfinder/maze"

// MazeKeeper owns the current maze and answers route queries against it.
type MazeKeeper interface {
	// Generate replaces the current maze with a freshly carved one.
	// A zero seed uses the keeper's own random source.
	Generate(width, height int, seed int64) (*maze.Maze, error)

	// Current returns the current maze, or an error if none was generated yet.
	Current() (*maze.Maze, error)

	// Route returns the unique route between two cells of the current maze.
	Route(start, destination maze.Position) (maze.Route, error)

	// Pick maps a world-space point to a cell of the current maze.
	Pick(point maze.Vec3) (maze.Position, error)

	// OnReplace registers a callback invoked after every successful Generate.
	OnReplace(func(*maze.Maze))
}
