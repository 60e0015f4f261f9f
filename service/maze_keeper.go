package service

import (
	"errors"
	"fmt"
	"sync"

	"github.com/beka-birhanu/vinom-pathfinder/maze"
	"github.com/beka-birhanu/vinom-pathfinder/service/i"
)

var (
	ErrNoMaze        = errors.New("no maze has been generated")
	ErrMissingLogger = errors.New("logger is required")
)

var _ i.MazeKeeper = &MazeKeeper{}

// MazeKeeper holds the single current maze. Generating a new maze replaces it.
type MazeKeeper struct {
	generator *maze.Generator
	current   *maze.Maze
	listeners []func(*maze.Maze)
	logger    i.Logger
	genMu     sync.Mutex // guards generator
	sync.RWMutex
}

// MazeKeeperConfig holds the dependencies of a MazeKeeper.
type MazeKeeperConfig struct {
	Seed   int64 // Seed of the keeper's own generator, 0 for time based
	Logger i.Logger
}

// NewMazeKeeper creates a MazeKeeper without a current maze.
func NewMazeKeeper(c *MazeKeeperConfig) (*MazeKeeper, error) {
	if c.Logger == nil {
		return nil, ErrMissingLogger
	}
	return &MazeKeeper{
		generator: maze.NewGenerator(maze.WithSeed(c.Seed)),
		logger:    c.Logger,
	}, nil
}

// Generate implements i.MazeKeeper.
func (k *MazeKeeper) Generate(width, height int, seed int64) (*maze.Maze, error) {
	var (
		m   *maze.Maze
		err error
	)
	if seed != 0 {
		m, err = maze.NewGenerator(maze.WithSeed(seed)).Generate(width, height)
	} else {
		k.genMu.Lock()
		m, err = k.generator.Generate(width, height)
		k.genMu.Unlock()
	}
	if err != nil {
		k.logger.Error(fmt.Sprintf("generating %dx%d maze: %s", width, height, err))
		return nil, err
	}

	k.Lock()
	k.current = m
	listeners := append([]func(*maze.Maze){}, k.listeners...)
	k.Unlock()

	for _, f := range listeners {
		f(m)
	}

	k.logger.Info(fmt.Sprintf("generated %dx%d maze %s", width, height, m.ID()))
	return m, nil
}

// Current implements i.MazeKeeper.
func (k *MazeKeeper) Current() (*maze.Maze, error) {
	k.RLock()
	defer k.RUnlock()
	if k.current == nil {
		return nil, ErrNoMaze
	}
	return k.current, nil
}

// Route implements i.MazeKeeper.
func (k *MazeKeeper) Route(start, destination maze.Position) (maze.Route, error) {
	m, err := k.Current()
	if err != nil {
		return nil, err
	}

	route, err := maze.NewRouter(m).Route(start, destination)
	if err != nil {
		k.logger.Warning(fmt.Sprintf("routing %s to %s: %s", start, destination, err))
		return nil, err
	}
	return route, nil
}

// Pick implements i.MazeKeeper.
func (k *MazeKeeper) Pick(point maze.Vec3) (maze.Position, error) {
	m, err := k.Current()
	if err != nil {
		return maze.Position{}, err
	}
	return m.CellAt(point)
}

// OnReplace implements i.MazeKeeper.
func (k *MazeKeeper) OnReplace(f func(*maze.Maze)) {
	k.Lock()
	defer k.Unlock()
	k.listeners = append(k.listeners, f)
}
