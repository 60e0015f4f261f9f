package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/beka-birhanu/vinom-pathfinder/maze"
	"github.com/beka-birhanu/vinom-pathfinder/movement"
	"github.com/beka-birhanu/vinom-pathfinder/service/i"
	"github.com/google/uuid"
)

const (
	walkerLockKeyFmt = "walker:%s"
)

var (
	ErrWalkerNotFound = errors.New("walker not found")
	ErrMissingMazes   = errors.New("maze keeper is required")
	ErrMissingLocker  = errors.New("locker is required")
	ErrMazeReplaced   = errors.New("maze was replaced while routing")
)

var _ i.WalkerManager = &WalkerManager{}

// walker is one movement state machine plus the cell it last headed to on maze mazeID.
type walker struct {
	machine *movement.Machine
	cell    maze.Position
	mazeID  uuid.UUID
}

// WalkerManager drives one movement.Machine per walker. Calls for the same walker are
// serialized through the Locker, so each machine only ever has one writer.
type WalkerManager struct {
	mazes     i.MazeKeeper
	locker    i.Locker
	tolerance float64
	walkers   map[uuid.UUID]*walker
	logger    i.Logger
	sync.RWMutex
}

// WalkerManagerConfig holds the dependencies of a WalkerManager.
type WalkerManagerConfig struct {
	Mazes     i.MazeKeeper
	Locker    i.Locker
	Tolerance float64 // Arrival tolerance, non-positive for movement.DefaultTolerance
	Logger    i.Logger
}

// NewWalkerManager creates a WalkerManager. Walkers are sent back to the entrance
// whenever the maze keeper generates a new maze.
func NewWalkerManager(c *WalkerManagerConfig) (*WalkerManager, error) {
	switch {
	case c.Mazes == nil:
		return nil, ErrMissingMazes
	case c.Locker == nil:
		return nil, ErrMissingLocker
	case c.Logger == nil:
		return nil, ErrMissingLogger
	}

	wm := &WalkerManager{
		mazes:     c.Mazes,
		locker:    c.Locker,
		tolerance: c.Tolerance,
		walkers:   make(map[uuid.UUID]*walker),
		logger:    c.Logger,
	}
	c.Mazes.OnReplace(wm.reset)
	return wm, nil
}

// Register implements i.WalkerManager.
func (wm *WalkerManager) Register(ctx context.Context) (uuid.UUID, error) {
	wm.Lock()
	defer wm.Unlock()

	id := uuid.New()
	for {
		if _, ok := wm.walkers[id]; !ok {
			break
		}
		id = uuid.New()
	}

	w := wm.newWalker()
	if m, err := wm.mazes.Current(); err == nil {
		w.cell = m.Entrance()
		w.mazeID = m.ID()
	}
	wm.walkers[id] = w
	wm.logger.Info(fmt.Sprintf("registered walker %s", id))
	return id, nil
}

// RouteTo implements i.WalkerManager.
// The route is computed on a single snapshot of the current maze. If that maze was replaced
// before the route could be loaded, nothing is loaded and ErrMazeReplaced is returned.
func (wm *WalkerManager) RouteTo(ctx context.Context, id uuid.UUID, destination maze.Position) (maze.Route, error) {
	unlock, err := wm.locker.Lock(ctx, fmt.Sprintf(walkerLockKeyFmt, id))
	if err != nil {
		return nil, err
	}
	defer unlock()

	w, err := wm.walker(id)
	if err != nil {
		return nil, err
	}

	m, err := wm.mazes.Current()
	if err != nil {
		return nil, err
	}
	if m.ID() != w.mazeID {
		return nil, ErrMazeReplaced
	}

	route, err := maze.NewRouter(m).Route(w.cell, destination)
	if err != nil {
		wm.logger.Warning(fmt.Sprintf("walker %s routing %s to %s: %s", id, w.cell, destination, err))
		return nil, err
	}

	// reset swaps walkers under the write lock, so holding the read lock pins w until Load is done.
	wm.RLock()
	defer wm.RUnlock()
	if wm.walkers[id] != w {
		return nil, ErrMazeReplaced
	}
	w.machine.Load(route)

	wm.logger.Info(fmt.Sprintf("walker %s routed %s to %s in %d cells", id, w.cell, destination, len(route)))
	return route, nil
}

// Advance implements i.WalkerManager.
func (wm *WalkerManager) Advance(ctx context.Context, id uuid.UUID, current maze.Vec3) (movement.Waypoint, bool, error) {
	unlock, err := wm.locker.Lock(ctx, fmt.Sprintf(walkerLockKeyFmt, id))
	if err != nil {
		return movement.Waypoint{}, false, err
	}
	defer unlock()

	w, err := wm.walker(id)
	if err != nil {
		return movement.Waypoint{}, false, err
	}

	wp, ok := w.machine.Advance(current)
	if ok {
		w.cell = wp.Cell.Position
	}
	return wp, ok, nil
}

// Status implements i.WalkerManager.
func (wm *WalkerManager) Status(ctx context.Context, id uuid.UUID) (i.WalkerStatus, error) {
	unlock, err := wm.locker.Lock(ctx, fmt.Sprintf(walkerLockKeyFmt, id))
	if err != nil {
		return i.WalkerStatus{}, err
	}
	defer unlock()

	w, err := wm.walker(id)
	if err != nil {
		return i.WalkerStatus{}, err
	}

	status := i.WalkerStatus{
		ID:        id,
		Cell:      w.cell,
		State:     w.machine.State().String(),
		Remaining: w.machine.Remaining(),
	}
	if target, ok := w.machine.Target(); ok {
		status.Target = &target
	}
	return status, nil
}

func (wm *WalkerManager) walker(id uuid.UUID) (*walker, error) {
	wm.RLock()
	defer wm.RUnlock()
	w, ok := wm.walkers[id]
	if !ok {
		return nil, ErrWalkerNotFound
	}
	return w, nil
}

func (wm *WalkerManager) newWalker() *walker {
	return &walker{
		machine: movement.New(movement.WithTolerance(wm.tolerance)),
		cell:    maze.Position{X: 0, Y: 0},
	}
}

// reset drops every in-flight route and puts all walkers back on the entrance of m.
func (wm *WalkerManager) reset(m *maze.Maze) {
	wm.Lock()
	defer wm.Unlock()
	for id := range wm.walkers {
		w := wm.newWalker()
		w.cell = m.Entrance()
		w.mazeID = m.ID()
		wm.walkers[id] = w
	}
	wm.logger.Info(fmt.Sprintf("reset %d walkers for maze %s", len(wm.walkers), m.ID()))
}
