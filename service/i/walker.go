package i

import (
	"context"

	"github.com/beka-birhanu/vinom-pathfinder/maze"
	"github.com/beka-birhanu/vinom-pathfinder/movement"
	"github.com/google/uuid"
)

// WalkerStatus is a snapshot of a walker's movement.
type WalkerStatus struct {
	ID        uuid.UUID          `json:"id"`
	Cell      maze.Position      `json:"cell"`
	State     string             `json:"state"`
	Remaining int                `json:"remaining"`
	Target    *movement.Waypoint `json:"target,omitempty"`
}

// WalkerManager drives one movement state machine per walker.
type WalkerManager interface {
	// Register creates a walker standing on the maze entrance.
	Register(ctx context.Context) (uuid.UUID, error)

	// RouteTo computes the route from the walker's cell to destination and loads it.
	RouteTo(ctx context.Context, id uuid.UUID, destination maze.Position) (maze.Route, error)

	// Advance polls the walker's state machine with the animator position.
	Advance(ctx context.Context, id uuid.UUID, current maze.Vec3) (movement.Waypoint, bool, error)

	// Status reports the walker's movement state.
	Status(ctx context.Context, id uuid.UUID) (WalkerStatus, error)
}
