// Package walkerapi provides structures for walker registration and movement requests.
package walkerapi

import (
	mazeapi "github.com/beka-birhanu/vinom-pathfinder/api/maze"
	"github.com/google/uuid"
)

// RegisterResponse carries a new walker and the token identifying it.
type RegisterResponse struct {
	ID    uuid.UUID `json:"id"`
	Token string    `json:"token"`
}

// RouteRequest asks to route the walker from its current cell.
type RouteRequest struct {
	Destination *mazeapi.PositionDTO `json:"destination" binding:"required"`
}

// AdvanceRequest reports the animator's current position.
type AdvanceRequest = mazeapi.PointDTO
