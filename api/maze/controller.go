// Package mazeapi exposes the current maze over HTTP.
package mazeapi

import (
	"errors"
	"net/http"

	"github.com/beka-birhanu/vinom-pathfinder/maze"
	"github.com/beka-birhanu/vinom-pathfinder/service"
	"github.com/beka-birhanu/vinom-pathfinder/service/i"
	"github.com/gin-gonic/gin"
)

const (
	formatQuery = "format"
	formatASCII = "ascii"
	formatPB    = "pb"
)

var (
	ErrMissingKeeper  = errors.New("maze keeper is required")
	ErrMissingEncoder = errors.New("maze encoder is required")
)

// MazeController serves maze generation, snapshots, routes and picking.
type MazeController struct {
	mazes   i.MazeKeeper
	encoder i.MazeEncoder
}

// NewMazeController initializes a MazeController.
func NewMazeController(mk i.MazeKeeper, enc i.MazeEncoder) (*MazeController, error) {
	if mk == nil {
		return nil, ErrMissingKeeper
	}
	if enc == nil {
		return nil, ErrMissingEncoder
	}
	return &MazeController{mazes: mk, encoder: enc}, nil
}

// RegisterPublic registers public routes.
func (mc *MazeController) RegisterPublic(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.POST("", mc.generate)
		mazes.GET("/current", mc.current)
		mazes.POST("/current/routes", mc.route)
		mazes.POST("/current/pick", mc.pick)
	}
}

// RegisterProtected registers protected routes.
func (mc *MazeController) RegisterProtected(route *gin.RouterGroup) {}

// generate replaces the current maze.
func (mc *MazeController) generate(ctx *gin.Context) {
	var request GenerateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, err := mc.mazes.Generate(request.Width, request.Height, request.Seed)
	if err != nil {
		ctx.JSON(StatusOf(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, NewMazeResponse(m))
}

// current writes the current maze as JSON, ASCII art or protobuf.
func (mc *MazeController) current(ctx *gin.Context) {
	m, err := mc.mazes.Current()
	if err != nil {
		ctx.JSON(StatusOf(err), gin.H{"error": err.Error()})
		return
	}

	switch ctx.Query(formatQuery) {
	case formatASCII:
		ctx.String(http.StatusOK, m.String())
	case formatPB:
		b, err := mc.encoder.MarshalMaze(m)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while encoding maze"})
			return
		}
		ctx.Data(http.StatusOK, mc.encoder.ContentType(), b)
	default:
		ctx.JSON(http.StatusOK, NewMazeResponse(m))
	}
}

// route answers a route query against the current maze.
func (mc *MazeController) route(ctx *gin.Context) {
	var request RouteRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	route, err := mc.mazes.Route(request.Start.Position(), request.Destination.Position())
	if err != nil {
		ctx.JSON(StatusOf(err), gin.H{"error": err.Error()})
		return
	}

	if ctx.Query(formatQuery) == formatPB {
		b, err := mc.encoder.MarshalRoute(route)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while encoding route"})
			return
		}
		ctx.Data(http.StatusOK, mc.encoder.ContentType(), b)
		return
	}

	ctx.JSON(http.StatusOK, NewRouteResponse(route))
}

// pick maps a world-space point to a cell.
func (mc *MazeController) pick(ctx *gin.Context) {
	var request PointDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pos, err := mc.mazes.Pick(request.Vec3())
	if err != nil {
		ctx.JSON(StatusOf(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, pos)
}

// StatusOf maps domain errors to HTTP status codes.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, maze.ErrInvalidGridSize),
		errors.Is(err, maze.ErrInvalidStart),
		errors.Is(err, maze.ErrInvalidDestination),
		errors.Is(err, maze.ErrOutOfBounds):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNoMaze),
		errors.Is(err, service.ErrWalkerNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrMazeReplaced):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
