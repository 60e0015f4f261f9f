// Package walkerapi drives walkers through the current maze.
package walkerapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	mazeapi "github.com/beka-birhanu/vinom-pathfinder/api/maze"
	"github.com/beka-birhanu/vinom-pathfinder/api/identity"
	"github.com/beka-birhanu/vinom-pathfinder/service/i"
	"github.com/gin-gonic/gin"
)

const lockTimeout = 2 * time.Second

var (
	ErrMissingWalkers   = errors.New("walker manager is required")
	ErrMissingTokenizer = errors.New("tokenizer is required")
)

// WalkerController manages walker registration and movement.
type WalkerController struct {
	walkers   i.WalkerManager
	tokenizer i.Tokenizer
	tokenTTL  time.Duration
}

// NewWalkerController initializes a WalkerController. Issued tokens expire after tokenTTL.
func NewWalkerController(wm i.WalkerManager, t i.Tokenizer, tokenTTL time.Duration) (*WalkerController, error) {
	if wm == nil {
		return nil, ErrMissingWalkers
	}
	if t == nil {
		return nil, ErrMissingTokenizer
	}
	return &WalkerController{
		walkers:   wm,
		tokenizer: t,
		tokenTTL:  tokenTTL,
	}, nil
}

// RegisterPublic registers public routes.
func (wc *WalkerController) RegisterPublic(route *gin.RouterGroup) {
	route.POST("/walkers", wc.register)
}

// RegisterProtected registers protected routes.
func (wc *WalkerController) RegisterProtected(route *gin.RouterGroup) {
	me := route.Group("/walkers/me")
	{
		me.GET("", wc.status)
		me.POST("/route", wc.route)
		me.POST("/advance", wc.advance)
	}
}

// register creates a walker and issues its token.
func (wc *WalkerController) register(ctx *gin.Context) {
	id, err := wc.walkers.Register(ctx)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while registering walker"})
		return
	}

	tok, err := wc.tokenizer.WalkerToken(id, wc.tokenTTL)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while issuing token"})
		return
	}

	ctx.JSON(http.StatusCreated, &RegisterResponse{ID: id, Token: tok})
}

// route loads a route from the walker's cell to the requested destination.
func (wc *WalkerController) route(ctx *gin.Context) {
	id, ok := identity.WalkerID(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	var request RouteRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()
	route, err := wc.walkers.RouteTo(timeoutCtx, id, request.Destination.Position())
	if err != nil {
		ctx.JSON(mazeapi.StatusOf(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, mazeapi.NewRouteResponse(route))
}

// advance polls the walker's movement with the animator position.
func (wc *WalkerController) advance(ctx *gin.Context) {
	id, ok := identity.WalkerID(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	var request AdvanceRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()
	waypoint, moving, err := wc.walkers.Advance(timeoutCtx, id, request.Vec3())
	if err != nil {
		ctx.JSON(mazeapi.StatusOf(err), gin.H{"error": err.Error()})
		return
	}
	if !moving {
		ctx.Status(http.StatusNoContent)
		return
	}

	ctx.JSON(http.StatusOK, waypoint)
}

// status reports the walker's movement state.
func (wc *WalkerController) status(ctx *gin.Context) {
	id, ok := identity.WalkerID(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()
	status, err := wc.walkers.Status(timeoutCtx, id)
	if err != nil {
		ctx.JSON(mazeapi.StatusOf(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, status)
}
