package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-pathfinder/api"
	"github.com/beka-birhanu/vinom-pathfinder/api/i"
	"github.com/beka-birhanu/vinom-pathfinder/api/identity"
	mazeapi "github.com/beka-birhanu/vinom-pathfinder/api/maze"
	walkerapi "github.com/beka-birhanu/vinom-pathfinder/api/walker"
	"github.com/beka-birhanu/vinom-pathfinder/infrastruture/lock"
	"github.com/beka-birhanu/vinom-pathfinder/infrastruture/token"
	"github.com/beka-birhanu/vinom-pathfinder/logger"
	"github.com/beka-birhanu/vinom-pathfinder/maze"
	"github.com/beka-birhanu/vinom-pathfinder/movement"
	pb "github.com/beka-birhanu/vinom-pathfinder/pb_encoder"
	"github.com/beka-birhanu/vinom-pathfinder/service"
	service_i "github.com/beka-birhanu/vinom-pathfinder/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gookit/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "test-secret"
	testIssuer = "vinom-pathfinder-test"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type server struct {
	handler http.Handler
	keeper  *service.MazeKeeper
	tokens  *token.JwtService
}

func newServer(t *testing.T) *server {
	t.Helper()
	l, err := logger.New("TEST", color.FgGreen, io.Discard)
	require.NoError(t, err)

	keeper, err := service.NewMazeKeeper(&service.MazeKeeperConfig{Seed: 1, Logger: l})
	require.NoError(t, err)
	walkers, err := service.NewWalkerManager(&service.WalkerManagerConfig{
		Mazes:  keeper,
		Locker: lock.NewLocalLocker(),
		Logger: l,
	})
	require.NoError(t, err)

	tokens := token.NewJwtService(testSecret, testIssuer)
	mazeController, err := mazeapi.NewMazeController(keeper, &pb.Protobuf{})
	require.NoError(t, err)
	walkerController, err := walkerapi.NewWalkerController(walkers, tokens, time.Hour)
	require.NoError(t, err)

	router := api.NewRouter(api.Config{
		BaseURL:                 "/api",
		Controllers:             []i.Controller{mazeController, walkerController},
		AuthorizationMiddleware: identity.Authoriz(tokens),
	})
	return &server{handler: router.Handler(), keeper: keeper, tokens: tokens}
}

func (s *server) do(t *testing.T, method, path string, body interface{}, bearer string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, "/api/v1"+path, reader)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func (s *server) generate(t *testing.T, width, height int) *mazeapi.MazeResponse {
	t.Helper()
	w := s.do(t, http.MethodPost, "/mazes", gin.H{"width": width, "height": height, "seed": 7}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp mazeapi.MazeResponse
	decode(t, w, &resp)
	return &resp
}

func TestCurrentMazeBeforeGenerate(t *testing.T) {
	s := newServer(t)
	w := s.do(t, http.MethodGet, "/mazes/current", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPost, "/mazes/current/routes", gin.H{
		"start":       gin.H{"x": 0, "y": 0},
		"destination": gin.H{"x": 0, "y": 0},
	}, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGenerateMaze(t *testing.T) {
	s := newServer(t)
	resp := s.generate(t, 5, 4)

	current, err := s.keeper.Current()
	require.NoError(t, err)
	assert.Equal(t, current.ID(), resp.ID)
	assert.Equal(t, 5, resp.Width)
	assert.Equal(t, 4, resp.Height)
	assert.Equal(t, maze.Position{X: 0, Y: 0}, resp.Entrance)
	assert.Equal(t, maze.Position{X: 4, Y: 3}, resp.Exit)
	require.Len(t, resp.Cells, 5)
	for _, column := range resp.Cells {
		assert.Len(t, column, 4)
	}
	assert.Equal(t, current.Cells(), resp.Cells)

	for _, body := range []gin.H{
		{"width": 0, "height": 4},
		{"width": 4},
		{"width": 2000, "height": 4},
	} {
		w := s.do(t, http.MethodPost, "/mazes", body, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %v", body)
	}
}

func TestCurrentMazeFormats(t *testing.T) {
	s := newServer(t)
	s.generate(t, 4, 3)
	current, err := s.keeper.Current()
	require.NoError(t, err)

	t.Run("json", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/mazes/current", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		var resp mazeapi.MazeResponse
		decode(t, w, &resp)
		assert.Equal(t, current.ID(), resp.ID)
	})

	t.Run("ascii", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/mazes/current?format=ascii", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, current.String(), w.Body.String())
	})

	t.Run("protobuf", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/mazes/current?format=pb", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/x-protobuf", w.Header().Get("Content-Type"))

		decoded, err := (&pb.Protobuf{}).UnmarshalMaze(w.Body.Bytes())
		require.NoError(t, err)
		assert.Equal(t, current.ID(), decoded.ID())
		assert.Equal(t, current.Walls(), decoded.Walls())
	})
}

func TestRouteEndpoint(t *testing.T) {
	s := newServer(t)
	s.generate(t, 6, 6)
	current, err := s.keeper.Current()
	require.NoError(t, err)
	want, err := maze.NewRouter(current).Route(maze.Position{X: 0, Y: 0}, maze.Position{X: 5, Y: 5})
	require.NoError(t, err)

	body := gin.H{
		"start":       gin.H{"x": 0, "y": 0},
		"destination": gin.H{"x": 5, "y": 5},
	}

	w := s.do(t, http.MethodPost, "/mazes/current/routes", body, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp mazeapi.RouteResponse
	decode(t, w, &resp)
	assert.Equal(t, len(want), resp.Length)
	assert.Equal(t, []maze.Cell(want), resp.Cells)

	w = s.do(t, http.MethodPost, "/mazes/current/routes?format=pb", body, "")
	require.Equal(t, http.StatusOK, w.Code)
	positions, err := (&pb.Protobuf{}).UnmarshalRoute(w.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, want.Positions(), positions)

	tests := []struct {
		name string
		body gin.H
	}{
		{"start out of bounds", gin.H{"start": gin.H{"x": -1, "y": 0}, "destination": gin.H{"x": 1, "y": 1}}},
		{"destination out of bounds", gin.H{"start": gin.H{"x": 0, "y": 0}, "destination": gin.H{"x": 6, "y": 0}}},
		{"missing destination", gin.H{"start": gin.H{"x": 0, "y": 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, http.MethodPost, "/mazes/current/routes", tt.body, "")
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestPickEndpoint(t *testing.T) {
	s := newServer(t)
	s.generate(t, 5, 4)

	w := s.do(t, http.MethodPost, "/mazes/current/pick", gin.H{"x": 0.4, "y": 3, "z": -1.6}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var pos maze.Position
	decode(t, w, &pos)
	assert.Equal(t, maze.Position{X: 2, Y: 0}, pos)

	w = s.do(t, http.MethodPost, "/mazes/current/pick", gin.H{"x": 100, "y": 0, "z": 0}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newServer(t)

	w := s.do(t, http.MethodGet, "/walkers/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodGet, "/walkers/me", nil, "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	foreign, err := token.NewJwtService(testSecret, "someone-else").WalkerToken(uuid.New(), time.Hour)
	require.NoError(t, err)
	w = s.do(t, http.MethodGet, "/walkers/me", nil, foreign)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	unknown, err := s.tokens.WalkerToken(uuid.New(), time.Hour)
	require.NoError(t, err)
	w = s.do(t, http.MethodGet, "/walkers/me", nil, unknown)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWalkerFollowsRoute(t *testing.T) {
	s := newServer(t)

	w := s.do(t, http.MethodPost, "/walkers", nil, "")
	require.Equal(t, http.StatusCreated, w.Code)
	var reg walkerapi.RegisterResponse
	decode(t, w, &reg)
	require.NotEmpty(t, reg.Token)

	// No maze yet.
	w = s.do(t, http.MethodPost, "/walkers/me/route", gin.H{"destination": gin.H{"x": 1, "y": 1}}, reg.Token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	s.generate(t, 4, 4)

	w = s.do(t, http.MethodPost, "/walkers/me/advance", gin.H{"x": 0, "y": 0, "z": 0}, reg.Token)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(t, http.MethodPost, "/walkers/me/route", gin.H{"destination": gin.H{"x": 3, "y": 3}}, reg.Token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var route mazeapi.RouteResponse
	decode(t, w, &route)
	require.NotZero(t, route.Length)

	w = s.do(t, http.MethodGet, "/walkers/me", nil, reg.Token)
	require.Equal(t, http.StatusOK, w.Code)
	var status service_i.WalkerStatus
	decode(t, w, &status)
	assert.Equal(t, reg.ID, status.ID)
	assert.Equal(t, movement.Routing.String(), status.State)
	assert.Equal(t, route.Length, status.Remaining)

	pos := maze.Vec3{X: -50, Z: -50}
	var visited []maze.Position
	for n := 0; n <= route.Length; n++ {
		w = s.do(t, http.MethodPost, "/walkers/me/advance", pos, reg.Token)
		if w.Code == http.StatusNoContent {
			break
		}
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var wp movement.Waypoint
		decode(t, w, &wp)
		visited = append(visited, wp.Cell.Position)
		pos = wp.Target
	}

	require.Len(t, visited, route.Length)
	for n, c := range route.Cells {
		assert.Equal(t, c.Position, visited[n])
	}

	w = s.do(t, http.MethodGet, "/walkers/me", nil, reg.Token)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &status)
	assert.Equal(t, movement.Idle.String(), status.State)
	assert.Equal(t, maze.Position{X: 3, Y: 3}, status.Cell)
	assert.Nil(t, status.Target)

	w = s.do(t, http.MethodPost, "/walkers/me/route", gin.H{"destination": gin.H{"x": 9, "y": 0}}, reg.Token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
