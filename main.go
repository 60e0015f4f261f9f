package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/beka-birhanu/vinom-pathfinder/api"
	api_i "github.com/beka-birhanu/vinom-pathfinder/api/i"
	"github.com/beka-birhanu/vinom-pathfinder/api/identity"
	mazeapi "github.com/beka-birhanu/vinom-pathfinder/api/maze"
	walkerapi "github.com/beka-birhanu/vinom-pathfinder/api/walker"
	"github.com/beka-birhanu/vinom-pathfinder/config"
	"github.com/beka-birhanu/vinom-pathfinder/infrastruture/lock"
	"github.com/beka-birhanu/vinom-pathfinder/infrastruture/token"
	"github.com/beka-birhanu/vinom-pathfinder/logger"
	pb "github.com/beka-birhanu/vinom-pathfinder/pb_encoder"
	"github.com/beka-birhanu/vinom-pathfinder/service"
	"github.com/beka-birhanu/vinom-pathfinder/service/i"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Global variables for dependencies
var (
	redisClient      *redis.Client
	locker           i.Locker
	mazeKeeper       *service.MazeKeeper
	walkerManager    i.WalkerManager
	jwtTokenizer     i.Tokenizer
	mazeController   api_i.Controller
	walkerController api_i.Controller
	router           *api.Router
	appLogger        i.Logger
)

func newLogger(prefix string, c config.Color) i.Logger {
	l, err := logger.New(prefix, c, os.Stdout)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Creating %s logger: %v", prefix, err)
	}
	return l
}

func initLocker(ctx context.Context) {
	if config.Envs.RedisAddr == "" {
		locker = lock.NewLocalLocker()
		appLogger.Info("In-process walker locks initialized")
		return
	}

	redisClient = redis.NewClient(&redis.Options{
		Addr:     config.Envs.RedisAddr,
		Password: config.Envs.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}

	var err error
	locker, err = lock.NewRedisLocker(redisClient, config.Envs.RedisLockTTL, newLogger("LOCK", config.ColorYellow))
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating redis locker: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Redis walker locks initialized")
}

func initMazeKeeper() {
	var err error
	mazeKeeper, err = service.NewMazeKeeper(&service.MazeKeeperConfig{
		Seed:   config.Envs.MazeSeed,
		Logger: newLogger("MAZE", config.ColorCyan),
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze keeper: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Maze keeper initialized")
}

func initWalkerManager() {
	var err error
	walkerManager, err = service.NewWalkerManager(&service.WalkerManagerConfig{
		Mazes:     mazeKeeper,
		Locker:    locker,
		Tolerance: config.Envs.ArrivalTolerance,
		Logger:    newLogger("WALKER", config.ColorMagenta),
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating walker manager: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Walker manager initialized")
}

func initStartupMaze() {
	if _, err := mazeKeeper.Generate(config.Envs.MazeWidth, config.Envs.MazeHeight, config.Envs.MazeSeed); err != nil {
		appLogger.Error(fmt.Sprintf("Generating startup maze: %v", err))
		os.Exit(1)
	}
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initControllers() {
	var err error
	mazeController, err = mazeapi.NewMazeController(mazeKeeper, &pb.Protobuf{})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze controller: %v", err))
		os.Exit(1)
	}

	ttl := time.Duration(config.Envs.TokenTTLMinutes) * time.Minute
	walkerController, err = walkerapi.NewWalkerController(walkerManager, jwtTokenizer, ttl)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating walker controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Controllers initialized")
}

func initRouter(t i.Tokenizer) {
	gin.SetMode(config.Envs.GinMode)
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{mazeController, walkerController},
		AuthorizationMiddleware: identity.Authoriz(t),
	})
	appLogger.Info("Router initialized")
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	appLogger = newLogger("APP", config.ColorGreen)

	initLocker(ctx)
	if redisClient != nil {
		defer redisClient.Close()
	}

	initMazeKeeper()
	initWalkerManager()
	initStartupMaze()
	initJWTTokenizer()
	initControllers()
	initRouter(jwtTokenizer)

	if err := router.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		os.Exit(1)
	}
}
