package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP           string  // Host IP for the server
	RESTPort         int     // Port for the REST API
	GinMode          string  // Mode for the Gin framework (e.g., release, debug, test)
	JWTSecret        string  // Secret key for JWT signing
	JWTIssuer        string  // Issuer claim for JWTs
	TokenTTLMinutes  int     // Lifetime of walker tokens
	MazeWidth        int     // Width of the maze generated on startup
	MazeHeight       int     // Height of the maze generated on startup
	MazeSeed         int64   // Seed for the startup maze, 0 for time based
	ArrivalTolerance float64 // Distance under which a walker has reached its waypoint
	RedisAddr        string  // Redis address for walker locks, empty for in-process locks
	RedisPassword    string  // Password for Redis
	RedisLockTTL     int     // Expiry in seconds of a walker lock held in Redis
}

// Envs holds the application's configuration loaded from environment variables.
var Envs = initConfig()

// initConfig initializes and returns the application configuration.
// It loads environment variables from a .env file.
func initConfig() Config {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	return Config{
		HostIP:           mustGetEnv("HOST_IP"),
		RESTPort:         mustGetEnvAsInt("REST_PORT"),
		GinMode:          getEnvWithDefault("GIN_MODE", "release"),
		JWTSecret:        mustGetEnv("JWT_SECRET"),
		JWTIssuer:        mustGetEnv("JWT_ISSUER"),
		TokenTTLMinutes:  getEnvAsIntWithDefault("TOKEN_TTL_MINUTES", 24*60),
		MazeWidth:        getEnvAsIntWithDefault("MAZE_WIDTH", 10),
		MazeHeight:       getEnvAsIntWithDefault("MAZE_HEIGHT", 10),
		MazeSeed:         int64(getEnvAsIntWithDefault("MAZE_SEED", 0)),
		ArrivalTolerance: getEnvAsFloatWithDefault("ARRIVAL_TOLERANCE", 0.2),
		RedisAddr:        getEnvWithDefault("REDIS_ADDR", ""),
		RedisPassword:    getEnvWithDefault("REDIS_PASSWORD", ""),
		RedisLockTTL:     getEnvAsIntWithDefault("REDIS_LOCK_TTL", 5),
	}
}

// mustGetEnv retrieves the value of an environment variable or logs a fatal error if not set.
func mustGetEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		log.Fatalf("[APP] [FATAL] Environment variable %s is not set", key)
	}
	return value
}

// mustGetEnvAsInt retrieves the value of an environment variable as an integer or logs a fatal error if not set or cannot be parsed.
func mustGetEnvAsInt(key string) int {
	valueStr := mustGetEnv(key)
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsIntWithDefault parses an optional integer variable, failing loudly on malformed values.
func getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}

// getEnvAsFloatWithDefault parses an optional float variable, failing loudly on malformed values.
func getEnvAsFloatWithDefault(key string, defaultValue float64) float64 {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be a number: %v", key, err)
	}
	return value
}
