package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	defaultGinMode          = "release"
	defaultCacheTTLSeconds  = 300
	defaultFollowStepBudget = 10000
)

// Config holds the application's configuration values.
type Config struct {
	HostIP           string // Host IP for the server
	RESTPort         int    // Port for the REST API
	GinMode          string // Mode for the Gin framework (e.g., release, debug, test)
	DBHost           string // Hostname or IP address for the database
	DBPort           int    // Port number for the database
	DBUser           string // Username for the database
	DBPassword       string // Password for the database
	DBName           string // Name of the database
	RedisAddr        string // host:port of the result cache
	RedisPassword    string // Password for the result cache, may be empty
	CacheTTLSeconds  int    // Lifetime of cached solver results
	JWTSecret        string // Secret key for JWT signing
	JWTIssuer        string // Issuer claim for JWTs
	FollowStepBudget int    // Maximum steps a wall follower run may take
}

// Load reads the configuration from the environment.
// Values from a .env file are loaded first when the file exists.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	e := &envReader{}
	c := &Config{
		HostIP:           e.mustGet("HOST_IP"),
		RESTPort:         e.mustGetInt("REST_PORT"),
		GinMode:          getEnvWithDefault("GIN_MODE", defaultGinMode),
		DBHost:           e.mustGet("DB_HOST"),
		DBPort:           e.mustGetInt("DB_PORT"),
		DBUser:           e.mustGet("DB_USER"),
		DBPassword:       e.mustGet("DB_PASS"),
		DBName:           e.mustGet("DB_NAME"),
		RedisAddr:        e.mustGet("REDIS_ADDR"),
		RedisPassword:    getEnvWithDefault("REDIS_PASSWORD", ""),
		CacheTTLSeconds:  e.getIntWithDefault("CACHE_TTL_SECONDS", defaultCacheTTLSeconds),
		JWTSecret:        e.mustGet("JWT_SECRET"),
		JWTIssuer:        e.mustGet("JWT_ISSUER"),
		FollowStepBudget: e.getIntWithDefault("FOLLOW_STEP_BUDGET", defaultFollowStepBudget),
	}
	if e.err != nil {
		return nil, e.err
	}
	return c, nil
}

// envReader keeps the first lookup error so Load can report it once.
type envReader struct {
	err error
}

// mustGet retrieves the value of a required environment variable.
func (e *envReader) mustGet(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists && e.err == nil {
		e.err = fmt.Errorf("environment variable %s is not set", key)
	}
	return value
}

// mustGetInt retrieves a required environment variable as an integer.
func (e *envReader) mustGetInt(key string) int {
	valueStr := e.mustGet(key)
	if valueStr == "" {
		return 0
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil && e.err == nil {
		e.err = fmt.Errorf("environment variable %s must be an integer: %w", key, err)
	}
	return value
}

// getIntWithDefault retrieves an optional integer environment variable.
func (e *envReader) getIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil && e.err == nil {
		e.err = fmt.Errorf("environment variable %s must be an integer: %w", key, err)
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
