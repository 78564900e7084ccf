package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/beka-birhanu/vinom-explorer/game"
	"github.com/joho/godotenv"
)

var ErrMissingEnv = errors.New("environment variable is not set")

// Config holds the application's configuration values.
type Config struct {
	HostIP            string   // Host IP for the server
	RESTPort          int      // Port for the REST API
	GinMode           string   // Mode for the Gin framework (e.g., release, debug, test)
	RedisAddr         string   // Address of the redis server holding live sessions
	RedisPassword     string   // Password for the redis server
	RedisDB           int      // Redis logical database
	SessionTTLSeconds int      // Idle lifetime of a stored session
	DBHost            string   // Hostname or IP address for the database
	DBPort            int      // Port number for the database
	DBUser            string   // Username for the database
	DBPassword        string   // Password for the database
	DBName            string   // Name of the database
	JWTSecret         string   // Secret key for JWT signing
	JWTIssuer         string   // Issuer claim for JWTs
	CORSOrigins       []string // Origins allowed by CORS and websocket upgrades
	StreamTickMS      int      // Animation tick cadence of websocket streams
	Engine            game.Settings
}

// Load reads the server configuration from the environment, after loading
// a .env file if one is present.
func Load() (Config, error) {
	loadDotEnv()

	engine, err := LoadEngine()
	if err != nil {
		return Config{}, err
	}

	c := Config{
		HostIP:        getEnvWithDefault("HOST_IP", "0.0.0.0"),
		GinMode:       getEnvWithDefault("GIN_MODE", "release"),
		RedisAddr:     getEnvWithDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnvWithDefault("REDIS_PASSWORD", ""),
		DBHost:        getEnvWithDefault("DB_HOST", "localhost"),
		DBUser:        getEnvWithDefault("DB_USER", ""),
		DBPassword:    getEnvWithDefault("DB_PASS", ""),
		DBName:        getEnvWithDefault("DB_NAME", "explorer"),
		JWTIssuer:     getEnvWithDefault("JWT_ISSUER", "vinom-explorer"),
		Engine:        engine,
	}

	ints := []struct {
		key string
		def int
		dst *int
	}{
		{"REST_PORT", 8080, &c.RESTPort},
		{"REDIS_DB", 0, &c.RedisDB},
		{"SESSION_TTL_SECONDS", 3600, &c.SessionTTLSeconds},
		{"DB_PORT", 27017, &c.DBPort},
		{"STREAM_TICK_MS", 50, &c.StreamTickMS},
	}
	for _, v := range ints {
		if *v.dst, err = getEnvAsIntWithDefault(v.key, v.def); err != nil {
			return Config{}, err
		}
	}

	c.CORSOrigins = getEnvAsListWithDefault("CORS_ORIGINS", []string{"*"})

	if c.JWTSecret, err = mustGetEnv("JWT_SECRET"); err != nil {
		return Config{}, err
	}
	return c, nil
}

// LoadEngine reads the engine tuning, falling back to the stock values for
// unset variables.
func LoadEngine() (game.Settings, error) {
	loadDotEnv()

	s := game.DefaultSettings()
	floats := []struct {
		key string
		dst *float64
	}{
		{"STEP_LENGTH", &s.StepLength},
		{"ROTATE_STEP", &s.RotateStep},
		{"WALL_THICKNESS", &s.WallThickness},
		{"COLLISION_THRESHOLD", &s.CollisionThreshold},
		{"EYE_HEIGHT", &s.EyeHeight},
		{"OVERHEAD_HEIGHT", &s.OverheadHeight},
		{"ANIMATION_STEP", &s.AnimationStep},
	}
	for _, v := range floats {
		value, err := getEnvAsFloatWithDefault(v.key, *v.dst)
		if err != nil {
			return game.Settings{}, err
		}
		*v.dst = value
	}

	if err := s.Validate(); err != nil {
		return game.Settings{}, fmt.Errorf("engine settings: %w", err)
	}
	return s, nil
}

// MongoURI builds the connection string for the run database.
func (c Config) MongoURI() string {
	if c.DBUser == "" {
		return fmt.Sprintf("mongodb://%s:%v", c.DBHost, c.DBPort)
	}
	return fmt.Sprintf("mongodb://%s:%s@%s:%v", c.DBUser, c.DBPassword, c.DBHost, c.DBPort)
}

// loadDotEnv loads the .env file if available.
func loadDotEnv() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[APP] [INFO] .env file could not be loaded: %v", err)
	}
}

// mustGetEnv retrieves the value of an environment variable or returns an error if not set.
func mustGetEnv(key string) (string, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return "", fmt.Errorf("%w: %s", ErrMissingEnv, key)
	}
	return value, nil
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsListWithDefault retrieves a comma separated environment variable or returns a default value if not set.
func getEnvAsListWithDefault(key string, defaultValue []string) []string {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	var values []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}

// getEnvAsIntWithDefault retrieves an integer environment variable or returns a default value if not set.
func getEnvAsIntWithDefault(key string, defaultValue int) (int, error) {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("environment variable %s must be an integer: %w", key, err)
	}
	return value, nil
}

// getEnvAsFloatWithDefault retrieves a float environment variable or returns a default value if not set.
func getEnvAsFloatWithDefault(key string, defaultValue float64) (float64, error) {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return 0, fmt.Errorf("environment variable %s must be a number: %w", key, err)
	}
	return value, nil
}
