package config

import (
	"errors"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Redis Config
const REDIS_DB_ADDRESS = "redis:6379"
const REDIS_DB_PASSWORD = ""
const REDIS_DB = 0

// HTTP server config
const SERVER_ADDRESS = ":8080"
const SERVER_SHUTDOWN_TIMEOUT_SECONDS = 5

// Rate limiting, per client IP
const RATE_LIMIT_PER_SECOND = 5
const RATE_LIMIT_BURST = 10

// Calendar janitor: drops date specific slots of past days
const CALENDAR_JANITOR_SCHEDULE_MINUTES = 60 * 6

// Expo push notifications
const EXPO_PUSH_ENDPOINT_BASE = "https://exp.host/--/api/v2"

// Admin JWT secret used when ADMIN_JWT_SECRET is unset outside prod.
const ADMIN_JWT_DEV_SECRET = "arena-pro-dev-secret"

const PROD_ENV = "prod"

var ErrMissingAdminSecret = errors.New("ADMIN_JWT_SECRET must be set in prod")

// Resources file paths
const RESOURCES_PATH_PREFIX = "resources"
const VENUES_RESOURCE = "venues.json"
const VENUE_STATIC_RESOURCE = "venue_static.json"
const BOOKING_STATIC_RESOURCE = "booking_static.json"

// Settings is the runtime configuration. Every field starts from the constants
// above and may be overridden from the environment or a .env file.
type Settings struct {
	Env string

	RedisAddress  string
	RedisPassword string
	RedisDB       int

	ServerAddress   string
	ShutdownTimeout time.Duration

	RateLimitPerSecond float64
	RateLimitBurst     int
	AllowedOrigins     []string

	AdminJWTSecret string

	ExpoEndpoint    string
	ExpoAccessToken string

	JanitorInterval time.Duration
	SeedVenuesPath  string
}

// Load reads .env (if present) and the process environment.
func Load() *Settings {
	if err := godotenv.Load(); err != nil {
		log.Println("[Config] No .env file found; using system environment")
	}

	env := getEnv("APP_ENV", PROD_ENV)
	adminSecretFallback := ADMIN_JWT_DEV_SECRET
	if env == PROD_ENV {
		adminSecretFallback = ""
	}

	return &Settings{
		Env:                env,
		RedisAddress:       getEnv("REDIS_ADDRESS", REDIS_DB_ADDRESS),
		RedisPassword:      getEnv("REDIS_PASSWORD", REDIS_DB_PASSWORD),
		RedisDB:            getEnvInt("REDIS_DB", REDIS_DB),
		ServerAddress:      getEnv("SERVER_ADDRESS", SERVER_ADDRESS),
		ShutdownTimeout:    time.Duration(getEnvInt("SERVER_SHUTDOWN_TIMEOUT_SECONDS", SERVER_SHUTDOWN_TIMEOUT_SECONDS)) * time.Second,
		RateLimitPerSecond: getEnvFloat("RATE_LIMIT_PER_SECOND", RATE_LIMIT_PER_SECOND),
		RateLimitBurst:     getEnvInt("RATE_LIMIT_BURST", RATE_LIMIT_BURST),
		AllowedOrigins:     getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		AdminJWTSecret:     getEnv("ADMIN_JWT_SECRET", adminSecretFallback),
		ExpoEndpoint:       getEnv("EXPO_PUSH_ENDPOINT", EXPO_PUSH_ENDPOINT_BASE),
		ExpoAccessToken:    getEnv("EXPO_ACCESS_TOKEN", ""),
		JanitorInterval:    time.Duration(getEnvInt("CALENDAR_JANITOR_SCHEDULE_MINUTES", CALENDAR_JANITOR_SCHEDULE_MINUTES)) * time.Minute,
		SeedVenuesPath:     getEnv("SEED_VENUES_PATH", ""),
	}
}

// Validate rejects settings the server must not start with.
func (s *Settings) Validate() error {
	if s.AdminJWTSecret == "" {
		return ErrMissingAdminSecret
	}
	return nil
}

func (s *Settings) IsProd() bool {
	return s.Env == PROD_ENV
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[Config] Invalid integer for %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("[Config] Invalid number for %s=%q, using %v", key, v, fallback)
		return fallback
	}
	return f
}

func getEnvList(key string, fallback []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// BaseDir returns the absolute path of the project root directory
func BaseDir() string {
	// Check if PROJECT_ROOT is set
	if root := os.Getenv("PROJECT_ROOT"); root != "" {
		return root
	}

	// Default to the current working directory
	wd, err := os.Getwd()
	if err != nil {
		panic("Unable to determine working directory: " + err.Error())
	}

	return wd
}

func GetResourcePath(resource_file string) string {
	return filepath.Join(BaseDir(), RESOURCES_PATH_PREFIX, resource_file)
}
