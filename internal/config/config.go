package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const PROD_STRING = "prod"

// Session store backends.
const (
	SessionStoreMemory   = "memory"
	SessionStoreRedis    = "redis"
	SessionStorePostgres = "postgres"
)

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	HTTPAddr     string
	LogLevel     string

	BackendBaseURL string
	BackendTimeout time.Duration
	SpacesEndpoint string

	SessionSecret string
	SessionTTL    time.Duration
	SessionStore  string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	DBDSN         string

	QueryStaleTime time.Duration
	QueryGCTime    time.Duration
	Location       *time.Location

	AMQPURL       string
	AuditExchange string

	MediaCacheDir string
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		log.Printf("failed to load .env file: %v", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (*Config, error) {
	var err error
	cfg := &Config{}

	// Application environment (default: dev)
	cfg.IsProduction = getEnv("APP_ENV", "dev") == PROD_STRING
	cfg.ProdOrigins = getEnv("PROD_ORIGINS", "")
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")

	// Backend base URL is resolved once, here.
	cfg.BackendBaseURL = strings.TrimRight(os.Getenv("BACKEND_BASE_URL"), "/")
	if cfg.BackendBaseURL == "" {
		return nil, fmt.Errorf("BACKEND_BASE_URL is required")
	}
	if cfg.BackendTimeout, err = getEnvAsDuration("BACKEND_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}
	cfg.SpacesEndpoint = strings.TrimRight(getEnv("SPACES_ENDPOINT", ""), "/")

	// Session secret is required for signing session cookies
	cfg.SessionSecret = os.Getenv("SESSION_SECRET")
	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is required")
	}
	if cfg.SessionTTL, err = getEnvAsDuration("SESSION_TTL", 12*time.Hour); err != nil {
		return nil, err
	}

	cfg.SessionStore = strings.ToLower(getEnv("SESSION_STORE", SessionStoreMemory))
	switch cfg.SessionStore {
	case SessionStoreMemory:
	case SessionStoreRedis:
		cfg.RedisAddr = getEnv("REDIS_ADDR", "localhost:6379")
	case SessionStorePostgres:
		cfg.DBDSN = os.Getenv("DB_DSN")
		if cfg.DBDSN == "" {
			return nil, fmt.Errorf("DB_DSN is required when SESSION_STORE=%s", SessionStorePostgres)
		}
	default:
		return nil, fmt.Errorf("invalid SESSION_STORE %q: want memory, redis or postgres", cfg.SessionStore)
	}
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	if cfg.RedisDB, err = getEnvAsInt("REDIS_DB", 0); err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	if cfg.QueryStaleTime, err = getEnvAsDuration("QUERY_STALE_TIME", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.QueryGCTime, err = getEnvAsDuration("QUERY_GC_TIME", 5*time.Minute); err != nil {
		return nil, err
	}

	// Calendar days for the date filter are taken in this zone.
	cfg.Location, err = time.LoadLocation(getEnv("TIMEZONE", "Local"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}

	// Audit events go to the log when AMQP_URL is empty.
	cfg.AMQPURL = getEnv("AMQP_URL", "")
	cfg.AuditExchange = getEnv("AUDIT_EXCHANGE", "admin.audit")

	cfg.MediaCacheDir = getEnv("MEDIA_CACHE_DIR", "./data/thumbnails")

	return cfg, nil
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer.
// It returns the default value if the variable is not set.
// It returns an error if the variable is set but is not a valid integer.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, valStr, err)
	}

	return val, nil
}

// getEnvAsDuration parses values such as "30s" or "12h".
func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := time.ParseDuration(valStr)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return val, nil
}

// Origins splits PROD_ORIGINS on commas.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.ProdOrigins, ",") {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			out = append(out, o)
		}
	}
	return out
}
