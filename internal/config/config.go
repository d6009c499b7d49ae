// Package config loads service settings from the environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	StoreMongo  = "mongo"
	StoreSQLite = "sqlite"
)

type Config struct {
	MongoURI string
	MongoDB  string
	// RedisAddr is host:port; empty runs with in-process caches
	RedisAddr string
	HTTPPort  string

	StoreDriver string
	SQLitePath  string

	JWTSecret          string
	SupervisorPassword string
	SessionTTL         time.Duration

	// InstrumentPath overrides the embedded instrument when set
	InstrumentPath string

	CORS CORSConfig
}

type CORSConfig struct {
	AllowedOrigins string
	AllowedMethods string
	AllowedHeaders string
}

func Load() (*Config, error) {
	cfg := &Config{
		MongoURI:           getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:            getEnv("MONGO_DB", "leadstyle"),
		RedisAddr:          strings.TrimPrefix(os.Getenv("REDIS_URI"), "redis://"),
		HTTPPort:           getEnv("PORT", "8080"),
		StoreDriver:        strings.ToLower(getEnv("STORE_DRIVER", StoreMongo)),
		SQLitePath:         getEnv("SQLITE_PATH", "data/leadstyle.db"),
		JWTSecret:          getEnv("JWT_SECRET", "super-secret-key-change-in-production"),
		SupervisorPassword: getEnv("SUPERVISOR_PASSWORD", "admin123"),
		InstrumentPath:     os.Getenv("INSTRUMENT_PATH"),
		CORS: CORSConfig{
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			AllowedMethods: getEnv("CORS_ALLOWED_METHODS", "GET, POST, PUT, DELETE, OPTIONS"),
			AllowedHeaders: getEnv("CORS_ALLOWED_HEADERS", "Content-Type, Authorization"),
		},
	}

	ttl, err := time.ParseDuration(getEnv("SESSION_TTL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("SESSION_TTL: %w", err)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive, got %s", ttl)
	}
	cfg.SessionTTL = ttl

	switch cfg.StoreDriver {
	case StoreMongo, StoreSQLite:
	default:
		return nil, fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", StoreMongo, StoreSQLite, cfg.StoreDriver)
	}
	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
