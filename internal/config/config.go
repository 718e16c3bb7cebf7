package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers
const (
	StorageMemory = "memory"
	StorageDisk   = "disk"
	StorageGridFS = "gridfs"
)

// Auth providers
const (
	AuthProviderAuthorizer = "authorizer"
	AuthProviderJWT        = "jwt"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port          string
	PublicBaseURL string
	BodyLimitMB   int

	// Database configuration
	DBType            string // mysql, postgres, sqlite, sqlite-go, sqlserver
	DBHost            string
	DBPort            string
	DBDatabase        string
	DBUser            string
	DBPassword        string
	DBConnectionLimit int
	DBLogLevel        string

	// Object storage
	StorageDriver string
	StorageDir    string
	MongoURI      string
	MongoDatabase string

	// Identity
	AuthProvider  string
	AuthJWTSecret string
	AuthzURL      string
	AuthzClientID string

	// Listing cache; disabled when RedisAddr is empty
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration
}

// Load loads configuration from environment variables, after reading ENV_FILE
// (default .env) into the environment when it exists.
func Load() (*Config, error) {
	envFile := getEnv("ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", envFile, err)
	} else if err == nil {
		log.Printf("Loaded environment from %s", envFile)
	}

	cfg := &Config{
		Port:              getEnv("PORT", "3000"),
		PublicBaseURL:     strings.TrimSuffix(getEnv("PUBLIC_BASE_URL", ""), "/"),
		BodyLimitMB:       getEnvAsInt("BODY_LIMIT_MB", 25),
		DBType:            getEnv("DB_TYPE", "mysql"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "3306"),
		DBDatabase:        getEnv("DB_DATABASE", ""),
		DBUser:            getEnv("DB_USER", ""),
		DBPassword:        getEnv("DB_PASSWORD", ""),
		DBConnectionLimit: getEnvAsInt("DB_CONNECTION_LIMIT", 5),
		DBLogLevel:        getEnv("DB_LOG_LEVEL", "warn"),
		StorageDriver:     getEnv("STORAGE_DRIVER", StorageDisk),
		StorageDir:        getEnv("STORAGE_DIR", "./storage"),
		MongoURI:          getEnv("MONGO_URI", ""),
		MongoDatabase:     getEnv("MONGO_DATABASE", "roomfinder"),
		AuthProvider:      getEnv("AUTH_PROVIDER", AuthProviderAuthorizer),
		AuthJWTSecret:     getEnv("AUTH_JWT_SECRET", ""),
		AuthzURL:          getEnv("AUTHZ_URL", ""),
		AuthzClientID:     getEnv("AUTHZ_CLIENT_ID", ""),
		RedisAddr:         getEnv("REDIS_ADDR", ""),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		RedisDB:           getEnvAsInt("REDIS_DB", 0),
		CacheTTL:          time.Duration(getEnvAsInt("CACHE_TTL_SECONDS", 60)) * time.Second,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required settings for the selected database, storage and auth providers.
func (cfg *Config) Validate() error {
	if cfg.DBDatabase == "" {
		return fmt.Errorf("DB_DATABASE is required")
	}
	if cfg.DBType != "sqlite" && cfg.DBType != "sqlite-go" && cfg.DBUser == "" {
		return fmt.Errorf("DB_USER is required")
	}
	if cfg.PublicBaseURL == "" {
		return fmt.Errorf("PUBLIC_BASE_URL is required")
	}

	switch cfg.StorageDriver {
	case StorageMemory:
	case StorageDisk:
		if cfg.StorageDir == "" {
			return fmt.Errorf("STORAGE_DIR is required")
		}
	case StorageGridFS:
		if cfg.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required for STORAGE_DRIVER=%s", StorageGridFS)
		}
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER: %s", cfg.StorageDriver)
	}

	switch cfg.AuthProvider {
	case AuthProviderAuthorizer:
		if cfg.AuthzURL == "" {
			return fmt.Errorf("AUTHZ_URL is required")
		}
		if cfg.AuthzClientID == "" {
			return fmt.Errorf("AUTHZ_CLIENT_ID is required")
		}
	case AuthProviderJWT:
		if cfg.AuthJWTSecret == "" {
			return fmt.Errorf("AUTH_JWT_SECRET is required")
		}
	default:
		return fmt.Errorf("unsupported AUTH_PROVIDER: %s", cfg.AuthProvider)
	}

	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
