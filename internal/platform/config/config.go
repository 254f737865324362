package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// StorageBackendPostgres stores data in PostgreSQL through pgx.
	StorageBackendPostgres = "postgres"
	// StorageBackendMemory keeps data in process memory; for development and tests.
	StorageBackendMemory = "memory"
)

// Config holds application configuration.
type Config struct {
	Port         string `validate:"required,numeric"`
	IsProduction bool
	LogLevel     string `validate:"oneof=debug info warn error"`

	StorageBackend string `validate:"oneof=postgres memory"`
	DatabaseURL    string
	EnableDBCheck  bool
	RunMigrations  bool

	// Identity provider tokens
	JWTSecret string `validate:"required,min=16"`
	JWTIssuer string

	// Optional; enables the shared rate limit store and the retention sweep lock.
	RedisURL        string
	RateLimit       string `validate:"required"`
	FrontendBaseURL string `validate:"omitempty,url"`

	// Re-derive currentBalance when initialBalance is set.
	RecomputeBalanceOnInitialSet bool
	RetentionMonths              int           `validate:"min=1,max=120"`
	ShutdownTimeout              time.Duration `validate:"gt=0"`
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORAGE_BACKEND", StorageBackendPostgres)
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("RUN_MIGRATIONS", true)
	v.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	v.SetDefault("JWT_ISSUER", "")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("RATE_LIMIT", "120-M")
	v.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	v.SetDefault("RECOMPUTE_BALANCE_ON_INITIAL_SET", false)
	v.SetDefault("RETENTION_MONTHS", 12)
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")

	// Environment variables override .env values, which override defaults.
	v.AutomaticEnv()

	cfg := &Config{
		Port:                         v.GetString("PORT"),
		IsProduction:                 v.GetBool("IS_PRODUCTION"),
		LogLevel:                     strings.ToLower(v.GetString("LOG_LEVEL")),
		StorageBackend:               strings.ToLower(v.GetString("STORAGE_BACKEND")),
		DatabaseURL:                  v.GetString("PGSQL_URL"),
		EnableDBCheck:                v.GetBool("ENABLE_DB_CHECK"),
		RunMigrations:                v.GetBool("RUN_MIGRATIONS"),
		JWTSecret:                    v.GetString("JWT_SECRET"),
		JWTIssuer:                    v.GetString("JWT_ISSUER"),
		RedisURL:                     v.GetString("REDIS_URL"),
		RateLimit:                    v.GetString("RATE_LIMIT"),
		FrontendBaseURL:              v.GetString("FRONTEND_BASE_URL"),
		RecomputeBalanceOnInitialSet: v.GetBool("RECOMPUTE_BALANCE_ON_INITIAL_SET"),
		RetentionMonths:              v.GetInt("RETENTION_MONTHS"),
	}

	shutdownStr := v.GetString("SHUTDOWN_TIMEOUT")
	shutdown, err := time.ParseDuration(shutdownStr)
	if err != nil {
		shutdown = 10 * time.Second
		log.Printf("Warning: Invalid value for SHUTDOWN_TIMEOUT ('%s'). Defaulting to %s.\n", shutdownStr, shutdown)
	}
	cfg.ShutdownTimeout = shutdown

	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	if cfg.StorageBackend == StorageBackendPostgres && cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints and cross-field requirements.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.StorageBackend == StorageBackendPostgres && c.DatabaseURL == "" {
		return fmt.Errorf("invalid configuration: PGSQL_URL is required for the %s storage backend", StorageBackendPostgres)
	}
	return nil
}
