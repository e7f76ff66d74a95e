package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/Gudini108/tasktracker/pkg/auth"
	"github.com/Gudini108/tasktracker/pkg/observability"
	"github.com/Gudini108/tasktracker/pkg/storage"
)

// Config holds all application configuration
type Config struct {
	Server        ServerConfig
	Storage       storage.Config
	Auth          AuthConfig
	Observability ObservabilityConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// Health/metrics server (separate port for probes)
	HealthPort string
}

// AuthConfig holds authentication configuration. The JWT secret is injected
// here at startup and nowhere else.
type AuthConfig struct {
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
}

// ObservabilityConfig holds logging and metrics settings
type ObservabilityConfig struct {
	LogLevel       observability.LogLevel
	MetricsEnabled bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	storageCfg := storage.DefaultConfig()
	storageCfg.URL = getEnv("TASKS_POSTGRES_URL", "")
	if maxConns := getEnvInt("TASKS_POSTGRES_MAX_CONNS", 0); maxConns > 0 {
		storageCfg.MaxOpenConns = maxConns
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("TASKS_HOST", "0.0.0.0"),
			Port:            getEnv("TASKS_PORT", "8080"),
			ReadTimeout:     getEnvDuration("TASKS_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvDuration("TASKS_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:     getEnvDuration("TASKS_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvDuration("TASKS_SHUTDOWN_TIMEOUT", 30*time.Second),
			HealthPort:      getEnv("TASKS_HEALTH_PORT", "9090"),
		},
		Storage: storageCfg,
		Auth: AuthConfig{
			JWTSecret:  getEnv("TASKS_JWT_SECRET", ""),
			TokenTTL:   getEnvDuration("TASKS_TOKEN_TTL", auth.DefaultTokenTTL),
			BcryptCost: getEnvInt("TASKS_BCRYPT_COST", 0),
		},
		Observability: ObservabilityConfig{
			LogLevel:       observability.ParseLogLevel(getEnv("TASKS_LOG_LEVEL", "info")),
			MetricsEnabled: getEnvBool("TASKS_METRICS_ENABLED", true),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if c.Server.HealthPort == "" {
		return fmt.Errorf("health port is required")
	}
	if c.Server.Port == c.Server.HealthPort {
		return fmt.Errorf("server port and health port must be different")
	}
	if c.Storage.URL == "" {
		return fmt.Errorf("TASKS_POSTGRES_URL is required")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("TASKS_JWT_SECRET is required")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("token TTL must be positive")
	}
	return nil
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1"
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
