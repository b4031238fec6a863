package config

import (
	"log/slog"
	"os"
	"time"
)

// ServerConfig holds all configuration values loaded from environment variables.
type ServerConfig struct {
	ServerHost    string
	ServerPort    string
	StaticDir     string
	SessionTTL    time.Duration
	SweepInterval time.Duration
}

// LoadServerConfig loads configuration from environment variables. Every
// value has a default so the server boots without any environment set.
// StaticDir is empty by default, which disables static file serving.
func LoadServerConfig() *ServerConfig {
	return &ServerConfig{
		ServerHost:    getEnv("REVERSI_SERVER_HOST", "0.0.0.0"),
		ServerPort:    getEnv("REVERSI_SERVER_PORT", "3000"),
		StaticDir:     getEnv("REVERSI_STATIC_DIR", ""),
		SessionTTL:    getEnvDuration("REVERSI_SESSION_TTL", 30*time.Minute),
		SweepInterval: getEnvDuration("REVERSI_SWEEP_INTERVAL", time.Minute),
	}
}

// Address returns the host:port pair the server listens on.
func (c *ServerConfig) Address() string {
	return c.ServerHost + ":" + c.ServerPort
}

// getEnv returns the environment variable, or the fallback if it is unset.
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvDuration either parses the environment variable as a duration or
// logs a fatal error if it is set but invalid.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		slog.Error("Cannot load environment variable, it must be a duration like \"30m\"", "key", key, "value", value)
		os.Exit(1)
	}

	return parsed
}
