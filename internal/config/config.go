// Package config provides configuration for the consultant service.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the service configuration.
type Config struct {
	// Server settings
	HTTPPort int

	// Database. Empty selects the in-memory session store.
	DatabaseURL string

	// Session eviction for the in-memory store. Zero disables eviction.
	SessionTTL time.Duration

	// WebSocket settings
	WSReadTimeout   time.Duration
	WSWriteTimeout  time.Duration
	WSPingInterval  time.Duration
	WSMaxMessageLen int64

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		HTTPPort:        getEnvInt("HTTP_PORT", 8080),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		SessionTTL:      time.Duration(getEnvInt("SESSION_TTL_MS", 0)) * time.Millisecond,
		WSReadTimeout:   time.Duration(getEnvInt("WS_READ_TIMEOUT_MS", 60000)) * time.Millisecond,
		WSWriteTimeout:  time.Duration(getEnvInt("WS_WRITE_TIMEOUT_MS", 10000)) * time.Millisecond,
		WSPingInterval:  time.Duration(getEnvInt("WS_PING_INTERVAL_MS", 30000)) * time.Millisecond,
		WSMaxMessageLen: int64(getEnvInt("WS_MAX_MESSAGE_BYTES", 65536)),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}
