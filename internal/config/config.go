// Package config loads service configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// HTTP server
	Port string

	// Storage
	DBPath string

	// Logging
	LogLevel string

	// PIN verification rate limit (attempts per minute per client IP)
	PINAttemptLimit int
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first if present; real environment variables win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:            getEnv("CARTTALLY_PORT", "8080"),
		DBPath:          getEnv("CARTTALLY_DB_PATH", "carttally.db"),
		LogLevel:        getEnv("CARTTALLY_LOG_LEVEL", "info"),
		PINAttemptLimit: getEnvInt("CARTTALLY_PIN_ATTEMPT_LIMIT", 10),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
