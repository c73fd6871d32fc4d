// Package config loads runtime configuration from the environment.
//
// A .env file in the working directory is read first when present;
// variables already set in the environment win over it.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/warp/call-billing/logging"
)

// Config holds server and CLI settings.
type Config struct {
	Env             string        // development, production
	Port            int           // HTTP port
	TariffFile      string        // optional JSON tariff; empty uses the default tariff
	RateLimit       int           // requests per second per client IP, 0 disables
	ShutdownTimeout time.Duration // graceful shutdown budget
	Logging         logging.Config
}

// Load reads .env (if any) and the BILLING_* variables.
func Load() Config {
	_ = godotenv.Load()

	env := getString("BILLING_ENV", "development")
	return Config{
		Env:             env,
		Port:            getInt("BILLING_PORT", 8080),
		TariffFile:      getString("BILLING_TARIFF_FILE", ""),
		RateLimit:       getInt("BILLING_RATE_LIMIT", 50),
		ShutdownTimeout: time.Duration(getInt("BILLING_SHUTDOWN_TIMEOUT", 30)) * time.Second,
		Logging: logging.Config{
			Level:       getString("BILLING_LOG_LEVEL", "info"),
			Format:      getString("BILLING_LOG_FORMAT", defaultFormat(env)),
			Output:      getString("BILLING_LOG_OUTPUT", "stderr"),
			Development: env == "development",
		},
	}
}

func defaultFormat(env string) string {
	if env == "production" {
		return "json"
	}
	return "console"
}

func getString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
