// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkordes/train-dispatch/internal/domain"
)

// Config holds all configuration values for the dispatch binary.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"].
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// StartTime is the clock's initial time, from START_TIME ("hh:mm").
	// Defaults to 00:00.
	StartTime domain.TimeOfDay

	// SeedFile is an optional YAML file of departures loaded at start-up.
	SeedFile string

	// StrictTracks forbids re-assigning a track once set. Defaults to false.
	StrictTracks bool

	// MaxBodyBytes caps HTTP request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing every variable whose value cannot be parsed.
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		SeedFile:    os.Getenv("SEED_FILE"),
	}

	var invalid []string

	start, err := domain.ParseClock(getEnv("START_TIME", "00:00"))
	if err != nil {
		invalid = append(invalid, "START_TIME")
	}
	cfg.StartTime = start

	strict, err := strconv.ParseBool(getEnv("STRICT_TRACKS", "false"))
	if err != nil {
		invalid = append(invalid, "STRICT_TRACKS")
	}
	cfg.StrictTracks = strict

	maxBody, err := strconv.ParseInt(getEnv("MAX_BODY_BYTES", "1048576"), 10, 64)
	if err != nil || maxBody <= 0 {
		invalid = append(invalid, "MAX_BODY_BYTES")
	}
	cfg.MaxBodyBytes = maxBody

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
