package config_test

import (
	"testing"

	"github.com/pkordes/train-dispatch/internal/config"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "LOG_LEVEL", "CORS_ORIGINS", "START_TIME", "SEED_FILE", "STRICT_TRACKS", "MAX_BODY_BYTES"} {
		t.Setenv(key, "")
	}
}

// TestLoad_defaults verifies that every value falls back to its default when
// nothing is set.
func TestLoad_defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
	require.Equal(t, "00:00", cfg.StartTime.String())
	require.Empty(t, cfg.SeedFile)
	require.False(t, cfg.StrictTracks)
	require.EqualValues(t, 1<<20, cfg.MaxBodyBytes)
}

// TestLoad_overrides verifies that all values can be overridden via env vars.
func TestLoad_overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://admin.example.com")
	t.Setenv("START_TIME", "06:00")
	t.Setenv("SEED_FILE", "/etc/dispatch/departures.yaml")
	t.Setenv("STRICT_TRACKS", "true")
	t.Setenv("MAX_BODY_BYTES", "4096")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
	require.Equal(t, "06:00", cfg.StartTime.String())
	require.Equal(t, "/etc/dispatch/departures.yaml", cfg.SeedFile)
	require.True(t, cfg.StrictTracks)
	require.EqualValues(t, 4096, cfg.MaxBodyBytes)
}

// TestLoad_invalidValues verifies that an error is returned naming every
// variable that cannot be parsed.
func TestLoad_invalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("START_TIME", "6 o'clock")
	t.Setenv("STRICT_TRACKS", "sometimes")
	t.Setenv("MAX_BODY_BYTES", "-1")

	_, err := config.Load()

	require.Error(t, err)
	require.ErrorContains(t, err, "START_TIME")
	require.ErrorContains(t, err, "STRICT_TRACKS")
	require.ErrorContains(t, err, "MAX_BODY_BYTES")
}
