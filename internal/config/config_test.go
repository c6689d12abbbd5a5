package config_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/bikeshare/internal/config"
)

// clearEnv blanks every variable Load reads so the host environment cannot
// leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PORT", "LOG_LEVEL", "CORS_ORIGINS", "DATA_SOURCE", "DATA_DIR", "DATABASE_URL"} {
		t.Setenv(k, "")
	}
}

// TestLoad_defaults verifies that every variable falls back to its default and
// that the CSV source needs no database.
func TestLoad_defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
	require.Equal(t, config.SourceCSV, cfg.DataSource)
	require.Equal(t, "data", cfg.DataDir)
	require.Empty(t, cfg.DatabaseURL)
}

// TestLoad_overrides verifies that all values can be overridden via env vars.
func TestLoad_overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://admin.example.com")
	t.Setenv("DATA_SOURCE", "Postgres")
	t.Setenv("DATA_DIR", "/srv/bikeshare")
	t.Setenv("DATABASE_URL", "postgres://user:pass@db:5432/bikeshare")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
	require.Equal(t, config.SourcePostgres, cfg.DataSource)
	require.Equal(t, "/srv/bikeshare", cfg.DataDir)
	require.Equal(t, "postgres://user:pass@db:5432/bikeshare", cfg.DatabaseURL)
	require.NoError(t, cfg.RequireDatabase())
}

// TestLoad_postgresNeedsDatabaseURL verifies that the Postgres source names
// the missing variable.
func TestLoad_postgresNeedsDatabaseURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATA_SOURCE", "postgres")

	_, err := config.Load()

	require.Error(t, err)
	require.ErrorContains(t, err, "DATABASE_URL")
}

// TestLoad_unknownSource verifies that a typo in DATA_SOURCE is rejected.
func TestLoad_unknownSource(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATA_SOURCE", "sqlite")

	_, err := config.Load()

	require.ErrorContains(t, err, `"sqlite"`)
}

// TestRequireDatabase verifies the importer's extra check.
func TestRequireDatabase(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	require.ErrorContains(t, cfg.RequireDatabase(), "DATABASE_URL")
}

func TestSlogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		t.Run(in, func(t *testing.T) {
			require.Equal(t, want, config.Config{LogLevel: in}.SlogLevel())
		})
	}
}
