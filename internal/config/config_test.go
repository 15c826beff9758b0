package config

import (
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envVars = []string{
	"TENDER_PORT", "TENDER_METRICS_PORT", "TENDER_RATE_LIMIT_PER_SEC", "TENDER_ADMIN_TOKEN",
	"TENDER_DATABASE_URL", "TENDER_HERMES_URL", "TENDER_STATS_INTERVAL_MS",
	"TENDER_WEIGHT_TOLERANCE", "TENDER_LOG_LEVEL", "TENDER_LOG_FORMAT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envVars {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8700 {
		t.Errorf("expected port 8700, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 8701 {
		t.Errorf("expected metrics port 8701, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Server.RateLimitPerSec != 20 {
		t.Errorf("expected rate limit 20, got %d", cfg.Server.RateLimitPerSec)
	}
	if cfg.Hermes.URL != "nats://localhost:4222" {
		t.Errorf("expected nats URL, got %s", cfg.Hermes.URL)
	}
	if cfg.StatsInterval() != time.Minute {
		t.Errorf("expected StatsInterval 1m, got %v", cfg.StatsInterval())
	}
	if cfg.Scoring.WeightTolerance != 0.01 {
		t.Errorf("expected tolerance 0.01, got %f", cfg.Scoring.WeightTolerance)
	}
	if cfg.Logging.Level != "info" || cfg.SlogLevel() != slog.LevelInfo {
		t.Errorf("expected log level 'info', got '%s'", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected log format 'json', got '%s'", cfg.Logging.Format)
	}

	w := cfg.Comparison.Weights.MetricWeights()
	if math.Abs(w.Sum()-1.0) > 0.001 {
		t.Errorf("comparison weights sum to %f, expected 1.0", w.Sum())
	}
	if w.Budget != 0.3 || w.Timeline != 0.3 || w.TeamSize != 0.2 || w.Compliance != 0.2 {
		t.Errorf("unexpected default comparison weights: %+v", w)
	}
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("TENDER_PORT", "9000")
	t.Setenv("TENDER_METRICS_PORT", "9001")
	t.Setenv("TENDER_RATE_LIMIT_PER_SEC", "5")
	t.Setenv("TENDER_ADMIN_TOKEN", "secret-token")
	t.Setenv("TENDER_DATABASE_URL", "postgres://localhost/tender_test")
	t.Setenv("TENDER_HERMES_URL", "nats://nats:4222")
	t.Setenv("TENDER_STATS_INTERVAL_MS", "0")
	t.Setenv("TENDER_WEIGHT_TOLERANCE", "0.05")
	t.Setenv("TENDER_LOG_LEVEL", "DEBUG")
	t.Setenv("TENDER_LOG_FORMAT", "text")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 9001, cfg.Server.MetricsPort)
	assert.Equal(t, 5, cfg.Server.RateLimitPerSec)
	assert.Equal(t, "secret-token", cfg.Server.AdminToken)
	assert.Equal(t, "postgres://localhost/tender_test", cfg.Database.URL)
	assert.Equal(t, "nats://nats:4222", cfg.Hermes.URL)
	assert.Equal(t, time.Duration(0), cfg.StatsInterval())
	assert.Equal(t, 0.05, cfg.Scoring.WeightTolerance)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestEmptyHermesURLDisablesNATS(t *testing.T) {
	clearEnv(t)
	t.Setenv("TENDER_HERMES_URL", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, cfg.Hermes.URL)
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "tender.yaml")
	yaml := `
server:
  port: 8080
  metrics_port: 8081
scoring:
  weight_tolerance: 0.001
comparison:
  weights:
    budget: 0.4
    timeline: 0.2
    team_size: 0.1
    compliance: 0.3
logging:
  level: warn
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 0.001, cfg.Scoring.WeightTolerance)
	assert.Equal(t, 0.4, cfg.Comparison.Weights.Budget)
	assert.Equal(t, slog.LevelWarn, cfg.SlogLevel())
	// Unset keys keep their defaults.
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"weights do not sum to one", "comparison:\n  weights:\n    budget: 0.5\n    timeline: 0.5\n    team_size: 0.5\n    compliance: 0\n"},
		{"negative weight", "comparison:\n  weights:\n    budget: 1.2\n    timeline: -0.2\n    team_size: 0\n    compliance: 0\n"},
		{"zero tolerance", "scoring:\n  weight_tolerance: 0\n"},
		{"bad log level", "logging:\n  level: loud\n"},
		{"bad log format", "logging:\n  format: xml\n"},
		{"port clash", "server:\n  port: 9000\n  metrics_port: 9000\n"},
		{"port out of range", "server:\n  port: 70000\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			path := filepath.Join(t.TempDir(), "tender.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o600))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
