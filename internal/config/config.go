package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/MikeSquared-Agency/Tender/internal/comparison"
	"github.com/MikeSquared-Agency/Tender/internal/validation"
)

var validate = validator.New()

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Hermes     HermesConfig     `yaml:"hermes"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Comparison ComparisonConfig `yaml:"comparison"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type ServerConfig struct {
	Port            int    `yaml:"port" validate:"gt=0,lte=65535"`
	MetricsPort     int    `yaml:"metrics_port" validate:"gt=0,lte=65535,nefield=Port"`
	AdminToken      string `yaml:"admin_token"`
	RateLimitPerSec int    `yaml:"rate_limit_per_sec" validate:"gte=0"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// HermesConfig points at NATS. An empty URL disables event publishing.
type HermesConfig struct {
	URL             string `yaml:"url"`
	StatsIntervalMs int    `yaml:"stats_interval_ms" validate:"gte=0"`
}

type ScoringConfig struct {
	WeightTolerance float64 `yaml:"weight_tolerance" validate:"gt=0,lte=1"`
}

type ComparisonConfig struct {
	Weights ComparisonWeights `yaml:"weights"`
}

type ComparisonWeights struct {
	Budget     float64 `yaml:"budget" validate:"gte=0,lte=1"`
	Timeline   float64 `yaml:"timeline" validate:"gte=0,lte=1"`
	TeamSize   float64 `yaml:"team_size" validate:"gte=0,lte=1"`
	Compliance float64 `yaml:"compliance" validate:"gte=0,lte=1"`
}

// MetricWeights converts the configured weights for the comparison engine.
func (w ComparisonWeights) MetricWeights() comparison.MetricWeights {
	return comparison.MetricWeights{
		Budget:     w.Budget,
		Timeline:   w.Timeline,
		TeamSize:   w.TeamSize,
		Compliance: w.Compliance,
	}
}

type LoggingConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=json text"`
}

func (c *Config) StatsInterval() time.Duration {
	return time.Duration(c.Hermes.StatsIntervalMs) * time.Millisecond
}

// SlogLevel maps the configured level name onto slog.
func (c *Config) SlogLevel() slog.Level {
	switch c.Logging.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Validate checks field ranges and that the comparison weights sum to 1.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := c.Comparison.Weights.MetricWeights().Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func defaults() *Config {
	w := comparison.DefaultMetricWeights()
	return &Config{
		Server: ServerConfig{
			Port:            8700,
			MetricsPort:     8701,
			RateLimitPerSec: 20,
		},
		Hermes: HermesConfig{
			URL:             "nats://localhost:4222",
			StatsIntervalMs: 60000,
		},
		Scoring: ScoringConfig{
			WeightTolerance: validation.DefaultWeightTolerance,
		},
		Comparison: ComparisonConfig{
			Weights: ComparisonWeights{
				Budget:     w.Budget,
				Timeline:   w.Timeline,
				TeamSize:   w.TeamSize,
				Compliance: w.Compliance,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads defaults, then the YAML file at path (if any), then TENDER_*
// environment overrides, and validates the result.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func envInt(key string, dst *int) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func envFloat(key string, dst *float64) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func applyEnv(cfg *Config) {
	envInt("TENDER_PORT", &cfg.Server.Port)
	envInt("TENDER_METRICS_PORT", &cfg.Server.MetricsPort)
	envInt("TENDER_RATE_LIMIT_PER_SEC", &cfg.Server.RateLimitPerSec)
	if v := os.Getenv("TENDER_ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v := os.Getenv("TENDER_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	// Set but empty disables NATS.
	if v, ok := os.LookupEnv("TENDER_HERMES_URL"); ok {
		cfg.Hermes.URL = v
	}
	envInt("TENDER_STATS_INTERVAL_MS", &cfg.Hermes.StatsIntervalMs)
	envFloat("TENDER_WEIGHT_TOLERANCE", &cfg.Scoring.WeightTolerance)
	if v := os.Getenv("TENDER_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := os.Getenv("TENDER_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
}
