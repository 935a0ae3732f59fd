package config

import (
	"math"
	"os"
	"strconv"
	"strings"

	"motinsight/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Analysis AnalysisConfig
	Output   OutputConfig
}

// DatabaseConfig holds fact-store connection settings
type DatabaseConfig struct {
	URL          string
	MaxOpenConns int
}

// AnalysisConfig holds every tunable constant of the detection engine.
// Defaults mirror the published methodology; the heuristic thresholds
// (YearAffectedMultiplier, PrematureBands) are deliberately configurable
// rather than hard-coded — they have no statistical derivation and are
// candidates for replacement with binomial confidence tests.
type AnalysisConfig struct {
	NationalWeight float64
	YearWeight     float64
	MakeWeight     float64

	MajorThreshold    float64
	KnownThreshold    float64
	ElevatedThreshold float64

	MinOccurrences int64
	MaxPerTier     int

	YearAffectedMultiplier float64
	PrematureBands         []string

	// MinYearTests is the floor below which a model year is excluded from
	// best/worst pass-rate lists.
	MinYearTests int64
}

// OutputConfig holds report output settings
type OutputConfig struct {
	Dir     string
	Workers int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Database: DatabaseConfig{
			URL:          os.Getenv("DATABASE_URL"),
			MaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 8),
		},
		Analysis: AnalysisConfig{
			NationalWeight:         getEnvFloat("BASELINE_NATIONAL_WEIGHT", 0.5),
			YearWeight:             getEnvFloat("BASELINE_YEAR_WEIGHT", 0.3),
			MakeWeight:             getEnvFloat("BASELINE_MAKE_WEIGHT", 0.2),
			MajorThreshold:         getEnvFloat("TIER_MAJOR_RATIO", 3.0),
			KnownThreshold:         getEnvFloat("TIER_KNOWN_RATIO", 2.0),
			ElevatedThreshold:      getEnvFloat("TIER_ELEVATED_RATIO", 1.5),
			MinOccurrences:         int64(getEnvInt("MIN_OCCURRENCES", 50)),
			MaxPerTier:             getEnvInt("MAX_ISSUES_PER_TIER", 10),
			YearAffectedMultiplier: getEnvFloat("YEAR_AFFECTED_MULTIPLIER", 1.2),
			PrematureBands:         getEnvList("PREMATURE_MILEAGE_BANDS", []string{"0-30k", "30-60k"}),
			MinYearTests:           int64(getEnvInt("MIN_YEAR_TESTS", 100)),
		},
		Output: OutputConfig{
			Dir:     getEnv("OUTPUT_DIR", "reports"),
			Workers: getEnvInt("BATCH_WORKERS", 4),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Database.URL == "" {
		return errors.New(errors.CodeConfig, "DATABASE_URL is required")
	}
	a := c.Analysis
	sum := a.NationalWeight + a.YearWeight + a.MakeWeight
	if math.Abs(sum-1.0) > 1e-9 {
		return errors.New(errors.CodeConfig, "baseline weights must sum to 1.0")
	}
	if a.MajorThreshold < a.KnownThreshold || a.KnownThreshold < a.ElevatedThreshold {
		return errors.New(errors.CodeConfig, "severity thresholds must be ordered major >= known >= elevated")
	}
	if a.ElevatedThreshold <= 0 {
		return errors.New(errors.CodeConfig, "elevated threshold must be positive")
	}
	if a.MaxPerTier <= 0 {
		return errors.New(errors.CodeConfig, "max issues per tier must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return fallback
}
