// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	// Agency profile used for lead scoring.
	Specialties        []string
	BudgetMin          float64
	BudgetMax          float64
	PreferredLocations []string
	AvoidKeywords      []string

	// Deduplication settings.
	DedupThreshold float64       // Fuzzy similarity above which a lead is flagged.
	DedupWindow    time.Duration // How far back fuzzy matching looks.

	// Report cache settings.
	CacheSize int
	CacheTTL  time.Duration

	// Batch scoring settings.
	MaxParallel int

	// Operational settings.
	LogLevel string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (Config, error) {
	cfg := Config{
		Specialties:        envCSV("STAGERADAR_SPECIALTIES", nil),
		BudgetMin:          envFloat("STAGERADAR_BUDGET_MIN", 5000),
		BudgetMax:          envFloat("STAGERADAR_BUDGET_MAX", 100000),
		PreferredLocations: envCSV("STAGERADAR_PREFERRED_LOCATIONS", nil),
		AvoidKeywords:      envCSV("STAGERADAR_AVOID_KEYWORDS", nil),
		DedupThreshold:     envFloat("STAGERADAR_DEDUP_THRESHOLD", 0.70),
		DedupWindow:        envDuration("STAGERADAR_DEDUP_WINDOW", 90*24*time.Hour),
		CacheSize:          envInt("STAGERADAR_CACHE_SIZE", 128),
		CacheTTL:           envDuration("STAGERADAR_CACHE_TTL", 6*time.Hour),
		MaxParallel:        envInt("STAGERADAR_MAX_PARALLEL", 8),
		LogLevel:           envStr("STAGERADAR_LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration is internally consistent.
func (c Config) Validate() error {
	if c.BudgetMin < 0 {
		return fmt.Errorf("config: STAGERADAR_BUDGET_MIN must be non-negative")
	}
	if c.BudgetMax <= c.BudgetMin {
		return fmt.Errorf("config: STAGERADAR_BUDGET_MAX must exceed STAGERADAR_BUDGET_MIN")
	}
	if c.DedupThreshold < 0 || c.DedupThreshold > 1 {
		return fmt.Errorf("config: STAGERADAR_DEDUP_THRESHOLD must be in [0,1]")
	}
	if c.DedupWindow <= 0 {
		return fmt.Errorf("config: STAGERADAR_DEDUP_WINDOW must be positive")
	}
	if c.CacheSize <= 0 {
		return fmt.Errorf("config: STAGERADAR_CACHE_SIZE must be positive")
	}
	if c.MaxParallel <= 0 {
		return fmt.Errorf("config: STAGERADAR_MAX_PARALLEL must be positive")
	}
	return nil
}

func envStr(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}

func envFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func envDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}

func envCSV(key string, defaultVal []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
