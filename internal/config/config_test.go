package config

import (
	"strings"
	"testing"
	"time"
)

func TestEnvIntValid(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	if v := envInt("TEST_INT", 0); v != 42 {
		t.Fatalf("expected 42, got %d", v)
	}
}

func TestEnvIntFallback(t *testing.T) {
	// TEST_INT_MISSING is not set.
	if v := envInt("TEST_INT_MISSING", 99); v != 99 {
		t.Fatalf("expected fallback 99, got %d", v)
	}
}

func TestEnvIntInvalidFallsBack(t *testing.T) {
	t.Setenv("TEST_INT_BAD", "abc")
	if v := envInt("TEST_INT_BAD", 7); v != 7 {
		t.Fatalf("expected fallback 7 for non-integer value, got %d", v)
	}
}

func TestEnvFloatValid(t *testing.T) {
	t.Setenv("TEST_FLOAT", "0.85")
	if v := envFloat("TEST_FLOAT", 0); v != 0.85 {
		t.Fatalf("expected 0.85, got %f", v)
	}
}

func TestEnvDurationValid(t *testing.T) {
	t.Setenv("TEST_DUR", "5s")
	if v := envDuration("TEST_DUR", 0); v.Seconds() != 5 {
		t.Fatalf("expected 5s, got %s", v)
	}
}

func TestEnvDurationInvalidFallsBack(t *testing.T) {
	t.Setenv("TEST_DUR_BAD", "five-seconds")
	if v := envDuration("TEST_DUR_BAD", time.Minute); v != time.Minute {
		t.Fatalf("expected fallback 1m, got %s", v)
	}
}

func TestEnvCSV(t *testing.T) {
	t.Setenv("TEST_CSV", "electro, jazz ,, hip-hop")
	got := envCSV("TEST_CSV", nil)
	if len(got) != 3 || got[0] != "electro" || got[1] != "jazz" || got[2] != "hip-hop" {
		t.Fatalf("unexpected parse: %v", got)
	}
	if v := envCSV("TEST_CSV_MISSING", []string{"x"}); len(v) != 1 || v[0] != "x" {
		t.Fatalf("expected default, got %v", v)
	}
}

func TestLoadSucceedsWithDefaults(t *testing.T) {
	// With no env vars set, Load should succeed using all defaults.
	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected Load() to succeed with defaults, got: %v", err)
	}
	if cfg.BudgetMin != 5000 || cfg.BudgetMax != 100000 {
		t.Fatalf("unexpected default budget range: [%f, %f]", cfg.BudgetMin, cfg.BudgetMax)
	}
	if cfg.DedupThreshold != 0.70 {
		t.Fatalf("unexpected default threshold: %f", cfg.DedupThreshold)
	}
}

func TestLoadFailsOnInvertedBudget(t *testing.T) {
	t.Setenv("STAGERADAR_BUDGET_MIN", "50000")
	t.Setenv("STAGERADAR_BUDGET_MAX", "1000")
	_, err := Load()
	if err == nil {
		t.Fatal("expected Load() to fail with inverted budget range")
	}
	if !strings.Contains(err.Error(), "STAGERADAR_BUDGET_MAX") {
		t.Fatalf("error should mention STAGERADAR_BUDGET_MAX, got: %s", err)
	}
}

func TestLoadFailsOnBadThreshold(t *testing.T) {
	t.Setenv("STAGERADAR_DEDUP_THRESHOLD", "1.5")
	_, err := Load()
	if err == nil {
		t.Fatal("expected Load() to fail with out-of-range threshold")
	}
}
