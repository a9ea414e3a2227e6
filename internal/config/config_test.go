package config

import (
	"testing"
	"time"

	"github.com/dgallion1/outliner/internal/outline"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8090" {
		t.Errorf("expected default port 8090, got %q", cfg.Port)
	}
	if cfg.WorkerCount != 4 {
		t.Errorf("expected 4 workers, got %d", cfg.WorkerCount)
	}
	if cfg.JobTTL != time.Hour {
		t.Errorf("expected 1h job TTL, got %v", cfg.JobTTL)
	}
	if cfg.Heuristics() != outline.DefaultConfig() {
		t.Errorf("expected default heuristics, got %+v", cfg.Heuristics())
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("WORKER_COUNT", "8")
	t.Setenv("ACCEPT_THRESHOLD", "0.5")
	t.Setenv("JOB_TTL", "30m")

	cfg := Load()
	if cfg.Port != "9999" {
		t.Errorf("expected port 9999, got %q", cfg.Port)
	}
	if cfg.WorkerCount != 8 {
		t.Errorf("expected 8 workers, got %d", cfg.WorkerCount)
	}
	if cfg.Heuristics().AcceptThreshold != 0.5 {
		t.Errorf("expected threshold 0.5, got %v", cfg.Heuristics().AcceptThreshold)
	}
	if cfg.JobTTL != 30*time.Minute {
		t.Errorf("expected 30m TTL, got %v", cfg.JobTTL)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("WORKER_COUNT", "not-a-number")
	t.Setenv("SIZE_MARGIN", "junk")

	cfg := Load()
	if cfg.WorkerCount != 4 {
		t.Errorf("expected fallback worker count 4, got %d", cfg.WorkerCount)
	}
	if cfg.SizeMargin != outline.DefaultConfig().SizeMargin {
		t.Errorf("expected default size margin, got %v", cfg.SizeMargin)
	}
}

func TestValidate(t *testing.T) {
	cfg := Load()
	if err := cfg.Validate(); err == nil {
		t.Error("expected error without OUTLINER_API_KEY")
	}

	cfg.OutlinerAPIKey = "secret"
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}

	cfg.AcceptThreshold = 1.5
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for threshold outside [0,1]")
	}

	cfg.AcceptThreshold = 0.35
	cfg.MinBodySize = 30
	cfg.MaxBodySize = 20
	if err := cfg.Validate(); err == nil {
		t.Error("expected error when body band is inverted")
	}
}
