package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dgallion1/outliner/internal/outline"
)

type Config struct {
	Port string

	// Auth
	OutlinerAPIKey string

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64

	// Job state
	JobTTL      time.Duration
	StatsWindow time.Duration

	// Output. Empty disables JSON persistence for API jobs.
	OutputDir string

	// Heuristic tuning
	SamplePages     int
	MinBodySize     float64
	MaxBodySize     float64
	SizeMargin      float64
	AcceptThreshold float64
	MaxHeadingWords int
	HeaderBandPt    float64
	HeaderMinPages  int
}

func Load() Config {
	def := outline.DefaultConfig()

	cfg := Config{
		Port: envOr("PORT", "8090"),

		OutlinerAPIKey: os.Getenv("OUTLINER_API_KEY"),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		JobTTL:      envDuration("JOB_TTL", 1*time.Hour),
		StatsWindow: envDuration("STATS_WINDOW", 15*time.Minute),

		OutputDir: os.Getenv("OUTPUT_DIR"),

		SamplePages:     envInt("SAMPLE_PAGES", def.SamplePages),
		MinBodySize:     envFloat("MIN_BODY_SIZE", def.MinBodySize),
		MaxBodySize:     envFloat("MAX_BODY_SIZE", def.MaxBodySize),
		SizeMargin:      envFloat("SIZE_MARGIN", def.SizeMargin),
		AcceptThreshold: envFloat("ACCEPT_THRESHOLD", def.AcceptThreshold),
		MaxHeadingWords: envInt("MAX_HEADING_WORDS", def.MaxHeadingWords),
		HeaderBandPt:    envFloat("HEADER_BAND_PT", def.HeaderBandPt),
		HeaderMinPages:  envInt("HEADER_MIN_PAGES", def.HeaderMinPages),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}
	if cfg.StatsWindow <= 0 {
		cfg.StatsWindow = 15 * time.Minute
	}

	return cfg
}

func (c Config) Validate() error {
	if c.OutlinerAPIKey == "" {
		return fmt.Errorf("OUTLINER_API_KEY is required")
	}
	if c.AcceptThreshold < 0 || c.AcceptThreshold > 1 {
		return fmt.Errorf("ACCEPT_THRESHOLD must be within [0,1], got %v", c.AcceptThreshold)
	}
	if c.MinBodySize > c.MaxBodySize {
		return fmt.Errorf("MIN_BODY_SIZE %v exceeds MAX_BODY_SIZE %v", c.MinBodySize, c.MaxBodySize)
	}
	return nil
}

// Heuristics maps the tunable environment settings onto the core
// extraction configuration.
func (c Config) Heuristics() outline.Config {
	return outline.Config{
		SamplePages:     c.SamplePages,
		MinBodySize:     c.MinBodySize,
		MaxBodySize:     c.MaxBodySize,
		SizeMargin:      c.SizeMargin,
		AcceptThreshold: c.AcceptThreshold,
		MaxHeadingWords: c.MaxHeadingWords,
		HeaderBandPt:    c.HeaderBandPt,
		HeaderMinPages:  c.HeaderMinPages,
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
