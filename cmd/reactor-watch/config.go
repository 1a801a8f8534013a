package main

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/reactorwatch/reactorwatch/pkg/nrc"
)

// Config holds all configuration for the reactor-watch CLI.
// The core packages take plain values from here and never read the
// environment themselves.
type Config struct {
	// Database
	DBPath string

	// Flagging
	ThresholdDays int

	// Output
	OutJSON string

	// Status page
	StatusURL    string
	FetchTimeout time.Duration

	// Daemon schedule (standard 5-field cron spec, UTC)
	CronSpec string
}

// DefaultConfig returns configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		DBPath:        "data/reactor_power.db",
		ThresholdDays: 40,
		OutJSON:       "out/flagged.json",
		StatusURL:     nrc.DefaultStatusURL,
		FetchTimeout:  30 * time.Second,
		CronSpec:      "0 9 * * *",
	}
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() *Config {
	// Load .env file if present (ignore error if not found)
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if v := os.Getenv("REACTORWATCH_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("REACTORWATCH_THRESHOLD_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ThresholdDays = n
		}
	}
	if v := os.Getenv("REACTORWATCH_OUT_JSON"); v != "" {
		cfg.OutJSON = v
	}
	if v := os.Getenv("REACTORWATCH_STATUS_URL"); v != "" {
		cfg.StatusURL = v
	}
	if v := os.Getenv("REACTORWATCH_FETCH_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.FetchTimeout = d
		}
	}
	if v := os.Getenv("REACTORWATCH_CRON"); v != "" {
		cfg.CronSpec = v
	}

	return cfg
}
