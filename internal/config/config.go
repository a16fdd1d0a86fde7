package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr string `env:"PRESENCE_HTTP_ADDR" envDefault:":8080"`

	// DB
	Env    string `env:"PRESENCE_ENV" envDefault:"dev"` // "dev" | "prod"
	DBPath string `env:"PRESENCE_DB_PATH" envDefault:"./data/presence.db"`

	// Minimum seconds between two accepted scans of the same card.
	CooldownSeconds int `env:"PRESENCE_SCAN_COOLDOWN_S" envDefault:"300"`

	// Scanner heartbeat retention
	HeartbeatRetentionDays int `env:"PRESENCE_HEARTBEAT_RETENTION_DAYS" envDefault:"30"` // 0 = keep forever
	PruneIntervalHours     int `env:"PRESENCE_PRUNE_INTERVAL_HOURS" envDefault:"6"`
}

func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg.Env = strings.ToLower(strings.TrimSpace(cfg.Env))
	if cfg.Env != "dev" && cfg.Env != "prod" {
		// fail-soft: treat unknown as dev
		cfg.Env = "dev"
	}

	if cfg.CooldownSeconds <= 0 {
		cfg.CooldownSeconds = 300
	}
	if cfg.HeartbeatRetentionDays < 0 {
		cfg.HeartbeatRetentionDays = 0
	}
	if cfg.PruneIntervalHours <= 0 {
		cfg.PruneIntervalHours = 6
	}

	return cfg, nil
}
