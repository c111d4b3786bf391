// Package config loads runtime configuration from the environment,
// with optional .env bootstrap for local development.
package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/wrenfall/rpg-core/internal/errors"
)

// Config holds the runtime settings for the simulation core
type Config struct {
	// Seed drives every random source; 0 picks a time-based seed.
	Seed int64 `env:"RPGCORE_SEED" envDefault:"0"`

	// RedisAddr enables session snapshot persistence when set.
	RedisAddr string `env:"RPGCORE_REDIS_ADDR"`

	// VRTarget is the average actions-per-reward target, within [5,10].
	VRTarget float64 `env:"RPGCORE_VR_TARGET" envDefault:"7"`

	// Telemetry enables the OTLP trace exporter.
	Telemetry bool `env:"RPGCORE_TELEMETRY" envDefault:"false"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"RPGCORE_LOG_LEVEL" envDefault:"info"`
}

// Load reads .env (best effort; a missing file is fine) and then the
// process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse environment")
	}
	return cfg, nil
}
