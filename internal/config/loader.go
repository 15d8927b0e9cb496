package config

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// knownFactors lists the keys accepted under default_factors.
var knownFactors = []string{
	"payment_history",
	"credit_utilization",
	"length_of_history",
	"credit_mix",
	"new_credit",
}

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New(ctx))
//  2. file (YAML) if SCORESIM_CONFIG is set
//  3. env (prefix SCORESIM_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New(ctx)

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("SCORESIM_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: SCORESIM_ADDR, SCORESIM_MAX_SESSIONS, ...
	// Map env keys like SCORESIM_MAX_SESSIONS -> max_sessions (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("SCORESIM_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "scoresim_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.Store != StoreMemory && c.Store != StoreRedis {
		return fmt.Errorf("%w: store must be %q or %q", ErrInvalidConfig, StoreMemory, StoreRedis)
	}
	if c.Store == StoreRedis && c.RedisAddr == "" {
		return fmt.Errorf("%w: redis_addr must not be empty when store is %q", ErrInvalidConfig, StoreRedis)
	}
	if c.MaxSessions <= 0 {
		return fmt.Errorf("%w: max_sessions must be positive", ErrInvalidConfig)
	}
	if c.SessionTTLMinutes <= 0 {
		return fmt.Errorf("%w: session_ttl_minutes must be positive", ErrInvalidConfig)
	}
	if c.SweepIntervalSeconds <= 0 {
		return fmt.Errorf("%w: sweep_interval_seconds must be positive", ErrInvalidConfig)
	}
	for key, val := range c.DefaultFactors {
		if !slices.Contains(knownFactors, key) {
			return fmt.Errorf("%w: unknown default factor %q", ErrInvalidConfig, key)
		}
		if val < 0 || val > 100 {
			return fmt.Errorf("%w: default factor %q out of range [0, 100]", ErrInvalidConfig, key)
		}
	}

	return nil
}
