// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) initializer to build a Config with defaults.
// - All loading functions accept context.Context as the first parameter.
// - External errors must be wrapped via this package's error kinds.
package config

import (
	"context"
	"time"
)

// Session store backend kinds.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// Store selects the session store backend: memory or redis.
	Store string `koanf:"store"`

	// RedisAddr configures the redis endpoint used when Store is redis.
	RedisAddr string `koanf:"redis_addr"`

	// MaxSessions caps the number of live sessions in the memory store.
	MaxSessions int `koanf:"max_sessions"`

	// SessionTTLMinutes sets how long an idle session survives.
	SessionTTLMinutes int `koanf:"session_ttl_minutes"`

	// SweepIntervalSeconds sets how often expired sessions are reclaimed.
	SweepIntervalSeconds int `koanf:"sweep_interval_seconds"`

	// DefaultFactors seeds the factor controls for a fresh session.
	DefaultFactors map[string]int `koanf:"default_factors"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention; it is reserved for future use.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:             "info",
		Addr:                 ":9080",
		Store:                StoreMemory,
		RedisAddr:            "localhost:6379",
		MaxSessions:          1024,
		SessionTTLMinutes:    30,
		SweepIntervalSeconds: 60,
		DefaultFactors: map[string]int{
			"payment_history":    85,
			"credit_utilization": 70,
			"length_of_history":  65,
			"credit_mix":         75,
			"new_credit":         60,
		},
	}
}

// SessionTTL returns the idle session TTL as a duration.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

// SweepInterval returns the expiry sweep interval as a duration.
func (c *Config) SweepInterval() time.Duration {
	return time.Duration(c.SweepIntervalSeconds) * time.Second
}
