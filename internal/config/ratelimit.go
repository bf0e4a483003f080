package config

import "time"

// RateLimitConfig carries the fixed-window limiter tunables. The defaults
// allow 10 requests per 60 second window for each (label, client) pair.
type RateLimitConfig struct {
	Max    int           // maximum requests per window
	Window time.Duration // window length
}

// LoadRateLimitConfig reads RATE_LIMIT_MAX and RATE_LIMIT_WINDOW from the
// environment, falling back to the defaults when unset or invalid.
func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Max:    envInt("RATE_LIMIT_MAX", 10),
		Window: envDur("RATE_LIMIT_WINDOW", 60*time.Second),
	}
	if cfg.Max < 1 {
		cfg.Max = 1
	}
	if cfg.Window <= 0 {
		cfg.Window = 60 * time.Second
	}
	return cfg
}
