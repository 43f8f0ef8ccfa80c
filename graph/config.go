// SPDX-License-Identifier: MIT
package graph

import (
	"os"
	"strconv"
)

const (
	// DefaultHistoryDepth is H, the ring-buffer depth: 24h at 15-minute
	// cadence.
	DefaultHistoryDepth = 96

	// DefaultCadenceMinutes is the fixed sampling cadence the history ring
	// and anomaly detector assume.
	DefaultCadenceMinutes = 15
)

// Config holds the per-graph tunables a FarmConfig is built with.
type Config struct {
	HistoryDepth   int
	CadenceMinutes int
}

// Option mutates a Config under construction.
type Option func(*Config)

// WithHistoryDepth overrides H, the feature-history ring buffer depth.
func WithHistoryDepth(h int) Option {
	return func(c *Config) { c.HistoryDepth = h }
}

// WithCadenceMinutes overrides the fixed sampling cadence.
func WithCadenceMinutes(m int) Option {
	return func(c *Config) { c.CadenceMinutes = m }
}

// LoadConfig builds a Config from defaults, the HISTORY_SIZE environment
// variable, and any explicit opts, in that precedence order (opts last).
func LoadConfig(opts ...Option) Config {
	cfg := Config{
		HistoryDepth:   DefaultHistoryDepth,
		CadenceMinutes: DefaultCadenceMinutes,
	}

	if raw := os.Getenv("HISTORY_SIZE"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			cfg.HistoryDepth = n
		}
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}
