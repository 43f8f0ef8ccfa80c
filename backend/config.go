// SPDX-License-Identifier: MIT
package backend

import (
	"os"
	"strconv"
)

// Config holds the environment-derived knobs governing backend selection.
// Constructed once at process-state initialization and threaded through
// explicitly rather than re-reading the environment ad hoc.
type Config struct {
	// ForceHost, when true, makes Select always return Host even if a
	// device backend has been registered via RegisterDeviceBackend.
	ForceHost bool
}

// Option mutates a Config during construction.
type Option func(*Config)

// WithForceHost overrides the FORCE_HOST_BACKEND environment default.
func WithForceHost(force bool) Option {
	return func(c *Config) { c.ForceHost = force }
}

// LoadConfig resolves a Config from the FORCE_HOST_BACKEND environment
// variable (any value accepted by strconv.ParseBool; unset or unparsable
// defaults to false), then applies opts on top.
func LoadConfig(opts ...Option) Config {
	cfg := Config{}
	if raw, ok := os.LookupEnv("FORCE_HOST_BACKEND"); ok {
		if v, err := strconv.ParseBool(raw); err == nil {
			cfg.ForceHost = v
		}
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}
