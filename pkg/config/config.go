package config

import (
	"fmt"
)

// Padding policy names accepted in configuration files.
const (
	PaddingPadWithNaNs = "pad_with_nans"
	PaddingDontPad     = "dont_pad_with_nans"
)

// Lock policy names accepted in configuration files.
const (
	LockPolicyLock     = "lock"
	LockPolicyDontLock = "dont_lock"
)

// FrameConfig is the configuration of one table. It is loaded from YAML with
// Load or built with NewFrameConfig.
type FrameConfig struct {
	// Name identifies the table in logs and metrics
	Name            string `yaml:"name" json:"name"`
	// DefaultPadding is the padding policy used by helpers that do not take one
	DefaultPadding  string `yaml:"default_padding" json:"default_padding"`
	// LockPolicy selects whether load operations lock by default
	LockPolicy      string `yaml:"lock_policy" json:"lock_policy"`
	// InitialCapacity preallocates index and column storage
	InitialCapacity int    `yaml:"initial_capacity" json:"initial_capacity"`

	// Sampling settings for random selection
	Sampling SamplingConfig `yaml:"sampling" json:"sampling"`

	// Observability settings for metrics and logging
	Observability ObservabilityConfig `yaml:"observability" json:"observability"`
}

// SamplingConfig contains random selection defaults.
type SamplingConfig struct {
	// Seed is used by seeded sampling when the caller passes zero
	Seed uint64 `yaml:"seed" json:"seed"`
}

// ObservabilityConfig contains monitoring settings.
type ObservabilityConfig struct {
	// EnableMetrics activates Prometheus operation metrics
	EnableMetrics     bool    `yaml:"enable_metrics" json:"enable_metrics"`
	// LogLevel sets logging verbosity (debug, info, warn, error)
	LogLevel          string  `yaml:"log_level" json:"log_level"`
	// LogEncoding selects json or console output
	LogEncoding       string  `yaml:"log_encoding" json:"log_encoding"`
	// Development enables colored levels and stack traces on errors
	Development       bool    `yaml:"development" json:"development"`
	// TraceSamplingRate is the fraction of traced operations exported (0 to 1)
	TraceSamplingRate float64 `yaml:"trace_sampling_rate" json:"trace_sampling_rate"`
}

// NewFrameConfig creates a FrameConfig with defaults.
func NewFrameConfig(name string) *FrameConfig {
	return &FrameConfig{
		Name:            name,
		DefaultPadding:  PaddingPadWithNaNs,
		LockPolicy:      LockPolicyLock,
		InitialCapacity: 0,
		Sampling: SamplingConfig{
			Seed: 0,
		},
		Observability: ObservabilityConfig{
			EnableMetrics:     false,
			LogLevel:          "info",
			LogEncoding:       "json",
			Development:       false,
			TraceSamplingRate: 1.0,
		},
	}
}

// Validate checks that the configuration is usable.
func (c *FrameConfig) Validate() error {
	switch c.DefaultPadding {
	case PaddingPadWithNaNs, PaddingDontPad:
	default:
		return fmt.Errorf("default_padding must be %q or %q, got %q",
			PaddingPadWithNaNs, PaddingDontPad, c.DefaultPadding)
	}
	switch c.LockPolicy {
	case LockPolicyLock, LockPolicyDontLock:
	default:
		return fmt.Errorf("lock_policy must be %q or %q, got %q",
			LockPolicyLock, LockPolicyDontLock, c.LockPolicy)
	}
	if c.InitialCapacity < 0 {
		return fmt.Errorf("initial_capacity cannot be negative")
	}
	switch c.Observability.LogEncoding {
	case "", "json", "console":
	default:
		return fmt.Errorf("log_encoding must be json or console, got %q", c.Observability.LogEncoding)
	}
	if r := c.Observability.TraceSamplingRate; r < 0 || r > 1 {
		return fmt.Errorf("trace_sampling_rate must be between 0 and 1, got %g", r)
	}
	return nil
}

// PadsWithNaNs returns true if the default padding policy pads short columns
func (c *FrameConfig) PadsWithNaNs() bool {
	return c.DefaultPadding == PaddingPadWithNaNs
}

// Locks returns true if load operations lock by default
func (c *FrameConfig) Locks() bool {
	return c.LockPolicy != LockPolicyDontLock
}
