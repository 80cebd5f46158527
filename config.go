// config.go: configuration for Xanthos
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package xanthos

import (
	"time"

	"github.com/agilira/go-timecache"
)

// Config holds configuration parameters for the slot map.
type Config struct {
	// InitialCapacity is the number of slots pre-allocated at
	// construction, all vacant. Default: DefaultInitialCapacity (0).
	InitialCapacity int

	// MaxCapacity is the upper bound on slot table growth. Insert fails
	// with XANTHOS_SLOTS_EXHAUSTED once the table holds MaxCapacity
	// occupied slots. Default: DefaultMaxCapacity (the index width).
	MaxCapacity int

	// MaxAge is the lease duration used by EvictExpired.
	// If 0, entries never expire. Default: 0 (no expiration).
	MaxAge time.Duration

	// Logger is used for debugging and monitoring.
	// If nil, NoOpLogger is used. Default: NoOpLogger.
	Logger Logger

	// TimeProvider provides current time for lease timestamps.
	// If nil, a default implementation is used. Default: system time.
	TimeProvider TimeProvider

	// MetricsCollector is used for collecting operation metrics
	// (latencies, hit/miss and reuse rates). If nil, NoOpMetricsCollector
	// is used (zero overhead). Default: NoOpMetricsCollector.
	MetricsCollector MetricsCollector

	// OnEvict is called for each entry removed by an age-based sweep.
	// This callback must be fast and non-blocking.
	OnEvict func(key Key, value any)
}

// Validate checks configuration parameters and applies sensible defaults.
// Returns nil (no actual validation errors, only normalization).
//
// This method is automatically called by New, so you typically don't need
// to call it manually. However, it's provided as a public API if you want
// to inspect the normalized configuration before creating a map.
//
// Default values applied:
//   - InitialCapacity: DefaultInitialCapacity (0) if < 0
//   - MaxCapacity: DefaultMaxCapacity if <= 0 or > DefaultMaxCapacity,
//     raised to InitialCapacity if smaller
//   - MaxAge: 0 (no expiration) if < 0
//   - Logger: NoOpLogger{} if nil
//   - TimeProvider: systemTimeProvider{} if nil
//   - MetricsCollector: NoOpMetricsCollector{} if nil
func (c *Config) Validate() error {
	if c.InitialCapacity < 0 {
		c.InitialCapacity = DefaultInitialCapacity
	}

	if c.MaxCapacity <= 0 || c.MaxCapacity > DefaultMaxCapacity {
		c.MaxCapacity = DefaultMaxCapacity
	}
	if c.MaxCapacity < c.InitialCapacity {
		c.MaxCapacity = c.InitialCapacity
	}

	if c.MaxAge < 0 {
		c.MaxAge = 0
	}

	if c.Logger == nil {
		c.Logger = NoOpLogger{}
	}

	if c.TimeProvider == nil {
		c.TimeProvider = &systemTimeProvider{}
	}

	if c.MetricsCollector == nil {
		c.MetricsCollector = NoOpMetricsCollector{}
	}

	return nil
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		InitialCapacity:  DefaultInitialCapacity,
		MaxCapacity:      DefaultMaxCapacity,
		Logger:           NoOpLogger{},
		TimeProvider:     &systemTimeProvider{},
		MetricsCollector: NoOpMetricsCollector{},
	}
}

// systemTimeProvider is the default time provider using go-timecache.
// This provides ~121x faster time access compared to time.Now() with zero
// allocations, which matters because every Insert stamps its lease.
type systemTimeProvider struct{}

func (t *systemTimeProvider) Now() int64 {
	return timecache.CachedTimeNano()
}
