// interfaces.go: public interfaces for Xanthos
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package xanthos

// Stats provides a snapshot of slot map activity.
type Stats struct {
	// Inserts is the number of successful Insert operations
	Inserts uint64

	// Removes is the number of successful Remove operations,
	// including entries removed by Drain and Clear
	Removes uint64

	// Reuses is the number of inserts served from the free list
	Reuses uint64

	// Grows is the number of inserts that appended a new slot
	Grows uint64

	// Evictions is the number of entries removed by age-based sweeps
	Evictions uint64

	// Hits is the number of Get/GetPtr calls that resolved a key
	Hits uint64

	// Misses is the number of Get/GetPtr calls with an invalid key
	Misses uint64

	// Size is the current number of occupied slots
	Size int

	// Capacity is the current slot table length
	Capacity int
}

// HitRatio returns the lookup hit ratio as a percentage (0-100).
// Returns 0.0 if no lookups have been performed yet.
func (s Stats) HitRatio() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

// ReuseRatio returns the share of inserts served from the free list as a
// percentage (0-100). A high ratio means the map is cycling slots the way
// it is designed to; a low ratio means the table is mostly still growing.
func (s Stats) ReuseRatio() float64 {
	total := s.Reuses + s.Grows
	if total == 0 {
		return 0
	}
	return float64(s.Reuses) / float64(total) * 100
}

// Logger defines a minimal logging interface with zero overhead.
// Implementations should use structured logging and be allocation-free.
type Logger interface {
	// Debug logs a debug message with optional key-value pairs.
	Debug(msg string, keyvals ...interface{})

	// Info logs an info message with optional key-value pairs.
	Info(msg string, keyvals ...interface{})

	// Warn logs a warning message with optional key-value pairs.
	Warn(msg string, keyvals ...interface{})

	// Error logs an error message with optional key-value pairs.
	Error(msg string, keyvals ...interface{})
}

// NoOpLogger is a logger that does nothing. Used as default to avoid nil checks.
type NoOpLogger struct{}

// Debug does nothing (no-op implementation).
func (NoOpLogger) Debug(msg string, keyvals ...interface{}) {}

// Info does nothing (no-op implementation).
func (NoOpLogger) Info(msg string, keyvals ...interface{}) {}

// Warn does nothing (no-op implementation).
func (NoOpLogger) Warn(msg string, keyvals ...interface{}) {}

// Error does nothing (no-op implementation).
func (NoOpLogger) Error(msg string, keyvals ...interface{}) {}

// TimeProvider provides current time with caching for performance.
// This interface allows injecting optimized time implementations, and
// fixed clocks in tests.
type TimeProvider interface {
	// Now returns the current time in nanoseconds since epoch.
	// This method must be very fast and allocation-free.
	Now() int64
}

// MetricsCollector defines an interface for collecting slot map operation
// metrics. Implementations can send metrics to Prometheus, DataDog, StatsD,
// or other monitoring systems. Designed for zero overhead when unset.
//
// Performance requirements:
//   - All methods must be allocation-free
//   - All methods must complete in < 100ns for production use
//
// The slot map itself is single-threaded, so implementations are only
// called from the goroutine that owns the map.
type MetricsCollector interface {
	// RecordInsert records an Insert with its latency and whether the
	// slot came from the free list (reused) or was newly appended.
	RecordInsert(latencyNs int64, reused bool)

	// RecordRemove records a successful Remove with its latency.
	RecordRemove(latencyNs int64)

	// RecordGet records a Get/GetPtr with its latency and whether the
	// key resolved (hit) or was out of range, vacant or stale (miss).
	RecordGet(latencyNs int64, hit bool)

	// RecordEviction records an age-based eviction sweep that removed
	// evicted entries.
	RecordEviction(evicted int)
}

// NoOpMetricsCollector is a metrics collector that does nothing.
// Used as default to avoid nil checks and ensure zero overhead.
// All methods are inlined by the compiler for maximum performance.
type NoOpMetricsCollector struct{}

// RecordInsert does nothing. Inlined by compiler.
func (NoOpMetricsCollector) RecordInsert(latencyNs int64, reused bool) {}

// RecordRemove does nothing. Inlined by compiler.
func (NoOpMetricsCollector) RecordRemove(latencyNs int64) {}

// RecordGet does nothing. Inlined by compiler.
func (NoOpMetricsCollector) RecordGet(latencyNs int64, hit bool) {}

// RecordEviction does nothing. Inlined by compiler.
func (NoOpMetricsCollector) RecordEviction(evicted int) {}
