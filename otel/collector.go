// Package otel provides OpenTelemetry integration for xanthos slot map metrics.
//
// This package implements the xanthos.MetricsCollector interface using
// OpenTelemetry, enabling enterprise-grade observability with automatic
// percentile calculation (p50, p95, p99) and multi-backend support
// (Prometheus, Jaeger, DataDog, Grafana).
//
// # Usage
//
//	import (
//	    "github.com/agilira/xanthos"
//	    xanthosotel "github.com/agilira/xanthos/otel"
//	    "go.opentelemetry.io/otel/exporters/prometheus"
//	    "go.opentelemetry.io/otel/sdk/metric"
//	)
//
//	// Setup OTEL with Prometheus exporter
//	exporter, _ := prometheus.New()
//	provider := metric.NewMeterProvider(metric.WithReader(exporter))
//
//	// Create collector
//	collector, _ := xanthosotel.NewOTelMetricsCollector(provider)
//
//	// Configure the slot map
//	sm := xanthos.New[Session](xanthos.Config{
//	    MetricsCollector: collector,
//	})
//
// # Metrics Exposed
//
//   - xanthos_insert_latency_ns: Histogram of Insert() latencies in nanoseconds
//   - xanthos_remove_latency_ns: Histogram of Remove() latencies in nanoseconds
//   - xanthos_get_latency_ns: Histogram of Get()/GetPtr() latencies in nanoseconds
//   - xanthos_get_hits_total: Counter of resolved lookups
//   - xanthos_get_misses_total: Counter of out-of-range, vacant or stale lookups
//   - xanthos_slot_reuses_total: Counter of inserts served from the free list
//   - xanthos_slot_grows_total: Counter of inserts that appended a new slot
//   - xanthos_evictions_total: Counter of entries removed by age-based sweeps
//
// All metrics are automatically aggregated by the OTEL SDK and can be exported
// to any OTEL-compatible backend. Histograms automatically calculate percentiles.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0
package otel

import (
	"context"
	"errors"

	"github.com/agilira/xanthos"
	"go.opentelemetry.io/otel/metric"
)

// OTelMetricsCollector implements xanthos.MetricsCollector using OpenTelemetry.
//
// The slot map is single-threaded, so the collector is only invoked from the
// goroutine that owns the map; the underlying OTEL instruments are
// nevertheless safe for concurrent use across multiple maps.
//
// Performance: minimal overhead (<100ns per operation), allocation-free
// after initialization.
type OTelMetricsCollector struct {
	insertLatency metric.Int64Histogram // Insert operation latency histogram
	removeLatency metric.Int64Histogram // Remove operation latency histogram
	getLatency    metric.Int64Histogram // Get/GetPtr operation latency histogram
	hits          metric.Int64Counter   // Resolved lookups counter
	misses        metric.Int64Counter   // Failed lookups counter
	reuses        metric.Int64Counter   // Free-list reuse counter
	grows         metric.Int64Counter   // Table growth counter
	evictions     metric.Int64Counter   // Age-based evictions counter
}

// Options for configuring OTelMetricsCollector.
type Options struct {
	// MeterName is the name of the OpenTelemetry meter.
	// Default: "github.com/agilira/xanthos"
	MeterName string
}

// Option is a functional option for configuring OTelMetricsCollector.
type Option func(*Options)

// WithMeterName sets a custom meter name.
// This is useful for distinguishing metrics from multiple slot map instances
// or integrating with existing OTEL instrumentation.
func WithMeterName(name string) Option {
	return func(o *Options) {
		o.MeterName = name
	}
}

// NewOTelMetricsCollector creates a new OpenTelemetry metrics collector.
//
// Parameters:
//   - provider: OpenTelemetry MeterProvider. Must not be nil.
//   - opts: Optional configuration options (meter name, etc.)
//
// Returns:
//   - *OTelMetricsCollector: The collector instance
//   - error: an error if provider is nil, or OTEL instrument creation errors
//
// The collector creates Int64Histograms for latencies (Insert, Remove, Get)
// and Int64Counters for hits, misses, reuses, grows and evictions.
func NewOTelMetricsCollector(provider metric.MeterProvider, opts ...Option) (*OTelMetricsCollector, error) {
	if provider == nil {
		return nil, errors.New("meter provider cannot be nil")
	}

	// Apply options
	options := Options{
		MeterName: "github.com/agilira/xanthos",
	}
	for _, opt := range opts {
		opt(&options)
	}

	// Create meter
	meter := provider.Meter(options.MeterName)

	// Create collector
	collector := &OTelMetricsCollector{}

	var err error
	collector.insertLatency, err = meter.Int64Histogram(
		"xanthos_insert_latency_ns",
		metric.WithDescription("Latency of Insert operations in nanoseconds"),
		metric.WithUnit("ns"),
	)
	if err != nil {
		return nil, err
	}

	collector.removeLatency, err = meter.Int64Histogram(
		"xanthos_remove_latency_ns",
		metric.WithDescription("Latency of Remove operations in nanoseconds"),
		metric.WithUnit("ns"),
	)
	if err != nil {
		return nil, err
	}

	collector.getLatency, err = meter.Int64Histogram(
		"xanthos_get_latency_ns",
		metric.WithDescription("Latency of Get operations in nanoseconds"),
		metric.WithUnit("ns"),
	)
	if err != nil {
		return nil, err
	}

	collector.hits, err = meter.Int64Counter(
		"xanthos_get_hits_total",
		metric.WithDescription("Total number of resolved lookups"),
	)
	if err != nil {
		return nil, err
	}

	collector.misses, err = meter.Int64Counter(
		"xanthos_get_misses_total",
		metric.WithDescription("Total number of failed lookups (out of range, vacant or stale keys)"),
	)
	if err != nil {
		return nil, err
	}

	collector.reuses, err = meter.Int64Counter(
		"xanthos_slot_reuses_total",
		metric.WithDescription("Total number of inserts served from the free list"),
	)
	if err != nil {
		return nil, err
	}

	collector.grows, err = meter.Int64Counter(
		"xanthos_slot_grows_total",
		metric.WithDescription("Total number of inserts that appended a new slot"),
	)
	if err != nil {
		return nil, err
	}

	collector.evictions, err = meter.Int64Counter(
		"xanthos_evictions_total",
		metric.WithDescription("Total number of entries removed by age-based sweeps"),
	)
	if err != nil {
		return nil, err
	}

	return collector, nil
}

// RecordInsert records an Insert operation.
//
// Parameters:
//   - latencyNs: Operation latency in nanoseconds. Must be >= 0.
//   - reused: Whether the slot came from the free list (true) or was
//     newly appended (false).
//
// This method records latency to the Insert histogram and increments
// either the reuses or the grows counter.
func (c *OTelMetricsCollector) RecordInsert(latencyNs int64, reused bool) {
	ctx := context.Background()

	c.insertLatency.Record(ctx, latencyNs)

	if reused {
		c.reuses.Add(ctx, 1)
	} else {
		c.grows.Add(ctx, 1)
	}
}

// RecordRemove records a successful Remove operation.
//
// Parameters:
//   - latencyNs: Operation latency in nanoseconds. Must be >= 0.
//
// This method records latency to the Remove latency histogram.
func (c *OTelMetricsCollector) RecordRemove(latencyNs int64) {
	c.removeLatency.Record(context.Background(), latencyNs)
}

// RecordGet records a Get or GetPtr operation.
//
// Parameters:
//   - latencyNs: Operation latency in nanoseconds. Must be >= 0.
//   - hit: Whether the key resolved (true) or was out of range, vacant
//     or stale (false).
//
// This method records latency to the Get latency histogram and increments
// either the hits or the misses counter.
func (c *OTelMetricsCollector) RecordGet(latencyNs int64, hit bool) {
	ctx := context.Background()

	c.getLatency.Record(ctx, latencyNs)

	if hit {
		c.hits.Add(ctx, 1)
	} else {
		c.misses.Add(ctx, 1)
	}
}

// RecordEviction records an age-based eviction sweep.
//
// Parameters:
//   - evicted: Number of entries the sweep removed. Must be >= 0.
//
// This method adds evicted to the evictions counter.
func (c *OTelMetricsCollector) RecordEviction(evicted int) {
	c.evictions.Add(context.Background(), int64(evicted))
}

// Compile-time interface check
var _ xanthos.MetricsCollector = (*OTelMetricsCollector)(nil)
