// config_test.go: tests for configuration normalization
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package xanthos

import (
	"testing"
	"time"
)

func TestConfig_Validate_Defaults(t *testing.T) {
	var cfg Config
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	if cfg.InitialCapacity != DefaultInitialCapacity {
		t.Errorf("expected InitialCapacity %d, got %d", DefaultInitialCapacity, cfg.InitialCapacity)
	}
	if cfg.MaxCapacity != DefaultMaxCapacity {
		t.Errorf("expected MaxCapacity %d, got %d", DefaultMaxCapacity, cfg.MaxCapacity)
	}
	if cfg.MaxAge != 0 {
		t.Errorf("expected MaxAge 0, got %v", cfg.MaxAge)
	}
	if cfg.Logger == nil {
		t.Error("expected default Logger")
	}
	if cfg.TimeProvider == nil {
		t.Error("expected default TimeProvider")
	}
	if cfg.MetricsCollector == nil {
		t.Error("expected default MetricsCollector")
	}
}

func TestConfig_Validate_Normalization(t *testing.T) {
	cfg := Config{
		InitialCapacity: -5,
		MaxCapacity:     -1,
		MaxAge:          -time.Second,
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	if cfg.InitialCapacity != 0 {
		t.Errorf("negative InitialCapacity must normalize to 0, got %d", cfg.InitialCapacity)
	}
	if cfg.MaxCapacity != DefaultMaxCapacity {
		t.Errorf("negative MaxCapacity must normalize to default, got %d", cfg.MaxCapacity)
	}
	if cfg.MaxAge != 0 {
		t.Errorf("negative MaxAge must normalize to 0, got %v", cfg.MaxAge)
	}
}

func TestConfig_Validate_MaxCapacityRaisedToInitial(t *testing.T) {
	cfg := Config{
		InitialCapacity: 100,
		MaxCapacity:     10,
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	if cfg.MaxCapacity != 100 {
		t.Errorf("MaxCapacity must be raised to InitialCapacity, got %d", cfg.MaxCapacity)
	}
}

func TestConfig_Validate_PreservesExplicitValues(t *testing.T) {
	logger := &recordingLogger{}
	clock := &fakeTimeProvider{}
	collector := &recordingCollector{}

	cfg := Config{
		InitialCapacity:  8,
		MaxCapacity:      64,
		MaxAge:           time.Minute,
		Logger:           logger,
		TimeProvider:     clock,
		MetricsCollector: collector,
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	if cfg.InitialCapacity != 8 || cfg.MaxCapacity != 64 || cfg.MaxAge != time.Minute {
		t.Error("explicit numeric values must be preserved")
	}
	if cfg.Logger != Logger(logger) || cfg.TimeProvider != TimeProvider(clock) {
		t.Error("explicit implementations must be preserved")
	}
	if cfg.MetricsCollector != MetricsCollector(collector) {
		t.Error("explicit collector must be preserved")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.InitialCapacity != DefaultInitialCapacity {
		t.Errorf("expected InitialCapacity %d, got %d", DefaultInitialCapacity, cfg.InitialCapacity)
	}
	if cfg.MaxCapacity != DefaultMaxCapacity {
		t.Errorf("expected MaxCapacity %d, got %d", DefaultMaxCapacity, cfg.MaxCapacity)
	}
	if cfg.Logger == nil || cfg.TimeProvider == nil || cfg.MetricsCollector == nil {
		t.Error("DefaultConfig must not leave nil implementations")
	}
}

func TestSystemTimeProvider(t *testing.T) {
	provider := &systemTimeProvider{}

	before := time.Now().Add(-time.Minute).UnixNano()
	now := provider.Now()
	after := time.Now().Add(time.Minute).UnixNano()

	if now < before || now > after {
		t.Errorf("systemTimeProvider.Now out of range: %d", now)
	}
}
