// hot-reload.go: dynamic configuration with Argus integration
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package xanthos

import (
	"sync"
	"time"

	"github.com/agilira/argus"
)

// HotConfig provides dynamic configuration reload capabilities using Argus.
// It watches a configuration file and records updated slot map settings
// when changes are detected.
//
// The slot map itself is unsynchronized, so HotConfig never mutates it from
// the watcher goroutine. Reloads only update the stored configuration and
// invoke OnReload; the goroutine that owns the map picks up the new values
// at its next safe point, typically by calling SetMaxAge and EvictExpired
// with the reloaded MaxAge.
type HotConfig struct {
	watcher *argus.Watcher
	logger  Logger
	mu      sync.RWMutex
	config  Config

	// OnReload is called after configuration is successfully reloaded.
	// This callback is optional and must be fast and non-blocking.
	// It runs on the watcher goroutine.
	OnReload func(oldConfig, newConfig Config)
}

// HotConfigOptions configures hot reload behavior.
type HotConfigOptions struct {
	// ConfigPath is the path to the configuration file to watch.
	// Supports JSON, YAML, TOML, HCL, INI, Properties formats.
	ConfigPath string

	// PollInterval is how often to check for configuration changes.
	// Default: 1 second. Minimum: 100ms.
	PollInterval time.Duration

	// OnReload is called after configuration is successfully reloaded.
	OnReload func(oldConfig, newConfig Config)

	// Logger for hot reload operations.
	// If nil, NoOpLogger is used.
	Logger Logger
}

// NewHotConfig creates a hot-reloadable configuration source for a slot
// map. It starts watching the configuration file immediately.
//
// Example configuration file (YAML):
//
//	slotmap:
//	  max_age: "30s"
//	  initial_capacity: 1024
//	  max_capacity: 1048576
//
// Supported configuration keys:
//   - slotmap.max_age (duration string): Lease duration for EvictExpired
//     (e.g., "30s", "5m")
//   - slotmap.initial_capacity (int): Slots pre-allocated at construction
//   - slotmap.max_capacity (int): Upper bound on slot table growth
//
// Note: Capacity changes require map reconstruction and are only picked up
// by maps built after the reload. MaxAge is the one setting a running map
// can apply, via SetMaxAge from its owning goroutine.
func NewHotConfig(opts HotConfigOptions) (*HotConfig, error) {
	if opts.ConfigPath == "" {
		return nil, NewErrInvalidConfigPath()
	}

	if opts.PollInterval == 0 {
		opts.PollInterval = 1 * time.Second
	} else if opts.PollInterval < 100*time.Millisecond {
		opts.PollInterval = 100 * time.Millisecond
	}

	if opts.Logger == nil {
		opts.Logger = NoOpLogger{}
	}

	hc := &HotConfig{
		logger:   opts.Logger,
		OnReload: opts.OnReload,
		config:   DefaultConfig(), // Start with defaults
	}

	// Create Argus config with specified PollInterval for fast file change detection
	argusConfig := argus.Config{
		PollInterval: opts.PollInterval,
	}

	// Use UniversalConfigWatcherWithConfig to pass custom poll interval
	watcher, err := argus.UniversalConfigWatcherWithConfig(opts.ConfigPath, hc.handleConfigChange, argusConfig)
	if err != nil {
		return nil, err
	}
	hc.watcher = watcher

	return hc, nil
}

// Start begins watching the configuration file for changes.
// Note: The watcher monitors file changes at the configured PollInterval.
func (hc *HotConfig) Start() error {
	// Check if already running to avoid ARGUS_WATCHER_BUSY error
	if hc.watcher.IsRunning() {
		return nil // Already started
	}
	return hc.watcher.Start()
}

// Stop stops watching the configuration file.
// Returns any error from stopping the watcher.
func (hc *HotConfig) Stop() error {
	return hc.watcher.Stop()
}

// GetConfig returns the current configuration (thread-safe).
func (hc *HotConfig) GetConfig() Config {
	hc.mu.RLock()
	defer hc.mu.RUnlock()
	return hc.config
}

// MaxAge returns the most recently loaded lease duration (thread-safe).
// Convenience for the common reload loop:
//
//	sm.SetMaxAge(hc.MaxAge())
//	sm.EvictExpired()
func (hc *HotConfig) MaxAge() time.Duration {
	hc.mu.RLock()
	defer hc.mu.RUnlock()
	return hc.config.MaxAge
}

// handleConfigChange is called by Argus when configuration changes.
func (hc *HotConfig) handleConfigChange(configData map[string]interface{}) {
	hc.mu.Lock()
	oldConfig := hc.config
	newConfig := hc.parseConfig(configData)
	hc.config = newConfig
	hc.mu.Unlock()

	hc.logger.Info("slot map configuration reloaded",
		"max_age", newConfig.MaxAge,
		"initial_capacity", newConfig.InitialCapacity,
		"max_capacity", newConfig.MaxCapacity,
	)

	// Trigger callback if set
	if hc.OnReload != nil {
		hc.OnReload(oldConfig, newConfig)
	}
}

// parsePositiveInt extracts a positive integer from interface{} value.
// Supports both int and float64 types (YAML/JSON may vary).
func parsePositiveInt(value interface{}) (int, bool) {
	switch v := value.(type) {
	case int:
		if v > 0 {
			return v, true
		}
	case float64:
		if v > 0 {
			return int(v), true
		}
	}
	return 0, false
}

// parseDuration extracts a time.Duration from a string value.
func parseDuration(value interface{}) (time.Duration, bool) {
	if str, ok := value.(string); ok {
		if d, err := time.ParseDuration(str); err == nil && d >= 0 {
			return d, true
		}
	}
	return 0, false
}

// parseConfig extracts slot map configuration from Argus config data.
func (hc *HotConfig) parseConfig(data map[string]interface{}) Config {
	config := DefaultConfig()

	// Extract slotmap section - Argus might nest it or provide it directly
	section, ok := data["slotmap"].(map[string]interface{})
	if !ok {
		// Try if the whole data IS the slotmap section
		if _, hasMaxAge := data["max_age"]; hasMaxAge {
			section = data
		} else {
			return config
		}
	}

	// Parse MaxAge (string duration like "30s", "5m")
	if maxAge, ok := parseDuration(section["max_age"]); ok {
		config.MaxAge = maxAge
	}

	// Parse InitialCapacity
	if capacity, ok := parsePositiveInt(section["initial_capacity"]); ok {
		config.InitialCapacity = capacity
	}

	// Parse MaxCapacity
	if capacity, ok := parsePositiveInt(section["max_capacity"]); ok {
		config.MaxCapacity = capacity
	}

	return config
}
