// errors.go: structured error handling for Xanthos operations
//
// This file provides structured error types using the go-errors library,
// enabling rich error context, categorization, and standardized error codes.
// Note that invalid keys are not errors: lookups and removals with stale or
// out-of-range keys report found=false, keeping speculative access cheap.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package xanthos

import (
	goerrors "errors"

	"github.com/agilira/go-errors"
)

// Error codes for Xanthos slot map operations
const (
	// Configuration errors (1xxx)
	ErrCodeInvalidConfig     errors.ErrorCode = "XANTHOS_INVALID_CONFIG"
	ErrCodeInvalidCapacity   errors.ErrorCode = "XANTHOS_INVALID_CAPACITY"
	ErrCodeInvalidMaxAge     errors.ErrorCode = "XANTHOS_INVALID_MAX_AGE"
	ErrCodeInvalidConfigPath errors.ErrorCode = "XANTHOS_INVALID_CONFIG_PATH"

	// Operation errors (2xxx)
	ErrCodeSlotsExhausted errors.ErrorCode = "XANTHOS_SLOTS_EXHAUSTED"

	// Internal errors (5xxx)
	ErrCodeInternalError errors.ErrorCode = "XANTHOS_INTERNAL_ERROR"
)

// Common error messages
const (
	msgInvalidCapacity   = "invalid capacity: must be non-negative and within the index width"
	msgInvalidMaxAge     = "invalid max age: must be non-negative"
	msgInvalidConfigPath = "config path is required"
	msgSlotsExhausted    = "slot table is at max capacity and no slot is vacant"
	msgInternalError     = "internal slot map error"
)

// =============================================================================
// CONFIGURATION ERRORS
// =============================================================================

// NewErrInvalidCapacity creates an error for an unusable capacity value.
func NewErrInvalidCapacity(capacity int) error {
	return errors.NewWithContext(ErrCodeInvalidCapacity, msgInvalidCapacity, map[string]interface{}{
		"provided_capacity": capacity,
		"valid_range":       "0..DefaultMaxCapacity",
	})
}

// NewErrInvalidMaxAge creates an error for a negative lease duration.
func NewErrInvalidMaxAge(maxAge interface{}) error {
	return errors.NewWithContext(ErrCodeInvalidMaxAge, msgInvalidMaxAge, map[string]interface{}{
		"provided_max_age": maxAge,
	})
}

// NewErrInvalidConfigPath creates an error for a missing config file path.
func NewErrInvalidConfigPath() error {
	return errors.NewWithField(ErrCodeInvalidConfigPath, msgInvalidConfigPath, "field", "ConfigPath")
}

// =============================================================================
// OPERATION ERRORS
// =============================================================================

// NewErrSlotsExhausted creates an error when the slot table cannot grow
// further. Silently reusing an occupied index would alias two tenancies,
// so exhaustion is the one condition Insert surfaces.
func NewErrSlotsExhausted(capacity, maxCapacity int) error {
	return errors.NewWithContext(ErrCodeSlotsExhausted, msgSlotsExhausted, map[string]interface{}{
		"capacity":     capacity,
		"max_capacity": maxCapacity,
	}).AsRetryable() // Can be retried after entries are removed
}

// =============================================================================
// INTERNAL ERRORS
// =============================================================================

// NewErrInternal creates a generic internal error.
func NewErrInternal(operation string, cause error) error {
	if cause != nil {
		return errors.Wrap(cause, ErrCodeInternalError, msgInternalError).
			WithContext("operation", operation).
			WithSeverity("warning")
	}
	return errors.NewWithField(ErrCodeInternalError, msgInternalError, "operation", operation).
		WithSeverity("warning")
}

// =============================================================================
// ERROR CHECKING HELPERS
// =============================================================================

// IsSlotsExhausted checks if error reports an exhausted slot table.
func IsSlotsExhausted(err error) bool {
	return errors.HasCode(err, ErrCodeSlotsExhausted)
}

// IsConfigError checks if error is a configuration error.
func IsConfigError(err error) bool {
	if err == nil {
		return false
	}
	var coder errors.ErrorCoder
	if goerrors.As(err, &coder) {
		code := coder.ErrorCode()
		return code == ErrCodeInvalidConfig || code == ErrCodeInvalidCapacity ||
			code == ErrCodeInvalidMaxAge || code == ErrCodeInvalidConfigPath
	}
	return false
}

// IsRetryable checks if the error can be retried.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var retryable errors.Retryable
	if goerrors.As(err, &retryable) {
		return retryable.IsRetryable()
	}
	return false
}

// GetErrorCode extracts the error code from an error.
func GetErrorCode(err error) errors.ErrorCode {
	if err == nil {
		return ""
	}
	var coder errors.ErrorCoder
	if goerrors.As(err, &coder) {
		return coder.ErrorCode()
	}
	return ""
}

// GetErrorContext extracts context from an error.
func GetErrorContext(err error) map[string]interface{} {
	if err == nil {
		return nil
	}
	var xerr *errors.Error
	if goerrors.As(err, &xerr) {
		return xerr.Context
	}
	return nil
}
