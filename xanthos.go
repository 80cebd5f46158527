// xanthos.go: library version and defaults
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package xanthos

const (
	// Version of the Xanthos slot map library
	Version = "v0.1.0-dev"

	// DefaultInitialCapacity is the number of slots pre-allocated when the
	// configuration does not ask for any. Zero: the table grows on demand.
	DefaultInitialCapacity = 0

	// DefaultMaxCapacity is the default upper bound on slot table growth.
	// The top index is reserved for the free-list sentinel.
	DefaultMaxCapacity = 1<<32 - 1
)
