// key.go: generational slot keys
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package xanthos

import "fmt"

// Key identifies one tenancy of one slot. It bundles the slot index with
// the generation the slot had when the key was issued, so a key held after
// its slot was vacated and reassigned is rejected instead of silently
// addressing the new tenant's value.
//
// Keys are opaque values: they are comparable with ==, copyable, and usable
// as map keys, but only the SlotMap that issued a key can resolve it.
// The zero Key is never valid (generations start at 1).
type Key struct {
	index      uint32
	generation uint32
}

// Index returns the raw slot index. It is exposed for logging and
// debugging; resolving values always goes through the full key so that
// stale generations are caught.
func (k Key) Index() int {
	return int(k.index)
}

// Generation returns the generation the key was issued under.
func (k Key) Generation() uint32 {
	return k.generation
}

// IsZero reports whether k is the zero Key, which no SlotMap ever issues.
func (k Key) IsZero() bool {
	return k == Key{}
}

// String implements fmt.Stringer. Format: "xanthos.Key(index@generation)".
func (k Key) String() string {
	return fmt.Sprintf("xanthos.Key(%d@%d)", k.index, k.generation)
}
