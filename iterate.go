// iterate.go: range-over-func iterators for occupied slots
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package xanthos

import "iter"

// All returns an iterator over every occupied slot in ascending index
// order, yielding the key and the stored value. The sequence is lazy,
// finite and restartable, and performs no mutation.
//
// Inserting or removing while an iteration is in progress leaves the
// interleaving undefined; restart the iterator after mutating.
func (m *SlotMap[V]) All() iter.Seq2[Key, V] {
	return func(yield func(Key, V) bool) {
		for i := range m.slots {
			s := &m.slots[i]
			if !s.occupied {
				continue
			}
			key := Key{index: uint32(i), generation: s.gen} // #nosec G115 - bounded by maxSlots
			if !yield(key, s.value) {
				return
			}
		}
	}
}

// Keys returns an iterator over the keys of all occupied slots in
// ascending index order.
func (m *SlotMap[V]) Keys() iter.Seq[Key] {
	return func(yield func(Key) bool) {
		for key := range m.All() {
			if !yield(key) {
				return
			}
		}
	}
}

// Values returns an iterator over the values of all occupied slots in
// ascending index order.
func (m *SlotMap[V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, value := range m.All() {
			if !yield(value) {
				return
			}
		}
	}
}

// Drain returns an iterator that removes each occupied slot as it is
// yielded, visiting indices in ascending order. A fully consumed Drain
// leaves the map empty with its capacity retained and every freed index on
// the free list; stopping early leaves the remaining entries in place.
//
// Each yielded entry is vacated before the yield, so its key is already
// stale by the time the loop body sees it.
func (m *SlotMap[V]) Drain() iter.Seq2[Key, V] {
	return func(yield func(Key, V) bool) {
		for i := range m.slots {
			s := &m.slots[i]
			if !s.occupied {
				continue
			}
			idx := uint32(i) // #nosec G115 - bounded by maxSlots
			key := Key{index: idx, generation: s.gen}
			value := m.vacate(idx, s)
			m.removes++
			if !yield(key, value) {
				return
			}
		}
	}
}
