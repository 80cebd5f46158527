// slotmap.go: core slot table with intrusive LIFO free list
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package xanthos

import (
	"time"
)

// noFreeSlot is the free-list end sentinel. The table never grows far
// enough for a real slot to carry this index (see DefaultMaxCapacity).
const noFreeSlot = ^uint32(0)

// slot is one storage unit of the table. It is a tagged variant: while
// occupied it carries the value and its lease timestamp, while vacant it
// carries the index of the next free slot. The generation counter is bumped
// on every occupied->vacant transition and outlives both states.
type slot[V any] struct {
	value    V
	leasedAt int64  // TimeProvider timestamp at insert, nanoseconds
	next     uint32 // next free slot index, meaningful only while vacant
	gen      uint32 // starts at 1 so the zero Key never matches
	occupied bool
}

// SlotMap is a growable table of slots with O(1) insert, remove and lookup.
// Slots are never removed from the table, only toggled between occupied and
// vacant; vacant slots are threaded into a LIFO free list so the most
// recently vacated slot is the next one assigned.
//
// A SlotMap is not safe for concurrent use. Callers that share one across
// goroutines must provide their own mutual exclusion.
type SlotMap[V any] struct {
	slots    []slot[V]
	freeHead uint32
	size     int

	maxSlots    int
	maxAgeNanos int64

	timeProvider TimeProvider
	logger       Logger
	metrics      MetricsCollector
	onEvict      func(key Key, value any)

	// counters, plain fields: the map is single-threaded
	inserts   uint64
	removes   uint64
	reuses    uint64
	grows     uint64
	evictions uint64
	hits      uint64
	misses    uint64
}

// New creates a slot map from the given configuration. A zero Config is
// valid: the map starts empty with zero capacity and grows on demand.
func New[V any](config Config) *SlotMap[V] {
	_ = config.Validate() // normalization only, never fails

	m := &SlotMap[V]{
		freeHead:     noFreeSlot,
		maxSlots:     config.MaxCapacity,
		maxAgeNanos:  int64(config.MaxAge),
		timeProvider: config.TimeProvider,
		logger:       config.Logger,
		metrics:      config.MetricsCollector,
		onEvict:      config.OnEvict,
	}

	if config.InitialCapacity > 0 {
		m.reserve(config.InitialCapacity)
	}

	return m
}

// NewWithCapacity creates a slot map with n slots pre-allocated, all
// vacant. Equivalent to New with Config{InitialCapacity: n}.
func NewWithCapacity[V any](n int) *SlotMap[V] {
	return New[V](Config{InitialCapacity: n})
}

// reserve appends n vacant slots and threads them into the free list in
// ascending order, so a fresh map hands out slot 0 first.
func (m *SlotMap[V]) reserve(n int) {
	first := len(m.slots)
	for i := 0; i < n; i++ {
		idx := uint32(first + i) // #nosec G115 - bounded by maxSlots
		m.slots = append(m.slots, slot[V]{gen: 1, next: idx + 1})
	}
	m.slots[len(m.slots)-1].next = m.freeHead
	m.freeHead = uint32(first) // #nosec G115 - bounded by maxSlots
}

// Insert stores value in the most recently vacated slot, growing the table
// by one slot when the free list is empty. It returns the key for the new
// tenancy.
//
// Insert fails only when the table is at MaxCapacity and no slot is vacant;
// the returned error carries code XANTHOS_SLOTS_EXHAUSTED and is retryable
// once entries have been removed.
func (m *SlotMap[V]) Insert(value V) (Key, error) {
	now := m.timeProvider.Now()

	var idx uint32
	reused := m.freeHead != noFreeSlot
	if reused {
		// Pop the free-list head.
		idx = m.freeHead
		m.freeHead = m.slots[idx].next
		m.reuses++
	} else {
		if len(m.slots) >= m.maxSlots {
			return Key{}, NewErrSlotsExhausted(len(m.slots), m.maxSlots)
		}
		idx = uint32(len(m.slots)) // #nosec G115 - bounded by maxSlots
		m.slots = append(m.slots, slot[V]{gen: 1})
		m.grows++
	}

	s := &m.slots[idx]
	s.value = value
	s.leasedAt = now
	s.occupied = true
	m.size++
	m.inserts++
	m.metrics.RecordInsert(m.timeProvider.Now()-now, reused)

	return Key{index: idx, generation: s.gen}, nil
}

// Remove validates key, vacates its slot and returns the stored value.
// The slot's generation is bumped and its index pushed onto the free list,
// ready for the next Insert. Removing with an out-of-range, vacant or stale
// key is a safe no-op returning found=false.
func (m *SlotMap[V]) Remove(key Key) (value V, found bool) {
	start := m.timeProvider.Now()
	s := m.lookup(key)
	if s == nil {
		var zero V
		return zero, false
	}

	value = m.vacate(key.index, s)
	m.removes++
	m.metrics.RecordRemove(m.timeProvider.Now() - start)
	return value, true
}

// Get retrieves the value stored under key.
// Returns the zero value and false for out-of-range, vacant or stale keys.
func (m *SlotMap[V]) Get(key Key) (value V, found bool) {
	start := m.timeProvider.Now()
	s := m.lookup(key)
	if s == nil {
		m.misses++
		m.metrics.RecordGet(m.timeProvider.Now()-start, false)
		var zero V
		return zero, false
	}

	m.hits++
	m.metrics.RecordGet(m.timeProvider.Now()-start, true)
	return s.value, true
}

// GetPtr returns a pointer to the value stored under key, for in-place
// mutation. The pointer stays valid until the next Insert (growth may move
// the backing array) or until the slot is vacated; holding it across other
// map operations is a caller bug the generation counter cannot catch.
func (m *SlotMap[V]) GetPtr(key Key) (*V, bool) {
	start := m.timeProvider.Now()
	s := m.lookup(key)
	if s == nil {
		m.misses++
		m.metrics.RecordGet(m.timeProvider.Now()-start, false)
		return nil, false
	}

	m.hits++
	m.metrics.RecordGet(m.timeProvider.Now()-start, true)
	return &s.value, true
}

// Set replaces the value stored under key, keeping the slot's tenancy and
// lease timestamp. Reports whether the key resolved; stale keys never write.
func (m *SlotMap[V]) Set(key Key, value V) bool {
	s := m.lookup(key)
	if s == nil {
		return false
	}
	s.value = value
	return true
}

// Contains reports whether key currently resolves to an occupied slot.
func (m *SlotMap[V]) Contains(key Key) bool {
	return m.lookup(key) != nil
}

// Age returns how long the entry under key has been in the map.
// Returns false for keys that do not resolve.
func (m *SlotMap[V]) Age(key Key) (time.Duration, bool) {
	s := m.lookup(key)
	if s == nil {
		return 0, false
	}
	return time.Duration(m.timeProvider.Now() - s.leasedAt), true
}

// Len returns the number of occupied slots.
func (m *SlotMap[V]) Len() int {
	return m.size
}

// Capacity returns the current slot table length, occupied and vacant
// alike. The table never shrinks, so Capacity is monotonic.
func (m *SlotMap[V]) Capacity() int {
	return len(m.slots)
}

// IsEmpty reports whether no slot is occupied.
func (m *SlotMap[V]) IsEmpty() bool {
	return m.size == 0
}

// Clear vacates every occupied slot and rebuilds the free list in ascending
// index order. Capacity is retained; generations of previously occupied
// slots are bumped so all outstanding keys become stale. OnEvict is not
// invoked: Clear is a reset, not an eviction sweep.
func (m *SlotMap[V]) Clear() {
	var zero V
	for i := range m.slots {
		s := &m.slots[i]
		if s.occupied {
			s.value = zero
			s.occupied = false
			s.gen++
			m.removes++
		}
		s.next = uint32(i) + 1 // #nosec G115 - bounded by maxSlots
	}

	m.freeHead = noFreeSlot
	if len(m.slots) > 0 {
		m.slots[len(m.slots)-1].next = noFreeSlot
		m.freeHead = 0
	}
	m.size = 0
}

// EvictOlderThan removes every entry that has been in the map longer than
// maxAge, invoking OnEvict for each, and returns the number removed.
// Freed slots are pushed onto the free list in ascending index order, so
// the highest evicted index is reused first.
//
// The sweep is O(capacity); it is meant to run periodically from the
// goroutine that owns the map, not on the hot path.
func (m *SlotMap[V]) EvictOlderThan(maxAge time.Duration) int {
	now := m.timeProvider.Now()
	cutoff := now - int64(maxAge)

	evicted := 0
	for i := range m.slots {
		s := &m.slots[i]
		if !s.occupied || s.leasedAt >= cutoff {
			continue
		}

		idx := uint32(i) // #nosec G115 - bounded by maxSlots
		key := Key{index: idx, generation: s.gen}
		value := m.vacate(idx, s)
		evicted++
		if m.onEvict != nil {
			m.onEvict(key, value)
		}
	}

	if evicted > 0 {
		m.evictions += uint64(evicted)
		m.metrics.RecordEviction(evicted)
		m.logger.Debug("eviction sweep completed",
			"evicted", evicted,
			"max_age", maxAge,
			"remaining", m.size,
		)
	}
	return evicted
}

// EvictExpired runs EvictOlderThan with the configured MaxAge.
// Returns 0 without scanning when no MaxAge is configured.
func (m *SlotMap[V]) EvictExpired() int {
	if m.maxAgeNanos <= 0 {
		return 0
	}
	return m.EvictOlderThan(time.Duration(m.maxAgeNanos))
}

// MaxAge returns the lease duration used by EvictExpired (0 = never).
func (m *SlotMap[V]) MaxAge() time.Duration {
	return time.Duration(m.maxAgeNanos)
}

// SetMaxAge changes the lease duration used by EvictExpired. Like every
// other method it must only be called by the goroutine that owns the map.
func (m *SlotMap[V]) SetMaxAge(maxAge time.Duration) {
	if maxAge < 0 {
		maxAge = 0
	}
	m.maxAgeNanos = int64(maxAge)
}

// Stats returns a snapshot of the map's counters.
func (m *SlotMap[V]) Stats() Stats {
	return Stats{
		Inserts:   m.inserts,
		Removes:   m.removes,
		Reuses:    m.reuses,
		Grows:     m.grows,
		Evictions: m.evictions,
		Hits:      m.hits,
		Misses:    m.misses,
		Size:      m.size,
		Capacity:  len(m.slots),
	}
}

// lookup resolves key to its slot, or nil when the index is out of range,
// the slot is vacant, or the generation is stale.
func (m *SlotMap[V]) lookup(key Key) *slot[V] {
	if int64(key.index) >= int64(len(m.slots)) {
		return nil
	}
	s := &m.slots[key.index]
	if !s.occupied || s.gen != key.generation {
		return nil
	}
	return s
}

// vacate clears an occupied slot, bumps its generation and pushes its index
// onto the free list. Returns the value that was stored. The caller adjusts
// the operation counters.
func (m *SlotMap[V]) vacate(idx uint32, s *slot[V]) V {
	value := s.value

	var zero V
	s.value = zero // release the reference, the GC must be able to collect it
	s.occupied = false
	s.gen++
	s.next = m.freeHead
	m.freeHead = idx
	m.size--

	return value
}
