// slotmap_test.go: unit tests for the core slot map
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package xanthos

import (
	"testing"
	"time"
)

// fakeTimeProvider is a manually advanced clock shared by the tests.
type fakeTimeProvider struct {
	now int64
}

func (f *fakeTimeProvider) Now() int64 {
	return f.now
}

func (f *fakeTimeProvider) advance(d time.Duration) {
	f.now += int64(d)
}

func mustInsert[V any](t *testing.T, m *SlotMap[V], value V) Key {
	t.Helper()
	key, err := m.Insert(value)
	if err != nil {
		t.Fatalf("Insert(%v) failed: %v", value, err)
	}
	return key
}

func TestNew(t *testing.T) {
	sm := New[string](Config{})
	if sm == nil {
		t.Fatal("New returned nil")
	}

	if sm.Capacity() != 0 {
		t.Errorf("expected capacity 0, got %d", sm.Capacity())
	}

	if sm.Len() != 0 {
		t.Errorf("expected empty map, got size %d", sm.Len())
	}

	if !sm.IsEmpty() {
		t.Error("expected IsEmpty to be true")
	}
}

func TestNewWithCapacity(t *testing.T) {
	sm := NewWithCapacity[int](10)

	if sm.Capacity() != 10 {
		t.Errorf("expected capacity 10, got %d", sm.Capacity())
	}

	if sm.Len() != 0 {
		t.Errorf("expected size 0, got %d", sm.Len())
	}

	// Pre-reserved slots are handed out in ascending order.
	for i := 0; i < 10; i++ {
		key := mustInsert(t, sm, i)
		if key.Index() != i {
			t.Errorf("insert %d: expected slot %d, got %d", i, i, key.Index())
		}
	}

	// The 11th insert grows the table.
	key := mustInsert(t, sm, 10)
	if key.Index() != 10 {
		t.Errorf("expected slot 10 after growth, got %d", key.Index())
	}
	if sm.Capacity() != 11 {
		t.Errorf("expected capacity 11 after growth, got %d", sm.Capacity())
	}
}

func TestSlotMap_InsertGet_Basic(t *testing.T) {
	sm := New[string](Config{})

	key := mustInsert(t, sm, "value1")

	value, found := sm.Get(key)
	if !found {
		t.Error("expected to find value under freshly issued key")
	}
	if value != "value1" {
		t.Errorf("expected 'value1', got %q", value)
	}

	// Zero key is never issued.
	if _, found := sm.Get(Key{}); found {
		t.Error("expected zero key to miss")
	}
}

func TestSlotMap_ZeroCapacityGrowth(t *testing.T) {
	sm := New[string](Config{})

	key := mustInsert(t, sm, "a")
	if key.Index() != 0 {
		t.Errorf("expected first insert at slot 0, got %d", key.Index())
	}
	if sm.Capacity() != 1 {
		t.Errorf("expected capacity to grow to 1, got %d", sm.Capacity())
	}
}

func TestSlotMap_Remove(t *testing.T) {
	sm := New[string](Config{})

	key := mustInsert(t, sm, "value")

	if !sm.Contains(key) {
		t.Error("key should resolve before remove")
	}

	value, found := sm.Remove(key)
	if !found {
		t.Error("remove should report found for a live key")
	}
	if value != "value" {
		t.Errorf("expected removed value 'value', got %q", value)
	}

	// Every way of addressing the vacated tenancy reports absence.
	if sm.Contains(key) {
		t.Error("key should not resolve after remove")
	}
	if _, found := sm.Get(key); found {
		t.Error("Get should miss after remove")
	}
	if _, found := sm.Remove(key); found {
		t.Error("second Remove should be a no-op")
	}

	if sm.Len() != 0 {
		t.Errorf("expected size 0, got %d", sm.Len())
	}
	if sm.Capacity() != 1 {
		t.Errorf("capacity should be retained, got %d", sm.Capacity())
	}
}

func TestSlotMap_Remove_InvalidKeys(t *testing.T) {
	sm := New[int](Config{})
	key := mustInsert(t, sm, 42)

	// Out of range index.
	if _, found := sm.Remove(Key{index: 99, generation: 1}); found {
		t.Error("out-of-range key must not remove anything")
	}

	// Wrong generation on a live slot.
	if _, found := sm.Remove(Key{index: key.index, generation: key.generation + 7}); found {
		t.Error("mismatched generation must not remove anything")
	}

	if sm.Len() != 1 {
		t.Errorf("invalid removes must not change size, got %d", sm.Len())
	}
}

func TestSlotMap_LIFOReuse(t *testing.T) {
	sm := New[string](Config{})

	kA := mustInsert(t, sm, "a")
	kB := mustInsert(t, sm, "b")
	kC := mustInsert(t, sm, "c")

	// Free b then c: c's slot was vacated last, so it is reused first.
	sm.Remove(kB)
	sm.Remove(kC)

	kD := mustInsert(t, sm, "d")
	if kD.Index() != kC.Index() {
		t.Errorf("expected reuse of most recently vacated slot %d, got %d", kC.Index(), kD.Index())
	}

	kE := mustInsert(t, sm, "e")
	if kE.Index() != kB.Index() {
		t.Errorf("expected reuse of slot %d next, got %d", kB.Index(), kE.Index())
	}

	// No vacancy left: the next insert grows the table.
	kF := mustInsert(t, sm, "f")
	if kF.Index() != 3 {
		t.Errorf("expected growth to slot 3, got %d", kF.Index())
	}

	if _, found := sm.Get(kA); !found {
		t.Error("untouched entry must survive the churn")
	}
}

// TestSlotMap_CheckoutScenario walks the canonical hotel sequence.
func TestSlotMap_CheckoutScenario(t *testing.T) {
	sm := New[string](Config{})

	k0 := mustInsert(t, sm, "a")
	if k0.Index() != 0 {
		t.Fatalf("expected slot 0, got %d", k0.Index())
	}

	k1 := mustInsert(t, sm, "b")
	if k1.Index() != 1 {
		t.Fatalf("expected slot 1, got %d", k1.Index())
	}

	value, found := sm.Remove(k0)
	if !found || value != "a" {
		t.Fatalf("expected to remove 'a', got %q found=%v", value, found)
	}

	k2 := mustInsert(t, sm, "c")
	if k2.Index() != 0 {
		t.Errorf("expected slot 0 to be reused, got %d", k2.Index())
	}
	if k2.Generation() != k0.Generation()+1 {
		t.Errorf("expected generation %d, got %d", k0.Generation()+1, k2.Generation())
	}

	if _, found := sm.Get(k0); found {
		t.Error("old key for slot 0 must be stale")
	}
	if value, found := sm.Get(k2); !found || value != "c" {
		t.Errorf("new key for slot 0 must resolve to 'c', got %q found=%v", value, found)
	}

	if sm.Len() != 2 {
		t.Errorf("expected size 2, got %d", sm.Len())
	}
}

func TestSlotMap_GetPtr(t *testing.T) {
	type counter struct{ n int }

	sm := New[counter](Config{})
	key := mustInsert(t, sm, counter{n: 1})

	ptr, found := sm.GetPtr(key)
	if !found {
		t.Fatal("expected GetPtr to resolve a live key")
	}
	ptr.n = 42

	value, _ := sm.Get(key)
	if value.n != 42 {
		t.Errorf("in-place mutation not visible, got %d", value.n)
	}

	sm.Remove(key)
	if ptr, found := sm.GetPtr(key); found || ptr != nil {
		t.Error("GetPtr must return nil, false after remove")
	}
}

func TestSlotMap_Set(t *testing.T) {
	sm := New[string](Config{})

	key := mustInsert(t, sm, "before")
	if !sm.Set(key, "after") {
		t.Fatal("Set must succeed for a live key")
	}

	if value, _ := sm.Get(key); value != "after" {
		t.Errorf("expected 'after', got %q", value)
	}
	if sm.Len() != 1 {
		t.Errorf("Set must not change size, got %d", sm.Len())
	}

	// A stale key writes nothing.
	sm.Remove(key)
	fresh := mustInsert(t, sm, "tenant")
	if sm.Set(key, "intruder") {
		t.Error("stale key must not write")
	}
	if value, _ := sm.Get(fresh); value != "tenant" {
		t.Errorf("new tenancy must be untouched, got %q", value)
	}
}

func TestSlotMap_SlotsExhausted(t *testing.T) {
	sm := New[int](Config{MaxCapacity: 2})

	k0 := mustInsert(t, sm, 0)
	mustInsert(t, sm, 1)

	_, err := sm.Insert(2)
	if err == nil {
		t.Fatal("expected error when table is at max capacity")
	}
	if !IsSlotsExhausted(err) {
		t.Errorf("expected XANTHOS_SLOTS_EXHAUSTED, got %v", GetErrorCode(err))
	}
	if !IsRetryable(err) {
		t.Error("exhaustion should be retryable")
	}

	ctx := GetErrorContext(err)
	if ctx["max_capacity"] != 2 {
		t.Errorf("expected max_capacity 2 in error context, got %v", ctx["max_capacity"])
	}

	// A vacancy makes the next insert succeed again.
	sm.Remove(k0)
	key, err := sm.Insert(2)
	if err != nil {
		t.Fatalf("insert after remove failed: %v", err)
	}
	if key.Index() != k0.Index() {
		t.Errorf("expected reuse of slot %d, got %d", k0.Index(), key.Index())
	}
}

func TestSlotMap_Clear(t *testing.T) {
	sm := NewWithCapacity[string](4)

	keys := make([]Key, 0, 3)
	for _, v := range []string{"a", "b", "c"} {
		keys = append(keys, mustInsert(t, sm, v))
	}

	sm.Clear()

	if sm.Len() != 0 {
		t.Errorf("expected size 0 after Clear, got %d", sm.Len())
	}
	if sm.Capacity() != 4 {
		t.Errorf("capacity must be retained, got %d", sm.Capacity())
	}
	for _, key := range keys {
		if sm.Contains(key) {
			t.Errorf("key %v must be stale after Clear", key)
		}
	}

	// The free list is rebuilt ascending, like a fresh reservation.
	key := mustInsert(t, sm, "x")
	if key.Index() != 0 {
		t.Errorf("expected slot 0 after Clear, got %d", key.Index())
	}
}

func TestSlotMap_Age(t *testing.T) {
	clock := &fakeTimeProvider{now: 1000}
	sm := New[string](Config{TimeProvider: clock})

	key := mustInsert(t, sm, "guest")
	clock.advance(3 * time.Second)

	age, ok := sm.Age(key)
	if !ok {
		t.Fatal("expected Age to resolve a live key")
	}
	if age != 3*time.Second {
		t.Errorf("expected age 3s, got %v", age)
	}

	sm.Remove(key)
	if _, ok := sm.Age(key); ok {
		t.Error("Age must not resolve a stale key")
	}
}

func TestSlotMap_Stats(t *testing.T) {
	sm := New[int](Config{})

	k0 := mustInsert(t, sm, 0)
	mustInsert(t, sm, 1)
	sm.Remove(k0)
	mustInsert(t, sm, 2) // reuses k0's slot

	sm.Get(k0)                           // miss, k0 is stale
	sm.Get(Key{index: 1, generation: 1}) // hit

	stats := sm.Stats()
	if stats.Inserts != 3 {
		t.Errorf("expected 3 inserts, got %d", stats.Inserts)
	}
	if stats.Removes != 1 {
		t.Errorf("expected 1 remove, got %d", stats.Removes)
	}
	if stats.Grows != 2 {
		t.Errorf("expected 2 grows, got %d", stats.Grows)
	}
	if stats.Reuses != 1 {
		t.Errorf("expected 1 reuse, got %d", stats.Reuses)
	}
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("expected 1 hit / 1 miss, got %d / %d", stats.Hits, stats.Misses)
	}
	if stats.Size != 2 || stats.Capacity != 2 {
		t.Errorf("expected size 2 capacity 2, got %d / %d", stats.Size, stats.Capacity)
	}

	if got := stats.HitRatio(); got != 50 {
		t.Errorf("expected hit ratio 50, got %v", got)
	}
	if got := stats.ReuseRatio(); got < 33.3 || got > 33.4 {
		t.Errorf("expected reuse ratio ~33.3, got %v", got)
	}
}

func TestStats_ZeroRatios(t *testing.T) {
	var stats Stats
	if stats.HitRatio() != 0 {
		t.Error("HitRatio of empty stats must be 0")
	}
	if stats.ReuseRatio() != 0 {
		t.Error("ReuseRatio of empty stats must be 0")
	}
}

func TestSlotMap_LenCapacityInvariant(t *testing.T) {
	sm := New[int](Config{})

	keys := make([]Key, 0, 64)
	for i := 0; i < 64; i++ {
		keys = append(keys, mustInsert(t, sm, i))
	}
	for i := 0; i < 64; i += 2 {
		sm.Remove(keys[i])
	}

	vacant := sm.Capacity() - sm.Len()
	if sm.Len()+vacant != sm.Capacity() {
		t.Errorf("size %d + vacant %d != capacity %d", sm.Len(), vacant, sm.Capacity())
	}
	if sm.Len() != 32 {
		t.Errorf("expected 32 occupied, got %d", sm.Len())
	}
	if sm.Capacity() != 64 {
		t.Errorf("expected capacity 64, got %d", sm.Capacity())
	}
}
