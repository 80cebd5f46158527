// Package xanthos provides a high-performance generational slot map for
// workloads with short-lived, rapidly cycling entries.
//
// # Overview
//
// Xanthos is a key-value container that generates its own keys. Unlike a
// hash map, whose keys are arbitrary and whose slot layout is opaque, a
// slot map hands out small integer slots and is built around reusing a
// just-vacated slot for the very next insert:
//   - Insert: O(1), pops the most recently freed slot (or appends one)
//   - Remove: O(1), pushes the slot onto an intrusive free list
//   - Get: O(1), a bounds check and a generation compare
//   - Dense storage: values live in one contiguous slice, cache-friendly
//
// The easiest mental model is a hotel: checking in assigns you the most
// recently vacated room, checking out frees your room for the next guest.
//
// # Features
//
//   - Generational Keys: stale keys are rejected by value comparison, so a
//     key held after its slot was reused can never read another tenant's data
//   - Intrusive LIFO Free List: vacant slots store the next-free link in
//     place of occupancy metadata, no auxiliary allocation
//   - Type-Safe Generics: SlotMap[V any]
//   - Lease Ages: per-entry insert timestamps with EvictOlderThan for
//     age-based reclamation
//   - Structured Errors: rich error context with error codes
//   - Metrics Collection: MetricsCollector interface for observability
//   - Hot Reload: watch lease settings in a config file via Argus
//
// # Quick Start
//
//	import "github.com/agilira/xanthos"
//
//	type Session struct {
//	    UserID int
//	    Token  string
//	}
//
//	func main() {
//	    sm := xanthos.New[Session](xanthos.Config{
//	        InitialCapacity: 1024,
//	    })
//
//	    // Insert returns the key; you never choose one
//	    key, err := sm.Insert(Session{UserID: 123, Token: "abc"})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    if session, found := sm.Get(key); found {
//	        fmt.Printf("User: %d\n", session.UserID)
//	    }
//
//	    // Remove hands the value back and frees the slot for reuse
//	    session, _ := sm.Remove(key)
//	    _ = session
//	}
//
// # Slot Reuse
//
// Reuse order is deliberately LIFO: the most recently vacated slot is the
// next one assigned. For entries that check in and out quickly this keeps
// the working set of slots hot in cache. The table only ever grows, so a
// slot index stays stable for the lifetime of the map:
//
//	k0, _ := sm.Insert("a") // slot 0
//	k1, _ := sm.Insert("b") // slot 1
//	sm.Remove(k0)           // slot 0 back on the free list
//	k2, _ := sm.Insert("c") // slot 0 again, new generation
//
// # Stale Keys
//
// Every slot carries a generation counter, bumped each time the slot is
// vacated. A Key bundles the slot index with the generation it was issued
// under and is only honored while both still match:
//
//	k0, _ := sm.Insert("a")
//	sm.Remove(k0)
//	k1, _ := sm.Insert("b") // same slot index as k0
//
//	sm.Get(k0) // -> zero value, false: k0 is stale
//	sm.Get(k1) // -> "b", true
//
// Misuse is an expected condition, not a fault: lookups and removals with
// out-of-range, vacant or stale keys return found=false and never panic.
// The only surfaced error is XANTHOS_SLOTS_EXHAUSTED, returned by Insert
// when the slot table cannot grow any further.
//
// # Lease Ages
//
// Each entry records its insert timestamp (via go-timecache, so the hot
// path never calls time.Now). Entries that overstay can be swept out:
//
//	sm := xanthos.New[Conn](xanthos.Config{
//	    MaxAge: 30 * time.Second,
//	    OnEvict: func(key xanthos.Key, value any) {
//	        value.(Conn).Close()
//	    },
//	})
//
//	// periodically, from the goroutine that owns the map:
//	evicted := sm.EvictExpired()
//
// # Iteration
//
// All, Keys and Values iterate occupied slots in ascending index order.
// Drain additionally removes each entry as it is yielded:
//
//	for key, session := range sm.All() {
//	    fmt.Println(key, session.UserID)
//	}
//
//	for _, conn := range sm.Drain() {
//	    conn.Close() // map is empty afterwards, capacity retained
//	}
//
// Inserting or removing while an All iteration is in progress leaves the
// interleaving undefined; restart the iterator instead.
//
// # Concurrency Model
//
// A SlotMap is single-threaded by design: no locks, no atomics. Every
// operation is amortized O(1) and none of them block. If the map must be
// shared across goroutines, the caller wraps it behind its own mutex; the
// map offers no internal synchronization.
//
// # Observability
//
// Built-in counters:
//
//	stats := sm.Stats()
//	fmt.Printf("Hit ratio: %.2f%%\n", stats.HitRatio())
//	fmt.Printf("Reuse ratio: %.2f%%\n", stats.ReuseRatio())
//
// Enterprise observability with OpenTelemetry (optional):
//
//	import xanthosotel "github.com/agilira/xanthos/otel"
//
//	collector, _ := xanthosotel.NewOTelMetricsCollector(provider)
//	sm := xanthos.New[Session](xanthos.Config{
//	    MetricsCollector: collector, // zero overhead if nil
//	})
//
// The core xanthos package has zero OTEL dependencies. The xanthos/otel
// package is a separate module.
//
// # Configuration
//
// Complete configuration options:
//
//	config := xanthos.Config{
//	    // Optional: slots pre-allocated at construction (default: 0)
//	    InitialCapacity: 1024,
//
//	    // Optional: upper bound on table growth (default: index width)
//	    MaxCapacity: 1 << 20,
//
//	    // Optional: lease duration used by EvictExpired (default: 0, never)
//	    MaxAge: time.Minute,
//
//	    // Optional: logger for sweeps and growth (default: NoOpLogger)
//	    Logger: myLogger,
//
//	    // Optional: custom time source for testing (default: go-timecache)
//	    TimeProvider: myTimeProvider,
//
//	    // Optional: metrics collector (default: NoOp, zero overhead)
//	    MetricsCollector: collector,
//
//	    // Optional: called for each entry removed by an eviction sweep
//	    OnEvict: func(key xanthos.Key, value any) {},
//	}
//
// Settings can also be hot-reloaded from a watched file:
//
//	hc, _ := xanthos.NewHotConfig(xanthos.HotConfigOptions{
//	    ConfigPath: "/etc/myapp/slotmap.yaml",
//	})
//	_ = hc.Start()
//
//	// later, from the goroutine that owns the map:
//	sm.SetMaxAge(hc.MaxAge())
//	sm.EvictExpired()
//
// # Packages
//
//   - github.com/agilira/xanthos: core slot map implementation
//   - github.com/agilira/xanthos/otel: OpenTelemetry integration (separate module)
//
// # License
//
// See LICENSE file in the repository.
//
// Contributions welcome at https://github.com/agilira/xanthos
package xanthos
