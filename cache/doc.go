// Package cache provides the keyed cache store behind the catalog services.
//
// # Overview
//
// The package exports one main interface and its default implementation:
//
//   - Store: named, keyed caches with explicit, namespace-wide eviction
//   - NewMemoryStore: unbounded in-process store, the default backend
//
// Each namespace (one per entity type: "instruments", "customers",
// "categories") is an independent mapping from cache key to cached value.
// There is no expiration policy; services evict after every write that could
// make cached views stale.
//
// # Basic Usage
//
//	store := cache.NewMemoryStore()
//	store.Put("instruments", cache.Key("id", "42"), inst)
//	if v, ok := cache.Lookup[*catalog.Instrument](store, "instruments", cache.Key("id", "42")); ok {
//		return v, nil
//	}
//
// # Key Strategy
//
// Keys are composites of a field-discriminator prefix plus the queried value,
// joined with KeySeparator: "id::42", "email::a@b.c", "type::GUITAR". Only
// identifiers, exact-match fields, and closed enumerations are ever used as
// keys; parameterized searches with unbounded key spaces (substrings, price
// ranges, pagination) bypass the cache entirely so the store cannot grow
// without bound on adversarial query patterns.
//
// # Consistency
//
// Reads may proceed concurrently; Put/Evict/EvictAll take an exclusive lock
// over their namespace. A miss-then-populate sequence in the service layer is
// not atomic against a concurrent evict: a read may repopulate a just-evicted
// entry with data loaded before the write landed. That staleness window is
// accepted; the next write evicts again.
//
// # Alternate Backend
//
// NewStore selects between the memory store and a bounded, TTL-capable
// sturdyc-backed store (internal/cacheinfra) via Config.Backend.
package cache
