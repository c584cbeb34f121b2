package cache

// Store holds named, keyed caches. Each namespace is an independent mapping
// from a string key to a cached value; entries never expire on their own and
// are removed only through Evict/EvictAll.
//
// Implementations must guarantee that a concurrent Get never observes a
// partially written entry, and that EvictAll is observed as a single
// generation change: a reader sees either the pre-evict or the post-evict
// state of a namespace, never a mixture.
type Store interface {
	// Get returns the cached value for key, if present. It never blocks on
	// anything slower than memory.
	Get(namespace, key string) (any, bool)

	// Put stores value under key, overwriting any existing entry.
	Put(namespace, key string, value any)

	// Evict removes a single entry. Removing an absent key is a no-op.
	Evict(namespace, key string)

	// EvictAll clears every entry under the namespace. Used after any write
	// that could affect multiple cached views of the same data.
	EvictAll(namespace string)
}

// Lookup is a type-safe accessor over Store.Get. A cached value of the wrong
// type is treated as a miss rather than an error; the caller falls through to
// the source of truth and the next Put repairs the entry.
func Lookup[T any](s Store, namespace, key string) (T, bool) {
	v, ok := s.Get(namespace, key)
	if !ok {
		var zero T
		return zero, false
	}
	typed, ok := v.(T)
	if !ok {
		var zero T
		return zero, false
	}
	return typed, true
}
