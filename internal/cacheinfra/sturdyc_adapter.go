package cacheinfra

import (
	"strings"
	"time"

	"github.com/viccon/sturdyc"
)

// Config holds the configuration for the sturdyc cache adapter.
type Config struct {
	// Capacity defines the maximum number of entries the cache can store.
	// Must be greater than 0.
	Capacity int

	// NumShards determines the number of cache shards for concurrent access.
	// Higher values improve concurrency but increase memory overhead.
	// Must be greater than 0.
	NumShards int

	// TTL is the time-to-live for cached entries. The store contract has no
	// expiration policy of its own; the TTL exists so a bounded deployment
	// can shed entries that invalidation never reaches. Must be greater
	// than 0.
	TTL time.Duration

	// EvictionPercentage specifies what percentage of entries to evict when
	// the cache reaches capacity. Must be between 1-100.
	EvictionPercentage int
}

// Validate checks if the configuration values are valid.
func (c Config) Validate() error {
	if c.Capacity <= 0 {
		return &ConfigError{Field: "Capacity", Message: "must be greater than 0"}
	}
	if c.NumShards <= 0 {
		return &ConfigError{Field: "NumShards", Message: "must be greater than 0"}
	}
	if c.TTL <= 0 {
		return &ConfigError{Field: "TTL", Message: "must be greater than 0"}
	}
	if c.EvictionPercentage < 1 || c.EvictionPercentage > 100 {
		return &ConfigError{Field: "EvictionPercentage", Message: "must be between 1 and 100"}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "config error in field " + e.Field + ": " + e.Message
}

// SturdycStore adapts a sturdyc client to the namespaced cache store
// contract. Namespaces become key prefixes; clearing a namespace scans the
// key space and deletes by prefix.
//
// Unlike the default memory store, a namespace clear here is not a single
// generation swap: a reader racing EvictAll can observe some keys of the
// namespace already gone and others still present. The adapter trades that
// guarantee for bounded capacity and TTL-based shedding.
type SturdycStore struct {
	client *sturdyc.Client[any]
}

const nsSeparator = "\x1f"

// NewSturdycStore validates the configuration and initializes a sturdyc
// client with the provided settings.
//
// Version compatibility note: this assumes the sturdyc v1.x API. Monitor
// sturdyc version upgrades for potential option mapping changes.
func NewSturdycStore(cfg Config) (*SturdycStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := sturdyc.New[any](
		cfg.Capacity,
		cfg.NumShards,
		cfg.TTL,
		cfg.EvictionPercentage,
	)

	return &SturdycStore{client: client}, nil
}

func nsKey(namespace, key string) string {
	return namespace + nsSeparator + key
}

// Get returns the cached value for key within namespace, if present.
func (s *SturdycStore) Get(namespace, key string) (any, bool) {
	return s.client.Get(nsKey(namespace, key))
}

// Put stores value under key, overwriting any existing entry.
func (s *SturdycStore) Put(namespace, key string, value any) {
	s.client.Set(nsKey(namespace, key), value)
}

// Evict removes a single entry; removing an absent key is a no-op.
func (s *SturdycStore) Evict(namespace, key string) {
	s.client.Delete(nsKey(namespace, key))
}

// EvictAll removes every entry whose key belongs to the namespace.
func (s *SturdycStore) EvictAll(namespace string) {
	prefix := namespace + nsSeparator
	for _, key := range s.client.ScanKeys() {
		if strings.HasPrefix(key, prefix) {
			s.client.Delete(key)
		}
	}
}
