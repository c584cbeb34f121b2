package cache

import (
	"sync"

	"github.com/puzpuzpuz/xsync/v3"
)

// memoryStore is the default Store implementation: unbounded, no expiry,
// invalidated only explicitly. Namespaces are created lazily and never
// removed; the registry itself is lock-free, each namespace guards its
// entries with a single RWMutex so EvictAll swaps a whole generation at once.
type memoryStore struct {
	namespaces *xsync.MapOf[string, *namespace]
}

type namespace struct {
	mu      sync.RWMutex
	entries map[string]any
}

// NewMemoryStore returns an in-process Store with no eviction policy.
func NewMemoryStore() Store {
	return &memoryStore{
		namespaces: xsync.NewMapOf[string, *namespace](),
	}
}

func (s *memoryStore) ns(name string) *namespace {
	n, _ := s.namespaces.LoadOrCompute(name, func() *namespace {
		return &namespace{entries: make(map[string]any)}
	})
	return n
}

func (s *memoryStore) Get(name, key string) (any, bool) {
	n, ok := s.namespaces.Load(name)
	if !ok {
		return nil, false
	}
	n.mu.RLock()
	v, ok := n.entries[key]
	n.mu.RUnlock()
	return v, ok
}

func (s *memoryStore) Put(name, key string, value any) {
	n := s.ns(name)
	n.mu.Lock()
	n.entries[key] = value
	n.mu.Unlock()
}

func (s *memoryStore) Evict(name, key string) {
	n, ok := s.namespaces.Load(name)
	if !ok {
		return
	}
	n.mu.Lock()
	delete(n.entries, key)
	n.mu.Unlock()
}

func (s *memoryStore) EvictAll(name string) {
	n, ok := s.namespaces.Load(name)
	if !ok {
		return
	}
	n.mu.Lock()
	n.entries = make(map[string]any)
	n.mu.Unlock()
}
