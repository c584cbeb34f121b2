package cache

import (
	"fmt"
	"time"

	"github.com/harmonia/music-store/internal/cacheinfra"
)

// Backend selects the Store implementation.
const (
	BackendMemory  = "memory"
	BackendSturdyc = "sturdyc"
)

// Config exposes cache configuration options for consumers of the cache package.
// The memory backend ignores the sizing fields; the sturdyc backend uses them
// to bound the cache and expire idle entries.
type Config struct {
	Backend            string
	Capacity           int
	NumShards          int
	TTL                time.Duration
	EvictionPercentage int
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Backend:            BackendMemory,
		Capacity:           10000,
		NumShards:          64,
		TTL:                time.Hour,
		EvictionPercentage: 10,
	}
}

// Validate checks whether the configuration values are valid.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendMemory:
		return nil
	case BackendSturdyc:
		return c.toInternal().Validate()
	default:
		return fmt.Errorf("unknown cache backend %q", c.Backend)
	}
}

// NewStore constructs the Store implementation selected by the configuration.
func NewStore(cfg Config) (Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Backend == BackendSturdyc {
		st, err := cacheinfra.NewSturdycStore(cfg.toInternal())
		if err != nil {
			return nil, err
		}
		return st, nil
	}
	return NewMemoryStore(), nil
}

func (c Config) toInternal() cacheinfra.Config {
	return cacheinfra.Config{
		Capacity:           c.Capacity,
		NumShards:          c.NumShards,
		TTL:                c.TTL,
		EvictionPercentage: c.EvictionPercentage,
	}
}
