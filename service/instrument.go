package service

import (
	"context"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/harmonia/music-store/cache"
	"github.com/harmonia/music-store/catalog"
	"github.com/harmonia/music-store/storage"
)

// instrumentNamespace partitions the cache store for instrument views.
const instrumentNamespace = "instruments"

// InstrumentService wraps the instrument repository behind the cache store.
// Reads over identifiers and closed enumerations are read-through cached;
// searches with unbounded parameter spaces (substrings, price ranges,
// pagination) always hit the repository so the cache cannot grow without
// bound. Every write evicts the whole namespace: aggregate views like "all"
// and "type::GUITAR" cannot be invalidated selectively, and the hit-rate cost
// is preferred over tracking which keys a write touched.
type InstrumentService struct {
	repo    storage.InstrumentRepository
	reviews storage.ReviewRepository
	store   cache.Store
}

// NewInstrumentService wires the service with its repository, the review
// repository (owned reviews go away with their instrument), and the cache.
func NewInstrumentService(repo storage.InstrumentRepository, reviews storage.ReviewRepository, store cache.Store) *InstrumentService {
	return &InstrumentService{repo: repo, reviews: reviews, store: store}
}

// GetAll returns every instrument, serving the cached listing when present.
func (s *InstrumentService) GetAll(ctx context.Context) ([]*catalog.Instrument, error) {
	if items, ok := cache.Lookup[[]*catalog.Instrument](s.store, instrumentNamespace, cache.KeyAll); ok {
		return items, nil
	}
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	s.store.Put(instrumentNamespace, cache.KeyAll, items)
	return items, nil
}

// GetByID returns the instrument or nil when absent. Only positive results
// are cached; a miss for an unknown id never leaves a cache entry behind, so
// a later create under that id is immediately visible.
func (s *InstrumentService) GetByID(ctx context.Context, id int64) (*catalog.Instrument, error) {
	key := idKey(id)
	if inst, ok := cache.Lookup[*catalog.Instrument](s.store, instrumentNamespace, key); ok {
		return inst, nil
	}
	inst, err := s.repo.FindByID(ctx, id)
	if err != nil || inst == nil {
		return nil, err
	}
	s.store.Put(instrumentNamespace, key, inst)
	return inst, nil
}

// GetByType returns instruments of one kind. The type enumeration is closed,
// so the composite key space is bounded and safe to cache.
func (s *InstrumentService) GetByType(ctx context.Context, t catalog.InstrumentType) ([]*catalog.Instrument, error) {
	key := cache.Key("type", string(t))
	if items, ok := cache.Lookup[[]*catalog.Instrument](s.store, instrumentNamespace, key); ok {
		return items, nil
	}
	items, err := s.repo.FindByType(ctx, t)
	if err != nil {
		return nil, err
	}
	s.store.Put(instrumentNamespace, key, items)
	return items, nil
}

// GetByCondition returns instruments in one condition grade, cached under the
// closed condition enumeration.
func (s *InstrumentService) GetByCondition(ctx context.Context, c catalog.Condition) ([]*catalog.Instrument, error) {
	key := cache.Key("condition", string(c))
	if items, ok := cache.Lookup[[]*catalog.Instrument](s.store, instrumentNamespace, key); ok {
		return items, nil
	}
	items, err := s.repo.FindByCondition(ctx, c)
	if err != nil {
		return nil, err
	}
	s.store.Put(instrumentNamespace, key, items)
	return items, nil
}

// SearchByName finds instruments whose name contains the fragment. Uncached:
// free-text fragments form an unbounded key space.
func (s *InstrumentService) SearchByName(ctx context.Context, name string) ([]*catalog.Instrument, error) {
	return s.repo.FindByNameContaining(ctx, name)
}

// SearchByBrand finds instruments whose brand contains the fragment. Uncached.
func (s *InstrumentService) SearchByBrand(ctx context.Context, brand string) ([]*catalog.Instrument, error) {
	return s.repo.FindByBrandContaining(ctx, brand)
}

// GetByPriceRange returns instruments priced within [min, max]. Uncached.
func (s *InstrumentService) GetByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]*catalog.Instrument, error) {
	return s.repo.FindByPriceBetween(ctx, min, max)
}

// GetByTypeAndPriceRange combines a type filter with a price window. Uncached:
// the price window keeps the key space unbounded.
func (s *InstrumentService) GetByTypeAndPriceRange(ctx context.Context, t catalog.InstrumentType, min, max decimal.Decimal) ([]*catalog.Instrument, error) {
	return s.repo.FindByTypeAndPriceBetween(ctx, t, min, max)
}

// GetByBrandAndType returns instruments matching an exact brand and type. Uncached.
func (s *InstrumentService) GetByBrandAndType(ctx context.Context, brand string, t catalog.InstrumentType) ([]*catalog.Instrument, error) {
	return s.repo.FindByBrandAndType(ctx, brand, t)
}

// GetInStock returns instruments with at least one unit available. Uncached.
func (s *InstrumentService) GetInStock(ctx context.Context) ([]*catalog.Instrument, error) {
	return s.repo.FindByStockGreaterThan(ctx, 0)
}

// GetOutOfStock returns instruments with no units left. Uncached.
func (s *InstrumentService) GetOutOfStock(ctx context.Context) ([]*catalog.Instrument, error) {
	return s.repo.FindByStockAtMost(ctx, 0)
}

// GetPage returns one page of the catalog sorted by sortField. Uncached.
func (s *InstrumentService) GetPage(ctx context.Context, page, size int, sortField string) (Page[*catalog.Instrument], error) {
	items, total, err := s.repo.FindPage(ctx, page, size, sortField)
	if err != nil {
		return Page[*catalog.Instrument]{}, err
	}
	return newPage(items, total, page, size), nil
}

// CountByType reports how many instruments of the given type exist. Uncached
// pass-through aggregate.
func (s *InstrumentService) CountByType(ctx context.Context, t catalog.InstrumentType) (int64, error) {
	return s.repo.CountByType(ctx, t)
}

// Create validates and persists a new instrument, then drops the namespace:
// the aggregate and enumeration views are stale the moment the row lands.
func (s *InstrumentService) Create(ctx context.Context, inst *catalog.Instrument) (*catalog.Instrument, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Insert(ctx, inst); err != nil {
		return nil, err
	}
	s.store.EvictAll(instrumentNamespace)
	return inst, nil
}

// Update persists changes to an existing instrument. It fails with
// catalog.ErrNotFound when the id does not exist.
func (s *InstrumentService) Update(ctx context.Context, inst *catalog.Instrument) (*catalog.Instrument, error) {
	existing, err := s.repo.FindByID(ctx, inst.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, catalog.ErrNotFound
	}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	// Bound payloads carry no creation timestamp; keep the stored one.
	inst.CreatedAt = existing.CreatedAt
	if err := s.repo.Update(ctx, inst); err != nil {
		return nil, err
	}
	s.store.EvictAll(instrumentNamespace)
	return inst, nil
}

// Delete removes the instrument and its reviews. Deleting an unknown id is
// not an error.
func (s *InstrumentService) Delete(ctx context.Context, id int64) error {
	if err := s.reviews.DeleteByInstrumentID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.store.EvictAll(instrumentNamespace)
	return nil
}

// UpdateStock overwrites the absolute stock quantity. The quantity is not
// checked for sign here; the entity-level RemoveStock guard is the only
// underflow protection. Kept as-is rather than silently tightened.
func (s *InstrumentService) UpdateStock(ctx context.Context, id int64, quantity int) error {
	found, err := s.repo.SetStock(ctx, id, quantity)
	if err != nil {
		return err
	}
	if !found {
		return catalog.ErrNotFound
	}
	s.store.EvictAll(instrumentNamespace)
	return nil
}

// AddStock adds delta units to the stored quantity.
func (s *InstrumentService) AddStock(ctx context.Context, id int64, delta int) error {
	found, err := s.repo.IncrementStock(ctx, id, delta)
	if err != nil {
		return err
	}
	if !found {
		return catalog.ErrNotFound
	}
	s.store.EvictAll(instrumentNamespace)
	return nil
}

func idKey(id int64) string {
	return cache.Key("id", strconv.FormatInt(id, 10))
}
