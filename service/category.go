package service

import (
	"context"

	"github.com/harmonia/music-store/cache"
	"github.com/harmonia/music-store/catalog"
	"github.com/harmonia/music-store/storage"
)

const categoryNamespace = "categories"

// CategoryService wraps the category repository behind the cache store.
// Identity and exact-name lookups are cached; substring search is not.
type CategoryService struct {
	repo  storage.CategoryRepository
	store cache.Store
}

// NewCategoryService wires the service with its repository and cache.
func NewCategoryService(repo storage.CategoryRepository, store cache.Store) *CategoryService {
	return &CategoryService{repo: repo, store: store}
}

// GetAll returns every category, serving the cached listing when present.
func (s *CategoryService) GetAll(ctx context.Context) ([]*catalog.Category, error) {
	if categories, ok := cache.Lookup[[]*catalog.Category](s.store, categoryNamespace, cache.KeyAll); ok {
		return categories, nil
	}
	categories, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	s.store.Put(categoryNamespace, cache.KeyAll, categories)
	return categories, nil
}

// GetByID returns the category or nil when absent. Absence is never cached.
func (s *CategoryService) GetByID(ctx context.Context, id int64) (*catalog.Category, error) {
	key := idKey(id)
	if c, ok := cache.Lookup[*catalog.Category](s.store, categoryNamespace, key); ok {
		return c, nil
	}
	c, err := s.repo.FindByID(ctx, id)
	if err != nil || c == nil {
		return nil, err
	}
	s.store.Put(categoryNamespace, key, c)
	return c, nil
}

// GetByName looks a category up by its unique name, case-insensitively.
// Misses are returned as nil and not cached.
func (s *CategoryService) GetByName(ctx context.Context, name string) (*catalog.Category, error) {
	key := cache.Key("name", name)
	if c, ok := cache.Lookup[*catalog.Category](s.store, categoryNamespace, key); ok {
		return c, nil
	}
	c, err := s.repo.FindByName(ctx, name)
	if err != nil || c == nil {
		return nil, err
	}
	s.store.Put(categoryNamespace, key, c)
	return c, nil
}

// SearchByName finds categories whose name contains the fragment. Uncached.
func (s *CategoryService) SearchByName(ctx context.Context, name string) ([]*catalog.Category, error) {
	return s.repo.FindByNameContaining(ctx, name)
}

// Create validates and persists a new category, then drops the namespace.
// Duplicate names surface as the storage layer's conflict error.
func (s *CategoryService) Create(ctx context.Context, c *catalog.Category) (*catalog.Category, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Insert(ctx, c); err != nil {
		return nil, err
	}
	s.store.EvictAll(categoryNamespace)
	return c, nil
}

// Update persists changes to an existing category, failing with
// catalog.ErrNotFound when the id does not exist.
func (s *CategoryService) Update(ctx context.Context, c *catalog.Category) (*catalog.Category, error) {
	existing, err := s.repo.FindByID(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, catalog.ErrNotFound
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	// Bound payloads carry no creation timestamp; keep the stored one.
	c.CreatedAt = existing.CreatedAt
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	s.store.EvictAll(categoryNamespace)
	return c, nil
}

// Delete removes the category. Instruments keep their dangling category id;
// the reference is weak and nothing cascades. Deleting an unknown id is not
// an error.
func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.store.EvictAll(categoryNamespace)
	return nil
}
