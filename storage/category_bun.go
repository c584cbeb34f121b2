package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"github.com/harmonia/music-store/catalog"
)

type bunCategoryRepository struct {
	db *bun.DB
}

// NewCategoryRepository returns the bun-backed category repository.
func NewCategoryRepository(db *bun.DB) CategoryRepository {
	return &bunCategoryRepository{db: db}
}

func (r *bunCategoryRepository) FindAll(ctx context.Context) ([]*catalog.Category, error) {
	var categories []*catalog.Category
	if err := r.db.NewSelect().Model(&categories).Order("id ASC").Scan(ctx); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *bunCategoryRepository) FindByID(ctx context.Context, id int64) (*catalog.Category, error) {
	c := new(catalog.Category)
	err := r.db.NewSelect().Model(c).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *bunCategoryRepository) FindByName(ctx context.Context, name string) (*catalog.Category, error) {
	c := new(catalog.Category)
	err := r.db.NewSelect().Model(c).Where("lower(name) = lower(?)", name).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *bunCategoryRepository) FindByNameContaining(ctx context.Context, name string) ([]*catalog.Category, error) {
	var categories []*catalog.Category
	err := r.db.NewSelect().Model(&categories).
		Where("lower(name) LIKE ?", containsPattern(name)).
		Order("id ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *bunCategoryRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.db.NewSelect().Model((*catalog.Category)(nil)).Count(ctx)
	if err != nil {
		return 0, err
	}
	return int64(count), nil
}

func (r *bunCategoryRepository) Insert(ctx context.Context, c *catalog.Category) error {
	_, err := r.db.NewInsert().Model(c).Exec(ctx)
	return err
}

func (r *bunCategoryRepository) Update(ctx context.Context, c *catalog.Category) error {
	// created_at is written once on insert and never updated.
	_, err := r.db.NewUpdate().Model(c).ExcludeColumn("created_at").WherePK().Exec(ctx)
	return err
}

func (r *bunCategoryRepository) DeleteByID(ctx context.Context, id int64) error {
	_, err := r.db.NewDelete().Model((*catalog.Category)(nil)).Where("id = ?", id).Exec(ctx)
	return err
}
