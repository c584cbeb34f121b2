package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"github.com/harmonia/music-store/catalog"
)

type bunReviewRepository struct {
	db *bun.DB
}

// NewReviewRepository returns the bun-backed review repository.
func NewReviewRepository(db *bun.DB) ReviewRepository {
	return &bunReviewRepository{db: db}
}

func (r *bunReviewRepository) FindByID(ctx context.Context, id int64) (*catalog.Review, error) {
	rev := new(catalog.Review)
	err := r.db.NewSelect().Model(rev).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rev, nil
}

func (r *bunReviewRepository) FindByInstrumentID(ctx context.Context, instrumentID int64) ([]*catalog.Review, error) {
	var reviews []*catalog.Review
	err := r.db.NewSelect().Model(&reviews).Where("instrument_id = ?", instrumentID).Order("id ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *bunReviewRepository) FindByRating(ctx context.Context, rating int) ([]*catalog.Review, error) {
	var reviews []*catalog.Review
	err := r.db.NewSelect().Model(&reviews).Where("rating = ?", rating).Order("id ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *bunReviewRepository) FindByMinRating(ctx context.Context, minRating int) ([]*catalog.Review, error) {
	var reviews []*catalog.Review
	err := r.db.NewSelect().Model(&reviews).Where("rating >= ?", minRating).Order("id ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *bunReviewRepository) FindByAuthorContaining(ctx context.Context, authorName string) ([]*catalog.Review, error) {
	var reviews []*catalog.Review
	err := r.db.NewSelect().Model(&reviews).
		Where("lower(author_name) LIKE ?", containsPattern(authorName)).
		Order("id ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *bunReviewRepository) Insert(ctx context.Context, rev *catalog.Review) error {
	_, err := r.db.NewInsert().Model(rev).Exec(ctx)
	return err
}

func (r *bunReviewRepository) DeleteByID(ctx context.Context, id int64) error {
	_, err := r.db.NewDelete().Model((*catalog.Review)(nil)).Where("id = ?", id).Exec(ctx)
	return err
}

func (r *bunReviewRepository) DeleteByInstrumentID(ctx context.Context, instrumentID int64) error {
	_, err := r.db.NewDelete().Model((*catalog.Review)(nil)).Where("instrument_id = ?", instrumentID).Exec(ctx)
	return err
}
