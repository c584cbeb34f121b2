package service

import (
	"context"

	"github.com/harmonia/music-store/catalog"
	"github.com/harmonia/music-store/storage"
)

// ReviewService exposes review reads and writes. Reviews are not cached:
// they are only read per-instrument and the write rate is comparable to the
// read rate, so a cached view would be evicted about as often as it is
// filled.
type ReviewService struct {
	repo        storage.ReviewRepository
	instruments storage.InstrumentRepository
}

// NewReviewService wires the service with the review repository and the
// instrument repository used to check the owning reference.
func NewReviewService(repo storage.ReviewRepository, instruments storage.InstrumentRepository) *ReviewService {
	return &ReviewService{repo: repo, instruments: instruments}
}

// GetByInstrument returns every review of one instrument.
func (s *ReviewService) GetByInstrument(ctx context.Context, instrumentID int64) ([]*catalog.Review, error) {
	return s.repo.FindByInstrumentID(ctx, instrumentID)
}

// GetByRating returns reviews with an exact rating.
func (s *ReviewService) GetByRating(ctx context.Context, rating int) ([]*catalog.Review, error) {
	return s.repo.FindByRating(ctx, rating)
}

// GetByMinRating returns reviews rated at or above the threshold.
func (s *ReviewService) GetByMinRating(ctx context.Context, minRating int) ([]*catalog.Review, error) {
	return s.repo.FindByMinRating(ctx, minRating)
}

// SearchByAuthor finds reviews whose author name contains the fragment.
func (s *ReviewService) SearchByAuthor(ctx context.Context, authorName string) ([]*catalog.Review, error) {
	return s.repo.FindByAuthorContaining(ctx, authorName)
}

// Create validates the review and its owning instrument reference, then
// persists it. A review for an unknown instrument fails with
// catalog.ErrNotFound.
func (s *ReviewService) Create(ctx context.Context, r *catalog.Review) (*catalog.Review, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	inst, err := s.instruments.FindByID(ctx, r.InstrumentID)
	if err != nil {
		return nil, err
	}
	if inst == nil {
		return nil, catalog.ErrNotFound
	}
	if err := s.repo.Insert(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Delete removes the review. Deleting an unknown id is not an error.
func (s *ReviewService) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteByID(ctx, id)
}
