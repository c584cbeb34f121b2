package service

import (
	"context"
	"errors"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"

	"github.com/harmonia/music-store/catalog"
)

func newReviewFixture(t *testing.T) (*ReviewService, *fakeReviewRepo, *catalog.Instrument) {
	t.Helper()
	instruments := newFakeInstrumentRepo()
	inst := &catalog.Instrument{
		Name:          "Yamaha C40",
		Brand:         "Yamaha",
		Price:         decimal.RequireFromString("199.99"),
		Type:          catalog.TypeGuitar,
		Condition:     catalog.ConditionNew,
		StockQuantity: 20,
	}
	if err := instruments.Insert(context.Background(), inst); err != nil {
		t.Fatalf("Insert instrument: %v", err)
	}
	repo := newFakeReviewRepo()
	return NewReviewService(repo, instruments), repo, inst
}

func sampleReview(instrumentID int64) *catalog.Review {
	return &catalog.Review{
		Comment:      "Excellent instrument, very good sound quality",
		Rating:       5,
		AuthorName:   "John Smith",
		AuthorEmail:  "john.smith@email.com",
		InstrumentID: instrumentID,
	}
}

func TestReviewCreate(t *testing.T) {
	svc, _, inst := newReviewFixture(t)

	created, err := svc.Create(context.Background(), sampleReview(inst.ID))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == 0 {
		t.Error("expected assigned id")
	}

	got, err := svc.GetByInstrument(context.Background(), inst.ID)
	if err != nil {
		t.Fatalf("GetByInstrument: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected one review, got %d", len(got))
	}
}

func TestReviewCreateUnknownInstrument(t *testing.T) {
	svc, repo, _ := newReviewFixture(t)

	_, err := svc.Create(context.Background(), sampleReview(404))
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(repo.items) != 0 {
		t.Error("review for an unknown instrument must not be persisted")
	}
}

func TestReviewCreateRejectsInvalid(t *testing.T) {
	svc, repo, inst := newReviewFixture(t)

	bad := sampleReview(inst.ID)
	bad.Rating = 6
	_, err := svc.Create(context.Background(), bad)

	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected validation.Errors, got %v", err)
	}
	if len(repo.items) != 0 {
		t.Error("invalid review must not be persisted")
	}
}

func TestReviewRatingQueries(t *testing.T) {
	svc, _, inst := newReviewFixture(t)
	ctx := context.Background()

	for _, rating := range []int{2, 4, 5} {
		r := sampleReview(inst.ID)
		r.Rating = rating
		if _, err := svc.Create(ctx, r); err != nil {
			t.Fatalf("Create rating %d: %v", rating, err)
		}
	}

	exact, err := svc.GetByRating(ctx, 4)
	if err != nil {
		t.Fatalf("GetByRating: %v", err)
	}
	if len(exact) != 1 || exact[0].Rating != 4 {
		t.Errorf("unexpected exact-rating set: %+v", exact)
	}

	atLeast, err := svc.GetByMinRating(ctx, 4)
	if err != nil {
		t.Fatalf("GetByMinRating: %v", err)
	}
	if len(atLeast) != 2 {
		t.Errorf("expected 2 reviews rated >= 4, got %d", len(atLeast))
	}
}

func TestReviewSearchByAuthor(t *testing.T) {
	svc, _, inst := newReviewFixture(t)
	ctx := context.Background()

	r := sampleReview(inst.ID)
	r.AuthorName = "Mary Johnson"
	if _, err := svc.Create(ctx, r); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(ctx, sampleReview(inst.ID)); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := svc.SearchByAuthor(ctx, "johnson")
	if err != nil {
		t.Fatalf("SearchByAuthor: %v", err)
	}
	if len(got) != 1 || got[0].AuthorName != "Mary Johnson" {
		t.Errorf("unexpected search result: %+v", got)
	}
}

func TestReviewDelete(t *testing.T) {
	svc, repo, inst := newReviewFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, sampleReview(inst.ID))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(repo.items) != 0 {
		t.Error("review must be deleted")
	}
	// Unknown ids are a no-op.
	if err := svc.Delete(ctx, 404); err != nil {
		t.Errorf("deleting an unknown id must not fail, got %v", err)
	}
}
