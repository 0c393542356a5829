package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jewelstore-backend/internal/domains/review/model"
)

type fakeReviewRepo struct {
	reviews map[uuid.UUID]*model.ProductReview
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: map[uuid.UUID]*model.ProductReview{}}
}

func (f *fakeReviewRepo) FindByID(_ context.Context, id uuid.UUID) (*model.ProductReview, error) {
	r, ok := f.reviews[id]
	if !ok {
		return nil, model.ErrReviewNotFound
	}
	return r, nil
}

func (f *fakeReviewRepo) List(_ context.Context, _ *model.ListReviewsFilter) ([]*model.ProductReview, int, error) {
	return nil, 0, nil
}

func (f *fakeReviewRepo) Exists(_ context.Context, customerID, productID uuid.UUID) (bool, error) {
	for _, r := range f.reviews {
		if r.CustomerID == customerID && r.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeReviewRepo) RatingSummary(_ context.Context, productID uuid.UUID) (*model.RatingSummary, error) {
	summary := &model.RatingSummary{ProductID: productID}
	total := 0
	for _, r := range f.reviews {
		if r.ProductID == productID && r.IsApproved {
			summary.ReviewCount++
			total += r.Rating
		}
	}
	if summary.ReviewCount > 0 {
		summary.AverageRating = float64(total) / float64(summary.ReviewCount)
	}
	return summary, nil
}

func (f *fakeReviewRepo) Create(_ context.Context, r *model.ProductReview) error {
	f.reviews[r.ID] = r
	return nil
}

func (f *fakeReviewRepo) SetApproved(_ context.Context, id uuid.UUID, approved bool) error {
	r, ok := f.reviews[id]
	if !ok {
		return model.ErrReviewNotFound
	}
	r.IsApproved = approved
	return nil
}

func (f *fakeReviewRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.reviews[id]; !ok {
		return model.ErrReviewNotFound
	}
	delete(f.reviews, id)
	return nil
}

type fakePurchases struct {
	delivered map[string]bool
}

func (f *fakePurchases) HasDeliveredOrderItem(_ context.Context, customerID, productID uuid.UUID) (bool, error) {
	return f.delivered[customerID.String()+productID.String()], nil
}

type fakeCatalog struct {
	averages map[uuid.UUID]float64
	counts   map[uuid.UUID]int
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{averages: map[uuid.UUID]float64{}, counts: map[uuid.UUID]int{}}
}

func (f *fakeCatalog) SetRatingSummary(_ context.Context, productID uuid.UUID, average float64, count int) error {
	f.averages[productID] = average
	f.counts[productID] = count
	return nil
}

func TestCreateReview(t *testing.T) {
	ctx := context.Background()
	customerID := uuid.New()
	productID := uuid.New()

	newService := func(delivered bool) (ServiceInterface, *fakeReviewRepo) {
		repo := newFakeReviewRepo()
		purchases := &fakePurchases{delivered: map[string]bool{}}
		if delivered {
			purchases.delivered[customerID.String()+productID.String()] = true
		}
		return NewReviewService(repo, purchases, newFakeCatalog()), repo
	}

	req := &model.CreateReviewRequest{
		ProductID: productID.String(),
		Rating:    5,
	}

	t.Run("delivered purchase can review, starts unapproved", func(t *testing.T) {
		svc, _ := newService(true)

		review, err := svc.Create(ctx, customerID, "Priya S", req)
		require.NoError(t, err)
		assert.False(t, review.IsApproved)
		assert.Equal(t, "Priya S", review.AuthorName)
		assert.Equal(t, 5, review.Rating)
	})

	t.Run("no delivered order is rejected", func(t *testing.T) {
		svc, _ := newService(false)

		_, err := svc.Create(ctx, customerID, "Priya S", req)
		assert.ErrorIs(t, err, model.ErrNotPurchased)
	})

	t.Run("second review of same product is rejected", func(t *testing.T) {
		svc, _ := newService(true)

		_, err := svc.Create(ctx, customerID, "Priya S", req)
		require.NoError(t, err)

		_, err = svc.Create(ctx, customerID, "Priya S", req)
		assert.ErrorIs(t, err, model.ErrAlreadyReviewed)
	})
}

func TestDeleteReview(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	stranger := uuid.New()

	repo := newFakeReviewRepo()
	review := &model.ProductReview{ID: uuid.New(), CustomerID: owner, ProductID: uuid.New(), Rating: 4}
	repo.reviews[review.ID] = review

	svc := NewReviewService(repo, &fakePurchases{delivered: map[string]bool{}}, newFakeCatalog())

	t.Run("stranger cannot delete", func(t *testing.T) {
		err := svc.Delete(ctx, stranger, review.ID)
		assert.ErrorIs(t, err, model.ErrReviewNotYours)
	})

	t.Run("owner can delete", func(t *testing.T) {
		err := svc.Delete(ctx, owner, review.ID)
		require.NoError(t, err)

		_, err = repo.FindByID(ctx, review.ID)
		assert.ErrorIs(t, err, model.ErrReviewNotFound)
	})
}

func TestModerate(t *testing.T) {
	ctx := context.Background()

	repo := newFakeReviewRepo()
	review := &model.ProductReview{ID: uuid.New(), CustomerID: uuid.New(), ProductID: uuid.New(), Rating: 3}
	repo.reviews[review.ID] = review

	catalog := newFakeCatalog()
	svc := NewReviewService(repo, &fakePurchases{delivered: map[string]bool{}}, catalog)

	require.NoError(t, svc.Moderate(ctx, review.ID, true))
	assert.True(t, repo.reviews[review.ID].IsApproved)

	// Approval pushes the recomputed aggregate onto the product.
	assert.Equal(t, 1, catalog.counts[review.ProductID])
	assert.Equal(t, 3.0, catalog.averages[review.ProductID])

	err := svc.Moderate(ctx, uuid.New(), true)
	assert.ErrorIs(t, err, model.ErrReviewNotFound)
}
