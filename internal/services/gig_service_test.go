package services

import (
	"context"
	"testing"

	"github.com/gigpay/gigpay-backend/internal/apperr"
	"github.com/gigpay/gigpay-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGigFixture() (*memStore, *GigService) {
	store := newMemStore()
	return store, NewGigService(&memGigs{store})
}

func TestGig_CreateReadBack(t *testing.T) {
	ctx := context.Background()
	_, svc := newGigFixture()

	created, err := svc.Create(ctx, models.Gig{
		Title:  "Logo design",
		Price:  50,
		UserID: "u1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Logo design", got.Title)
	assert.Equal(t, int64(50), got.Price)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, created.CreatedAt, got.CreatedAt)
}

func TestGig_CreateRejectsMissingTitle(t *testing.T) {
	ctx := context.Background()
	_, svc := newGigFixture()

	_, err := svc.Create(ctx, models.Gig{UserID: "u1", Price: 50})
	assert.ErrorIs(t, err, apperr.ErrInvalidState)
}

func TestGig_UpdateKeepsOwner(t *testing.T) {
	ctx := context.Background()
	_, svc := newGigFixture()

	created, err := svc.Create(ctx, models.Gig{Title: "Logo design", Price: 50, UserID: "u1"})
	require.NoError(t, err)

	// the update payload carries no owner; the stored one must survive
	got, err := svc.Update(ctx, models.Gig{ID: created.ID, Title: "Logo redesign", Price: 75})
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, "Logo redesign", got.Title)
	assert.Equal(t, int64(75), got.Price)
}

func TestGig_UpdateMissing(t *testing.T) {
	ctx := context.Background()
	_, svc := newGigFixture()

	_, err := svc.Update(ctx, models.Gig{ID: "nope", Title: "x", UserID: "u1"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestGig_Delete(t *testing.T) {
	ctx := context.Background()
	_, svc := newGigFixture()

	g, err := svc.Create(ctx, models.Gig{Title: "Logo design", Price: 50, UserID: "u1"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, g.ID))
	_, err = svc.Get(ctx, g.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, g.ID), apperr.ErrNotFound)
}
