package services

import (
	"context"

	"github.com/gigpay/gigpay-backend/internal/apperr"
	"github.com/gigpay/gigpay-backend/internal/models"
	repo "github.com/gigpay/gigpay-backend/internal/repository"
)

// GigService is plain record storage. No ownership check ties the caller to
// the gig being updated or deleted.
type GigService struct {
	gigs repo.Gigs
}

func NewGigService(g repo.Gigs) *GigService {
	return &GigService{gigs: g}
}

func (s *GigService) Create(ctx context.Context, g models.Gig) (models.Gig, error) {
	if err := g.Validate(); err != nil {
		return models.Gig{}, apperr.InvalidState("%v", err)
	}
	return s.gigs.Create(ctx, g)
}

func (s *GigService) Get(ctx context.Context, id string) (models.Gig, error) {
	return s.gigs.GetByID(ctx, id)
}

func (s *GigService) List(ctx context.Context, limit, offset int) ([]models.Gig, error) {
	return s.gigs.List(ctx, limit, offset)
}

// Update rewrites title, description and price. The owner is carried over
// from the stored row; callers do not (and cannot) change it.
func (s *GigService) Update(ctx context.Context, g models.Gig) (models.Gig, error) {
	current, err := s.gigs.GetByID(ctx, g.ID)
	if err != nil {
		return models.Gig{}, err
	}
	g.UserID = current.UserID
	if err := g.Validate(); err != nil {
		return models.Gig{}, apperr.InvalidState("%v", err)
	}
	if err := s.gigs.Update(ctx, g); err != nil {
		return models.Gig{}, err
	}
	return s.gigs.GetByID(ctx, g.ID)
}

func (s *GigService) Delete(ctx context.Context, id string) error {
	return s.gigs.Delete(ctx, id)
}
