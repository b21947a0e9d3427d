package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gigpay/gigpay-backend/internal/apperr"
	repo "github.com/gigpay/gigpay-backend/internal/repository"
	"github.com/gigpay/gigpay-backend/internal/stripe"
)

// WebhookService translates processor events into local field updates. Only
// customer.created is handled; every other kind is acknowledged and dropped.
type WebhookService struct {
	users  repo.Users
	secret string
}

func NewWebhookService(u repo.Users, secret string) *WebhookService {
	return &WebhookService{users: u, secret: secret}
}

// Handle verifies the signature over the raw payload and applies the event.
// Handled reports whether the event caused a store mutation.
func (s *WebhookService) Handle(ctx context.Context, payload []byte, sigHeader string) (handled bool, err error) {
	event, err := stripe.ConstructEvent(payload, sigHeader, s.secret)
	if err != nil {
		return false, err
	}

	if event.Type != "customer.created" {
		slog.Debug("webhook event ignored", "type", event.Type)
		return false, nil
	}

	customerID := event.Data.Object.ID
	email := event.Data.Object.Email
	if err := s.users.SetStripeCustomerIDByEmail(ctx, email, customerID); err != nil {
		// A customer for an unknown email is a lookup failure, surfaced as a
		// server error, not a signature problem.
		if errors.Is(err, apperr.ErrNotFound) {
			return false, apperr.Internal("no user for webhook email")
		}
		return false, err
	}
	slog.Info("user linked to stripe customer", "customer_id", customerID)
	return true, nil
}
