package repository

import (
	"context"
	"time"

	"github.com/gigpay/gigpay-backend/internal/models"
)

type Users interface {
	Create(ctx context.Context, username, email, passwordHash string) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	SetStripeCustomerID(ctx context.Context, userID, customerID string) error
	SetStripeCustomerIDByEmail(ctx context.Context, email, customerID string) error
	SetPaymentMethodID(ctx context.Context, userID, paymentMethodID string) error
}

type Gigs interface {
	Create(ctx context.Context, g models.Gig) (models.Gig, error)
	GetByID(ctx context.Context, id string) (models.Gig, error)
	List(ctx context.Context, limit, offset int) ([]models.Gig, error)
	Update(ctx context.Context, g models.Gig) error
	Delete(ctx context.Context, id string) error
}

type Transfers interface {
	Create(ctx context.Context, t models.Transfer) (models.Transfer, error)
	GetByID(ctx context.Context, id string) (models.Transfer, error)
	GetByIdempotencyKey(ctx context.Context, key string) (models.Transfer, error)
	SetStripeRef(ctx context.Context, id, ref string) error
	MarkFailed(ctx context.Context, id string) error

	// Settle applies the balance effect of the transfer and flips it to
	// settled in one database transaction. It is a no-op when the balances
	// have already been applied, so the reconciler can call it safely.
	Settle(ctx context.Context, id string) error

	// ListUnapplied returns pending transfers whose processor call was
	// accepted but whose balance writes never landed, older than minAge.
	ListUnapplied(ctx context.Context, minAge time.Duration, limit int) ([]models.Transfer, error)
}
