package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/gigpay/gigpay-backend/internal/apperr"
	"github.com/gigpay/gigpay-backend/internal/auth"
	"github.com/gigpay/gigpay-backend/internal/metrics"
	"github.com/gigpay/gigpay-backend/internal/models"
	repo "github.com/gigpay/gigpay-backend/internal/repository"
	"github.com/gigpay/gigpay-backend/internal/worker"
)

type UserService struct {
	users repo.Users
	proc  Processor
	tm    *auth.TokenManager
	wp    *worker.Pool
}

func NewUserService(u repo.Users, p Processor, tm *auth.TokenManager, wp *worker.Pool) *UserService {
	return &UserService{users: u, proc: p, tm: tm, wp: wp}
}

// Register creates the account with a zero balance and kicks off processor
// customer provisioning off the request path. A provisioning failure leaves
// the account without a customer reference; it is not retried here and the
// signup is not rolled back. The webhook handler closes the gap when the
// processor later reports the customer.
func (s *UserService) Register(ctx context.Context, username, email, password string) (models.User, error) {
	u := models.User{Username: strings.TrimSpace(username), Email: strings.TrimSpace(email)}
	if err := u.Validate(); err != nil {
		return models.User{}, apperr.InvalidState("%v", err)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, apperr.Internal("hash password: %v", err)
	}
	created, err := s.users.Create(ctx, u.Username, u.Email, hash)
	if err != nil {
		return models.User{}, err
	}

	s.wp.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := s.ProvisionCustomer(ctx, created.ID, created.Email); err != nil {
			slog.Error("provision customer", "user_id", created.ID, "err", err)
			metrics.ProvisioningFailed.Inc()
		}
	})
	return created, nil
}

// ProvisionCustomer creates the processor-side customer for the user and
// stores the returned reference.
func (s *UserService) ProvisionCustomer(ctx context.Context, userID, email string) error {
	customerID, err := s.proc.CreateCustomer(ctx, email)
	if err != nil {
		return err
	}
	if err := s.users.SetStripeCustomerID(ctx, userID, customerID); err != nil {
		return err
	}
	slog.Info("stripe customer created", "user_id", userID, "customer_id", customerID)
	return nil
}

type LoginResult struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      models.User `json:"user"`
}

func (s *UserService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return LoginResult{}, apperr.InvalidState("invalid credentials")
		}
		return LoginResult{}, err
	}
	if err := auth.VerifyPassword(password, u.PasswordHash); err != nil {
		return LoginResult{}, apperr.InvalidState("invalid credentials")
	}
	tok, exp, err := s.tm.Generate(u.ID)
	if err != nil {
		return LoginResult{}, apperr.Internal("token generation failed")
	}
	return LoginResult{Token: tok, ExpiresAt: exp, User: u}, nil
}

func (s *UserService) Get(ctx context.Context, id string) (models.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}
