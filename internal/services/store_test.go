package services

import (
	"context"
	"sync"
	"time"

	"github.com/gigpay/gigpay-backend/internal/apperr"
	"github.com/gigpay/gigpay-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// memStore is an in-memory stand-in for the postgres repositories with the
// same settle semantics: balance deltas and the status flip land together,
// and a second settle of the same transfer is a no-op.
type memStore struct {
	mu        sync.Mutex
	users     map[string]models.User
	transfers map[string]models.Transfer
	byKey     map[string]string
	gigs      map[string]models.Gig
}

func newMemStore() *memStore {
	return &memStore{
		users:     map[string]models.User{},
		transfers: map[string]models.Transfer{},
		byKey:     map[string]string{},
		gigs:      map[string]models.Gig{},
	}
}

func (m *memStore) addUser(id, email string, balance int64, customerID *string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[id] = models.User{
		ID: id, Username: id, Email: email, Balance: balance,
		StripeCustomerID: customerID,
		CreatedAt:        time.Now(), UpdatedAt: time.Now(),
	}
}

func (m *memStore) balance(id string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.users[id].Balance
}

// ---- repository.Users ----

func (m *memStore) Create(_ context.Context, username, email, passwordHash string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := models.User{
		ID: uuid.NewString(), Username: username, Email: email, PasswordHash: passwordHash,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	m.users[u.ID] = u
	return u, nil
}

func (m *memStore) GetByID(_ context.Context, id string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return models.User{}, apperr.NotFound("user")
	}
	return u, nil
}

func (m *memStore) GetByEmail(_ context.Context, email string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, apperr.NotFound("user")
}

func (m *memStore) List(_ context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *memStore) SetStripeCustomerID(_ context.Context, userID, customerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return apperr.NotFound("user")
	}
	u.StripeCustomerID = &customerID
	m.users[userID] = u
	return nil
}

func (m *memStore) SetStripeCustomerIDByEmail(_ context.Context, email, customerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, u := range m.users {
		if u.Email == email {
			u.StripeCustomerID = &customerID
			m.users[id] = u
			return nil
		}
	}
	return apperr.NotFound("user")
}

func (m *memStore) SetPaymentMethodID(_ context.Context, userID, paymentMethodID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return apperr.NotFound("user")
	}
	u.StripePaymentMethodID = &paymentMethodID
	m.users[userID] = u
	return nil
}

// ---- repository.Transfers ----

type memTransfers struct{ *memStore }

func (m *memTransfers) Create(_ context.Context, t models.Transfer) (models.Transfer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.IdempotencyKey != nil {
		if id, ok := m.byKey[*t.IdempotencyKey]; ok {
			return m.transfers[id], nil
		}
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	t.CreatedAt = time.Now()
	m.transfers[t.ID] = t
	if t.IdempotencyKey != nil {
		m.byKey[*t.IdempotencyKey] = t.ID
	}
	return t, nil
}

func (m *memTransfers) GetByID(_ context.Context, id string) (models.Transfer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.transfers[id]
	if !ok {
		return models.Transfer{}, apperr.NotFound("transfer")
	}
	return t, nil
}

func (m *memTransfers) GetByIdempotencyKey(_ context.Context, key string) (models.Transfer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.byKey[key]
	if !ok {
		return models.Transfer{}, apperr.NotFound("transfer")
	}
	return m.transfers[id], nil
}

func (m *memTransfers) SetStripeRef(_ context.Context, id, ref string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.transfers[id]
	if !ok {
		return apperr.NotFound("transfer")
	}
	t.StripeRef = &ref
	m.transfers[id] = t
	return nil
}

func (m *memTransfers) MarkFailed(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.transfers[id]
	if !ok {
		return apperr.NotFound("transfer")
	}
	t.Status = models.TransferFailed
	m.transfers[id] = t
	return nil
}

func (m *memTransfers) Settle(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.transfers[id]
	if !ok {
		return apperr.NotFound("transfer")
	}
	if t.BalancesApplied {
		return nil
	}
	if t.SenderID != nil {
		u := m.users[*t.SenderID]
		u.Balance -= t.Amount
		m.users[*t.SenderID] = u
	}
	if t.ReceiverID != nil {
		u := m.users[*t.ReceiverID]
		u.Balance += t.Amount
		m.users[*t.ReceiverID] = u
	}
	t.Status = models.TransferSettled
	t.BalancesApplied = true
	m.transfers[id] = t
	return nil
}

func (m *memTransfers) ListUnapplied(_ context.Context, minAge time.Duration, limit int) ([]models.Transfer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cutoff := time.Now().Add(-minAge)
	var out []models.Transfer
	for _, t := range m.transfers {
		if t.Status == models.TransferPending && t.StripeRef != nil && !t.BalancesApplied && t.CreatedAt.Before(cutoff) {
			out = append(out, t)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// ---- repository.Gigs ----

type memGigs struct{ *memStore }

func (m *memGigs) Create(_ context.Context, g models.Gig) (models.Gig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	g.CreatedAt = time.Now()
	m.gigs[g.ID] = g
	return g, nil
}

func (m *memGigs) GetByID(_ context.Context, id string) (models.Gig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.gigs[id]
	if !ok {
		return models.Gig{}, apperr.NotFound("gig")
	}
	return g, nil
}

func (m *memGigs) List(_ context.Context, limit, offset int) ([]models.Gig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Gig, 0, len(m.gigs))
	for _, g := range m.gigs {
		out = append(out, g)
	}
	return out, nil
}

func (m *memGigs) Update(_ context.Context, g models.Gig) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	prev, ok := m.gigs[g.ID]
	if !ok {
		return apperr.NotFound("gig")
	}
	g.CreatedAt = prev.CreatedAt
	m.gigs[g.ID] = g
	return nil
}

func (m *memGigs) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.gigs[id]; !ok {
		return apperr.NotFound("gig")
	}
	delete(m.gigs, id)
	return nil
}

// ---- Processor mock ----

type MockProcessor struct{ mock.Mock }

func (m *MockProcessor) CreateCustomer(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

func (m *MockProcessor) CreateTransfer(ctx context.Context, amount int64, source, destination string) (string, error) {
	args := m.Called(ctx, amount, source, destination)
	return args.String(0), args.Error(1)
}

func (m *MockProcessor) CreatePaymentIntent(ctx context.Context, amount int64, customer string) (string, error) {
	args := m.Called(ctx, amount, customer)
	return args.String(0), args.Error(1)
}

func (m *MockProcessor) CreateCharge(ctx context.Context, amount int64, customer string) (string, error) {
	args := m.Called(ctx, amount, customer)
	return args.String(0), args.Error(1)
}

func (m *MockProcessor) AttachPaymentMethod(ctx context.Context, paymentMethodID, customer string) error {
	args := m.Called(ctx, paymentMethodID, customer)
	return args.Error(0)
}
