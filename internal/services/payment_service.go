package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gigpay/gigpay-backend/internal/apperr"
	"github.com/gigpay/gigpay-backend/internal/metrics"
	"github.com/gigpay/gigpay-backend/internal/models"
	repo "github.com/gigpay/gigpay-backend/internal/repository"
	"github.com/google/uuid"
)

// PaymentService moves money. Every movement is recorded as a transfer row
// before the processor is called; the processor call is the only gate, and
// the local balance writes happen in one settle step after it succeeds.
// Movements caught between the processor accepting and the settle landing are
// picked up by Reconcile.
type PaymentService struct {
	users     repo.Users
	transfers repo.Transfers
	proc      Processor
}

func NewPaymentService(u repo.Users, t repo.Transfers, p Processor) *PaymentService {
	return &PaymentService{users: u, transfers: t, proc: p}
}

// Transfer moves amount from sender to receiver. Preconditions, in order:
// both users exist, both are linked to a processor customer. On replay of a
// known idempotency key the original record is returned and the processor is
// not called again.
func (s *PaymentService) Transfer(ctx context.Context, senderID, receiverID string, amount int64, idemKey string) (models.Transfer, error) {
	if prev, ok, err := s.replay(ctx, idemKey); err != nil || ok {
		return prev, err
	}

	sender, err := s.users.GetByID(ctx, senderID)
	if err != nil {
		return models.Transfer{}, err
	}
	receiver, err := s.users.GetByID(ctx, receiverID)
	if err != nil {
		return models.Transfer{}, err
	}
	if !sender.Provisioned() || !receiver.Provisioned() {
		return models.Transfer{}, apperr.InvalidState("stripe customer not found for sender or receiver")
	}

	tr, replayed, err := s.record(ctx, models.Transfer{
		SenderID:   &sender.ID,
		ReceiverID: &receiver.ID,
		Amount:     amount,
		Kind:       models.KindTransfer,
	}, idemKey)
	if err != nil {
		return models.Transfer{}, err
	}
	if replayed {
		return tr, nil
	}

	ref, err := s.proc.CreateTransfer(ctx, amount, *sender.StripeCustomerID, *receiver.StripeCustomerID)
	return s.finish(ctx, tr, ref, err)
}

// Deposit credits the user's balance after a payment intent is created for
// their processor customer.
func (s *PaymentService) Deposit(ctx context.Context, userID string, amount int64, idemKey string) (models.Transfer, error) {
	if prev, ok, err := s.replay(ctx, idemKey); err != nil || ok {
		return prev, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return models.Transfer{}, err
	}
	if !user.Provisioned() {
		return models.Transfer{}, apperr.InvalidState("stripe customer not found for user")
	}

	tr, replayed, err := s.record(ctx, models.Transfer{
		ReceiverID: &user.ID,
		Amount:     amount,
		Kind:       models.KindDeposit,
	}, idemKey)
	if err != nil {
		return models.Transfer{}, err
	}
	if replayed {
		return tr, nil
	}

	ref, err := s.proc.CreatePaymentIntent(ctx, amount, *user.StripeCustomerID)
	return s.finish(ctx, tr, ref, err)
}

// Withdraw debits the user's balance after the processor accepts a charge.
func (s *PaymentService) Withdraw(ctx context.Context, userID string, amount int64, idemKey string) (models.Transfer, error) {
	if prev, ok, err := s.replay(ctx, idemKey); err != nil || ok {
		return prev, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return models.Transfer{}, err
	}
	if !user.Provisioned() {
		return models.Transfer{}, apperr.InvalidState("stripe customer not found for user")
	}

	tr, replayed, err := s.record(ctx, models.Transfer{
		SenderID: &user.ID,
		Amount:   amount,
		Kind:     models.KindWithdrawal,
	}, idemKey)
	if err != nil {
		return models.Transfer{}, err
	}
	if replayed {
		return tr, nil
	}

	ref, err := s.proc.CreateCharge(ctx, amount, *user.StripeCustomerID)
	return s.finish(ctx, tr, ref, err)
}

// AttachPaymentMethod links a processor payment method to the user.
func (s *PaymentService) AttachPaymentMethod(ctx context.Context, userID, paymentMethodID string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.Provisioned() {
		return apperr.InvalidState("stripe customer not found for user")
	}
	if err := s.proc.AttachPaymentMethod(ctx, paymentMethodID, *user.StripeCustomerID); err != nil {
		return err
	}
	return s.users.SetPaymentMethodID(ctx, userID, paymentMethodID)
}

func (s *PaymentService) GetTransfer(ctx context.Context, id string) (models.Transfer, error) {
	return s.transfers.GetByID(ctx, id)
}

// Reconcile settles transfers the processor accepted but whose balance
// writes never landed. Returns the number repaired.
func (s *PaymentService) Reconcile(ctx context.Context, minAge time.Duration) (int, error) {
	stuck, err := s.transfers.ListUnapplied(ctx, minAge, 100)
	if err != nil {
		return 0, err
	}
	repaired := 0
	for _, t := range stuck {
		if err := s.transfers.Settle(ctx, t.ID); err != nil {
			slog.Error("reconcile settle", "transfer_id", t.ID, "err", err)
			continue
		}
		slog.Warn("repaired unapplied transfer", "transfer_id", t.ID, "kind", t.Kind, "amount", t.Amount)
		metrics.ReconcileRepairs.Inc()
		repaired++
	}
	return repaired, nil
}

func (s *PaymentService) replay(ctx context.Context, idemKey string) (models.Transfer, bool, error) {
	if idemKey == "" {
		return models.Transfer{}, false, nil
	}
	prev, err := s.transfers.GetByIdempotencyKey(ctx, idemKey)
	if err == nil {
		return prev, true, nil
	}
	if errors.Is(err, apperr.ErrNotFound) {
		return models.Transfer{}, false, nil
	}
	return models.Transfer{}, false, err
}

// record inserts the pending row. The insert is the idempotency arbiter: two
// requests racing on the same key both reach it, but the key's unique
// constraint hands the loser the winner's row, recognizable by its foreign
// ID. The loser must not call the processor.
func (s *PaymentService) record(ctx context.Context, t models.Transfer, idemKey string) (tr models.Transfer, replayed bool, err error) {
	if idemKey != "" {
		t.IdempotencyKey = &idemKey
	}
	t.ID = uuid.NewString()
	t.Status = models.TransferPending
	created, err := s.transfers.Create(ctx, t)
	if err != nil {
		return models.Transfer{}, false, err
	}
	return created, created.ID != t.ID, nil
}

// finish records the processor outcome and settles the balances. A settle
// failure leaves the row pending with its processor ref; the reconciler
// repairs it rather than the money moving externally with no local trace.
func (s *PaymentService) finish(ctx context.Context, tr models.Transfer, ref string, procErr error) (models.Transfer, error) {
	if procErr != nil {
		if err := s.transfers.MarkFailed(ctx, tr.ID); err != nil {
			slog.Error("mark transfer failed", "transfer_id", tr.ID, "err", err)
		}
		metrics.TransfersFailed.Inc()
		return models.Transfer{}, procErr
	}
	refErr := s.transfers.SetStripeRef(ctx, tr.ID, ref)
	if refErr != nil {
		slog.Error("record stripe ref", "transfer_id", tr.ID, "stripe_ref", ref, "err", refErr)
	}
	if err := s.transfers.Settle(ctx, tr.ID); err != nil {
		if refErr != nil {
			// With neither the ref nor the settle persisted the row is
			// invisible to the reconciler; the ref in the error is the only
			// trace of the external movement.
			return models.Transfer{}, apperr.Internal("transfer %s accepted by processor as %s but ref and settle writes failed: %v", tr.ID, ref, err)
		}
		return models.Transfer{}, apperr.Internal("transfer %s accepted by processor but not settled locally: %v", tr.ID, err)
	}
	metrics.TransfersTotal.WithLabelValues(string(tr.Kind)).Inc()
	return s.transfers.GetByID(ctx, tr.ID)
}
