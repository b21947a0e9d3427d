package models

import "time"

type TransferKind string

const (
	KindTransfer   TransferKind = "transfer"
	KindDeposit    TransferKind = "deposit"
	KindWithdrawal TransferKind = "withdrawal"
)

type TransferStatus string

const (
	TransferPending TransferStatus = "pending"
	TransferSettled TransferStatus = "settled"
	TransferFailed  TransferStatus = "failed"
)

// Transfer is a persisted money movement. A row is written pending before the
// processor is called; StripeRef is recorded as soon as the processor accepts,
// and BalancesApplied flips only once the local balance writes have landed.
// A row with a StripeRef but BalancesApplied=false is the partial-failure
// window the reconciler repairs.
type Transfer struct {
	ID              string         `json:"id"`
	SenderID        *string        `json:"sender_id,omitempty"`
	ReceiverID      *string        `json:"receiver_id,omitempty"`
	Amount          int64          `json:"amount"`
	Kind            TransferKind   `json:"kind"`
	Status          TransferStatus `json:"status"`
	IdempotencyKey  *string        `json:"idempotency_key,omitempty"`
	StripeRef       *string        `json:"stripe_ref,omitempty"`
	BalancesApplied bool           `json:"balances_applied"`
	CreatedAt       time.Time      `json:"created_at"`
}
