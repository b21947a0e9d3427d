package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/gigpay/gigpay-backend/internal/apperr"
	"github.com/gigpay/gigpay-backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type transfersRepo struct{ pool *pgxpool.Pool }

const transferCols = `id, sender_id, receiver_id, amount, kind, status, idempotency_key, stripe_ref, balances_applied, created_at`

func scanTransfer(row pgx.Row) (models.Transfer, error) {
	var t models.Transfer
	err := row.Scan(&t.ID, &t.SenderID, &t.ReceiverID, &t.Amount, &t.Kind, &t.Status,
		&t.IdempotencyKey, &t.StripeRef, &t.BalancesApplied, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Transfer{}, apperr.NotFound("transfer")
	}
	return t, err
}

func (r *transfersRepo) Create(ctx context.Context, t models.Transfer) (models.Transfer, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Status == "" {
		t.Status = models.TransferPending
	}
	// A replayed idempotency key returns the existing row untouched.
	const q = `
INSERT INTO transfers (id, sender_id, receiver_id, amount, kind, status, idempotency_key)
VALUES ($1,$2,$3,$4,$5,$6,$7)
ON CONFLICT (idempotency_key) DO UPDATE
SET idempotency_key = EXCLUDED.idempotency_key
RETURNING ` + transferCols
	return scanTransfer(r.pool.QueryRow(ctx, q,
		t.ID, t.SenderID, t.ReceiverID, t.Amount, t.Kind, t.Status, t.IdempotencyKey))
}

func (r *transfersRepo) GetByID(ctx context.Context, id string) (models.Transfer, error) {
	return scanTransfer(r.pool.QueryRow(ctx,
		`SELECT `+transferCols+` FROM transfers WHERE id=$1`, id))
}

func (r *transfersRepo) GetByIdempotencyKey(ctx context.Context, key string) (models.Transfer, error) {
	return scanTransfer(r.pool.QueryRow(ctx,
		`SELECT `+transferCols+` FROM transfers WHERE idempotency_key=$1`, key))
}

func (r *transfersRepo) SetStripeRef(ctx context.Context, id, ref string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE transfers SET stripe_ref=$2 WHERE id=$1`, id, ref)
	return err
}

func (r *transfersRepo) MarkFailed(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE transfers SET status=$2 WHERE id=$1`, id, models.TransferFailed)
	return err
}

// Settle applies both balance writes and the status flip atomically. The row
// lock plus the balances_applied guard makes it safe to call twice: the
// second caller sees balances_applied=true and does nothing.
func (r *transfersRepo) Settle(ctx context.Context, id string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadWrite})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	t, err := scanTransfer(tx.QueryRow(ctx,
		`SELECT `+transferCols+` FROM transfers WHERE id=$1 FOR UPDATE`, id))
	if err != nil {
		return err
	}
	if t.BalancesApplied {
		return nil
	}

	if t.SenderID != nil {
		if _, err := tx.Exec(ctx,
			`UPDATE users SET balance = balance - $2, updated_at = now() WHERE id=$1`,
			*t.SenderID, t.Amount); err != nil {
			return err
		}
	}
	if t.ReceiverID != nil {
		if _, err := tx.Exec(ctx,
			`UPDATE users SET balance = balance + $2, updated_at = now() WHERE id=$1`,
			*t.ReceiverID, t.Amount); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(ctx,
		`UPDATE transfers SET status=$2, balances_applied=true WHERE id=$1`,
		id, models.TransferSettled); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *transfersRepo) ListUnapplied(ctx context.Context, minAge time.Duration, limit int) ([]models.Transfer, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+transferCols+` FROM transfers
		  WHERE status=$1 AND stripe_ref IS NOT NULL AND balances_applied=false
		    AND created_at < now() - make_interval(secs => $2)
		  ORDER BY created_at
		  LIMIT $3`,
		models.TransferPending, minAge.Seconds(), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Transfer
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
