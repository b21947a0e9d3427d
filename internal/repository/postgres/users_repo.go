package postgres

import (
	"context"
	"errors"

	"github.com/gigpay/gigpay-backend/internal/apperr"
	"github.com/gigpay/gigpay-backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type usersRepo struct{ pool *pgxpool.Pool }

const userCols = `id, username, email, password_hash, balance, stripe_customer_id, stripe_payment_method_id, created_at, updated_at`

func scanUser(row pgx.Row) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Balance,
		&u.StripeCustomerID, &u.StripePaymentMethodID, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, apperr.NotFound("user")
	}
	return u, err
}

func (r *usersRepo) Create(ctx context.Context, username, email, passwordHash string) (models.User, error) {
	id := uuid.NewString()
	_, err := r.pool.Exec(ctx,
		`INSERT INTO users(id, username, email, password_hash, balance) VALUES($1,$2,$3,$4,0)`,
		id, username, email, passwordHash,
	)
	if err != nil {
		return models.User{}, err
	}
	return r.GetByID(ctx, id)
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (models.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE id=$1`, id))
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE email=$1`, email))
}

func (r *usersRepo) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+userCols+` FROM users ORDER BY created_at DESC LIMIT 100`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *usersRepo) SetStripeCustomerID(ctx context.Context, userID, customerID string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET stripe_customer_id=$2, updated_at=now() WHERE id=$1`,
		userID, customerID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("user")
	}
	return nil
}

func (r *usersRepo) SetStripeCustomerIDByEmail(ctx context.Context, email, customerID string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET stripe_customer_id=$2, updated_at=now() WHERE email=$1`,
		email, customerID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("user")
	}
	return nil
}

func (r *usersRepo) SetPaymentMethodID(ctx context.Context, userID, paymentMethodID string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET stripe_payment_method_id=$2, updated_at=now() WHERE id=$1`,
		userID, paymentMethodID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("user")
	}
	return nil
}
