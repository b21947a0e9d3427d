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

type gigsRepo struct{ pool *pgxpool.Pool }

func (r *gigsRepo) Create(ctx context.Context, g models.Gig) (models.Gig, error) {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO gigs(id, title, description, price, user_id)
		 VALUES($1,$2,$3,$4,$5)
		 RETURNING id, title, description, price, user_id, created_at`,
		g.ID, g.Title, g.Description, g.Price, g.UserID,
	).Scan(&g.ID, &g.Title, &g.Description, &g.Price, &g.UserID, &g.CreatedAt)
	return g, err
}

func (r *gigsRepo) GetByID(ctx context.Context, id string) (models.Gig, error) {
	var g models.Gig
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, description, price, user_id, created_at FROM gigs WHERE id=$1`, id,
	).Scan(&g.ID, &g.Title, &g.Description, &g.Price, &g.UserID, &g.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Gig{}, apperr.NotFound("gig")
	}
	return g, err
}

func (r *gigsRepo) List(ctx context.Context, limit, offset int) ([]models.Gig, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, description, price, user_id, created_at
		   FROM gigs ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Gig
	for rows.Next() {
		var g models.Gig
		if err := rows.Scan(&g.ID, &g.Title, &g.Description, &g.Price, &g.UserID, &g.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *gigsRepo) Update(ctx context.Context, g models.Gig) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE gigs SET title=$2, description=$3, price=$4 WHERE id=$1`,
		g.ID, g.Title, g.Description, g.Price,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("gig")
	}
	return nil
}

func (r *gigsRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM gigs WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("gig")
	}
	return nil
}
