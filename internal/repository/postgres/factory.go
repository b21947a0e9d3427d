package postgres

import (
	repo "github.com/gigpay/gigpay-backend/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repositories struct {
	Users     repo.Users
	Gigs      repo.Gigs
	Transfers repo.Transfers
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Users:     &usersRepo{pool},
		Gigs:      &gigsRepo{pool},
		Transfers: &transfersRepo{pool},
	}
}
