package postgres

import (
	repo "github.com/baharkarakas/payment-reconciler/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repositories struct {
	Orders     repo.Orders
	Transfers  repo.Transfers
	Matching   repo.Matching
	Watermarks repo.Watermarks
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Orders:     &ordersRepo{pool},
		Transfers:  &transfersRepo{pool},
		Matching:   &matchingRepo{pool},
		Watermarks: &watermarksRepo{pool},
	}
}
