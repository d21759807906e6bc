package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Repository groups the per-resource repositories over one Gateway. A
// Repository bound to a transaction hands that transaction to every
// repository it returns.
type Repository struct {
	gw *Gateway
	tx pgx.Tx
}

func NewRepository(gw *Gateway) (*Repository, error) {
	if gw == nil {
		return nil, fmt.Errorf("postgres repository: gateway is nil")
	}
	return &Repository{gw: gw}, nil
}

func (r *Repository) Accounts() *AccountsRepository {
	return &AccountsRepository{executor: r.executor()}
}

func (r *Repository) Events() *EventRepository {
	return &EventRepository{executor: r.executor()}
}

func (r *Repository) Venues() *VenueRepository {
	return &VenueRepository{executor: r.executor()}
}

func (r *Repository) Vendors() *VendorRepository {
	return &VendorRepository{executor: r.executor()}
}

func (r *Repository) Teams() *TeamRepository {
	return &TeamRepository{executor: r.executor()}
}

func (r *Repository) Tasks() *TaskRepository {
	return &TaskRepository{executor: r.executor()}
}

// WithTx runs fn with a Repository bound to a new transaction. Nested calls
// join the outer transaction.
func (r *Repository) WithTx(ctx context.Context, fn func(context.Context, *Repository) error) error {
	if r.tx != nil {
		return fn(ctx, r)
	}
	return r.gw.WithTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return fn(ctx, &Repository{gw: r.gw, tx: tx})
	})
}

func (r *Repository) executor() executor {
	return executor{gw: r.gw, tx: r.tx}
}
