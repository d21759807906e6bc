package venues

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("venue not found")

type Venue struct {
	ID   int64
	Name string
	City string
}

type Repository interface {
	List(ctx context.Context) ([]Venue, error)
	Get(ctx context.Context, id int64) (Venue, error)
	Create(ctx context.Context, venue Venue) (Venue, error)
	Update(ctx context.Context, venue Venue) (Venue, error)
	Delete(ctx context.Context, id int64) error
}
