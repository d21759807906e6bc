package events

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("event not found")
	// ErrClientNotFound is returned when an event references a missing client.
	ErrClientNotFound = errors.New("client not found")
)

// DateLayout is the wire and storage format of an event date.
const DateLayout = "2006-01-02"

type Event struct {
	ID       int64
	Name     string
	Type     string
	Date     time.Time
	ClientID int64
}

// Repository reads events joined to their client. Update changes name, type
// and date only; the owning client is fixed at creation.
type Repository interface {
	List(ctx context.Context) ([]Event, error)
	Get(ctx context.Context, id int64) (Event, error)
	GetByName(ctx context.Context, name string) (Event, error)
	Create(ctx context.Context, event Event) (Event, error)
	Update(ctx context.Context, event Event) (Event, error)
	Delete(ctx context.Context, id int64) error
}
