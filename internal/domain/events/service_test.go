package events

import (
	"context"
	"testing"
	"time"

	"github.com/aqtareen/Taqreeb/internal/validation"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	created Event
	updated Event
	events  map[int64]Event
	clients map[int64]bool
}

func newStubRepo(clientIDs ...int64) *stubRepo {
	clients := map[int64]bool{}
	for _, id := range clientIDs {
		clients[id] = true
	}
	return &stubRepo{events: map[int64]Event{}, clients: clients}
}

func (r *stubRepo) List(context.Context) ([]Event, error) {
	out := make([]Event, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e)
	}
	return out, nil
}

func (r *stubRepo) Get(_ context.Context, id int64) (Event, error) {
	e, ok := r.events[id]
	if !ok {
		return Event{}, ErrNotFound
	}
	return e, nil
}

func (r *stubRepo) GetByName(_ context.Context, name string) (Event, error) {
	for id := int64(1); id <= int64(len(r.events)); id++ {
		if e, ok := r.events[id]; ok && e.Name == name {
			return e, nil
		}
	}
	return Event{}, ErrNotFound
}

func (r *stubRepo) Create(_ context.Context, e Event) (Event, error) {
	if !r.clients[e.ClientID] {
		return Event{}, ErrClientNotFound
	}
	e.ID = int64(len(r.events) + 1)
	r.events[e.ID] = e
	r.created = e
	return e, nil
}

func (r *stubRepo) Update(_ context.Context, e Event) (Event, error) {
	current, ok := r.events[e.ID]
	if !ok {
		return Event{}, ErrNotFound
	}
	e.ClientID = current.ClientID
	r.events[e.ID] = e
	r.updated = e
	return e, nil
}

func (r *stubRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.events[id]; !ok {
		return ErrNotFound
	}
	delete(r.events, id)
	return nil
}

func TestCreate(t *testing.T) {
	repo := newStubRepo(7)
	svc := NewService(repo, zerolog.Nop())

	event, err := svc.Create(context.Background(), CreateInput{
		Details:  Details{Name: "Mehndi <i>Night</i>", Type: "Wedding", Date: "2026-12-05"},
		ClientID: 7,
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), event.ID)
	require.Equal(t, "Mehndi Night", repo.created.Name)
	require.Equal(t, time.Date(2026, 12, 5, 0, 0, 0, 0, time.UTC), repo.created.Date)

	_, err = svc.Create(context.Background(), CreateInput{
		Details:  Details{Name: "Walima", Date: "2026-12-06"},
		ClientID: 99,
	})
	require.ErrorIs(t, err, ErrClientNotFound)
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name    string
		in      CreateInput
		message string
	}{
		{name: "missing name", in: CreateInput{Details: Details{Date: "2026-01-01"}, ClientID: 1}, message: "Event name is required"},
		{name: "missing date", in: CreateInput{Details: Details{Name: "Gala"}, ClientID: 1}, message: "Event date is required"},
		{name: "bad date format", in: CreateInput{Details: Details{Name: "Gala", Date: "01/02/2026"}, ClientID: 1}, message: "Event date must be in YYYY-MM-DD format"},
		{name: "impossible date", in: CreateInput{Details: Details{Name: "Gala", Date: "2026-02-30"}, ClientID: 1}, message: "Event date must be in YYYY-MM-DD format"},
		{name: "missing client", in: CreateInput{Details: Details{Name: "Gala", Date: "2026-01-01"}}, message: "A valid client id is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newStubRepo(1)
			svc := NewService(repo, zerolog.Nop())

			_, err := svc.Create(context.Background(), tt.in)
			verr, ok := validation.As(err)
			require.True(t, ok, "expected validation error, got %v", err)
			require.Equal(t, tt.message, verr.Message)
			require.Empty(t, repo.events)
		})
	}
}

func TestUpdateKeepsClient(t *testing.T) {
	repo := newStubRepo(3)
	svc := NewService(repo, zerolog.Nop())
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{Details: Details{Name: "Launch", Date: "2026-03-01"}, ClientID: 3})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, Details{Name: "Launch Party", Type: "Corporate", Date: "2026-03-02"})
	require.NoError(t, err)
	require.Equal(t, int64(3), updated.ClientID)
	require.Equal(t, "Corporate", updated.Type)

	_, err = svc.Update(ctx, 42, Details{Name: "Ghost", Date: "2026-03-02"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGetByNameAndDelete(t *testing.T) {
	repo := newStubRepo(1)
	svc := NewService(repo, zerolog.Nop())
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{Details: Details{Name: "Barat", Date: "2026-05-01"}, ClientID: 1})
	require.NoError(t, err)

	found, err := svc.GetByName(ctx, "Barat")
	require.NoError(t, err)
	require.Equal(t, created.ID, found.ID)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.GetByName(ctx, "Barat")
	require.ErrorIs(t, err, ErrNotFound)
}
