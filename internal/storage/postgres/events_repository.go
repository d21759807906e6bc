package postgres

import (
	"context"

	"github.com/aqtareen/Taqreeb/internal/domain/events"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

var _ events.Repository = (*EventRepository)(nil)

type EventRepository struct {
	executor
}

const eventColumns = `e.event_id, e.event_name, e.event_type, e.event_date, c.client_id`

type eventRow struct {
	ID       int64
	Name     string
	Type     string
	Date     pgtype.Date
	ClientID int64
}

func (row eventRow) toEvent() events.Event {
	return events.Event{
		ID:       row.ID,
		Name:     row.Name,
		Type:     row.Type,
		Date:     row.Date.Time,
		ClientID: row.ClientID,
	}
}

func scanEvent(row pgx.Row) (events.Event, error) {
	var data eventRow
	if err := row.Scan(&data.ID, &data.Name, &data.Type, &data.Date, &data.ClientID); err != nil {
		return events.Event{}, err
	}
	return data.toEvent(), nil
}

func (r *EventRepository) List(ctx context.Context) ([]events.Event, error) {
	var out []events.Event
	err := r.run(ctx, "list_events", func(ctx context.Context, q Querier) error {
		rows, err := q.Query(ctx, `
SELECT `+eventColumns+`
  FROM events e
  JOIN clients c ON e.client_id = c.client_id
 ORDER BY e.event_id`)
		if err != nil {
			return err
		}
		out, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (events.Event, error) {
			return scanEvent(row)
		})
		return err
	})
	return out, err
}

func (r *EventRepository) Get(ctx context.Context, id int64) (events.Event, error) {
	var event events.Event
	err := r.run(ctx, "get_event", func(ctx context.Context, q Querier) error {
		var err error
		event, err = scanEvent(q.QueryRow(ctx, `
SELECT `+eventColumns+`
  FROM events e
  JOIN clients c ON e.client_id = c.client_id
 WHERE e.event_id = $1`, id))
		return err
	})
	return event, notFound(err, events.ErrNotFound)
}

func (r *EventRepository) GetByName(ctx context.Context, name string) (events.Event, error) {
	var event events.Event
	err := r.run(ctx, "get_event_by_name", func(ctx context.Context, q Querier) error {
		var err error
		event, err = scanEvent(q.QueryRow(ctx, `
SELECT `+eventColumns+`
  FROM events e
  JOIN clients c ON e.client_id = c.client_id
 WHERE e.event_name = $1
 ORDER BY e.event_id
 LIMIT 1`, name))
		return err
	})
	return event, notFound(err, events.ErrNotFound)
}

func (r *EventRepository) Create(ctx context.Context, event events.Event) (events.Event, error) {
	err := r.run(ctx, "insert_event", func(ctx context.Context, q Querier) error {
		return q.QueryRow(ctx, `
INSERT INTO events (event_name, event_type, event_date, client_id)
VALUES ($1, $2, $3, $4)
RETURNING event_id`,
			event.Name, event.Type, pgtype.Date{Time: event.Date, Valid: true}, event.ClientID,
		).Scan(&event.ID)
	})
	if isForeignKeyViolation(err) {
		return events.Event{}, events.ErrClientNotFound
	}
	if err != nil {
		return events.Event{}, err
	}
	return event, nil
}

func (r *EventRepository) Update(ctx context.Context, event events.Event) (events.Event, error) {
	var updated events.Event
	err := r.run(ctx, "update_event", func(ctx context.Context, q Querier) error {
		var err error
		updated, err = scanEvent(q.QueryRow(ctx, `
UPDATE events e
   SET event_name = $2, event_type = $3, event_date = $4
  FROM clients c
 WHERE e.event_id = $1
   AND c.client_id = e.client_id
RETURNING `+eventColumns,
			event.ID, event.Name, event.Type, pgtype.Date{Time: event.Date, Valid: true}))
		return err
	})
	return updated, notFound(err, events.ErrNotFound)
}

func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "delete_event", `DELETE FROM events WHERE event_id = $1`, id, events.ErrNotFound)
}
