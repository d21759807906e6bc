package postgres

import (
	"context"

	"github.com/aqtareen/Taqreeb/internal/domain/venues"
	"github.com/jackc/pgx/v5"
)

var _ venues.Repository = (*VenueRepository)(nil)

type VenueRepository struct {
	executor
}

func scanVenue(row pgx.Row) (venues.Venue, error) {
	var v venues.Venue
	err := row.Scan(&v.ID, &v.Name, &v.City)
	return v, err
}

func (r *VenueRepository) List(ctx context.Context) ([]venues.Venue, error) {
	var out []venues.Venue
	err := r.run(ctx, "list_venues", func(ctx context.Context, q Querier) error {
		rows, err := q.Query(ctx, `SELECT venue_id, venue_name, city FROM venues ORDER BY venue_id`)
		if err != nil {
			return err
		}
		out, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (venues.Venue, error) {
			return scanVenue(row)
		})
		return err
	})
	return out, err
}

func (r *VenueRepository) Get(ctx context.Context, id int64) (venues.Venue, error) {
	var venue venues.Venue
	err := r.run(ctx, "get_venue", func(ctx context.Context, q Querier) error {
		var err error
		venue, err = scanVenue(q.QueryRow(ctx, `SELECT venue_id, venue_name, city FROM venues WHERE venue_id = $1`, id))
		return err
	})
	return venue, notFound(err, venues.ErrNotFound)
}

func (r *VenueRepository) Create(ctx context.Context, venue venues.Venue) (venues.Venue, error) {
	err := r.run(ctx, "insert_venue", func(ctx context.Context, q Querier) error {
		return q.QueryRow(ctx,
			`INSERT INTO venues (venue_name, city) VALUES ($1, $2) RETURNING venue_id`,
			venue.Name, venue.City,
		).Scan(&venue.ID)
	})
	if err != nil {
		return venues.Venue{}, err
	}
	return venue, nil
}

func (r *VenueRepository) Update(ctx context.Context, venue venues.Venue) (venues.Venue, error) {
	var updated venues.Venue
	err := r.run(ctx, "update_venue", func(ctx context.Context, q Querier) error {
		var err error
		updated, err = scanVenue(q.QueryRow(ctx, `
UPDATE venues
   SET venue_name = $2, city = $3
 WHERE venue_id = $1
RETURNING venue_id, venue_name, city`,
			venue.ID, venue.Name, venue.City))
		return err
	})
	return updated, notFound(err, venues.ErrNotFound)
}

func (r *VenueRepository) Delete(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "delete_venue", `DELETE FROM venues WHERE venue_id = $1`, id, venues.ErrNotFound)
}
