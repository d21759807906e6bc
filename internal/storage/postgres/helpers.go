package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// notFound swaps pgx.ErrNoRows for the domain sentinel.
func notFound(err, sentinel error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return sentinel
	}
	return err
}

// deleteByID runs a delete keyed on id and reports sentinel when nothing
// matched.
func (e executor) deleteByID(ctx context.Context, op, sql string, id int64, sentinel error) error {
	err := e.run(ctx, op, func(ctx context.Context, q Querier) error {
		tag, err := q.Exec(ctx, sql, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		return nil
	})
	return notFound(err, sentinel)
}

// nullableID converts an optional key for a nullable INTEGER column.
func nullableID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}
