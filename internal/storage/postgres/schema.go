package postgres

import (
	"context"
	_ "embed"
	"time"

	"github.com/jackc/pgx/v5"
)

//go:embed schema.sql
var schemaSQL string

// schemaLockKey serializes EnsureSchema across processes sharing a database.
const schemaLockKey int64 = 0x74617172656562

// EnsureSchema creates any missing tables. It is safe to call on every
// start and from several processes at once.
func (g *Gateway) EnsureSchema(ctx context.Context) error {
	start := time.Now()
	err := g.WithTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := g.exec(ctx, "lock schema", tx, func(ctx context.Context, q Querier) error {
			_, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, schemaLockKey)
			return err
		}); err != nil {
			return err
		}
		// No arguments, so pgx sends this over the simple protocol and the
		// whole file runs as one multi-statement batch.
		return g.exec(ctx, "ensure schema", tx, func(ctx context.Context, q Querier) error {
			_, err := q.Exec(ctx, schemaSQL)
			return err
		})
	})
	if err != nil {
		return err
	}
	g.logger.Info().Dur("duration", time.Since(start)).Msg("database schema ensured")
	return nil
}
