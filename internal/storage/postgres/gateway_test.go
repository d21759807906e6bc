package postgres

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aqtareen/Taqreeb/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestEnsureSchemaIsIdempotent(t *testing.T) {
	ctx := context.Background()
	gw := setupGateway(t)

	insertTeam(t, ctx, gw.Pool(), "Logistics")

	require.NoError(t, gw.EnsureSchema(ctx))

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = gw.EnsureSchema(ctx)
		}()
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}

	require.Equal(t, 1, countRows(t, ctx, gw.Pool(), "teams"), "existing rows survive")
}

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	gw := setupGateway(t)

	boom := errors.New("boom")
	err := gw.WithTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `INSERT INTO teams (team_name) VALUES ('Decor')`)
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)
	require.Zero(t, countRows(t, ctx, gw.Pool(), "teams"))
}

func TestWithTxRollsBackOnPanic(t *testing.T) {
	ctx := context.Background()
	gw := setupGateway(t)

	require.Panics(t, func() {
		_ = gw.WithTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
			_, err := tx.Exec(ctx, `INSERT INTO teams (team_name) VALUES ('Decor')`)
			require.NoError(t, err)
			panic("handler bug")
		})
	})
	require.Zero(t, countRows(t, ctx, gw.Pool(), "teams"))
	require.Zero(t, gw.Pool().Stat().AcquiredConns(), "connection released after panic")
}

func TestWithTxCommits(t *testing.T) {
	ctx := context.Background()
	gw := setupGateway(t)

	err := gw.WithTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `INSERT INTO teams (team_name) VALUES ('Decor')`)
		return err
	})
	require.NoError(t, err)
	require.Equal(t, 1, countRows(t, ctx, gw.Pool(), "teams"))
}

func TestAcquireTimeoutIsStorageTimeout(t *testing.T) {
	ctx := context.Background()
	setupGateway(t)

	cfg, err := pgxpool.ParseConfig(sharedDBURL)
	require.NoError(t, err)
	cfg.MaxConns = 1
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	require.NoError(t, err)
	defer pool.Close()

	held, err := pool.Acquire(ctx)
	require.NoError(t, err)
	defer held.Release()

	gw := NewGateway(pool, 100*time.Millisecond, time.Second, zerolog.Nop())
	start := time.Now()
	err = gw.Ping(ctx)

	var timeout *storage.TimeoutError
	require.ErrorAs(t, err, &timeout)
	require.Equal(t, "acquire connection", timeout.Op)
	require.Less(t, time.Since(start), 2*time.Second)
}

func TestQueryTimeoutIsStorageTimeout(t *testing.T) {
	ctx := context.Background()
	setupGateway(t)

	gw := NewGateway(sharedPool, time.Second, 100*time.Millisecond, zerolog.Nop())
	exec := executor{gw: gw}

	err := exec.run(ctx, "sleep", func(ctx context.Context, q Querier) error {
		_, err := q.Exec(ctx, `SELECT pg_sleep(2)`)
		return err
	})
	require.True(t, storage.IsTimeout(err), "got %v", err)
}

func TestQueryFailureIsClassified(t *testing.T) {
	ctx := context.Background()
	gw := setupGateway(t)
	exec := executor{gw: gw}

	err := exec.run(ctx, "select_missing", func(ctx context.Context, q Querier) error {
		_, err := q.Exec(ctx, `SELECT * FROM no_such_table`)
		return err
	})

	var failed *storage.QueryFailedError
	require.ErrorAs(t, err, &failed)
	require.Equal(t, "select_missing", failed.Op)
	require.False(t, storage.IsTimeout(err))
}

func TestClassify(t *testing.T) {
	require.NoError(t, classify("op", nil))
	require.ErrorIs(t, classify("op", pgx.ErrNoRows), pgx.ErrNoRows)
	require.True(t, storage.IsTimeout(classify("op", context.DeadlineExceeded)))
	require.True(t, storage.IsQueryFailed(classify("op", context.Canceled)))

	already := &storage.TimeoutError{Op: "inner", Err: context.DeadlineExceeded}
	require.Same(t, already, classify("outer", already))
}
