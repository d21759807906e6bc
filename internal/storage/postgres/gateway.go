package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aqtareen/Taqreeb/internal/config"
	"github.com/aqtareen/Taqreeb/internal/metrics"
	"github.com/aqtareen/Taqreeb/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const (
	defaultTimeout  = 10 * time.Second
	rollbackTimeout = 5 * time.Second

	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgQueryCanceled       = "57014"
)

// Querier is the statement surface shared by pooled connections and
// transactions.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Gateway owns the connection pool. Every acquisition and statement is
// bounded by a timeout and every failure leaves as a storage error type.
type Gateway struct {
	pool           *pgxpool.Pool
	acquireTimeout time.Duration
	queryTimeout   time.Duration
	logger         zerolog.Logger
}

// Open builds a pool from cfg and verifies it with a ping.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*Gateway, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}
	if cfg.MaxConnections > 0 {
		poolCfg.MaxConns = int32(cfg.MaxConnections)
	}
	if cfg.MinConnections > 0 {
		poolCfg.MinConns = int32(cfg.MinConnections)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	gw := NewGateway(pool, cfg.AcquireTimeout, cfg.QueryTimeout, logger)
	if err := gw.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	gw.logger.Info().
		Str("host", poolCfg.ConnConfig.Host).
		Str("database", poolCfg.ConnConfig.Database).
		Int32("max_conns", poolCfg.MaxConns).
		Dur("acquire_timeout", gw.acquireTimeout).
		Dur("query_timeout", gw.queryTimeout).
		Msg("database pool ready")
	return gw, nil
}

// NewGateway wraps an existing pool. Non-positive timeouts fall back to 10s.
func NewGateway(pool *pgxpool.Pool, acquireTimeout, queryTimeout time.Duration, logger zerolog.Logger) *Gateway {
	if acquireTimeout <= 0 {
		acquireTimeout = defaultTimeout
	}
	if queryTimeout <= 0 {
		queryTimeout = defaultTimeout
	}
	return &Gateway{
		pool:           pool,
		acquireTimeout: acquireTimeout,
		queryTimeout:   queryTimeout,
		logger:         logger.With().Str("component", "storage").Logger(),
	}
}

func (g *Gateway) Pool() *pgxpool.Pool {
	return g.pool
}

func (g *Gateway) Close() {
	g.pool.Close()
}

// Ping acquires a connection and round-trips to the server.
func (g *Gateway) Ping(ctx context.Context) error {
	return g.WithConn(ctx, func(ctx context.Context, conn *pgxpool.Conn) error {
		return g.exec(ctx, "ping", conn, func(ctx context.Context, _ Querier) error {
			return conn.Ping(ctx)
		})
	})
}

// WithConn acquires a connection for the duration of fn and always
// releases it.
func (g *Gateway) WithConn(ctx context.Context, fn func(context.Context, *pgxpool.Conn) error) error {
	conn, err := g.acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()
	return fn(ctx, conn)
}

// WithTx runs fn in a transaction on one scoped connection. It commits when
// fn returns nil and rolls back on error or panic.
func (g *Gateway) WithTx(ctx context.Context, fn func(context.Context, pgx.Tx) error) error {
	return g.WithConn(ctx, func(ctx context.Context, conn *pgxpool.Conn) error {
		var tx pgx.Tx
		err := g.exec(ctx, "begin", conn, func(ctx context.Context, _ Querier) error {
			var err error
			tx, err = conn.Begin(ctx)
			return err
		})
		if err != nil {
			return err
		}

		committed := false
		defer func() {
			if !committed {
				g.rollback(ctx, tx)
			}
		}()

		if err := fn(ctx, tx); err != nil {
			return err
		}

		if err := g.exec(ctx, "commit", tx, func(ctx context.Context, _ Querier) error {
			return tx.Commit(ctx)
		}); err != nil {
			return err
		}
		committed = true
		return nil
	})
}

func (g *Gateway) acquire(ctx context.Context) (*pgxpool.Conn, error) {
	actx, cancel := context.WithTimeout(ctx, g.acquireTimeout)
	defer cancel()

	start := time.Now()
	conn, err := g.pool.Acquire(actx)
	if err != nil {
		err = classify("acquire connection", err)
		metrics.RecordQuery("acquire", start, err)
		return nil, err
	}
	return conn, nil
}

// rollback runs even when ctx is already done so the connection goes back
// to the pool clean.
func (g *Gateway) rollback(ctx context.Context, tx pgx.Tx) {
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), rollbackTimeout)
	defer cancel()
	if err := tx.Rollback(rctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		g.logger.Warn().Err(err).Msg("rollback failed")
	}
}

// exec runs fn under the query timeout and classifies its error.
func (g *Gateway) exec(ctx context.Context, op string, q Querier, fn func(context.Context, Querier) error) error {
	qctx, cancel := context.WithTimeout(ctx, g.queryTimeout)
	defer cancel()
	return classify(op, fn(qctx, q))
}

// executor runs statements on a transaction when one is bound, otherwise on
// a connection scoped to the single statement.
type executor struct {
	gw *Gateway
	tx pgx.Tx
}

func (e executor) run(ctx context.Context, op string, fn func(context.Context, Querier) error) (err error) {
	start := time.Now()
	defer func() {
		observed := err
		if errors.Is(err, pgx.ErrNoRows) {
			observed = nil
		}
		metrics.RecordQuery(op, start, observed)
	}()

	if e.tx != nil {
		return e.gw.exec(ctx, op, e.tx, fn)
	}
	return e.gw.WithConn(ctx, func(ctx context.Context, conn *pgxpool.Conn) error {
		return e.gw.exec(ctx, op, conn, fn)
	})
}

// classify maps driver errors onto the storage error types. pgx.ErrNoRows
// is left untouched for repositories to translate.
func classify(op string, err error) error {
	if err == nil || errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	if storage.IsTimeout(err) || storage.IsQueryFailed(err) {
		return err
	}
	if isTimeout(err) {
		return &storage.TimeoutError{Op: op, Err: err}
	}
	return &storage.QueryFailedError{Op: op, Err: err}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return true
	}
	return pgErrorCode(err) == pgQueryCanceled
}

func isUniqueViolation(err error) bool {
	return pgErrorCode(err) == pgUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	return pgErrorCode(err) == pgForeignKeyViolation
}

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
