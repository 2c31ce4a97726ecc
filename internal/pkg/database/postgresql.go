package database

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrStoreTimeout is returned when a transactional unit of work exceeds its
// bounded deadline. The operation rolled back; callers must re-read state
// before retrying because debits are not blindly retriable.
var ErrStoreTimeout = errors.New("store operation timed out")

type DB struct {
	*pgxpool.Pool

	// txTimeout bounds every WithinTransaction unit.
	txTimeout time.Duration
}

func NewPostgreSQLDB(dsn string, txTimeout time.Duration) (*DB, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	// Connection pool settings
	config.MaxConns = 25
	config.MinConns = 5

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(context.Background()); err != nil {
		return nil, err
	}

	return &DB{Pool: pool, txTimeout: txTimeout}, nil
}

type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, arguments ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// Transactor runs a function as one atomic unit against the backing store.
// Services depend on this interface so tests can substitute a pass-through.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type txContextKey struct{}

// WithinTransaction executes fn inside a database transaction with a bounded
// deadline. The transaction is injected into the context so repositories
// resolve it through QuerierFrom without signature changes.
func (db *DB) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	txCtx, cancel := context.WithTimeout(ctx, db.txTimeout)
	defer cancel()

	tx, err := db.Pool.Begin(txCtx)
	if err != nil {
		return mapTimeout(txCtx, err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(txCtx)
			panic(p)
		}
	}()

	if err := fn(context.WithValue(txCtx, txContextKey{}, tx)); err != nil {
		_ = tx.Rollback(txCtx)
		return mapTimeout(txCtx, err)
	}

	if err := tx.Commit(txCtx); err != nil {
		return mapTimeout(txCtx, err)
	}

	return nil
}

// QuerierFrom returns the in-flight transaction if ctx carries one, otherwise
// the pool. Used in repositories to support both transactional and
// non-transactional operations.
func QuerierFrom(ctx context.Context, db *DB) Querier {
	if tx, ok := ctx.Value(txContextKey{}).(pgx.Tx); ok {
		return tx
	}
	return db.Pool
}

func mapTimeout(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ErrStoreTimeout
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrStoreTimeout
	}
	return err
}
