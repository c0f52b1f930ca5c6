package database

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// Option configures a Repository
type Option func(*conn)

// WithClock replaces the clock used for created_at, updated_at and assigned_at
func WithClock(now func() time.Time) Option {
	return func(c *conn) {
		if now != nil {
			c.clock = now
		}
	}
}

// WithAtomicAssignments selects whether Assign replaces the set inside one transaction
func WithAtomicAssignments(atomic bool) Option {
	return func(c *conn) {
		c.atomicAssign = atomic
	}
}

// conn is the state every repository shares: the pool, the dialect's statement
// builder and the clock
type conn struct {
	db           *sqlx.DB
	dialect      Dialect
	sb           sq.StatementBuilderType
	clock        func() time.Time
	atomicAssign bool
}

func newConn(db *sqlx.DB, opts ...Option) *conn {
	dialect, err := DialectOf(db)
	if err != nil {
		slog.Warn("unknown driver, using sqlite placeholders", "driver", db.DriverName())
		dialect = DialectSQLite
	}

	c := &conn{
		db:           db,
		dialect:      dialect,
		sb:           dialect.builder(),
		clock:        time.Now,
		atomicAssign: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// now returns the current time in UTC at the precision both datastores keep
func (c *conn) now() time.Time {
	return c.clock().UTC().Truncate(time.Microsecond)
}

// withTx executes a function within a database transaction.
// It automatically handles begin, rollback on error, and commit on success.
func withTx(ctx context.Context, db *sqlx.DB, fn func(*sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			slog.Error("failed to rollback transaction", "error", err)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit()
}

// readTx runs fn in a transaction whose reads share one snapshot
func (c *conn) readTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	var opts *sql.TxOptions
	if c.dialect == DialectPostgres {
		opts = &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
	}

	tx, err := c.db.BeginTxx(ctx, opts)
	if err != nil {
		return err
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			slog.Error("failed to rollback transaction", "error", err)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// prefixed qualifies each column with a table alias
func prefixed(alias string, columns []string) []string {
	out := make([]string, len(columns))
	for i, col := range columns {
		out[i] = alias + "." + col
	}
	return out
}

// selectAll runs a squirrel select and scans every row into dest
func selectAll(ctx context.Context, q sqlx.QueryerContext, dest any, b sq.SelectBuilder) error {
	query, args, err := b.ToSql()
	if err != nil {
		return err
	}
	return sqlx.SelectContext(ctx, q, dest, query, args...)
}

// selectOne runs a squirrel select and scans the single row into dest
func selectOne(ctx context.Context, q sqlx.QueryerContext, dest any, b sq.SelectBuilder) error {
	query, args, err := b.ToSql()
	if err != nil {
		return err
	}
	return sqlx.GetContext(ctx, q, dest, query, args...)
}

// execAffected runs a squirrel statement and returns the number of rows it touched
func execAffected(ctx context.Context, e sqlx.ExecerContext, b sq.Sqlizer) (int64, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, err
	}
	res, err := e.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// nullableString maps "" to NULL for optional text columns
func nullableString(s *string) any {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}
