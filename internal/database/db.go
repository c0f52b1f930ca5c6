// Package database handles the connection to the SQLite or PostgreSQL datastore
// and the repositories built on top of it
package database

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/thenoetrevino/tandem/internal/config"
	_ "modernc.org/sqlite"
)

// sqlitePragmas enables cascade deletes, a 5s busy wait and WAL on every pooled connection
const sqlitePragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_time_format=sqlite"

// SQLiteDSN builds a modernc DSN for path with the pragmas tandem relies on
func SQLiteDSN(path string) string {
	return path + "?" + sqlitePragmas
}

// Open connects to the configured datastore without migrating it
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	dialect, err := ParseDialect(cfg.Driver)
	if err != nil {
		return nil, err
	}

	var dsn string
	switch dialect {
	case DialectPostgres:
		dsn = cfg.DSN
	default:
		if cfg.Path != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
				return nil, fmt.Errorf("failed to create directory: %w", err)
			}
		}
		dsn = SQLiteDSN(cfg.Path)
	}

	db, err := sqlx.Open(string(dialect), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if dialect == DialectSQLite {
		// SQLite benefits from a single writer connection, and :memory: needs one to stay alive
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	} else if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	if err := db.PingContext(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing db", "error", closeErr)
		}
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return db, nil
}

// InitDB opens the configured datastore and applies pending migrations
func InitDB(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(ctx, db); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing db", "error", closeErr)
		}
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Debug("database ready", "driver", cfg.Driver)
	return db, nil
}
