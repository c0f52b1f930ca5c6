package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationFiles embed.FS

// MigrationStatus describes the schema version of a database
type MigrationStatus struct {
	Version uint
	Dirty   bool
	Applied bool // false when no migration has ever run
}

// runMigrations applies every pending embedded migration for the connection's dialect
func runMigrations(ctx context.Context, db *sqlx.DB) error {
	return withMigrator(ctx, db, func(m *migrate.Migrate) error {
		err := m.Up()
		if errors.Is(err, migrate.ErrNoChange) {
			slog.Debug("database schema is up to date")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		version, dirty, err := m.Version()
		if err != nil {
			return fmt.Errorf("failed to get migration version: %w", err)
		}
		slog.Info("database migrations applied", "version", version, "dirty", dirty)
		return nil
	})
}

// Migrate applies pending migrations. It is what InitDB runs on startup.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	return runMigrations(ctx, db)
}

// MigrateDown rolls back every migration
func MigrateDown(ctx context.Context, db *sqlx.DB) error {
	return withMigrator(ctx, db, func(m *migrate.Migrate) error {
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("failed to roll back migrations: %w", err)
		}
		return nil
	})
}

// GetMigrationStatus reports the current schema version
func GetMigrationStatus(ctx context.Context, db *sqlx.DB) (MigrationStatus, error) {
	var status MigrationStatus
	err := withMigrator(ctx, db, func(m *migrate.Migrate) error {
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			return nil
		}
		if err != nil {
			return err
		}
		status = MigrationStatus{Version: version, Dirty: dirty, Applied: true}
		return nil
	})
	return status, err
}

// withMigrator builds a migrate instance over the embedded sources for db's dialect.
// The migrate instance is never closed: its database driver would close db.
func withMigrator(ctx context.Context, db *sqlx.DB, fn func(*migrate.Migrate) error) error {
	dialect, err := DialectOf(db)
	if err != nil {
		return err
	}

	sub, err := fs.Sub(migrationFiles, "migrations/"+string(dialect))
	if err != nil {
		return fmt.Errorf("failed to open embedded migrations: %w", err)
	}
	source, err := iofs.New(sub, ".")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	var driver migratedb.Driver
	switch dialect {
	case DialectPostgres:
		conn, err := db.Conn(ctx)
		if err != nil {
			return fmt.Errorf("failed to acquire migration connection: %w", err)
		}
		defer func() {
			if err := conn.Close(); err != nil {
				slog.Error("failed to release migration connection", "error", err)
			}
		}()
		driver, err = postgres.WithConnection(ctx, conn, &postgres.Config{
			MigrationsTable: "schema_migrations",
		})
		if err != nil {
			return fmt.Errorf("failed to create migration driver: %w", err)
		}
	default:
		driver, err = sqlite.WithInstance(db.DB, &sqlite.Config{
			MigrationsTable: "schema_migrations",
		})
		if err != nil {
			return fmt.Errorf("failed to create migration driver: %w", err)
		}
	}

	m, err := migrate.NewWithInstance("iofs", source, string(dialect), driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}
	return fn(m)
}
