package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/thenoetrevino/tandem/internal/config"
	"github.com/thenoetrevino/tandem/internal/database"
	"github.com/thenoetrevino/tandem/internal/policy"
	assignmentservice "github.com/thenoetrevino/tandem/internal/services/assignment"
	projectservice "github.com/thenoetrevino/tandem/internal/services/project"
	todoservice "github.com/thenoetrevino/tandem/internal/services/todo"
	userservice "github.com/thenoetrevino/tandem/internal/services/user"
)

// App holds all application services and provides dependency injection.
// This is the main application container that manages service lifecycles.
type App struct {
	db   *sqlx.DB
	repo database.DataStore

	logger *slog.Logger

	// Service layer (business logic)
	ProjectService    projectservice.Service
	TodoService       todoservice.Service
	UserService       userservice.Service
	AssignmentService assignmentservice.Service
}

// New creates a new App over an already migrated database.
// This is the single entry point for creating the application container.
func New(db *sqlx.DB, opts ...Option) *App {
	cfg := &appConfig{
		policy: policy.AllowAll(),
		atomic: true,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	dbOpts := []database.Option{database.WithAtomicAssignments(cfg.atomic)}
	if cfg.clock != nil {
		dbOpts = append(dbOpts, database.WithClock(cfg.clock))
	}
	repo := database.NewRepository(db, dbOpts...)

	return &App{
		db:                db,
		repo:              repo,
		logger:            cfg.logger,
		ProjectService:    projectservice.NewService(repo, cfg.policy),
		TodoService:       todoservice.NewService(repo, cfg.policy),
		UserService:       userservice.NewService(repo, cfg.policy),
		AssignmentService: assignmentservice.NewService(repo, cfg.policy),
	}
}

// Open connects to the configured database, applies migrations and builds the App.
// Settings from cfg are applied before opts, so opts win.
func Open(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	db, err := database.InitDB(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	base := []Option{WithAtomicAssignments(cfg.Assignments.IsAtomic())}
	if cfg.Server.ReadOnly {
		base = append(base, WithPolicy(policy.ReadOnly()))
	}

	a := New(db, append(base, opts...)...)
	a.logger.Debug("application opened",
		"driver", cfg.Database.Driver,
		"atomic_assignments", cfg.Assignments.IsAtomic(),
		"read_only", cfg.Server.ReadOnly)
	return a, nil
}

// Repo returns the underlying repository for direct database access.
// Used by seeding and health checks; feature code goes through the services.
func (a *App) Repo() database.DataStore {
	return a.repo
}

// DB returns the database handle, for migration commands
func (a *App) DB() *sqlx.DB {
	return a.db
}

// Logger returns the logger the App was built with
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Close releases the database connection
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
