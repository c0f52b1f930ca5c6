package app

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/thenoetrevino/tandem/internal/config"
	"github.com/thenoetrevino/tandem/internal/policy"
	projectservice "github.com/thenoetrevino/tandem/internal/services/project"
	"github.com/thenoetrevino/tandem/internal/testutil"
)

func TestNew(t *testing.T) {
	t.Parallel()
	app := New(testutil.SetupTestDB(t))

	if app == nil {
		t.Fatal("Expected app to be created, got nil")
	}
	if app.ProjectService == nil {
		t.Error("Expected ProjectService to be initialized")
	}
	if app.TodoService == nil {
		t.Error("Expected TodoService to be initialized")
	}
	if app.UserService == nil {
		t.Error("Expected UserService to be initialized")
	}
	if app.AssignmentService == nil {
		t.Error("Expected AssignmentService to be initialized")
	}
	if err := app.Repo().Ping(context.Background()); err != nil {
		t.Errorf("Expected repository to be reachable, got %v", err)
	}
}

func TestNew_WithClock(t *testing.T) {
	t.Parallel()
	clock := testutil.NewStepClock()
	app := New(testutil.SetupTestDB(t), WithClock(clock.Now))

	p, err := app.ProjectService.CreateProject(context.Background(), projectservice.CreateProjectRequest{Name: "clocked"})
	if err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}
	if p.CreatedAt.Year() != 2026 || p.CreatedAt.Month() != 1 {
		t.Errorf("Expected the injected clock to stamp the row, got %v", p.CreatedAt)
	}
}

func TestNew_WithPolicy(t *testing.T) {
	t.Parallel()
	app := New(testutil.SetupTestDB(t), WithPolicy(policy.ReadOnly()))

	_, err := app.ProjectService.CreateProject(context.Background(), projectservice.CreateProjectRequest{Name: "x"})
	if !errors.Is(err, policy.ErrForbidden) {
		t.Fatalf("Expected ErrForbidden, got %v", err)
	}
}

func TestOpen_FromConfig(t *testing.T) {
	t.Parallel()
	cfg := config.Default()
	cfg.Database.Path = filepath.Join(t.TempDir(), "tandem.db")
	cfg.Server.ReadOnly = true

	app, err := Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer func() { _ = app.Close() }()

	if _, err := app.UserService.GetAllUsers(context.Background()); err != nil {
		t.Errorf("Expected reads to work, got %v", err)
	}
	_, err = app.ProjectService.CreateProject(context.Background(), projectservice.CreateProjectRequest{Name: "x"})
	if !errors.Is(err, policy.ErrForbidden) {
		t.Errorf("Expected read-only config to forbid writes, got %v", err)
	}
}

func TestClose(t *testing.T) {
	t.Parallel()
	cfg := config.Default()
	cfg.Database.Path = filepath.Join(t.TempDir(), "tandem.db")

	app, err := Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := app.Close(); err != nil {
		t.Errorf("Expected Close to succeed, got error: %v", err)
	}
}
