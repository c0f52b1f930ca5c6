package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/thenoetrevino/tandem/internal/config"
	"github.com/thenoetrevino/tandem/internal/database"
	"github.com/thenoetrevino/tandem/internal/models"
)

// StepClock is a deterministic clock that moves one minute forward on every call
type StepClock struct {
	mu  sync.Mutex
	cur time.Time
}

// NewStepClock starts a StepClock at a fixed instant
func NewStepClock() *StepClock {
	return &StepClock{cur: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)}
}

// Now returns the next tick
func (c *StepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cur = c.cur.Add(time.Minute)
	return c.cur
}

// SetupTestDB creates an in-memory database migrated with the real migrations
func SetupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := database.InitDB(context.Background(), config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// NewTestRepository returns a repository over a fresh in-memory database with a StepClock
func NewTestRepository(t *testing.T, opts ...database.Option) *database.Repository {
	t.Helper()
	opts = append([]database.Option{database.WithClock(NewStepClock().Now)}, opts...)
	return database.NewRepository(SetupTestDB(t), opts...)
}

// CreateTestProject inserts a project and returns it
func CreateTestProject(t *testing.T, repo database.DataStore, name string) *models.Project {
	t.Helper()
	p, err := repo.CreateProject(context.Background(), database.NewProject{Name: name})
	if err != nil {
		t.Fatalf("Failed to create project %q: %v", name, err)
	}
	return p
}

// CreateTestUser inserts a user with the email <name>@example.com
func CreateTestUser(t *testing.T, repo database.DataStore, name string) *models.User {
	t.Helper()
	u, err := repo.CreateUser(context.Background(), database.NewUser{Name: name, Email: name + "@example.com"})
	if err != nil {
		t.Fatalf("Failed to create user %q: %v", name, err)
	}
	return u
}

// CreateTestTodo inserts a todo into projectID
func CreateTestTodo(t *testing.T, repo database.DataStore, projectID, title string) *models.Todo {
	t.Helper()
	todo, err := repo.CreateTodo(context.Background(), database.NewTodo{ProjectID: projectID, Title: title})
	if err != nil {
		t.Fatalf("Failed to create todo %q: %v", title, err)
	}
	return todo
}
