package database

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/tandem/internal/config"
	"github.com/thenoetrevino/tandem/internal/models"
)

// ============================================================================
// Local Test Helpers (to avoid import cycle with testutil)
// ============================================================================

// stepClock advances one minute on every call so rows get distinct, ordered timestamps
type stepClock struct {
	mu sync.Mutex
	t  time.Time
}

func newStepClock() *stepClock {
	return &stepClock{t: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Minute)
	return c.t
}

// setupTestDB creates an in-memory database migrated with the embedded migrations
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := InitDB(context.Background(), config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"})
	require.NoError(t, err, "failed to create test database")
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func setupTestRepo(t *testing.T, opts ...Option) *Repository {
	t.Helper()
	opts = append([]Option{WithClock(newStepClock().Now)}, opts...)
	return NewRepository(setupTestDB(t), opts...)
}

func createTestProject(t *testing.T, repo *Repository, name string) *models.Project {
	t.Helper()
	p, err := repo.CreateProject(context.Background(), NewProject{Name: name})
	require.NoError(t, err)
	return p
}

func createTestUser(t *testing.T, repo *Repository, name string) *models.User {
	t.Helper()
	u, err := repo.CreateUser(context.Background(), NewUser{Name: name, Email: name + "@example.com"})
	require.NoError(t, err)
	return u
}

func createTestTodo(t *testing.T, repo *Repository, projectID, title string) *models.Todo {
	t.Helper()
	todo, err := repo.CreateTodo(context.Background(), NewTodo{ProjectID: projectID, Title: title})
	require.NoError(t, err)
	return todo
}

func strPtr(s string) *string { return &s }

func userIDs(users []*models.User) []string {
	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return ids
}
