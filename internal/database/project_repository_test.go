package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/tandem/internal/models"
)

func TestProjectRepo_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepo(t)

	created, err := repo.CreateProject(ctx, NewProject{Name: "Work", Description: strPtr("Day job")})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, models.DefaultProjectColor, created.Color)

	got, err := repo.GetProjectByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Work", got.Name)
	require.NotNil(t, got.Description)
	assert.Equal(t, "Day job", *got.Description)
	assert.True(t, created.CreatedAt.Equal(got.CreatedAt))
}

func TestProjectRepo_CreateWithFixedID(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepo(t)

	const id = "00000000-0000-0000-0000-000000000000"
	p, err := repo.CreateProject(ctx, NewProject{ID: id, Name: "Default", Color: "#10B981"})
	require.NoError(t, err)
	assert.Equal(t, id, p.ID)

	_, err = repo.CreateProject(ctx, NewProject{ID: id, Name: "Again"})
	assert.ErrorIs(t, err, ErrConstraintViolation)
}

func TestProjectRepo_GetMissing(t *testing.T) {
	repo := setupTestRepo(t)

	_, err := repo.GetProjectByID(context.Background(), "does-not-exist")
	assert.ErrorIs(t, err, ErrNotFound)

	var dbErr *Error
	require.ErrorAs(t, err, &dbErr)
	assert.Equal(t, "projects", dbErr.Table)
	assert.Equal(t, "does-not-exist", dbErr.ID)
}

func TestProjectRepo_GetAllNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepo(t)

	first := createTestProject(t, repo, "First")
	second := createTestProject(t, repo, "Second")

	projects, err := repo.GetAllProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, second.ID, projects[0].ID)
	assert.Equal(t, first.ID, projects[1].ID)
}

func TestProjectRepo_GetAllEmpty(t *testing.T) {
	projects, err := setupTestRepo(t).GetAllProjects(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, projects)
	assert.Empty(t, projects)
}

func TestProjectRepo_Stats(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepo(t)

	busy := createTestProject(t, repo, "Busy")
	empty := createTestProject(t, repo, "Empty")

	createTestTodo(t, repo, busy.ID, "one")
	done := createTestTodo(t, repo, busy.ID, "two")
	completed := models.StatusCompleted
	_, err := repo.UpdateTodo(ctx, done.ID, TodoPatch{Status: &completed})
	require.NoError(t, err)

	stats, err := repo.GetAllProjectsWithStats(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	byID := map[string]*models.ProjectStats{}
	for _, s := range stats {
		byID[s.ID] = s
	}
	assert.Equal(t, 2, byID[busy.ID].TodoCount)
	assert.Equal(t, 1, byID[busy.ID].CompletedCount)
	assert.Equal(t, 0, byID[empty.ID].TodoCount)
	assert.Equal(t, 0, byID[empty.ID].CompletedCount)
}

func TestProjectRepo_Update(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepo(t)
	p, err := repo.CreateProject(ctx, NewProject{Name: "Old", Description: strPtr("desc")})
	require.NoError(t, err)

	updated, err := repo.UpdateProject(ctx, p.ID, ProjectPatch{
		Name:        strPtr("New"),
		Description: strPtr(""),
		Color:       strPtr("#EF4444"),
	})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Name)
	assert.Nil(t, updated.Description)
	assert.Equal(t, "#EF4444", updated.Color)
	assert.True(t, updated.UpdatedAt.After(p.UpdatedAt))

	_, err = repo.UpdateProject(ctx, "missing", ProjectPatch{Name: strPtr("x")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProjectRepo_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepo(t)

	p := createTestProject(t, repo, "Doomed")
	todo := createTestTodo(t, repo, p.ID, "task")
	u := createTestUser(t, repo, "alice")
	require.NoError(t, repo.AssignUsers(ctx, todo.ID, []string{u.ID}))

	require.NoError(t, repo.DeleteProject(ctx, p.ID))

	_, err := repo.GetTodoByID(ctx, todo.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assignments, err := repo.ListAssignmentsForTodo(ctx, todo.ID)
	require.NoError(t, err)
	assert.Empty(t, assignments)

	// users survive
	_, err = repo.GetUserByID(ctx, u.ID)
	assert.NoError(t, err)

	assert.ErrorIs(t, repo.DeleteProject(ctx, p.ID), ErrNotFound)
}
