package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/tandem/internal/models"
)

func TestTodoRepo_CreateDefaults(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepo(t)
	p := createTestProject(t, repo, "P")

	todo, err := repo.CreateTodo(ctx, NewTodo{ProjectID: p.ID, Title: "Write tests"})
	require.NoError(t, err)
	assert.Equal(t, models.PriorityMedium, todo.Priority)
	assert.Equal(t, models.StatusPending, todo.Status)
	assert.Nil(t, todo.DueDate)
	assert.Nil(t, todo.Description)

	got, err := repo.GetTodoByID(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, "Write tests", got.Title)
	assert.Equal(t, models.PriorityMedium, got.Priority)
	assert.Nil(t, got.DueDate)
}

func TestTodoRepo_CreateWithAllFields(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepo(t)
	p := createTestProject(t, repo, "P")

	due, err := models.ParseDate("2026-04-01")
	require.NoError(t, err)

	todo, err := repo.CreateTodo(ctx, NewTodo{
		ProjectID:   p.ID,
		Title:       "Ship",
		Description: strPtr("**bold** plan"),
		DueDate:     &due,
		Priority:    models.PriorityHigh,
		Status:      models.StatusInProgress,
	})
	require.NoError(t, err)

	got, err := repo.GetTodoByID(ctx, todo.ID)
	require.NoError(t, err)
	require.NotNil(t, got.DueDate)
	assert.Equal(t, "2026-04-01", got.DueDate.String())
	assert.Equal(t, models.PriorityHigh, got.Priority)
	assert.Equal(t, models.StatusInProgress, got.Status)
	require.NotNil(t, got.Description)
	assert.Equal(t, "**bold** plan", *got.Description)
}

func TestTodoRepo_CreateUnknownProject(t *testing.T) {
	repo := setupTestRepo(t)

	_, err := repo.CreateTodo(context.Background(), NewTodo{ProjectID: "nope", Title: "orphan"})
	assert.ErrorIs(t, err, ErrForeignKey)
	assert.ErrorIs(t, err, ErrConstraintViolation)
}

func TestTodoRepo_ListOrdering(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepo(t)
	a := createTestProject(t, repo, "A")
	b := createTestProject(t, repo, "B")

	t1 := createTestTodo(t, repo, a.ID, "first")
	t2 := createTestTodo(t, repo, b.ID, "second")
	t3 := createTestTodo(t, repo, a.ID, "third")

	all, err := repo.GetAllTodos(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{t3.ID, t2.ID, t1.ID}, []string{all[0].ID, all[1].ID, all[2].ID})

	inA, err := repo.GetTodosByProject(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, inA, 2)
	assert.Equal(t, t3.ID, inA[0].ID)
	assert.Equal(t, t1.ID, inA[1].ID)
}

func TestTodoRepo_UpdatePartial(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepo(t)
	p := createTestProject(t, repo, "P")

	due, _ := models.ParseDate("2026-06-30")
	todo, err := repo.CreateTodo(ctx, NewTodo{ProjectID: p.ID, Title: "Draft", Description: strPtr("notes"), DueDate: &due})
	require.NoError(t, err)

	status := models.StatusCompleted
	updated, err := repo.UpdateTodo(ctx, todo.ID, TodoPatch{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "Draft", updated.Title)
	assert.Equal(t, models.StatusCompleted, updated.Status)
	require.NotNil(t, updated.Description)
	require.NotNil(t, updated.DueDate)

	cleared := models.Date{}
	updated, err = repo.UpdateTodo(ctx, todo.ID, TodoPatch{Description: strPtr(""), DueDate: &cleared})
	require.NoError(t, err)
	assert.Nil(t, updated.Description)
	assert.Nil(t, updated.DueDate)
	assert.Equal(t, models.StatusCompleted, updated.Status)
}

func TestTodoRepo_MoveToProject(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepo(t)
	a := createTestProject(t, repo, "A")
	b := createTestProject(t, repo, "B")
	todo := createTestTodo(t, repo, a.ID, "wander")

	updated, err := repo.UpdateTodo(ctx, todo.ID, TodoPatch{ProjectID: &b.ID})
	require.NoError(t, err)
	assert.Equal(t, b.ID, updated.ProjectID)

	missing := "no-such-project"
	_, err = repo.UpdateTodo(ctx, todo.ID, TodoPatch{ProjectID: &missing})
	assert.ErrorIs(t, err, ErrForeignKey)
}

func TestTodoRepo_CheckConstraint(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepo(t)
	p := createTestProject(t, repo, "P")
	todo := createTestTodo(t, repo, p.ID, "x")

	bogus := models.Priority("urgent")
	_, err := repo.UpdateTodo(ctx, todo.ID, TodoPatch{Priority: &bogus})
	assert.ErrorIs(t, err, ErrConstraintViolation)
}

func TestTodoRepo_Delete(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepo(t)
	p := createTestProject(t, repo, "P")
	todo := createTestTodo(t, repo, p.ID, "x")

	require.NoError(t, repo.DeleteTodo(ctx, todo.ID))
	_, err := repo.GetTodoByID(ctx, todo.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.DeleteTodo(ctx, todo.ID), ErrNotFound)
}
