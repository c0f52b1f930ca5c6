package database

import (
	"context"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/thenoetrevino/tandem/internal/models"
	"github.com/thenoetrevino/tandem/internal/types"
)

const todosTable = "todos"

var todoColumns = []string{
	"id", "project_id", "title", "description", "due_date",
	"priority", "status", "created_at", "updated_at",
}

// NewTodo holds the fields of a todo to insert. Empty Priority and Status take their defaults.
type NewTodo struct {
	ID          string
	ProjectID   string
	Title       string
	Description *string
	DueDate     *models.Date
	Priority    models.Priority
	Status      models.Status
}

// TodoPatch lists the todo fields to change. Nil fields are left alone;
// an empty Description or a zero DueDate clears the column.
type TodoPatch struct {
	ProjectID   *string
	Title       *string
	Description *string
	DueDate     *models.Date
	Priority    *models.Priority
	Status      *models.Status
}

// TodoRepo handles all todo-related database operations.
type TodoRepo struct {
	*conn
}

// Create inserts a todo
func (r *TodoRepo) Create(ctx context.Context, in NewTodo) (*models.Todo, error) {
	now := r.now()
	todo := &models.Todo{
		ID:        in.ID,
		ProjectID: in.ProjectID,
		Title:     in.Title,
		Priority:  in.Priority,
		Status:    in.Status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if todo.ID == "" {
		todo.ID = types.NewID()
	}
	if todo.Priority == "" {
		todo.Priority = models.DefaultPriority
	}
	if todo.Status == "" {
		todo.Status = models.DefaultStatus
	}
	if in.Description != nil && *in.Description != "" {
		todo.Description = in.Description
	}
	if in.DueDate != nil && !in.DueDate.IsZero() {
		todo.DueDate = in.DueDate
	}

	_, err := execAffected(ctx, r.db, r.sb.Insert(todosTable).
		Columns(todoColumns...).
		Values(todo.ID, todo.ProjectID, todo.Title, nullableString(todo.Description), todo.DueDate,
			string(todo.Priority), string(todo.Status), now, now))
	if err != nil {
		return nil, wrap(err, "create", todosTable, todo.ID)
	}

	slog.Debug("todo created", "todo_id", todo.ID, "project_id", todo.ProjectID)
	return todo, nil
}

// GetByID retrieves a todo by its ID
func (r *TodoRepo) GetByID(ctx context.Context, id string) (*models.Todo, error) {
	return r.get(ctx, r.db, id)
}

func (r *TodoRepo) get(ctx context.Context, q sqlx.QueryerContext, id string) (*models.Todo, error) {
	todo := &models.Todo{}
	err := selectOne(ctx, q, todo, r.sb.Select(todoColumns...).
		From(todosTable).
		Where(sq.Eq{"id": id}))
	if err != nil {
		return nil, wrap(err, "get", todosTable, id)
	}
	return todo, nil
}

// GetAll retrieves every todo, newest first
func (r *TodoRepo) GetAll(ctx context.Context) ([]*models.Todo, error) {
	return r.list(ctx, r.db, "")
}

// GetByProject retrieves the todos of one project, newest first
func (r *TodoRepo) GetByProject(ctx context.Context, projectID string) ([]*models.Todo, error) {
	return r.list(ctx, r.db, projectID)
}

// list selects todos newest first, optionally restricted to one project
func (r *TodoRepo) list(ctx context.Context, q sqlx.QueryerContext, projectID string) ([]*models.Todo, error) {
	b := r.sb.Select(todoColumns...).
		From(todosTable).
		OrderBy("created_at DESC", "id")
	if projectID != "" {
		b = b.Where(sq.Eq{"project_id": projectID})
	}

	todos := make([]*models.Todo, 0)
	if err := selectAll(ctx, q, &todos, b); err != nil {
		return nil, wrap(err, "list", todosTable, projectID)
	}
	return todos, nil
}

// Update applies patch to the todo and returns the stored result
func (r *TodoRepo) Update(ctx context.Context, id string, patch TodoPatch) (*models.Todo, error) {
	set := map[string]any{"updated_at": r.now()}
	if patch.ProjectID != nil {
		set["project_id"] = *patch.ProjectID
	}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = nullableString(patch.Description)
	}
	if patch.DueDate != nil {
		set["due_date"] = *patch.DueDate
	}
	if patch.Priority != nil {
		set["priority"] = string(*patch.Priority)
	}
	if patch.Status != nil {
		set["status"] = string(*patch.Status)
	}

	var todo *models.Todo
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		n, err := execAffected(ctx, tx, r.sb.Update(todosTable).SetMap(set).Where(sq.Eq{"id": id}))
		if err != nil {
			return err
		}
		if n == 0 {
			return notFound("update", todosTable, id)
		}
		todo, err = r.get(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, wrap(err, "update", todosTable, id)
	}
	return todo, nil
}

// Delete removes a todo. Its assignments cascade.
func (r *TodoRepo) Delete(ctx context.Context, id string) error {
	n, err := execAffected(ctx, r.db, r.sb.Delete(todosTable).Where(sq.Eq{"id": id}))
	if err != nil {
		return wrap(err, "delete", todosTable, id)
	}
	if n == 0 {
		return notFound("delete", todosTable, id)
	}
	slog.Debug("todo deleted", "todo_id", id)
	return nil
}
