package database

import (
	"context"

	"github.com/thenoetrevino/tandem/internal/models"
)

// TodoReader defines read operations for todos
type TodoReader interface {
	GetTodoByID(ctx context.Context, id string) (*models.Todo, error)
	GetAllTodos(ctx context.Context) ([]*models.Todo, error)
	GetTodosByProject(ctx context.Context, projectID string) ([]*models.Todo, error)
}

// TodoWriter defines write operations for todos
type TodoWriter interface {
	CreateTodo(ctx context.Context, in NewTodo) (*models.Todo, error)
	UpdateTodo(ctx context.Context, id string, patch TodoPatch) (*models.Todo, error)
	DeleteTodo(ctx context.Context, id string) error
}

// TodoRepository combines all todo operations
type TodoRepository interface {
	TodoReader
	TodoWriter
}
