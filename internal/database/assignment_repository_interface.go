package database

import (
	"context"

	"github.com/thenoetrevino/tandem/internal/models"
)

// AssignmentReader defines the reads over the todo/user relationship
type AssignmentReader interface {
	ListAssignmentsForTodo(ctx context.Context, todoID string) ([]*models.Assignment, error)
	ComposeTodosWithAssignments(ctx context.Context) ([]*models.TodoWithAssignments, error)
	ComposeTodosWithAssignmentsByProject(ctx context.Context, projectID string) ([]*models.TodoWithAssignments, error)
	GetTodoWithAssignments(ctx context.Context, todoID string) (*models.TodoWithAssignments, error)
	ComposeUsersWithTodos(ctx context.Context) ([]*models.UserWithTodos, error)
}

// AssignmentWriter defines writes to the todo/user relationship
type AssignmentWriter interface {
	AssignUsers(ctx context.Context, todoID string, userIDs []string) error
}

// AssignmentRepository combines all assignment operations
type AssignmentRepository interface {
	AssignmentReader
	AssignmentWriter
}
