package todo

import (
	"fmt"

	"github.com/thenoetrevino/tandem/internal/database"
	"github.com/thenoetrevino/tandem/internal/models"
)

// Domain errors for todo service
var (
	// Validation errors
	ErrEmptyTitle       = fmt.Errorf("%w: todo title cannot be empty", models.ErrInvalidInput)
	ErrTitleTooLong     = fmt.Errorf("%w: todo title cannot exceed %d characters", models.ErrInvalidInput, MaxTitleLength)
	ErrInvalidTodoID    = fmt.Errorf("%w: invalid todo ID", models.ErrInvalidInput)
	ErrInvalidProjectID = fmt.Errorf("%w: invalid project ID", models.ErrInvalidInput)

	// Business logic errors
	ErrTodoNotFound    = fmt.Errorf("todo %w", database.ErrNotFound)
	ErrProjectNotFound = fmt.Errorf("project %w", database.ErrNotFound)
)
