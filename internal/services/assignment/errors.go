package assignment

import (
	"fmt"

	"github.com/thenoetrevino/tandem/internal/database"
	"github.com/thenoetrevino/tandem/internal/models"
)

// Domain errors for assignment service
var (
	ErrInvalidTodoID    = fmt.Errorf("%w: invalid todo ID", models.ErrInvalidInput)
	ErrInvalidProjectID = fmt.Errorf("%w: invalid project ID", models.ErrInvalidInput)
	ErrInvalidUserID    = fmt.Errorf("%w: invalid user ID", models.ErrInvalidInput)

	ErrTodoNotFound    = fmt.Errorf("todo %w", database.ErrNotFound)
	ErrProjectNotFound = fmt.Errorf("project %w", database.ErrNotFound)
)
