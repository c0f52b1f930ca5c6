package project

import (
	"fmt"

	"github.com/thenoetrevino/tandem/internal/database"
	"github.com/thenoetrevino/tandem/internal/models"
)

// Domain errors for project service
var (
	// Validation errors
	ErrEmptyName        = fmt.Errorf("%w: project name cannot be empty", models.ErrInvalidInput)
	ErrNameTooLong      = fmt.Errorf("%w: project name cannot exceed %d characters", models.ErrInvalidInput, MaxNameLength)
	ErrInvalidColor     = fmt.Errorf("%w: project color must be a hex value like #3B82F6", models.ErrInvalidInput)
	ErrInvalidProjectID = fmt.Errorf("%w: invalid project ID", models.ErrInvalidInput)

	// Business logic errors
	ErrProjectNotFound = fmt.Errorf("project %w", database.ErrNotFound)
)
