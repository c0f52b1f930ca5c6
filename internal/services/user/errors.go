package user

import (
	"fmt"

	"github.com/thenoetrevino/tandem/internal/database"
	"github.com/thenoetrevino/tandem/internal/models"
)

// Domain errors for user service
var (
	// Validation errors
	ErrEmptyName        = fmt.Errorf("%w: user name cannot be empty", models.ErrInvalidInput)
	ErrNameTooLong      = fmt.Errorf("%w: user name cannot exceed %d characters", models.ErrInvalidInput, MaxNameLength)
	ErrInvalidEmail     = fmt.Errorf("%w: email must be a plain address like ada@example.com", models.ErrInvalidInput)
	ErrInvalidAvatarURL = fmt.Errorf("%w: avatar URL must be an absolute http(s) URL", models.ErrInvalidInput)
	ErrInvalidUserID    = fmt.Errorf("%w: invalid user ID", models.ErrInvalidInput)

	// Business logic errors
	ErrUserNotFound = fmt.Errorf("user %w", database.ErrNotFound)
	ErrEmailTaken   = fmt.Errorf("email already in use: %w", database.ErrDuplicateEmail)
)
