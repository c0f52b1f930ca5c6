package database

import (
	"context"

	"github.com/thenoetrevino/tandem/internal/models"
)

// UserReader defines read operations for users
type UserReader interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]*models.User, error)
}

// UserWriter defines write operations for users
type UserWriter interface {
	CreateUser(ctx context.Context, in NewUser) (*models.User, error)
	UpdateUser(ctx context.Context, id string, patch UserPatch) (*models.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// UserRepository combines all user operations
type UserRepository interface {
	UserReader
	UserWriter
}
