package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/thenoetrevino/tandem/internal/database"
	"github.com/thenoetrevino/tandem/internal/models"
	"github.com/thenoetrevino/tandem/internal/policy"
	"github.com/thenoetrevino/tandem/internal/types"
)

// MaxNameLength is the longest user name accepted
const MaxNameLength = 100

// Service defines all user-related business operations
type Service interface {
	// Read operations
	GetAllUsers(ctx context.Context) ([]*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// Write operations
	CreateUser(ctx context.Context, req CreateUserRequest) (*models.User, error)
	UpdateUser(ctx context.Context, req UpdateUserRequest) (*models.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// CreateUserRequest encapsulates data for creating a user
type CreateUserRequest struct {
	ID        string
	Name      string
	Email     string
	AvatarURL string
}

// UpdateUserRequest encapsulates data for updating a user.
// Nil fields are left alone. An empty AvatarURL clears it.
type UpdateUserRequest struct {
	ID        string
	Name      *string
	Email     *string
	AvatarURL *string
}

// repository defines the data access methods needed by the user service
type repository interface {
	database.UserRepository
}

// service implements Service interface with private repository
type service struct {
	repo   repository
	policy policy.Policy
}

// NewService creates a new user service. A nil policy allows everything.
func NewService(repo repository, p policy.Policy) Service {
	return &service{
		repo:   repo,
		policy: policy.OrAllowAll(p),
	}
}

// GetAllUsers retrieves all users ordered by name
func (s *service) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	if err := s.policy.Authorize(ctx, policy.ActionRead, policy.ResourceUser); err != nil {
		return nil, err
	}
	return s.repo.GetAllUsers(ctx)
}

// GetUserByID retrieves a specific user
func (s *service) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	id = types.NormalizeID(id)
	if id == "" {
		return nil, ErrInvalidUserID
	}
	if err := s.policy.Authorize(ctx, policy.ActionRead, policy.ResourceUser); err != nil {
		return nil, err
	}

	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, translate(err, id)
	}
	return user, nil
}

// GetUserByEmail retrieves the user owning an email address
func (s *service) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	email, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Authorize(ctx, policy.ActionRead, policy.ResourceUser); err != nil {
		return nil, err
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, translate(err, email)
	}
	return user, nil
}

// CreateUser creates a new user. Emails are unique.
func (s *service) CreateUser(ctx context.Context, req CreateUserRequest) (*models.User, error) {
	id, ok := types.OptionalID(req.ID)
	if !ok {
		return nil, ErrInvalidUserID
	}
	name := strings.TrimSpace(req.Name)
	if err := validateName(name); err != nil {
		return nil, err
	}
	email, err := NormalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}
	avatar := strings.TrimSpace(req.AvatarURL)
	if err := validateAvatarURL(avatar); err != nil {
		return nil, err
	}
	if err := s.policy.Authorize(ctx, policy.ActionCreate, policy.ResourceUser); err != nil {
		return nil, err
	}

	user, err := s.repo.CreateUser(ctx, database.NewUser{
		ID:        id,
		Name:      name,
		Email:     email,
		AvatarURL: &avatar,
	})
	if err != nil {
		if errors.Is(err, database.ErrDuplicateEmail) {
			return nil, fmt.Errorf("%w: %s", ErrEmailTaken, email)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("user created", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// UpdateUser updates the provided fields of an existing user
func (s *service) UpdateUser(ctx context.Context, req UpdateUserRequest) (*models.User, error) {
	id := types.NormalizeID(req.ID)
	if id == "" {
		return nil, ErrInvalidUserID
	}

	patch := database.UserPatch{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if err := validateName(name); err != nil {
			return nil, err
		}
		patch.Name = &name
	}
	if req.Email != nil {
		email, err := NormalizeEmail(*req.Email)
		if err != nil {
			return nil, err
		}
		patch.Email = &email
	}
	if req.AvatarURL != nil {
		avatar := strings.TrimSpace(*req.AvatarURL)
		if err := validateAvatarURL(avatar); err != nil {
			return nil, err
		}
		patch.AvatarURL = &avatar
	}
	if err := s.policy.Authorize(ctx, policy.ActionUpdate, policy.ResourceUser); err != nil {
		return nil, err
	}

	user, err := s.repo.UpdateUser(ctx, id, patch)
	if err != nil {
		if errors.Is(err, database.ErrDuplicateEmail) {
			return nil, fmt.Errorf("%w: %s", ErrEmailTaken, *patch.Email)
		}
		return nil, translate(err, id)
	}

	slog.Info("user updated", "user_id", id)
	return user, nil
}

// DeleteUser deletes a user and every assignment naming them
func (s *service) DeleteUser(ctx context.Context, id string) error {
	id = types.NormalizeID(id)
	if id == "" {
		return ErrInvalidUserID
	}
	if err := s.policy.Authorize(ctx, policy.ActionDelete, policy.ResourceUser); err != nil {
		return err
	}

	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return translate(err, id)
	}

	slog.Info("user deleted", "user_id", id)
	return nil
}

// NormalizeEmail validates a bare address and lowercases it.
// Display-name forms such as "Ada <ada@example.com>" are rejected.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || addr.Name != "" {
		return "", ErrInvalidEmail
	}
	return email, nil
}

func validateName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return ErrNameTooLong
	}
	return nil
}

func validateAvatarURL(raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.ParseRequestURI(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ErrInvalidAvatarURL
	}
	return nil
}

func translate(err error, key string) error {
	if errors.Is(err, database.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrUserNotFound, key)
	}
	return fmt.Errorf("user %s: %w", key, err)
}
