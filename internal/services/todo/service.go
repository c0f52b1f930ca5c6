package todo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/thenoetrevino/tandem/internal/database"
	"github.com/thenoetrevino/tandem/internal/models"
	"github.com/thenoetrevino/tandem/internal/policy"
	"github.com/thenoetrevino/tandem/internal/types"
)

// MaxTitleLength is the longest todo title accepted
const MaxTitleLength = 255

// Service defines all todo-related business operations
type Service interface {
	// Read operations
	GetAllTodos(ctx context.Context) ([]*models.Todo, error)
	GetTodosByProject(ctx context.Context, projectID string) ([]*models.Todo, error)
	GetTodoByID(ctx context.Context, id string) (*models.Todo, error)

	// Write operations
	CreateTodo(ctx context.Context, req CreateTodoRequest) (*models.Todo, error)
	UpdateTodo(ctx context.Context, req UpdateTodoRequest) (*models.Todo, error)
	DeleteTodo(ctx context.Context, id string) error
}

// CreateTodoRequest encapsulates data for creating a todo.
// DueDate, Priority and Status are parsed from their text forms; empty means default.
type CreateTodoRequest struct {
	ID          string
	ProjectID   string
	Title       string
	Description string
	DueDate     string
	Priority    string
	Status      string
}

// UpdateTodoRequest encapsulates data for updating a todo.
// Nil fields are left alone. An empty DueDate or Description clears it.
type UpdateTodoRequest struct {
	ID          string
	ProjectID   *string
	Title       *string
	Description *string
	DueDate     *string
	Priority    *string
	Status      *string
}

// repository defines the data access methods needed by the todo service
type repository interface {
	database.TodoRepository
	GetProjectByID(ctx context.Context, id string) (*models.Project, error)
}

// service implements Service interface with private repository
type service struct {
	repo   repository
	policy policy.Policy
}

// NewService creates a new todo service. A nil policy allows everything.
func NewService(repo repository, p policy.Policy) Service {
	return &service{
		repo:   repo,
		policy: policy.OrAllowAll(p),
	}
}

// GetAllTodos retrieves every todo, newest first
func (s *service) GetAllTodos(ctx context.Context) ([]*models.Todo, error) {
	if err := s.policy.Authorize(ctx, policy.ActionRead, policy.ResourceTodo); err != nil {
		return nil, err
	}
	return s.repo.GetAllTodos(ctx)
}

// GetTodosByProject retrieves the todos of one project, newest first
func (s *service) GetTodosByProject(ctx context.Context, projectID string) ([]*models.Todo, error) {
	projectID = types.NormalizeID(projectID)
	if projectID == "" {
		return nil, ErrInvalidProjectID
	}
	if err := s.policy.Authorize(ctx, policy.ActionRead, policy.ResourceTodo); err != nil {
		return nil, err
	}
	if err := s.requireProject(ctx, projectID); err != nil {
		return nil, err
	}
	return s.repo.GetTodosByProject(ctx, projectID)
}

// GetTodoByID retrieves a specific todo
func (s *service) GetTodoByID(ctx context.Context, id string) (*models.Todo, error) {
	id = types.NormalizeID(id)
	if id == "" {
		return nil, ErrInvalidTodoID
	}
	if err := s.policy.Authorize(ctx, policy.ActionRead, policy.ResourceTodo); err != nil {
		return nil, err
	}

	todo, err := s.repo.GetTodoByID(ctx, id)
	if err != nil {
		return nil, translate(err, id)
	}
	return todo, nil
}

// CreateTodo creates a new todo inside an existing project
func (s *service) CreateTodo(ctx context.Context, req CreateTodoRequest) (*models.Todo, error) {
	id, ok := types.OptionalID(req.ID)
	if !ok {
		return nil, ErrInvalidTodoID
	}
	projectID := types.NormalizeID(req.ProjectID)
	if projectID == "" {
		return nil, ErrInvalidProjectID
	}
	title := strings.TrimSpace(req.Title)
	if err := validateTitle(title); err != nil {
		return nil, err
	}

	in := database.NewTodo{
		ID:        id,
		ProjectID: projectID,
		Title:     title,
		Priority:  models.DefaultPriority,
		Status:    models.DefaultStatus,
	}
	if desc := strings.TrimSpace(req.Description); desc != "" {
		in.Description = &desc
	}
	if strings.TrimSpace(req.DueDate) != "" {
		due, err := models.ParseDate(strings.TrimSpace(req.DueDate))
		if err != nil {
			return nil, err
		}
		in.DueDate = &due
	}
	if strings.TrimSpace(req.Priority) != "" {
		p, err := models.ParsePriority(req.Priority)
		if err != nil {
			return nil, err
		}
		in.Priority = p
	}
	if strings.TrimSpace(req.Status) != "" {
		st, err := models.ParseStatus(req.Status)
		if err != nil {
			return nil, err
		}
		in.Status = st
	}
	if err := s.policy.Authorize(ctx, policy.ActionCreate, policy.ResourceTodo); err != nil {
		return nil, err
	}
	if err := s.requireProject(ctx, projectID); err != nil {
		return nil, err
	}

	todo, err := s.repo.CreateTodo(ctx, in)
	if err != nil {
		if errors.Is(err, database.ErrForeignKey) {
			return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, projectID)
		}
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}

	slog.Info("todo created", "todo_id", todo.ID, "project_id", projectID)
	return todo, nil
}

// UpdateTodo updates the provided fields of an existing todo
func (s *service) UpdateTodo(ctx context.Context, req UpdateTodoRequest) (*models.Todo, error) {
	id := types.NormalizeID(req.ID)
	if id == "" {
		return nil, ErrInvalidTodoID
	}

	patch := database.TodoPatch{}
	if req.ProjectID != nil {
		projectID := types.NormalizeID(*req.ProjectID)
		if projectID == "" {
			return nil, ErrInvalidProjectID
		}
		patch.ProjectID = &projectID
	}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if err := validateTitle(title); err != nil {
			return nil, err
		}
		patch.Title = &title
	}
	if req.Description != nil {
		desc := strings.TrimSpace(*req.Description)
		patch.Description = &desc
	}
	if req.DueDate != nil {
		var due models.Date
		if strings.TrimSpace(*req.DueDate) != "" {
			parsed, err := models.ParseDate(strings.TrimSpace(*req.DueDate))
			if err != nil {
				return nil, err
			}
			due = parsed
		}
		patch.DueDate = &due
	}
	if req.Priority != nil {
		p, err := models.ParsePriority(*req.Priority)
		if err != nil {
			return nil, err
		}
		patch.Priority = &p
	}
	if req.Status != nil {
		st, err := models.ParseStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		patch.Status = &st
	}
	if err := s.policy.Authorize(ctx, policy.ActionUpdate, policy.ResourceTodo); err != nil {
		return nil, err
	}
	if patch.ProjectID != nil {
		if err := s.requireProject(ctx, *patch.ProjectID); err != nil {
			return nil, err
		}
	}

	todo, err := s.repo.UpdateTodo(ctx, id, patch)
	if err != nil {
		if errors.Is(err, database.ErrForeignKey) && patch.ProjectID != nil {
			return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, *patch.ProjectID)
		}
		return nil, translate(err, id)
	}

	slog.Info("todo updated", "todo_id", id)
	return todo, nil
}

// DeleteTodo deletes a todo and its assignments
func (s *service) DeleteTodo(ctx context.Context, id string) error {
	id = types.NormalizeID(id)
	if id == "" {
		return ErrInvalidTodoID
	}
	if err := s.policy.Authorize(ctx, policy.ActionDelete, policy.ResourceTodo); err != nil {
		return err
	}

	if err := s.repo.DeleteTodo(ctx, id); err != nil {
		return translate(err, id)
	}

	slog.Info("todo deleted", "todo_id", id)
	return nil
}

func (s *service) requireProject(ctx context.Context, projectID string) error {
	if _, err := s.repo.GetProjectByID(ctx, projectID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrProjectNotFound, projectID)
		}
		return err
	}
	return nil
}

func validateTitle(title string) error {
	if title == "" {
		return ErrEmptyTitle
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}

func translate(err error, id string) error {
	if errors.Is(err, database.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrTodoNotFound, id)
	}
	return fmt.Errorf("todo %s: %w", id, err)
}
