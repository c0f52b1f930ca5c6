package assignment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/tandem/internal/database"
	"github.com/thenoetrevino/tandem/internal/models"
	"github.com/thenoetrevino/tandem/internal/policy"
	"github.com/thenoetrevino/tandem/internal/types"
)

// Service defines the operations over the todo/user relationship and its two views
type Service interface {
	// AssignUsers replaces the full set of users assigned to a todo and returns the
	// todo as it reads afterwards
	AssignUsers(ctx context.Context, req AssignUsersRequest) (*models.TodoWithAssignments, error)

	GetTodoAssignments(ctx context.Context, todoID string) ([]*models.Assignment, error)
	// GetTodosWithAssignments lists every todo with its assignees, or one project's
	// todos when projectID is not empty
	GetTodosWithAssignments(ctx context.Context, projectID string) ([]*models.TodoWithAssignments, error)
	GetTodoWithAssignments(ctx context.Context, todoID string) (*models.TodoWithAssignments, error)
	GetUsersWithTodos(ctx context.Context) ([]*models.UserWithTodos, error)
	GetUserWorkloads(ctx context.Context) ([]*models.UserWorkload, error)
}

// AssignUsersRequest is the desired assignee set for one todo.
// Duplicate and blank IDs are ignored; an empty list clears every assignment.
// Malformed IDs are rejected before anything is written.
type AssignUsersRequest struct {
	TodoID  string
	UserIDs []string
}

type repository interface {
	database.AssignmentRepository
	GetTodoByID(ctx context.Context, id string) (*models.Todo, error)
	GetProjectByID(ctx context.Context, id string) (*models.Project, error)
}

type service struct {
	repo   repository
	policy policy.Policy
}

// NewService creates a new assignment service. A nil policy allows everything.
func NewService(repo repository, p policy.Policy) Service {
	return &service{
		repo:   repo,
		policy: policy.OrAllowAll(p),
	}
}

func (s *service) AssignUsers(ctx context.Context, req AssignUsersRequest) (*models.TodoWithAssignments, error) {
	todoID := types.NormalizeID(req.TodoID)
	if todoID == "" {
		return nil, ErrInvalidTodoID
	}
	userIDs := types.UniqueIDs(req.UserIDs)
	for _, id := range userIDs {
		if !types.IsValidID(id) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidUserID, id)
		}
	}
	if err := s.policy.Authorize(ctx, policy.ActionAssign, policy.ResourceAssignment); err != nil {
		return nil, err
	}
	if err := s.requireTodo(ctx, todoID); err != nil {
		return nil, err
	}

	if err := s.repo.AssignUsers(ctx, todoID, userIDs); err != nil {
		slog.Warn("assignment failed", "todo_id", todoID, "user_count", len(userIDs), "error", err)
		return nil, fmt.Errorf("failed to assign users: %w", err)
	}
	slog.Info("todo assignments replaced", "todo_id", todoID, "user_count", len(userIDs))

	view, err := s.repo.GetTodoWithAssignments(ctx, todoID)
	if err != nil {
		return nil, translateTodo(err, todoID)
	}
	return view, nil
}

func (s *service) GetTodoAssignments(ctx context.Context, todoID string) ([]*models.Assignment, error) {
	todoID = types.NormalizeID(todoID)
	if todoID == "" {
		return nil, ErrInvalidTodoID
	}
	if err := s.policy.Authorize(ctx, policy.ActionRead, policy.ResourceAssignment); err != nil {
		return nil, err
	}
	if err := s.requireTodo(ctx, todoID); err != nil {
		return nil, err
	}
	return s.repo.ListAssignmentsForTodo(ctx, todoID)
}

func (s *service) GetTodosWithAssignments(ctx context.Context, projectID string) ([]*models.TodoWithAssignments, error) {
	if err := s.policy.Authorize(ctx, policy.ActionRead, policy.ResourceAssignment); err != nil {
		return nil, err
	}

	projectID = types.NormalizeID(projectID)
	if projectID == "" {
		return s.repo.ComposeTodosWithAssignments(ctx)
	}
	if _, err := s.repo.GetProjectByID(ctx, projectID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, projectID)
		}
		return nil, err
	}
	return s.repo.ComposeTodosWithAssignmentsByProject(ctx, projectID)
}

func (s *service) GetTodoWithAssignments(ctx context.Context, todoID string) (*models.TodoWithAssignments, error) {
	todoID = types.NormalizeID(todoID)
	if todoID == "" {
		return nil, ErrInvalidTodoID
	}
	if err := s.policy.Authorize(ctx, policy.ActionRead, policy.ResourceAssignment); err != nil {
		return nil, err
	}

	view, err := s.repo.GetTodoWithAssignments(ctx, todoID)
	if err != nil {
		return nil, translateTodo(err, todoID)
	}
	return view, nil
}

func (s *service) GetUsersWithTodos(ctx context.Context) ([]*models.UserWithTodos, error) {
	if err := s.policy.Authorize(ctx, policy.ActionRead, policy.ResourceAssignment); err != nil {
		return nil, err
	}
	return s.repo.ComposeUsersWithTodos(ctx)
}

func (s *service) GetUserWorkloads(ctx context.Context) ([]*models.UserWorkload, error) {
	users, err := s.GetUsersWithTodos(ctx)
	if err != nil {
		return nil, err
	}
	workloads := make([]*models.UserWorkload, 0, len(users))
	for _, u := range users {
		workloads = append(workloads, models.NewUserWorkload(u))
	}
	return workloads, nil
}

func (s *service) requireTodo(ctx context.Context, todoID string) error {
	if _, err := s.repo.GetTodoByID(ctx, todoID); err != nil {
		return translateTodo(err, todoID)
	}
	return nil
}

func translateTodo(err error, todoID string) error {
	if errors.Is(err, database.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrTodoNotFound, todoID)
	}
	return fmt.Errorf("todo %s: %w", todoID, err)
}
