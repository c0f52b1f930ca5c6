package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/thenoetrevino/tandem/internal/database"
	"github.com/thenoetrevino/tandem/internal/models"
	"github.com/thenoetrevino/tandem/internal/policy"
	"github.com/thenoetrevino/tandem/internal/types"
)

// MaxNameLength is the longest project name accepted
const MaxNameLength = 100

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Service defines all project-related business operations
type Service interface {
	// Read operations
	GetAllProjects(ctx context.Context) ([]*models.Project, error)
	GetProjectStats(ctx context.Context) ([]*models.ProjectStats, error)
	GetProjectByID(ctx context.Context, id string) (*models.Project, error)

	// Write operations
	CreateProject(ctx context.Context, req CreateProjectRequest) (*models.Project, error)
	UpdateProject(ctx context.Context, req UpdateProjectRequest) (*models.Project, error)
	DeleteProject(ctx context.Context, id string) error
}

// CreateProjectRequest encapsulates data for creating a project
type CreateProjectRequest struct {
	ID          string // optional, generated when empty
	Name        string
	Description string
	Color       string // optional, defaults to models.DefaultProjectColor
}

// UpdateProjectRequest encapsulates data for updating a project
type UpdateProjectRequest struct {
	ID          string
	Name        *string
	Description *string
	Color       *string
}

// repository defines the data access methods needed by the project service
type repository interface {
	database.ProjectRepository
}

// service implements Service interface with private repository
type service struct {
	repo   repository
	policy policy.Policy
}

// NewService creates a new project service. A nil policy allows everything.
func NewService(repo repository, p policy.Policy) Service {
	return &service{
		repo:   repo,
		policy: policy.OrAllowAll(p),
	}
}

// GetAllProjects retrieves all projects
func (s *service) GetAllProjects(ctx context.Context) ([]*models.Project, error) {
	if err := s.policy.Authorize(ctx, policy.ActionRead, policy.ResourceProject); err != nil {
		return nil, err
	}
	return s.repo.GetAllProjects(ctx)
}

// GetProjectStats retrieves all projects with their todo counts
func (s *service) GetProjectStats(ctx context.Context) ([]*models.ProjectStats, error) {
	if err := s.policy.Authorize(ctx, policy.ActionRead, policy.ResourceProject); err != nil {
		return nil, err
	}
	return s.repo.GetAllProjectsWithStats(ctx)
}

// GetProjectByID retrieves a specific project
func (s *service) GetProjectByID(ctx context.Context, id string) (*models.Project, error) {
	id = types.NormalizeID(id)
	if id == "" {
		return nil, ErrInvalidProjectID
	}
	if err := s.policy.Authorize(ctx, policy.ActionRead, policy.ResourceProject); err != nil {
		return nil, err
	}

	project, err := s.repo.GetProjectByID(ctx, id)
	if err != nil {
		return nil, translate(err, id)
	}
	return project, nil
}

// CreateProject creates a new project with validation
func (s *service) CreateProject(ctx context.Context, req CreateProjectRequest) (*models.Project, error) {
	id, ok := types.OptionalID(req.ID)
	if !ok {
		return nil, ErrInvalidProjectID
	}
	name := strings.TrimSpace(req.Name)
	if err := validateName(name); err != nil {
		return nil, err
	}
	color := strings.TrimSpace(req.Color)
	if color == "" {
		color = models.DefaultProjectColor
	}
	if !colorPattern.MatchString(color) {
		return nil, ErrInvalidColor
	}
	if err := s.policy.Authorize(ctx, policy.ActionCreate, policy.ResourceProject); err != nil {
		return nil, err
	}

	description := strings.TrimSpace(req.Description)
	project, err := s.repo.CreateProject(ctx, database.NewProject{
		ID:          id,
		Name:        name,
		Description: &description,
		Color:       strings.ToUpper(color),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	slog.Info("project created", "project_id", project.ID, "name", project.Name)
	return project, nil
}

// UpdateProject updates the provided fields of an existing project
func (s *service) UpdateProject(ctx context.Context, req UpdateProjectRequest) (*models.Project, error) {
	id := types.NormalizeID(req.ID)
	if id == "" {
		return nil, ErrInvalidProjectID
	}

	patch := database.ProjectPatch{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if err := validateName(name); err != nil {
			return nil, err
		}
		patch.Name = &name
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		patch.Description = &description
	}
	if req.Color != nil {
		color := strings.TrimSpace(*req.Color)
		if !colorPattern.MatchString(color) {
			return nil, ErrInvalidColor
		}
		color = strings.ToUpper(color)
		patch.Color = &color
	}
	if err := s.policy.Authorize(ctx, policy.ActionUpdate, policy.ResourceProject); err != nil {
		return nil, err
	}

	project, err := s.repo.UpdateProject(ctx, id, patch)
	if err != nil {
		return nil, translate(err, id)
	}

	slog.Info("project updated", "project_id", id)
	return project, nil
}

// DeleteProject deletes a project together with its todos and their assignments
func (s *service) DeleteProject(ctx context.Context, id string) error {
	id = types.NormalizeID(id)
	if id == "" {
		return ErrInvalidProjectID
	}
	if err := s.policy.Authorize(ctx, policy.ActionDelete, policy.ResourceProject); err != nil {
		return err
	}

	if err := s.repo.DeleteProject(ctx, id); err != nil {
		return translate(err, id)
	}

	slog.Info("project deleted", "project_id", id)
	return nil
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

// translate maps a datastore miss onto ErrProjectNotFound and wraps everything else
func translate(err error, id string) error {
	if errors.Is(err, database.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrProjectNotFound, id)
	}
	return fmt.Errorf("project %s: %w", id, err)
}
