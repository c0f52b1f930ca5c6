package database

import (
	"context"

	"github.com/thenoetrevino/tandem/internal/models"
)

// ProjectReader defines read operations for projects
type ProjectReader interface {
	GetProjectByID(ctx context.Context, id string) (*models.Project, error)
	GetAllProjects(ctx context.Context) ([]*models.Project, error)
	GetAllProjectsWithStats(ctx context.Context) ([]*models.ProjectStats, error)
}

// ProjectWriter defines write operations for projects
type ProjectWriter interface {
	CreateProject(ctx context.Context, in NewProject) (*models.Project, error)
	UpdateProject(ctx context.Context, id string, patch ProjectPatch) (*models.Project, error)
	DeleteProject(ctx context.Context, id string) error
}

// ProjectRepository combines all project operations
type ProjectRepository interface {
	ProjectReader
	ProjectWriter
}
