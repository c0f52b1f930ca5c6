package database

import (
	"context"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/thenoetrevino/tandem/internal/models"
	"github.com/thenoetrevino/tandem/internal/types"
)

const projectsTable = "projects"

var projectColumns = []string{"id", "name", "description", "color", "created_at", "updated_at"}

// NewProject holds the fields of a project to insert. An empty ID is generated.
type NewProject struct {
	ID          string
	Name        string
	Description *string
	Color       string
}

// ProjectPatch lists the project fields to change. Nil fields are left alone;
// an empty Description clears it.
type ProjectPatch struct {
	Name        *string
	Description *string
	Color       *string
}

// ProjectRepo handles all project-related database operations.
type ProjectRepo struct {
	*conn
}

// Create inserts a project
func (r *ProjectRepo) Create(ctx context.Context, in NewProject) (*models.Project, error) {
	now := r.now()
	project := &models.Project{
		ID:        in.ID,
		Name:      in.Name,
		Color:     in.Color,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if project.ID == "" {
		project.ID = types.NewID()
	}
	if project.Color == "" {
		project.Color = models.DefaultProjectColor
	}
	if in.Description != nil && *in.Description != "" {
		project.Description = in.Description
	}

	_, err := execAffected(ctx, r.db, r.sb.Insert(projectsTable).
		Columns(projectColumns...).
		Values(project.ID, project.Name, nullableString(project.Description), project.Color, now, now))
	if err != nil {
		return nil, wrap(err, "create", projectsTable, project.ID)
	}

	slog.Debug("project created", "project_id", project.ID)
	return project, nil
}

// GetByID retrieves a project by its ID
func (r *ProjectRepo) GetByID(ctx context.Context, id string) (*models.Project, error) {
	return r.get(ctx, r.db, id)
}

func (r *ProjectRepo) get(ctx context.Context, q sqlx.QueryerContext, id string) (*models.Project, error) {
	project := &models.Project{}
	err := selectOne(ctx, q, project, r.sb.Select(projectColumns...).
		From(projectsTable).
		Where(sq.Eq{"id": id}))
	if err != nil {
		return nil, wrap(err, "get", projectsTable, id)
	}
	return project, nil
}

// GetAll retrieves all projects, newest first
func (r *ProjectRepo) GetAll(ctx context.Context) ([]*models.Project, error) {
	projects := make([]*models.Project, 0)
	err := selectAll(ctx, r.db, &projects, r.sb.Select(projectColumns...).
		From(projectsTable).
		OrderBy("created_at DESC", "name"))
	if err != nil {
		return nil, wrap(err, "list", projectsTable, "")
	}
	return projects, nil
}

// GetAllWithStats retrieves all projects with their todo and completed todo counts
func (r *ProjectRepo) GetAllWithStats(ctx context.Context) ([]*models.ProjectStats, error) {
	columns := append(prefixed("p", projectColumns),
		"COUNT(t.id) AS todo_count",
		"COALESCE(SUM(CASE WHEN t.status = 'completed' THEN 1 ELSE 0 END), 0) AS completed_count",
	)

	stats := make([]*models.ProjectStats, 0)
	err := selectAll(ctx, r.db, &stats, r.sb.Select(columns...).
		From(projectsTable+" p").
		LeftJoin(todosTable+" t ON t.project_id = p.id").
		GroupBy(prefixed("p", projectColumns)...).
		OrderBy("p.created_at DESC", "p.name"))
	if err != nil {
		return nil, wrap(err, "stats", projectsTable, "")
	}
	return stats, nil
}

// Update applies patch to the project and returns the stored result
func (r *ProjectRepo) Update(ctx context.Context, id string, patch ProjectPatch) (*models.Project, error) {
	set := map[string]any{"updated_at": r.now()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Description != nil {
		set["description"] = nullableString(patch.Description)
	}
	if patch.Color != nil {
		set["color"] = *patch.Color
	}

	var project *models.Project
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		n, err := execAffected(ctx, tx, r.sb.Update(projectsTable).SetMap(set).Where(sq.Eq{"id": id}))
		if err != nil {
			return err
		}
		if n == 0 {
			return notFound("update", projectsTable, id)
		}
		project, err = r.get(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, wrap(err, "update", projectsTable, id)
	}
	return project, nil
}

// Delete removes a project. Its todos and their assignments cascade.
func (r *ProjectRepo) Delete(ctx context.Context, id string) error {
	n, err := execAffected(ctx, r.db, r.sb.Delete(projectsTable).Where(sq.Eq{"id": id}))
	if err != nil {
		return wrap(err, "delete", projectsTable, id)
	}
	if n == 0 {
		return notFound("delete", projectsTable, id)
	}
	slog.Debug("project deleted", "project_id", id)
	return nil
}
