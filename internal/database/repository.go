package database

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/thenoetrevino/tandem/internal/models"
)

// Repository provides a unified interface to all data operations.
// It composes domain-specific repositories using struct embedding.
type Repository struct {
	*ProjectRepo
	*TodoRepo
	*UserRepo
	*AssignmentRepo

	db *sqlx.DB
}

// NewRepository creates a new Repository instance wrapping the given database connection.
func NewRepository(db *sqlx.DB, opts ...Option) *Repository {
	c := newConn(db, opts...)
	return &Repository{
		ProjectRepo:    &ProjectRepo{conn: c},
		TodoRepo:       &TodoRepo{conn: c},
		UserRepo:       &UserRepo{conn: c},
		AssignmentRepo: &AssignmentRepo{conn: c},
		db:             db,
	}
}

// Ping checks the datastore is reachable
func (r *Repository) Ping(ctx context.Context) error {
	return wrap(r.db.PingContext(ctx), "ping", "", "")
}

// Wrapper methods for ProjectRepo
func (r *Repository) CreateProject(ctx context.Context, in NewProject) (*models.Project, error) {
	return r.ProjectRepo.Create(ctx, in)
}

func (r *Repository) GetProjectByID(ctx context.Context, id string) (*models.Project, error) {
	return r.ProjectRepo.GetByID(ctx, id)
}

func (r *Repository) GetAllProjects(ctx context.Context) ([]*models.Project, error) {
	return r.ProjectRepo.GetAll(ctx)
}

func (r *Repository) GetAllProjectsWithStats(ctx context.Context) ([]*models.ProjectStats, error) {
	return r.ProjectRepo.GetAllWithStats(ctx)
}

func (r *Repository) UpdateProject(ctx context.Context, id string, patch ProjectPatch) (*models.Project, error) {
	return r.ProjectRepo.Update(ctx, id, patch)
}

func (r *Repository) DeleteProject(ctx context.Context, id string) error {
	return r.ProjectRepo.Delete(ctx, id)
}

// Wrapper methods for TodoRepo
func (r *Repository) CreateTodo(ctx context.Context, in NewTodo) (*models.Todo, error) {
	return r.TodoRepo.Create(ctx, in)
}

func (r *Repository) GetTodoByID(ctx context.Context, id string) (*models.Todo, error) {
	return r.TodoRepo.GetByID(ctx, id)
}

func (r *Repository) GetAllTodos(ctx context.Context) ([]*models.Todo, error) {
	return r.TodoRepo.GetAll(ctx)
}

func (r *Repository) GetTodosByProject(ctx context.Context, projectID string) ([]*models.Todo, error) {
	return r.TodoRepo.GetByProject(ctx, projectID)
}

func (r *Repository) UpdateTodo(ctx context.Context, id string, patch TodoPatch) (*models.Todo, error) {
	return r.TodoRepo.Update(ctx, id, patch)
}

func (r *Repository) DeleteTodo(ctx context.Context, id string) error {
	return r.TodoRepo.Delete(ctx, id)
}

// Wrapper methods for UserRepo
func (r *Repository) CreateUser(ctx context.Context, in NewUser) (*models.User, error) {
	return r.UserRepo.Create(ctx, in)
}

func (r *Repository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return r.UserRepo.GetByID(ctx, id)
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.UserRepo.GetByEmail(ctx, email)
}

func (r *Repository) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	return r.UserRepo.GetAll(ctx)
}

func (r *Repository) UpdateUser(ctx context.Context, id string, patch UserPatch) (*models.User, error) {
	return r.UserRepo.Update(ctx, id, patch)
}

func (r *Repository) DeleteUser(ctx context.Context, id string) error {
	return r.UserRepo.Delete(ctx, id)
}

// Wrapper methods for AssignmentRepo
func (r *Repository) AssignUsers(ctx context.Context, todoID string, userIDs []string) error {
	return r.AssignmentRepo.Assign(ctx, todoID, userIDs)
}

func (r *Repository) ListAssignmentsForTodo(ctx context.Context, todoID string) ([]*models.Assignment, error) {
	return r.AssignmentRepo.ListForTodo(ctx, todoID)
}

// ComposeTodosWithAssignments, ComposeTodosWithAssignmentsByProject, GetTodoWithAssignments
// and ComposeUsersWithTodos are promoted from the embedded AssignmentRepo.

var _ DataStore = (*Repository)(nil)
