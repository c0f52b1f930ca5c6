package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/thenoetrevino/tandem/internal/app"
	"github.com/thenoetrevino/tandem/internal/database"
	"github.com/thenoetrevino/tandem/internal/models"
	"github.com/thenoetrevino/tandem/internal/services/assignment"
	"github.com/thenoetrevino/tandem/internal/services/project"
	"github.com/thenoetrevino/tandem/internal/services/todo"
	"github.com/thenoetrevino/tandem/internal/services/user"
	"github.com/thenoetrevino/tandem/internal/types"
)

// Result counts what a seed run created and what already existed
type Result struct {
	ProjectsCreated int `json:"projects_created"`
	UsersCreated    int `json:"users_created"`
	TodosCreated    int `json:"todos_created"`
	Assigned        int `json:"assigned"`
	Skipped         int `json:"skipped"`
}

// Seeder writes fixtures through the services so every row passes validation
type Seeder struct {
	projects    project.Service
	users       user.Service
	todos       todo.Service
	assignments assignment.Service
	now         func() time.Time
}

// New creates a seeder over the services of a
func New(a *app.App) *Seeder {
	return &Seeder{
		projects:    a.ProjectService,
		users:       a.UserService,
		todos:       a.TodoService,
		assignments: a.AssignmentService,
		now:         time.Now,
	}
}

// WithNow sets the clock used to resolve due_in_days
func (s *Seeder) WithNow(now func() time.Time) *Seeder {
	s.now = now
	return s
}

// Apply creates every fixture that does not exist yet. Running it twice is a no-op.
func (s *Seeder) Apply(ctx context.Context, f *Fixtures) (*Result, error) {
	res := &Result{}

	for _, p := range f.Projects {
		created, err := s.ensureProject(ctx, p)
		if err != nil {
			return res, fmt.Errorf("seed project %q: %w", p.Name, err)
		}
		res.count(created, &res.ProjectsCreated)
	}

	emails := make(map[string]string, len(f.Users))
	for _, u := range f.Users {
		id, created, err := s.ensureUser(ctx, u)
		if err != nil {
			return res, fmt.Errorf("seed user %q: %w", u.Email, err)
		}
		emails[strings.ToLower(u.Email)] = id
		res.count(created, &res.UsersCreated)
	}

	for _, t := range f.Todos {
		todoID, created, err := s.ensureTodo(ctx, t)
		if err != nil {
			return res, fmt.Errorf("seed todo %q: %w", t.Title, err)
		}
		res.count(created, &res.TodosCreated)
		if !created || len(t.Assignees) == 0 {
			continue
		}

		userIDs, err := s.resolveAssignees(ctx, t.Assignees, emails)
		if err != nil {
			return res, fmt.Errorf("seed todo %q: %w", t.Title, err)
		}
		if _, err := s.assignments.AssignUsers(ctx, assignment.AssignUsersRequest{TodoID: todoID, UserIDs: userIDs}); err != nil {
			return res, fmt.Errorf("assign todo %q: %w", t.Title, err)
		}
		res.Assigned += len(userIDs)
	}

	slog.Info("seed applied",
		"projects", res.ProjectsCreated,
		"users", res.UsersCreated,
		"todos", res.TodosCreated,
		"skipped", res.Skipped)
	return res, nil
}

func (r *Result) count(created bool, counter *int) {
	if created {
		*counter++
		return
	}
	r.Skipped++
}

func (s *Seeder) ensureProject(ctx context.Context, p ProjectFixture) (bool, error) {
	if p.ID != "" {
		_, err := s.projects.GetProjectByID(ctx, p.ID)
		if err == nil {
			return false, nil
		}
		if !errors.Is(err, database.ErrNotFound) {
			return false, err
		}
	} else {
		existing, err := s.projects.GetAllProjects(ctx)
		if err != nil {
			return false, err
		}
		for _, e := range existing {
			if e.Name == p.Name {
				return false, nil
			}
		}
	}

	_, err := s.projects.CreateProject(ctx, project.CreateProjectRequest{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Color:       p.Color,
	})
	return err == nil, err
}

func (s *Seeder) ensureUser(ctx context.Context, u UserFixture) (string, bool, error) {
	existing, err := s.users.GetUserByEmail(ctx, u.Email)
	if err == nil {
		return existing.ID, false, nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return "", false, err
	}

	created, err := s.users.CreateUser(ctx, user.CreateUserRequest{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		AvatarURL: u.AvatarURL,
	})
	if err != nil {
		return "", false, err
	}
	return created.ID, true, nil
}

func (s *Seeder) ensureTodo(ctx context.Context, t TodoFixture) (string, bool, error) {
	existing, err := s.todos.GetTodosByProject(ctx, t.ProjectID)
	if err != nil {
		return "", false, err
	}
	for _, e := range existing {
		if e.Title == t.Title {
			return e.ID, false, nil
		}
	}

	due := t.DueDate
	if t.DueInDays != nil {
		due = models.NewDate(s.now().AddDate(0, 0, *t.DueInDays)).String()
	}

	created, err := s.todos.CreateTodo(ctx, todo.CreateTodoRequest{
		ID:          t.ID,
		ProjectID:   t.ProjectID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     due,
		Priority:    t.Priority,
		Status:      t.Status,
	})
	if err != nil {
		return "", false, err
	}
	return created.ID, true, nil
}

// resolveAssignees maps assignee emails to user ids, falling back to the store for users seeded earlier
func (s *Seeder) resolveAssignees(ctx context.Context, refs []string, emails map[string]string) ([]string, error) {
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		if !strings.Contains(ref, "@") {
			ids = append(ids, types.NormalizeID(ref))
			continue
		}
		if id, ok := emails[strings.ToLower(ref)]; ok {
			ids = append(ids, id)
			continue
		}
		u, err := s.users.GetUserByEmail(ctx, ref)
		if err != nil {
			return nil, err
		}
		ids = append(ids, u.ID)
	}
	return ids, nil
}
