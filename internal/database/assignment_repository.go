package database

import (
	"context"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/thenoetrevino/tandem/internal/models"
	"github.com/thenoetrevino/tandem/internal/types"
)

const assignmentsTable = "todo_assignments"

var assignmentColumns = []string{"id", "todo_id", "user_id", "assigned_at"}

// AssignmentRepo handles the todo/user join table and the views composed from it.
type AssignmentRepo struct {
	*conn
}

// assignedUserRow is one assignment joined with the user it points at
type assignedUserRow struct {
	models.User
	AssignmentID string    `db:"assignment_id"`
	TodoID       string    `db:"todo_id"`
	AssignedAt   time.Time `db:"assigned_at"`
}

// userTodoRow is one assignment joined with the todo it points at
type userTodoRow struct {
	models.Todo
	UserID string `db:"user_id"`
}

// Assign replaces the assignment set of todoID with userIDs. Every existing row for the
// todo is deleted, also when userIDs is empty, then one row per distinct user is inserted.
// Failures are *AssignmentError values naming the phase that failed.
func (r *AssignmentRepo) Assign(ctx context.Context, todoID string, userIDs []string) error {
	ids := types.UniqueIDs(userIDs)

	var err error
	if r.atomicAssign {
		err = r.assignAtomic(ctx, todoID, ids)
	} else {
		err = r.assignSequential(ctx, todoID, ids)
	}
	if err != nil {
		slog.Warn("assignment write failed", "todo_id", todoID, "error", err)
		return err
	}

	slog.Debug("assignments replaced", "todo_id", todoID, "count", len(ids))
	return nil
}

// assignAtomic runs delete and insert in one transaction so a failure leaves the previous set
func (r *AssignmentRepo) assignAtomic(ctx context.Context, todoID string, ids []string) error {
	phase := PhaseBegin
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		phase = PhaseDelete
		if err := r.deleteFor(ctx, tx, todoID); err != nil {
			return err
		}
		phase = PhaseInsert
		if err := r.insertFor(ctx, tx, todoID, ids); err != nil {
			return err
		}
		phase = PhaseCommit
		return nil
	})
	if err != nil {
		return &AssignmentError{
			TodoID:     todoID,
			Phase:      phase,
			RolledBack: true,
			Err:        wrap(err, "assign", assignmentsTable, todoID),
		}
	}
	return nil
}

// assignSequential deletes then inserts as two independent statements. An insert failure
// leaves the todo with no assignments.
func (r *AssignmentRepo) assignSequential(ctx context.Context, todoID string, ids []string) error {
	if err := r.deleteFor(ctx, r.db, todoID); err != nil {
		return &AssignmentError{TodoID: todoID, Phase: PhaseDelete, Err: wrap(err, "assign", assignmentsTable, todoID)}
	}
	if err := r.insertFor(ctx, r.db, todoID, ids); err != nil {
		return &AssignmentError{TodoID: todoID, Phase: PhaseInsert, Err: wrap(err, "assign", assignmentsTable, todoID)}
	}
	return nil
}

func (r *AssignmentRepo) deleteFor(ctx context.Context, e sqlx.ExecerContext, todoID string) error {
	_, err := execAffected(ctx, e, r.sb.Delete(assignmentsTable).Where(sq.Eq{"todo_id": todoID}))
	return err
}

// insertFor writes every row in one multi-row INSERT. No ids means no statement.
func (r *AssignmentRepo) insertFor(ctx context.Context, e sqlx.ExecerContext, todoID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	now := r.now()
	ins := r.sb.Insert(assignmentsTable).Columns(assignmentColumns...)
	for _, userID := range ids {
		ins = ins.Values(types.NewID(), todoID, userID, now)
	}
	_, err := execAffected(ctx, e, ins)
	return err
}

// ListForTodo returns the raw assignment rows of a todo ordered by assigned_at
func (r *AssignmentRepo) ListForTodo(ctx context.Context, todoID string) ([]*models.Assignment, error) {
	assignments := make([]*models.Assignment, 0)
	err := selectAll(ctx, r.db, &assignments, r.sb.Select(assignmentColumns...).
		From(assignmentsTable).
		Where(sq.Eq{"todo_id": todoID}).
		OrderBy("assigned_at", "id"))
	if err != nil {
		return nil, wrap(err, "list", assignmentsTable, todoID)
	}
	return assignments, nil
}

// ComposeTodosWithAssignments returns every todo, newest first, with its assignments and users
func (r *AssignmentRepo) ComposeTodosWithAssignments(ctx context.Context) ([]*models.TodoWithAssignments, error) {
	return r.composeTodos(ctx, "")
}

// ComposeTodosWithAssignmentsByProject is ComposeTodosWithAssignments restricted to one project
func (r *AssignmentRepo) ComposeTodosWithAssignmentsByProject(ctx context.Context, projectID string) ([]*models.TodoWithAssignments, error) {
	return r.composeTodos(ctx, projectID)
}

// GetTodoWithAssignments returns the view of a single todo
func (r *AssignmentRepo) GetTodoWithAssignments(ctx context.Context, todoID string) (*models.TodoWithAssignments, error) {
	var view *models.TodoWithAssignments
	err := r.readTx(ctx, func(tx *sqlx.Tx) error {
		todo := &models.Todo{}
		err := selectOne(ctx, tx, todo, r.sb.Select(todoColumns...).
			From(todosTable).
			Where(sq.Eq{"id": todoID}))
		if err != nil {
			return err
		}

		rows, err := r.assignedUsers(ctx, tx, sq.Eq{"a.todo_id": todoID})
		if err != nil {
			return err
		}

		views := attachUsers([]*models.Todo{todo}, rows)
		view = views[0]
		return nil
	})
	if err != nil {
		return nil, wrap(err, "get", todosTable, todoID)
	}
	return view, nil
}

// composeTodos reads the todo list and the assignment/user join in one transaction
// and stitches them together in memory
func (r *AssignmentRepo) composeTodos(ctx context.Context, projectID string) ([]*models.TodoWithAssignments, error) {
	var views []*models.TodoWithAssignments
	err := r.readTx(ctx, func(tx *sqlx.Tx) error {
		todoQuery := r.sb.Select(todoColumns...).
			From(todosTable).
			OrderBy("created_at DESC", "id")
		var pred sq.Sqlizer
		if projectID != "" {
			todoQuery = todoQuery.Where(sq.Eq{"project_id": projectID})
			pred = sq.Eq{"t.project_id": projectID}
		}

		todos := make([]*models.Todo, 0)
		if err := selectAll(ctx, tx, &todos, todoQuery); err != nil {
			return err
		}

		rows, err := r.assignedUsers(ctx, tx, pred)
		if err != nil {
			return err
		}

		views = attachUsers(todos, rows)
		return nil
	})
	if err != nil {
		return nil, wrap(err, "compose", assignmentsTable, projectID)
	}
	return views, nil
}

// assignedUsers selects assignment rows joined with their users, oldest assignment first
func (r *AssignmentRepo) assignedUsers(ctx context.Context, q sqlx.QueryerContext, pred sq.Sqlizer) ([]assignedUserRow, error) {
	columns := append([]string{"a.id AS assignment_id", "a.todo_id", "a.assigned_at"}, prefixed("u", userColumns)...)

	b := r.sb.Select(columns...).
		From(assignmentsTable + " a").
		Join(usersTable + " u ON u.id = a.user_id").
		OrderBy("a.assigned_at", "LOWER(u.name)", "u.id")
	if pred != nil {
		b = b.Join(todosTable + " t ON t.id = a.todo_id").Where(pred)
	}

	rows := make([]assignedUserRow, 0)
	if err := selectAll(ctx, q, &rows, b); err != nil {
		return nil, err
	}
	return rows, nil
}

// attachUsers groups rows by todo and builds one view per todo, keeping the todo order
func attachUsers(todos []*models.Todo, rows []assignedUserRow) []*models.TodoWithAssignments {
	views := make([]*models.TodoWithAssignments, 0, len(todos))
	byTodo := make(map[string]*models.TodoWithAssignments, len(todos))
	for _, t := range todos {
		v := &models.TodoWithAssignments{
			Todo:          *t,
			Assignments:   []*models.Assignment{},
			AssignedUsers: []*models.User{},
		}
		views = append(views, v)
		byTodo[t.ID] = v
	}

	for i := range rows {
		row := rows[i]
		v, ok := byTodo[row.TodoID]
		if !ok {
			continue
		}
		user := row.User
		v.Assignments = append(v.Assignments, &models.Assignment{
			ID:         row.AssignmentID,
			TodoID:     row.TodoID,
			UserID:     user.ID,
			AssignedAt: row.AssignedAt,
		})
		v.AssignedUsers = append(v.AssignedUsers, &user)
	}
	return views
}

// ComposeUsersWithTodos returns every user ordered by name with the todos assigned to them
func (r *AssignmentRepo) ComposeUsersWithTodos(ctx context.Context) ([]*models.UserWithTodos, error) {
	var views []*models.UserWithTodos
	err := r.readTx(ctx, func(tx *sqlx.Tx) error {
		users := make([]*models.User, 0)
		err := selectAll(ctx, tx, &users, r.sb.Select(userColumns...).
			From(usersTable).
			OrderBy(usersByName...))
		if err != nil {
			return err
		}

		columns := append([]string{"a.user_id"}, prefixed("t", todoColumns)...)
		rows := make([]userTodoRow, 0)
		err = selectAll(ctx, tx, &rows, r.sb.Select(columns...).
			From(assignmentsTable+" a").
			Join(todosTable+" t ON t.id = a.todo_id").
			OrderBy("t.created_at DESC", "t.id"))
		if err != nil {
			return err
		}

		views = make([]*models.UserWithTodos, 0, len(users))
		byUser := make(map[string]*models.UserWithTodos, len(users))
		for _, u := range users {
			v := &models.UserWithTodos{User: *u, Todos: []*models.Todo{}}
			views = append(views, v)
			byUser[u.ID] = v
		}
		for i := range rows {
			row := rows[i]
			if v, ok := byUser[row.UserID]; ok {
				todo := row.Todo
				v.Todos = append(v.Todos, &todo)
			}
		}
		return nil
	})
	if err != nil {
		return nil, wrap(err, "compose", usersTable, "")
	}
	return views, nil
}
