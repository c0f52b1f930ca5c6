package models

import "time"

// Assignment links one user to one todo. The (todo, user) pair is unique.
type Assignment struct {
	ID         string    `db:"id" json:"id"`
	TodoID     string    `db:"todo_id" json:"todo_id"`
	UserID     string    `db:"user_id" json:"user_id"`
	AssignedAt time.Time `db:"assigned_at" json:"assigned_at"`
}

// TodoWithAssignments is a todo with its assignment rows and the users they resolve to.
// It is assembled per read and never stored.
type TodoWithAssignments struct {
	Todo
	Assignments   []*Assignment `json:"assignments"`
	AssignedUsers []*User       `json:"assigned_users"`
}

// AssignedUserIDs returns the IDs of the assigned users in assignment order
func (t *TodoWithAssignments) AssignedUserIDs() []string {
	ids := make([]string, 0, len(t.Assignments))
	for _, a := range t.Assignments {
		ids = append(ids, a.UserID)
	}
	return ids
}

// UserWithTodos is a user with every todo reachable through their assignments.
// It is assembled per read and never stored.
type UserWithTodos struct {
	User
	Todos []*Todo `json:"todos"`
}

// UserWorkload splits a user's assigned todos by status
type UserWorkload struct {
	User       User    `json:"user"`
	Pending    []*Todo `json:"pending"`
	InProgress []*Todo `json:"in_progress"`
	Completed  []*Todo `json:"completed"`
}

// Total returns the number of todos assigned to the user
func (w *UserWorkload) Total() int {
	return len(w.Pending) + len(w.InProgress) + len(w.Completed)
}

// NewUserWorkload groups u's todos by status
func NewUserWorkload(u *UserWithTodos) *UserWorkload {
	w := &UserWorkload{
		User:       u.User,
		Pending:    []*Todo{},
		InProgress: []*Todo{},
		Completed:  []*Todo{},
	}
	for _, t := range u.Todos {
		switch t.Status {
		case StatusInProgress:
			w.InProgress = append(w.InProgress, t)
		case StatusCompleted:
			w.Completed = append(w.Completed, t)
		default:
			w.Pending = append(w.Pending, t)
		}
	}
	return w
}

// GetID returns the user ID (used by quiet CLI output)
func (w *UserWorkload) GetID() string {
	return w.User.ID
}
