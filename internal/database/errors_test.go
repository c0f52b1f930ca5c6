package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", sql.ErrNoRows, ErrNotFound},
		{"wrapped no rows", fmt.Errorf("scan: %w", sql.ErrNoRows), ErrNotFound},
		{"deadline", context.DeadlineExceeded, ErrTransient},
		{"canceled is not transient", context.Canceled, nil},
		{"conn done", sql.ErrConnDone, ErrTransient},
		{"pq duplicate email", &pq.Error{Code: "23505", Constraint: "users_email_key"}, ErrDuplicateEmail},
		{"pq duplicate other", &pq.Error{Code: "23505", Constraint: "todo_assignments_todo_id_user_id_key"}, ErrConstraintViolation},
		{"pq foreign key", &pq.Error{Code: "23503"}, ErrForeignKey},
		{"pq check", &pq.Error{Code: "23514"}, ErrConstraintViolation},
		{"pq connection", &pq.Error{Code: "08006"}, ErrTransient},
		{"pq admin shutdown", &pq.Error{Code: "57P01"}, ErrTransient},
		{"pq serialization", &pq.Error{Code: "40001"}, ErrTransient},
		{"pq bad uuid", &pq.Error{Code: "22P02"}, ErrNotFound},
		{"pq syntax", &pq.Error{Code: "42601"}, nil},
		{"plain", errors.New("boom"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(tt.err))
		})
	}
}

func TestSentinelHierarchy(t *testing.T) {
	assert.ErrorIs(t, ErrDuplicateEmail, ErrConstraintViolation)
	assert.ErrorIs(t, ErrForeignKey, ErrConstraintViolation)
	assert.NotErrorIs(t, ErrNotFound, ErrConstraintViolation)
}

func TestWrap(t *testing.T) {
	assert.NoError(t, wrap(nil, "get", "todos", "1"))

	err := wrap(sql.ErrNoRows, "get", "todos", "abc")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.Equal(t, "get todos abc: not found: sql: no rows in result set", err.Error())

	// already classified errors pass through untouched
	assert.Same(t, err, wrap(err, "update", "todos", "abc"))

	unknown := wrap(errors.New("boom"), "list", "users", "")
	assert.Equal(t, "list users: boom", unknown.Error())
	assert.NotErrorIs(t, unknown, ErrTransient)
}

func TestNotFoundMessage(t *testing.T) {
	err := notFound("delete", "users", "u1")
	assert.Equal(t, "delete users u1: not found", err.Error())
	assert.ErrorIs(t, err, ErrNotFound)
}
