package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupMockRepo returns a repository over sqlmock speaking the given dialect
func setupMockRepo(t *testing.T, dialect Dialect, opts ...Option) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = mockDB.Close()
	})

	opts = append([]Option{WithClock(newStepClock().Now)}, opts...)
	return NewRepository(sqlx.NewDb(mockDB, string(dialect)), opts...), mock
}

func TestAssignAtomic_InsertFailureRollsBack(t *testing.T) {
	repo, mock := setupMockRepo(t, DialectSQLite)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM todo_assignments WHERE todo_id = \\?").
		WithArgs("t1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO todo_assignments").
		WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	err := repo.AssignUsers(context.Background(), "t1", []string{"u1", "u2"})

	var assignErr *AssignmentError
	require.ErrorAs(t, err, &assignErr)
	assert.Equal(t, PhaseInsert, assignErr.Phase)
	assert.True(t, assignErr.RolledBack)
	assert.ErrorIs(t, err, ErrRelationshipWrite)
}

func TestAssignAtomic_BeginFailure(t *testing.T) {
	repo, mock := setupMockRepo(t, DialectSQLite)

	mock.ExpectBegin().WillReturnError(errors.New("cannot begin"))

	err := repo.AssignUsers(context.Background(), "t1", []string{"u1"})

	var assignErr *AssignmentError
	require.ErrorAs(t, err, &assignErr)
	assert.Equal(t, PhaseBegin, assignErr.Phase)
	assert.Contains(t, err.Error(), "assignments unchanged")
}

func TestAssignAtomic_CommitFailure(t *testing.T) {
	repo, mock := setupMockRepo(t, DialectSQLite)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM todo_assignments").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO todo_assignments").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit().WillReturnError(errors.New("commit refused"))

	err := repo.AssignUsers(context.Background(), "t1", []string{"u1"})

	var assignErr *AssignmentError
	require.ErrorAs(t, err, &assignErr)
	assert.Equal(t, PhaseCommit, assignErr.Phase)
}

func TestAssignAtomic_EmptySetSkipsInsert(t *testing.T) {
	repo, mock := setupMockRepo(t, DialectSQLite)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM todo_assignments").WithArgs("t1").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	require.NoError(t, repo.AssignUsers(context.Background(), "t1", nil))
}

func TestAssignAtomic_SingleMultiRowInsert(t *testing.T) {
	repo, mock := setupMockRepo(t, DialectPostgres)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM todo_assignments WHERE todo_id = \\$1").WithArgs("t1").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO todo_assignments \\(id,todo_id,user_id,assigned_at\\) VALUES \\(\\$1,\\$2,\\$3,\\$4\\),\\(\\$5,\\$6,\\$7,\\$8\\)$").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	require.NoError(t, repo.AssignUsers(context.Background(), "t1", []string{"u1", "u2", "u1"}))
}

func TestAssignSequential_DeleteFailureAborts(t *testing.T) {
	repo, mock := setupMockRepo(t, DialectSQLite, WithAtomicAssignments(false))

	mock.ExpectExec("DELETE FROM todo_assignments").WillReturnError(context.DeadlineExceeded)

	err := repo.AssignUsers(context.Background(), "t1", []string{"u1"})

	var assignErr *AssignmentError
	require.ErrorAs(t, err, &assignErr)
	assert.Equal(t, PhaseDelete, assignErr.Phase)
	assert.False(t, assignErr.RolledBack)
	assert.ErrorIs(t, err, ErrTransient)
	assert.True(t, IsTransient(err))
	assert.Contains(t, err.Error(), "assignments unchanged")
}

func TestAssignSequential_InsertFailureIsVisible(t *testing.T) {
	repo, mock := setupMockRepo(t, DialectSQLite, WithAtomicAssignments(false))

	mock.ExpectExec("DELETE FROM todo_assignments").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO todo_assignments").WillReturnError(&pq.Error{Code: "23503"})

	err := repo.AssignUsers(context.Background(), "t1", []string{"ghost"})

	var assignErr *AssignmentError
	require.ErrorAs(t, err, &assignErr)
	assert.Equal(t, PhaseInsert, assignErr.Phase)
	assert.False(t, assignErr.RolledBack)
	assert.ErrorIs(t, err, ErrForeignKey)
	assert.Contains(t, err.Error(), "todo left with no assignments")
}

func TestGetProject_TransientPostgresError(t *testing.T) {
	repo, mock := setupMockRepo(t, DialectPostgres)

	mock.ExpectQuery("SELECT id, name, description, color, created_at, updated_at FROM projects WHERE id = \\$1").
		WithArgs("p1").
		WillReturnError(&pq.Error{Code: "08006"})

	_, err := repo.GetProjectByID(context.Background(), "p1")
	assert.ErrorIs(t, err, ErrTransient)
}

func TestDeleteTodo_NoRowsIsNotFound(t *testing.T) {
	repo, mock := setupMockRepo(t, DialectSQLite)

	mock.ExpectExec("DELETE FROM todos WHERE id = \\?").WithArgs("gone").WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteTodo(context.Background(), "gone")
	assert.ErrorIs(t, err, ErrNotFound)
}
